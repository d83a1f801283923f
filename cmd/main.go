package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/keyvez/vaan-backend/internal/db"
	"github.com/keyvez/vaan-backend/internal/handlers"
	"github.com/keyvez/vaan-backend/internal/jobs"
	"github.com/keyvez/vaan-backend/internal/logger"
	"github.com/keyvez/vaan-backend/internal/middleware"
	"github.com/keyvez/vaan-backend/internal/observability"
	"github.com/keyvez/vaan-backend/internal/repos"
	"github.com/keyvez/vaan-backend/internal/server"
	"github.com/keyvez/vaan-backend/internal/services"
	"github.com/keyvez/vaan-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx := context.Background()

	// Tracing
	otelShutdown := observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: "vaan-backend",
		Environment: utils.GetEnv("APP_ENV", "development", log),
		Version:     utils.GetEnv("APP_VERSION", "dev", log),
	})
	if otelShutdown != nil {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = otelShutdown(shutdownCtx)
		}()
	}

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Warn("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	lexemeRepo := repos.NewLexemeRepo(thePG, log)
	wordOfDayRepo := repos.NewWordOfDayRepo(thePG, log)
	babyNameRepo := repos.NewBabyNameRepo(thePG, log)
	userRepo := repos.NewUserRepo(thePG, log)
	progressRepo := repos.NewProgressRepo(thePG, log)
	videoRepo := repos.NewVideoRepo(thePG, log)
	blogPostRepo := repos.NewBlogPostRepo(thePG, log)
	newsRepo := repos.NewNewsRepo(thePG, log)
	translationRepo := repos.NewTranslationRepo(thePG, log)
	auditLogRepo := repos.NewAuditLogRepo(thePG, log)

	// Background jobs
	runnerWorkers := utils.GetEnvAsInt("JOB_WORKERS", 4, log)
	runnerQueue := utils.GetEnvAsInt("JOB_QUEUE_SIZE", 64, log)
	runnerTimeout := utils.GetEnvAsInt("JOB_TIMEOUT_SECONDS", 60, log)
	runner := jobs.NewRunner(log, runnerWorkers, runnerQueue, time.Duration(runnerTimeout)*time.Second)
	runner.Start(ctx)

	// Services
	log.Info("Setting up Services from main...")
	wordOfDayService := services.NewWordOfDayService(thePG, log, lexemeRepo, wordOfDayRepo)
	babyNameService := services.NewBabyNameService(thePG, log, babyNameRepo)
	userService := services.NewUserService(thePG, log, userRepo)
	learningService := services.NewLearningService(thePG, log, lexemeRepo, progressRepo)
	translateClient := services.NewTranslateClient(log)
	translationService := services.NewTranslationService(thePG, log, translationRepo, translateClient)
	stripeClient := services.NewStripeClient(log)
	checkoutService := services.NewCheckoutService(log, stripeClient)
	oembedClient := services.NewOEmbedClient(log)
	contentService := services.NewContentService(thePG, log, videoRepo, blogPostRepo, newsRepo, oembedClient)
	adminService := services.NewAdminService(thePG, log, userRepo, auditLogRepo, lexemeRepo, babyNameRepo, videoRepo, blogPostRepo, newsRepo)

	ogImageService, err := services.NewOGImageService(log)
	if err != nil {
		log.Error("Could not init OGImageService", "error", err)
		os.Exit(1)
	}

	// Enrichment is optional: without a Gemini key the site serves whatever
	// has already been enriched.
	var enrichmentService services.EnrichmentService
	if os.Getenv("GEMINI_API_KEY") != "" {
		geminiClient, err := services.NewGeminiClient(ctx, log)
		if err != nil {
			log.Error("Could not init GeminiClient", "error", err)
			os.Exit(1)
		}
		enrichmentService = services.NewEnrichmentService(thePG, log, lexemeRepo, babyNameRepo, geminiClient)
	} else {
		log.Warn("GEMINI_API_KEY not set, enrichment pipeline disabled")
	}

	// Handlers
	log.Info("Setting up handlers from main...")
	wordOfDayHandler := handlers.NewWordOfDayHandler(log, wordOfDayService, ogImageService)
	babyNameHandler := handlers.NewBabyNameHandler(log, babyNameService, enrichmentService, ogImageService, runner)
	translationHandler := handlers.NewTranslationHandler(log, translationService, runner)
	learningHandler := handlers.NewLearningHandler(log, learningService)
	userHandler := handlers.NewUserHandler(log, userService)
	checkoutHandler := handlers.NewCheckoutHandler(log, checkoutService)
	adminHandler := handlers.NewAdminHandler(log, adminService, wordOfDayService, lexemeRepo)
	adminContentHandler := handlers.NewAdminContentHandler(log, contentService, adminService)

	// Middleware
	log.Info("Setting up middleware from main...")
	adminMiddleware := middleware.NewAdminMiddleware(log, userRepo)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		WordOfDayHandler:    wordOfDayHandler,
		BabyNameHandler:     babyNameHandler,
		TranslationHandler:  translationHandler,
		LearningHandler:     learningHandler,
		UserHandler:         userHandler,
		CheckoutHandler:     checkoutHandler,
		AdminHandler:        adminHandler,
		AdminContentHandler: adminContentHandler,
		AdminMiddleware:     adminMiddleware,
	})

	port := utils.GetEnv("PORT", "8080", log)
	fmt.Printf("Server listening on :%s\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Error("Server failed", "error", err)
	}
}
