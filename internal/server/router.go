package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/keyvez/vaan-backend/internal/handlers"
	"github.com/keyvez/vaan-backend/internal/middleware"
)

type RouterConfig struct {
	WordOfDayHandler    *handlers.WordOfDayHandler
	BabyNameHandler     *handlers.BabyNameHandler
	TranslationHandler  *handlers.TranslationHandler
	LearningHandler     *handlers.LearningHandler
	UserHandler         *handlers.UserHandler
	CheckoutHandler     *handlers.CheckoutHandler
	AdminHandler        *handlers.AdminHandler
	AdminContentHandler *handlers.AdminContentHandler
	AdminMiddleware     *middleware.AdminMiddleware
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(otelgin.Middleware("vaan-backend"))

	// The API is consumed by static frontends on arbitrary origins, so CORS
	// stays permissive.
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:    []string{"Authorization", "Content-Type", "X-Requested-With"},
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	// ===============
	// || Public    ||
	// ===============
	api := router.Group("/api")
	{
		api.GET("/word-of-day", cfg.WordOfDayHandler.GetWordOfDay)
		api.GET("/word-of-day/og-image", cfg.WordOfDayHandler.GetWordOfDayImage)

		api.GET("/baby-names", cfg.BabyNameHandler.ListBabyNames)
		api.GET("/baby-names/:slug", cfg.BabyNameHandler.GetBabyName)
		api.GET("/baby-names/:slug/og-image", cfg.BabyNameHandler.GetBabyNameImage)

		api.GET("/learning-words", cfg.LearningHandler.GetLearningWords)
		api.GET("/translations/:lang", cfg.TranslationHandler.GetTranslations)

		api.POST("/create-checkout-session", cfg.CheckoutHandler.CreateCheckoutSession)

		api.POST("/user/upsert", cfg.UserHandler.UpsertUser)
		api.GET("/user/progress", cfg.LearningHandler.GetProgress)
		api.GET("/user/stats", cfg.LearningHandler.GetStats)
		api.POST("/user/flashcard-review", cfg.LearningHandler.RecordFlashcardReview)
		api.POST("/user/quiz-attempt", cfg.LearningHandler.RecordQuizAttempt)
	}

	// ===============
	// || Admin     ||
	// ===============
	admin := api.Group("/admin")
	gate := cfg.AdminMiddleware.RequireAdmin(false)
	publicReadGate := cfg.AdminMiddleware.RequireAdmin(true)

	admin.GET("/check", cfg.AdminHandler.CheckAdmin)
	admin.POST("/grant", gate, cfg.AdminHandler.GrantAdmin)

	admin.GET("/videos", publicReadGate, cfg.AdminContentHandler.ListVideos)
	admin.POST("/videos", gate, cfg.AdminContentHandler.AddVideo)
	admin.DELETE("/videos/:id", gate, cfg.AdminContentHandler.DeleteVideo)

	admin.GET("/blog", publicReadGate, cfg.AdminContentHandler.ListBlogPosts)
	admin.POST("/blog", gate, cfg.AdminContentHandler.CreateBlogPost)
	admin.PUT("/blog/:id", gate, cfg.AdminContentHandler.UpdateBlogPost)
	admin.DELETE("/blog/:id", gate, cfg.AdminContentHandler.DeleteBlogPost)

	admin.GET("/news", publicReadGate, cfg.AdminContentHandler.ListNews)
	admin.POST("/news", gate, cfg.AdminContentHandler.CreateNewsItem)
	admin.PUT("/news/:id", gate, cfg.AdminContentHandler.UpdateNewsItem)
	admin.DELETE("/news/:id", gate, cfg.AdminContentHandler.DeleteNewsItem)

	admin.GET("/lexemes", gate, cfg.AdminHandler.ListLexemes)
	admin.GET("/users", gate, cfg.AdminHandler.ListUsers)

	admin.GET("/daily-words", gate, cfg.AdminHandler.GetDailyWordHistory)
	admin.POST("/daily-words", gate, cfg.AdminHandler.SetDailyWord)
	admin.DELETE("/daily-words/current", gate, cfg.AdminHandler.ClearDailyWord)

	admin.GET("/stats/overview", gate, cfg.AdminHandler.GetStatsOverview)
	admin.GET("/audit-log", gate, cfg.AdminHandler.ListAuditLog)

	return router
}
