package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/keyvez/vaan-backend/internal/db"
	"github.com/keyvez/vaan-backend/internal/logger"
	"github.com/keyvez/vaan-backend/internal/repos"
	"github.com/keyvez/vaan-backend/internal/services"
)

// Seeds the translation key registry from a YAML file of English master
// strings (key: source text). Other languages fill in lazily through the
// background translation batch.
func main() {
	var (
		file   string
		dsn    string
		dryRun bool
	)
	flag.StringVar(&file, "file", "locales/en.yaml", "YAML file of key: source text")
	flag.StringVar(&dsn, "dsn", "", "postgres DSN (defaults to POSTGRES_* env vars)")
	flag.BoolVar(&dryRun, "dry-run", false, "parse and report without writing")
	flag.Parse()

	log, err := logger.New(os.Getenv("LOG_MODE"))
	if err != nil {
		fmt.Printf("init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	raw, err := os.ReadFile(file)
	if err != nil {
		fmt.Printf("read locale file: %v\n", err)
		os.Exit(1)
	}

	var messages map[string]string
	if err := yaml.Unmarshal(raw, &messages); err != nil {
		fmt.Printf("parse locale file: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Parsed %d keys from %s\n", len(messages), file)

	keys := make([]string, 0, len(messages))
	for key := range messages {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	if dryRun {
		for i, key := range keys {
			if i >= 5 {
				break
			}
			fmt.Printf("  %s: %s\n", key, messages[key])
		}
		return
	}

	var postgresService *db.PostgresService
	if dsn != "" {
		postgresService, err = db.NewPostgresServiceWithDSN(dsn, log)
	} else {
		postgresService, err = db.NewPostgresService(log)
	}
	if err != nil {
		fmt.Printf("connect postgres: %v\n", err)
		os.Exit(1)
	}
	if err := postgresService.AutoMigrateAll(); err != nil {
		fmt.Printf("auto migrate: %v\n", err)
		os.Exit(1)
	}

	translationRepo := repos.NewTranslationRepo(postgresService.DB(), log)
	translateClient := services.NewTranslateClient(log)
	translationService := services.NewTranslationService(postgresService.DB(), log, translationRepo, translateClient)

	ctx := context.Background()
	seeded := 0
	for _, key := range keys {
		if err := translationService.SeedKey(ctx, key, messages[key]); err != nil {
			fmt.Printf("seed %s: %v\n", key, err)
			os.Exit(1)
		}
		seeded++
	}
	fmt.Printf("Seeded %d translation keys\n", seeded)
}
