package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/keyvez/vaan-backend/internal/db"
	"github.com/keyvez/vaan-backend/internal/logger"
	"github.com/keyvez/vaan-backend/internal/repos"
	"github.com/keyvez/vaan-backend/internal/types"
	"github.com/keyvez/vaan-backend/internal/wordlist"
)

func main() {
	var (
		file        string
		dsn         string
		dryRun      bool
		limit       int
		batchSize   int
		skipMigrate bool
	)
	flag.StringVar(&file, "file", "", "wordlist file to ingest (required)")
	flag.StringVar(&dsn, "dsn", "", "postgres DSN (defaults to POSTGRES_* env vars)")
	flag.BoolVar(&dryRun, "dry-run", false, "parse and report without writing")
	flag.IntVar(&limit, "limit", 0, "max entries to ingest (0 = all)")
	flag.IntVar(&batchSize, "batch-size", 200, "rows per insert batch")
	flag.BoolVar(&skipMigrate, "skip-migrate", false, "skip gorm auto-migration")
	flag.Parse()

	if file == "" {
		fmt.Println("-file is required")
		flag.Usage()
		os.Exit(1)
	}
	if batchSize <= 0 {
		batchSize = 200
	}

	log, err := logger.New(os.Getenv("LOG_MODE"))
	if err != nil {
		fmt.Printf("init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	f, err := os.Open(file)
	if err != nil {
		fmt.Printf("open wordlist: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	entries, err := wordlist.ParseAll(f, limit)
	if err != nil {
		fmt.Printf("parse wordlist: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Parsed %d entries from %s\n", len(entries), file)

	if dryRun {
		for i, entry := range entries {
			if i >= 5 {
				break
			}
			fmt.Printf("  %s (%s) [%s] -> %s\n",
				entry.Sanskrit, entry.Transliteration, entry.PartOfSpeech,
				strings.Join(entry.EnglishMeanings, ", "))
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
	if !skipMigrate {
		if err := postgresService.AutoMigrateAll(); err != nil {
			fmt.Printf("auto migrate: %v\n", err)
			os.Exit(1)
		}
	}

	lexemeRepo := repos.NewLexemeRepo(postgresService.DB(), log)

	lexemes := make([]*types.Lexeme, 0, len(entries))
	for _, entry := range entries {
		lexemes = append(lexemes, toLexeme(entry))
	}

	ctx := context.Background()
	var inserted atomic.Int64

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(4)
	for start := 0; start < len(lexemes); start += batchSize {
		end := start + batchSize
		if end > len(lexemes) {
			end = len(lexemes)
		}
		batch := lexemes[start:end]
		group.Go(func() error {
			n, err := lexemeRepo.BulkInsert(groupCtx, nil, batch)
			if err != nil {
				return fmt.Errorf("insert batch: %w", err)
			}
			inserted.Add(n)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		fmt.Printf("ingest failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Inserted %d new lexemes (%d already present)\n",
		inserted.Load(), int64(len(lexemes))-inserted.Load())
}

func toLexeme(entry *wordlist.Entry) *types.Lexeme {
	meanings, _ := json.Marshal(entry.EnglishMeanings)
	return &types.Lexeme{
		Sanskrit:        entry.Sanskrit,
		Transliteration: entry.Transliteration,
		PrimaryMeaning:  entry.PrimaryMeaning,
		EnglishMeanings: string(meanings),
		PartOfSpeech:    entry.PartOfSpeech,
		HindiMeaning:    entry.HindiMeaning,
		Tags:            entry.Tags,
		RawEntry:        entry.Raw,
	}
}
