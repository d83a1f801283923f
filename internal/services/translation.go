package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/keyvez/vaan-backend/internal/logger"
	"github.com/keyvez/vaan-backend/internal/repos"
)

// TranslationBatchSize caps how many missing keys one background pass
// attempts to fill.
const TranslationBatchSize = 5

// SourceLanguage is the authored language; it is never auto-translated.
const SourceLanguage = "en"

type TranslationService interface {
	GetTranslations(ctx context.Context, languageCode string) (map[string]string, error)
	ProcessBatch(ctx context.Context, languageCode string) error
	SeedKey(ctx context.Context, key, sourceText string) error
}

type translationService struct {
	db        *gorm.DB
	log       *logger.Logger
	repo      repos.TranslationRepo
	translate TranslateClient
}

func NewTranslationService(db *gorm.DB, log *logger.Logger, repo repos.TranslationRepo, translate TranslateClient) TranslationService {
	serviceLog := log.With("service", "TranslationService")
	return &translationService{
		db:        db,
		log:       serviceLog,
		repo:      repo,
		translate: translate,
	}
}

func (ts *translationService) GetTranslations(ctx context.Context, languageCode string) (map[string]string, error) {
	rows, err := ts.repo.GetForLanguage(ctx, nil, languageCode)
	if err != nil {
		return nil, fmt.Errorf("load translations: %w", err)
	}

	translations := make(map[string]string, len(rows))
	for _, row := range rows {
		translations[row.TranslationKey] = row.TranslatedText
	}
	return translations, nil
}

// ProcessBatch fills up to TranslationBatchSize random gaps for the
// language. Per-key failures are logged and skipped; the batch carries on.
func (ts *translationService) ProcessBatch(ctx context.Context, languageCode string) error {
	if languageCode == SourceLanguage {
		return nil
	}

	missing, err := ts.repo.MissingKeys(ctx, nil, languageCode, TranslationBatchSize)
	if err != nil {
		return fmt.Errorf("load untranslated keys: %w", err)
	}
	if len(missing) == 0 {
		ts.log.Debug("No untranslated strings found", "language", languageCode)
		return nil
	}
	ts.log.Info("Translating missing strings", "language", languageCode, "count", len(missing))

	for _, key := range missing {
		translated, err := ts.translate.Translate(ctx, key.SourceText, languageCode)
		if err != nil {
			ts.log.Warn("Translation failed, skipping key", "key", key.TranslationKey, "language", languageCode, "error", err)
			continue
		}
		if err := ts.repo.Upsert(ctx, nil, key.TranslationKey, languageCode, key.SourceText, translated); err != nil {
			ts.log.Warn("Failed to save translation", "key", key.TranslationKey, "language", languageCode, "error", err)
			continue
		}
	}
	return nil
}

// SeedKey registers an authored string and its English value.
func (ts *translationService) SeedKey(ctx context.Context, key, sourceText string) error {
	if err := ts.repo.UpsertKey(ctx, nil, key, sourceText); err != nil {
		return fmt.Errorf("upsert translation key: %w", err)
	}
	if err := ts.repo.Upsert(ctx, nil, key, SourceLanguage, sourceText, sourceText); err != nil {
		return fmt.Errorf("upsert source translation: %w", err)
	}
	return nil
}
