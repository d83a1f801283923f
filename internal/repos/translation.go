package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/keyvez/vaan-backend/internal/logger"
	"github.com/keyvez/vaan-backend/internal/types"
)

type TranslationRepo interface {
	GetForLanguage(ctx context.Context, tx *gorm.DB, languageCode string) ([]*types.Translation, error)
	MissingKeys(ctx context.Context, tx *gorm.DB, languageCode string, limit int) ([]*types.TranslationKey, error)
	Upsert(ctx context.Context, tx *gorm.DB, key, languageCode, sourceText, translatedText string) error
	UpsertKey(ctx context.Context, tx *gorm.DB, key, sourceText string) error
}

type translationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTranslationRepo(db *gorm.DB, baseLog *logger.Logger) TranslationRepo {
	repoLog := baseLog.With("repo", "TranslationRepo")
	return &translationRepo{db: db, log: repoLog}
}

func (tr *translationRepo) GetForLanguage(ctx context.Context, tx *gorm.DB, languageCode string) ([]*types.Translation, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	var results []*types.Translation
	if err := transaction.WithContext(ctx).
		Where("language_code = ?", languageCode).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// MissingKeys returns up to limit registry keys with no translation for the
// language yet, in random order.
func (tr *translationRepo) MissingKeys(ctx context.Context, tx *gorm.DB, languageCode string, limit int) ([]*types.TranslationKey, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	var results []*types.TranslationKey
	if err := transaction.WithContext(ctx).
		Model(&types.TranslationKey{}).
		Joins("LEFT JOIN translations ON translations.translation_key = translation_keys.translation_key AND translations.language_code = ?", languageCode).
		Where("translations.id IS NULL").
		Order("RANDOM()").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *translationRepo) Upsert(ctx context.Context, tx *gorm.DB, key, languageCode, sourceText, translatedText string) error {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	row := types.Translation{
		ID:             uuid.New(),
		TranslationKey: key,
		LanguageCode:   languageCode,
		SourceText:     sourceText,
		TranslatedText: translatedText,
		UpdatedAt:      time.Now().UTC(),
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "translation_key"}, {Name: "language_code"}},
			DoUpdates: clause.AssignmentColumns([]string{"translated_text", "updated_at"}),
		}).
		Create(&row).Error
}

func (tr *translationRepo) UpsertKey(ctx context.Context, tx *gorm.DB, key, sourceText string) error {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	row := types.TranslationKey{TranslationKey: key, SourceText: sourceText}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "translation_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"source_text"}),
		}).
		Create(&row).Error
}
