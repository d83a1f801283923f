package repos

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/keyvez/vaan-backend/internal/logger"
	"github.com/keyvez/vaan-backend/internal/types"
)

type LexemeRepo interface {
	BulkInsert(ctx context.Context, tx *gorm.DB, lexemes []*types.Lexeme) (int64, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Lexeme, error)
	PickRandomUnused(ctx context.Context, tx *gorm.DB) (*types.Lexeme, error)
	GetUnchecked(ctx context.Context, tx *gorm.DB, limit int, priorityLetter string) ([]*types.Lexeme, error)
	MarkChecked(ctx context.Context, tx *gorm.DB, id uint) error
	SaveEnrichment(ctx context.Context, tx *gorm.DB, id uint, fields map[string]any) error
	GetEnriched(ctx context.Context, tx *gorm.DB, difficulty string, limit int) ([]*types.Lexeme, error)
	Search(ctx context.Context, tx *gorm.DB, query string, limit, offset int) ([]*types.Lexeme, int64, error)
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
}

type lexemeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLexemeRepo(db *gorm.DB, baseLog *logger.Logger) LexemeRepo {
	repoLog := baseLog.With("repo", "LexemeRepo")
	return &lexemeRepo{db: db, log: repoLog}
}

func (lr *lexemeRepo) BulkInsert(ctx context.Context, tx *gorm.DB, lexemes []*types.Lexeme) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	if len(lexemes) == 0 {
		return 0, nil
	}

	res := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "raw_entry"}},
			DoNothing: true,
		}).
		Create(&lexemes)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (lr *lexemeRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Lexeme, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	var result types.Lexeme
	if err := transaction.WithContext(ctx).
		First(&result, id).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

// PickRandomUnused returns a uniformly random lexeme whose id is not yet in
// the word-of-day log, or gorm.ErrRecordNotFound when none remain.
func (lr *lexemeRepo) PickRandomUnused(ctx context.Context, tx *gorm.DB) (*types.Lexeme, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	var result types.Lexeme
	if err := transaction.WithContext(ctx).
		Where("id NOT IN (?)", transaction.Model(&types.WordOfDayLog{}).Select("lexeme_id")).
		Order("RANDOM()").
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

// GetUnchecked returns up to limit lexemes awaiting enrichment. When a
// priority letter is given, lexemes whose transliteration starts with it
// sort first; remaining order is random.
func (lr *lexemeRepo) GetUnchecked(ctx context.Context, tx *gorm.DB, limit int, priorityLetter string) ([]*types.Lexeme, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	var results []*types.Lexeme
	q := transaction.WithContext(ctx).
		Where("baby_name_checked = ?", false).
		Limit(limit)

	if letter, ok := normalizeLetter(priorityLetter); ok {
		q = q.Order(fmt.Sprintf("CASE WHEN UPPER(SUBSTR(transliteration, 1, 1)) = '%s' THEN 0 ELSE 1 END, RANDOM()", letter))
	} else {
		q = q.Order("RANDOM()")
	}

	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (lr *lexemeRepo) MarkChecked(ctx context.Context, tx *gorm.DB, id uint) error {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	return transaction.WithContext(ctx).
		Model(&types.Lexeme{}).
		Where("id = ?", id).
		Update("baby_name_checked", true).Error
}

// SaveEnrichment marks the lexeme checked and persists whatever fields the
// pipeline produced in one UPDATE.
func (lr *lexemeRepo) SaveEnrichment(ctx context.Context, tx *gorm.DB, id uint, fields map[string]any) error {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	updates := map[string]any{"baby_name_checked": true}
	for k, v := range fields {
		updates[k] = v
	}

	return transaction.WithContext(ctx).
		Model(&types.Lexeme{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (lr *lexemeRepo) GetEnriched(ctx context.Context, tx *gorm.DB, difficulty string, limit int) ([]*types.Lexeme, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	var results []*types.Lexeme
	q := transaction.WithContext(ctx).
		Where("baby_name_checked = ?", true).
		Where("improved_translation <> ''")
	if difficulty != "" {
		q = q.Where("difficulty_level = ?", difficulty)
	}

	if err := q.Order("RANDOM()").Limit(limit).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (lr *lexemeRepo) Search(ctx context.Context, tx *gorm.DB, query string, limit, offset int) ([]*types.Lexeme, int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	q := transaction.WithContext(ctx).Model(&types.Lexeme{})
	if query != "" {
		pattern := "%" + query + "%"
		q = q.Where(
			"sanskrit LIKE ? OR LOWER(transliteration) LIKE LOWER(?) OR LOWER(primary_meaning) LIKE LOWER(?)",
			pattern, pattern, pattern,
		)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var results []*types.Lexeme
	if err := q.Order("id ASC").Limit(limit).Offset(offset).Find(&results).Error; err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

func (lr *lexemeRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Lexeme{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// normalizeLetter reduces a browse-letter parameter to a single upper-case
// ASCII letter; anything else is treated as no priority.
func normalizeLetter(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) != 1 {
		return "", false
	}
	c := s[0]
	if c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}
	if c < 'A' || c > 'Z' {
		return "", false
	}
	return string(c), true
}
