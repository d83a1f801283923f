package repos

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/keyvez/vaan-backend/internal/logger"
	"github.com/keyvez/vaan-backend/internal/types"
)

type BabyNameFilter struct {
	Gender string // "boy", "girl", "unisex" or "all"
	Letter string
	Search string
}

type BabyNameRepo interface {
	Create(ctx context.Context, tx *gorm.DB, name *types.BabyName) error
	GetBySlug(ctx context.Context, tx *gorm.DB, slug string) (*types.BabyName, error)
	SlugExists(ctx context.Context, tx *gorm.DB, slug string) (bool, error)
	List(ctx context.Context, tx *gorm.DB, filter BabyNameFilter) ([]*types.BabyName, error)
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
}

type babyNameRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBabyNameRepo(db *gorm.DB, baseLog *logger.Logger) BabyNameRepo {
	repoLog := baseLog.With("repo", "BabyNameRepo")
	return &babyNameRepo{db: db, log: repoLog}
}

func (br *babyNameRepo) Create(ctx context.Context, tx *gorm.DB, name *types.BabyName) error {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}

	return transaction.WithContext(ctx).Create(name).Error
}

func (br *babyNameRepo) GetBySlug(ctx context.Context, tx *gorm.DB, slug string) (*types.BabyName, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}

	var result types.BabyName
	err := transaction.WithContext(ctx).
		Where("slug = ?", slug).
		First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (br *babyNameRepo) SlugExists(ctx context.Context, tx *gorm.DB, slug string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.BabyName{}).
		Where("slug = ?", slug).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// List applies the browse filters. Gender filters include unisex names;
// search matches name and meaning case-insensitively.
func (br *babyNameRepo) List(ctx context.Context, tx *gorm.DB, filter BabyNameFilter) ([]*types.BabyName, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}

	q := transaction.WithContext(ctx).Model(&types.BabyName{})

	if filter.Gender != "" && filter.Gender != "all" {
		q = q.Where("(gender = ? OR gender = 'unisex')", filter.Gender)
	}
	if filter.Letter != "" {
		q = q.Where("first_letter = ?", strings.ToUpper(filter.Letter))
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where("(LOWER(name) LIKE LOWER(?) OR LOWER(meaning) LIKE LOWER(?) OR LOWER(pronunciation) LIKE LOWER(?))", pattern, pattern, pattern)
	}

	var results []*types.BabyName
	if err := q.Order("name ASC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (br *babyNameRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.BabyName{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
