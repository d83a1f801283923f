package repos

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/keyvez/vaan-backend/internal/logger"
	"github.com/keyvez/vaan-backend/internal/types"
)

type ProgressRepo interface {
	GetLearningProgress(ctx context.Context, tx *gorm.DB, userID string) (*types.LearningProgress, error)
	SaveLearningProgress(ctx context.Context, tx *gorm.DB, progress *types.LearningProgress) error
	GetWordProgress(ctx context.Context, tx *gorm.DB, userID string, babyNameID uint) (*types.WordProgress, error)
	SaveWordProgress(ctx context.Context, tx *gorm.DB, progress *types.WordProgress) error
	RecentWordProgress(ctx context.Context, tx *gorm.DB, userID string, limit int) ([]*types.WordProgress, error)
	CountWordProgress(ctx context.Context, tx *gorm.DB, userID string) (int64, error)
	AppendQuizAttempt(ctx context.Context, tx *gorm.DB, attempt *types.QuizAttempt) error
}

type progressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProgressRepo(db *gorm.DB, baseLog *logger.Logger) ProgressRepo {
	repoLog := baseLog.With("repo", "ProgressRepo")
	return &progressRepo{db: db, log: repoLog}
}

func (pr *progressRepo) GetLearningProgress(ctx context.Context, tx *gorm.DB, userID string) (*types.LearningProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var result types.LearningProgress
	err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (pr *progressRepo) SaveLearningProgress(ctx context.Context, tx *gorm.DB, progress *types.LearningProgress) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	return transaction.WithContext(ctx).Save(progress).Error
}

func (pr *progressRepo) GetWordProgress(ctx context.Context, tx *gorm.DB, userID string, babyNameID uint) (*types.WordProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var result types.WordProgress
	err := transaction.WithContext(ctx).
		Where("user_id = ? AND baby_name_id = ?", userID, babyNameID).
		First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (pr *progressRepo) SaveWordProgress(ctx context.Context, tx *gorm.DB, progress *types.WordProgress) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	return transaction.WithContext(ctx).Save(progress).Error
}

func (pr *progressRepo) RecentWordProgress(ctx context.Context, tx *gorm.DB, userID string, limit int) ([]*types.WordProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var results []*types.WordProgress
	if err := transaction.WithContext(ctx).
		Preload("BabyName").
		Where("user_id = ?", userID).
		Order("last_reviewed_at DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *progressRepo) CountWordProgress(ctx context.Context, tx *gorm.DB, userID string) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.WordProgress{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (pr *progressRepo) AppendQuizAttempt(ctx context.Context, tx *gorm.DB, attempt *types.QuizAttempt) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	if attempt.CreatedAt.IsZero() {
		attempt.CreatedAt = time.Now().UTC()
	}
	return transaction.WithContext(ctx).Create(attempt).Error
}
