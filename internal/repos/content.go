package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/keyvez/vaan-backend/internal/logger"
	"github.com/keyvez/vaan-backend/internal/types"
)

type VideoRepo interface {
	Create(ctx context.Context, tx *gorm.DB, video *types.Video) error
	List(ctx context.Context, tx *gorm.DB) ([]*types.Video, error)
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
}

type videoRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewVideoRepo(db *gorm.DB, baseLog *logger.Logger) VideoRepo {
	return &videoRepo{db: db, log: baseLog.With("repo", "VideoRepo")}
}

func (vr *videoRepo) Create(ctx context.Context, tx *gorm.DB, video *types.Video) error {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}
	return transaction.WithContext(ctx).Create(video).Error
}

func (vr *videoRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Video, error) {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}

	var results []*types.Video
	if err := transaction.WithContext(ctx).
		Order("published_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (vr *videoRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}

	res := transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.Video{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (vr *videoRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Video{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

type BlogPostRepo interface {
	Create(ctx context.Context, tx *gorm.DB, post *types.BlogPost) error
	Update(ctx context.Context, tx *gorm.DB, post *types.BlogPost) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.BlogPost, error)
	List(ctx context.Context, tx *gorm.DB, status string) ([]*types.BlogPost, error)
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
	CountByStatus(ctx context.Context, tx *gorm.DB, status string) (int64, error)
}

type blogPostRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBlogPostRepo(db *gorm.DB, baseLog *logger.Logger) BlogPostRepo {
	return &blogPostRepo{db: db, log: baseLog.With("repo", "BlogPostRepo")}
}

func (br *blogPostRepo) Create(ctx context.Context, tx *gorm.DB, post *types.BlogPost) error {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	return transaction.WithContext(ctx).Create(post).Error
}

func (br *blogPostRepo) Update(ctx context.Context, tx *gorm.DB, post *types.BlogPost) error {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	return transaction.WithContext(ctx).Save(post).Error
}

func (br *blogPostRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.BlogPost, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}

	var result types.BlogPost
	err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

// List filters by status unless status is "" or "all". Published posts sort
// by publish date, drafts by last update.
func (br *blogPostRepo) List(ctx context.Context, tx *gorm.DB, status string) ([]*types.BlogPost, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}

	q := transaction.WithContext(ctx).Model(&types.BlogPost{})
	if status != "" && status != "all" {
		q = q.Where("status = ?", status)
	}

	var results []*types.BlogPost
	if err := q.Order("updated_at DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (br *blogPostRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}

	res := transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.BlogPost{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (br *blogPostRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.BlogPost{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (br *blogPostRepo) CountByStatus(ctx context.Context, tx *gorm.DB, status string) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.BlogPost{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

type NewsRepo interface {
	Create(ctx context.Context, tx *gorm.DB, item *types.NewsItem) error
	Update(ctx context.Context, tx *gorm.DB, item *types.NewsItem) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.NewsItem, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.NewsItem, error)
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
}

type newsRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewNewsRepo(db *gorm.DB, baseLog *logger.Logger) NewsRepo {
	return &newsRepo{db: db, log: baseLog.With("repo", "NewsRepo")}
}

func (nr *newsRepo) Create(ctx context.Context, tx *gorm.DB, item *types.NewsItem) error {
	transaction := tx
	if transaction == nil {
		transaction = nr.db
	}
	return transaction.WithContext(ctx).Create(item).Error
}

func (nr *newsRepo) Update(ctx context.Context, tx *gorm.DB, item *types.NewsItem) error {
	transaction := tx
	if transaction == nil {
		transaction = nr.db
	}
	return transaction.WithContext(ctx).Save(item).Error
}

func (nr *newsRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.NewsItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = nr.db
	}

	var result types.NewsItem
	err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (nr *newsRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.NewsItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = nr.db
	}

	var results []*types.NewsItem
	if err := transaction.WithContext(ctx).
		Order("published_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (nr *newsRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = nr.db
	}

	res := transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.NewsItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (nr *newsRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = nr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.NewsItem{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
