package repos

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/keyvez/vaan-backend/internal/logger"
	"github.com/keyvez/vaan-backend/internal/types"
)

type UserRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, user *types.User) error
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*types.User, error)
	SetAdmin(ctx context.Context, tx *gorm.DB, id string, admin bool) error
	List(ctx context.Context, tx *gorm.DB, search string, limit, offset int) ([]*types.User, int64, error)
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
	CountCreatedSince(ctx context.Context, tx *gorm.DB, since time.Time) (int64, error)
	CountActiveSince(ctx context.Context, tx *gorm.DB, since time.Time) (int64, error)
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	repoLog := baseLog.With("repo", "UserRepo")
	return &userRepo{db: db, log: repoLog}
}

// Upsert refreshes the profile fields on every login but never touches
// is_admin.
func (ur *userRepo) Upsert(ctx context.Context, tx *gorm.DB, user *types.User) error {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"email", "name", "picture", "last_login_at", "updated_at"}),
		}).
		Create(user).Error
}

func (ur *userRepo) GetByID(ctx context.Context, tx *gorm.DB, id string) (*types.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	var result types.User
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

func (ur *userRepo) SetAdmin(ctx context.Context, tx *gorm.DB, id string, admin bool) error {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	res := transaction.WithContext(ctx).
		Model(&types.User{}).
		Where("id = ?", id).
		Update("is_admin", admin)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (ur *userRepo) List(ctx context.Context, tx *gorm.DB, search string, limit, offset int) ([]*types.User, int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	q := transaction.WithContext(ctx).Model(&types.User{})
	if search != "" {
		pattern := "%" + search + "%"
		q = q.Where("LOWER(email) LIKE LOWER(?) OR LOWER(name) LIKE LOWER(?)", pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var results []*types.User
	if err := q.Order("last_login_at DESC").Limit(limit).Offset(offset).Find(&results).Error; err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

func (ur *userRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.User{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (ur *userRepo) CountCreatedSince(ctx context.Context, tx *gorm.DB, since time.Time) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.User{}).
		Where("created_at >= ?", since).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (ur *userRepo) CountActiveSince(ctx context.Context, tx *gorm.DB, since time.Time) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.User{}).
		Where("last_login_at >= ?", since).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
