package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/keyvez/vaan-backend/internal/logger"
	"github.com/keyvez/vaan-backend/internal/types"
)

type AuditLogRepo interface {
	Append(ctx context.Context, tx *gorm.DB, entry *types.AuditLog) error
	List(ctx context.Context, tx *gorm.DB, limit, offset int) ([]*types.AuditLog, int64, error)
}

type auditLogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAuditLogRepo(db *gorm.DB, baseLog *logger.Logger) AuditLogRepo {
	repoLog := baseLog.With("repo", "AuditLogRepo")
	return &auditLogRepo{db: db, log: repoLog}
}

func (ar *auditLogRepo) Append(ctx context.Context, tx *gorm.DB, entry *types.AuditLog) error {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	return transaction.WithContext(ctx).Create(entry).Error
}

func (ar *auditLogRepo) List(ctx context.Context, tx *gorm.DB, limit, offset int) ([]*types.AuditLog, int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var total int64
	if err := transaction.WithContext(ctx).
		Model(&types.AuditLog{}).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var results []*types.AuditLog
	if err := transaction.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&results).Error; err != nil {
		return nil, 0, err
	}
	return results, total, nil
}
