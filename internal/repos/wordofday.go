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

// StateRowID is the fixed id of the singleton word-of-day state row.
const StateRowID = 1

type WordOfDayRepo interface {
	GetState(ctx context.Context, tx *gorm.DB) (*types.WordOfDayState, error)
	UpsertState(ctx context.Context, tx *gorm.DB, lexemeID uint, selectedAt time.Time) error
	DeleteState(ctx context.Context, tx *gorm.DB) error
	AppendLog(ctx context.Context, tx *gorm.DB, lexemeID uint) error
	ClearLog(ctx context.Context, tx *gorm.DB) error
	LogCount(ctx context.Context, tx *gorm.DB) (int64, error)
	LogHistory(ctx context.Context, tx *gorm.DB, limit, offset int) ([]*types.WordOfDayLog, int64, error)
}

type wordOfDayRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewWordOfDayRepo(db *gorm.DB, baseLog *logger.Logger) WordOfDayRepo {
	repoLog := baseLog.With("repo", "WordOfDayRepo")
	return &wordOfDayRepo{db: db, log: repoLog}
}

// GetState returns the singleton state row with its lexeme, or nil when no
// selection is cached.
func (wr *wordOfDayRepo) GetState(ctx context.Context, tx *gorm.DB) (*types.WordOfDayState, error) {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}

	var state types.WordOfDayState
	err := transaction.WithContext(ctx).
		Preload("Lexeme").
		Where("id = ?", StateRowID).
		First(&state).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &state, nil
}

func (wr *wordOfDayRepo) UpsertState(ctx context.Context, tx *gorm.DB, lexemeID uint, selectedAt time.Time) error {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}

	state := types.WordOfDayState{ID: StateRowID, LexemeID: lexemeID, SelectedAt: selectedAt}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"lexeme_id", "selected_at"}),
		}).
		Create(&state).Error
}

func (wr *wordOfDayRepo) DeleteState(ctx context.Context, tx *gorm.DB) error {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}

	return transaction.WithContext(ctx).
		Where("id = ?", StateRowID).
		Delete(&types.WordOfDayState{}).Error
}

// AppendLog is idempotent; selecting the same lexeme twice is not an error.
func (wr *wordOfDayRepo) AppendLog(ctx context.Context, tx *gorm.DB, lexemeID uint) error {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}

	entry := types.WordOfDayLog{LexemeID: lexemeID, SelectedAt: time.Now().UTC()}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&entry).Error
}

func (wr *wordOfDayRepo) ClearLog(ctx context.Context, tx *gorm.DB) error {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}

	return transaction.WithContext(ctx).
		Where("1 = 1").
		Delete(&types.WordOfDayLog{}).Error
}

func (wr *wordOfDayRepo) LogCount(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.WordOfDayLog{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (wr *wordOfDayRepo) LogHistory(ctx context.Context, tx *gorm.DB, limit, offset int) ([]*types.WordOfDayLog, int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}

	var total int64
	if err := transaction.WithContext(ctx).
		Model(&types.WordOfDayLog{}).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var results []*types.WordOfDayLog
	if err := transaction.WithContext(ctx).
		Preload("Lexeme").
		Order("selected_at DESC").
		Limit(limit).Offset(offset).
		Find(&results).Error; err != nil {
		return nil, 0, err
	}
	return results, total, nil
}
