package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/keyvez/vaan-backend/internal/logger"
	"github.com/keyvez/vaan-backend/internal/repos"
	"github.com/keyvez/vaan-backend/internal/types"
)

// WordTTL is how long a selection stays the word of the day.
const WordTTL = 24 * time.Hour

// ErrNoLexemes means the lexicon is empty and nothing can be featured.
var ErrNoLexemes = fmt.Errorf("no lexemes available")

type WordOfDayService interface {
	GetWordOfDay(ctx context.Context) (*Word, error)
	SetWordOfDay(ctx context.Context, lexemeID uint) (*Word, error)
	ClearCurrent(ctx context.Context) error
	History(ctx context.Context, limit, offset int) ([]*types.WordOfDayLog, int64, error)
}

type wordOfDayService struct {
	db         *gorm.DB
	log        *logger.Logger
	lexemeRepo repos.LexemeRepo
	wodRepo    repos.WordOfDayRepo
	now        func() time.Time
}

func NewWordOfDayService(db *gorm.DB, log *logger.Logger, lexemeRepo repos.LexemeRepo, wodRepo repos.WordOfDayRepo) WordOfDayService {
	serviceLog := log.With("service", "WordOfDayService")
	return &wordOfDayService{
		db:         db,
		log:        serviceLog,
		lexemeRepo: lexemeRepo,
		wodRepo:    wodRepo,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// GetWordOfDay returns the cached selection while it is younger than 24
// hours, otherwise rotates to a lexeme that has not been featured yet. When
// every lexeme has been used once the usage log is cleared and selection
// starts over.
func (ws *wordOfDayService) GetWordOfDay(ctx context.Context) (*Word, error) {
	cached, err := ws.getCachedWord(ctx)
	if err != nil {
		return nil, err
	}
	if cached != nil {
		return cached, nil
	}

	lexeme, err := ws.pickNextLexeme(ctx, true)
	if err != nil {
		return nil, err
	}

	if err := ws.wodRepo.AppendLog(ctx, nil, lexeme.ID); err != nil {
		return nil, fmt.Errorf("append word-of-day log: %w", err)
	}

	selectedAt := ws.now()
	if err := ws.wodRepo.UpsertState(ctx, nil, lexeme.ID, selectedAt); err != nil {
		return nil, fmt.Errorf("upsert word-of-day state: %w", err)
	}

	return FormatLexeme(lexeme, selectedAt), nil
}

func (ws *wordOfDayService) getCachedWord(ctx context.Context) (*Word, error) {
	state, err := ws.wodRepo.GetState(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("load word-of-day state: %w", err)
	}
	if state == nil {
		return nil, nil
	}
	if state.Lexeme == nil {
		// Dangling state row; treat as expired.
		if err := ws.wodRepo.DeleteState(ctx, nil); err != nil {
			return nil, err
		}
		return nil, nil
	}

	age := ws.now().Sub(state.SelectedAt)
	if age < WordTTL {
		return FormatLexeme(state.Lexeme, state.SelectedAt), nil
	}

	if err := ws.wodRepo.DeleteState(ctx, nil); err != nil {
		return nil, fmt.Errorf("clear expired word-of-day state: %w", err)
	}
	return nil, nil
}

func (ws *wordOfDayService) pickNextLexeme(ctx context.Context, allowReset bool) (*types.Lexeme, error) {
	lexeme, err := ws.lexemeRepo.PickRandomUnused(ctx, nil)
	if err == nil {
		return lexeme, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("pick unused lexeme: %w", err)
	}

	if !allowReset {
		return nil, ErrNoLexemes
	}

	// Every lexeme has been featured once; start the cycle over.
	ws.log.Info("Word-of-day log exhausted, resetting")
	if err := ws.wodRepo.ClearLog(ctx, nil); err != nil {
		return nil, fmt.Errorf("clear word-of-day log: %w", err)
	}
	return ws.pickNextLexeme(ctx, false)
}

// SetWordOfDay lets an operator force today's word to a specific lexeme.
func (ws *wordOfDayService) SetWordOfDay(ctx context.Context, lexemeID uint) (*Word, error) {
	lexeme, err := ws.lexemeRepo.GetByID(ctx, nil, lexemeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, fmt.Errorf("load lexeme: %w", err)
	}

	if err := ws.wodRepo.AppendLog(ctx, nil, lexeme.ID); err != nil {
		return nil, fmt.Errorf("append word-of-day log: %w", err)
	}

	selectedAt := ws.now()
	if err := ws.wodRepo.UpsertState(ctx, nil, lexeme.ID, selectedAt); err != nil {
		return nil, fmt.Errorf("upsert word-of-day state: %w", err)
	}
	return FormatLexeme(lexeme, selectedAt), nil
}

// ClearCurrent drops the cached selection so the next request rotates.
func (ws *wordOfDayService) ClearCurrent(ctx context.Context) error {
	return ws.wodRepo.DeleteState(ctx, nil)
}

// History lists past selections, newest first.
func (ws *wordOfDayService) History(ctx context.Context, limit, offset int) ([]*types.WordOfDayLog, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 30
	}
	if offset < 0 {
		offset = 0
	}
	return ws.wodRepo.LogHistory(ctx, nil, limit, offset)
}
