package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/keyvez/vaan-backend/internal/logger"
	"github.com/keyvez/vaan-backend/internal/repos"
	"github.com/keyvez/vaan-backend/internal/types"
)

const (
	defaultLearningLimit = 20
	maxLearningLimit     = 100
	recentWordsLimit     = 10
)

// LearningStats is the aggregate view returned by the stats endpoint.
type LearningStats struct {
	WordsStudied       int    `json:"words_studied"`
	FlashcardsReviewed int    `json:"flashcards_reviewed"`
	QuizzesTaken       int    `json:"quizzes_taken"`
	QuizzesCorrect     int    `json:"quizzes_correct"`
	QuizAccuracy       int    `json:"quiz_accuracy"`
	DifficultyLevel    string `json:"difficulty_level"`
	WordsReviewed      int64  `json:"words_reviewed"`
}

type ProgressView struct {
	Progress    *types.LearningProgress `json:"progress"`
	RecentWords []*types.WordProgress   `json:"recent_words"`
}

type LearningService interface {
	GetLearningWords(ctx context.Context, difficulty string, limit int) ([]*LearningWord, error)
	RecordFlashcardReview(ctx context.Context, userID string, babyNameID uint, confidence int) error
	RecordQuizAttempt(ctx context.Context, userID string, babyNameID uint, correct bool, difficulty string, answeredInMs int) error
	GetProgress(ctx context.Context, userID string) (*ProgressView, error)
	GetStats(ctx context.Context, userID string) (*LearningStats, error)
}

type learningService struct {
	db           *gorm.DB
	log          *logger.Logger
	lexemeRepo   repos.LexemeRepo
	progressRepo repos.ProgressRepo
	now          func() time.Time
}

func NewLearningService(db *gorm.DB, log *logger.Logger, lexemeRepo repos.LexemeRepo, progressRepo repos.ProgressRepo) LearningService {
	serviceLog := log.With("service", "LearningService")
	return &learningService{
		db:           db,
		log:          serviceLog,
		lexemeRepo:   lexemeRepo,
		progressRepo: progressRepo,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (ls *learningService) GetLearningWords(ctx context.Context, difficulty string, limit int) ([]*LearningWord, error) {
	if limit <= 0 {
		limit = defaultLearningLimit
	}
	if limit > maxLearningLimit {
		limit = maxLearningLimit
	}
	if normalizeDifficulty(difficulty) == "" {
		difficulty = ""
	}

	lexemes, err := ls.lexemeRepo.GetEnriched(ctx, nil, difficulty, limit)
	if err != nil {
		return nil, fmt.Errorf("load learning words: %w", err)
	}

	words := make([]*LearningWord, 0, len(lexemes))
	for _, lexeme := range lexemes {
		words = append(words, FormatLearningWord(lexeme))
	}
	return words, nil
}

func (ls *learningService) RecordFlashcardReview(ctx context.Context, userID string, babyNameID uint, confidence int) error {
	word, err := ls.progressRepo.GetWordProgress(ctx, nil, userID, babyNameID)
	if err != nil {
		return fmt.Errorf("load word progress: %w", err)
	}

	firstReview := word == nil
	if firstReview {
		word = &types.WordProgress{UserID: userID, BabyNameID: babyNameID}
	}
	word.ReviewCount++
	word.ConfidenceLevel = confidence
	reviewedAt := ls.now()
	word.LastReviewedAt = &reviewedAt

	if err := ls.progressRepo.SaveWordProgress(ctx, nil, word); err != nil {
		return fmt.Errorf("save word progress: %w", err)
	}

	progress, err := ls.loadOrInitProgress(ctx, userID)
	if err != nil {
		return err
	}
	progress.FlashcardsReviewed++
	if firstReview {
		progress.WordsStudied++
	}
	if err := ls.progressRepo.SaveLearningProgress(ctx, nil, progress); err != nil {
		return fmt.Errorf("save learning progress: %w", err)
	}
	return nil
}

func (ls *learningService) RecordQuizAttempt(ctx context.Context, userID string, babyNameID uint, correct bool, difficulty string, answeredInMs int) error {
	attempt := &types.QuizAttempt{
		ID:           uuid.New(),
		UserID:       userID,
		BabyNameID:   babyNameID,
		Correct:      correct,
		Difficulty:   normalizeDifficulty(difficulty),
		AnsweredInMs: answeredInMs,
	}
	if err := ls.progressRepo.AppendQuizAttempt(ctx, nil, attempt); err != nil {
		return fmt.Errorf("append quiz attempt: %w", err)
	}

	progress, err := ls.loadOrInitProgress(ctx, userID)
	if err != nil {
		return err
	}
	progress.QuizzesTaken++
	if correct {
		progress.QuizzesCorrect++
	}
	if err := ls.progressRepo.SaveLearningProgress(ctx, nil, progress); err != nil {
		return fmt.Errorf("save learning progress: %w", err)
	}
	return nil
}

func (ls *learningService) GetProgress(ctx context.Context, userID string) (*ProgressView, error) {
	progress, err := ls.progressRepo.GetLearningProgress(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("load learning progress: %w", err)
	}
	if progress == nil {
		progress = &types.LearningProgress{UserID: userID, DifficultyLevel: "beginner"}
	}

	recent, err := ls.progressRepo.RecentWordProgress(ctx, nil, userID, recentWordsLimit)
	if err != nil {
		return nil, fmt.Errorf("load recent words: %w", err)
	}

	return &ProgressView{Progress: progress, RecentWords: recent}, nil
}

func (ls *learningService) GetStats(ctx context.Context, userID string) (*LearningStats, error) {
	progress, err := ls.progressRepo.GetLearningProgress(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("load learning progress: %w", err)
	}
	if progress == nil {
		progress = &types.LearningProgress{UserID: userID, DifficultyLevel: "beginner"}
	}

	reviewed, err := ls.progressRepo.CountWordProgress(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("count reviewed words: %w", err)
	}

	return &LearningStats{
		WordsStudied:       progress.WordsStudied,
		FlashcardsReviewed: progress.FlashcardsReviewed,
		QuizzesTaken:       progress.QuizzesTaken,
		QuizzesCorrect:     progress.QuizzesCorrect,
		QuizAccuracy:       QuizAccuracy(progress.QuizzesCorrect, progress.QuizzesTaken),
		DifficultyLevel:    progress.DifficultyLevel,
		WordsReviewed:      reviewed,
	}, nil
}

func (ls *learningService) loadOrInitProgress(ctx context.Context, userID string) (*types.LearningProgress, error) {
	progress, err := ls.progressRepo.GetLearningProgress(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("load learning progress: %w", err)
	}
	if progress == nil {
		progress = &types.LearningProgress{UserID: userID, DifficultyLevel: "beginner"}
	}
	return progress, nil
}

// QuizAccuracy is the rounded percentage of correct quiz answers; 0 when no
// quizzes have been taken.
func QuizAccuracy(correct, taken int) int {
	if taken <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(correct) / float64(taken)))
}
