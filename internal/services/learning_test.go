package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/keyvez/vaan-backend/internal/repos"
	"github.com/keyvez/vaan-backend/internal/repos/testutil"
	"github.com/keyvez/vaan-backend/internal/types"
)

func newTestLearningService(t *testing.T, tx *gorm.DB) *learningService {
	t.Helper()
	log := testutil.Logger(t)
	return &learningService{
		db:           tx,
		log:          log,
		lexemeRepo:   repos.NewLexemeRepo(tx, log),
		progressRepo: repos.NewProgressRepo(tx, log),
		now:          func() time.Time { return time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC) },
	}
}

func seedEnrichedLexeme(t *testing.T, ctx context.Context, tx *gorm.DB, sanskrit, difficulty string) *types.Lexeme {
	t.Helper()
	l := testutil.SeedLexeme(t, ctx, tx, sanskrit, "", "meaning")
	err := tx.Model(&types.Lexeme{}).Where("id = ?", l.ID).Updates(map[string]any{
		"baby_name_checked":    true,
		"improved_translation": "a richer meaning",
		"difficulty_level":     difficulty,
	}).Error
	require.NoError(t, err)
	return l
}

func TestGetLearningWords(t *testing.T) {
	tx := testutil.Tx(t, testutil.DB(t))
	ctx := context.Background()
	svc := newTestLearningService(t, tx)

	seedEnrichedLexeme(t, ctx, tx, "सत्यम्", "beginner")
	seedEnrichedLexeme(t, ctx, tx, "धर्म", "advanced")
	// Unenriched lexemes never surface in the learn flow.
	testutil.SeedLexeme(t, ctx, tx, "गच्छति", "gacchati", "goes")

	words, err := svc.GetLearningWords(ctx, "", 0)
	require.NoError(t, err)
	assert.Len(t, words, 2)

	words, err = svc.GetLearningWords(ctx, "beginner", 0)
	require.NoError(t, err)
	require.Len(t, words, 1)
	assert.Equal(t, "सत्यम्", words[0].Sanskrit)
	assert.Equal(t, "a richer meaning", words[0].ImprovedTranslation)

	// Unknown difficulty falls back to no filter.
	words, err = svc.GetLearningWords(ctx, "impossible", 0)
	require.NoError(t, err)
	assert.Len(t, words, 2)
}

func TestRecordFlashcardReview(t *testing.T) {
	tx := testutil.Tx(t, testutil.DB(t))
	ctx := context.Background()
	svc := newTestLearningService(t, tx)

	testutil.SeedUser(t, ctx, tx, "user-1", "u@example.com", false)
	lexeme := testutil.SeedLexeme(t, ctx, tx, "अर्जुन", "arjuna", "bright")
	name := testutil.SeedBabyName(t, ctx, tx, "अर्जुन", "arjuna", "boy", lexeme.ID)

	require.NoError(t, svc.RecordFlashcardReview(ctx, "user-1", name.ID, 2))
	require.NoError(t, svc.RecordFlashcardReview(ctx, "user-1", name.ID, 4))

	view, err := svc.GetProgress(ctx, "user-1")
	require.NoError(t, err)
	// Same word twice counts one word studied, two reviews.
	assert.Equal(t, 1, view.Progress.WordsStudied)
	assert.Equal(t, 2, view.Progress.FlashcardsReviewed)
	require.Len(t, view.RecentWords, 1)
	assert.Equal(t, 2, view.RecentWords[0].ReviewCount)
	assert.Equal(t, 4, view.RecentWords[0].ConfidenceLevel)
	require.NotNil(t, view.RecentWords[0].LastReviewedAt)
}

func TestRecordQuizAttempt(t *testing.T) {
	tx := testutil.Tx(t, testutil.DB(t))
	ctx := context.Background()
	svc := newTestLearningService(t, tx)

	testutil.SeedUser(t, ctx, tx, "user-1", "u@example.com", false)
	lexeme := testutil.SeedLexeme(t, ctx, tx, "अर्जुन", "arjuna", "bright")
	name := testutil.SeedBabyName(t, ctx, tx, "अर्जुन", "arjuna", "boy", lexeme.ID)

	require.NoError(t, svc.RecordQuizAttempt(ctx, "user-1", name.ID, true, "beginner", 1800))
	require.NoError(t, svc.RecordQuizAttempt(ctx, "user-1", name.ID, false, "beginner", 4000))
	require.NoError(t, svc.RecordQuizAttempt(ctx, "user-1", name.ID, true, "Expert", 900))

	stats, err := svc.GetStats(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 3, stats.QuizzesTaken)
	assert.Equal(t, 2, stats.QuizzesCorrect)
	assert.Equal(t, 67, stats.QuizAccuracy)

	var attempts []types.QuizAttempt
	require.NoError(t, tx.Where("user_id = ?", "user-1").Find(&attempts).Error)
	assert.Len(t, attempts, 3)
	for _, a := range attempts {
		// Unknown difficulty labels are dropped, not stored verbatim.
		assert.Contains(t, []string{"beginner", ""}, a.Difficulty)
	}
}

func TestGetStatsForNewUser(t *testing.T) {
	tx := testutil.Tx(t, testutil.DB(t))
	svc := newTestLearningService(t, tx)

	stats, err := svc.GetStats(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Zero(t, stats.WordsStudied)
	assert.Zero(t, stats.QuizAccuracy)
	assert.Equal(t, "beginner", stats.DifficultyLevel)
	assert.Zero(t, stats.WordsReviewed)
}

func TestQuizAccuracy(t *testing.T) {
	tests := []struct {
		correct, taken, want int
	}{
		{0, 0, 0},
		{5, 0, 0},
		{0, 4, 0},
		{4, 4, 100},
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 13},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, QuizAccuracy(tt.correct, tt.taken), "%d/%d", tt.correct, tt.taken)
	}
}
