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
)

func newTestWordOfDayService(t *testing.T, tx *gorm.DB, now *time.Time) *wordOfDayService {
	t.Helper()
	log := testutil.Logger(t)
	return &wordOfDayService{
		db:         tx,
		log:        log,
		lexemeRepo: repos.NewLexemeRepo(tx, log),
		wodRepo:    repos.NewWordOfDayRepo(tx, log),
		now:        func() time.Time { return *now },
	}
}

func TestGetWordOfDayEmptyLexicon(t *testing.T) {
	tx := testutil.Tx(t, testutil.DB(t))
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	svc := newTestWordOfDayService(t, tx, &now)

	_, err := svc.GetWordOfDay(context.Background())
	assert.ErrorIs(t, err, ErrNoLexemes)
}

func TestGetWordOfDayCachesForTTL(t *testing.T) {
	tx := testutil.Tx(t, testutil.DB(t))
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	svc := newTestWordOfDayService(t, tx, &now)

	testutil.SeedLexeme(t, ctx, tx, "सत्यम्", "satyam", "truth")
	testutil.SeedLexeme(t, ctx, tx, "धर्म", "dharma", "duty")

	first, err := svc.GetWordOfDay(ctx)
	require.NoError(t, err)

	// Within the TTL the same word comes back.
	now = now.Add(23 * time.Hour)
	again, err := svc.GetWordOfDay(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
	assert.WithinDuration(t, first.SelectedAt, again.SelectedAt, time.Second)

	// After the TTL a different, unused word is selected.
	now = now.Add(2 * time.Hour)
	next, err := svc.GetWordOfDay(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, next.ID)
}

func TestGetWordOfDayResetsWhenExhausted(t *testing.T) {
	tx := testutil.Tx(t, testutil.DB(t))
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	svc := newTestWordOfDayService(t, tx, &now)

	lexeme := testutil.SeedLexeme(t, ctx, tx, "सत्यम्", "satyam", "truth")

	first, err := svc.GetWordOfDay(ctx)
	require.NoError(t, err)
	assert.Equal(t, lexeme.ID, first.ID)

	// Sole lexeme is already in the log; expiry must clear the log and
	// select it again rather than fail.
	now = now.Add(25 * time.Hour)
	second, err := svc.GetWordOfDay(ctx)
	require.NoError(t, err)
	assert.Equal(t, lexeme.ID, second.ID)
}

func TestSetAndClearWordOfDay(t *testing.T) {
	tx := testutil.Tx(t, testutil.DB(t))
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	svc := newTestWordOfDayService(t, tx, &now)

	a := testutil.SeedLexeme(t, ctx, tx, "सत्यम्", "satyam", "truth")
	b := testutil.SeedLexeme(t, ctx, tx, "धर्म", "dharma", "duty")

	forced, err := svc.SetWordOfDay(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, forced.ID)

	got, err := svc.GetWordOfDay(ctx)
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)

	require.NoError(t, svc.ClearCurrent(ctx))

	// b is logged, so the next rotation must pick a.
	got, err = svc.GetWordOfDay(ctx)
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)

	_, err = svc.SetWordOfDay(ctx, 99999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
