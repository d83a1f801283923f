package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/keyvez/vaan-backend/internal/repos"
	"github.com/keyvez/vaan-backend/internal/repos/testutil"
)

type fakeTranslator struct {
	prefix   string
	failText string
	calls    []string
}

func (ft *fakeTranslator) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	ft.calls = append(ft.calls, text)
	if ft.failText != "" && text == ft.failText {
		return "", errors.New("provider unavailable")
	}
	return ft.prefix + text, nil
}

func newTestTranslationService(t *testing.T, tx *gorm.DB, translate TranslateClient) TranslationService {
	t.Helper()
	log := testutil.Logger(t)
	return NewTranslationService(tx, log, repos.NewTranslationRepo(tx, log), translate)
}

func TestSeedKeyAndGetTranslations(t *testing.T) {
	tx := testutil.Tx(t, testutil.DB(t))
	ctx := context.Background()
	svc := newTestTranslationService(t, tx, &fakeTranslator{})

	require.NoError(t, svc.SeedKey(ctx, "nav.home", "Home"))
	require.NoError(t, svc.SeedKey(ctx, "nav.learn", "Learn"))
	// Seeding twice is idempotent.
	require.NoError(t, svc.SeedKey(ctx, "nav.home", "Home"))

	got, err := svc.GetTranslations(ctx, "en")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"nav.home": "Home", "nav.learn": "Learn"}, got)

	empty, err := svc.GetTranslations(ctx, "hi")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestProcessBatchFillsMissingKeys(t *testing.T) {
	tx := testutil.Tx(t, testutil.DB(t))
	ctx := context.Background()
	translate := &fakeTranslator{prefix: "hi:"}
	svc := newTestTranslationService(t, tx, translate)

	require.NoError(t, svc.SeedKey(ctx, "nav.home", "Home"))
	require.NoError(t, svc.SeedKey(ctx, "nav.learn", "Learn"))

	require.NoError(t, svc.ProcessBatch(ctx, "hi"))
	assert.Len(t, translate.calls, 2)

	got, err := svc.GetTranslations(ctx, "hi")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"nav.home": "hi:Home", "nav.learn": "hi:Learn"}, got)

	// Nothing left to do on the second pass.
	translate.calls = nil
	require.NoError(t, svc.ProcessBatch(ctx, "hi"))
	assert.Empty(t, translate.calls)
}

func TestProcessBatchNeverTranslatesSourceLanguage(t *testing.T) {
	tx := testutil.Tx(t, testutil.DB(t))
	ctx := context.Background()
	translate := &fakeTranslator{}
	svc := newTestTranslationService(t, tx, translate)

	require.NoError(t, svc.SeedKey(ctx, "nav.home", "Home"))
	require.NoError(t, svc.ProcessBatch(ctx, "en"))
	assert.Empty(t, translate.calls)
}

func TestProcessBatchSkipsFailedKeys(t *testing.T) {
	tx := testutil.Tx(t, testutil.DB(t))
	ctx := context.Background()
	translate := &fakeTranslator{prefix: "hi:", failText: "Learn"}
	svc := newTestTranslationService(t, tx, translate)

	require.NoError(t, svc.SeedKey(ctx, "nav.home", "Home"))
	require.NoError(t, svc.SeedKey(ctx, "nav.learn", "Learn"))

	// A per-key provider failure does not fail the batch.
	require.NoError(t, svc.ProcessBatch(ctx, "hi"))

	got, err := svc.GetTranslations(ctx, "hi")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"nav.home": "hi:Home"}, got)

	// The skipped key is retried next pass.
	translate.failText = ""
	require.NoError(t, svc.ProcessBatch(ctx, "hi"))
	got, err = svc.GetTranslations(ctx, "hi")
	require.NoError(t, err)
	assert.Equal(t, "hi:Learn", got["nav.learn"])
}
