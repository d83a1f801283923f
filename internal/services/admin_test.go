package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/keyvez/vaan-backend/internal/repos"
	"github.com/keyvez/vaan-backend/internal/repos/testutil"
	"github.com/keyvez/vaan-backend/internal/types"
)

func newTestAdminService(t *testing.T, tx *gorm.DB) AdminService {
	t.Helper()
	log := testutil.Logger(t)
	return NewAdminService(tx, log,
		repos.NewUserRepo(tx, log),
		repos.NewAuditLogRepo(tx, log),
		repos.NewLexemeRepo(tx, log),
		repos.NewBabyNameRepo(tx, log),
		repos.NewVideoRepo(tx, log),
		repos.NewBlogPostRepo(tx, log),
		repos.NewNewsRepo(tx, log),
	)
}

func TestCheckAdmin(t *testing.T) {
	tx := testutil.Tx(t, testutil.DB(t))
	ctx := context.Background()
	svc := newTestAdminService(t, tx)

	testutil.SeedUser(t, ctx, tx, "admin-1", "admin@example.com", true)
	testutil.SeedUser(t, ctx, tx, "user-1", "user@example.com", false)

	isAdmin, err := svc.CheckAdmin(ctx, "admin-1")
	require.NoError(t, err)
	assert.True(t, isAdmin)

	isAdmin, err = svc.CheckAdmin(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, isAdmin)

	// Unknown users are simply not admins, not an error.
	isAdmin, err = svc.CheckAdmin(ctx, "ghost")
	require.NoError(t, err)
	assert.False(t, isAdmin)
}

func TestGrantAdminAuditsBothDirections(t *testing.T) {
	tx := testutil.Tx(t, testutil.DB(t))
	ctx := context.Background()
	svc := newTestAdminService(t, tx)

	testutil.SeedUser(t, ctx, tx, "admin-1", "admin@example.com", true)
	testutil.SeedUser(t, ctx, tx, "user-1", "user@example.com", false)

	require.NoError(t, svc.GrantAdmin(ctx, "admin-1", "user-1", true))
	isAdmin, err := svc.CheckAdmin(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, isAdmin)

	require.NoError(t, svc.GrantAdmin(ctx, "admin-1", "user-1", false))
	isAdmin, err = svc.CheckAdmin(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, isAdmin)

	assert.ErrorIs(t, svc.GrantAdmin(ctx, "admin-1", "ghost", true), ErrUserNotFound)

	page, err := svc.ListAuditLog(ctx, 10, 0)
	require.NoError(t, err)
	require.Equal(t, int64(2), page.Total)
	actions := []string{page.Entries[0].Action, page.Entries[1].Action}
	assert.Contains(t, actions, "grant_admin")
	assert.Contains(t, actions, "revoke_admin")
	for _, entry := range page.Entries {
		assert.Equal(t, "admin-1", entry.ActorID)
		assert.Equal(t, "user", entry.ResourceType)
		assert.Equal(t, "user-1", entry.ResourceID)
	}
}

func TestRecordActionWithMetadata(t *testing.T) {
	tx := testutil.Tx(t, testutil.DB(t))
	ctx := context.Background()
	svc := newTestAdminService(t, tx)

	svc.RecordAction(ctx, "admin-1", "set_daily_word", "lexeme", "42", map[string]string{"sanskrit": "सत्यम्"})

	page, err := svc.ListAuditLog(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, page.Entries, 1)
	assert.JSONEq(t, `{"sanskrit":"सत्यम्"}`, string(page.Entries[0].Metadata))
}

func TestGetStatsOverview(t *testing.T) {
	tx := testutil.Tx(t, testutil.DB(t))
	ctx := context.Background()
	svc := newTestAdminService(t, tx)

	testutil.SeedUser(t, ctx, tx, "user-1", "u@example.com", false)
	lex := testutil.SeedLexeme(t, ctx, tx, "तारा", "tara", "star")
	testutil.SeedBabyName(t, ctx, tx, "Tara", "tara", "girl", lex.ID)

	require.NoError(t, tx.Create(&types.BlogPost{ID: uuid.New(), Title: "Live", Slug: "live", Status: types.BlogStatusPublished}).Error)
	require.NoError(t, tx.Create(&types.BlogPost{ID: uuid.New(), Title: "Draft", Slug: "draft", Status: types.BlogStatusDraft}).Error)

	overview, err := svc.GetStatsOverview(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), overview.Users.Total)
	assert.Equal(t, int64(1), overview.Content.Lexemes)
	assert.Equal(t, int64(1), overview.Content.BabyNames)
	assert.Equal(t, int64(2), overview.Content.BlogPosts)
	assert.Equal(t, int64(1), overview.Content.PublishedBlogs)
	assert.Equal(t, int64(1), overview.Content.DraftBlogs)
	assert.Zero(t, overview.Content.Videos)
	assert.Zero(t, overview.Content.News)
}

func TestListUsersPagination(t *testing.T) {
	tx := testutil.Tx(t, testutil.DB(t))
	ctx := context.Background()
	svc := newTestAdminService(t, tx)

	testutil.SeedUser(t, ctx, tx, "a", "alpha@example.com", false)
	testutil.SeedUser(t, ctx, tx, "b", "beta@example.com", false)
	testutil.SeedUser(t, ctx, tx, "c", "gamma@example.com", true)

	page, err := svc.ListUsers(ctx, "", 2, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	assert.Len(t, page.Users, 2)

	page, err = svc.ListUsers(ctx, "beta", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	require.Len(t, page.Users, 1)
	assert.Equal(t, "b", page.Users[0].ID)
}
