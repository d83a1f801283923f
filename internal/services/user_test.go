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

func newTestUserService(t *testing.T, tx *gorm.DB) *userService {
	t.Helper()
	log := testutil.Logger(t)
	return &userService{
		db:       tx,
		log:      log,
		userRepo: repos.NewUserRepo(tx, log),
		now:      func() time.Time { return time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC) },
	}
}

func TestUpsertUserCreatesAndRefreshes(t *testing.T) {
	tx := testutil.Tx(t, testutil.DB(t))
	ctx := context.Background()
	svc := newTestUserService(t, tx)

	user, err := svc.UpsertUser(ctx, UpsertUserInput{
		ID:      " google-123 ",
		Email:   "user@example.com",
		Name:    "Asha",
		Picture: "https://example.com/p.jpg",
	})
	require.NoError(t, err)
	assert.Equal(t, "google-123", user.ID)
	assert.Equal(t, "Asha", user.Name)
	assert.False(t, user.IsAdmin)

	// A later login refreshes the profile but keeps admin status.
	require.NoError(t, tx.Model(user).Update("is_admin", true).Error)
	user, err = svc.UpsertUser(ctx, UpsertUserInput{
		ID:    "google-123",
		Email: "user@example.com",
		Name:  "Asha D",
	})
	require.NoError(t, err)
	assert.Equal(t, "Asha D", user.Name)
	assert.True(t, user.IsAdmin)
}

func TestUpsertUserValidation(t *testing.T) {
	tx := testutil.Tx(t, testutil.DB(t))
	svc := newTestUserService(t, tx)

	_, err := svc.UpsertUser(context.Background(), UpsertUserInput{ID: "", Email: "a@b.c"})
	assert.ErrorIs(t, err, ErrInvalidUser)

	_, err = svc.UpsertUser(context.Background(), UpsertUserInput{ID: "id", Email: "  "})
	assert.ErrorIs(t, err, ErrInvalidUser)
}

func TestGetUser(t *testing.T) {
	tx := testutil.Tx(t, testutil.DB(t))
	ctx := context.Background()
	svc := newTestUserService(t, tx)

	testutil.SeedUser(t, ctx, tx, "user-1", "u@example.com", false)

	user, err := svc.GetUser(ctx, "user-1")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "u@example.com", user.Email)

	missing, err := svc.GetUser(ctx, "ghost")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
