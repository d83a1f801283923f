package middleware

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/keyvez/vaan-backend/internal/logger"
	"github.com/keyvez/vaan-backend/internal/types"
)

type fakeUserRepo struct {
	users map[string]*types.User
}

func (fr *fakeUserRepo) GetByID(ctx context.Context, tx *gorm.DB, id string) (*types.User, error) {
	return fr.users[id], nil
}

func (fr *fakeUserRepo) Upsert(ctx context.Context, tx *gorm.DB, user *types.User) error {
	fr.users[user.ID] = user
	return nil
}

func (fr *fakeUserRepo) List(ctx context.Context, tx *gorm.DB, search string, limit, offset int) ([]*types.User, int64, error) {
	return nil, 0, nil
}

func (fr *fakeUserRepo) SetAdmin(ctx context.Context, tx *gorm.DB, id string, admin bool) error {
	return nil
}

func (fr *fakeUserRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	return 0, nil
}

func (fr *fakeUserRepo) CountCreatedSince(ctx context.Context, tx *gorm.DB, since time.Time) (int64, error) {
	return 0, nil
}

func (fr *fakeUserRepo) CountActiveSince(ctx context.Context, tx *gorm.DB, since time.Time) (int64, error) {
	return 0, nil
}

func newGateRouter(t *testing.T, allowPublic bool) (*gin.Engine, *fakeUserRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log, err := logger.New("test")
	require.NoError(t, err)

	repo := &fakeUserRepo{users: map[string]*types.User{
		"admin-1": {ID: "admin-1", IsAdmin: true},
		"user-1":  {ID: "user-1"},
	}}
	am := NewAdminMiddleware(log, repo)

	router := gin.New()
	gate := am.RequireAdmin(allowPublic)
	router.GET("/guarded", gate, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"actor": ActorID(c), "public": IsPublicReader(c)})
	})
	router.POST("/guarded", gate, func(c *gin.Context) {
		// Handlers bind the body after the gate peeked it.
		body, _ := io.ReadAll(c.Request.Body)
		var payload map[string]any
		if err := json.Unmarshal(body, &payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad body"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"actor": ActorID(c), "payload": payload})
	})
	return router, repo
}

func TestRequireAdminQueryParam(t *testing.T) {
	router, _ := newGateRouter(t, false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded?userId=admin-1", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "admin-1")

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/guarded?userId=user-1", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/guarded?userId=ghost", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/guarded", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAdminBodyPeekRestoresBody(t *testing.T) {
	router, _ := newGateRouter(t, false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/guarded", strings.NewReader(`{"userId":"admin-1","title":"hello"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	// The handler read the full body even though the gate consumed it first.
	assert.Contains(t, w.Body.String(), "hello")
	assert.Contains(t, w.Body.String(), "admin-1")
}

func TestRequireAdminPublicEscape(t *testing.T) {
	// Listing endpoints admit userId=public as a read-only caller.
	router, _ := newGateRouter(t, true)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded?userId=public", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"public":true`)

	// Everywhere else public is rejected like any non-admin.
	router, _ = newGateRouter(t, false)
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/guarded?userId=public", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
