package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/keyvez/vaan-backend/internal/logger"
	"github.com/keyvez/vaan-backend/internal/repos"
)

const (
	actorIDKey      = "adminActorID"
	publicReaderKey = "adminPublicReader"

	// PublicUserID is the read-only escape hatch the frontend uses to list
	// published content through the admin endpoints without a session.
	PublicUserID = "public"
)

type AdminMiddleware struct {
	log      *logger.Logger
	userRepo repos.UserRepo
}

func NewAdminMiddleware(log *logger.Logger, userRepo repos.UserRepo) *AdminMiddleware {
	middlewareLogger := log.With("Middleware", "AdminMiddleware")
	return &AdminMiddleware{log: middlewareLogger, userRepo: userRepo}
}

// RequireAdmin resolves the caller from the userId query param or JSON body
// and rejects non-admins before the handler runs. allowPublic admits
// userId=public for the read-only listing endpoints.
func (am *AdminMiddleware) RequireAdmin(allowPublic bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := extractUserID(c)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "userId is required"})
			return
		}

		if userID == PublicUserID {
			if !allowPublic {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
				return
			}
			c.Set(actorIDKey, PublicUserID)
			c.Set(publicReaderKey, true)
			c.Next()
			return
		}

		user, err := am.userRepo.GetByID(c.Request.Context(), nil, userID)
		if err != nil {
			am.log.Error("Failed to resolve admin user", "user_id", userID, "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "could not verify admin status"})
			return
		}
		if user == nil || !user.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}

		c.Set(actorIDKey, user.ID)
		c.Next()
	}
}

// ActorID returns the admin user id the gate resolved for this request.
func ActorID(c *gin.Context) string {
	return c.GetString(actorIDKey)
}

// IsPublicReader reports whether the request came through the userId=public
// escape hatch.
func IsPublicReader(c *gin.Context) bool {
	return c.GetBool(publicReaderKey)
}

func extractUserID(c *gin.Context) string {
	if id := c.Query("userId"); id != "" {
		return id
	}
	if c.Request.Body == nil || c.Request.Method == http.MethodGet {
		return ""
	}

	// Peek the body for userId, then restore it for the handler's bind.
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return ""
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(raw))

	var body struct {
		UserID string `json:"userId"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	return body.UserID
}
