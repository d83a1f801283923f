package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/keyvez/vaan-backend/internal/logger"
	"github.com/keyvez/vaan-backend/internal/services"
)

type UserHandler struct {
	log     *logger.Logger
	userSvc services.UserService
}

func NewUserHandler(log *logger.Logger, userSvc services.UserService) *UserHandler {
	return &UserHandler{
		log:     log.With("handler", "UserHandler"),
		userSvc: userSvc,
	}
}

// POST /api/user/upsert
// Called by the frontend after every OAuth sign-in.
func (h *UserHandler) UpsertUser(c *gin.Context) {
	var req services.UpsertUserInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	user, err := h.userSvc.UpsertUser(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidUser) {
			RespondError(c, http.StatusBadRequest, "invalid_user", err)
			return
		}
		h.log.Error("Failed to upsert user", "user_id", req.ID, "error", err)
		RespondError(c, http.StatusInternalServerError, "upsert_failed", fmt.Errorf("could not save user"))
		return
	}
	RespondOK(c, user)
}
