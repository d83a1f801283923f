package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/keyvez/vaan-backend/internal/logger"
	"github.com/keyvez/vaan-backend/internal/middleware"
	"github.com/keyvez/vaan-backend/internal/repos"
	"github.com/keyvez/vaan-backend/internal/services"
)

type AdminHandler struct {
	log        *logger.Logger
	adminSvc   services.AdminService
	wordSvc    services.WordOfDayService
	lexemeRepo repos.LexemeRepo
}

func NewAdminHandler(log *logger.Logger, adminSvc services.AdminService, wordSvc services.WordOfDayService, lexemeRepo repos.LexemeRepo) *AdminHandler {
	return &AdminHandler{
		log:        log.With("handler", "AdminHandler"),
		adminSvc:   adminSvc,
		wordSvc:    wordSvc,
		lexemeRepo: lexemeRepo,
	}
}

// GET /api/admin/lexemes
func (h *AdminHandler) ListLexemes(c *gin.Context) {
	search := c.Query("search")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	lexemes, total, err := h.lexemeRepo.Search(c.Request.Context(), nil, search, limit, offset)
	if err != nil {
		h.log.Error("Failed to list lexemes", "error", err)
		RespondError(c, http.StatusInternalServerError, "lexemes_failed", fmt.Errorf("could not list lexemes"))
		return
	}
	RespondOK(c, gin.H{"lexemes": lexemes, "total": total})
}

// GET /api/admin/check
func (h *AdminHandler) CheckAdmin(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		RespondError(c, http.StatusBadRequest, "missing_user", fmt.Errorf("userId is required"))
		return
	}

	isAdmin, err := h.adminSvc.CheckAdmin(c.Request.Context(), userID)
	if err != nil {
		h.log.Error("Failed to check admin", "user_id", userID, "error", err)
		RespondError(c, http.StatusInternalServerError, "check_failed", fmt.Errorf("could not check admin status"))
		return
	}
	RespondOK(c, gin.H{"isAdmin": isAdmin})
}

type grantAdminRequest struct {
	UserID       string `json:"userId"`
	TargetUserID string `json:"targetUserId" binding:"required"`
	Admin        *bool  `json:"admin"`
}

// POST /api/admin/grant
func (h *AdminHandler) GrantAdmin(c *gin.Context) {
	var req grantAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	admin := true
	if req.Admin != nil {
		admin = *req.Admin
	}

	actorID := middleware.ActorID(c)
	if err := h.adminSvc.GrantAdmin(c.Request.Context(), actorID, req.TargetUserID, admin); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			RespondError(c, http.StatusNotFound, "user_not_found", err)
			return
		}
		h.log.Error("Failed to set admin flag", "target", req.TargetUserID, "error", err)
		RespondError(c, http.StatusInternalServerError, "grant_failed", fmt.Errorf("could not update admin status"))
		return
	}
	RespondOK(c, gin.H{"ok": true})
}

// GET /api/admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	search := c.Query("search")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	page, err := h.adminSvc.ListUsers(c.Request.Context(), search, limit, offset)
	if err != nil {
		h.log.Error("Failed to list users", "error", err)
		RespondError(c, http.StatusInternalServerError, "users_failed", fmt.Errorf("could not list users"))
		return
	}
	RespondOK(c, page)
}

// GET /api/admin/stats/overview
func (h *AdminHandler) GetStatsOverview(c *gin.Context) {
	overview, err := h.adminSvc.GetStatsOverview(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to build stats overview", "error", err)
		RespondError(c, http.StatusInternalServerError, "stats_failed", fmt.Errorf("could not build stats overview"))
		return
	}
	RespondOK(c, overview)
}

// GET /api/admin/audit-log
func (h *AdminHandler) ListAuditLog(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	page, err := h.adminSvc.ListAuditLog(c.Request.Context(), limit, offset)
	if err != nil {
		h.log.Error("Failed to list audit log", "error", err)
		RespondError(c, http.StatusInternalServerError, "audit_failed", fmt.Errorf("could not list audit log"))
		return
	}
	RespondOK(c, page)
}

// GET /api/admin/daily-words
func (h *AdminHandler) GetDailyWordHistory(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "30"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	entries, total, err := h.wordSvc.History(c.Request.Context(), limit, offset)
	if err != nil {
		h.log.Error("Failed to load daily word history", "error", err)
		RespondError(c, http.StatusInternalServerError, "history_failed", fmt.Errorf("could not load history"))
		return
	}
	RespondOK(c, gin.H{"entries": entries, "total": total})
}

type setDailyWordRequest struct {
	UserID   string `json:"userId"`
	LexemeID uint   `json:"lexemeId" binding:"required"`
}

// POST /api/admin/daily-words
func (h *AdminHandler) SetDailyWord(c *gin.Context) {
	var req setDailyWordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	word, err := h.wordSvc.SetWordOfDay(c.Request.Context(), req.LexemeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			RespondError(c, http.StatusNotFound, "lexeme_not_found", fmt.Errorf("lexeme not found"))
			return
		}
		h.log.Error("Failed to set daily word", "lexeme_id", req.LexemeID, "error", err)
		RespondError(c, http.StatusInternalServerError, "set_failed", fmt.Errorf("could not set daily word"))
		return
	}

	h.adminSvc.RecordAction(c.Request.Context(), middleware.ActorID(c), "set_daily_word", "lexeme",
		strconv.FormatUint(uint64(req.LexemeID), 10), gin.H{"sanskrit": word.Sanskrit})
	RespondOK(c, word)
}

// DELETE /api/admin/daily-words/current
func (h *AdminHandler) ClearDailyWord(c *gin.Context) {
	if err := h.wordSvc.ClearCurrent(c.Request.Context()); err != nil {
		h.log.Error("Failed to clear daily word", "error", err)
		RespondError(c, http.StatusInternalServerError, "clear_failed", fmt.Errorf("could not clear daily word"))
		return
	}

	h.adminSvc.RecordAction(c.Request.Context(), middleware.ActorID(c), "reset_daily_word", "word_of_day", "current", nil)
	RespondOK(c, gin.H{"ok": true})
}
