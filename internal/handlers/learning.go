package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/keyvez/vaan-backend/internal/logger"
	"github.com/keyvez/vaan-backend/internal/services"
)

type LearningHandler struct {
	log         *logger.Logger
	learningSvc services.LearningService
}

func NewLearningHandler(log *logger.Logger, learningSvc services.LearningService) *LearningHandler {
	return &LearningHandler{
		log:         log.With("handler", "LearningHandler"),
		learningSvc: learningSvc,
	}
}

// GET /api/learning-words
func (h *LearningHandler) GetLearningWords(c *gin.Context) {
	difficulty := c.Query("difficulty")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	words, err := h.learningSvc.GetLearningWords(c.Request.Context(), difficulty, limit)
	if err != nil {
		h.log.Error("Failed to load learning words", "error", err)
		RespondError(c, http.StatusInternalServerError, "learning_words_failed", fmt.Errorf("could not load learning words"))
		return
	}
	RespondOK(c, gin.H{"words": words, "count": len(words)})
}

type flashcardReviewRequest struct {
	UserID     string `json:"userId" binding:"required"`
	BabyNameID uint   `json:"babyNameId" binding:"required"`
	Confidence int    `json:"confidence"`
}

// POST /api/user/flashcard-review
func (h *LearningHandler) RecordFlashcardReview(c *gin.Context) {
	var req flashcardReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	if err := h.learningSvc.RecordFlashcardReview(c.Request.Context(), req.UserID, req.BabyNameID, req.Confidence); err != nil {
		h.log.Error("Failed to record flashcard review", "user_id", req.UserID, "error", err)
		RespondError(c, http.StatusInternalServerError, "review_failed", fmt.Errorf("could not record review"))
		return
	}
	RespondOK(c, gin.H{"ok": true})
}

type quizAttemptRequest struct {
	UserID       string `json:"userId" binding:"required"`
	BabyNameID   uint   `json:"babyNameId" binding:"required"`
	Correct      bool   `json:"correct"`
	Difficulty   string `json:"difficulty"`
	AnsweredInMs int    `json:"answeredInMs"`
}

// POST /api/user/quiz-attempt
func (h *LearningHandler) RecordQuizAttempt(c *gin.Context) {
	var req quizAttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	if err := h.learningSvc.RecordQuizAttempt(c.Request.Context(), req.UserID, req.BabyNameID, req.Correct, req.Difficulty, req.AnsweredInMs); err != nil {
		h.log.Error("Failed to record quiz attempt", "user_id", req.UserID, "error", err)
		RespondError(c, http.StatusInternalServerError, "quiz_attempt_failed", fmt.Errorf("could not record quiz attempt"))
		return
	}
	RespondOK(c, gin.H{"ok": true})
}

// GET /api/user/progress
func (h *LearningHandler) GetProgress(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		RespondError(c, http.StatusBadRequest, "missing_user", fmt.Errorf("userId is required"))
		return
	}

	view, err := h.learningSvc.GetProgress(c.Request.Context(), userID)
	if err != nil {
		h.log.Error("Failed to load progress", "user_id", userID, "error", err)
		RespondError(c, http.StatusInternalServerError, "progress_failed", fmt.Errorf("could not load progress"))
		return
	}
	RespondOK(c, view)
}

// GET /api/user/stats
func (h *LearningHandler) GetStats(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		RespondError(c, http.StatusBadRequest, "missing_user", fmt.Errorf("userId is required"))
		return
	}

	stats, err := h.learningSvc.GetStats(c.Request.Context(), userID)
	if err != nil {
		h.log.Error("Failed to load stats", "user_id", userID, "error", err)
		RespondError(c, http.StatusInternalServerError, "stats_failed", fmt.Errorf("could not load stats"))
		return
	}
	RespondOK(c, stats)
}
