package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/keyvez/vaan-backend/internal/logger"
	"github.com/keyvez/vaan-backend/internal/services"
)

type WordOfDayHandler struct {
	log     *logger.Logger
	wordSvc services.WordOfDayService
	ogSvc   services.OGImageService
}

func NewWordOfDayHandler(log *logger.Logger, wordSvc services.WordOfDayService, ogSvc services.OGImageService) *WordOfDayHandler {
	return &WordOfDayHandler{
		log:     log.With("handler", "WordOfDayHandler"),
		wordSvc: wordSvc,
		ogSvc:   ogSvc,
	}
}

// GET /api/word-of-day
func (h *WordOfDayHandler) GetWordOfDay(c *gin.Context) {
	word, err := h.wordSvc.GetWordOfDay(c.Request.Context())
	if err != nil {
		if errors.Is(err, services.ErrNoLexemes) {
			RespondError(c, http.StatusInternalServerError, "no_lexemes", err)
			return
		}
		h.log.Error("Failed to get word of day", "error", err)
		RespondError(c, http.StatusInternalServerError, "word_of_day_failed", fmt.Errorf("could not load word of the day"))
		return
	}
	RespondOK(c, word)
}

// GET /api/word-of-day/og-image
func (h *WordOfDayHandler) GetWordOfDayImage(c *gin.Context) {
	word, err := h.wordSvc.GetWordOfDay(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to get word of day for share card", "error", err)
		c.String(http.StatusInternalServerError, "could not render share card")
		return
	}

	png, err := h.ogSvc.RenderWordCard(services.WordCard{
		Sanskrit:        word.Sanskrit,
		Transliteration: word.Transliteration,
		Meaning:         word.PrimaryMeaning,
	})
	if err != nil {
		h.log.Error("Failed to render word share card", "error", err)
		c.String(http.StatusInternalServerError, "could not render share card")
		return
	}

	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, "image/png", png)
}
