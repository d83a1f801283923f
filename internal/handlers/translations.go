package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/keyvez/vaan-backend/internal/jobs"
	"github.com/keyvez/vaan-backend/internal/logger"
	"github.com/keyvez/vaan-backend/internal/services"
)

type TranslationHandler struct {
	log        *logger.Logger
	translnSvc services.TranslationService
	runner     *jobs.Runner
}

func NewTranslationHandler(log *logger.Logger, translnSvc services.TranslationService, runner *jobs.Runner) *TranslationHandler {
	return &TranslationHandler{
		log:        log.With("handler", "TranslationHandler"),
		translnSvc: translnSvc,
		runner:     runner,
	}
}

// GET /api/translations/:lang
// Serves whatever is cached and fills gaps in the background, so the first
// request for a new language returns a sparse map that converges over time.
func (h *TranslationHandler) GetTranslations(c *gin.Context) {
	lang := c.Param("lang")
	if lang == "" {
		RespondError(c, http.StatusBadRequest, "missing_language", fmt.Errorf("language code is required"))
		return
	}

	translations, err := h.translnSvc.GetTranslations(c.Request.Context(), lang)
	if err != nil {
		h.log.Error("Failed to load translations", "lang", lang, "error", err)
		RespondError(c, http.StatusInternalServerError, "translations_failed", fmt.Errorf("could not load translations"))
		return
	}
	RespondOK(c, gin.H{"language": lang, "translations": translations})

	h.runner.Submit("translate-batch-"+lang, func(ctx context.Context) error {
		return h.translnSvc.ProcessBatch(ctx, lang)
	})
}
