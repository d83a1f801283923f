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

type BabyNameHandler struct {
	log       *logger.Logger
	nameSvc   services.BabyNameService
	enrichSvc services.EnrichmentService
	ogSvc     services.OGImageService
	runner    *jobs.Runner
}

// NewBabyNameHandler wires the public directory endpoints. enrichSvc may be
// nil when no Gemini key is configured, in which case listing never triggers
// background enrichment.
func NewBabyNameHandler(
	log *logger.Logger,
	nameSvc services.BabyNameService,
	enrichSvc services.EnrichmentService,
	ogSvc services.OGImageService,
	runner *jobs.Runner,
) *BabyNameHandler {
	return &BabyNameHandler{
		log:       log.With("handler", "BabyNameHandler"),
		nameSvc:   nameSvc,
		enrichSvc: enrichSvc,
		ogSvc:     ogSvc,
		runner:    runner,
	}
}

// GET /api/baby-names
// Listing also kicks the enrichment pipeline in the background so the
// directory grows with traffic.
func (h *BabyNameHandler) ListBabyNames(c *gin.Context) {
	gender := c.Query("gender")
	letter := c.Query("letter")
	search := c.Query("search")

	names, err := h.nameSvc.List(c.Request.Context(), gender, letter, search)
	if err != nil {
		h.log.Error("Failed to list baby names", "error", err)
		RespondError(c, http.StatusInternalServerError, "baby_names_failed", fmt.Errorf("could not load baby names"))
		return
	}
	RespondOK(c, gin.H{"names": names, "count": len(names)})

	if h.enrichSvc != nil {
		h.runner.Submit("enrich-baby-names", func(ctx context.Context) error {
			return h.enrichSvc.ProcessBatch(ctx, letter)
		})
	}
}

// GET /api/baby-names/:slug
func (h *BabyNameHandler) GetBabyName(c *gin.Context) {
	slug := c.Param("slug")

	name, err := h.nameSvc.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		h.log.Error("Failed to load baby name", "slug", slug, "error", err)
		RespondError(c, http.StatusInternalServerError, "baby_name_failed", fmt.Errorf("could not load baby name"))
		return
	}
	if name == nil {
		RespondError(c, http.StatusNotFound, "not_found", fmt.Errorf("baby name not found"))
		return
	}
	RespondOK(c, name)
}

// GET /api/baby-names/:slug/og-image
func (h *BabyNameHandler) GetBabyNameImage(c *gin.Context) {
	slug := c.Param("slug")

	name, err := h.nameSvc.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		h.log.Error("Failed to load baby name for share card", "slug", slug, "error", err)
		c.String(http.StatusInternalServerError, "could not render share card")
		return
	}
	if name == nil {
		c.String(http.StatusNotFound, "baby name not found")
		return
	}

	png, err := h.ogSvc.RenderNameCard(services.NameCard{
		Name:          name.Name,
		Pronunciation: name.Pronunciation,
		Meaning:       name.Meaning,
		Gender:        name.Gender,
	})
	if err != nil {
		h.log.Error("Failed to render name share card", "slug", slug, "error", err)
		c.String(http.StatusInternalServerError, "could not render share card")
		return
	}

	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, "image/png", png)
}
