package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/keyvez/vaan-backend/internal/logger"
	"github.com/keyvez/vaan-backend/internal/middleware"
	"github.com/keyvez/vaan-backend/internal/services"
	"github.com/keyvez/vaan-backend/internal/types"
)

type AdminContentHandler struct {
	log        *logger.Logger
	contentSvc services.ContentService
	adminSvc   services.AdminService
}

func NewAdminContentHandler(log *logger.Logger, contentSvc services.ContentService, adminSvc services.AdminService) *AdminContentHandler {
	return &AdminContentHandler{
		log:        log.With("handler", "AdminContentHandler"),
		contentSvc: contentSvc,
		adminSvc:   adminSvc,
	}
}

// GET /api/admin/videos
func (h *AdminContentHandler) ListVideos(c *gin.Context) {
	videos, err := h.contentSvc.ListVideos(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to list videos", "error", err)
		RespondError(c, http.StatusInternalServerError, "videos_failed", fmt.Errorf("could not list videos"))
		return
	}
	RespondOK(c, gin.H{"videos": videos})
}

type addVideoRequest struct {
	UserID string `json:"userId"`
	URL    string `json:"url" binding:"required"`
}

// POST /api/admin/videos
func (h *AdminContentHandler) AddVideo(c *gin.Context) {
	var req addVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	video, err := h.contentSvc.AddVideo(c.Request.Context(), req.URL)
	if err != nil {
		if errors.Is(err, services.ErrInvalidYouTubeURL) {
			RespondError(c, http.StatusBadRequest, "invalid_url", err)
			return
		}
		h.log.Error("Failed to add video", "url", req.URL, "error", err)
		RespondError(c, http.StatusInternalServerError, "video_failed", fmt.Errorf("could not add video"))
		return
	}

	h.adminSvc.RecordAction(c.Request.Context(), middleware.ActorID(c), "create_video", "video",
		video.ID.String(), gin.H{"title": video.Title})
	RespondOK(c, video)
}

// DELETE /api/admin/videos/:id
func (h *AdminContentHandler) DeleteVideo(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("invalid video id"))
		return
	}

	if err := h.contentSvc.DeleteVideo(c.Request.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			RespondError(c, http.StatusNotFound, "not_found", fmt.Errorf("video not found"))
			return
		}
		h.log.Error("Failed to delete video", "id", id, "error", err)
		RespondError(c, http.StatusInternalServerError, "delete_failed", fmt.Errorf("could not delete video"))
		return
	}

	h.adminSvc.RecordAction(c.Request.Context(), middleware.ActorID(c), "delete_video", "video", id.String(), nil)
	RespondOK(c, gin.H{"ok": true})
}

// GET /api/admin/blog
// The public site reads this with userId=public and sees published posts
// only; admins can pass status=all|draft|published.
func (h *AdminContentHandler) ListBlogPosts(c *gin.Context) {
	status := c.DefaultQuery("status", "all")
	if middleware.IsPublicReader(c) {
		status = types.BlogStatusPublished
	}

	posts, err := h.contentSvc.ListBlogPosts(c.Request.Context(), status)
	if err != nil {
		h.log.Error("Failed to list blog posts", "error", err)
		RespondError(c, http.StatusInternalServerError, "blog_failed", fmt.Errorf("could not list blog posts"))
		return
	}
	RespondOK(c, gin.H{"posts": posts})
}

type blogPostRequest struct {
	UserID string `json:"userId"`
	services.BlogPostInput
}

// POST /api/admin/blog
func (h *AdminContentHandler) CreateBlogPost(c *gin.Context) {
	var req blogPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	post, err := h.contentSvc.CreateBlogPost(c.Request.Context(), req.BlogPostInput)
	if err != nil {
		h.respondBlogError(c, err, "create")
		return
	}

	h.adminSvc.RecordAction(c.Request.Context(), middleware.ActorID(c), "create_blog_post", "blog_post",
		post.ID.String(), gin.H{"title": post.Title, "status": post.Status})
	RespondOK(c, post)
}

// PUT /api/admin/blog/:id
func (h *AdminContentHandler) UpdateBlogPost(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("invalid blog post id"))
		return
	}

	var req blogPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	post, err := h.contentSvc.UpdateBlogPost(c.Request.Context(), id, req.BlogPostInput)
	if err != nil {
		h.respondBlogError(c, err, "update")
		return
	}

	h.adminSvc.RecordAction(c.Request.Context(), middleware.ActorID(c), "update_blog_post", "blog_post",
		post.ID.String(), gin.H{"title": post.Title, "status": post.Status})
	RespondOK(c, post)
}

// DELETE /api/admin/blog/:id
func (h *AdminContentHandler) DeleteBlogPost(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("invalid blog post id"))
		return
	}

	if err := h.contentSvc.DeleteBlogPost(c.Request.Context(), id); err != nil {
		h.respondBlogError(c, err, "delete")
		return
	}

	h.adminSvc.RecordAction(c.Request.Context(), middleware.ActorID(c), "delete_blog_post", "blog_post", id.String(), nil)
	RespondOK(c, gin.H{"ok": true})
}

func (h *AdminContentHandler) respondBlogError(c *gin.Context, err error, op string) {
	switch {
	case errors.Is(err, services.ErrBlogPostNotFound):
		RespondError(c, http.StatusNotFound, "not_found", err)
	case errors.Is(err, services.ErrTitleRequired), errors.Is(err, services.ErrInvalidBlogStatus):
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
	default:
		h.log.Error("Blog post operation failed", "op", op, "error", err)
		RespondError(c, http.StatusInternalServerError, "blog_failed", fmt.Errorf("could not %s blog post", op))
	}
}

// GET /api/admin/news
func (h *AdminContentHandler) ListNews(c *gin.Context) {
	items, err := h.contentSvc.ListNews(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to list news", "error", err)
		RespondError(c, http.StatusInternalServerError, "news_failed", fmt.Errorf("could not list news"))
		return
	}
	RespondOK(c, gin.H{"items": items})
}

type newsItemRequest struct {
	UserID string `json:"userId"`
	services.NewsItemInput
}

// POST /api/admin/news
func (h *AdminContentHandler) CreateNewsItem(c *gin.Context) {
	var req newsItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	item, err := h.contentSvc.CreateNewsItem(c.Request.Context(), req.NewsItemInput)
	if err != nil {
		h.respondNewsError(c, err, "create")
		return
	}

	h.adminSvc.RecordAction(c.Request.Context(), middleware.ActorID(c), "create_news_item", "news_item",
		item.ID.String(), gin.H{"title": item.Title})
	RespondOK(c, item)
}

// PUT /api/admin/news/:id
func (h *AdminContentHandler) UpdateNewsItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("invalid news item id"))
		return
	}

	var req newsItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	item, err := h.contentSvc.UpdateNewsItem(c.Request.Context(), id, req.NewsItemInput)
	if err != nil {
		h.respondNewsError(c, err, "update")
		return
	}

	h.adminSvc.RecordAction(c.Request.Context(), middleware.ActorID(c), "update_news_item", "news_item",
		item.ID.String(), gin.H{"title": item.Title})
	RespondOK(c, item)
}

// DELETE /api/admin/news/:id
func (h *AdminContentHandler) DeleteNewsItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("invalid news item id"))
		return
	}

	if err := h.contentSvc.DeleteNewsItem(c.Request.Context(), id); err != nil {
		h.respondNewsError(c, err, "delete")
		return
	}

	h.adminSvc.RecordAction(c.Request.Context(), middleware.ActorID(c), "delete_news_item", "news_item", id.String(), nil)
	RespondOK(c, gin.H{"ok": true})
}

func (h *AdminContentHandler) respondNewsError(c *gin.Context, err error, op string) {
	switch {
	case errors.Is(err, services.ErrNewsItemNotFound):
		RespondError(c, http.StatusNotFound, "not_found", err)
	case errors.Is(err, services.ErrTitleRequired):
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
	default:
		h.log.Error("News item operation failed", "op", op, "error", err)
		RespondError(c, http.StatusInternalServerError, "news_failed", fmt.Errorf("could not %s news item", op))
	}
}
