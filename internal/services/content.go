package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/keyvez/vaan-backend/internal/logger"
	"github.com/keyvez/vaan-backend/internal/repos"
	"github.com/keyvez/vaan-backend/internal/types"
)

var (
	ErrInvalidYouTubeURL = errors.New("could not extract a YouTube video id from url")
	ErrBlogPostNotFound  = errors.New("blog post not found")
	ErrNewsItemNotFound  = errors.New("news item not found")
	ErrInvalidBlogStatus = errors.New("status must be draft or published")
	ErrTitleRequired     = errors.New("title is required")
)

type BlogPostInput struct {
	Title   string `json:"title"`
	Slug    string `json:"slug"`
	Excerpt string `json:"excerpt"`
	Content string `json:"content"`
	Status  string `json:"status"`
}

type NewsItemInput struct {
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	SourceURL   string     `json:"source_url"`
	PublishedAt *time.Time `json:"published_at"`
}

type ContentService interface {
	AddVideo(ctx context.Context, youtubeURL string) (*types.Video, error)
	ListVideos(ctx context.Context) ([]*types.Video, error)
	DeleteVideo(ctx context.Context, id uuid.UUID) error

	CreateBlogPost(ctx context.Context, input BlogPostInput) (*types.BlogPost, error)
	UpdateBlogPost(ctx context.Context, id uuid.UUID, input BlogPostInput) (*types.BlogPost, error)
	GetBlogPost(ctx context.Context, id uuid.UUID) (*types.BlogPost, error)
	ListBlogPosts(ctx context.Context, status string) ([]*types.BlogPost, error)
	DeleteBlogPost(ctx context.Context, id uuid.UUID) error

	CreateNewsItem(ctx context.Context, input NewsItemInput) (*types.NewsItem, error)
	UpdateNewsItem(ctx context.Context, id uuid.UUID, input NewsItemInput) (*types.NewsItem, error)
	ListNews(ctx context.Context) ([]*types.NewsItem, error)
	DeleteNewsItem(ctx context.Context, id uuid.UUID) error
}

type contentService struct {
	db        *gorm.DB
	log       *logger.Logger
	videoRepo repos.VideoRepo
	blogRepo  repos.BlogPostRepo
	newsRepo  repos.NewsRepo
	oembed    OEmbedClient
	now       func() time.Time
}

func NewContentService(
	db *gorm.DB,
	log *logger.Logger,
	videoRepo repos.VideoRepo,
	blogRepo repos.BlogPostRepo,
	newsRepo repos.NewsRepo,
	oembed OEmbedClient,
) ContentService {
	serviceLog := log.With("service", "ContentService")
	return &contentService{
		db:        db,
		log:       serviceLog,
		videoRepo: videoRepo,
		blogRepo:  blogRepo,
		newsRepo:  newsRepo,
		oembed:    oembed,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// AddVideo stores a YouTube video by URL. Metadata comes from the oEmbed
// endpoint; a lookup failure falls back to a placeholder title so an
// unreachable endpoint never blocks the admin.
func (cs *contentService) AddVideo(ctx context.Context, youtubeURL string) (*types.Video, error) {
	videoID, err := ExtractYouTubeID(youtubeURL)
	if err != nil {
		return nil, ErrInvalidYouTubeURL
	}

	title := fmt.Sprintf("YouTube Video (%s)", videoID)
	thumbnail := fmt.Sprintf("https://img.youtube.com/vi/%s/hqdefault.jpg", videoID)
	if meta, err := cs.oembed.LookupYouTube(ctx, videoID); err != nil {
		cs.log.Warn("oembed lookup failed, using placeholder metadata", "video_id", videoID, "error", err)
	} else {
		if meta.Title != "" {
			title = meta.Title
		}
		if meta.ThumbnailURL != "" {
			thumbnail = meta.ThumbnailURL
		}
	}

	video := &types.Video{
		ID:           uuid.New(),
		Title:        title,
		YoutubeID:    videoID,
		YoutubeURL:   fmt.Sprintf("https://www.youtube.com/watch?v=%s", videoID),
		ThumbnailURL: thumbnail,
		PublishedAt:  cs.now(),
	}
	if err := cs.videoRepo.Create(ctx, nil, video); err != nil {
		return nil, fmt.Errorf("create video: %w", err)
	}
	return video, nil
}

func (cs *contentService) ListVideos(ctx context.Context) ([]*types.Video, error) {
	return cs.videoRepo.List(ctx, nil)
}

func (cs *contentService) DeleteVideo(ctx context.Context, id uuid.UUID) error {
	return cs.videoRepo.Delete(ctx, nil, id)
}

func (cs *contentService) CreateBlogPost(ctx context.Context, input BlogPostInput) (*types.BlogPost, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	status, err := normalizeBlogStatus(input.Status)
	if err != nil {
		return nil, err
	}

	post := &types.BlogPost{
		ID:      uuid.New(),
		Title:   title,
		Slug:    blogSlug(input.Slug, title),
		Excerpt: strings.TrimSpace(input.Excerpt),
		Content: input.Content,
		Status:  status,
	}
	if status == types.BlogStatusPublished {
		publishedAt := cs.now()
		post.PublishedAt = &publishedAt
	}
	if err := cs.blogRepo.Create(ctx, nil, post); err != nil {
		return nil, fmt.Errorf("create blog post: %w", err)
	}
	return post, nil
}

// UpdateBlogPost replaces the editable fields and manages the publish
// timestamp: it is set on the draft to published transition, cleared on
// unpublish, and left untouched when the post stays published.
func (cs *contentService) UpdateBlogPost(ctx context.Context, id uuid.UUID, input BlogPostInput) (*types.BlogPost, error) {
	post, err := cs.blogRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, fmt.Errorf("load blog post: %w", err)
	}
	if post == nil {
		return nil, ErrBlogPostNotFound
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	status, err := normalizeBlogStatus(input.Status)
	if err != nil {
		return nil, err
	}

	switch {
	case post.Status != types.BlogStatusPublished && status == types.BlogStatusPublished:
		publishedAt := cs.now()
		post.PublishedAt = &publishedAt
	case status == types.BlogStatusDraft:
		post.PublishedAt = nil
	}

	post.Title = title
	post.Slug = blogSlug(input.Slug, title)
	post.Excerpt = strings.TrimSpace(input.Excerpt)
	post.Content = input.Content
	post.Status = status

	if err := cs.blogRepo.Update(ctx, nil, post); err != nil {
		return nil, fmt.Errorf("update blog post: %w", err)
	}
	return post, nil
}

func (cs *contentService) GetBlogPost(ctx context.Context, id uuid.UUID) (*types.BlogPost, error) {
	post, err := cs.blogRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, fmt.Errorf("load blog post: %w", err)
	}
	if post == nil {
		return nil, ErrBlogPostNotFound
	}
	return post, nil
}

func (cs *contentService) ListBlogPosts(ctx context.Context, status string) ([]*types.BlogPost, error) {
	return cs.blogRepo.List(ctx, nil, status)
}

func (cs *contentService) DeleteBlogPost(ctx context.Context, id uuid.UUID) error {
	err := cs.blogRepo.Delete(ctx, nil, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrBlogPostNotFound
	}
	return err
}

func (cs *contentService) CreateNewsItem(ctx context.Context, input NewsItemInput) (*types.NewsItem, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	item := &types.NewsItem{
		ID:          uuid.New(),
		Title:       title,
		Content:     input.Content,
		SourceURL:   strings.TrimSpace(input.SourceURL),
		PublishedAt: cs.now(),
	}
	if input.PublishedAt != nil {
		item.PublishedAt = *input.PublishedAt
	}
	if err := cs.newsRepo.Create(ctx, nil, item); err != nil {
		return nil, fmt.Errorf("create news item: %w", err)
	}
	return item, nil
}

func (cs *contentService) UpdateNewsItem(ctx context.Context, id uuid.UUID, input NewsItemInput) (*types.NewsItem, error) {
	item, err := cs.newsRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, fmt.Errorf("load news item: %w", err)
	}
	if item == nil {
		return nil, ErrNewsItemNotFound
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	item.Title = title
	item.Content = input.Content
	item.SourceURL = strings.TrimSpace(input.SourceURL)
	if input.PublishedAt != nil {
		item.PublishedAt = *input.PublishedAt
	}

	if err := cs.newsRepo.Update(ctx, nil, item); err != nil {
		return nil, fmt.Errorf("update news item: %w", err)
	}
	return item, nil
}

func (cs *contentService) ListNews(ctx context.Context) ([]*types.NewsItem, error) {
	return cs.newsRepo.List(ctx, nil)
}

func (cs *contentService) DeleteNewsItem(ctx context.Context, id uuid.UUID) error {
	err := cs.newsRepo.Delete(ctx, nil, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNewsItemNotFound
	}
	return err
}

func normalizeBlogStatus(status string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(status))
	switch s {
	case "":
		return types.BlogStatusDraft, nil
	case types.BlogStatusDraft, types.BlogStatusPublished:
		return s, nil
	default:
		return "", ErrInvalidBlogStatus
	}
}

func blogSlug(slug, title string) string {
	s := strings.TrimSpace(slug)
	if s == "" {
		s = title
	}
	return slugify(s)
}
