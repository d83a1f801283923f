package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/keyvez/vaan-backend/internal/repos"
	"github.com/keyvez/vaan-backend/internal/repos/testutil"
	"github.com/keyvez/vaan-backend/internal/types"
)

type fakeOEmbed struct {
	meta *VideoMetadata
	err  error
}

func (fo *fakeOEmbed) LookupYouTube(ctx context.Context, videoID string) (*VideoMetadata, error) {
	if fo.err != nil {
		return nil, fo.err
	}
	return fo.meta, nil
}

func newTestContentService(t *testing.T, tx *gorm.DB, oembed OEmbedClient, now time.Time) ContentService {
	t.Helper()
	log := testutil.Logger(t)
	svc := NewContentService(tx, log,
		repos.NewVideoRepo(tx, log),
		repos.NewBlogPostRepo(tx, log),
		repos.NewNewsRepo(tx, log),
		oembed,
	)
	svc.(*contentService).now = func() time.Time { return now }
	return svc
}

var testNow = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func TestAddVideo(t *testing.T) {
	tx := testutil.Tx(t, testutil.DB(t))
	ctx := context.Background()
	oembed := &fakeOEmbed{meta: &VideoMetadata{Title: "Learn Sanskrit Ep 1", ThumbnailURL: "https://i.ytimg.com/vi/dQw4w9WgXcQ/maxres.jpg"}}
	svc := newTestContentService(t, tx, oembed, testNow)

	video, err := svc.AddVideo(ctx, "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Equal(t, "dQw4w9WgXcQ", video.YoutubeID)
	assert.Equal(t, "Learn Sanskrit Ep 1", video.Title)
	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", video.YoutubeURL)
	assert.Equal(t, "https://i.ytimg.com/vi/dQw4w9WgXcQ/maxres.jpg", video.ThumbnailURL)

	listed, err := svc.ListVideos(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)

	require.NoError(t, svc.DeleteVideo(ctx, video.ID))
	listed, err = svc.ListVideos(ctx)
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestAddVideoOEmbedFailureUsesPlaceholder(t *testing.T) {
	tx := testutil.Tx(t, testutil.DB(t))
	svc := newTestContentService(t, tx, &fakeOEmbed{err: errors.New("timeout")}, testNow)

	video, err := svc.AddVideo(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Equal(t, "YouTube Video (dQw4w9WgXcQ)", video.Title)
	assert.Equal(t, "https://img.youtube.com/vi/dQw4w9WgXcQ/hqdefault.jpg", video.ThumbnailURL)
}

func TestAddVideoRejectsBadURL(t *testing.T) {
	tx := testutil.Tx(t, testutil.DB(t))
	svc := newTestContentService(t, tx, &fakeOEmbed{}, testNow)

	_, err := svc.AddVideo(context.Background(), "https://vimeo.com/123456")
	assert.ErrorIs(t, err, ErrInvalidYouTubeURL)
}

func TestBlogPostPublishTimestamps(t *testing.T) {
	tx := testutil.Tx(t, testutil.DB(t))
	ctx := context.Background()
	svc := newTestContentService(t, tx, &fakeOEmbed{}, testNow)

	// Drafts have no publish time.
	post, err := svc.CreateBlogPost(ctx, BlogPostInput{Title: "Why learn Sanskrit"})
	require.NoError(t, err)
	assert.Equal(t, types.BlogStatusDraft, post.Status)
	assert.Equal(t, "why-learn-sanskrit", post.Slug)
	assert.Nil(t, post.PublishedAt)

	// Draft to published sets the timestamp.
	post, err = svc.UpdateBlogPost(ctx, post.ID, BlogPostInput{Title: "Why learn Sanskrit", Status: "published"})
	require.NoError(t, err)
	require.NotNil(t, post.PublishedAt)
	firstPublish := *post.PublishedAt

	// Editing a published post leaves the timestamp alone.
	post, err = svc.UpdateBlogPost(ctx, post.ID, BlogPostInput{Title: "Why learn Sanskrit today", Status: "published"})
	require.NoError(t, err)
	require.NotNil(t, post.PublishedAt)
	assert.WithinDuration(t, firstPublish, *post.PublishedAt, time.Second)

	// Unpublishing clears it.
	post, err = svc.UpdateBlogPost(ctx, post.ID, BlogPostInput{Title: "Why learn Sanskrit today", Status: "draft"})
	require.NoError(t, err)
	assert.Nil(t, post.PublishedAt)
}

func TestBlogPostValidation(t *testing.T) {
	tx := testutil.Tx(t, testutil.DB(t))
	ctx := context.Background()
	svc := newTestContentService(t, tx, &fakeOEmbed{}, testNow)

	_, err := svc.CreateBlogPost(ctx, BlogPostInput{Title: "   "})
	assert.ErrorIs(t, err, ErrTitleRequired)

	_, err = svc.CreateBlogPost(ctx, BlogPostInput{Title: "ok", Status: "archived"})
	assert.ErrorIs(t, err, ErrInvalidBlogStatus)

	_, err = svc.GetBlogPost(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrBlogPostNotFound)

	_, err = svc.UpdateBlogPost(ctx, uuid.New(), BlogPostInput{Title: "ok"})
	assert.ErrorIs(t, err, ErrBlogPostNotFound)

	err = svc.DeleteBlogPost(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrBlogPostNotFound)
}

func TestListBlogPostsByStatus(t *testing.T) {
	tx := testutil.Tx(t, testutil.DB(t))
	ctx := context.Background()
	svc := newTestContentService(t, tx, &fakeOEmbed{}, testNow)

	_, err := svc.CreateBlogPost(ctx, BlogPostInput{Title: "Draft one"})
	require.NoError(t, err)
	_, err = svc.CreateBlogPost(ctx, BlogPostInput{Title: "Live one", Status: "published"})
	require.NoError(t, err)

	published, err := svc.ListBlogPosts(ctx, types.BlogStatusPublished)
	require.NoError(t, err)
	require.Len(t, published, 1)
	assert.Equal(t, "Live one", published[0].Title)

	all, err := svc.ListBlogPosts(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestNewsItemLifecycle(t *testing.T) {
	tx := testutil.Tx(t, testutil.DB(t))
	ctx := context.Background()
	svc := newTestContentService(t, tx, &fakeOEmbed{}, testNow)

	item, err := svc.CreateNewsItem(ctx, NewsItemInput{Title: "New course", Content: "details", SourceURL: " https://example.com/a "})
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/a", item.SourceURL)
	assert.WithinDuration(t, testNow, item.PublishedAt, time.Second)

	when := time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC)
	item, err = svc.UpdateNewsItem(ctx, item.ID, NewsItemInput{Title: "New course update", Content: "more", PublishedAt: &when})
	require.NoError(t, err)
	assert.Equal(t, "New course update", item.Title)
	assert.WithinDuration(t, when, item.PublishedAt, time.Second)

	listed, err := svc.ListNews(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)

	require.NoError(t, svc.DeleteNewsItem(ctx, item.ID))
	assert.ErrorIs(t, svc.DeleteNewsItem(ctx, item.ID), ErrNewsItemNotFound)

	_, err = svc.CreateNewsItem(ctx, NewsItemInput{Title: ""})
	assert.ErrorIs(t, err, ErrTitleRequired)
}
