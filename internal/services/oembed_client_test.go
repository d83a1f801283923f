package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractYouTubeID(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/watch?feature=shared&v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://youtu.be/dQw4w9WgXcQ?t=42", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/shorts/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
	}
	for _, tt := range tests {
		got, err := ExtractYouTubeID(tt.url)
		require.NoError(t, err, tt.url)
		assert.Equal(t, tt.want, got, tt.url)
	}

	for _, bad := range []string{
		"https://example.com/watch?v=dQw4w9WgXcQ",
		"https://www.youtube.com/watch?v=tooshort",
		"not a url",
		"",
	} {
		_, err := ExtractYouTubeID(bad)
		assert.Error(t, err, bad)
	}
}

func TestLookupYouTube(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Query().Get("url"), "dQw4w9WgXcQ")
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"title":"Test Video","thumbnail_url":"https://img.example/th.jpg"}`))
	}))
	defer srv.Close()

	os.Setenv("YOUTUBE_OEMBED_URL", srv.URL)
	defer os.Unsetenv("YOUTUBE_OEMBED_URL")

	client := NewOEmbedClient(testLogger(t))
	meta, err := client.LookupYouTube(context.Background(), "dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Equal(t, "Test Video", meta.Title)
	assert.Equal(t, "https://img.example/th.jpg", meta.ThumbnailURL)
}

func TestLookupYouTubeErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	os.Setenv("YOUTUBE_OEMBED_URL", srv.URL)
	defer os.Unsetenv("YOUTUBE_OEMBED_URL")

	client := NewOEmbedClient(testLogger(t))
	_, err := client.LookupYouTube(context.Background(), "dQw4w9WgXcQ")
	assert.Error(t, err)
}
