package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"time"

	"github.com/keyvez/vaan-backend/internal/logger"
	"github.com/keyvez/vaan-backend/internal/utils"
)

// OEmbedClient resolves YouTube video metadata via the public oEmbed
// endpoint.
type OEmbedClient interface {
	LookupYouTube(ctx context.Context, videoID string) (*VideoMetadata, error)
}

type VideoMetadata struct {
	Title        string
	ThumbnailURL string
}

type oembedClient struct {
	log        *logger.Logger
	baseURL    string
	httpClient *http.Client
}

func NewOEmbedClient(log *logger.Logger) OEmbedClient {
	baseURL := utils.GetEnv("YOUTUBE_OEMBED_URL", "https://www.youtube.com/oembed", log)
	timeoutSec := utils.GetEnvAsInt("OEMBED_TIMEOUT_SECONDS", 10, log)

	return &oembedClient{
		log:        log.With("service", "OEmbedClient"),
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
	}
}

func (oc *oembedClient) LookupYouTube(ctx context.Context, videoID string) (*VideoMetadata, error) {
	watchURL := "https://www.youtube.com/watch?v=" + videoID
	lookupURL := oc.baseURL + "?url=" + url.QueryEscape(watchURL) + "&format=json"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, lookupURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := oc.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("oembed request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("oembed status %d", resp.StatusCode)
	}

	var parsed struct {
		Title        string `json:"title"`
		ThumbnailURL string `json:"thumbnail_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode oembed response: %w", err)
	}

	return &VideoMetadata{Title: parsed.Title, ThumbnailURL: parsed.ThumbnailURL}, nil
}

var youtubeIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?(?:.*&)?v=)([A-Za-z0-9_-]{11})`),
	regexp.MustCompile(`(?:youtu\.be/)([A-Za-z0-9_-]{11})`),
	regexp.MustCompile(`(?:youtube\.com/embed/)([A-Za-z0-9_-]{11})`),
	regexp.MustCompile(`(?:youtube\.com/shorts/)([A-Za-z0-9_-]{11})`),
}

// ExtractYouTubeID resolves the canonical 11-character video id from the
// URL shapes users paste (watch, share, embed, shorts).
func ExtractYouTubeID(rawURL string) (string, error) {
	for _, re := range youtubeIDPatterns {
		if m := re.FindStringSubmatch(rawURL); m != nil {
			return m[1], nil
		}
	}
	return "", fmt.Errorf("unrecognized YouTube URL: %s", rawURL)
}
