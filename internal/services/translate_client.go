package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/keyvez/vaan-backend/internal/logger"
	"github.com/keyvez/vaan-backend/internal/utils"
)

// TranslateClient wraps the plain-text translation API used to backfill UI
// strings for non-English languages.
type TranslateClient interface {
	Translate(ctx context.Context, text, targetLanguage string) (string, error)
}

type translateClient struct {
	log        *logger.Logger
	baseURL    string
	httpClient *http.Client
}

func NewTranslateClient(log *logger.Logger) TranslateClient {
	baseURL := utils.GetEnv("TRANSLATE_API_URL", "https://free-translate-go-api.onrender.com", log)
	timeoutSec := utils.GetEnvAsInt("TRANSLATE_TIMEOUT_SECONDS", 30, log)

	return &translateClient{
		log:        log.With("service", "TranslateClient"),
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
	}
}

func (tc *translateClient) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	payload, err := json.Marshal(map[string]string{
		"text": text,
		"to":   targetLanguage,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tc.baseURL+"/translate", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := tc.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("translate request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("translate api status %d: %s", resp.StatusCode, string(body))
	}

	var parsed struct {
		TranslatedText string `json:"translatedText"`
		Text           string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode translate response: %w", err)
	}

	if parsed.TranslatedText != "" {
		return parsed.TranslatedText, nil
	}
	if parsed.Text != "" {
		return parsed.Text, nil
	}
	// API answered but produced nothing useful; fall back to the source.
	return text, nil
}
