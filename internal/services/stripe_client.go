package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/keyvez/vaan-backend/internal/logger"
	"github.com/keyvez/vaan-backend/internal/utils"
)

// StripeClient creates hosted checkout sessions. This is a pure
// request/response proxy: no webhooks, no reconciliation, no idempotency
// key.
type StripeClient interface {
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (string, error)
}

type CheckoutRequest struct {
	AmountCents int64
	Type        string // "one-time" or "monthly"
	TestMode    bool
	SuccessURL  string
	CancelURL   string
}

var ErrStripeNotConfigured = fmt.Errorf("stripe not configured")

type stripeClient struct {
	log        *logger.Logger
	baseURL    string
	liveKey    string
	testKey    string
	httpClient *http.Client
}

func NewStripeClient(log *logger.Logger) StripeClient {
	baseURL := utils.GetEnv("STRIPE_API_URL", "https://api.stripe.com", log)
	timeoutSec := utils.GetEnvAsInt("STRIPE_TIMEOUT_SECONDS", 30, log)

	return &stripeClient{
		log:        log.With("service", "StripeClient"),
		baseURL:    baseURL,
		liveKey:    utils.GetEnv("STRIPE_SECRET_KEY", "", log),
		testKey:    utils.GetEnv("STRIPE_TEST_SECRET_KEY", "", log),
		httpClient: &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
	}
}

func (sc *stripeClient) CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (string, error) {
	key := sc.liveKey
	if req.TestMode {
		key = sc.testKey
	}
	if key == "" {
		return "", ErrStripeNotConfigured
	}

	isRecurring := req.Type == "monthly"

	params := url.Values{}
	if isRecurring {
		params.Set("mode", "subscription")
	} else {
		params.Set("mode", "payment")
	}
	params.Set("success_url", req.SuccessURL)
	params.Set("cancel_url", req.CancelURL)

	params.Set("line_items[0][price_data][currency]", "usd")
	if isRecurring {
		params.Set("line_items[0][price_data][product_data][name]", "Monthly Donation to संस्कृत रोज़")
		params.Set("line_items[0][price_data][product_data][description]", "Support Sanskrit language preservation with a monthly contribution")
		params.Set("line_items[0][price_data][recurring][interval]", "month")
	} else {
		params.Set("line_items[0][price_data][product_data][name]", "Donation to संस्कृत रोज़")
		params.Set("line_items[0][price_data][product_data][description]", "One-time contribution to support Sanskrit language preservation")
	}
	params.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(req.AmountCents, 10))
	params.Set("line_items[0][quantity]", "1")

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, sc.baseURL+"/v1/checkout/sessions", strings.NewReader(params.Encode()))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Authorization", "Bearer "+key)
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := sc.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("stripe request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("stripe api status %d: %s", resp.StatusCode, string(body))
	}

	var session struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return "", fmt.Errorf("decode stripe response: %w", err)
	}
	if session.URL == "" {
		return "", fmt.Errorf("stripe session missing url")
	}
	return session.URL, nil
}
