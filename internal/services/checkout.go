package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/keyvez/vaan-backend/internal/logger"
	"github.com/keyvez/vaan-backend/internal/utils"
)

var ErrInvalidAmount = errors.New("amount must be at least 100 cents")

type CheckoutInput struct {
	AmountCents int64  `json:"amount"`
	Type        string `json:"type"`
	TestMode    bool   `json:"test_mode"`
}

type CheckoutService interface {
	CreateSession(ctx context.Context, input CheckoutInput) (string, error)
}

type checkoutService struct {
	log        *logger.Logger
	stripe     StripeClient
	successURL string
	cancelURL  string
}

func NewCheckoutService(log *logger.Logger, stripe StripeClient) CheckoutService {
	serviceLog := log.With("service", "CheckoutService")
	siteURL := utils.GetEnv("SITE_URL", "https://sanskritroz.com", serviceLog)
	return &checkoutService{
		log:        serviceLog,
		stripe:     stripe,
		successURL: siteURL + "/donate/success",
		cancelURL:  siteURL + "/donate",
	}
}

func (cs *checkoutService) CreateSession(ctx context.Context, input CheckoutInput) (string, error) {
	if input.AmountCents < 100 {
		return "", ErrInvalidAmount
	}
	donationType := strings.ToLower(strings.TrimSpace(input.Type))
	if donationType != "monthly" {
		donationType = "one-time"
	}

	sessionURL, err := cs.stripe.CreateCheckoutSession(ctx, CheckoutRequest{
		AmountCents: input.AmountCents,
		Type:        donationType,
		TestMode:    input.TestMode,
		SuccessURL:  cs.successURL,
		CancelURL:   cs.cancelURL,
	})
	if err != nil {
		if errors.Is(err, ErrStripeNotConfigured) {
			return "", err
		}
		return "", fmt.Errorf("create checkout session: %w", err)
	}

	cs.log.Info("Created checkout session", "type", donationType, "amount_cents", input.AmountCents, "test_mode", input.TestMode)
	return sessionURL, nil
}
