package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/keyvez/vaan-backend/internal/logger"
	"github.com/keyvez/vaan-backend/internal/services"
)

type CheckoutHandler struct {
	log         *logger.Logger
	checkoutSvc services.CheckoutService
}

func NewCheckoutHandler(log *logger.Logger, checkoutSvc services.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		log:         log.With("handler", "CheckoutHandler"),
		checkoutSvc: checkoutSvc,
	}
}

// POST /api/create-checkout-session
func (h *CheckoutHandler) CreateCheckoutSession(c *gin.Context) {
	var req services.CheckoutInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	sessionURL, err := h.checkoutSvc.CreateSession(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidAmount):
			RespondError(c, http.StatusBadRequest, "invalid_amount", err)
		case errors.Is(err, services.ErrStripeNotConfigured):
			RespondError(c, http.StatusInternalServerError, "stripe_not_configured", err)
		default:
			h.log.Error("Failed to create checkout session", "error", err)
			RespondError(c, http.StatusInternalServerError, "checkout_failed", fmt.Errorf("could not create checkout session"))
		}
		return
	}
	RespondOK(c, gin.H{"url": sessionURL})
}
