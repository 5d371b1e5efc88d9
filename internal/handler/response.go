package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
	"storefront/internal/infrastructure/payment"
)

type errorBody struct {
	Error string `json:"error"`
}

type errorRule struct {
	target  error
	status  int
	message string
}

var errorRules = []errorRule{
	{domain.ErrInvalidRequest, http.StatusBadRequest, "Invalid request"},
	{domain.ErrEmailRequired, http.StatusBadRequest, "Email is required"},
	{domain.ErrPromoCodeRequired, http.StatusBadRequest, "Promo code required"},
	{domain.ErrOrderIDRequired, http.StatusBadRequest, "Order ID required"},
	{domain.ErrPromoNotFound, http.StatusNotFound, "Промокод не найден"},
	{domain.ErrPromoInactive, http.StatusBadRequest, "Промокод неактивен"},
	{domain.ErrPromoExhausted, http.StatusBadRequest, "Все активации промокода использованы"},
	{domain.ErrPurchaseNotFound, http.StatusNotFound, "Purchase not found"},
	{domain.ErrInvalidSignature, http.StatusForbidden, "Invalid signature"},
	{domain.ErrGatewayNotConfigured, http.StatusInternalServerError, "Payment system not configured"},
}

// statusFor maps a service error to the status and message shown to the
// caller. Upstream bodies are never echoed.
func statusFor(err error) (int, string) {
	var upstream *payment.UpstreamError
	if errors.As(err, &upstream) {
		return upstream.HTTPStatus(), "Payment provider error"
	}
	for _, rule := range errorRules {
		if errors.Is(err, rule.target) {
			return rule.status, rule.message
		}
	}
	var storeErr *domain.StoreError
	if errors.As(err, &storeErr) {
		return http.StatusInternalServerError, "Database error: " + storeErr.Err.Error()
	}
	return http.StatusInternalServerError, "Internal server error"
}

func respondError(c *gin.Context, err error) {
	status, message := statusFor(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, errorBody{Error: message})
}
