package payment

import (
	"context"
	"fmt"
	"net/http"

	"storefront/internal/config"
	"storefront/internal/domain"
)

// Gateway turns an order into a link the customer can pay at.
type Gateway interface {
	CreatePayment(ctx context.Context, order *domain.Order) (*PaymentLink, error)
}

type PaymentLink struct {
	URL string
	// ProviderReference identifies the payment on the provider side. For
	// redirect providers it is the order id itself.
	ProviderReference string
}

// UpstreamError carries the provider's answer for diagnostics. StatusCode is
// zero when the request never got a response.
type UpstreamError struct {
	Provider   string
	StatusCode int
	Body       string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s request failed: %v", e.Provider, e.Err)
	}
	return fmt.Sprintf("%s responded %d: %s", e.Provider, e.StatusCode, e.Body)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// HTTPStatus is the status to report to our own caller.
func (e *UpstreamError) HTTPStatus() int {
	if e.StatusCode >= http.StatusBadRequest {
		return e.StatusCode
	}
	return http.StatusInternalServerError
}

// New selects the gateway configured for this deployment.
func New(cfg *config.Config) (Gateway, error) {
	switch cfg.PaymentProvider {
	case config.ProviderEnot:
		return NewEnotGateway(cfg.Enot), nil
	case config.ProviderYooKassa:
		return NewYooKassaGateway(cfg.YooKassa, cfg.ProductName, cfg.GatewayTimeout), nil
	}
	return nil, fmt.Errorf("unknown payment provider %q", cfg.PaymentProvider)
}

// Configurable is implemented by gateways that need credentials. Callers check
// it before doing work that cannot be undone, like consuming a promo code.
type Configurable interface {
	Configured() bool
}
