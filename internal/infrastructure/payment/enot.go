package payment

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"storefront/internal/config"
	"storefront/internal/domain"
)

// Notification is a payment confirmation delivered by the redirect provider.
type Notification struct {
	MerchantID string
	Amount     string
	OrderID    string
	Signature  string
	Email      string
}

// EnotGateway builds signed redirect links and verifies the matching
// webhook notifications. It never calls the provider.
type EnotGateway struct {
	shopID string
	payURL string
	signer Signer
	ready  bool
}

func NewEnotGateway(cfg config.EnotConfig) *EnotGateway {
	shopID := strings.TrimSpace(cfg.ShopID)
	secret := strings.TrimSpace(cfg.SecretKey)
	return &EnotGateway{
		shopID: shopID,
		payURL: strings.TrimSpace(cfg.PayURL),
		signer: MD5Signer{SecretKey: secret},
		ready:  shopID != "" && secret != "",
	}
}

func (g *EnotGateway) CreatePayment(_ context.Context, order *domain.Order) (*PaymentLink, error) {
	if !g.ready {
		return nil, domain.ErrGatewayNotConfigured
	}
	amount := order.Amount.String()
	sign := g.signer.Sign(g.shopID, amount, order.ID)

	query := []string{
		"m=" + url.QueryEscape(g.shopID),
		"oa=" + url.QueryEscape(amount),
		"c=" + url.QueryEscape(order.Currency),
		"o=" + url.QueryEscape(order.ID),
		"s=" + sign,
		"cr=" + url.QueryEscape(order.Currency),
		"cf=" + url.QueryEscape(order.Email),
	}
	return &PaymentLink{
		URL:               fmt.Sprintf("%s?%s", g.payURL, strings.Join(query, "&")),
		ProviderReference: order.ID,
	}, nil
}

// Verify checks the notification signature against our own secret.
func (g *EnotGateway) Verify(n Notification) error {
	if !g.ready {
		return domain.ErrGatewayNotConfigured
	}
	expected := g.signer.Sign(n.MerchantID, n.Amount, n.OrderID)
	if !signaturesEqual(expected, n.Signature) {
		return domain.ErrInvalidSignature
	}
	return nil
}

// Sign exposes the digest for operator tooling.
func (g *EnotGateway) Sign(merchantID, amount, orderID string) string {
	return g.signer.Sign(merchantID, amount, orderID)
}

func (g *EnotGateway) Configured() bool {
	return g.ready
}
