package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"storefront/internal/domain"
	"storefront/internal/infrastructure/payment"
)

var hundred = decimal.NewFromInt(100)

type OrderService interface {
	// Mint prices a new order. A promo code that cannot be applied leaves
	// the base price in place; it is never an error.
	Mint(ctx context.Context, email, promoCode string) (*domain.Order, error)
	// Checkout mints an order and asks the gateway for a payment link.
	Checkout(ctx context.Context, email, promoCode string) (*Checkout, error)
}

type Checkout struct {
	Order *domain.Order
	Link  *payment.PaymentLink
}

type OrderConfig struct {
	Price         decimal.Decimal
	OrderIDPrefix string
}

type orderService struct {
	cfg        OrderConfig
	promos     PromoService
	paymentGtw payment.Gateway
	log        *zap.Logger
	newOrderID func(prefix string) string
}

func NewOrderService(
	cfg OrderConfig,
	promos PromoService,
	paymentGtw payment.Gateway,
	log *zap.Logger,
) OrderService {
	return &orderService{
		cfg:        cfg,
		promos:     promos,
		paymentGtw: paymentGtw,
		log:        log,
		newOrderID: NewOrderID,
	}
}

func (s *orderService) Checkout(ctx context.Context, email, promoCode string) (*Checkout, error) {
	if strings.TrimSpace(email) == "" {
		return nil, domain.ErrEmailRequired
	}
	if c, ok := s.paymentGtw.(payment.Configurable); ok && !c.Configured() {
		return nil, domain.ErrGatewayNotConfigured
	}

	order, err := s.Mint(ctx, email, promoCode)
	if err != nil {
		return nil, err
	}

	link, err := s.paymentGtw.CreatePayment(ctx, order)
	if err != nil {
		s.log.Error("create payment failed",
			zap.String("order_id", order.ID),
			zap.Bool("discount_applied", order.DiscountApplied),
			zap.Error(err),
		)
		return nil, err
	}

	s.log.Info("payment created",
		zap.String("order_id", order.ID),
		zap.String("amount", order.Amount.String()),
		zap.Bool("discount_applied", order.DiscountApplied),
		zap.String("provider_reference", link.ProviderReference),
	)
	return &Checkout{Order: order, Link: link}, nil
}

func (s *orderService) Mint(ctx context.Context, email, promoCode string) (*domain.Order, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, domain.ErrEmailRequired
	}

	order := &domain.Order{
		ID:       s.newOrderID(s.cfg.OrderIDPrefix),
		Email:    email,
		Amount:   s.cfg.Price,
		Currency: domain.CurrencyRUB,
	}

	if code := domain.NormalizePromoCode(promoCode); code != "" {
		if amount, ok := s.applyPromo(ctx, order.ID, code); ok {
			order.Amount = amount
			order.DiscountApplied = true
		}
	}
	return order, nil
}

// applyPromo returns the discounted amount when the code was valid and one
// use could be consumed.
func (s *orderService) applyPromo(ctx context.Context, orderID, code string) (decimal.Decimal, bool) {
	log := s.log.With(zap.String("order_id", orderID), zap.String("promo_code", code))

	validation, err := s.promos.Validate(ctx, code)
	if err != nil {
		log.Warn("promo validation failed, charging full price", zap.Error(err))
		return decimal.Zero, false
	}
	if !validation.Valid() {
		log.Info("promo not applicable, charging full price", zap.String("status", string(validation.Status)))
		return decimal.Zero, false
	}

	amount := DiscountedAmount(s.cfg.Price, validation.DiscountPercent)

	redeemed, err := s.promos.Redeem(ctx, code)
	if err != nil {
		log.Warn("promo redeem failed, charging full price", zap.Error(err))
		return decimal.Zero, false
	}
	if !redeemed {
		log.Info("promo exhausted before redeem, charging full price")
		return decimal.Zero, false
	}
	return amount, true
}

// DiscountedAmount applies percent to price and truncates to whole units.
func DiscountedAmount(price decimal.Decimal, percent int) decimal.Decimal {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	return price.Mul(decimal.NewFromInt(int64(100 - percent))).Div(hundred).Truncate(0)
}

// NewOrderID returns "<prefix>_<32 hex chars>" from a random UUID.
func NewOrderID(prefix string) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	if prefix == "" {
		return id
	}
	return prefix + "_" + id
}
