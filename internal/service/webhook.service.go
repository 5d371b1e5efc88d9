package service

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"storefront/internal/domain"
	"storefront/internal/infrastructure/payment"
	"storefront/internal/repo"
)

type NotificationVerifier interface {
	Verify(n payment.Notification) error
}

type WebhookService interface {
	// Confirm authenticates a gateway notification and records the
	// purchase. Once the signature checks out it returns nil even if the
	// purchase could not be stored; such failures are logged for manual
	// reconciliation.
	Confirm(ctx context.Context, n payment.Notification) error
}

type webhookService struct {
	verifier     NotificationVerifier
	purchaseRepo repo.PurchaseRepo
	log          *zap.Logger
}

func NewWebhookService(verifier NotificationVerifier, purchaseRepo repo.PurchaseRepo, log *zap.Logger) WebhookService {
	return &webhookService{
		verifier:     verifier,
		purchaseRepo: purchaseRepo,
		log:          log,
	}
}

func (s *webhookService) Confirm(ctx context.Context, n payment.Notification) error {
	if err := s.verifier.Verify(n); err != nil {
		s.log.Warn("webhook rejected",
			zap.String("order_id", n.OrderID),
			zap.String("merchant_id", n.MerchantID),
			zap.Error(err),
		)
		return err
	}

	log := s.log.With(
		zap.String("order_id", n.OrderID),
		zap.String("email", n.Email),
		zap.String("amount", n.Amount),
	)

	amount, err := decimal.NewFromString(n.Amount)
	if err != nil {
		log.Error("purchase not recorded: reconcile manually", zap.Error(err))
		return nil
	}

	created, err := s.purchaseRepo.Create(ctx, &domain.Purchase{
		OrderID: n.OrderID,
		Email:   n.Email,
		Amount:  amount,
	})
	if err != nil {
		log.Error("purchase not recorded: reconcile manually", zap.Error(err))
		return nil
	}
	if !created {
		log.Info("duplicate webhook, purchase already recorded")
		return nil
	}
	log.Info("purchase recorded")
	return nil
}
