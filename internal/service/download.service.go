package service

import (
	"context"
	"strings"

	"storefront/internal/domain"
	"storefront/internal/repo"
)

type DownloadService interface {
	Resolve(ctx context.Context, orderID string) (*domain.DownloadInfo, error)
}

type downloadService struct {
	purchaseRepo repo.PurchaseRepo
	downloadURL  string
}

func NewDownloadService(purchaseRepo repo.PurchaseRepo, downloadURL string) DownloadService {
	return &downloadService{
		purchaseRepo: purchaseRepo,
		downloadURL:  downloadURL,
	}
}

func (s *downloadService) Resolve(ctx context.Context, orderID string) (*domain.DownloadInfo, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return nil, domain.ErrOrderIDRequired
	}

	purchase, err := s.purchaseRepo.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, &domain.StoreError{Op: "find purchase", Err: err}
	}
	if purchase == nil {
		return nil, domain.ErrPurchaseNotFound
	}

	return &domain.DownloadInfo{
		DownloadURL: s.downloadURL,
		Email:       purchase.Email,
	}, nil
}
