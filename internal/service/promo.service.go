package service

import (
	"context"
	"database/sql"
	"errors"

	"storefront/internal/domain"
	"storefront/internal/repo"
)

type PromoService interface {
	Lookup(ctx context.Context, code string) (*domain.PromoCode, error)
	Validate(ctx context.Context, code string) (domain.PromoValidation, error)
	// Redeem consumes one use. It returns false when the code was not
	// redeemable at the moment of the update.
	Redeem(ctx context.Context, code string) (bool, error)
}

type promoService struct {
	db        *sql.DB
	promoRepo repo.PromoRepo
}

func NewPromoService(db *sql.DB, promoRepo repo.PromoRepo) PromoService {
	return &promoService{
		db:        db,
		promoRepo: promoRepo,
	}
}

func (s *promoService) Lookup(ctx context.Context, code string) (*domain.PromoCode, error) {
	code = domain.NormalizePromoCode(code)
	if code == "" {
		return nil, domain.ErrPromoCodeRequired
	}
	promo, err := s.promoRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, &domain.StoreError{Op: "find promo code", Err: err}
	}
	if promo == nil {
		return nil, domain.ErrPromoNotFound
	}
	return promo, nil
}

func (s *promoService) Validate(ctx context.Context, code string) (domain.PromoValidation, error) {
	promo, err := s.Lookup(ctx, code)
	if errors.Is(err, domain.ErrPromoNotFound) {
		return domain.PromoValidation{Status: domain.PromoNotFound}, nil
	}
	if err != nil {
		return domain.PromoValidation{}, err
	}
	return promo.Validate(), nil
}

func (s *promoService) Redeem(ctx context.Context, code string) (bool, error) {
	code = domain.NormalizePromoCode(code)
	if code == "" {
		return false, domain.ErrPromoCodeRequired
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, &domain.StoreError{Op: "begin redeem", Err: err}
	}
	defer tx.Rollback()

	redeemed, err := s.promoRepo.IncrementUses(ctx, tx, code)
	if err != nil {
		return false, &domain.StoreError{Op: "redeem promo code", Err: err}
	}
	if !redeemed {
		return false, nil
	}

	if err := tx.Commit(); err != nil {
		return false, &domain.StoreError{Op: "commit redeem", Err: err}
	}
	return true, nil
}
