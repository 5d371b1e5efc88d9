package repo

import (
	"context"
	"database/sql"
	"errors"

	"storefront/internal/domain"
)

type PromoRepo interface {
	// FindByCode returns nil, nil when no row matches.
	FindByCode(ctx context.Context, code string) (*domain.PromoCode, error)
	// IncrementUses consumes one use if the code is active and not exhausted.
	// It reports whether a row was updated.
	IncrementUses(ctx context.Context, tx *sql.Tx, code string) (bool, error)
}

type promoRepo struct {
	db *sql.DB
}

func NewPromoRepo(db *sql.DB) PromoRepo {
	return &promoRepo{db: db}
}

func (r *promoRepo) FindByCode(ctx context.Context, code string) (*domain.PromoCode, error) {
	var p domain.PromoCode
	err := r.db.QueryRowContext(ctx, `
		SELECT code, discount_percent, discount_amount, max_uses, current_uses, is_active
		FROM promo_codes
		WHERE code = $1
	`, code).Scan(
		&p.Code,
		&p.DiscountPercent,
		&p.DiscountAmount,
		&p.MaxUses,
		&p.CurrentUses,
		&p.IsActive,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *promoRepo) IncrementUses(ctx context.Context, tx *sql.Tx, code string) (bool, error) {
	res, err := tx.ExecContext(ctx, `
		UPDATE promo_codes
		SET current_uses = current_uses + 1
		WHERE code = $1
		  AND is_active
		  AND current_uses < max_uses
	`, code)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
