package repo

import (
	"context"
	"database/sql"
	"errors"

	"storefront/internal/domain"
)

type PurchaseRepo interface {
	// Create inserts the purchase unless its order id is already recorded.
	// It reports whether a new row was written.
	Create(ctx context.Context, purchase *domain.Purchase) (bool, error)
	// FindByOrderID returns nil, nil when the order has no purchase.
	FindByOrderID(ctx context.Context, orderID string) (*domain.Purchase, error)
}

type purchaseRepo struct {
	db *sql.DB
}

func NewPurchaseRepo(db *sql.DB) PurchaseRepo {
	return &purchaseRepo{db: db}
}

func (r *purchaseRepo) Create(ctx context.Context, purchase *domain.Purchase) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO purchases (order_id, email, amount, created_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (order_id) DO NOTHING
	`, purchase.OrderID, purchase.Email, purchase.Amount)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *purchaseRepo) FindByOrderID(ctx context.Context, orderID string) (*domain.Purchase, error) {
	var p domain.Purchase
	err := r.db.QueryRowContext(ctx, `
		SELECT order_id, email, amount, created_at
		FROM purchases
		WHERE order_id = $1
	`, orderID).Scan(
		&p.OrderID,
		&p.Email,
		&p.Amount,
		&p.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil // not found
	}
	if err != nil {
		return nil, err // system error
	}
	return &p, nil
}
