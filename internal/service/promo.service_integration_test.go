//go:build integration

package service

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"storefront/internal/database/dbtest"
	"storefront/internal/domain"
	"storefront/internal/repo"
)

func TestPromoServiceValidate(t *testing.T) {
	db := dbtest.StartPostgres(t)
	ctx := context.Background()
	_, err := db.Exec(`
		INSERT INTO promo_codes (code, discount_percent, discount_amount, max_uses, current_uses, is_active) VALUES
		('SAVE50', 50, NULL, 10, 4, TRUE),
		('OFF', 10, NULL, 10, 0, FALSE),
		('USED', 10, 100, 2, 2, TRUE)
	`)
	require.NoError(t, err)

	svc := NewPromoService(db, repo.NewPromoRepo(db))

	v, err := svc.Validate(ctx, " save50 ")
	require.NoError(t, err)
	assert.Equal(t, domain.PromoValid, v.Status)
	assert.Equal(t, 50, v.DiscountPercent)
	assert.Equal(t, 6, v.RemainingUses)

	v, err = svc.Validate(ctx, "off")
	require.NoError(t, err)
	assert.Equal(t, domain.PromoInactive, v.Status)

	v, err = svc.Validate(ctx, "USED")
	require.NoError(t, err)
	assert.Equal(t, domain.PromoExhausted, v.Status)

	v, err = svc.Validate(ctx, "MISSING")
	require.NoError(t, err)
	assert.Equal(t, domain.PromoNotFound, v.Status)

	_, err = svc.Lookup(ctx, "MISSING")
	require.ErrorIs(t, err, domain.ErrPromoNotFound)
}

func TestPromoServiceConcurrentRedeem(t *testing.T) {
	db := dbtest.StartPostgres(t)
	ctx := context.Background()
	_, err := db.Exec(`INSERT INTO promo_codes (code, discount_percent, max_uses, current_uses) VALUES ('RUSH', 30, 5, 2)`)
	require.NoError(t, err)

	svc := NewPromoService(db, repo.NewPromoRepo(db))

	const attempts = 20
	var succeeded atomic.Int32
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < attempts; i++ {
		g.Go(func() error {
			ok, err := svc.Redeem(gctx, "rush")
			if err != nil {
				return err
			}
			if ok {
				succeeded.Add(1)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, int32(3), succeeded.Load())

	promo, err := svc.Lookup(ctx, "RUSH")
	require.NoError(t, err)
	assert.Equal(t, 5, promo.CurrentUses)
	assert.Equal(t, domain.PromoExhausted, promo.Validate().Status)
}
