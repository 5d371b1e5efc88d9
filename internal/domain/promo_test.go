package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromoCodeValidate(t *testing.T) {
	amount := decimal.NewNullDecimal(decimal.NewFromInt(5))
	cases := []struct {
		name   string
		promo  *PromoCode
		status PromoStatus
		err    error
	}{
		{"nil", nil, PromoNotFound, ErrPromoNotFound},
		{"inactive", &PromoCode{Code: "OFF", IsActive: false, MaxUses: 5}, PromoInactive, ErrPromoInactive},
		{"exhausted", &PromoCode{Code: "USED", IsActive: true, MaxUses: 2, CurrentUses: 2}, PromoExhausted, ErrPromoExhausted},
		{"zero uses", &PromoCode{Code: "ZERO", IsActive: true, MaxUses: 0}, PromoExhausted, ErrPromoExhausted},
		{"valid", &PromoCode{Code: "SAVE50", IsActive: true, DiscountPercent: 50, DiscountAmount: amount, MaxUses: 10, CurrentUses: 3}, PromoValid, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := tc.promo.Validate()
			assert.Equal(t, tc.status, v.Status)
			assert.Equal(t, tc.err, v.Err())
			assert.Equal(t, tc.err == nil, v.Valid())
		})
	}

	v := (&PromoCode{IsActive: true, DiscountPercent: 50, DiscountAmount: amount, MaxUses: 10, CurrentUses: 3}).Validate()
	require.True(t, v.Valid())
	assert.Equal(t, 50, v.DiscountPercent)
	assert.Equal(t, 7, v.RemainingUses)
	assert.True(t, v.DiscountAmount.Valid)
	assert.Equal(t, "5", v.DiscountAmount.Decimal.String())
}

func TestNormalizePromoCode(t *testing.T) {
	assert.Equal(t, "SAVE50", NormalizePromoCode("  save50\t"))
	assert.Equal(t, "", NormalizePromoCode("   "))
}
