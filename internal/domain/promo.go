package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

type PromoCode struct {
	Code            string
	DiscountPercent int
	DiscountAmount  decimal.NullDecimal
	MaxUses         int
	CurrentUses     int
	IsActive        bool
}

type PromoStatus string

const (
	PromoValid     PromoStatus = "VALID"
	PromoNotFound  PromoStatus = "NOT_FOUND"
	PromoInactive  PromoStatus = "INACTIVE"
	PromoExhausted PromoStatus = "EXHAUSTED"
)

// PromoValidation is the outcome of checking a code against the ledger.
// DiscountPercent, DiscountAmount and RemainingUses are only set for PromoValid.
type PromoValidation struct {
	Status          PromoStatus
	DiscountPercent int
	DiscountAmount  decimal.NullDecimal
	RemainingUses   int
}

func (v PromoValidation) Valid() bool {
	return v.Status == PromoValid
}

// Err returns the sentinel matching a non-valid status, nil otherwise.
func (v PromoValidation) Err() error {
	switch v.Status {
	case PromoNotFound:
		return ErrPromoNotFound
	case PromoInactive:
		return ErrPromoInactive
	case PromoExhausted:
		return ErrPromoExhausted
	}
	return nil
}

// Validate classifies the code in its current stored state.
func (p *PromoCode) Validate() PromoValidation {
	if p == nil {
		return PromoValidation{Status: PromoNotFound}
	}
	if !p.IsActive {
		return PromoValidation{Status: PromoInactive}
	}
	if p.CurrentUses >= p.MaxUses {
		return PromoValidation{Status: PromoExhausted}
	}
	return PromoValidation{
		Status:          PromoValid,
		DiscountPercent: p.DiscountPercent,
		DiscountAmount:  p.DiscountAmount,
		RemainingUses:   p.MaxUses - p.CurrentUses,
	}
}

// NormalizePromoCode upper-cases and trims a code the way it is stored.
func NormalizePromoCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
