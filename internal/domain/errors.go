package domain

import "errors"

var (
	ErrInvalidRequest       = errors.New("invalid request")
	ErrEmailRequired        = errors.New("email is required")
	ErrPromoCodeRequired    = errors.New("promo code required")
	ErrOrderIDRequired      = errors.New("order id required")
	ErrPromoNotFound        = errors.New("promo not found")
	ErrPromoInactive        = errors.New("promo inactive")
	ErrPromoExhausted       = errors.New("promo max uses reached")
	ErrPurchaseNotFound     = errors.New("purchase not found")
	ErrInvalidSignature     = errors.New("invalid signature")
	ErrGatewayNotConfigured = errors.New("payment system not configured")
)

// StoreError marks a failure of the relational store.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
