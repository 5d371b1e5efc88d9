package domain

import (
	"github.com/shopspring/decimal"
)

const CurrencyRUB = "RUB"

// Order is an intent to pay. It is never persisted; a confirmed webhook
// turns its ID into a Purchase.
type Order struct {
	ID              string
	Email           string
	Amount          decimal.Decimal
	Currency        string
	DiscountApplied bool
}
