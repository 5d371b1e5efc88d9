package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Purchase struct {
	OrderID   string
	Email     string
	Amount    decimal.Decimal
	CreatedAt time.Time
}

// DownloadInfo is what a paid customer gets back for an order.
type DownloadInfo struct {
	DownloadURL string
	Email       string
}
