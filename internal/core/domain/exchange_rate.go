package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateSource records where an exchange rate row came from.
type RateSource string

const (
	RateSourceSystem RateSource = "system"
	RateSourceManual RateSource = "manual"
)

// ExchangeRate stores the conversion rate between two currencies effective
// from a specific date. Multiple rows per pair/date are allowed (manual
// overrides are appended, never overwritten); resolution picks the active
// row with the latest effective date, ties broken by insertion order.
type ExchangeRate struct {
	ExchangeRateID   string          `json:"exchangeRateID"`
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"`
	DateEffective    time.Time       `json:"dateEffective"`
	Source           RateSource      `json:"source"`
	IsActive         bool            `json:"isActive"`
	AuditFields
}
