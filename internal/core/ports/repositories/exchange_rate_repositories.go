package repositories

import (
	"context"
	"time"

	"github.com/rahmannascenia/accountingbolt/internal/core/domain"
)

// ExchangeRateRepository defines persistence operations for exchange rates.
// Saving is append-only: a new row never deactivates or overwrites prior
// rows for the same pair and date.
type ExchangeRateRepository interface {
	SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error
	// FindRateAsOf returns the active rate with the latest effective date at
	// or before asOf, ties broken by most recent insertion. Returns
	// apperrors.ErrNotFound when no such row exists.
	FindRateAsOf(ctx context.Context, fromCurrencyCode, toCurrencyCode string, asOf time.Time) (*domain.ExchangeRate, error)
	ListExchangeRates(ctx context.Context, fromCurrency, toCurrency *string, asOf *time.Time, page, pageSize int) ([]domain.ExchangeRate, int, error)
}
