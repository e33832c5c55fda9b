package services

import (
	"context"
	"time"

	"github.com/rahmannascenia/accountingbolt/internal/core/domain"
	"github.com/rahmannascenia/accountingbolt/internal/dto"
)

// ExchangeRateSvcFacade exposes rate resolution and the manual-rate write
// path. Resolution failure surfaces as apperrors.ErrNotFound; callers decide
// whether that is fatal (it is not, inside report generation).
type ExchangeRateSvcFacade interface {
	ResolveRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string, asOf time.Time) (*domain.ExchangeRate, error)
	ApplyManualRate(ctx context.Context, req dto.ApplyManualRateRequest, creatorUserID string) (*domain.ExchangeRate, error)
	ListRates(ctx context.Context, params dto.ListExchangeRatesParams) ([]domain.ExchangeRate, int, error)
}
