package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rahmannascenia/accountingbolt/internal/apperrors"
	"github.com/rahmannascenia/accountingbolt/internal/core/domain"
	portsrepo "github.com/rahmannascenia/accountingbolt/internal/core/ports/repositories"
	portssvc "github.com/rahmannascenia/accountingbolt/internal/core/ports/services"
	"github.com/rahmannascenia/accountingbolt/internal/dto"
)

type exchangeRateService struct {
	BaseService
	rateRepo portsrepo.ExchangeRateRepository
}

var _ portssvc.ExchangeRateSvcFacade = (*exchangeRateService)(nil)

// NewExchangeRateService creates a new exchange rate service.
func NewExchangeRateService(rateRepo portsrepo.ExchangeRateRepository) *exchangeRateService {
	return &exchangeRateService{rateRepo: rateRepo}
}

// normalizeCurrencyCode uppercases a currency code and validates it as a
// three-letter ISO 4217 style code.
func normalizeCurrencyCode(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 3 {
		return "", apperrors.NewValidationError(fmt.Sprintf("currency code %q must be 3 letters", code))
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return "", apperrors.NewValidationError(fmt.Sprintf("currency code %q must be 3 letters", code))
		}
	}
	return code, nil
}

// ResolveRate returns the applicable rate for the pair at the as-of date.
// Identity pairs resolve to a synthetic rate of 1 without touching storage.
func (s *exchangeRateService) ResolveRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string, asOf time.Time) (*domain.ExchangeRate, error) {
	from, err := normalizeCurrencyCode(fromCurrencyCode)
	if err != nil {
		return nil, err
	}
	to, err := normalizeCurrencyCode(toCurrencyCode)
	if err != nil {
		return nil, err
	}

	if from == to {
		return &domain.ExchangeRate{
			FromCurrencyCode: from,
			ToCurrencyCode:   to,
			Rate:             decimal.NewFromInt(1),
			DateEffective:    asOf,
			Source:           domain.RateSourceSystem,
			IsActive:         true,
		}, nil
	}

	rate, err := s.rateRepo.FindRateAsOf(ctx, from, to, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve rate %s/%s as of %s: %w", from, to, asOf.Format("2006-01-02"), err)
	}
	return rate, nil
}

// ApplyManualRate appends a manual rate row. Prior rows for the same pair
// and date stay in place; resolution order makes the newest row win.
func (s *exchangeRateService) ApplyManualRate(ctx context.Context, req dto.ApplyManualRateRequest, creatorUserID string) (*domain.ExchangeRate, error) {
	from, err := normalizeCurrencyCode(req.FromCurrencyCode)
	if err != nil {
		return nil, err
	}
	to, err := normalizeCurrencyCode(req.ToCurrencyCode)
	if err != nil {
		return nil, err
	}
	if from == to {
		return nil, apperrors.NewValidationError("from and to currency must differ")
	}
	if !req.Rate.IsPositive() {
		return nil, apperrors.NewValidationError("rate must be positive")
	}
	if req.DateEffective.IsZero() {
		return nil, apperrors.NewValidationError("dateEffective is required")
	}

	now := time.Now()
	rate := domain.ExchangeRate{
		ExchangeRateID:   uuid.NewString(),
		FromCurrencyCode: from,
		ToCurrencyCode:   to,
		Rate:             req.Rate,
		DateEffective:    req.DateEffective,
		Source:           domain.RateSourceManual,
		IsActive:         true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.rateRepo.SaveExchangeRate(ctx, rate); err != nil {
		s.LogError(ctx, "Failed to save manual exchange rate",
			slog.String("from", from), slog.String("to", to), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save manual rate: %w", err)
	}

	s.LogInfo(ctx, "Manual exchange rate applied",
		slog.String("from", from), slog.String("to", to),
		slog.String("rate", rate.Rate.String()),
		slog.String("dateEffective", rate.DateEffective.Format("2006-01-02")))
	return &rate, nil
}

// ListRates returns a page of rate rows matching the optional filters.
func (s *exchangeRateService) ListRates(ctx context.Context, params dto.ListExchangeRatesParams) ([]domain.ExchangeRate, int, error) {
	if params.FromCurrencyCode != nil {
		from, err := normalizeCurrencyCode(*params.FromCurrencyCode)
		if err != nil {
			return nil, 0, err
		}
		params.FromCurrencyCode = &from
	}
	if params.ToCurrencyCode != nil {
		to, err := normalizeCurrencyCode(*params.ToCurrencyCode)
		if err != nil {
			return nil, 0, err
		}
		params.ToCurrencyCode = &to
	}
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 || params.PageSize > 100 {
		params.PageSize = 20
	}

	rates, total, err := s.rateRepo.ListExchangeRates(ctx, params.FromCurrencyCode, params.ToCurrencyCode, params.AsOf, params.Page, params.PageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list exchange rates: %w", err)
	}
	return rates, total, nil
}
