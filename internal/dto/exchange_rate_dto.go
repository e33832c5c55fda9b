package dto

import (
	"time"

	"github.com/rahmannascenia/accountingbolt/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ApplyManualRateRequest is the payload for the manual rate write path.
// The inserted row is appended with source "manual"; prior rows for the
// same date and pair are left untouched.
type ApplyManualRateRequest struct {
	FromCurrencyCode string          `json:"fromCurrencyCode" binding:"required,currency"`
	ToCurrencyCode   string          `json:"toCurrencyCode" binding:"required,currency"`
	Rate             decimal.Decimal `json:"rate" binding:"required"`
	DateEffective    time.Time       `json:"dateEffective" binding:"required"`
}

// ListExchangeRatesParams filters the rate listing.
type ListExchangeRatesParams struct {
	FromCurrencyCode *string
	ToCurrencyCode   *string
	AsOf             *time.Time
	Page             int
	PageSize         int
}

// ExchangeRateResponse is the API representation of one rate row.
type ExchangeRateResponse struct {
	ExchangeRateID   string          `json:"exchangeRateID"`
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"`
	DateEffective    string          `json:"dateEffective"`
	Source           string          `json:"source"`
	IsActive         bool            `json:"isActive"`
}

// ListExchangeRatesResponse is the paginated rate listing.
type ListExchangeRatesResponse struct {
	Rates    []ExchangeRateResponse `json:"rates"`
	Total    int                    `json:"total"`
	Page     int                    `json:"page"`
	PageSize int                    `json:"pageSize"`
}

// ToExchangeRateResponse converts a domain rate to its API shape.
func ToExchangeRateResponse(rate *domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		ExchangeRateID:   rate.ExchangeRateID,
		FromCurrencyCode: rate.FromCurrencyCode,
		ToCurrencyCode:   rate.ToCurrencyCode,
		Rate:             rate.Rate,
		DateEffective:    rate.DateEffective.Format("2006-01-02"),
		Source:           string(rate.Source),
		IsActive:         rate.IsActive,
	}
}

// ToListExchangeRatesResponse converts a page of domain rates.
func ToListExchangeRatesResponse(rates []domain.ExchangeRate, total, page, pageSize int) ListExchangeRatesResponse {
	resp := ListExchangeRatesResponse{
		Rates:    make([]ExchangeRateResponse, len(rates)),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
	for i := range rates {
		resp.Rates[i] = ToExchangeRateResponse(&rates[i])
	}
	return resp
}
