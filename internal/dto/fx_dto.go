package dto

import (
	"github.com/rahmannascenia/accountingbolt/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ForeignPositionResponse is the API shape of one open foreign-currency
// position. CurrentRate is null when no rate resolved for the currency.
type ForeignPositionResponse struct {
	SourceType      string           `json:"sourceType"`
	SourceID        string           `json:"sourceID"`
	AccountCode     string           `json:"accountCode"`
	AccountName     string           `json:"accountName"`
	Currency        string           `json:"currency"`
	RemainingAmount decimal.Decimal  `json:"remainingAmount"`
	HistoricalRate  decimal.Decimal  `json:"historicalRate"`
	CurrentRate     *decimal.Decimal `json:"currentRate"`
	RateBasis       string           `json:"rateBasis"`
	GainLoss        decimal.Decimal  `json:"gainLoss"`
}

// VirtualJournalLineResponse is one preview line of the revaluation entry.
type VirtualJournalLineResponse struct {
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}

// RevaluationPreviewResponse bundles positions, the virtual journal and the
// currencies still missing a rate.
type RevaluationPreviewResponse struct {
	AsOf              string                       `json:"asOf"`
	Positions         []ForeignPositionResponse    `json:"positions"`
	VirtualJournal    []VirtualJournalLineResponse `json:"virtualJournal"`
	TotalGain         decimal.Decimal              `json:"totalGain"`
	TotalLoss         decimal.Decimal              `json:"totalLoss"`
	MissingCurrencies []string                     `json:"missingCurrencies"`
}

// ToRevaluationPreviewResponse converts a domain revaluation result.
func ToRevaluationPreviewResponse(result *domain.RevaluationResult) RevaluationPreviewResponse {
	resp := RevaluationPreviewResponse{
		AsOf:              result.AsOf.Format("2006-01-02"),
		Positions:         make([]ForeignPositionResponse, len(result.Positions)),
		VirtualJournal:    make([]VirtualJournalLineResponse, len(result.VirtualJournal)),
		TotalGain:         result.TotalGain,
		TotalLoss:         result.TotalLoss,
		MissingCurrencies: result.MissingCurrencies,
	}
	if resp.MissingCurrencies == nil {
		resp.MissingCurrencies = []string{}
	}
	for i, pos := range result.Positions {
		resp.Positions[i] = ForeignPositionResponse{
			SourceType:      string(pos.SourceType),
			SourceID:        pos.SourceID,
			AccountCode:     pos.AccountCode,
			AccountName:     pos.AccountName,
			Currency:        pos.Currency,
			RemainingAmount: pos.RemainingAmount,
			HistoricalRate:  pos.HistoricalRate,
			CurrentRate:     pos.CurrentRate,
			RateBasis:       string(pos.RateBasis),
			GainLoss:        pos.GainLoss,
		}
	}
	for i, line := range result.VirtualJournal {
		resp.VirtualJournal[i] = VirtualJournalLineResponse{
			AccountCode: line.AccountCode,
			AccountName: line.AccountName,
			Debit:       line.Debit,
			Credit:      line.Credit,
			Description: line.Description,
		}
	}
	return resp
}
