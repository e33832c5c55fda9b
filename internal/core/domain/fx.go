package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PositionSource identifies what kind of open item a foreign position was
// derived from.
type PositionSource string

const (
	PositionSourceInvoice     PositionSource = "INVOICE"
	PositionSourceBankAccount PositionSource = "BANK_ACCOUNT"
)

// RateBasis tells callers how the historical rate of a position was chosen.
// Bank balances carry no booking rate, so their reference rate is only an
// approximation and must be distinguishable from a true booking rate.
type RateBasis string

const (
	RateBasisBooking      RateBasis = "BOOKING"
	RateBasisApproximated RateBasis = "APPROXIMATED"
)

// ForeignPosition is a derived (never stored) open foreign-currency balance
// together with the rates needed to revalue it. CurrentRate is nil when no
// active rate could be resolved for the position's currency; such positions
// contribute nothing to totals but stay visible so a manual rate can be
// supplied.
type ForeignPosition struct {
	SourceType      PositionSource   `json:"sourceType"`
	SourceID        string           `json:"sourceID"`
	AccountCode     string           `json:"accountCode"`
	AccountName     string           `json:"accountName"`
	Currency        string           `json:"currency"`
	RemainingAmount decimal.Decimal  `json:"remainingAmount"`
	HistoricalRate  decimal.Decimal  `json:"historicalRate"`
	CurrentRate     *decimal.Decimal `json:"currentRate"`
	RateBasis       RateBasis        `json:"rateBasis"`
	GainLoss        decimal.Decimal  `json:"gainLoss"` // positive = unrealized gain, zero when CurrentRate is nil
	AsOf            time.Time        `json:"asOf"`
}

// HasCurrentRate reports whether the position's currency resolved to a rate.
func (p ForeignPosition) HasCurrentRate() bool {
	return p.CurrentRate != nil
}

// VirtualJournalLine is one line of the non-posting revaluation preview
// entry. The full set of lines always balances to zero.
type VirtualJournalLine struct {
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}

// RevaluationResult bundles the outcome of an unrealized FX computation:
// the open positions, the virtual journal preview derived from them, the
// aggregate gain/loss, and the set of currencies that could not resolve a
// rate (candidates for manual entry).
type RevaluationResult struct {
	AsOf              time.Time            `json:"asOf"`
	Positions         []ForeignPosition    `json:"positions"`
	VirtualJournal    []VirtualJournalLine `json:"virtualJournal"`
	TotalGain         decimal.Decimal      `json:"totalGain"`
	TotalLoss         decimal.Decimal      `json:"totalLoss"`
	MissingCurrencies []string             `json:"missingCurrencies"`
}
