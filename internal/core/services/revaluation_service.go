package services

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/rahmannascenia/accountingbolt/internal/core/domain"
	"github.com/rahmannascenia/accountingbolt/internal/utils/accounting"
)

// RevaluationConfig names the reporting currency and the accounts the
// virtual gain/loss lines post against.
type RevaluationConfig struct {
	ReportingCurrency string
	GainAccountCode   string
	GainAccountName   string
	LossAccountCode   string
	LossAccountName   string
}

// RevaluationEngine computes unrealized FX gains and losses over a pinned
// ledger snapshot. It never writes anything; the virtual journal it emits
// is a preview only.
type RevaluationEngine struct {
	cfg RevaluationConfig
}

// NewRevaluationEngine creates a revaluation engine.
func NewRevaluationEngine(cfg RevaluationConfig) *RevaluationEngine {
	return &RevaluationEngine{cfg: cfg}
}

// ComputePositions derives the open foreign-currency positions from the
// snapshot: unpaid portions of foreign invoices (booking-rate basis) and
// foreign bank balances (approximated basis, since no booking rate exists
// for a running cash balance). Positions whose currency resolves to no rate
// are kept with a nil current rate and a zero gain/loss; their currencies
// come back as the second return value, sorted and de-duplicated.
func (e *RevaluationEngine) ComputePositions(snapshot *domain.LedgerSnapshot, book *accounting.RateBook) ([]domain.ForeignPosition, []string) {
	var positions []domain.ForeignPosition
	missing := make(map[string]struct{})

	for _, inv := range snapshot.OpenInvoices {
		remaining := inv.RemainingAmount()
		if inv.Currency == e.cfg.ReportingCurrency || !remaining.IsPositive() {
			continue
		}
		pos := domain.ForeignPosition{
			SourceType:      domain.PositionSourceInvoice,
			SourceID:        inv.InvoiceID,
			AccountCode:     inv.AccountCode,
			AccountName:     inv.AccountName,
			Currency:        inv.Currency,
			RemainingAmount: remaining,
			HistoricalRate:  inv.HistoricalRate,
			RateBasis:       domain.RateBasisBooking,
			GainLoss:        decimal.Zero,
			AsOf:            snapshot.AsOf,
		}
		if rate, ok := book.Resolve(inv.Currency, e.cfg.ReportingCurrency, snapshot.AsOf); ok {
			pos.CurrentRate = &rate
			pos.GainLoss = remaining.Mul(rate.Sub(inv.HistoricalRate))
		} else {
			missing[inv.Currency] = struct{}{}
		}
		positions = append(positions, pos)
	}

	for _, bank := range snapshot.BankBalances {
		if bank.Currency == e.cfg.ReportingCurrency || bank.Balance.IsZero() {
			continue
		}
		pos := domain.ForeignPosition{
			SourceType:      domain.PositionSourceBankAccount,
			SourceID:        bank.BankAccountID,
			AccountCode:     bank.AccountCode,
			AccountName:     bank.AccountName,
			Currency:        bank.Currency,
			RemainingAmount: bank.Balance,
			RateBasis:       domain.RateBasisApproximated,
			GainLoss:        decimal.Zero,
			AsOf:            snapshot.AsOf,
		}
		if rate, ok := book.Resolve(bank.Currency, e.cfg.ReportingCurrency, snapshot.AsOf); ok {
			// A bank balance carries no booking rate, so the current rate
			// stands in for the historical one. The gain/loss is zero by
			// construction; the basis marks the approximation for callers.
			pos.CurrentRate = &rate
			pos.HistoricalRate = rate
		} else {
			missing[bank.Currency] = struct{}{}
		}
		positions = append(positions, pos)
	}

	missingList := make([]string, 0, len(missing))
	for currency := range missing {
		missingList = append(missingList, currency)
	}
	sort.Strings(missingList)
	return positions, missingList
}

// GenerateVirtualJournal builds the non-posting revaluation preview entry.
// Every position whose gain or loss exceeds tolerance contributes one line
// on its own account; gains are then offset by a single credit on the gain
// account and losses by a single debit on the loss account, so the full set
// of lines always balances.
func (e *RevaluationEngine) GenerateVirtualJournal(positions []domain.ForeignPosition) []domain.VirtualJournalLine {
	var lines []domain.VirtualJournalLine
	sumGain := decimal.Zero
	sumLoss := decimal.Zero
	for _, pos := range positions {
		if pos.GainLoss.Abs().LessThanOrEqual(accounting.BalanceTolerance) {
			continue
		}
		description := fmt.Sprintf("Unrealized FX revaluation of %s %s (%s)", pos.Currency, pos.SourceID, pos.SourceType)
		if pos.GainLoss.IsPositive() {
			sumGain = sumGain.Add(pos.GainLoss)
			lines = append(lines, domain.VirtualJournalLine{
				AccountCode: pos.AccountCode,
				AccountName: pos.AccountName,
				Debit:       pos.GainLoss,
				Credit:      decimal.Zero,
				Description: description,
			})
			continue
		}
		loss := pos.GainLoss.Neg()
		sumLoss = sumLoss.Add(loss)
		lines = append(lines, domain.VirtualJournalLine{
			AccountCode: pos.AccountCode,
			AccountName: pos.AccountName,
			Debit:       decimal.Zero,
			Credit:      loss,
			Description: description,
		})
	}
	if sumGain.IsPositive() {
		lines = append(lines, domain.VirtualJournalLine{
			AccountCode: e.cfg.GainAccountCode,
			AccountName: e.cfg.GainAccountName,
			Debit:       decimal.Zero,
			Credit:      sumGain,
			Description: "Unrealized FX gain",
		})
	}
	if sumLoss.IsPositive() {
		lines = append(lines, domain.VirtualJournalLine{
			AccountCode: e.cfg.LossAccountCode,
			AccountName: e.cfg.LossAccountName,
			Debit:       sumLoss,
			Credit:      decimal.Zero,
			Description: "Unrealized FX loss",
		})
	}
	return lines
}

// Revalue runs the full computation over one snapshot.
func (e *RevaluationEngine) Revalue(snapshot *domain.LedgerSnapshot) *domain.RevaluationResult {
	book := accounting.NewRateBook(snapshot.Rates)
	positions, missing := e.ComputePositions(snapshot, book)

	totalGain := decimal.Zero
	totalLoss := decimal.Zero
	for _, pos := range positions {
		if pos.GainLoss.IsPositive() {
			totalGain = totalGain.Add(pos.GainLoss)
		} else if pos.GainLoss.IsNegative() {
			totalLoss = totalLoss.Add(pos.GainLoss.Neg())
		}
	}

	return &domain.RevaluationResult{
		AsOf:              snapshot.AsOf,
		Positions:         positions,
		VirtualJournal:    e.GenerateVirtualJournal(positions),
		TotalGain:         totalGain,
		TotalLoss:         totalLoss,
		MissingCurrencies: missing,
	}
}
