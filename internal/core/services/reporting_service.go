package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rahmannascenia/accountingbolt/internal/core/domain"
	portsrepo "github.com/rahmannascenia/accountingbolt/internal/core/ports/repositories"
	portssvc "github.com/rahmannascenia/accountingbolt/internal/core/ports/services"
	"github.com/rahmannascenia/accountingbolt/internal/utils/accounting"
)

type reportingService struct {
	BaseService
	ledgerRepo portsrepo.LedgerReadRepository
	engine     *RevaluationEngine
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// NewReportingService creates a new reporting service.
func NewReportingService(ledgerRepo portsrepo.LedgerReadRepository, engine *RevaluationEngine) *reportingService {
	return &reportingService{ledgerRepo: ledgerRepo, engine: engine}
}

func (s *reportingService) loadSnapshot(ctx context.Context, asOf time.Time) (*domain.LedgerSnapshot, error) {
	snapshot, err := s.ledgerRepo.LoadSnapshot(ctx, asOf)
	if err != nil {
		s.LogError(ctx, "Failed to load ledger snapshot",
			slog.String("asOf", asOf.Format("2006-01-02")), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to load ledger snapshot: %w", err)
	}
	return snapshot, nil
}

// postedLines keeps only lines of posted entries dated at or before asOf.
// The repository already applies the same bounds; filtering again keeps the
// report a pure function of the snapshot regardless of how it was loaded.
func postedLines(snapshot *domain.LedgerSnapshot) []domain.JournalLine {
	lines := make([]domain.JournalLine, 0, len(snapshot.Lines))
	for _, line := range snapshot.Lines {
		if line.Status != domain.Posted || line.JournalDate.After(snapshot.AsOf) {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

func activeAccounts(snapshot *domain.LedgerSnapshot) []domain.Account {
	accounts := make([]domain.Account, 0, len(snapshot.Accounts))
	for _, acc := range snapshot.Accounts {
		if acc.IsActive {
			accounts = append(accounts, acc)
		}
	}
	return accounts
}

// TrialBalance builds the hierarchical trial balance as of a date.
func (s *reportingService) TrialBalance(ctx context.Context, asOf time.Time) (*domain.TrialBalanceReport, error) {
	snapshot, err := s.loadSnapshot(ctx, asOf)
	if err != nil {
		return nil, err
	}

	lines := postedLines(snapshot)
	balances := accounting.AggregateBalances(lines)
	warnings := accounting.CheckEntryBalances(lines)
	roots, treeWarnings := accounting.BuildAccountTree(activeAccounts(snapshot), balances)
	warnings = append(warnings, treeWarnings...)

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, line := range lines {
		totalDebit = totalDebit.Add(line.ReportingDebit)
		totalCredit = totalCredit.Add(line.ReportingCredit)
	}

	report := &domain.TrialBalanceReport{
		AsOf:        snapshot.AsOf,
		Roots:       roots,
		TotalDebit:  totalDebit,
		TotalCredit: totalCredit,
		Balanced:    totalDebit.Sub(totalCredit).Abs().LessThanOrEqual(accounting.BalanceTolerance),
		Warnings:    warnings,
	}
	if !report.Balanced {
		s.LogWarn(ctx, "Trial balance out of balance",
			slog.String("asOf", asOf.Format("2006-01-02")),
			slog.String("totalDebit", totalDebit.String()),
			slog.String("totalCredit", totalCredit.String()))
	}
	return report, nil
}

// BalanceSheet builds the balance sheet buckets plus the unrealized FX
// overlay, all from one pinned snapshot.
func (s *reportingService) BalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheetReport, error) {
	snapshot, err := s.loadSnapshot(ctx, asOf)
	if err != nil {
		return nil, err
	}

	lines := postedLines(snapshot)
	balances := accounting.AggregateBalances(lines)
	warnings := accounting.CheckEntryBalances(lines)

	report := &domain.BalanceSheetReport{
		AsOf:             snapshot.AsOf,
		Assets:           []domain.AccountAmount{},
		Liabilities:      []domain.AccountAmount{},
		Equity:           []domain.AccountAmount{},
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
		TotalEquity:      decimal.Zero,
		Warnings:         warnings,
	}

	// All active balance sheet accounts are listed, zero balances included.
	for _, acc := range activeAccounts(snapshot) {
		bal := domain.AccountBalance{}
		if b, ok := balances[acc.Code]; ok {
			bal = *b
		}
		net := accounting.NetBalance(acc.AccountType, bal.ReportingDebit, bal.ReportingCredit)
		amount := domain.AccountAmount{AccountCode: acc.Code, Name: acc.Name, NetAmount: net}
		switch acc.AccountType {
		case domain.Asset:
			report.Assets = append(report.Assets, amount)
			report.TotalAssets = report.TotalAssets.Add(net)
		case domain.Liability:
			report.Liabilities = append(report.Liabilities, amount)
			report.TotalLiabilities = report.TotalLiabilities.Add(net)
		case domain.Equity:
			report.Equity = append(report.Equity, amount)
			report.TotalEquity = report.TotalEquity.Add(net)
		}
	}
	sortAmounts(report.Assets)
	sortAmounts(report.Liabilities)
	sortAmounts(report.Equity)

	report.Revaluation = s.engine.Revalue(snapshot)
	return report, nil
}

func sortAmounts(amounts []domain.AccountAmount) {
	sort.Slice(amounts, func(i, j int) bool {
		return amounts[i].AccountCode < amounts[j].AccountCode
	})
}

// ARBreakdown lists unpaid invoices with their payment status as of a date.
func (s *reportingService) ARBreakdown(ctx context.Context, asOf time.Time) (*domain.ARBreakdownReport, error) {
	snapshot, err := s.loadSnapshot(ctx, asOf)
	if err != nil {
		return nil, err
	}

	report := &domain.ARBreakdownReport{
		AsOf:     snapshot.AsOf,
		Invoices: []domain.ARInvoiceRow{},
		Total:    decimal.Zero,
	}
	for _, inv := range snapshot.OpenInvoices {
		remaining := inv.RemainingAmount()
		if !remaining.IsPositive() {
			continue
		}
		row := domain.ARInvoiceRow{
			InvoiceID:       inv.InvoiceID,
			Currency:        inv.Currency,
			TotalAmount:     inv.TotalAmount,
			AllocatedAmount: inv.AllocatedAmount,
			RemainingAmount: remaining,
			DueDate:         inv.DueDate,
			Status:          domain.AROpen,
			DaysOverdue:     0,
		}
		switch {
		case inv.AllocatedAmount.IsPositive():
			row.Status = domain.ARPartiallyPaid
		case inv.DueDate.Before(snapshot.AsOf):
			row.Status = domain.AROverdue
		}
		if inv.DueDate.Before(snapshot.AsOf) {
			// Never negative even if a due date drifts past the as-of date.
			if days := int(snapshot.AsOf.Sub(inv.DueDate).Hours() / 24); days > 0 {
				row.DaysOverdue = days
			}
		}
		report.Invoices = append(report.Invoices, row)
		report.Total = report.Total.Add(remaining)
	}
	sort.Slice(report.Invoices, func(i, j int) bool {
		return report.Invoices[i].InvoiceID < report.Invoices[j].InvoiceID
	})
	return report, nil
}

// RevaluationPreview computes unrealized FX gains and losses without
// touching the ledger.
func (s *reportingService) RevaluationPreview(ctx context.Context, asOf time.Time) (*domain.RevaluationResult, error) {
	snapshot, err := s.loadSnapshot(ctx, asOf)
	if err != nil {
		return nil, err
	}
	result := s.engine.Revalue(snapshot)
	if len(result.MissingCurrencies) > 0 {
		s.LogWarn(ctx, "Revaluation skipped currencies with no active rate",
			slog.String("asOf", asOf.Format("2006-01-02")),
			slog.Any("currencies", result.MissingCurrencies))
	}
	return result, nil
}
