package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/rahmannascenia/accountingbolt/internal/core/domain"
	portssvc "github.com/rahmannascenia/accountingbolt/internal/core/ports/services"
	"github.com/rahmannascenia/accountingbolt/internal/core/services"
)

// --- Mock LedgerReadRepository ---
type MockLedgerReadRepository struct {
	mock.Mock
}

func (m *MockLedgerReadRepository) LoadSnapshot(ctx context.Context, asOf time.Time) (*domain.LedgerSnapshot, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerSnapshot), args.Error(1)
}

// --- Test Suite ---
type ReportingServiceTestSuite struct {
	suite.Suite
	mockLedger *MockLedgerReadRepository
	service    portssvc.ReportingSvcFacade
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockLedger = new(MockLedgerReadRepository)
	engine := services.NewRevaluationEngine(services.RevaluationConfig{
		ReportingCurrency: "BDT",
		GainAccountCode:   "4900",
		GainAccountName:   "Unrealized FX Gain",
		LossAccountCode:   "5900",
		LossAccountName:   "Unrealized FX Loss",
	})
	suite.service = services.NewReportingService(suite.mockLedger, engine)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func strPtr(s string) *string { return &s }

var asOf = time.Date(2026, 3, 31, 23, 59, 59, 0, time.UTC)

func postedLine(journalID, accountCode, debit, credit string, date time.Time) domain.JournalLine {
	return domain.JournalLine{
		JournalID:        journalID,
		JournalDate:      date,
		Status:           domain.Posted,
		AccountCode:      accountCode,
		Debit:            dec(debit),
		Credit:           dec(credit),
		ReportingDebit:   dec(debit),
		ReportingCredit:  dec(credit),
		OriginalCurrency: "BDT",
		FxRate:           decimal.NewFromInt(1),
	}
}

func activeAccount(code, name string, accountType domain.AccountType, parent *string) domain.Account {
	return domain.Account{Code: code, Name: name, AccountType: accountType, ParentCode: parent, IsActive: true}
}

func baseSnapshot() *domain.LedgerSnapshot {
	march := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	return &domain.LedgerSnapshot{
		AsOf: asOf,
		Accounts: []domain.Account{
			activeAccount("1000", "Assets", domain.Asset, nil),
			activeAccount("1010", "Cash", domain.Asset, strPtr("1000")),
			activeAccount("1100", "Accounts Receivable", domain.Asset, strPtr("1000")),
			activeAccount("2000", "Liabilities", domain.Liability, nil),
			activeAccount("3000", "Equity", domain.Equity, nil),
			activeAccount("4010", "Service Revenue", domain.Revenue, nil),
		},
		Lines: []domain.JournalLine{
			postedLine("j1", "1010", "1000", "0", march),
			postedLine("j1", "4010", "0", "1000", march),
			postedLine("j2", "1100", "550", "0", march),
			postedLine("j2", "4010", "0", "550", march),
		},
	}
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_BalancedWithHierarchy() {
	ctx := context.Background()
	suite.mockLedger.On("LoadSnapshot", ctx, asOf).Return(baseSnapshot(), nil).Once()

	report, err := suite.service.TrialBalance(ctx, asOf)

	suite.Require().NoError(err)
	suite.True(report.Balanced)
	suite.True(report.TotalDebit.Equal(dec("1550")))
	suite.True(report.TotalCredit.Equal(dec("1550")))
	suite.Empty(report.Warnings)

	// 1010 and 1100 hang under 1000; the other accounts are roots.
	suite.Require().Len(report.Roots, 4)
	suite.Equal("1000", report.Roots[0].Account.Code)
	suite.Require().Len(report.Roots[0].Children, 2)
	suite.Equal("1010", report.Roots[0].Children[0].Account.Code)
	suite.Equal("1100", report.Roots[0].Children[1].Account.Code)
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_IgnoresDraftAndFutureLines() {
	ctx := context.Background()
	snapshot := baseSnapshot()
	draft := postedLine("j3", "1010", "999", "0", time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC))
	draft.Status = domain.Draft
	future := postedLine("j4", "1010", "888", "0", time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC))
	snapshot.Lines = append(snapshot.Lines, draft, future)
	suite.mockLedger.On("LoadSnapshot", ctx, asOf).Return(snapshot, nil).Once()

	report, err := suite.service.TrialBalance(ctx, asOf)

	suite.Require().NoError(err)
	suite.True(report.TotalDebit.Equal(dec("1550")))
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_UnbalancedEntryWarns() {
	ctx := context.Background()
	snapshot := baseSnapshot()
	snapshot.Lines = append(snapshot.Lines,
		postedLine("j9", "1010", "100", "0", time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)),
		postedLine("j9", "4010", "0", "90", time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)),
	)
	suite.mockLedger.On("LoadSnapshot", ctx, asOf).Return(snapshot, nil).Once()

	report, err := suite.service.TrialBalance(ctx, asOf)

	suite.Require().NoError(err)
	suite.False(report.Balanced)
	suite.Require().Len(report.Warnings, 1)
	suite.Equal(domain.WarnUnbalancedEntry, report.Warnings[0].Code)
	suite.Equal("j9", report.Warnings[0].EntityID)
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_Idempotent() {
	ctx := context.Background()
	suite.mockLedger.On("LoadSnapshot", ctx, asOf).Return(baseSnapshot(), nil).Twice()

	first, err := suite.service.TrialBalance(ctx, asOf)
	suite.Require().NoError(err)
	second, err := suite.service.TrialBalance(ctx, asOf)
	suite.Require().NoError(err)

	suite.Equal(first, second)
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_BucketsAndRevaluationOverlay() {
	ctx := context.Background()
	snapshot := baseSnapshot()
	suite.mockLedger.On("LoadSnapshot", ctx, asOf).Return(snapshot, nil).Once()

	report, err := suite.service.BalanceSheet(ctx, asOf)

	suite.Require().NoError(err)
	// Every active asset account is listed, zero balances included.
	suite.Require().Len(report.Assets, 3)
	suite.Equal("1000", report.Assets[0].AccountCode)
	suite.True(report.Assets[0].NetAmount.IsZero())
	suite.True(report.Assets[1].NetAmount.Equal(dec("1000")))
	suite.True(report.Assets[2].NetAmount.Equal(dec("550")))
	suite.True(report.TotalAssets.Equal(dec("1550")))
	suite.Require().Len(report.Liabilities, 1)
	suite.Require().Len(report.Equity, 1)
	suite.Require().NotNil(report.Revaluation)
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestARBreakdown_StatusAndOverdueClamp() {
	ctx := context.Background()
	snapshot := baseSnapshot()
	snapshot.OpenInvoices = []domain.OpenInvoice{
		{
			InvoiceID: "inv-open", AccountCode: "1100", AccountName: "Accounts Receivable",
			Currency: "USD", TotalAmount: dec("500"), AllocatedAmount: dec("0"),
			HistoricalRate: dec("110"), DueDate: time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			InvoiceID: "inv-partial", AccountCode: "1100", AccountName: "Accounts Receivable",
			Currency: "USD", TotalAmount: dec("500"), AllocatedAmount: dec("200"),
			HistoricalRate: dec("110"), DueDate: time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			InvoiceID: "inv-overdue", AccountCode: "1100", AccountName: "Accounts Receivable",
			Currency: "USD", TotalAmount: dec("300"), AllocatedAmount: dec("0"),
			HistoricalRate: dec("110"), DueDate: time.Date(2026, 3, 21, 0, 0, 0, 0, time.UTC),
		},
		{
			InvoiceID: "inv-partial-overdue", AccountCode: "1100", AccountName: "Accounts Receivable",
			Currency: "USD", TotalAmount: dec("400"), AllocatedAmount: dec("100"),
			HistoricalRate: dec("110"), DueDate: time.Date(2026, 3, 26, 0, 0, 0, 0, time.UTC),
		},
		{
			InvoiceID: "inv-paid", AccountCode: "1100", AccountName: "Accounts Receivable",
			Currency: "USD", TotalAmount: dec("100"), AllocatedAmount: dec("100"),
			HistoricalRate: dec("110"), DueDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		},
	}
	suite.mockLedger.On("LoadSnapshot", ctx, asOf).Return(snapshot, nil).Once()

	report, err := suite.service.ARBreakdown(ctx, asOf)

	suite.Require().NoError(err)
	suite.Require().Len(report.Invoices, 4)

	byID := map[string]domain.ARInvoiceRow{}
	for _, row := range report.Invoices {
		byID[row.InvoiceID] = row
	}
	suite.Equal(domain.AROpen, byID["inv-open"].Status)
	suite.Equal(0, byID["inv-open"].DaysOverdue)
	suite.Equal(domain.ARPartiallyPaid, byID["inv-partial"].Status)
	suite.True(byID["inv-partial"].RemainingAmount.Equal(dec("300")))
	suite.Equal(domain.AROverdue, byID["inv-overdue"].Status)
	suite.Equal(10, byID["inv-overdue"].DaysOverdue)
	// Partial payment wins over lateness for the status, but the invoice
	// still reports how late it is.
	suite.Equal(domain.ARPartiallyPaid, byID["inv-partial-overdue"].Status)
	suite.Equal(5, byID["inv-partial-overdue"].DaysOverdue)
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestRevaluationPreview_GainAndLossPositions() {
	ctx := context.Background()
	snapshot := baseSnapshot()
	snapshot.OpenInvoices = []domain.OpenInvoice{
		{
			InvoiceID: "inv-gain", AccountCode: "1100", AccountName: "Accounts Receivable",
			Currency: "USD", TotalAmount: dec("100"), AllocatedAmount: dec("0"),
			HistoricalRate: dec("110"), DueDate: asOf,
		},
		{
			InvoiceID: "inv-loss", AccountCode: "1100", AccountName: "Accounts Receivable",
			Currency: "EUR", TotalAmount: dec("200"), AllocatedAmount: dec("50"),
			HistoricalRate: dec("120"), DueDate: asOf,
		},
	}
	snapshot.Rates = []domain.ExchangeRate{
		{FromCurrencyCode: "USD", ToCurrencyCode: "BDT", Rate: dec("112"), DateEffective: asOf.AddDate(0, 0, -5), IsActive: true},
		{FromCurrencyCode: "EUR", ToCurrencyCode: "BDT", Rate: dec("118"), DateEffective: asOf.AddDate(0, 0, -5), IsActive: true},
	}
	suite.mockLedger.On("LoadSnapshot", ctx, asOf).Return(snapshot, nil).Once()

	result, err := suite.service.RevaluationPreview(ctx, asOf)

	suite.Require().NoError(err)
	suite.Require().Len(result.Positions, 2)

	// 100 USD * (112 - 110) = 200 gain; 150 EUR * (118 - 120) = -300 loss.
	suite.True(result.TotalGain.Equal(dec("200")))
	suite.True(result.TotalLoss.Equal(dec("300")))
	suite.Empty(result.MissingCurrencies)

	// Virtual journal: one pair of lines per position, balanced overall.
	suite.Require().Len(result.VirtualJournal, 4)
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, line := range result.VirtualJournal {
		totalDebit = totalDebit.Add(line.Debit)
		totalCredit = totalCredit.Add(line.Credit)
	}
	suite.True(totalDebit.Equal(totalCredit))
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestRevaluationPreview_GainsShareOneOffsettingLine() {
	ctx := context.Background()
	snapshot := baseSnapshot()
	snapshot.OpenInvoices = []domain.OpenInvoice{
		{
			InvoiceID: "inv-a", AccountCode: "1100", AccountName: "Accounts Receivable",
			Currency: "USD", TotalAmount: dec("100"), AllocatedAmount: dec("0"),
			HistoricalRate: dec("110"), DueDate: asOf,
		},
		{
			InvoiceID: "inv-b", AccountCode: "1100", AccountName: "Accounts Receivable",
			Currency: "USD", TotalAmount: dec("50"), AllocatedAmount: dec("0"),
			HistoricalRate: dec("110"), DueDate: asOf,
		},
	}
	snapshot.Rates = []domain.ExchangeRate{
		{FromCurrencyCode: "USD", ToCurrencyCode: "BDT", Rate: dec("112"), DateEffective: asOf.AddDate(0, 0, -5), IsActive: true},
	}
	suite.mockLedger.On("LoadSnapshot", ctx, asOf).Return(snapshot, nil).Once()

	result, err := suite.service.RevaluationPreview(ctx, asOf)

	suite.Require().NoError(err)
	// Two position debits plus a single offsetting credit on the gain account.
	suite.Require().Len(result.VirtualJournal, 3)
	last := result.VirtualJournal[2]
	suite.Equal("4900", last.AccountCode)
	suite.True(last.Credit.Equal(dec("300")))
	suite.True(result.TotalGain.Equal(dec("300")))
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestRevaluationPreview_MissingRateIsNonFatal() {
	ctx := context.Background()
	snapshot := baseSnapshot()
	snapshot.OpenInvoices = []domain.OpenInvoice{
		{
			InvoiceID: "inv-norate", AccountCode: "1100", AccountName: "Accounts Receivable",
			Currency: "JPY", TotalAmount: dec("5000"), AllocatedAmount: dec("0"),
			HistoricalRate: dec("0.75"), DueDate: asOf,
		},
	}
	suite.mockLedger.On("LoadSnapshot", ctx, asOf).Return(snapshot, nil).Once()

	result, err := suite.service.RevaluationPreview(ctx, asOf)

	suite.Require().NoError(err)
	suite.Require().Len(result.Positions, 1)
	suite.False(result.Positions[0].HasCurrentRate())
	suite.True(result.Positions[0].GainLoss.IsZero())
	suite.Equal([]string{"JPY"}, result.MissingCurrencies)
	suite.Empty(result.VirtualJournal)
	suite.True(result.TotalGain.IsZero())
	suite.True(result.TotalLoss.IsZero())
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestRevaluationPreview_BankBalanceApproximatedBasis() {
	ctx := context.Background()
	snapshot := baseSnapshot()
	snapshot.BankBalances = []domain.ForeignBankBalance{
		{BankAccountID: "bank-1", AccountCode: "1010", AccountName: "Cash", Currency: "USD", Balance: dec("750")},
	}
	snapshot.Rates = []domain.ExchangeRate{
		{FromCurrencyCode: "USD", ToCurrencyCode: "BDT", Rate: dec("112"), DateEffective: asOf.AddDate(0, 0, -5), IsActive: true},
	}
	suite.mockLedger.On("LoadSnapshot", ctx, asOf).Return(snapshot, nil).Once()

	result, err := suite.service.RevaluationPreview(ctx, asOf)

	suite.Require().NoError(err)
	suite.Require().Len(result.Positions, 1)
	pos := result.Positions[0]
	suite.Equal(domain.PositionSourceBankAccount, pos.SourceType)
	suite.Equal(domain.RateBasisApproximated, pos.RateBasis)
	// With the current rate standing in for the historical one the
	// gain/loss is zero, but the position stays visible.
	suite.True(pos.GainLoss.IsZero())
	suite.True(pos.HistoricalRate.Equal(dec("112")))
	suite.Empty(result.VirtualJournal)
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestRevaluationPreview_ReportingCurrencyExcluded() {
	ctx := context.Background()
	snapshot := baseSnapshot()
	snapshot.OpenInvoices = []domain.OpenInvoice{
		{
			InvoiceID: "inv-local", AccountCode: "1100", AccountName: "Accounts Receivable",
			Currency: "BDT", TotalAmount: dec("100"), AllocatedAmount: dec("0"),
			HistoricalRate: dec("1"), DueDate: asOf,
		},
	}
	suite.mockLedger.On("LoadSnapshot", ctx, asOf).Return(snapshot, nil).Once()

	result, err := suite.service.RevaluationPreview(ctx, asOf)

	suite.Require().NoError(err)
	suite.Empty(result.Positions)
	suite.mockLedger.AssertExpectations(suite.T())
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
