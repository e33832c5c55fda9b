package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Integrity warning codes. Warnings report recoverable data problems found
// while building a report; they never abort report generation.
const (
	WarnUnbalancedEntry = "UNBALANCED_ENTRY"
	WarnOrphanAccount   = "ORPHAN_ACCOUNT"
	WarnCyclicParent    = "CYCLIC_PARENT"
)

// IntegrityWarning flags a data-integrity problem attached to a specific
// entity (a journal entry, an account).
type IntegrityWarning struct {
	Code     string `json:"code"`
	EntityID string `json:"entityID"`
	Message  string `json:"message"`
}

// AccountBalance holds the aggregated debit/credit totals of one account,
// in both transaction and reporting currency. Zero balances are retained;
// filtering is a presentation concern.
type AccountBalance struct {
	Debit           decimal.Decimal `json:"debit"`
	Credit          decimal.Decimal `json:"credit"`
	ReportingDebit  decimal.Decimal `json:"reportingDebit"`
	ReportingCredit decimal.Decimal `json:"reportingCredit"`
}

// AccountNode is one node of the account hierarchy with its own balance
// attached. Children are not rolled into parents automatically; report
// builders decide whether to display leaf-only or rolled-up totals.
type AccountNode struct {
	Account  Account        `json:"account"`
	Balance  AccountBalance `json:"balance"`
	Children []*AccountNode `json:"children"`
}

// TrialBalanceReport is the hierarchical trial balance for one as-of date.
type TrialBalanceReport struct {
	AsOf        time.Time          `json:"asOf"`
	Roots       []*AccountNode     `json:"roots"`
	TotalDebit  decimal.Decimal    `json:"totalDebit"`
	TotalCredit decimal.Decimal    `json:"totalCredit"`
	Balanced    bool               `json:"balanced"`
	Warnings    []IntegrityWarning `json:"warnings"`
}

// AccountAmount represents an account with its net amount for report buckets.
type AccountAmount struct {
	AccountCode string          `json:"accountCode"`
	Name        string          `json:"name"`
	NetAmount   decimal.Decimal `json:"netAmount"`
}

// BalanceSheetReport holds the three balance sheet buckets plus the
// unrealized FX overlay.
type BalanceSheetReport struct {
	AsOf             time.Time          `json:"asOf"`
	Assets           []AccountAmount    `json:"assets"`
	Liabilities      []AccountAmount    `json:"liabilities"`
	Equity           []AccountAmount    `json:"equity"`
	TotalAssets      decimal.Decimal    `json:"totalAssets"`
	TotalLiabilities decimal.Decimal    `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal    `json:"totalEquity"`
	Revaluation      *RevaluationResult `json:"revaluation"`
	Warnings         []IntegrityWarning `json:"warnings"`
}

// ARInvoiceStatus classifies an unpaid invoice in the AR breakdown.
type ARInvoiceStatus string

const (
	AROpen          ARInvoiceStatus = "OPEN"
	AROverdue       ARInvoiceStatus = "OVERDUE"
	ARPartiallyPaid ARInvoiceStatus = "PARTIALLY_PAID"
)

// ARInvoiceRow is one unpaid invoice in the accounts-receivable breakdown.
type ARInvoiceRow struct {
	InvoiceID       string          `json:"invoiceID"`
	Currency        string          `json:"currency"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	AllocatedAmount decimal.Decimal `json:"allocatedAmount"`
	RemainingAmount decimal.Decimal `json:"remainingAmount"`
	DueDate         time.Time       `json:"dueDate"`
	Status          ARInvoiceStatus `json:"status"`
	DaysOverdue     int             `json:"daysOverdue"` // never negative
}

// ARBreakdownReport lists open receivables as of a date.
type ARBreakdownReport struct {
	AsOf     time.Time       `json:"asOf"`
	Invoices []ARInvoiceRow  `json:"invoices"`
	Total    decimal.Decimal `json:"total"` // sum of remaining amounts in reporting currency terms is a UI concern; this is per original currency mix
}

// OpenInvoice is the open portion of a foreign-customer invoice as read
// from the ledger collaborator. AllocatedAmount is the sum of payment
// allocations recorded against the invoice up to the as-of date.
type OpenInvoice struct {
	InvoiceID       string          `json:"invoiceID"`
	AccountCode     string          `json:"accountCode"` // AR control account the invoice posts to
	AccountName     string          `json:"accountName"`
	Currency        string          `json:"currency"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	AllocatedAmount decimal.Decimal `json:"allocatedAmount"`
	HistoricalRate  decimal.Decimal `json:"historicalRate"` // booking-date rate
	DueDate         time.Time       `json:"dueDate"`
}

// RemainingAmount is the unpaid original-currency portion of the invoice.
func (i OpenInvoice) RemainingAmount() decimal.Decimal {
	return i.TotalAmount.Sub(i.AllocatedAmount)
}

// ForeignBankBalance is a non-reporting-currency cash balance.
type ForeignBankBalance struct {
	BankAccountID string          `json:"bankAccountID"`
	AccountCode   string          `json:"accountCode"`
	AccountName   string          `json:"accountName"`
	Currency      string          `json:"currency"`
	Balance       decimal.Decimal `json:"balance"`
}

// LedgerSnapshot is the pinned, time-bounded view of the ledger that every
// report computation runs against. All of it is read in a single repository
// transaction so the sub-queries cannot observe a torn view; a report is a
// pure function of (AsOf, snapshot).
type LedgerSnapshot struct {
	AsOf         time.Time            `json:"asOf"`
	Lines        []JournalLine        `json:"lines"`
	Accounts     []Account            `json:"accounts"`
	Rates        []ExchangeRate       `json:"rates"`
	OpenInvoices []OpenInvoice        `json:"openInvoices"`
	BankBalances []ForeignBankBalance `json:"bankBalances"`
}
