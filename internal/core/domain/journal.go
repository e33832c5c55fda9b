package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	Draft  JournalStatus = "DRAFT"
	Posted JournalStatus = "POSTED"
)

// JournalLine is a single posted line as read from the ledger, joined with
// its owning journal's date and status. Debit and Credit are in the line's
// original transaction currency; ReportingDebit and ReportingCredit are the
// converted amounts in the reporting currency (equal to Debit/Credit when
// the line was booked in the reporting currency already).
type JournalLine struct {
	LineID           string          `json:"lineID"`
	JournalID        string          `json:"journalID"`
	JournalDate      time.Time       `json:"journalDate"`
	Status           JournalStatus   `json:"status"`
	AccountCode      string          `json:"accountCode"`
	Debit            decimal.Decimal `json:"debit"`
	Credit           decimal.Decimal `json:"credit"`
	ReportingDebit   decimal.Decimal `json:"reportingDebit"`
	ReportingCredit  decimal.Decimal `json:"reportingCredit"`
	OriginalCurrency string          `json:"originalCurrency"`
	FxRate           decimal.Decimal `json:"fxRate"`
}
