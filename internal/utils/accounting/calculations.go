package accounting

import (
	"fmt"

	"github.com/rahmannascenia/accountingbolt/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceTolerance is the amount by which debit and credit sums may diverge
// before an entry or a report is considered unbalanced.
var BalanceTolerance = decimal.RequireFromString("0.01")

// AggregateBalances folds journal lines into per-account debit/credit
// totals in both transaction and reporting currency. The fold is a pure,
// order-independent accumulation; zero-balance accounts are retained.
func AggregateBalances(lines []domain.JournalLine) map[string]*domain.AccountBalance {
	balances := make(map[string]*domain.AccountBalance)
	for _, line := range lines {
		bal, ok := balances[line.AccountCode]
		if !ok {
			bal = &domain.AccountBalance{
				Debit:           decimal.Zero,
				Credit:          decimal.Zero,
				ReportingDebit:  decimal.Zero,
				ReportingCredit: decimal.Zero,
			}
			balances[line.AccountCode] = bal
		}
		bal.Debit = bal.Debit.Add(line.Debit)
		bal.Credit = bal.Credit.Add(line.Credit)
		bal.ReportingDebit = bal.ReportingDebit.Add(line.ReportingDebit)
		bal.ReportingCredit = bal.ReportingCredit.Add(line.ReportingCredit)
	}
	return balances
}

// NetBalance applies the sign convention for the account type:
// ASSET/EXPENSE net to debit minus credit, LIABILITY/EQUITY/REVENUE net to
// credit minus debit. The same convention applies whether computing a single
// account or a running ledger balance.
func NetBalance(accountType domain.AccountType, debit, credit decimal.Decimal) decimal.Decimal {
	switch accountType {
	case domain.Asset, domain.Expense:
		return debit.Sub(credit)
	case domain.Liability, domain.Equity, domain.Revenue:
		return credit.Sub(debit)
	default:
		// Unknown types net like assets; the caller validates types upstream.
		return debit.Sub(credit)
	}
}

// CheckEntryBalances groups lines by their owning journal entry and reports
// every entry whose debit and credit sums diverge beyond tolerance, in
// either the transaction or the reporting currency. An unbalanced posted
// entry indicates upstream data corruption; it is reported as a warning
// attached to the entry, never absorbed silently and never an abort.
func CheckEntryBalances(lines []domain.JournalLine) []domain.IntegrityWarning {
	type entrySums struct {
		debit           decimal.Decimal
		credit          decimal.Decimal
		reportingDebit  decimal.Decimal
		reportingCredit decimal.Decimal
	}

	sums := make(map[string]*entrySums)
	order := make([]string, 0)
	for _, line := range lines {
		s, ok := sums[line.JournalID]
		if !ok {
			s = &entrySums{
				debit:           decimal.Zero,
				credit:          decimal.Zero,
				reportingDebit:  decimal.Zero,
				reportingCredit: decimal.Zero,
			}
			sums[line.JournalID] = s
			order = append(order, line.JournalID)
		}
		s.debit = s.debit.Add(line.Debit)
		s.credit = s.credit.Add(line.Credit)
		s.reportingDebit = s.reportingDebit.Add(line.ReportingDebit)
		s.reportingCredit = s.reportingCredit.Add(line.ReportingCredit)
	}

	var warnings []domain.IntegrityWarning
	for _, journalID := range order {
		s := sums[journalID]
		if diff := s.debit.Sub(s.credit).Abs(); diff.GreaterThan(BalanceTolerance) {
			warnings = append(warnings, domain.IntegrityWarning{
				Code:     domain.WarnUnbalancedEntry,
				EntityID: journalID,
				Message:  fmt.Sprintf("entry debits %s and credits %s diverge by %s", s.debit, s.credit, diff),
			})
			continue
		}
		if diff := s.reportingDebit.Sub(s.reportingCredit).Abs(); diff.GreaterThan(BalanceTolerance) {
			warnings = append(warnings, domain.IntegrityWarning{
				Code:     domain.WarnUnbalancedEntry,
				EntityID: journalID,
				Message:  fmt.Sprintf("entry reporting debits %s and credits %s diverge by %s", s.reportingDebit, s.reportingCredit, diff),
			})
		}
	}
	return warnings
}
