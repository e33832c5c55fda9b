package dto

import (
	"github.com/rahmannascenia/accountingbolt/internal/core/domain"
	"github.com/rahmannascenia/accountingbolt/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// WarningResponse is the API shape of a data-integrity warning.
type WarningResponse struct {
	Code     string `json:"code"`
	EntityID string `json:"entityID"`
	Message  string `json:"message"`
}

// AccountNodeResponse is one node of the trial balance tree. Debit, Credit
// and Net are the account's own reporting-currency figures; RolledUpNet
// additionally folds in all descendants.
type AccountNodeResponse struct {
	Code        string                `json:"code"`
	Name        string                `json:"name"`
	AccountType string                `json:"accountType"`
	Debit       decimal.Decimal       `json:"debit"`
	Credit      decimal.Decimal       `json:"credit"`
	Net         decimal.Decimal       `json:"net"`
	RolledUpNet decimal.Decimal       `json:"rolledUpNet"`
	Children    []AccountNodeResponse `json:"children"`
}

// TrialBalanceResponse is the hierarchical trial balance report.
type TrialBalanceResponse struct {
	AsOf   string                `json:"asOf"`
	Rows   []AccountNodeResponse `json:"rows"`
	Totals struct {
		Debit  decimal.Decimal `json:"debit"`
		Credit decimal.Decimal `json:"credit"`
	} `json:"totals"`
	Balanced bool              `json:"balanced"`
	Warnings []WarningResponse `json:"warnings"`
}

// AccountAmountResponse represents an account with its net amount in a
// balance sheet bucket.
type AccountAmountResponse struct {
	AccountCode string          `json:"accountCode"`
	Name        string          `json:"name"`
	Amount      decimal.Decimal `json:"amount"`
}

// BalanceSheetResponse is the balance sheet with the unrealized FX overlay.
type BalanceSheetResponse struct {
	AsOf        string                  `json:"asOf"`
	Assets      []AccountAmountResponse `json:"assets"`
	Liabilities []AccountAmountResponse `json:"liabilities"`
	Equity      []AccountAmountResponse `json:"equity"`
	Summary     struct {
		TotalAssets      decimal.Decimal `json:"totalAssets"`
		TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
		TotalEquity      decimal.Decimal `json:"totalEquity"`
	} `json:"summary"`
	Revaluation *RevaluationPreviewResponse `json:"revaluation,omitempty"`
	Warnings    []WarningResponse           `json:"warnings"`
}

// ARInvoiceRowResponse is one unpaid invoice in the AR breakdown.
type ARInvoiceRowResponse struct {
	InvoiceID       string          `json:"invoiceID"`
	Currency        string          `json:"currency"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	AllocatedAmount decimal.Decimal `json:"allocatedAmount"`
	RemainingAmount decimal.Decimal `json:"remainingAmount"`
	DueDate         string          `json:"dueDate"`
	Status          string          `json:"status"`
	DaysOverdue     int             `json:"daysOverdue"`
}

// ARBreakdownResponse lists open receivables as of a date.
type ARBreakdownResponse struct {
	AsOf     string                 `json:"asOf"`
	Invoices []ARInvoiceRowResponse `json:"invoices"`
}

func toWarningResponses(warnings []domain.IntegrityWarning) []WarningResponse {
	out := make([]WarningResponse, len(warnings))
	for i, w := range warnings {
		out[i] = WarningResponse{Code: w.Code, EntityID: w.EntityID, Message: w.Message}
	}
	return out
}

func toAccountNodeResponse(node *domain.AccountNode) AccountNodeResponse {
	rolledUp := accounting.RollUpBalance(node)
	resp := AccountNodeResponse{
		Code:        node.Account.Code,
		Name:        node.Account.Name,
		AccountType: string(node.Account.AccountType),
		Debit:       node.Balance.ReportingDebit,
		Credit:      node.Balance.ReportingCredit,
		Net:         accounting.NetBalance(node.Account.AccountType, node.Balance.ReportingDebit, node.Balance.ReportingCredit),
		RolledUpNet: accounting.NetBalance(node.Account.AccountType, rolledUp.ReportingDebit, rolledUp.ReportingCredit),
		Children:    make([]AccountNodeResponse, len(node.Children)),
	}
	for i, child := range node.Children {
		resp.Children[i] = toAccountNodeResponse(child)
	}
	return resp
}

// ToTrialBalanceResponse converts a domain trial balance report.
func ToTrialBalanceResponse(report *domain.TrialBalanceReport) TrialBalanceResponse {
	resp := TrialBalanceResponse{
		AsOf:     report.AsOf.Format("2006-01-02"),
		Rows:     make([]AccountNodeResponse, len(report.Roots)),
		Balanced: report.Balanced,
		Warnings: toWarningResponses(report.Warnings),
	}
	for i, root := range report.Roots {
		resp.Rows[i] = toAccountNodeResponse(root)
	}
	resp.Totals.Debit = report.TotalDebit
	resp.Totals.Credit = report.TotalCredit
	return resp
}

func toAccountAmountResponses(amounts []domain.AccountAmount) []AccountAmountResponse {
	out := make([]AccountAmountResponse, len(amounts))
	for i, a := range amounts {
		out[i] = AccountAmountResponse{AccountCode: a.AccountCode, Name: a.Name, Amount: a.NetAmount}
	}
	return out
}

// ToBalanceSheetResponse converts a domain balance sheet report.
func ToBalanceSheetResponse(report *domain.BalanceSheetReport) BalanceSheetResponse {
	resp := BalanceSheetResponse{
		AsOf:        report.AsOf.Format("2006-01-02"),
		Assets:      toAccountAmountResponses(report.Assets),
		Liabilities: toAccountAmountResponses(report.Liabilities),
		Equity:      toAccountAmountResponses(report.Equity),
		Warnings:    toWarningResponses(report.Warnings),
	}
	resp.Summary.TotalAssets = report.TotalAssets
	resp.Summary.TotalLiabilities = report.TotalLiabilities
	resp.Summary.TotalEquity = report.TotalEquity
	if report.Revaluation != nil {
		preview := ToRevaluationPreviewResponse(report.Revaluation)
		resp.Revaluation = &preview
	}
	return resp
}

// ToARBreakdownResponse converts a domain AR breakdown report.
func ToARBreakdownResponse(report *domain.ARBreakdownReport) ARBreakdownResponse {
	resp := ARBreakdownResponse{
		AsOf:     report.AsOf.Format("2006-01-02"),
		Invoices: make([]ARInvoiceRowResponse, len(report.Invoices)),
	}
	for i, inv := range report.Invoices {
		resp.Invoices[i] = ARInvoiceRowResponse{
			InvoiceID:       inv.InvoiceID,
			Currency:        inv.Currency,
			TotalAmount:     inv.TotalAmount,
			AllocatedAmount: inv.AllocatedAmount,
			RemainingAmount: inv.RemainingAmount,
			DueDate:         inv.DueDate.Format("2006-01-02"),
			Status:          string(inv.Status),
			DaysOverdue:     inv.DaysOverdue,
		}
	}
	return resp
}
