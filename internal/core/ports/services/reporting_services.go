package services

import (
	"context"
	"time"

	"github.com/rahmannascenia/accountingbolt/internal/core/domain"
)

// ReportingSvcFacade builds the report views. Every method is a pure
// function of (asOf, one pinned ledger snapshot): invoking it twice with
// identical underlying data yields identical output.
type ReportingSvcFacade interface {
	TrialBalance(ctx context.Context, asOf time.Time) (*domain.TrialBalanceReport, error)
	BalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheetReport, error)
	ARBreakdown(ctx context.Context, asOf time.Time) (*domain.ARBreakdownReport, error)
	RevaluationPreview(ctx context.Context, asOf time.Time) (*domain.RevaluationResult, error)
}
