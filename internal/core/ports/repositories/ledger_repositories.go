package repositories

import (
	"context"
	"time"

	"github.com/rahmannascenia/accountingbolt/internal/core/domain"
)

// LedgerReadRepository is the read-only view of the ledger collaborator.
// LoadSnapshot must issue every sub-query (posted lines, accounts, rates,
// open invoices, bank balances) against one pinned read point so a report
// computation never observes a torn view.
type LedgerReadRepository interface {
	LoadSnapshot(ctx context.Context, asOf time.Time) (*domain.LedgerSnapshot, error)
}
