package pgsql

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rahmannascenia/accountingbolt/internal/core/domain"
	portsrepo "github.com/rahmannascenia/accountingbolt/internal/core/ports/repositories"
)

type ledgerRepository struct {
	BaseRepository
}

var _ portsrepo.LedgerReadRepository = (*ledgerRepository)(nil)

// NewLedgerRepository creates a new PostgreSQL ledger read repository.
func NewLedgerRepository(pool *pgxpool.Pool) *ledgerRepository {
	return &ledgerRepository{BaseRepository: newBaseRepository(pool)}
}

// LoadSnapshot reads every input a report needs inside one repeatable-read,
// read-only transaction. All sub-queries observe the same database snapshot,
// so a report computed from the result cannot see a torn view.
func (r *ledgerRepository) LoadSnapshot(ctx context.Context, asOf time.Time) (*domain.LedgerSnapshot, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to begin snapshot transaction: %w", err)
	}
	defer func() {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && rollbackErr != pgx.ErrTxClosed {
			r.logger(ctx).Error("Failed to roll back snapshot transaction", slog.String("error", rollbackErr.Error()))
		}
	}()

	snapshot := &domain.LedgerSnapshot{AsOf: asOf}

	if snapshot.Lines, err = r.loadPostedLines(ctx, tx, asOf); err != nil {
		return nil, err
	}
	if snapshot.Accounts, err = r.loadAccounts(ctx, tx); err != nil {
		return nil, err
	}
	if snapshot.Rates, err = r.loadRates(ctx, tx, asOf); err != nil {
		return nil, err
	}
	if snapshot.OpenInvoices, err = r.loadOpenInvoices(ctx, tx, asOf); err != nil {
		return nil, err
	}
	if snapshot.BankBalances, err = r.loadBankBalances(ctx, tx, asOf); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit snapshot transaction: %w", err)
	}
	return snapshot, nil
}

func (r *ledgerRepository) loadPostedLines(ctx context.Context, tx pgx.Tx, asOf time.Time) ([]domain.JournalLine, error) {
	query := `
		SELECT l.line_id, l.journal_id, j.journal_date, j.status, l.account_code,
		       l.debit, l.credit, l.reporting_debit, l.reporting_credit,
		       l.original_currency, l.fx_rate
		FROM journal_lines l
		JOIN journals j ON j.journal_id = l.journal_id
		WHERE j.status = 'POSTED' AND j.journal_date <= $1
		ORDER BY j.journal_date, l.journal_id, l.line_id`

	rows, err := tx.Query(ctx, query, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal lines: %w", err)
	}
	defer rows.Close()

	var lines []domain.JournalLine
	for rows.Next() {
		var line domain.JournalLine
		if err := rows.Scan(
			&line.LineID, &line.JournalID, &line.JournalDate, &line.Status, &line.AccountCode,
			&line.Debit, &line.Credit, &line.ReportingDebit, &line.ReportingCredit,
			&line.OriginalCurrency, &line.FxRate,
		); err != nil {
			return nil, fmt.Errorf("failed to scan journal line: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read journal lines: %w", err)
	}
	return lines, nil
}

func (r *ledgerRepository) loadAccounts(ctx context.Context, tx pgx.Tx) ([]domain.Account, error) {
	query := `
		SELECT code, name, account_type, parent_code, level, is_active,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM accounts
		ORDER BY code`

	rows, err := tx.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		var acc domain.Account
		if err := rows.Scan(
			&acc.Code, &acc.Name, &acc.AccountType, &acc.ParentCode, &acc.Level, &acc.IsActive,
			&acc.CreatedAt, &acc.CreatedBy, &acc.LastUpdatedAt, &acc.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, acc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read accounts: %w", err)
	}
	return accounts, nil
}

func (r *ledgerRepository) loadRates(ctx context.Context, tx pgx.Tx, asOf time.Time) ([]domain.ExchangeRate, error) {
	query := `
		SELECT ` + exchangeRateColumns + `
		FROM exchange_rates
		WHERE date_effective <= $1
		ORDER BY created_at`

	rows, err := tx.Query(ctx, query, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to query exchange rates: %w", err)
	}
	defer rows.Close()

	var rates []domain.ExchangeRate
	for rows.Next() {
		rate, err := scanExchangeRate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan exchange rate: %w", err)
		}
		rates = append(rates, *rate)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read exchange rates: %w", err)
	}
	return rates, nil
}

func (r *ledgerRepository) loadOpenInvoices(ctx context.Context, tx pgx.Tx, asOf time.Time) ([]domain.OpenInvoice, error) {
	// Allocations dated after the as-of date are excluded so a later payment
	// cannot shrink a historical report.
	query := `
		SELECT i.invoice_id, i.account_code, a.name, i.currency, i.total_amount,
		       COALESCE(SUM(pa.amount) FILTER (WHERE pa.allocation_date <= $1), 0) AS allocated_amount,
		       i.historical_rate, i.due_date
		FROM invoices i
		JOIN accounts a ON a.code = i.account_code
		LEFT JOIN invoice_allocations pa ON pa.invoice_id = i.invoice_id
		WHERE i.invoice_date <= $1
		GROUP BY i.invoice_id, i.account_code, a.name, i.currency, i.total_amount, i.historical_rate, i.due_date
		ORDER BY i.invoice_id`

	rows, err := tx.Query(ctx, query, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to query open invoices: %w", err)
	}
	defer rows.Close()

	var invoices []domain.OpenInvoice
	for rows.Next() {
		var inv domain.OpenInvoice
		if err := rows.Scan(
			&inv.InvoiceID, &inv.AccountCode, &inv.AccountName, &inv.Currency, &inv.TotalAmount,
			&inv.AllocatedAmount, &inv.HistoricalRate, &inv.DueDate,
		); err != nil {
			return nil, fmt.Errorf("failed to scan open invoice: %w", err)
		}
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read open invoices: %w", err)
	}
	return invoices, nil
}

func (r *ledgerRepository) loadBankBalances(ctx context.Context, tx pgx.Tx, asOf time.Time) ([]domain.ForeignBankBalance, error) {
	// The balance is derived from posted lines against the bank's ledger
	// account so it respects the as-of bound, not from a stored running total.
	query := `
		SELECT b.bank_account_id, b.account_code, a.name, b.currency,
		       COALESCE(SUM(l.debit - l.credit) FILTER (WHERE j.status = 'POSTED' AND j.journal_date <= $1), 0) AS balance
		FROM bank_accounts b
		JOIN accounts a ON a.code = b.account_code
		LEFT JOIN journal_lines l ON l.account_code = b.account_code
		LEFT JOIN journals j ON j.journal_id = l.journal_id
		GROUP BY b.bank_account_id, b.account_code, a.name, b.currency
		ORDER BY b.bank_account_id`

	rows, err := tx.Query(ctx, query, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to query bank balances: %w", err)
	}
	defer rows.Close()

	var balances []domain.ForeignBankBalance
	for rows.Next() {
		var bal domain.ForeignBankBalance
		if err := rows.Scan(&bal.BankAccountID, &bal.AccountCode, &bal.AccountName, &bal.Currency, &bal.Balance); err != nil {
			return nil, fmt.Errorf("failed to scan bank balance: %w", err)
		}
		balances = append(balances, bal)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read bank balances: %w", err)
	}
	return balances, nil
}
