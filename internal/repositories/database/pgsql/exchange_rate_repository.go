package pgsql

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rahmannascenia/accountingbolt/internal/apperrors"
	"github.com/rahmannascenia/accountingbolt/internal/core/domain"
	portsrepo "github.com/rahmannascenia/accountingbolt/internal/core/ports/repositories"
)

type exchangeRateRepository struct {
	BaseRepository
}

var _ portsrepo.ExchangeRateRepository = (*exchangeRateRepository)(nil)

// NewExchangeRateRepository creates a new PostgreSQL exchange rate repository.
func NewExchangeRateRepository(pool *pgxpool.Pool) *exchangeRateRepository {
	return &exchangeRateRepository{BaseRepository: newBaseRepository(pool)}
}

const exchangeRateColumns = `exchange_rate_id, from_currency_code, to_currency_code, rate, date_effective, source, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanExchangeRate(row pgx.Row) (*domain.ExchangeRate, error) {
	var rate domain.ExchangeRate
	err := row.Scan(
		&rate.ExchangeRateID,
		&rate.FromCurrencyCode,
		&rate.ToCurrencyCode,
		&rate.Rate,
		&rate.DateEffective,
		&rate.Source,
		&rate.IsActive,
		&rate.CreatedAt,
		&rate.CreatedBy,
		&rate.LastUpdatedAt,
		&rate.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &rate, nil
}

// SaveExchangeRate appends a rate row. Existing rows for the same pair and
// date are never touched.
func (r *exchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	query := `
		INSERT INTO exchange_rates (` + exchangeRateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.pool.Exec(ctx, query,
		rate.ExchangeRateID,
		rate.FromCurrencyCode,
		rate.ToCurrencyCode,
		rate.Rate,
		rate.DateEffective,
		rate.Source,
		rate.IsActive,
		rate.CreatedAt,
		rate.CreatedBy,
		rate.LastUpdatedAt,
		rate.LastUpdatedBy,
	)
	if err != nil {
		r.logger(ctx).Error("Failed to insert exchange rate",
			slog.String("from", rate.FromCurrencyCode),
			slog.String("to", rate.ToCurrencyCode),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to insert exchange rate: %w", err)
	}
	return nil
}

// FindRateAsOf returns the active rate with the latest effective date at or
// before asOf. Ties on the effective date go to the most recently inserted
// row, so manual overrides appended later win.
func (r *exchangeRateRepository) FindRateAsOf(ctx context.Context, fromCurrencyCode, toCurrencyCode string, asOf time.Time) (*domain.ExchangeRate, error) {
	query := `
		SELECT ` + exchangeRateColumns + `
		FROM exchange_rates
		WHERE from_currency_code = $1
		  AND to_currency_code = $2
		  AND date_effective <= $3
		  AND is_active = TRUE
		ORDER BY date_effective DESC, created_at DESC
		LIMIT 1`

	rate, err := scanExchangeRate(r.pool.QueryRow(ctx, query, fromCurrencyCode, toCurrencyCode, asOf))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("no active rate for %s/%s as of %s", fromCurrencyCode, toCurrencyCode, asOf.Format("2006-01-02")))
		}
		return nil, fmt.Errorf("failed to query exchange rate: %w", err)
	}
	return rate, nil
}

// ListExchangeRates returns a page of rate rows matching the optional
// filters, newest first, together with the unpaged total.
func (r *exchangeRateRepository) ListExchangeRates(ctx context.Context, fromCurrency, toCurrency *string, asOf *time.Time, page, pageSize int) ([]domain.ExchangeRate, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	argPos := 1
	if fromCurrency != nil {
		where += fmt.Sprintf(" AND from_currency_code = $%d", argPos)
		args = append(args, *fromCurrency)
		argPos++
	}
	if toCurrency != nil {
		where += fmt.Sprintf(" AND to_currency_code = $%d", argPos)
		args = append(args, *toCurrency)
		argPos++
	}
	if asOf != nil {
		where += fmt.Sprintf(" AND date_effective <= $%d", argPos)
		args = append(args, *asOf)
		argPos++
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM exchange_rates` + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count exchange rates: %w", err)
	}

	query := `SELECT ` + exchangeRateColumns + ` FROM exchange_rates` + where +
		fmt.Sprintf(" ORDER BY date_effective DESC, created_at DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list exchange rates: %w", err)
	}
	defer rows.Close()

	rates := make([]domain.ExchangeRate, 0, pageSize)
	for rows.Next() {
		rate, err := scanExchangeRate(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan exchange rate row: %w", err)
		}
		rates = append(rates, *rate)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read exchange rate rows: %w", err)
	}
	return rates, total, nil
}
