package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/rahmannascenia/accountingbolt/internal/core/ports/repositories"
)

// NewRepositoryContainer wires the PostgreSQL repositories over one pool.
func NewRepositoryContainer(pool *pgxpool.Pool) *portsrepo.RepositoryContainer {
	return &portsrepo.RepositoryContainer{
		Ledger:       NewLedgerRepository(pool),
		ExchangeRate: NewExchangeRateRepository(pool),
	}
}
