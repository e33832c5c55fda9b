package repositories

// RepositoryContainer groups the repository interfaces the services need.
type RepositoryContainer struct {
	Ledger       LedgerReadRepository
	ExchangeRate ExchangeRateRepository
}
