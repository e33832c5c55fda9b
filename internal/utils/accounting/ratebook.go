package accounting

import (
	"time"

	"github.com/rahmannascenia/accountingbolt/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RateBook resolves exchange rates against a fixed snapshot of rate rows,
// so a whole report computation sees one consistent rate view. Resolution
// picks the active row with the latest effective date at or before the
// as-of date; ties on date are broken by the most recently inserted row.
type RateBook struct {
	rates map[string][]indexedRate
}

type indexedRate struct {
	rate     domain.ExchangeRate
	position int // insertion order within the snapshot, breaks created-at ties
}

func pairKey(from, to string) string {
	return from + "/" + to
}

// NewRateBook indexes a snapshot of rate rows by currency pair.
func NewRateBook(rates []domain.ExchangeRate) *RateBook {
	book := &RateBook{rates: make(map[string][]indexedRate)}
	for i, rate := range rates {
		key := pairKey(rate.FromCurrencyCode, rate.ToCurrencyCode)
		book.rates[key] = append(book.rates[key], indexedRate{rate: rate, position: i})
	}
	return book
}

// Resolve returns the applicable rate for the pair at the as-of date.
// Identity pairs resolve to 1 without a lookup. The second return value is
// false when no active row with an effective date at or before asOf exists;
// callers surface that as a missing-rate condition rather than an error.
func (b *RateBook) Resolve(fromCurrency, toCurrency string, asOf time.Time) (decimal.Decimal, bool) {
	if fromCurrency == toCurrency {
		return decimal.NewFromInt(1), true
	}

	var best *indexedRate
	for i := range b.rates[pairKey(fromCurrency, toCurrency)] {
		candidate := &b.rates[pairKey(fromCurrency, toCurrency)][i]
		if !candidate.rate.IsActive || candidate.rate.DateEffective.After(asOf) {
			continue
		}
		if best == nil || candidate.betterThan(best) {
			best = candidate
		}
	}
	if best == nil {
		return decimal.Zero, false
	}
	return best.rate.Rate, true
}

// betterThan orders candidates by effective date, then insertion recency.
func (r *indexedRate) betterThan(other *indexedRate) bool {
	if !r.rate.DateEffective.Equal(other.rate.DateEffective) {
		return r.rate.DateEffective.After(other.rate.DateEffective)
	}
	if !r.rate.CreatedAt.Equal(other.rate.CreatedAt) {
		return r.rate.CreatedAt.After(other.rate.CreatedAt)
	}
	return r.position > other.position
}
