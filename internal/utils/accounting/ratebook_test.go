package accounting_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahmannascenia/accountingbolt/internal/core/domain"
	"github.com/rahmannascenia/accountingbolt/internal/utils/accounting"
)

func rate(from, to, value string, effective, created time.Time, active bool) domain.ExchangeRate {
	r := domain.ExchangeRate{
		FromCurrencyCode: from,
		ToCurrencyCode:   to,
		Rate:             dec(value),
		DateEffective:    effective,
		Source:           domain.RateSourceSystem,
		IsActive:         active,
	}
	r.CreatedAt = created
	return r
}

func day(d int) time.Time {
	return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC)
}

func TestRateBook_IdentityPair(t *testing.T) {
	book := accounting.NewRateBook(nil)

	resolved, ok := book.Resolve("USD", "USD", day(10))

	require.True(t, ok)
	assert.True(t, resolved.Equal(dec("1")))
}

func TestRateBook_PicksLatestEffectiveDate(t *testing.T) {
	book := accounting.NewRateBook([]domain.ExchangeRate{
		rate("USD", "BDT", "109.00", day(1), day(1), true),
		rate("USD", "BDT", "110.50", day(5), day(5), true),
		rate("USD", "BDT", "112.00", day(20), day(20), true),
	})

	resolved, ok := book.Resolve("USD", "BDT", day(10))

	require.True(t, ok)
	assert.True(t, resolved.Equal(dec("110.50")))
}

func TestRateBook_TieBrokenByInsertionRecency(t *testing.T) {
	// A manual override appended for the same effective date wins.
	book := accounting.NewRateBook([]domain.ExchangeRate{
		rate("USD", "BDT", "110.00", day(5), day(5), true),
		rate("USD", "BDT", "111.25", day(5), day(6), true),
	})

	resolved, ok := book.Resolve("USD", "BDT", day(10))

	require.True(t, ok)
	assert.True(t, resolved.Equal(dec("111.25")))
}

func TestRateBook_TieOnCreatedAtFallsBackToPosition(t *testing.T) {
	created := day(5)
	book := accounting.NewRateBook([]domain.ExchangeRate{
		rate("USD", "BDT", "110.00", day(5), created, true),
		rate("USD", "BDT", "111.25", day(5), created, true),
	})

	resolved, ok := book.Resolve("USD", "BDT", day(10))

	require.True(t, ok)
	assert.True(t, resolved.Equal(dec("111.25")))
}

func TestRateBook_SkipsInactiveRows(t *testing.T) {
	book := accounting.NewRateBook([]domain.ExchangeRate{
		rate("USD", "BDT", "110.00", day(5), day(5), true),
		rate("USD", "BDT", "999.00", day(6), day(6), false),
	})

	resolved, ok := book.Resolve("USD", "BDT", day(10))

	require.True(t, ok)
	assert.True(t, resolved.Equal(dec("110.00")))
}

func TestRateBook_IgnoresFutureRates(t *testing.T) {
	book := accounting.NewRateBook([]domain.ExchangeRate{
		rate("USD", "BDT", "115.00", day(20), day(20), true),
	})

	_, ok := book.Resolve("USD", "BDT", day(10))

	assert.False(t, ok)
}

func TestRateBook_MissingPair(t *testing.T) {
	book := accounting.NewRateBook([]domain.ExchangeRate{
		rate("USD", "BDT", "110.00", day(5), day(5), true),
	})

	_, ok := book.Resolve("EUR", "BDT", day(10))

	assert.False(t, ok)
}

func TestRateBook_DirectionMatters(t *testing.T) {
	book := accounting.NewRateBook([]domain.ExchangeRate{
		rate("USD", "BDT", "110.00", day(5), day(5), true),
	})

	_, ok := book.Resolve("BDT", "USD", day(10))

	assert.False(t, ok)
}
