package accounting_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahmannascenia/accountingbolt/internal/core/domain"
	"github.com/rahmannascenia/accountingbolt/internal/utils/accounting"
)

func account(code string, parentCode *string) domain.Account {
	return domain.Account{
		Code:        code,
		Name:        "Account " + code,
		AccountType: domain.Asset,
		ParentCode:  parentCode,
		IsActive:    true,
	}
}

func strPtr(s string) *string { return &s }

func TestBuildAccountTree_LinksByParentCode(t *testing.T) {
	accounts := []domain.Account{
		account("1000", nil),
		account("1010", strPtr("1000")),
		account("1020", strPtr("1000")),
		account("1011", strPtr("1010")),
	}

	roots, warnings := accounting.BuildAccountTree(accounts, nil)

	require.Empty(t, warnings)
	require.Len(t, roots, 1)
	assert.Equal(t, "1000", roots[0].Account.Code)
	require.Len(t, roots[0].Children, 2)
	assert.Equal(t, "1010", roots[0].Children[0].Account.Code)
	assert.Equal(t, "1020", roots[0].Children[1].Account.Code)
	require.Len(t, roots[0].Children[0].Children, 1)
	assert.Equal(t, "1011", roots[0].Children[0].Children[0].Account.Code)
}

func TestBuildAccountTree_SiblingsDoNotNest(t *testing.T) {
	// Two accounts sharing a parent must both hang off the parent, never
	// off each other.
	accounts := []domain.Account{
		account("1000", nil),
		account("1010", strPtr("1000")),
		account("1020", strPtr("1000")),
	}

	roots, _ := accounting.BuildAccountTree(accounts, nil)

	require.Len(t, roots, 1)
	require.Len(t, roots[0].Children, 2)
	assert.Empty(t, roots[0].Children[0].Children)
	assert.Empty(t, roots[0].Children[1].Children)
}

func TestBuildAccountTree_OrphanBecomesRoot(t *testing.T) {
	accounts := []domain.Account{
		account("1000", nil),
		account("1010", strPtr("9999")),
	}

	roots, warnings := accounting.BuildAccountTree(accounts, nil)

	require.Len(t, roots, 2)
	require.Len(t, warnings, 1)
	assert.Equal(t, domain.WarnOrphanAccount, warnings[0].Code)
	assert.Equal(t, "1010", warnings[0].EntityID)
}

func TestBuildAccountTree_SelfParentBecomesRoot(t *testing.T) {
	accounts := []domain.Account{
		account("1000", strPtr("1000")),
	}

	roots, warnings := accounting.BuildAccountTree(accounts, nil)

	require.Len(t, roots, 1)
	require.Len(t, warnings, 1)
	assert.Equal(t, domain.WarnCyclicParent, warnings[0].Code)
}

func TestBuildAccountTree_CycleBroken(t *testing.T) {
	accounts := []domain.Account{
		account("1000", strPtr("1010")),
		account("1010", strPtr("1000")),
		account("2000", nil),
	}

	roots, warnings := accounting.BuildAccountTree(accounts, nil)

	// The cycle edge is dropped so one member becomes a root and the other
	// stays its child; every account remains reachable.
	require.NotEmpty(t, warnings)
	assert.Equal(t, domain.WarnCyclicParent, warnings[0].Code)
	total := 0
	var count func(nodes []*domain.AccountNode)
	count = func(nodes []*domain.AccountNode) {
		for _, n := range nodes {
			total++
			count(n.Children)
		}
	}
	count(roots)
	assert.Equal(t, 3, total)
}

func TestBuildAccountTree_AttachesBalances(t *testing.T) {
	accounts := []domain.Account{
		account("1000", nil),
		account("1010", strPtr("1000")),
	}
	balances := map[string]*domain.AccountBalance{
		"1010": {Debit: dec("75"), ReportingDebit: dec("75")},
	}

	roots, _ := accounting.BuildAccountTree(accounts, balances)

	require.Len(t, roots, 1)
	assert.True(t, roots[0].Balance.Debit.IsZero())
	assert.True(t, roots[0].Children[0].Balance.Debit.Equal(dec("75")))
}

func TestRollUpBalance_SumsDescendants(t *testing.T) {
	accounts := []domain.Account{
		account("1000", nil),
		account("1010", strPtr("1000")),
		account("1011", strPtr("1010")),
	}
	balances := map[string]*domain.AccountBalance{
		"1000": {Debit: dec("5"), ReportingDebit: dec("5")},
		"1010": {Debit: dec("10"), ReportingDebit: dec("10")},
		"1011": {Debit: dec("20"), Credit: dec("3"), ReportingDebit: dec("20"), ReportingCredit: dec("3")},
	}

	roots, _ := accounting.BuildAccountTree(accounts, balances)

	require.Len(t, roots, 1)
	total := accounting.RollUpBalance(roots[0])
	assert.True(t, total.Debit.Equal(dec("35")))
	assert.True(t, total.Credit.Equal(dec("3")))
	assert.True(t, total.ReportingDebit.Equal(dec("35")))
}
