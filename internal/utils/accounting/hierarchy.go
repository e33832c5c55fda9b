package accounting

import (
	"fmt"
	"sort"

	"github.com/rahmannascenia/accountingbolt/internal/core/domain"
)

// BuildAccountTree assembles flat chart-of-accounts rows into a hierarchy,
// attaching each account's own aggregated balance to its node.
//
// Linkage is by identity: a child is attached to the account whose Code
// equals the child's ParentCode. Parent edges are validated before assembly;
// an account whose parent cannot be resolved becomes a root with an
// ORPHAN_ACCOUNT warning, and an account participating in a parent cycle
// becomes a root with a CYCLIC_PARENT warning. Accounts with no parent
// reference are roots. Children are never rolled into parents here; use
// RollUpBalance where a report wants rolled-up totals.
func BuildAccountTree(accounts []domain.Account, balances map[string]*domain.AccountBalance) ([]*domain.AccountNode, []domain.IntegrityWarning) {
	arena := make(map[string]*domain.AccountNode, len(accounts))
	for _, acc := range accounts {
		node := &domain.AccountNode{Account: acc}
		if bal, ok := balances[acc.Code]; ok {
			node.Balance = *bal
		}
		arena[acc.Code] = node
	}

	// parentOf holds the validated parent edge for each account code.
	parentOf := make(map[string]string, len(accounts))
	var warnings []domain.IntegrityWarning
	for _, acc := range accounts {
		if acc.ParentCode == nil || *acc.ParentCode == "" {
			continue
		}
		if _, ok := arena[*acc.ParentCode]; !ok {
			warnings = append(warnings, domain.IntegrityWarning{
				Code:     domain.WarnOrphanAccount,
				EntityID: acc.Code,
				Message:  fmt.Sprintf("account %s declares unknown parent %s; treated as root", acc.Code, *acc.ParentCode),
			})
			continue
		}
		if acc.Code == *acc.ParentCode {
			warnings = append(warnings, domain.IntegrityWarning{
				Code:     domain.WarnCyclicParent,
				EntityID: acc.Code,
				Message:  fmt.Sprintf("account %s declares itself as parent; treated as root", acc.Code),
			})
			continue
		}
		parentOf[acc.Code] = *acc.ParentCode
	}

	// Validate edges for cycles before assembly. Walking the parent chain
	// with three-state marking finds every cycle once; the edge leaving the
	// account where the cycle is detected is dropped so that account becomes
	// a root.
	const (
		unvisited  = 0
		inProgress = 1
		done       = 2
	)
	state := make(map[string]int, len(accounts))
	codes := make([]string, 0, len(arena))
	for code := range arena {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		if state[code] != unvisited {
			continue
		}
		chain := []string{}
		cur := code
		for {
			if state[cur] == done {
				break
			}
			if state[cur] == inProgress {
				// cur is on the current chain: drop the edge leaving it.
				warnings = append(warnings, domain.IntegrityWarning{
					Code:     domain.WarnCyclicParent,
					EntityID: cur,
					Message:  fmt.Sprintf("account %s is part of a parent cycle; treated as root", cur),
				})
				delete(parentOf, cur)
				break
			}
			state[cur] = inProgress
			chain = append(chain, cur)
			next, ok := parentOf[cur]
			if !ok {
				break
			}
			cur = next
		}
		for _, c := range chain {
			state[c] = done
		}
	}

	var roots []*domain.AccountNode
	for _, code := range codes {
		node := arena[code]
		parent, ok := parentOf[code]
		if !ok {
			roots = append(roots, node)
			continue
		}
		arena[parent].Children = append(arena[parent].Children, node)
	}

	sortNodes(roots)
	return roots, warnings
}

// RollUpBalance sums a node's own balance with all of its descendants'.
func RollUpBalance(node *domain.AccountNode) domain.AccountBalance {
	total := node.Balance
	for _, child := range node.Children {
		childTotal := RollUpBalance(child)
		total.Debit = total.Debit.Add(childTotal.Debit)
		total.Credit = total.Credit.Add(childTotal.Credit)
		total.ReportingDebit = total.ReportingDebit.Add(childTotal.ReportingDebit)
		total.ReportingCredit = total.ReportingCredit.Add(childTotal.ReportingCredit)
	}
	return total
}

func sortNodes(nodes []*domain.AccountNode) {
	sort.Slice(nodes, func(i, j int) bool {
		return nodes[i].Account.Code < nodes[j].Account.Code
	})
	for _, n := range nodes {
		sortNodes(n.Children)
	}
}
