// Package rollup computes direct and subtree-inclusive account totals over
// date ranges and calendar buckets.
package rollup

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/statements/internal/accounts"
	"github.com/cleared-dev/statements/internal/ledger"
	"github.com/cleared-dev/statements/internal/model"
	"github.com/cleared-dev/statements/internal/period"
)

type memoKey struct {
	id         int
	start, end int64
}

// Aggregator answers Direct and Rollup queries over an immutable snapshot.
// Rollups are memoized per (account, start, end) for the aggregator's
// lifetime; create one per report request. An Aggregator is not safe for
// concurrent use, but several may share the same indexes.
type Aggregator struct {
	accounts *accounts.Index
	ledger   *ledger.Index
	memo     map[memoKey]decimal.Decimal
}

// New creates an Aggregator over a chart and its ledger.
func New(accts *accounts.Index, ldg *ledger.Index) *Aggregator {
	return &Aggregator{
		accounts: accts,
		ledger:   ldg,
		memo:     make(map[memoKey]decimal.Decimal),
	}
}

// Accounts returns the chart the aggregator works on.
func (a *Aggregator) Accounts() *accounts.Index { return a.accounts }

// Ledger returns the ledger index the aggregator works on.
func (a *Aggregator) Ledger() *ledger.Index { return a.ledger }

// Direct returns the normalized total of the account's own lines in r.
func (a *Aggregator) Direct(id int, r period.Range) decimal.Decimal {
	if r.Empty() {
		return decimal.Zero
	}
	return a.ledger.Sum(id, r)
}

// Rollup returns Direct(id, r) plus the rollups of every child account.
// Each line is signed by its own account's type.
func (a *Aggregator) Rollup(id int, r period.Range) decimal.Decimal {
	r = r.Dates()
	if r.Empty() {
		return decimal.Zero
	}
	key := memoKey{id: id, start: r.Start.Unix(), end: r.End.Unix()}
	if v, ok := a.memo[key]; ok {
		return v
	}
	total := a.ledger.Sum(id, r)
	for _, child := range a.accounts.Children(id) {
		total = total.Add(a.Rollup(child, r))
	}
	a.memo[key] = total
	return total
}

// SumRollups adds the rollups of ids.
func (a *Aggregator) SumRollups(ids []int, r period.Range) decimal.Decimal {
	total := decimal.Zero
	for _, id := range ids {
		total = total.Add(a.Rollup(id, r))
	}
	return total
}

// SumDirect adds the direct totals of ids.
func (a *Aggregator) SumDirect(ids []int, r period.Range) decimal.Decimal {
	total := decimal.Zero
	for _, id := range ids {
		total = total.Add(a.Direct(id, r))
	}
	return total
}

// Active reports whether the account or any descendant has a line in r.
// Activity is about lines existing, not about a non-zero total.
func (a *Aggregator) Active(id int, r period.Range) bool {
	if r.Empty() {
		return false
	}
	if a.ledger.Count(id, r) > 0 {
		return true
	}
	for _, child := range a.accounts.Children(id) {
		if a.Active(child, r) {
			return true
		}
	}
	return false
}

// TopLevel returns root accounts of the given type with activity in r.
// It filters what is displayed; totals never depend on it.
func (a *Aggregator) TopLevel(t model.AccountType, r period.Range) []model.Account {
	var out []model.Account
	for _, root := range a.accounts.Roots(t) {
		if a.Active(root.ID, r) {
			out = append(out, root)
		}
	}
	return out
}

// IDs returns the IDs of accts.
func IDs(accts []model.Account) []int {
	out := make([]int, len(accts))
	for i, acct := range accts {
		out[i] = acct.ID
	}
	return out
}
