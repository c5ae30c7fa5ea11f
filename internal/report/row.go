package report

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/statements/internal/model"
	"github.com/cleared-dev/statements/internal/period"
	"github.com/cleared-dev/statements/internal/rollup"
)

// Row is one precomputed statement line. Account rows carry the subtree
// rollup in Amounts/Total and the account's own lines in DirectAmounts/Direct.
// Synthetic rows (retained earnings, summaries) have a zero AccountID.
type Row struct {
	AccountID     int             `json:"account_id,omitempty"`
	Label         string          `json:"label"`
	Level         int             `json:"level"`
	Amounts       rollup.Series   `json:"amounts"`
	Total         decimal.Decimal `json:"total"`
	DirectAmounts rollup.Series   `json:"direct_amounts,omitempty"`
	Direct        decimal.Decimal `json:"direct"`
	Previous      decimal.Decimal `json:"previous"`
	Percent       Percentage      `json:"percent"`
	Children      []Row           `json:"children,omitempty"`
}

// Section groups the top-level rows of one statement block with their total.
type Section struct {
	Title string `json:"title"`
	Rows  []Row  `json:"rows"`
	Total Row    `json:"total"`
}

// Walk visits r and every descendant row in pre-order.
func (r *Row) Walk(fn func(row *Row)) {
	fn(r)
	for i := range r.Children {
		r.Children[i].Walk(fn)
	}
}

// summaryRow builds a synthetic row from a series computed over buckets.
func summaryRow(label string, amounts rollup.Series, total decimal.Decimal) Row {
	return Row{Label: label, Amounts: amounts, Total: total, Direct: total}
}

// treeBuilder turns account subtrees into nested rows. Children are listed
// when they have activity; totals always come from the aggregator, never from
// the listed rows.
type treeBuilder struct {
	agg     *rollup.Aggregator
	buckets []period.Bucket
	total   func(id int) decimal.Decimal
	series  func(id int) rollup.Series
	direct  func(id int) (rollup.Series, decimal.Decimal)
	active  func(id int) bool

	// previous is nil unless a comparison period was requested.
	previous func(id int) decimal.Decimal
}

func (tb *treeBuilder) row(acct model.Account, level int) Row {
	directAmounts, direct := tb.direct(acct.ID)
	row := Row{
		AccountID:     acct.ID,
		Label:         acct.Name,
		Level:         level,
		Amounts:       tb.series(acct.ID),
		Total:         tb.total(acct.ID),
		DirectAmounts: directAmounts,
		Direct:        direct,
	}
	if tb.previous != nil {
		row.Previous = tb.previous(acct.ID)
	}
	for _, childID := range tb.agg.Accounts().Children(acct.ID) {
		if !tb.active(childID) {
			continue
		}
		child, _ := tb.agg.Accounts().Get(childID)
		row.Children = append(row.Children, tb.row(child, level+1))
	}
	return row
}

// rangeTree builds rows whose figures are flows over r split into buckets.
// A set prev adds comparison figures and keeps accounts active in either
// period listed.
func rangeTree(agg *rollup.Aggregator, r, prev period.Range, buckets []period.Bucket) *treeBuilder {
	tb := &treeBuilder{
		agg:     agg,
		buckets: buckets,
		total:   func(id int) decimal.Decimal { return agg.Rollup(id, r) },
		series:  func(id int) rollup.Series { return agg.Series(id, buckets) },
		direct: func(id int) (rollup.Series, decimal.Decimal) {
			return agg.DirectSeries(id, buckets), agg.Direct(id, r)
		},
		active: func(id int) bool {
			return agg.Active(id, r) || agg.Active(id, prev)
		},
	}
	if !prev.IsZero() {
		tb.previous = func(id int) decimal.Decimal { return agg.Rollup(id, prev) }
	}
	return tb
}

// section lists the active roots of the given types. Totals include every
// root of those types, listed or not.
func (tb *treeBuilder) section(ctx context.Context, title string, types ...model.AccountType) (Section, error) {
	s := Section{Title: title}
	amounts := rollup.Series{}
	total, previous := decimal.Zero, decimal.Zero
	for _, root := range tb.agg.Accounts().Roots(types...) {
		if err := ctx.Err(); err != nil {
			return Section{}, fmt.Errorf("building %s: %w", title, err)
		}
		amounts = amounts.Add(tb.series(root.ID))
		total = total.Add(tb.total(root.ID))
		if tb.previous != nil {
			previous = previous.Add(tb.previous(root.ID))
		}
		if tb.active(root.ID) {
			s.Rows = append(s.Rows, tb.row(root, 0))
		}
	}
	s.Total = summaryRow("Total "+title, fill(amounts, tb.buckets), total)
	s.Total.Previous = previous
	return s, nil
}

// fill makes sure every bucket has an entry, even when no account exists.
func fill(s rollup.Series, buckets []period.Bucket) rollup.Series {
	for _, b := range buckets {
		if _, ok := s[b.Token]; !ok {
			s[b.Token] = decimal.Zero
		}
	}
	return s
}

// CountRows returns how many rows the sections hold, nested rows included.
func CountRows(sections ...*Section) int {
	n := 0
	for _, s := range sections {
		for i := range s.Rows {
			s.Rows[i].Walk(func(*Row) { n++ })
		}
	}
	return n
}
