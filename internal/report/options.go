// Package report assembles profit & loss, balance sheet and cash flow
// statements from an aggregator, plus drill-down listings and the
// collapse-aware display of precomputed rows.
package report

import (
	"go.uber.org/zap"

	"github.com/cleared-dev/statements/internal/period"
)

// Options configures one statement build.
type Options struct {
	// Range is the report period. Balance sheets use Range.End as the
	// as-of date and Range.Start only to lay out bucket columns.
	Range       period.Range
	Granularity period.Granularity
	// Compare adds the fixed-duration previous period to every row.
	Compare bool
	// BankAccounts lists account IDs always treated as bank accounts.
	BankAccounts []int
	Log          *zap.Logger
}

func (o Options) logger() *zap.Logger {
	if o.Log == nil {
		return zap.NewNop()
	}
	return o.Log
}

// previous returns the comparison range, or an unset range when comparison
// is off.
func (o Options) previous() period.Range {
	if !o.Compare {
		return period.Range{}
	}
	return o.Range.Previous()
}
