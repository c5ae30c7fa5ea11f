package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/cleared-dev/statements/internal/model"
	"github.com/cleared-dev/statements/internal/period"
	"github.com/cleared-dev/statements/internal/rollup"
)

// RetainedEarningsLabel labels the synthetic equity row.
const RetainedEarningsLabel = "Retained Earnings"

// BalanceSheet is a point-in-time statement as of one date.
type BalanceSheet struct {
	AsOf     string   `json:"as_of"`
	Previous string   `json:"previous_as_of,omitempty"`
	Columns  []string `json:"columns"`
	NoData   bool     `json:"no_data"`

	Assets      Section `json:"assets"`
	Liabilities Section `json:"liabilities"`
	Equity      Section `json:"equity"`

	RetainedEarnings          Row `json:"retained_earnings"`
	TotalLiabilitiesAndEquity Row `json:"total_liabilities_and_equity"`

	// Difference is assets minus liabilities and equity. It is reported,
	// never enforced.
	Difference decimal.Decimal `json:"difference"`
}

// Sections returns the three account sections in display order.
func (b *BalanceSheet) Sections() []*Section {
	return []*Section{&b.Assets, &b.Liabilities, &b.Equity}
}

// PointInTimeBalance returns the since-inception rollup of id up to asOf.
func PointInTimeBalance(agg *rollup.Aggregator, id int, asOf time.Time) decimal.Decimal {
	return agg.Rollup(id, period.AsOf(asOf))
}

// RetainedEarnings returns revenue minus cost of goods sold and expenses
// accumulated since inception up to asOf.
func RetainedEarnings(agg *rollup.Aggregator, asOf time.Time) decimal.Decimal {
	r := period.AsOf(asOf)
	idx := agg.Accounts()
	revenue := agg.SumRollups(rollup.IDs(idx.Roots(model.AccountTypeRevenue)), r)
	cogs := agg.SumRollups(rollup.IDs(idx.Roots(model.AccountTypeCOGS)), r)
	expenses := agg.SumRollups(rollup.IDs(idx.Roots(model.AccountTypeExpense)), r)
	return revenue.Sub(cogs).Sub(expenses)
}

// BuildBalanceSheet computes balances as of opts.Range.End. With a
// granularity other than Total and a set start date, each bucket column
// shows the balance at the earlier of the bucket end and the as-of date.
func BuildBalanceSheet(ctx context.Context, agg *rollup.Aggregator, opts Options) (*BalanceSheet, error) {
	asOf := period.Truncate(opts.Range.End)
	if asOf.IsZero() {
		return &BalanceSheet{AsOf: "(no date)", NoData: true}, nil
	}

	cols := balanceColumns(opts.Range, opts.Granularity, asOf)
	b := &BalanceSheet{AsOf: asOf.Format(period.DateFormat), Columns: period.Tokens(cols)}

	var prevAsOf time.Time
	if prev := opts.previous(); !prev.Empty() {
		prevAsOf = prev.End
		b.Previous = prevAsOf.Format(period.DateFormat)
	}

	tb := balanceTree(agg, asOf, cols)
	if !prevAsOf.IsZero() {
		tb.previous = func(id int) decimal.Decimal { return PointInTimeBalance(agg, id, prevAsOf) }
	}
	sections := []struct {
		dst   *Section
		title string
		types []model.AccountType
	}{
		{&b.Assets, "Assets", []model.AccountType{model.AccountTypeAsset, model.AccountTypeBankAccount}},
		{&b.Liabilities, "Liabilities", []model.AccountType{model.AccountTypeLiability, model.AccountTypeCreditCard}},
		{&b.Equity, "Equity", []model.AccountType{model.AccountTypeEquity}},
	}
	for _, s := range sections {
		sec, err := tb.section(ctx, s.title, s.types...)
		if err != nil {
			return nil, err
		}
		*s.dst = sec
	}

	re := summaryRow(RetainedEarningsLabel,
		rollup.SeriesOf(cols, func(r period.Range) decimal.Decimal { return RetainedEarnings(agg, r.End) }),
		RetainedEarnings(agg, asOf))
	if !prevAsOf.IsZero() {
		re.Previous = RetainedEarnings(agg, prevAsOf)
	}
	b.RetainedEarnings = re
	b.Equity.Rows = append(b.Equity.Rows, re)
	b.Equity.Total.Amounts = b.Equity.Total.Amounts.Add(re.Amounts)
	b.Equity.Total.Total = b.Equity.Total.Total.Add(re.Total)
	b.Equity.Total.Direct = b.Equity.Total.Total
	b.Equity.Total.Previous = b.Equity.Total.Previous.Add(re.Previous)

	b.TotalLiabilitiesAndEquity = summaryRow("Total Liabilities & Equity",
		b.Liabilities.Total.Amounts.Add(b.Equity.Total.Amounts),
		b.Liabilities.Total.Total.Add(b.Equity.Total.Total))
	b.TotalLiabilitiesAndEquity.Previous = b.Liabilities.Total.Previous.Add(b.Equity.Total.Previous)
	b.Difference = b.Assets.Total.Total.Sub(b.TotalLiabilitiesAndEquity.Total)

	opts.logger().Debug("built balance sheet",
		zap.String("as_of", b.AsOf),
		zap.String("total_assets", b.Assets.Total.Total.String()),
		zap.String("difference", b.Difference.String()))
	return b, nil
}

// balanceColumns returns one column per bucket of r capped at asOf, or a
// single total column when no bucketing applies. Column ranges are
// since-inception ranges ending at the column's balance date.
func balanceColumns(r period.Range, g period.Granularity, asOf time.Time) []period.Bucket {
	single := []period.Bucket{{Token: period.TotalToken, Range: period.AsOf(asOf)}}
	if g == period.Total || r.Start.IsZero() {
		return single
	}
	buckets := period.Buckets(period.Range{Start: r.Start, End: asOf}, g)
	if len(buckets) == 0 {
		return single
	}
	out := make([]period.Bucket, len(buckets))
	for i, bk := range buckets {
		end := bk.Range.End
		if end.After(asOf) {
			end = asOf
		}
		out[i] = period.Bucket{Token: bk.Token, Range: period.AsOf(end)}
	}
	return out
}

func balanceTree(agg *rollup.Aggregator, asOf time.Time, cols []period.Bucket) *treeBuilder {
	r := period.AsOf(asOf)
	return &treeBuilder{
		agg:     agg,
		buckets: cols,
		total:   func(id int) decimal.Decimal { return agg.Rollup(id, r) },
		series:  func(id int) rollup.Series { return agg.Series(id, cols) },
		direct: func(id int) (rollup.Series, decimal.Decimal) {
			return agg.DirectSeries(id, cols), agg.Direct(id, r)
		},
		active: func(id int) bool { return agg.Active(id, r) },
	}
}
