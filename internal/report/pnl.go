package report

import (
	"context"

	"go.uber.org/zap"

	"github.com/cleared-dev/statements/internal/model"
	"github.com/cleared-dev/statements/internal/period"
	"github.com/cleared-dev/statements/internal/rollup"
)

// ProfitAndLoss is a range-scoped income statement.
type ProfitAndLoss struct {
	Period         string   `json:"period"`
	PreviousPeriod string   `json:"previous_period,omitempty"`
	Columns        []string `json:"columns"`
	NoData         bool     `json:"no_data"`

	Revenue  Section `json:"revenue"`
	COGS     Section `json:"cogs"`
	Expenses Section `json:"expenses"`

	GrossProfit Row `json:"gross_profit"`
	NetIncome   Row `json:"net_income"`
}

// Sections returns the three account sections in display order.
func (p *ProfitAndLoss) Sections() []*Section {
	return []*Section{&p.Revenue, &p.COGS, &p.Expenses}
}

// BuildProfitAndLoss computes revenue, cost of goods sold and expenses over
// opts.Range with one column per bucket. Percentages are relative to total
// revenue. An empty range yields a report flagged NoData.
func BuildProfitAndLoss(ctx context.Context, agg *rollup.Aggregator, opts Options) (*ProfitAndLoss, error) {
	r := opts.Range
	if r.Empty() {
		return &ProfitAndLoss{Period: r.String(), NoData: true}, nil
	}
	buckets := period.Buckets(r, opts.Granularity)
	prev := opts.previous()

	p := &ProfitAndLoss{Period: r.String(), Columns: period.Tokens(buckets)}
	if !prev.IsZero() {
		p.PreviousPeriod = prev.String()
	}

	tb := rangeTree(agg, r, prev, buckets)
	var err error
	if p.Revenue, err = tb.section(ctx, "Revenue", model.AccountTypeRevenue); err != nil {
		return nil, err
	}
	if p.COGS, err = tb.section(ctx, "Cost of Goods Sold", model.AccountTypeCOGS); err != nil {
		return nil, err
	}
	if p.Expenses, err = tb.section(ctx, "Expenses", model.AccountTypeExpense); err != nil {
		return nil, err
	}

	p.GrossProfit = difference("Gross Profit", p.Revenue.Total, p.COGS.Total)
	p.NetIncome = difference("Net Income", p.GrossProfit, p.Expenses.Total)

	base := p.Revenue.Total.Total
	for _, s := range p.Sections() {
		for i := range s.Rows {
			s.Rows[i].Walk(func(row *Row) { row.Percent = PercentageOf(row.Total, base) })
		}
		s.Total.Percent = PercentageOf(s.Total.Total, base)
	}
	p.GrossProfit.Percent = PercentageOf(p.GrossProfit.Total, base)
	p.NetIncome.Percent = PercentageOf(p.NetIncome.Total, base)

	opts.logger().Debug("built profit and loss",
		zap.String("period", p.Period),
		zap.Int("columns", len(p.Columns)),
		zap.String("net_income", p.NetIncome.Total.String()))
	return p, nil
}

// difference returns a summary row a - b.
func difference(label string, a, b Row) Row {
	row := summaryRow(label, a.Amounts.Sub(b.Amounts), a.Total.Sub(b.Total))
	row.Previous = a.Previous.Sub(b.Previous)
	return row
}
