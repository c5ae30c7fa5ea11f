package report

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/cleared-dev/statements/internal/model"
	"github.com/cleared-dev/statements/internal/period"
	"github.com/cleared-dev/statements/internal/rollup"
)

// OperatingActivities are the profit and loss flows of the period.
type OperatingActivities struct {
	Revenue   Row `json:"revenue"`
	COGS      Row `json:"cogs"`
	Expenses  Row `json:"expenses"`
	NetIncome Row `json:"net_income"`
}

// InvestingActivities are changes in non-bank assets.
type InvestingActivities struct {
	IncreaseInAssets   Row `json:"increase_in_assets"`
	NetInvestingChange Row `json:"net_investing_change"`
}

// FinancingActivities are changes in liabilities and owner equity.
// OwnerDistributions mirrors OwnerContributions and is not part of
// NetFinancingChange.
type FinancingActivities struct {
	IncreaseInLiabilities Row `json:"increase_in_liabilities"`
	OwnerContributions    Row `json:"owner_contributions"`
	OwnerDistributions    Row `json:"owner_distributions"`
	NetFinancingChange    Row `json:"net_financing_change"`
}

// CashFlow is a range-scoped cash flow statement with a bank balance walk.
// Flow rows are scoped to each bucket; balance rows are cumulative.
type CashFlow struct {
	Period         string   `json:"period"`
	PreviousPeriod string   `json:"previous_period,omitempty"`
	Columns        []string `json:"columns"`
	NoData         bool     `json:"no_data"`
	BankAccounts   []int    `json:"bank_accounts"`

	Operating OperatingActivities `json:"operating"`
	Investing InvestingActivities `json:"investing"`
	Financing FinancingActivities `json:"financing"`

	NetChange        Row `json:"net_change"`
	BeginningBalance Row `json:"beginning_balance"`
	EndingBalance    Row `json:"ending_balance"`
}

// BankBalanceAsOf returns the combined since-inception balance of the bank
// accounts up to date. Each bank account contributes its own lines only, so
// bank accounts nested under one another are not counted twice.
func BankBalanceAsOf(agg *rollup.Aggregator, cls *Classifier, date time.Time) decimal.Decimal {
	return agg.SumDirect(cls.Members(ClassBank), period.AsOf(date))
}

// BuildCashFlow classifies the chart and computes operating, investing and
// financing flows over opts.Range, followed by the beginning and ending bank
// balances of every column.
func BuildCashFlow(ctx context.Context, agg *rollup.Aggregator, opts Options) (*CashFlow, error) {
	r := opts.Range
	if r.Empty() {
		return &CashFlow{Period: r.String(), NoData: true}, nil
	}
	cls := NewClassifier(agg.Accounts(), opts.BankAccounts)
	buckets := period.Buckets(r, opts.Granularity)
	prev := opts.previous()

	cf := &CashFlow{
		Period:       r.String(),
		Columns:      period.Tokens(buckets),
		BankAccounts: cls.Members(ClassBank),
	}
	if !prev.IsZero() {
		cf.PreviousPeriod = prev.String()
	}

	// operating rolls up every root of a type, matching the profit and loss
	// totals for the same range.
	operating := func(label string, t model.AccountType) Row {
		ids := rollup.IDs(agg.Accounts().Roots(t))
		row := summaryRow(label,
			rollup.SeriesOf(buckets, func(br period.Range) decimal.Decimal { return agg.SumRollups(ids, br) }),
			agg.SumRollups(ids, r))
		row.Previous = agg.SumRollups(ids, prev)
		return row
	}
	// flow sums the direct lines of a class so nested members of mixed
	// classes are each counted once, in their own class.
	flow := func(label string, cl Class) Row {
		ids := cls.Members(cl)
		row := summaryRow(label,
			rollup.SeriesOf(buckets, func(br period.Range) decimal.Decimal { return agg.SumDirect(ids, br) }),
			agg.SumDirect(ids, r))
		row.Previous = agg.SumDirect(ids, prev)
		return row
	}
	balance := func(label string, at func(period.Range) time.Time) Row {
		row := summaryRow(label,
			rollup.SeriesOf(buckets, func(br period.Range) decimal.Decimal { return BankBalanceAsOf(agg, cls, at(br)) }),
			BankBalanceAsOf(agg, cls, at(r)))
		if !prev.IsZero() {
			row.Previous = BankBalanceAsOf(agg, cls, at(prev))
		}
		return row
	}

	op := &cf.Operating
	op.Revenue = operating("Revenue", model.AccountTypeRevenue)
	op.COGS = operating("Cost of Goods Sold", model.AccountTypeCOGS)
	op.Expenses = operating("Expenses", model.AccountTypeExpense)
	op.NetIncome = difference("Net Income", difference("", op.Revenue, op.COGS), op.Expenses)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("building cash flow: %w", err)
	}

	inv := &cf.Investing
	inv.IncreaseInAssets = flow("Increase in Assets", ClassInvesting)
	inv.NetInvestingChange = negate("Net Investing Change", inv.IncreaseInAssets)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("building cash flow: %w", err)
	}

	fin := &cf.Financing
	fin.IncreaseInLiabilities = flow("Increase in Liabilities", ClassLiability)
	fin.OwnerContributions = flow("Owner Contributions", ClassEquity)
	fin.OwnerDistributions = negate("Owner Distributions", fin.OwnerContributions)
	fin.NetFinancingChange = sum("Net Financing Change", fin.IncreaseInLiabilities, fin.OwnerContributions)

	cf.NetChange = sum("Net Change in Cash", op.NetIncome, inv.NetInvestingChange, fin.NetFinancingChange)
	cf.BeginningBalance = balance("Beginning Cash Balance", func(br period.Range) time.Time { return period.AddDays(br.Start, -1) })
	cf.EndingBalance = balance("Ending Cash Balance", func(br period.Range) time.Time { return br.End })

	opts.logger().Debug("built cash flow",
		zap.String("period", cf.Period),
		zap.Int("bank_accounts", len(cf.BankAccounts)),
		zap.String("ending_balance", cf.EndingBalance.Total.String()))
	return cf, nil
}

func negate(label string, row Row) Row {
	out := summaryRow(label, row.Amounts.Neg(), row.Total.Neg())
	out.Previous = row.Previous.Neg()
	return out
}

func sum(label string, rows ...Row) Row {
	out := summaryRow(label, rollup.Series{}, decimal.Zero)
	for _, row := range rows {
		out.Amounts = out.Amounts.Add(row.Amounts)
		out.Total = out.Total.Add(row.Total)
		out.Previous = out.Previous.Add(row.Previous)
	}
	out.Direct = out.Total
	return out
}

// Activity is a titled group of cash flow figures.
type Activity struct {
	Title string
	Rows  []Row
}

// Activities returns the figures in display order grouped by activity.
func (cf *CashFlow) Activities() []Activity {
	return []Activity{
		{"Operating Activities", []Row{cf.Operating.Revenue, cf.Operating.COGS, cf.Operating.Expenses, cf.Operating.NetIncome}},
		{"Investing Activities", []Row{cf.Investing.IncreaseInAssets, cf.Investing.NetInvestingChange}},
		{"Financing Activities", []Row{cf.Financing.IncreaseInLiabilities, cf.Financing.OwnerContributions, cf.Financing.OwnerDistributions, cf.Financing.NetFinancingChange}},
		{"Cash", []Row{cf.NetChange, cf.BeginningBalance, cf.EndingBalance}},
	}
}
