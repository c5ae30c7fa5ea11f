package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/statements/internal/period"
	"github.com/cleared-dev/statements/internal/report"
	"github.com/cleared-dev/statements/internal/rollup"
)

// formatAmount renders d in the currency's display format, falling back to
// two decimals for unknown currencies.
func formatAmount(d decimal.Decimal, currency string) string {
	cur := money.GetCurrency(currency)
	if cur == nil {
		return d.StringFixed(2)
	}
	minor := d.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.New(minor, cur.Code).Display()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// table writes one statement as aligned text columns.
type table struct {
	tw       *tabwriter.Writer
	currency string
	columns  []string
	totalCol string
	compare  bool
	percent  bool
}

func newTable(w io.Writer, currency string, columns []string, totalCol string, compare, percent bool) *table {
	t := &table{
		tw:       tabwriter.NewWriter(w, 0, 4, 2, ' ', 0),
		currency: currency,
		totalCol: totalCol,
		compare:  compare,
		percent:  percent,
	}
	// A single whole-range bucket duplicates the total column.
	if !(len(columns) == 1 && columns[0] == period.TotalToken) {
		t.columns = columns
	}
	return t
}

func (t *table) header(label string) {
	cells := []string{label}
	cells = append(cells, t.columns...)
	cells = append(cells, t.totalCol)
	if t.compare {
		cells = append(cells, "Previous")
	}
	if t.percent {
		cells = append(cells, "%")
	}
	t.write(cells)
}

func (t *table) title(label string) {
	t.write([]string{label})
}

// line writes one row. A nil previous or pct leaves that cell blank.
func (t *table) line(label string, level int, amounts rollup.Series, total decimal.Decimal, previous *decimal.Decimal, pct *report.Percentage) {
	cells := []string{strings.Repeat("  ", level) + label}
	for _, col := range t.columns {
		cells = append(cells, formatAmount(amounts[col], t.currency))
	}
	cells = append(cells, formatAmount(total, t.currency))
	if t.compare {
		cell := ""
		if previous != nil {
			cell = formatAmount(*previous, t.currency)
		}
		cells = append(cells, cell)
	}
	if t.percent {
		cell := ""
		if pct != nil {
			cell = pct.String()
		}
		cells = append(cells, cell)
	}
	t.write(cells)
}

func (t *table) row(r *report.Row, level int) {
	t.line(r.Label, level, r.Amounts, r.Total, &r.Previous, &r.Percent)
}

// section writes the visible rows of s under the collapse state.
func (t *table) section(s *report.Section, collapse report.CollapseState) {
	t.title(s.Title)
	for _, d := range report.Display(s.Rows, collapse) {
		amounts, total := d.Amounts()
		label := d.Label
		if d.Collapsed {
			label += " [+]"
		}
		// A header carries the parent's own lines; its rollup figures
		// belong to the total row that follows the children.
		previous, pct := &d.Row.Previous, &d.Row.Percent
		if d.Kind == report.KindHeader {
			previous, pct = nil, nil
		}
		t.line(label, d.Level+1, amounts, total, previous, pct)
	}
	t.row(&s.Total, 0)
}

func (t *table) write(cells []string) {
	fmt.Fprintln(t.tw, strings.Join(cells, "\t")+"\t")
}

func (t *table) flush() error { return t.tw.Flush() }

func renderProfitAndLoss(w io.Writer, p *report.ProfitAndLoss, currency string, collapse report.CollapseState) error {
	fmt.Fprintf(w, "Profit & Loss  %s\n", p.Period)
	if p.NoData {
		fmt.Fprintln(w, "No data for this period.")
		return nil
	}
	if p.PreviousPeriod != "" {
		fmt.Fprintf(w, "Compared with  %s\n", p.PreviousPeriod)
	}
	fmt.Fprintln(w)

	t := newTable(w, currency, p.Columns, "Total", p.PreviousPeriod != "", true)
	t.header("Account")
	t.section(&p.Revenue, collapse)
	t.section(&p.COGS, collapse)
	t.row(&p.GrossProfit, 0)
	t.section(&p.Expenses, collapse)
	t.row(&p.NetIncome, 0)
	return t.flush()
}

func renderBalanceSheet(w io.Writer, b *report.BalanceSheet, currency string, collapse report.CollapseState) error {
	fmt.Fprintf(w, "Balance Sheet  as of %s\n", b.AsOf)
	if b.NoData {
		fmt.Fprintln(w, "No data for this period.")
		return nil
	}
	if b.Previous != "" {
		fmt.Fprintf(w, "Compared with  %s\n", b.Previous)
	}
	fmt.Fprintln(w)

	t := newTable(w, currency, b.Columns, b.AsOf, b.Previous != "", false)
	t.header("Account")
	t.section(&b.Assets, collapse)
	t.section(&b.Liabilities, collapse)
	t.section(&b.Equity, collapse)
	t.row(&b.TotalLiabilitiesAndEquity, 0)
	if err := t.flush(); err != nil {
		return err
	}
	if !b.Difference.IsZero() {
		fmt.Fprintf(w, "\nAssets differ from liabilities and equity by %s\n", formatAmount(b.Difference, currency))
	}
	return nil
}

func renderCashFlow(w io.Writer, cf *report.CashFlow, currency string) error {
	fmt.Fprintf(w, "Cash Flow  %s\n", cf.Period)
	if cf.NoData {
		fmt.Fprintln(w, "No data for this period.")
		return nil
	}
	if cf.PreviousPeriod != "" {
		fmt.Fprintf(w, "Compared with  %s\n", cf.PreviousPeriod)
	}
	fmt.Fprintln(w)

	t := newTable(w, currency, cf.Columns, "Total", cf.PreviousPeriod != "", false)
	t.header("")
	for _, act := range cf.Activities() {
		t.title(act.Title)
		for i := range act.Rows {
			t.row(&act.Rows[i], 1)
		}
	}
	return t.flush()
}

func renderDrilldown(w io.Writer, d *report.Drilldown, currency string) error {
	fmt.Fprintf(w, "%d %s  %s\n\n", d.AccountID, d.Label, d.Period)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Date\tLine\tAccount\tDescription\tAmount\tBalance\t")
	for _, l := range d.Lines {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t\n",
			l.Date.Format(period.DateFormat), l.ID, l.AccountName, l.Description,
			formatAmount(l.Amount, currency), formatAmount(l.Balance, currency))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "\n%d lines, total %s\n", len(d.Lines), formatAmount(d.Total, currency))
	return nil
}
