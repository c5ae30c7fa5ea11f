package report

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/statements/internal/rollup"
)

// CollapseState is the set of collapsed account IDs of a report session.
// It only affects which rows are shown.
type CollapseState map[int]bool

// NewCollapseState returns a state with ids collapsed.
func NewCollapseState(ids ...int) CollapseState {
	c := make(CollapseState, len(ids))
	for _, id := range ids {
		c[id] = true
	}
	return c
}

// Collapsed reports whether id is collapsed.
func (c CollapseState) Collapsed(id int) bool { return c[id] }

// Toggle flips the collapse state of id.
func (c CollapseState) Toggle(id int) {
	if c[id] {
		delete(c, id)
		return
	}
	c[id] = true
}

// IDs returns the collapsed IDs in ascending order.
func (c CollapseState) IDs() []int {
	out := make([]int, 0, len(c))
	for id := range c {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// RowKind tells renderers how to draw a display row.
type RowKind int

const (
	// KindLine is a leaf or collapsed account showing its rollup.
	KindLine RowKind = iota
	// KindHeader opens an expanded parent and shows its own lines only.
	KindHeader
	// KindTotal closes an expanded parent with its rollup.
	KindTotal
)

// DisplayRow is one visible line. It points at the precomputed Row and
// never carries figures of its own making.
type DisplayRow struct {
	Row       *Row
	Kind      RowKind
	Label     string
	Level     int
	Collapsed bool
}

// Amounts returns the figures the row shows: the account's own lines for a
// header, the rollup otherwise.
func (d DisplayRow) Amounts() (rollup.Series, decimal.Decimal) {
	if d.Kind == KindHeader {
		return d.Row.DirectAmounts, d.Row.Direct
	}
	return d.Row.Amounts, d.Row.Total
}

// Display flattens rows into visible lines. A collapsed parent is a single
// line with its rollup; an expanded parent is a header, its children and a
// total line.
func Display(rows []Row, collapse CollapseState) []DisplayRow {
	var out []DisplayRow
	for i := range rows {
		out = appendDisplay(out, &rows[i], collapse)
	}
	return out
}

func appendDisplay(out []DisplayRow, row *Row, collapse CollapseState) []DisplayRow {
	if len(row.Children) == 0 {
		return append(out, DisplayRow{Row: row, Kind: KindLine, Label: row.Label, Level: row.Level})
	}
	if collapse.Collapsed(row.AccountID) {
		return append(out, DisplayRow{Row: row, Kind: KindLine, Label: row.Label, Level: row.Level, Collapsed: true})
	}
	out = append(out, DisplayRow{Row: row, Kind: KindHeader, Label: row.Label, Level: row.Level})
	for i := range row.Children {
		out = appendDisplay(out, &row.Children[i], collapse)
	}
	return append(out, DisplayRow{Row: row, Kind: KindTotal, Label: "Total " + row.Label, Level: row.Level})
}
