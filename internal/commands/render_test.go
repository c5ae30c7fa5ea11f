package commands

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/statements/internal/config"
	"github.com/cleared-dev/statements/internal/period"
	"github.com/cleared-dev/statements/internal/report"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		amount   string
		currency string
		want     string
	}{
		{"1234.5", "USD", "$1,234.50"},
		{"-700", "USD", "-$700.00"},
		{"0", "USD", "$0.00"},
		{"1000", "JPY", "¥1,000"},
		{"12.345", "???", "12.35"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatAmount(decimal.RequireFromString(tt.amount), tt.currency), tt.amount)
	}
}

func TestReportFlags_ResolveRange(t *testing.T) {
	p := &project{cfg: config.Default("Acme", "llc_single_member")}
	today := period.Day(2024, time.May, 20)

	tests := []struct {
		name  string
		flags reportFlags
		want  string
	}{
		{"config preset", reportFlags{}, "2024-01-01..2024-04-30"},
		{"flag preset", reportFlags{preset: "lastQuarter"}, "2024-01-01..2024-03-31"},
		{"manual", reportFlags{from: "2024-02-03", to: "2024-02-04"}, "2024-02-03..2024-02-04"},
		{"as-of overrides end", reportFlags{preset: "thisMonth", asOf: "2024-05-10"}, "2024-05-01..2024-05-10"},
	}
	for _, tt := range tests {
		r, err := tt.flags.resolveRange(p, today)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.want, r.String(), tt.name)
	}
}

func TestReportFlags_FiscalYear(t *testing.T) {
	cfg := config.Default("Acme", "llc_single_member")
	cfg.Fiscal.YearStart = "07-01"
	p := &project{cfg: cfg}

	f := reportFlags{preset: "thisYearToToday"}
	r, err := f.resolveRange(p, period.Day(2024, time.March, 3))
	require.NoError(t, err)
	assert.Equal(t, "2023-07-01..2024-03-03", r.String())
}

func TestParseAccountID(t *testing.T) {
	id, err := parseAccountID(" 4010 ")
	require.NoError(t, err)
	assert.Equal(t, 4010, id)

	for _, bad := range []string{"", "x", "-3", "0"} {
		_, err := parseAccountID(bad)
		assert.Error(t, err, bad)
	}
}

func TestTableSection_HeaderLeavesRollupCellsBlank(t *testing.T) {
	base := decimal.NewFromInt(400)
	rent := report.Row{AccountID: 2, Label: "Rent", Level: 1, Total: decimal.NewFromInt(90), Direct: decimal.NewFromInt(90)}
	rent.Percent = report.PercentageOf(rent.Total, base)
	parent := report.Row{
		AccountID: 1, Label: "Operating", Total: decimal.NewFromInt(100), Direct: decimal.NewFromInt(10),
		Previous: decimal.NewFromInt(70), Children: []report.Row{rent},
	}
	parent.Percent = report.PercentageOf(parent.Total, base)
	sec := report.Section{Title: "Expenses", Rows: []report.Row{parent}, Total: report.Row{Label: "Total Expenses", Total: parent.Total, Percent: parent.Percent}}

	var buf bytes.Buffer
	tb := newTable(&buf, "USD", []string{period.TotalToken}, "Total", true, true)
	tb.section(&sec, report.NewCollapseState())
	require.NoError(t, tb.flush())

	var header, total string
	for _, ln := range strings.Split(buf.String(), "\n") {
		switch strings.TrimSpace(strings.SplitN(strings.TrimSpace(ln), "  ", 2)[0]) {
		case "Operating":
			header = ln
		case "Total Operating":
			total = ln
		}
	}
	require.NotEmpty(t, header)
	assert.Contains(t, header, "$10.00")
	assert.NotContains(t, header, "%")
	assert.NotContains(t, header, "$70.00")
	assert.Contains(t, total, "25.0%")
	assert.Contains(t, total, "$70.00")
}
