package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/statements/internal/period"
	"github.com/cleared-dev/statements/internal/report"
)

// reportFlags are shared by every report and drill-down command.
type reportFlags struct {
	repo     string
	preset   string
	from     string
	to       string
	asOf     string
	by       string
	collapse []int
	compare  bool
	json     bool
	today    string
}

func (f *reportFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.repo, "repo", ".", "repository directory")
	fl.StringVar(&f.preset, "preset", "", "period preset (default from statements.yaml)")
	fl.StringVar(&f.from, "from", "", "period start YYYY-MM-DD (requires --to)")
	fl.StringVar(&f.to, "to", "", "period end YYYY-MM-DD (requires --from)")
	fl.StringVar(&f.asOf, "as-of", "", "balance sheet date YYYY-MM-DD")
	fl.StringVar(&f.by, "by", "", "columns: month, quarter or total (default from statements.yaml)")
	fl.IntSliceVar(&f.collapse, "collapse", nil, "account IDs to show collapsed")
	fl.BoolVar(&f.compare, "compare", false, "add the previous period")
	fl.BoolVar(&f.json, "json", false, "print JSON instead of a table")
	fl.StringVar(&f.today, "today", "", "treat this date as today when resolving presets")
	_ = fl.MarkHidden("today")
}

// options resolves the flags against the project config into report options.
func (f *reportFlags) options(p *project) (report.Options, error) {
	today := time.Now()
	if f.today != "" {
		d, err := period.ParseDate(f.today)
		if err != nil {
			return report.Options{}, fmt.Errorf("--today: %w", err)
		}
		today = d
	}

	r, err := f.resolveRange(p, today)
	if err != nil {
		return report.Options{}, err
	}

	by := f.by
	if by == "" {
		by = p.cfg.Report.Granularity
	}
	g, err := period.ParseGranularity(by)
	if err != nil {
		return report.Options{}, err
	}

	return report.Options{
		Range:        r,
		Granularity:  g,
		Compare:      f.compare,
		BankAccounts: p.cfg.BankAccountIDs(),
		Log:          p.log,
	}, nil
}

func (f *reportFlags) resolveRange(p *project, today time.Time) (period.Range, error) {
	var r period.Range
	switch {
	case f.from != "" || f.to != "":
		from, err := parseOptionalDate("--from", f.from)
		if err != nil {
			return period.Range{}, err
		}
		to, err := parseOptionalDate("--to", f.to)
		if err != nil {
			return period.Range{}, err
		}
		if r, err = period.Manual(from, to); err != nil {
			return period.Range{}, err
		}
	default:
		name := f.preset
		if name == "" {
			name = p.cfg.Report.Preset
		}
		if name == "" {
			name = string(period.ThisYearToLastMonth)
		}
		preset, err := period.ParsePreset(name)
		if err != nil {
			return period.Range{}, err
		}
		fiscal, err := p.cfg.FiscalStartMonth()
		if err != nil {
			return period.Range{}, err
		}
		if r, err = (period.Resolver{Today: today, FiscalStart: fiscal}).Resolve(preset); err != nil {
			return period.Range{}, err
		}
	}

	if f.asOf != "" {
		asOf, err := period.ParseDate(f.asOf)
		if err != nil {
			return period.Range{}, fmt.Errorf("--as-of: %w", err)
		}
		r.End = asOf
	}
	return r, nil
}

func parseOptionalDate(flag, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	d, err := period.ParseDate(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", flag, err)
	}
	return d, nil
}

func parseAccountID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid account id %q", s)
	}
	return id, nil
}
