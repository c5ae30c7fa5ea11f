package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cleared-dev/statements/internal/period"
	"github.com/cleared-dev/statements/internal/report"
	"github.com/cleared-dev/statements/internal/reportlog"
	"github.com/cleared-dev/statements/internal/rollup"
)

// Statement kinds accepted by "report".
const (
	kindPnL      = "pnl"
	kindBalance  = "balance"
	kindCashFlow = "cashflow"
)

var statementKinds = []string{kindPnL, kindBalance, kindCashFlow}

// built is a computed statement ready to print.
type built struct {
	kind  string
	value any
	rows  int
	start string
	end   string
	text  func(w io.Writer, currency string, collapse report.CollapseState) error
}

func buildStatement(ctx context.Context, kind string, agg *rollup.Aggregator, opts report.Options) (*built, error) {
	switch kind {
	case kindPnL:
		p, err := report.BuildProfitAndLoss(ctx, agg, opts)
		if err != nil {
			return nil, err
		}
		return &built{
			kind:  kind,
			value: p,
			rows:  report.CountRows(p.Sections()...),
			start: dateOf(opts.Range.Start),
			end:   dateOf(opts.Range.End),
			text: func(w io.Writer, cur string, c report.CollapseState) error {
				return renderProfitAndLoss(w, p, cur, c)
			},
		}, nil
	case kindBalance:
		b, err := report.BuildBalanceSheet(ctx, agg, opts)
		if err != nil {
			return nil, err
		}
		return &built{
			kind:  kind,
			value: b,
			rows:  report.CountRows(b.Sections()...),
			end:   dateOf(opts.Range.End),
			text: func(w io.Writer, cur string, c report.CollapseState) error {
				return renderBalanceSheet(w, b, cur, c)
			},
		}, nil
	case kindCashFlow:
		cf, err := report.BuildCashFlow(ctx, agg, opts)
		if err != nil {
			return nil, err
		}
		rows := 0
		for _, act := range cf.Activities() {
			rows += len(act.Rows)
		}
		return &built{
			kind:  kind,
			value: cf,
			rows:  rows,
			start: dateOf(opts.Range.Start),
			end:   dateOf(opts.Range.End),
			text: func(w io.Writer, cur string, _ report.CollapseState) error {
				return renderCashFlow(w, cf, cur)
			},
		}, nil
	default:
		return nil, fmt.Errorf("unknown report %q", kind)
	}
}

func dateOf(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(period.DateFormat)
}

func newReportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate financial statements",
	}
	cmd.AddCommand(
		newStatementCommand(kindPnL, "Profit and loss over a period"),
		newStatementCommand(kindBalance, "Balance sheet as of the period end"),
		newStatementCommand(kindCashFlow, "Cash flow over a period"),
		newReportAllCommand(),
	)
	return cmd
}

func newStatementCommand(kind, short string) *cobra.Command {
	var flags reportFlags
	cmd := &cobra.Command{
		Use:   kind,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReports(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), &flags, []string{kind})
		},
	}
	flags.register(cmd)
	return cmd
}

func newReportAllCommand() *cobra.Command {
	var flags reportFlags
	cmd := &cobra.Command{
		Use:   "all",
		Short: "Profit and loss, balance sheet and cash flow together",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReports(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), &flags, statementKinds)
		},
	}
	flags.register(cmd)
	return cmd
}

// runReports builds the requested statements concurrently, each with its own
// aggregator over the shared read-only indexes, then prints them in order.
func runReports(ctx context.Context, stdout, stderr io.Writer, flags *reportFlags, kinds []string) error {
	p, err := loadProject(ctx, flags.repo, stderr)
	if err != nil {
		return err
	}
	defer func() { _ = p.log.Sync() }()

	opts, err := flags.options(p)
	if err != nil {
		return err
	}

	results := make([]*built, len(kinds))
	g, gctx := errgroup.WithContext(ctx)
	for i, kind := range kinds {
		i, kind := i, kind
		g.Go(func() error {
			b, err := buildStatement(gctx, kind, p.aggregator(), opts)
			if err != nil {
				return fmt.Errorf("building %s: %w", kind, err)
			}
			results[i] = b
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if err := printResults(stdout, p, flags, results); err != nil {
		return err
	}

	now := time.Now().UTC()
	entries := make([]reportlog.Entry, len(results))
	for i, b := range results {
		entries[i] = reportlog.Entry{
			Timestamp: now,
			Report:    b.kind,
			Start:     b.start,
			End:       b.end,
			Rows:      b.rows,
			Company:   p.company(),
			Commit:    p.commit,
		}
	}
	if err := reportlog.Append(p.root, entries); err != nil {
		p.log.Warn("appending report log", zap.Error(err))
	}
	return nil
}

func printResults(w io.Writer, p *project, flags *reportFlags, results []*built) error {
	if flags.json {
		if len(results) == 1 {
			return writeJSON(w, results[0].value)
		}
		all := make(map[string]any, len(results))
		for _, b := range results {
			all[b.kind] = b.value
		}
		return writeJSON(w, all)
	}

	collapse := report.NewCollapseState(flags.collapse...)
	for i, b := range results {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if err := b.text(w, p.cfg.Report.Currency, collapse); err != nil {
			return fmt.Errorf("rendering %s: %w", b.kind, err)
		}
	}
	return nil
}
