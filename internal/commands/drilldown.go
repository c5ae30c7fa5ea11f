package commands

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cleared-dev/statements/internal/report"
	"github.com/cleared-dev/statements/internal/reportlog"
)

func newDrilldownCommand() *cobra.Command {
	var flags reportFlags
	cmd := &cobra.Command{
		Use:   "drilldown <account-id>",
		Short: "List the ledger lines behind an account's total",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseAccountID(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			p, err := loadProject(ctx, flags.repo, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer func() { _ = p.log.Sync() }()

			opts, err := flags.options(p)
			if err != nil {
				return err
			}
			d, err := report.BuildDrilldown(p.aggregator(), id, opts.Range)
			if err != nil {
				return err
			}

			if flags.json {
				err = writeJSON(cmd.OutOrStdout(), d)
			} else {
				err = renderDrilldown(cmd.OutOrStdout(), d, p.cfg.Report.Currency)
			}
			if err != nil {
				return err
			}

			entry := reportlog.Entry{
				Timestamp: time.Now().UTC(),
				Report:    "drilldown",
				Start:     dateOf(opts.Range.Start),
				End:       dateOf(opts.Range.End),
				Rows:      len(d.Lines),
				Company:   p.company(),
				Commit:    p.commit,
			}
			if err := reportlog.Append(p.root, []reportlog.Entry{entry}); err != nil {
				p.log.Warn("appending report log", zap.Error(err))
			}
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}
