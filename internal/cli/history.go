package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/gildedrose/internal/simulation"
	"github.com/roach88/gildedrose/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database string
}

// HistoryRun is the JSON payload for a single stored run.
type HistoryRun struct {
	store.Run
	Snapshots []store.StoredSnapshot `json:"snapshots"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "List stored runs or print one",
		Long: `List every run stored by "simulate --db", or print a single run's
daily report.

Examples:
  gildedrose history --db ./runs.db
  gildedrose history --db ./runs.db 0190f5a2-...
  gildedrose history --db ./runs.db --format json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runHistory(opts *HistoryOptions, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())
	ctx := commandContext(cmd)

	st, err := openExistingStore(opts.Database)
	if err != nil {
		_ = formatter.Error(ErrCodeStoreFailed, err.Error(), nil)
		return err
	}
	defer st.Close()

	if len(args) == 0 {
		runs, err := st.ListRuns(ctx)
		if err != nil {
			_ = formatter.Error(ErrCodeStoreFailed, err.Error(), nil)
			return WrapExitError(ExitCommandError, "failed to list runs", err)
		}
		if opts.Format == "json" {
			return formatter.Success(runs)
		}
		return writeRunTable(cmd, runs)
	}

	runID := args[0]
	run, err := st.ReadRun(ctx, runID)
	if errors.Is(err, store.ErrRunNotFound) {
		_ = formatter.Error(ErrCodeNotFound, err.Error(), nil)
		return WrapExitError(ExitCommandError, "unknown run", err)
	}
	if err != nil {
		_ = formatter.Error(ErrCodeStoreFailed, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to read run", err)
	}

	stored, err := st.ReadSnapshots(ctx, runID)
	if err != nil {
		_ = formatter.Error(ErrCodeStoreFailed, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to read snapshots", err)
	}

	if opts.Format == "json" {
		return formatter.Success(HistoryRun{Run: run, Snapshots: stored})
	}

	snapshots := make([]simulation.Snapshot, len(stored))
	for i, s := range stored {
		snapshots[i] = s.Snapshot
	}
	return simulation.WriteReport(cmd.OutOrStdout(), snapshots)
}

// writeRunTable prints runs as an aligned table.
func writeRunTable(cmd *cobra.Command, runs []store.Run) error {
	w := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs stored.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SEQ\tRUN ID\tNAME\tDAYS")
	for _, run := range runs {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\n", run.Seq, run.ID, run.Name, run.Days)
	}
	return tw.Flush()
}
