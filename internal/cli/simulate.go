package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/gildedrose/internal/harness"
	"github.com/roach88/gildedrose/internal/simulation"
	"github.com/roach88/gildedrose/internal/store"
)

// DefaultDays is the number of days simulated when neither --days nor a
// scenario file says otherwise.
const DefaultDays = 2

// SimulateOptions holds flags for the simulate command.
type SimulateOptions struct {
	*RootOptions
	Days     int
	Database string

	// RunIDs allows overriding the run ID generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	RunIDs simulation.RunIDGenerator
}

// SimulateResult is the JSON payload of the simulate command.
type SimulateResult struct {
	RunID     string                `json:"run_id,omitempty"`
	Name      string                `json:"name"`
	Days      int                   `json:"days"`
	Snapshots []simulation.Snapshot `json:"snapshots"`
}

// NewSimulateCommand creates the simulate command.
func NewSimulateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SimulateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "simulate [scenario-file]",
		Short: "Print the inventory day by day",
		Long: `Simulate the inventory one day at a time and print every day.

Without a scenario file the standard demo inventory is used. With one, its
items are simulated for its configured number of days unless --days is set.
Expectations in the scenario are ignored; use "test" to check them.

With --db, every day is stored under a new run ID for later history and
replay.

Examples:
  gildedrose simulate
  gildedrose simulate --days 30
  gildedrose simulate ./scenarios/brie.yaml --db ./runs.db
  gildedrose simulate --format json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(opts, args, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Days, "days", DefaultDays, "number of days to simulate")
	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database to store the run")

	return cmd
}

func runSimulate(opts *SimulateOptions, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())
	logger := formatter.Logger()

	name := "default"
	items := simulation.DefaultInventory()
	days := opts.Days

	if len(args) == 1 {
		scenario, err := harness.LoadScenario(args[0])
		if err != nil {
			_ = formatter.Error(ErrCodeLoadFailed, err.Error(), nil)
			return WrapExitError(ExitCommandError, "failed to load scenario", err)
		}
		name = scenario.Name
		items = scenario.Items
		if !cmd.Flags().Changed("days") {
			days = scenario.Days
		}
	}

	if days < 0 {
		msg := fmt.Sprintf("days must be non-negative, got %d", days)
		_ = formatter.Error(ErrCodeGeneric, msg, nil)
		return NewExitError(ExitCommandError, msg)
	}

	logger.Debug("simulating", "name", name, "items", len(items), "days", days)
	sim := simulation.New(items, simulation.WithLogger(logger))
	snapshots, err := sim.Run(commandContext(cmd), days)
	if err != nil {
		return WrapExitError(ExitFailure, "simulation interrupted", err)
	}

	result := SimulateResult{Name: name, Days: days, Snapshots: snapshots}

	if opts.Database != "" {
		runID, err := persistRun(opts, cmd, name, days, snapshots)
		if err != nil {
			_ = formatter.Error(ErrCodeStoreFailed, err.Error(), nil)
			return WrapExitError(ExitCommandError, "failed to store run", err)
		}
		result.RunID = runID
		logger.Info("run stored", "run_id", runID, "db", opts.Database, "days", days)
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}
	return simulation.WriteReport(cmd.OutOrStdout(), snapshots)
}

// persistRun stores the snapshots under a freshly generated run ID.
func persistRun(opts *SimulateOptions, cmd *cobra.Command, name string, days int, snapshots []simulation.Snapshot) (string, error) {
	st, err := store.Open(opts.Database)
	if err != nil {
		return "", err
	}
	defer st.Close()

	gen := opts.RunIDs
	if gen == nil {
		gen = simulation.UUIDv7Generator{}
	}

	ctx := commandContext(cmd)
	run, err := st.WriteRun(ctx, store.Run{ID: gen.Generate(), Name: name, Days: days})
	if err != nil {
		return "", err
	}
	if err := st.WriteSnapshots(ctx, run.ID, snapshots); err != nil {
		return "", err
	}
	return run.ID, nil
}

// commandContext returns the command's context, or Background when the
// command was executed without one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
