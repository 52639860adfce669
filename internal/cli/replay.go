package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/gildedrose/internal/simulation"
	"github.com/roach88/gildedrose/internal/store"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Database string
}

// ReplayDivergence describes one day whose replay does not match the store.
type ReplayDivergence struct {
	Day      int    `json:"day"`
	Stored   string `json:"stored"`
	Replayed string `json:"replayed"`
	Reason   string `json:"reason"`
}

// ReplayResult holds the outcome of replaying a stored run.
type ReplayResult struct {
	RunID         string             `json:"run_id"`
	Days          int                `json:"days"`
	Deterministic bool               `json:"deterministic"`
	Divergences   []ReplayDivergence `json:"divergences,omitempty"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay <run-id>",
		Short: "Re-simulate a stored run and verify determinism",
		Long: `Re-simulate a stored run from its day-0 inventory and compare the
digest of every replayed day with the digest stored at write time. Stored
item rows are also checked against their own digest.

Exit codes:
  0 - Every day matches
  1 - At least one day diverged
  2 - Command error (database or run not found, etc.)

Examples:
  gildedrose replay --db ./runs.db 0190f5a2-...
  gildedrose replay --db ./runs.db 0190f5a2-... --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runReplay(opts *ReplayOptions, runID string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())
	logger := formatter.Logger()
	ctx := commandContext(cmd)

	st, err := openExistingStore(opts.Database)
	if err != nil {
		_ = formatter.Error(ErrCodeStoreFailed, err.Error(), nil)
		return err
	}
	defer st.Close()

	stored, err := st.ReadSnapshots(ctx, runID)
	if errors.Is(err, store.ErrRunNotFound) {
		_ = formatter.Error(ErrCodeNotFound, err.Error(), nil)
		return WrapExitError(ExitCommandError, "unknown run", err)
	}
	if err != nil {
		_ = formatter.Error(ErrCodeStoreFailed, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to read snapshots", err)
	}
	if len(stored) == 0 || stored[0].Day != 0 {
		msg := fmt.Sprintf("run %s has no day-0 snapshot", runID)
		_ = formatter.Error(ErrCodeNotFound, msg, nil)
		return NewExitError(ExitCommandError, msg)
	}

	lastDay := stored[len(stored)-1].Day
	logger.Debug("replaying run", "run_id", runID, "days", lastDay)

	replayed, err := simulation.New(stored[0].Items, simulation.WithLogger(logger)).Run(ctx, lastDay)
	if err != nil {
		return WrapExitError(ExitFailure, "replay interrupted", err)
	}

	result := ReplayResult{RunID: runID, Days: lastDay}
	for _, snap := range stored {
		if d := compareDay(snap, replayed[snap.Day]); d != nil {
			result.Divergences = append(result.Divergences, *d)
		}
	}
	result.Deterministic = len(result.Divergences) == 0

	if opts.Format == "json" {
		if result.Deterministic {
			return formatter.Success(result)
		}
		msg := fmt.Sprintf("%d day(s) diverged", len(result.Divergences))
		if err := formatter.Failure(ErrCodeReplayFailed, msg, result); err != nil {
			return err
		}
		return NewExitError(ExitFailure, msg)
	}

	w := cmd.OutOrStdout()
	if result.Deterministic {
		fmt.Fprintf(w, "✓ run %s replayed %d day(s) deterministically\n", runID, lastDay)
		return nil
	}

	fmt.Fprintf(w, "✗ run %s diverged on %d day(s)\n", runID, len(result.Divergences))
	for _, d := range result.Divergences {
		fmt.Fprintf(w, "  day %d: %s (stored %s, replayed %s)\n", d.Day, d.Reason, d.Stored, d.Replayed)
	}
	return NewExitError(ExitFailure, fmt.Sprintf("%d day(s) diverged", len(result.Divergences)))
}

// compareDay checks a stored day against its own items and the replay.
func compareDay(stored store.StoredSnapshot, replayed simulation.Snapshot) *ReplayDivergence {
	replayedDigest, err := replayed.Digest()
	if err != nil {
		return &ReplayDivergence{Day: stored.Day, Stored: stored.Digest, Reason: err.Error()}
	}

	itemsDigest, err := stored.Snapshot.Digest()
	if err != nil {
		return &ReplayDivergence{Day: stored.Day, Stored: stored.Digest, Replayed: replayedDigest, Reason: err.Error()}
	}
	if itemsDigest != stored.Digest {
		return &ReplayDivergence{Day: stored.Day, Stored: stored.Digest, Replayed: replayedDigest, Reason: "stored items do not match stored digest"}
	}

	if replayedDigest != stored.Digest {
		return &ReplayDivergence{Day: stored.Day, Stored: stored.Digest, Replayed: replayedDigest, Reason: "replayed inventory differs"}
	}
	return nil
}

// openExistingStore opens a database that must already exist.
func openExistingStore(path string) (*store.Store, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, NewExitError(ExitCommandError, fmt.Sprintf("database not found: %s", path))
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	return st, nil
}
