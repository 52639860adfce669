package cli

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/gildedrose/internal/inventory"
	"github.com/roach88/gildedrose/internal/simulation"
)

// tamper runs a statement directly against the database file.
func tamper(t *testing.T, dbPath, query string, args ...any) {
	t.Helper()
	db, err := sql.Open("sqlite3", dbPath)
	require.NoError(t, err)
	defer db.Close()

	res, err := db.Exec(query, args...)
	require.NoError(t, err)
	n, err := res.RowsAffected()
	require.NoError(t, err)
	require.Positive(t, n)
}

func TestReplay_Deterministic(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	runID := simulateToDB(t, dbPath, "5")

	out, _, err := executeCommand(t, "replay", "--db", dbPath, runID)
	require.NoError(t, err)
	assert.Equal(t, "✓ run "+runID+" replayed 5 day(s) deterministically\n", out)
}

func TestReplay_DeterministicJSON(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	runID := simulateToDB(t, dbPath, "3")

	out, _, err := executeCommand(t, "replay", "--db", dbPath, runID, "--format", "json")
	require.NoError(t, err)

	var result ReplayResult
	resp := decodeResponse(t, out, &result)
	assert.Equal(t, "ok", resp.Status)
	assert.True(t, result.Deterministic)
	assert.Equal(t, 3, result.Days)
	assert.Empty(t, result.Divergences)
}

func TestReplay_ZeroDays(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	runID := simulateToDB(t, dbPath, "0")

	out, _, err := executeCommand(t, "replay", "--db", dbPath, runID)
	require.NoError(t, err)
	assert.Contains(t, out, "replayed 0 day(s)")
}

func TestReplay_TamperedItems(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	runID := simulateToDB(t, dbPath, "2")

	tamper(t, dbPath, `UPDATE item_states SET quality = quality + 1 WHERE run_id = ? AND day = 1 AND position = 0`, runID)

	out, _, err := executeCommand(t, "replay", "--db", dbPath, runID)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ run "+runID+" diverged on 1 day(s)")
	assert.Contains(t, out, "day 1: stored items do not match stored digest")
}

func TestReplay_RewrittenHistory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	runID := simulateToDB(t, dbPath, "2")

	// Rewrite day 2 consistently so only the replay can tell.
	items := simulation.DefaultInventory()
	inventory.AdvanceOneDay(items)
	inventory.AdvanceOneDay(items)
	items[0].Quality = 49
	digest, err := simulation.NewSnapshot(2, items).Digest()
	require.NoError(t, err)

	tamper(t, dbPath, `UPDATE item_states SET quality = 49 WHERE run_id = ? AND day = 2 AND position = 0`, runID)
	tamper(t, dbPath, `UPDATE snapshots SET digest = ? WHERE run_id = ? AND day = 2`, digest, runID)

	out, _, err := executeCommand(t, "replay", "--db", dbPath, runID, "--format", "json")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var result ReplayResult
	resp := decodeResponse(t, out, &result)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeReplayFailed, resp.Error.Code)
	assert.False(t, result.Deterministic)
	require.Len(t, result.Divergences, 1)
	assert.Equal(t, 2, result.Divergences[0].Day)
	assert.Equal(t, "replayed inventory differs", result.Divergences[0].Reason)
	assert.Equal(t, digest, result.Divergences[0].Stored)
	assert.NotEqual(t, digest, result.Divergences[0].Replayed)
}

func TestReplay_UnknownRun(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	simulateToDB(t, dbPath, "1")

	out, _, err := executeCommand(t, "replay", "--db", dbPath, "no-such-run")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E002]")
}

func TestReplay_MissingDatabase(t *testing.T) {
	_, _, err := executeCommand(t, "replay", "--db", filepath.Join(t.TempDir(), "missing.db"), "run")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
