package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/gildedrose/internal/inventory"
	"github.com/roach88/gildedrose/internal/simulation"
)

func TestTest_AllPass(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "brie.yaml", brieScenario)
	writeFile(t, dir, "nested/wine.cue", `
name: "wine"
description: "Wine degrades"
days: 1
items: [{name: "Wine", sell_in: 1, quality: 4}]
expect: [{index: 0, sell_in: 0, quality: 3}]
`)

	out, _, err := executeCommand(t, "test", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ brie")
	assert.Contains(t, out, "✓ wine")
	assert.Contains(t, out, "Test Summary: 2 passed, 0 failed, 2 total")
}

func TestTest_Failure(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "wrong.yaml", `
name: wrong
description: "Wrong expectation"
days: 1
items: [{ name: "Wine", sell_in: 1, quality: 4 }]
expect: [{ index: 0, quality: 4 }]
`)

	out, _, err := executeCommand(t, "test", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ wrong")
	assert.Contains(t, out, "quality: expected 4, got 3")
}

func TestTest_LoadError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "broken.yaml", "name: [")

	out, _, err := executeCommand(t, "test", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ broken.yaml")
}

func TestTest_MissingDirectory(t *testing.T) {
	_, _, err := executeCommand(t, "test", filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestTest_NoScenarios(t *testing.T) {
	out, _, err := executeCommand(t, "test", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No scenarios found.")
}

func TestTest_Filter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "brie.yaml", brieScenario)
	writeFile(t, dir, "broken.yaml", "name: [")

	out, _, err := executeCommand(t, "test", dir, "--filter", "brie*")
	require.NoError(t, err)
	assert.Contains(t, out, "1 passed, 0 failed, 1 total")
}

func TestTest_GoldenUpdateAndCompare(t *testing.T) {
	dir := t.TempDir()
	scenarioPath := writeFile(t, dir, "brie.yaml", brieScenario)

	out, _, err := executeCommand(t, "test", dir, "--update")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ brie (golden updated)")

	golden, err := os.ReadFile(goldenFilePath(scenarioPath))
	require.NoError(t, err)
	assert.Contains(t, string(golden), "Aged Brie, -1, 4\n")

	// Golden files are not picked up as scenarios.
	_, _, err = executeCommand(t, "test", dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(goldenFilePath(scenarioPath), []byte("stale"), 0644))
	out, _, err = executeCommand(t, "test", dir)
	require.Error(t, err)
	assert.Contains(t, out, "report does not match golden file")
}

func TestTest_JSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "brie.yaml", brieScenario)

	out, _, err := executeCommand(t, "test", dir, "--format", "json")
	require.NoError(t, err)

	var result TestResult
	resp := decodeResponse(t, out, &result)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 1, result.Passed)
	assert.Equal(t, 1, result.Total)
}

func TestTest_JSONFailure(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "broken.cue", `name: "x`)

	out, _, err := executeCommand(t, "test", dir, "--format", "json")
	require.Error(t, err)

	var result TestResult
	resp := decodeResponse(t, out, &result)
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeTestFailed, resp.Error.Code)
	assert.Equal(t, 1, result.Failed)
}

func TestGoldenFilePath(t *testing.T) {
	assert.Equal(t, filepath.Join("scenarios", "golden", "brie.golden"), goldenFilePath(filepath.Join("scenarios", "brie.yaml")))
}

func TestWriteGoldenFile_MatchesReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "golden", "wine.golden")
	snapshots := []simulation.Snapshot{simulation.NewSnapshot(0, []inventory.Item{inventory.NewItem("Wine", 1, 4)})}

	var buf bytes.Buffer
	require.NoError(t, simulation.WriteReport(&buf, snapshots))
	require.NoError(t, writeGoldenFile(path, buf.Bytes()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "-------- day 0 --------\nname, sellIn, quality\nWine, 1, 4\n\n", string(data))
}
