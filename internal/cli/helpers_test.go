package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// rawResponse mirrors CLIResponse with an undecoded payload.
type rawResponse struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
	Error  *CLIError       `json:"error"`
}

// executeCommand runs the root command with args and captures both streams.
func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	cmd := NewRootCommand()
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// decodeResponse parses a JSON CLI response and, when target is non-nil,
// its data payload.
func decodeResponse(t *testing.T, out string, target any) rawResponse {
	t.Helper()
	var resp rawResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp), "output: %s", out)
	if target != nil {
		require.NoError(t, json.Unmarshal(resp.Data, target))
	}
	return resp
}

// writeFile writes content under dir, creating parent directories.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// simulateToDB stores a run of the default inventory and returns its ID.
func simulateToDB(t *testing.T, dbPath string, days string) string {
	t.Helper()
	out, _, err := executeCommand(t, "simulate", "--db", dbPath, "--days", days, "--format", "json")
	require.NoError(t, err)

	var result SimulateResult
	decodeResponse(t, out, &result)
	require.NotEmpty(t, result.RunID)
	return result.RunID
}

const brieScenario = `
name: brie
description: "Brie ages"
days: 3
items:
  - { name: "Aged Brie", sell_in: 2, quality: 0 }
expect:
  - { index: 0, sell_in: -1, quality: 4 }
`
