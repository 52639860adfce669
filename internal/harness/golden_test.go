package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunWithGolden_SingleDayRules(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/single_day_rules.yaml")
	require.NoError(t, err)

	// First run with -update to create golden file:
	//   go test ./internal/harness -run TestRunWithGolden_SingleDayRules -update
	result, err := RunWithGolden(t, scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestRunWithGolden_ConjuredFloor(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/conjured_floor.yaml")
	require.NoError(t, err)

	result, err := RunWithGolden(t, scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestReport_MatchesDayCount(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/backstage_countdown.cue")
	require.NoError(t, err)

	result, err := Run(scenario)
	require.NoError(t, err)

	report, err := Report(result)
	require.NoError(t, err)
	assert.Contains(t, string(report), "-------- day 12 --------\n")
	assert.Contains(t, string(report), "Backstage passes to a TAFKAL80ETC concert, -1, 0\n")
}
