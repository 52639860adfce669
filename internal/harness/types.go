package harness

import (
	"fmt"

	"github.com/roach88/gildedrose/internal/simulation"
)

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when every expectation matched.
	Pass bool `json:"pass"`

	// Days holds the starting snapshot followed by one snapshot per day.
	Days []simulation.Snapshot `json:"days"`

	// Errors contains one message per failed expectation.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Days:   []simulation.Snapshot{},
		Errors: []string{},
	}
}

// AddError records a failure and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Final returns the last simulated snapshot.
func (r *Result) Final() simulation.Snapshot {
	if len(r.Days) == 0 {
		return simulation.Snapshot{}
	}
	return r.Days[len(r.Days)-1]
}

// ExpectationError describes a single mismatched expectation.
type ExpectationError struct {
	Index    int    // Position of the expectation in the scenario
	Day      int    // Day that was checked
	Item     string // Item name at that position
	Field    string // "name", "sell_in" or "quality"
	Expected string
	Actual   string
}

// Error implements the error interface.
func (e *ExpectationError) Error() string {
	return fmt.Sprintf("expect[%d]: day %d %q %s: expected %s, got %s",
		e.Index, e.Day, e.Item, e.Field, e.Expected, e.Actual)
}
