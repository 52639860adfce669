package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/roach88/gildedrose/internal/simulation"
)

// Harness runs scenarios against a fresh simulator each time.
type Harness struct {
	logger *slog.Logger
}

// New creates a harness. A nil logger discards output.
func New(logger *slog.Logger) *Harness {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Harness{logger: logger}
}

// Run executes a scenario with a silent harness.
func Run(scenario *Scenario) (*Result, error) {
	return New(nil).Run(context.Background(), scenario)
}

// Run simulates the scenario's inventory for its configured days and checks
// every expectation. Expectation mismatches are reported in the Result, not
// as an error; the error is reserved for a run that could not complete.
func (h *Harness) Run(ctx context.Context, scenario *Scenario) (*Result, error) {
	sim := simulation.New(scenario.Items, simulation.WithLogger(h.logger))

	days, err := sim.Run(ctx, scenario.Days)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	result := NewResult()
	result.Days = days

	for i, e := range scenario.Expect {
		for _, mismatch := range checkExpectation(i, e, days, scenario.Days) {
			result.AddError(mismatch.Error())
		}
	}

	h.logger.Debug("scenario finished",
		"scenario", scenario.Name,
		"days", scenario.Days,
		"expectations", len(scenario.Expect),
		"pass", result.Pass,
	)
	return result, nil
}

// checkExpectation compares one expectation against the snapshot of its day.
func checkExpectation(index int, e Expectation, days []simulation.Snapshot, final int) []*ExpectationError {
	day := e.DayOr(final)
	if day < 0 || day >= len(days) {
		return []*ExpectationError{{
			Index:    index,
			Day:      day,
			Field:    "day",
			Expected: fmt.Sprintf("day in [0, %d]", len(days)-1),
			Actual:   strconv.Itoa(day),
		}}
	}

	items := days[day].Items
	if e.Index < 0 || e.Index >= len(items) {
		return []*ExpectationError{{
			Index:    index,
			Day:      day,
			Field:    "index",
			Expected: fmt.Sprintf("index in [0, %d)", len(items)),
			Actual:   strconv.Itoa(e.Index),
		}}
	}
	item := items[e.Index]

	var errs []*ExpectationError
	if e.Name != "" && e.Name != item.Name {
		errs = append(errs, &ExpectationError{
			Index: index, Day: day, Item: item.Name, Field: "name",
			Expected: strconv.Quote(e.Name), Actual: strconv.Quote(item.Name),
		})
	}
	if e.SellIn != nil && *e.SellIn != item.SellIn {
		errs = append(errs, &ExpectationError{
			Index: index, Day: day, Item: item.Name, Field: "sell_in",
			Expected: strconv.Itoa(*e.SellIn), Actual: strconv.Itoa(item.SellIn),
		})
	}
	if e.Quality != nil && *e.Quality != item.Quality {
		errs = append(errs, &ExpectationError{
			Index: index, Day: day, Item: item.Name, Field: "quality",
			Expected: strconv.Itoa(*e.Quality), Actual: strconv.Itoa(item.Quality),
		})
	}
	return errs
}
