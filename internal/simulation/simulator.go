package simulation

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/gildedrose/internal/inventory"
)

// Simulator advances an inventory one day per Step.
type Simulator struct {
	items  []inventory.Item
	clock  *Clock
	logger *slog.Logger
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Simulator) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock resumes from an existing clock instead of day 0.
func WithClock(clock *Clock) Option {
	return func(s *Simulator) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// New creates a simulator over a copy of items.
func New(items []inventory.Item, opts ...Option) *Simulator {
	s := &Simulator{
		items:  copyItems(items),
		clock:  NewClock(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Day returns the last simulated day.
func (s *Simulator) Day() int {
	return s.clock.Current()
}

// Items returns a copy of the current inventory.
func (s *Simulator) Items() []inventory.Item {
	return copyItems(s.items)
}

// Snapshot returns the current inventory stamped with the current day.
func (s *Simulator) Snapshot() Snapshot {
	return NewSnapshot(s.clock.Current(), s.items)
}

// Step advances the inventory by exactly one day.
func (s *Simulator) Step() Snapshot {
	inventory.AdvanceOneDay(s.items)
	day := s.clock.Next()

	if s.logger.Enabled(context.Background(), slog.LevelDebug) {
		expired := 0
		for _, item := range s.items {
			if item.Category() != inventory.CategoryLegendary && item.Expired() {
				expired++
			}
		}
		s.logger.Debug("day advanced", "day", day, "items", len(s.items), "expired", expired)
	}

	return s.Snapshot()
}

// Run returns the current snapshot followed by one snapshot per simulated
// day. Cancellation is checked between days; on cancellation the snapshots
// produced so far are returned with the context error.
func (s *Simulator) Run(ctx context.Context, days int) ([]Snapshot, error) {
	if days < 0 {
		return nil, fmt.Errorf("days must be non-negative, got %d", days)
	}

	snapshots := make([]Snapshot, 0, days+1)
	snapshots = append(snapshots, s.Snapshot())

	for i := 0; i < days; i++ {
		if err := ctx.Err(); err != nil {
			s.logger.Info("simulation cancelled", "day", s.clock.Current(), "error", err)
			return snapshots, err
		}
		snapshots = append(snapshots, s.Step())
	}

	s.logger.Info("simulation finished", "days", days, "last_day", s.clock.Current())
	return snapshots, nil
}
