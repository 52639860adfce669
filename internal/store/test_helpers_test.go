package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/roach88/gildedrose/internal/simulation"
)

// createTestStore creates a new file-backed store in a temp directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// simulateDefault runs the default inventory for the given number of days.
func simulateDefault(t *testing.T, days int) []simulation.Snapshot {
	t.Helper()
	snapshots, err := simulation.New(simulation.DefaultInventory()).Run(context.Background(), days)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	return snapshots
}
