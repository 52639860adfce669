package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/gildedrose/internal/inventory"
	"github.com/roach88/gildedrose/internal/simulation"
)

// StoredSnapshot is a snapshot together with the digest recorded at write time.
type StoredSnapshot struct {
	simulation.Snapshot
	Digest string `json:"digest"`
}

// ReadRun returns the run with the given ID, or ErrRunNotFound.
func (s *Store) ReadRun(ctx context.Context, id string) (Run, error) {
	return readRun(ctx, s.db, id)
}

func readRun(ctx context.Context, q queryRower, id string) (Run, error) {
	var run Run
	err := q.QueryRowContext(ctx, `
		SELECT id, name, days, seq FROM runs WHERE id = ?
	`, id).Scan(&run.ID, &run.Name, &run.Days, &run.Seq)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return Run{}, fmt.Errorf("read run: %w", err)
	}
	return run, nil
}

// ListRuns returns every stored run ordered by seq.
// Returns an empty slice (not nil) when nothing is stored.
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, days, seq
		FROM runs
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.Name, &run.Days, &run.Seq); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// ReadSnapshots returns every stored day of a run in day order, each with
// its items in report order. Returns ErrRunNotFound for an unknown run.
func (s *Store) ReadSnapshots(ctx context.Context, runID string) ([]StoredSnapshot, error) {
	if _, err := s.ReadRun(ctx, runID); err != nil {
		return nil, err
	}

	snapshots, err := s.readDigests(ctx, runID)
	if err != nil {
		return nil, err
	}

	index := make(map[int]int, len(snapshots))
	for i, snap := range snapshots {
		index[snap.Day] = i
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT day, name, sell_in, quality
		FROM item_states
		WHERE run_id = ?
		ORDER BY day ASC, position ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query item states: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var day int
		var item inventory.Item
		if err := rows.Scan(&day, &item.Name, &item.SellIn, &item.Quality); err != nil {
			return nil, fmt.Errorf("scan item state: %w", err)
		}
		i, ok := index[day]
		if !ok {
			return nil, fmt.Errorf("item state for run %s day %d has no snapshot", runID, day)
		}
		snapshots[i].Items = append(snapshots[i].Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate item states: %w", err)
	}

	return snapshots, nil
}

// readDigests returns the snapshot rows of a run with empty item lists.
func (s *Store) readDigests(ctx context.Context, runID string) ([]StoredSnapshot, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT day, digest
		FROM snapshots
		WHERE run_id = ?
		ORDER BY day ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	snapshots := []StoredSnapshot{}
	for rows.Next() {
		var snap StoredSnapshot
		if err := rows.Scan(&snap.Day, &snap.Digest); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		snap.Items = []inventory.Item{}
		snapshots = append(snapshots, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshots: %w", err)
	}
	return snapshots, nil
}
