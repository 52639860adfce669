package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/gildedrose/internal/simulation"
)

// Run is a stored simulation run.
type Run struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Days int    `json:"days"`

	// Seq orders runs logically. Assigned by WriteRun.
	Seq int64 `json:"seq"`
}

// WriteRun inserts a run and assigns it the next seq.
// Writing an existing ID is a no-op that returns the stored run.
func (s *Store) WriteRun(ctx context.Context, run Run) (Run, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, fmt.Errorf("write run: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	existing, err := readRun(ctx, tx, run.ID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrRunNotFound) {
		return Run{}, fmt.Errorf("write run: %w", err)
	}

	var seq int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM runs`).Scan(&seq); err != nil {
		return Run{}, fmt.Errorf("write run: next seq: %w", err)
	}
	run.Seq = seq

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, name, days, seq)
		VALUES (?, ?, ?, ?)
	`, run.ID, run.Name, run.Days, run.Seq)
	if err != nil {
		return Run{}, fmt.Errorf("write run: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("write run: commit: %w", err)
	}
	return run, nil
}

// WriteSnapshot stores one day of a run: the digest row and every item state,
// atomically. The run must exist (foreign key constraint).
//
// Rewriting a day with the same digest is a no-op. A different digest for an
// already stored day returns ErrDigestMismatch.
func (s *Store) WriteSnapshot(ctx context.Context, runID string, snap simulation.Snapshot) error {
	digest, err := snap.Digest()
	if err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write snapshot: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	result, err := tx.ExecContext(ctx, `
		INSERT INTO snapshots (run_id, day, digest)
		VALUES (?, ?, ?)
		ON CONFLICT(run_id, day) DO NOTHING
	`, runID, snap.Day, digest)
	if err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("write snapshot: rows affected: %w", err)
	}
	if rows == 0 {
		var stored string
		err := tx.QueryRowContext(ctx, `
			SELECT digest FROM snapshots WHERE run_id = ? AND day = ?
		`, runID, snap.Day).Scan(&stored)
		if err != nil {
			return fmt.Errorf("write snapshot: read existing: %w", err)
		}
		if stored != digest {
			return fmt.Errorf("write snapshot: run %s day %d: %w", runID, snap.Day, ErrDigestMismatch)
		}
		return nil
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO item_states (run_id, day, position, name, sell_in, quality)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("write snapshot: prepare: %w", err)
	}
	defer stmt.Close()

	for i, item := range snap.Items {
		if _, err := stmt.ExecContext(ctx, runID, snap.Day, i, item.Name, item.SellIn, item.Quality); err != nil {
			return fmt.Errorf("write snapshot: item %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("write snapshot: commit: %w", err)
	}
	return nil
}

// WriteSnapshots stores every snapshot of a run in order.
func (s *Store) WriteSnapshots(ctx context.Context, runID string, snapshots []simulation.Snapshot) error {
	for _, snap := range snapshots {
		if err := s.WriteSnapshot(ctx, runID, snap); err != nil {
			return err
		}
	}
	return nil
}

// queryRower is satisfied by both *sql.DB and *sql.Tx.
type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
