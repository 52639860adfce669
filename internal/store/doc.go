// Package store provides SQLite-backed storage for simulation runs.
//
// A run records the inventory at every simulated day:
//   - runs: one row per simulation, ordered by a logical seq
//   - snapshots: one row per (run, day) with the snapshot digest
//   - item_states: one row per item per day, in report order
//
// Writes are idempotent. Rewriting a stored day with identical content is a
// no-op; rewriting it with different content fails with ErrDigestMismatch.
//
// All queries order by seq, day and position, never by wall time, so reads
// are deterministic.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
