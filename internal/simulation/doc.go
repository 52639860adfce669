// Package simulation drives the inventory engine one simulated day at a time.
//
// A Simulator owns a copy of the caller's items and a logical day Clock.
// Each Step calls inventory.AdvanceOneDay exactly once and records a
// Snapshot of the result. Day numbers come from the Clock, never from wall
// time, so two runs over the same starting inventory produce identical
// snapshots and identical digests.
//
// Snapshots render to the classic daily text report with WriteReport:
//
//	-------- day 0 --------
//	name, sellIn, quality
//	+5 Dexterity Vest, 10, 20
//	Aged Brie, 2, 0
//
// A Simulator is not safe for concurrent use.
package simulation
