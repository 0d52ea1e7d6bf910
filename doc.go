// Package genarena provides a generational slot arena with O(1) isolated
// snapshots.
//
// Values are stored behind small, copyable Index handles. Deleting through
// one handle can never make another handle resolve to the wrong value: each
// slot carries a generation counter that is bumped on removal and validated
// on every access, which defeats the ABA problem that plagues plain
// index-into-slice designs (slot reused, stale index silently reads the new
// occupant).
//
// The backing table is an immutable, structurally shared vector, so taking
// a snapshot of the whole arena costs O(1) and the snapshot is permanently
// isolated from later mutation of either side:
//
//	arena := genarena.NewStandard[string]()
//	rza := arena.Insert("Robert Fitzgerald Diggs")
//	gza := arena.Insert("Gary Grice")
//
//	snap := arena.Clone() // O(1), shares all table structure
//
//	arena.Set(rza, "The RZA")
//	arena.TryRemove(gza)
//
//	snap.MustGet(rza) // still "Robert Fitzgerald Diggs"
//	snap.Contains(gza) // still true
//
// # Choosing counter widths
//
// Arena is generic over the slot and generation integer types. Wider
// counters tolerate more churn; narrower ones shrink every handle and
// slot. A slot whose generation counter reaches its maximum is permanently
// retired instead of reused, so generations never repeat regardless of
// width. The presets cover the useful points: Standard (uint32 slots,
// uint64 generations) for almost everything, Large, Small, and Tiny for
// the extremes.
//
// # Concurrency
//
// A single Arena value is single-writer: wrap it in a lock if multiple
// goroutines mutate it. Snapshots need no locking at all — nothing can
// mutate a snapshot's view once taken, so any number of goroutines may
// read or ParallelEach over it concurrently.
package genarena
