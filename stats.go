package genarena

import (
	"github.com/RoaringBitmap/roaring/v2"
)

// Stats summarizes slot occupancy.
type Stats struct {
	Slots    uint64 // total slots ever created
	Occupied uint64 // slots holding a live value
	Free     uint64 // slots on the free list
	Retired  uint64 // slots permanently out of service
}

// Stats returns occupancy counters. O(1); maintained incrementally.
func (a *Arena[T, S, G]) Stats() Stats {
	slots := uint64(a.table.Len())
	occupied := uint64(a.length)
	retired := uint64(a.retired)
	return Stats{
		Slots:    slots,
		Occupied: occupied,
		Free:     slots - occupied - retired,
		Retired:  retired,
	}
}

// OccupiedSet returns a bitmap of the currently occupied slot positions.
// Callers use it to audit occupancy or diff churn between snapshots
// (bitmap AndNot of two clones yields the slots freed in between).
//
// Roaring bitmaps are keyed by uint32; presets with wider slots must stay
// below 2^32 slots to use this.
func (a *Arena[T, S, G]) OccupiedSet() *roaring.Bitmap {
	return a.slotSet(slotOccupied)
}

// RetiredSet returns a bitmap of the permanently retired slot positions.
// Retirement is otherwise silent; this is how reduced effective capacity is
// observed.
func (a *Arena[T, S, G]) RetiredSet() *roaring.Bitmap {
	return a.slotSet(slotRetired)
}

func (a *Arena[T, S, G]) slotSet(state slotState) *roaring.Bitmap {
	rb := roaring.New()
	for pos, e := range a.table.All() {
		if e.state == state {
			rb.Add(uint32(pos))
		}
	}
	return rb
}
