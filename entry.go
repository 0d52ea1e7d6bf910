package genarena

// slotState tags the active variant of an entry.
type slotState uint8

const (
	// slotOccupied: value holds an element inserted under gen.
	slotOccupied slotState = iota + 1
	// slotFree: the slot is on the free list. gen is the generation the
	// next occupant will carry; next/hasNext link to the rest of the list.
	slotFree
	// slotRetired: the generation counter is exhausted. The slot never
	// re-enters the free list, so no generation can repeat.
	slotRetired
)

// entry is the per-slot storage cell of the arena table.
//
// In either live variant, gen is the generation that the next successful
// lookup validates against (occupied) or that the next occupant is
// assigned (free). Generations start at 1; 0 never appears in a live
// entry.
type entry[T any, S Uint, G Uint] struct {
	state   slotState
	gen     G
	value   T
	next    S
	hasNext bool
}
