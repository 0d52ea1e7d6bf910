package genarena

import (
	"cmp"
	"fmt"
)

// Uint is the set of integer types usable as slot or generation counters.
//
// Narrower types shrink Index and per-slot overhead at the cost of churn
// tolerance: a slot whose generation counter reaches the maximum value of G
// is permanently retired, and a table can never address more slots than S
// can represent.
type Uint interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint
}

// maxOf returns the largest value representable by V.
func maxOf[V Uint]() V {
	return ^V(0)
}

// Index is an opaque handle to a value stored in an Arena.
//
// An Index pairs a slot position with the generation the value was inserted
// under; it carries no reference to any particular arena and is only
// meaningful against the arena lineage that issued it (the issuing arena or
// any of its clones). Indices are comparable with == and usable directly as
// map keys.
type Index[S Uint, G Uint] struct {
	slot S
	gen  G
}

// IndexFromRaw reassembles an index from its raw parts, as previously
// obtained from Raw. Feeding it anything else forfeits the stale-handle
// guarantee.
func IndexFromRaw[S Uint, G Uint](slot S, gen G) Index[S, G] {
	return Index[S, G]{slot: slot, gen: gen}
}

// Slot returns the slot position of the index.
func (i Index[S, G]) Slot() S { return i.slot }

// Generation returns the generation of the index.
func (i Index[S, G]) Generation() G { return i.gen }

// Raw returns the slot and generation as a tuple, for callers that need to
// persist or transmit handles.
func (i Index[S, G]) Raw() (S, G) { return i.slot, i.gen }

// Compare orders indices lexicographically by (slot, generation). It
// returns -1, 0, or +1 in the manner of cmp.Compare.
func (i Index[S, G]) Compare(other Index[S, G]) int {
	if c := cmp.Compare(i.slot, other.slot); c != 0 {
		return c
	}
	return cmp.Compare(i.gen, other.gen)
}

func (i Index[S, G]) String() string {
	return fmt.Sprintf("Index(%d, g%d)", uint64(i.slot), uint64(i.gen))
}
