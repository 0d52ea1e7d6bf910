package genarena

import (
	"github.com/hupe1980/genarena/internal/pvec"
)

// Arena is a generational slot allocator with O(1) snapshots.
//
// Values are stored behind copyable Index handles. Every removal bumps the
// slot's generation, so a handle to a removed value can never resolve to a
// later occupant of the same slot. The backing table is an immutable,
// structurally shared vector: Clone copies three scalar fields and a table
// handle, never entries, and subsequent mutation of either side copies only
// the O(log n) path it touches.
//
// Mutation is single-writer: do not mutate one Arena value from multiple
// goroutines without external locking. Snapshots are immutable from the
// point of view of their holder and safe for unsynchronized concurrent
// reads.
type Arena[T any, S Uint, G Uint] struct {
	table    pvec.Vector[entry[T, S, G]]
	freeHead S
	hasFree  bool
	length   int
	retired  int
}

// New constructs an empty arena.
func New[T any, S Uint, G Uint]() *Arena[T, S, G] {
	return &Arena[T, S, G]{table: pvec.New[entry[T, S, G]]()}
}

// NewWithCapacity constructs an arena with n slots pre-created on the free
// list, so the first n inserts reuse slots instead of growing the table.
func NewWithCapacity[T any, S Uint, G Uint](n int) *Arena[T, S, G] {
	a := New[T, S, G]()
	a.Reserve(n)
	return a
}

// Reserve appends additional free slots to the table and chains them onto
// the head of the free list. Fresh slots start at generation 1.
func (a *Arena[T, S, G]) Reserve(additional int) {
	if additional <= 0 {
		return
	}
	start := a.table.Len()
	a.checkSlotWidth(start + additional - 1)
	oldHead, oldHas := a.freeHead, a.hasFree
	for i := 0; i < additional; i++ {
		e := entry[T, S, G]{state: slotFree, gen: 1}
		if i < additional-1 {
			e.next, e.hasNext = S(start+i+1), true
		} else {
			e.next, e.hasNext = oldHead, oldHas
		}
		a.table = a.table.Push(e)
	}
	a.freeHead, a.hasFree = S(start), true
}

// checkSlotWidth panics if slot cannot be represented by S. This fires only
// when a narrow-slot preset outgrows its address space; there is no way to
// hand out an Index for such a slot.
func (a *Arena[T, S, G]) checkSlotWidth(slot int) {
	if uint64(slot) > uint64(maxOf[S]()) {
		panic("genarena: slot address space exhausted")
	}
}

// Insert stores value and returns its index. The table grows if the free
// list is empty.
func (a *Arena[T, S, G]) Insert(value T) Index[S, G] {
	return a.InsertWith(func(Index[S, G]) T { return value })
}

// InsertWith reserves the index that the value will occupy, calls f with
// it, and commits the returned value. This enables self-referential values
// that embed their own handle. If f panics the arena is left unchanged.
func (a *Arena[T, S, G]) InsertWith(f func(Index[S, G]) T) Index[S, G] {
	if idx, ok := a.tryInsertWith(f); ok {
		return idx
	}
	slot := a.table.Len()
	a.checkSlotWidth(slot)
	idx := Index[S, G]{slot: S(slot), gen: 1}
	value := f(idx)
	a.table = a.table.Push(entry[T, S, G]{state: slotOccupied, gen: 1, value: value})
	a.length++
	return idx
}

// TryInsert stores value using existing free capacity only. It reports
// failure instead of growing the table.
func (a *Arena[T, S, G]) TryInsert(value T) (Index[S, G], bool) {
	return a.tryInsertWith(func(Index[S, G]) T { return value })
}

func (a *Arena[T, S, G]) tryInsertWith(f func(Index[S, G]) T) (Index[S, G], bool) {
	if !a.hasFree {
		return Index[S, G]{}, false
	}
	slot := a.freeHead
	e := a.table.Get(int(slot))
	if e.state != slotFree {
		panic("genarena: corrupt free list")
	}
	idx := Index[S, G]{slot: slot, gen: e.gen}
	value := f(idx)
	a.table = a.table.Set(int(slot), entry[T, S, G]{state: slotOccupied, gen: e.gen, value: value})
	a.freeHead, a.hasFree = e.next, e.hasNext
	a.length++
	return idx, true
}

// Get returns the value behind i, if i is still live.
func (a *Arena[T, S, G]) Get(i Index[S, G]) (T, bool) {
	var zero T
	e, ok := a.occupied(i)
	if !ok {
		return zero, false
	}
	return e.value, true
}

// MustGet is like Get but panics on a dead index.
func (a *Arena[T, S, G]) MustGet(i Index[S, G]) T {
	v, ok := a.Get(i)
	if !ok {
		panic("genarena: no element at " + i.String())
	}
	return v
}

// Get2 looks up two indices at once, for callers that resolve an edge (a
// pair of handles) in one step. Each result is reported independently.
func (a *Arena[T, S, G]) Get2(i1, i2 Index[S, G]) (v1 T, ok1 bool, v2 T, ok2 bool) {
	v1, ok1 = a.Get(i1)
	v2, ok2 = a.Get(i2)
	return v1, ok1, v2, ok2
}

// Contains reports whether i is still live.
func (a *Arena[T, S, G]) Contains(i Index[S, G]) bool {
	_, ok := a.occupied(i)
	return ok
}

// Set replaces the value behind i, if i is still live. The write is
// copy-on-write: snapshots taken before the call keep the old value. The
// slot's generation is unchanged, so i stays valid.
func (a *Arena[T, S, G]) Set(i Index[S, G], value T) bool {
	e, ok := a.occupied(i)
	if !ok {
		return false
	}
	e.value = value
	a.table = a.table.Set(int(i.slot), e)
	return true
}

// Update rewrites the value behind i with f(old), if i is still live.
func (a *Arena[T, S, G]) Update(i Index[S, G], f func(T) T) bool {
	e, ok := a.occupied(i)
	if !ok {
		return false
	}
	e.value = f(e.value)
	a.table = a.table.Set(int(i.slot), e)
	return true
}

// occupied returns the entry at i's slot iff it is occupied under i's
// generation. This is the single gate every lookup, write, and removal
// passes through.
func (a *Arena[T, S, G]) occupied(i Index[S, G]) (entry[T, S, G], bool) {
	if int(i.slot) >= a.table.Len() {
		return entry[T, S, G]{}, false
	}
	e := a.table.Get(int(i.slot))
	if e.state != slotOccupied || e.gen != i.gen {
		return entry[T, S, G]{}, false
	}
	return e, true
}

// TryRemove removes and returns the value behind i. A dead index is a
// no-op: the arena is unchanged and ok is false.
func (a *Arena[T, S, G]) TryRemove(i Index[S, G]) (T, bool) {
	var zero T
	e, ok := a.occupied(i)
	if !ok {
		return zero, false
	}
	if e.gen == maxOf[G]() {
		// The next generation is unrepresentable: retire the slot
		// instead of reusing it, so this generation never repeats.
		a.table = a.table.Set(int(i.slot), entry[T, S, G]{state: slotRetired, gen: e.gen})
		a.retired++
	} else {
		a.table = a.table.Set(int(i.slot), entry[T, S, G]{
			state:   slotFree,
			gen:     e.gen + 1,
			next:    a.freeHead,
			hasNext: a.hasFree,
		})
		a.freeHead, a.hasFree = i.slot, true
	}
	a.length--
	return e.value, true
}

// Remove removes and returns the value behind i. Removing through a dead
// index is a caller error, reported as a *StaleIndexError.
func (a *Arena[T, S, G]) Remove(i Index[S, G]) (T, error) {
	if v, ok := a.TryRemove(i); ok {
		return v, nil
	}
	var zero T
	return zero, &StaleIndexError{Slot: uint64(i.slot), Generation: uint64(i.gen)}
}

// MustRemove is like Remove but panics on a dead index.
func (a *Arena[T, S, G]) MustRemove(i Index[S, G]) T {
	v, err := a.Remove(i)
	if err != nil {
		panic(err)
	}
	return v
}

// Retain removes every element for which pred returns false.
func (a *Arena[T, S, G]) Retain(pred func(Index[S, G], T) bool) {
	for slot := 0; slot < a.table.Len(); slot++ {
		e := a.table.Get(slot)
		if e.state != slotOccupied {
			continue
		}
		idx := Index[S, G]{slot: S(slot), gen: e.gen}
		if !pred(idx, e.value) {
			a.TryRemove(idx)
		}
	}
}

// Clear removes every element. All previously issued indices become dead;
// slot generations keep advancing, so cleared handles cannot resurrect.
// Slots stay allocated and return to the free list for reuse.
func (a *Arena[T, S, G]) Clear() {
	a.Retain(func(Index[S, G], T) bool { return false })
}

// Len returns the number of live elements.
func (a *Arena[T, S, G]) Len() int { return a.length }

// IsEmpty reports whether the arena holds no live elements.
func (a *Arena[T, S, G]) IsEmpty() bool { return a.length == 0 }

// Cap returns the total number of slots ever created, live or not,
// including retired ones.
func (a *Arena[T, S, G]) Cap() int { return a.table.Len() }

// Clone returns a snapshot of the arena. The call is O(1) regardless of
// size: it copies the table handle and free-list scalars, no entries.
// Original and clone diverge lazily; mutating one never changes what the
// other observes.
func (a *Arena[T, S, G]) Clone() *Arena[T, S, G] {
	c := *a
	return &c
}
