package genarena

import (
	"iter"

	"github.com/hupe1980/genarena/internal/pvec"
)

// All returns a sequence of (Index, value) pairs for every live element, in
// slot order. The sequence is finite and restartable; each traversal walks
// the table as it was when the loop started, so mutating the arena from the
// loop body does not disturb the walk in progress.
func (a *Arena[T, S, G]) All() iter.Seq2[Index[S, G], T] {
	return func(yield func(Index[S, G], T) bool) {
		for pos, e := range a.table.All() {
			if e.state != slotOccupied {
				continue
			}
			if !yield(Index[S, G]{slot: S(pos), gen: e.gen}, e.value) {
				return
			}
		}
	}
}

// Drain empties the arena, yielding each live (Index, value) pair in slot
// order. The arena is cleared before the first pair is delivered, so the
// yielded indices are already stale and the arena ends up empty even when
// the caller stops early. Freed slots keep their bumped generations and
// return to the free list as Clear leaves them.
func (a *Arena[T, S, G]) Drain() iter.Seq2[Index[S, G], T] {
	return func(yield func(Index[S, G], T) bool) {
		table := a.table
		a.Clear()
		for pos, e := range table.All() {
			if e.state != slotOccupied {
				continue
			}
			if !yield(Index[S, G]{slot: S(pos), gen: e.gen}, e.value) {
				return
			}
		}
	}
}

// Extend inserts every value of seq, in order.
func (a *Arena[T, S, G]) Extend(seq iter.Seq[T]) {
	for v := range seq {
		a.Insert(v)
	}
}

// Collect builds a new arena holding every value of seq, in order.
func Collect[T any, S Uint, G Uint](seq iter.Seq[T]) *Arena[T, S, G] {
	a := New[T, S, G]()
	a.Extend(seq)
	return a
}

// Iter returns an explicit iterator over the live elements in slot order.
// The iterator holds its own table handle, so it is unaffected by
// subsequent arena mutation.
func (a *Arena[T, S, G]) Iter() *Iterator[T, S, G] {
	return &Iterator[T, S, G]{table: a.table}
}

// Iterator is a pull-style cursor over an arena snapshot. See Arena.Iter.
type Iterator[T any, S Uint, G Uint] struct {
	table pvec.Vector[entry[T, S, G]]
	pos   int
}

// Next returns the next live (Index, value) pair, or ok == false when the
// table is exhausted.
func (it *Iterator[T, S, G]) Next() (Index[S, G], T, bool) {
	for it.pos < it.table.Len() {
		e := it.table.Get(it.pos)
		pos := it.pos
		it.pos++
		if e.state == slotOccupied {
			return Index[S, G]{slot: S(pos), gen: e.gen}, e.value, true
		}
	}
	var zero T
	return Index[S, G]{}, zero, false
}
