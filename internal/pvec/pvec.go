// Package pvec implements an immutable, structurally shared indexed vector.
//
// The vector is a bit-partitioned trie with 32-way branching and a tail
// buffer for the last partial leaf. Get is O(log32 n); Set and Push copy
// only the path from the root to the touched leaf, so two handles derived
// from one another share every untouched node. A Vector value is never
// mutated in place, which makes any handle safe for unsynchronized
// concurrent reads.
package pvec

import (
	"fmt"
	"iter"
)

const (
	// branchBits determines the trie fan-out. 5 bits = 32 children per
	// node, the conventional choice for persistent vectors.
	branchBits = 5
	branchSize = 1 << branchBits
	branchMask = branchSize - 1
)

// node is either an internal node (children set) or a leaf (items set).
type node[T any] struct {
	children []*node[T]
	items    []T
}

// Vector is an immutable indexed sequence. The zero value is an empty
// vector. All methods leave the receiver unchanged; mutating methods
// return a new handle.
type Vector[T any] struct {
	count int
	shift uint
	root  *node[T]
	tail  []T
}

// New returns an empty vector.
func New[T any]() Vector[T] {
	return Vector[T]{shift: branchBits}
}

// Len returns the number of elements.
func (v Vector[T]) Len() int {
	return v.count
}

// tailOffset is the index of the first element stored in the tail buffer.
func (v Vector[T]) tailOffset() int {
	if v.count < branchSize {
		return 0
	}
	return ((v.count - 1) >> branchBits) << branchBits
}

// Get returns the element at position i. It panics if i is out of range;
// callers are expected to bounds-check against Len first.
func (v Vector[T]) Get(i int) T {
	if i < 0 || i >= v.count {
		panic(fmt.Sprintf("pvec: index %d out of range [0, %d)", i, v.count))
	}
	if i >= v.tailOffset() {
		return v.tail[i-v.tailOffset()]
	}
	n := v.root
	for shift := v.shift; shift > 0; shift -= branchBits {
		n = n.children[(i>>shift)&branchMask]
	}
	return n.items[i&branchMask]
}

// Set returns a new vector with position i replaced by x. Setting i == Len
// is equivalent to Push. Only the root-to-leaf path is copied; all other
// nodes are shared with the receiver.
func (v Vector[T]) Set(i int, x T) Vector[T] {
	if i == v.count {
		return v.Push(x)
	}
	if i < 0 || i > v.count {
		panic(fmt.Sprintf("pvec: index %d out of range [0, %d]", i, v.count))
	}
	if i >= v.tailOffset() {
		tail := make([]T, len(v.tail))
		copy(tail, v.tail)
		tail[i-v.tailOffset()] = x
		return Vector[T]{count: v.count, shift: v.shift, root: v.root, tail: tail}
	}
	return Vector[T]{count: v.count, shift: v.shift, root: set(v.shift, v.root, i, x), tail: v.tail}
}

func set[T any](shift uint, n *node[T], i int, x T) *node[T] {
	if n.items != nil {
		items := make([]T, len(n.items))
		copy(items, n.items)
		items[i&branchMask] = x
		return &node[T]{items: items}
	}
	children := make([]*node[T], branchSize)
	copy(children, n.children)
	idx := (i >> shift) & branchMask
	children[idx] = set(shift-branchBits, n.children[idx], i, x)
	return &node[T]{children: children}
}

// Push returns a new vector with x appended.
func (v Vector[T]) Push(x T) Vector[T] {
	shift := v.shift
	if shift == 0 {
		shift = branchBits
	}

	// Room in the tail.
	if v.count-v.tailOffset() < branchSize {
		tail := make([]T, len(v.tail)+1)
		copy(tail, v.tail)
		tail[len(v.tail)] = x
		return Vector[T]{count: v.count + 1, shift: shift, root: v.root, tail: tail}
	}

	// Tail is full: sink it into the trie and start a fresh one.
	tailNode := &node[T]{items: v.tail}
	var root *node[T]
	if (v.count >> branchBits) > (1 << shift) {
		// Root overflow: grow the trie by one level.
		root = &node[T]{children: make([]*node[T], branchSize)}
		root.children[0] = v.root
		root.children[1] = newPath(shift, tailNode)
		shift += branchBits
	} else {
		root = pushTail(v.count, shift, v.root, tailNode)
	}
	return Vector[T]{count: v.count + 1, shift: shift, root: root, tail: []T{x}}
}

// pushTail places tailNode at the trie position holding elements
// [count-branchSize, count), copying the path down from parent.
func pushTail[T any](count int, shift uint, parent *node[T], tailNode *node[T]) *node[T] {
	ret := &node[T]{children: make([]*node[T], branchSize)}
	if parent != nil {
		copy(ret.children, parent.children)
	}
	idx := ((count - 1) >> shift) & branchMask
	if shift == branchBits {
		ret.children[idx] = tailNode
	} else if child := ret.children[idx]; child != nil {
		ret.children[idx] = pushTail(count, shift-branchBits, child, tailNode)
	} else {
		ret.children[idx] = newPath(shift-branchBits, tailNode)
	}
	return ret
}

// newPath wraps n in a chain of single-child internal nodes so that it
// stands at the given level; at level 0 the node is the leaf itself.
func newPath[T any](shift uint, n *node[T]) *node[T] {
	if shift == 0 {
		return n
	}
	ret := &node[T]{children: make([]*node[T], branchSize)}
	ret.children[0] = newPath(shift-branchBits, n)
	return ret
}

// Chunks yields the vector's leaf slices in position order together with
// the position of their first element. The yielded slices alias internal
// storage and must not be modified. This is the splitting point for
// parallel traversal: each chunk is independent of every other.
func (v Vector[T]) Chunks() iter.Seq2[int, []T] {
	return func(yield func(int, []T) bool) {
		start := 0
		var walk func(n *node[T]) bool
		walk = func(n *node[T]) bool {
			if n.items != nil {
				if !yield(start, n.items) {
					return false
				}
				start += len(n.items)
				return true
			}
			for _, c := range n.children {
				if c == nil {
					return true
				}
				if !walk(c) {
					return false
				}
			}
			return true
		}
		if v.root != nil && !walk(v.root) {
			return
		}
		if len(v.tail) > 0 {
			yield(start, v.tail)
		}
	}
}

// All yields (position, element) pairs in position order.
func (v Vector[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for start, items := range v.Chunks() {
			for j, x := range items {
				if !yield(start+j, x) {
					return
				}
			}
		}
	}
}
