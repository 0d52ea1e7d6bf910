package genarena

// Width presets. Narrower counters shrink every Index and slot; the price
// is churn tolerance (a slot retires after max(G) removals) and table size
// (at most max(S)+1 slots). Standard is the right default; reach for the
// others when profiling says so.

// Standard addresses 4 billion slots and never retires one in practice.
type Standard[T any] = Arena[T, uint32, uint64]

// StandardIndex is the index type issued by Standard arenas.
type StandardIndex = Index[uint32, uint64]

// Large uses full-width counters for both slot and generation.
type Large[T any] = Arena[T, uint64, uint64]

// LargeIndex is the index type issued by Large arenas.
type LargeIndex = Index[uint64, uint64]

// Small keeps indices at 6 bytes: 65 thousand slots, 4 billion removals
// per slot before retirement.
type Small[T any] = Arena[T, uint16, uint32]

// SmallIndex is the index type issued by Small arenas.
type SmallIndex = Index[uint16, uint32]

// Tiny packs an index into 2 bytes: 256 slots, and each slot retires after
// 254 removals. Useful for dense graphs of short-lived micro-objects and
// for exercising retirement in tests.
type Tiny[T any] = Arena[T, uint8, uint8]

// TinyIndex is the index type issued by Tiny arenas.
type TinyIndex = Index[uint8, uint8]

// NewStandard constructs an empty Standard arena.
func NewStandard[T any]() *Standard[T] { return New[T, uint32, uint64]() }

// NewLarge constructs an empty Large arena.
func NewLarge[T any]() *Large[T] { return New[T, uint64, uint64]() }

// NewSmall constructs an empty Small arena.
func NewSmall[T any]() *Small[T] { return New[T, uint16, uint32]() }

// NewTiny constructs an empty Tiny arena.
func NewTiny[T any]() *Tiny[T] { return New[T, uint8, uint8]() }
