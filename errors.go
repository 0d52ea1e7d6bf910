package genarena

import (
	"errors"
	"fmt"
)

// ErrNotFound is the sentinel matched by errors.Is for any lookup or
// removal against an index that no longer (or never) resolved: the slot is
// free, retired, out of range, or occupied under a different generation.
var ErrNotFound = errors.New("genarena: index not found")

// StaleIndexError reports a Remove against a dead index. It unwraps to
// ErrNotFound.
type StaleIndexError struct {
	Slot       uint64
	Generation uint64
}

func (e *StaleIndexError) Error() string {
	return fmt.Sprintf("genarena: stale index (slot %d, generation %d)", e.Slot, e.Generation)
}

func (e *StaleIndexError) Unwrap() error { return ErrNotFound }
