package genarena

import (
	"errors"
	"fmt"

	"github.com/hupe1980/genarena/codec"
)

// Snapshot image layout: a fixed header followed by a codec-encoded body.
//
//	magic   [4]byte "garn"
//	version byte
//	nameLen byte
//	name    codec name, resolved via codec.ByName on decode
//	body    codec-encoded image
const snapshotVersion = 1

var snapshotMagic = [4]byte{'g', 'a', 'r', 'n'}

var (
	// ErrCorruptSnapshot is returned when a snapshot image fails
	// structural validation.
	ErrCorruptSnapshot = errors.New("genarena: corrupt snapshot")
	// ErrUnknownCodec is returned when a snapshot names a codec that is
	// not in the codec registry.
	ErrUnknownCodec = errors.New("genarena: unknown snapshot codec")
)

// imageSlot is the wire form of one slot. State values match slotState.
type imageSlot[T any, S Uint, G Uint] struct {
	State   uint8 `json:"s"`
	Gen     G     `json:"g"`
	Value   T     `json:"v"`
	Next    S     `json:"n"`
	HasNext bool  `json:"x"`
}

// image is the wire form of a whole arena.
type image[T any, S Uint, G Uint] struct {
	Slots    []imageSlot[T, S, G] `json:"slots"`
	FreeHead S                    `json:"free_head"`
	HasFree  bool                 `json:"has_free"`
}

// Encode serializes the arena through c (codec.Default if nil). The image
// captures the complete slot table: values, generations, the free chain,
// and retirement markers, so a decoded arena resolves exactly the indices
// the original did. The bytes carry no further meaning; storing or
// transmitting them is the caller's business.
func (a *Arena[T, S, G]) Encode(c codec.Codec) ([]byte, error) {
	if c == nil {
		c = codec.Default
	}
	img := image[T, S, G]{
		Slots:    make([]imageSlot[T, S, G], 0, a.table.Len()),
		FreeHead: a.freeHead,
		HasFree:  a.hasFree,
	}
	for _, e := range a.table.All() {
		img.Slots = append(img.Slots, imageSlot[T, S, G]{
			State:   uint8(e.state),
			Gen:     e.gen,
			Value:   e.value,
			Next:    e.next,
			HasNext: e.hasNext,
		})
	}

	body, err := c.Marshal(img)
	if err != nil {
		return nil, fmt.Errorf("genarena: encode snapshot: %w", err)
	}

	name := c.Name()
	if len(name) > 255 {
		return nil, fmt.Errorf("genarena: codec name too long: %q", name)
	}
	out := make([]byte, 0, len(snapshotMagic)+2+len(name)+len(body))
	out = append(out, snapshotMagic[:]...)
	out = append(out, snapshotVersion, byte(len(name)))
	out = append(out, name...)
	out = append(out, body...)
	return out, nil
}

// Decode reconstructs an arena from a snapshot produced by Encode. The
// codec is resolved by the name recorded in the header. Indices that were
// live in the encoded arena resolve in the decoded one; stale indices stay
// stale.
func Decode[T any, S Uint, G Uint](data []byte) (*Arena[T, S, G], error) {
	if len(data) < len(snapshotMagic)+2 || [4]byte(data[:4]) != snapshotMagic {
		return nil, fmt.Errorf("%w: bad magic", ErrCorruptSnapshot)
	}
	if data[4] != snapshotVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrCorruptSnapshot, data[4])
	}
	nameLen := int(data[5])
	if len(data) < 6+nameLen {
		return nil, fmt.Errorf("%w: truncated header", ErrCorruptSnapshot)
	}
	name := string(data[6 : 6+nameLen])
	c, ok := codec.ByName(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
	}

	var img image[T, S, G]
	if err := c.Unmarshal(data[6+nameLen:], &img); err != nil {
		return nil, fmt.Errorf("genarena: decode snapshot: %w", err)
	}

	a := New[T, S, G]()
	free := 0
	for pos, s := range img.Slots {
		e := entry[T, S, G]{state: slotState(s.State), gen: s.Gen}
		switch e.state {
		case slotOccupied:
			e.value = s.Value
			a.length++
		case slotFree:
			e.next, e.hasNext = s.Next, s.HasNext
			if s.HasNext && int(s.Next) >= len(img.Slots) {
				return nil, fmt.Errorf("%w: free link out of range at slot %d", ErrCorruptSnapshot, pos)
			}
			free++
		case slotRetired:
			a.retired++
		default:
			return nil, fmt.Errorf("%w: unknown slot state %d at slot %d", ErrCorruptSnapshot, s.State, pos)
		}
		if e.gen == 0 && e.state != slotRetired {
			return nil, fmt.Errorf("%w: zero generation at slot %d", ErrCorruptSnapshot, pos)
		}
		a.table = a.table.Push(e)
	}
	// The free chain must be an acyclic list that links only free slots
	// and reaches every one of them; anything else would eventually hand
	// the same slot to two live inserts.
	if !img.HasFree {
		if free > 0 {
			return nil, fmt.Errorf("%w: %d free slots with no free head", ErrCorruptSnapshot, free)
		}
	} else {
		if int(img.FreeHead) >= len(img.Slots) {
			return nil, fmt.Errorf("%w: free head out of range", ErrCorruptSnapshot)
		}
		seen := 0
		slot, has := img.FreeHead, true
		for has {
			e := a.table.Get(int(slot))
			if e.state != slotFree {
				return nil, fmt.Errorf("%w: free chain links slot %d, which is not free", ErrCorruptSnapshot, slot)
			}
			seen++
			if seen > free {
				return nil, fmt.Errorf("%w: free chain cycle", ErrCorruptSnapshot)
			}
			slot, has = e.next, e.hasNext
		}
		if seen != free {
			return nil, fmt.Errorf("%w: free chain reaches %d of %d free slots", ErrCorruptSnapshot, seen, free)
		}
	}
	a.freeHead, a.hasFree = img.FreeHead, img.HasFree
	return a, nil
}
