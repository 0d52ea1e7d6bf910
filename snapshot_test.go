package genarena

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hupe1980/genarena/codec"
)

func buildChurned(t *testing.T) (*Standard[string], StandardIndex, StandardIndex, StandardIndex) {
	t.Helper()
	arena := NewStandard[string]()
	a := arena.Insert("alpha")
	b := arena.Insert("beta")
	c := arena.Insert("gamma")
	arena.TryRemove(b) // leaves a hole on the free list
	return arena, a, b, c
}

func TestSnapshot_RoundTrip(t *testing.T) {
	codecs := []codec.Codec{
		nil, // codec.Default
		codec.JSON{},
		codec.Compressed{Inner: codec.JSON{}},
		codec.Compressed{},
	}

	for _, c := range codecs {
		name := "default"
		if c != nil {
			name = c.Name()
		}
		t.Run(name, func(t *testing.T) {
			arena, a, b, cc := buildChurned(t)

			data, err := arena.Encode(c)
			require.NoError(t, err)

			decoded, err := Decode[string, uint32, uint64](data)
			require.NoError(t, err)

			require.Equal(t, arena.Len(), decoded.Len())
			require.Equal(t, arena.Cap(), decoded.Cap())
			require.Equal(t, "alpha", decoded.MustGet(a))
			require.Equal(t, "gamma", decoded.MustGet(cc))

			// Stale stays stale.
			require.False(t, decoded.Contains(b))

			// The free chain came across: the next insert lands on b's
			// old slot at the bumped generation, same as the original.
			origIdx := arena.Insert("delta")
			decIdx := decoded.Insert("delta")
			require.Equal(t, origIdx, decIdx)
		})
	}
}

func TestSnapshot_SelfDescribing(t *testing.T) {
	arena, _, _, _ := buildChurned(t)

	// Encoded with a non-default codec; Decode resolves it by name from
	// the header without being told.
	data, err := arena.Encode(codec.Compressed{Inner: codec.JSON{}})
	require.NoError(t, err)

	decoded, err := Decode[string, uint32, uint64](data)
	require.NoError(t, err)
	require.Equal(t, arena.Len(), decoded.Len())
}

func TestSnapshot_DecodeRejectsGarbage(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		_, err := Decode[string, uint32, uint64](nil)
		require.ErrorIs(t, err, ErrCorruptSnapshot)
	})

	t.Run("bad magic", func(t *testing.T) {
		_, err := Decode[string, uint32, uint64]([]byte("nope, not a snapshot"))
		require.ErrorIs(t, err, ErrCorruptSnapshot)
	})

	t.Run("unknown codec", func(t *testing.T) {
		data := append([]byte{}, snapshotMagic[:]...)
		data = append(data, snapshotVersion, 3)
		data = append(data, "xml"...)
		_, err := Decode[string, uint32, uint64](data)
		require.ErrorIs(t, err, ErrUnknownCodec)
	})

	t.Run("truncated body", func(t *testing.T) {
		arena, _, _, _ := buildChurned(t)
		data, err := arena.Encode(codec.JSON{})
		require.NoError(t, err)
		_, err = Decode[string, uint32, uint64](data[:len(data)-5])
		require.Error(t, err)
	})
}

// frameImage wraps a hand-built image in a valid snapshot header so the
// structural validation in Decode is what gets exercised.
func frameImage(t *testing.T, img image[string, uint32, uint64]) []byte {
	t.Helper()
	body, err := codec.JSON{}.Marshal(img)
	require.NoError(t, err)
	data := append([]byte{}, snapshotMagic[:]...)
	data = append(data, snapshotVersion, byte(len("json")))
	data = append(data, "json"...)
	return append(data, body...)
}

func TestSnapshot_DecodeRejectsBrokenFreeChain(t *testing.T) {
	occ := func(v string) imageSlot[string, uint32, uint64] {
		return imageSlot[string, uint32, uint64]{State: uint8(slotOccupied), Gen: 1, Value: v}
	}
	free := func(next uint32, hasNext bool) imageSlot[string, uint32, uint64] {
		return imageSlot[string, uint32, uint64]{State: uint8(slotFree), Gen: 2, Next: next, HasNext: hasNext}
	}

	t.Run("cyclic chain", func(t *testing.T) {
		// Slot 0 -> 1 -> 0; a clean decode would hand the same slot to
		// two live inserts.
		img := image[string, uint32, uint64]{
			Slots:    []imageSlot[string, uint32, uint64]{free(1, true), free(0, true), occ("a")},
			FreeHead: 0,
			HasFree:  true,
		}
		_, err := Decode[string, uint32, uint64](frameImage(t, img))
		require.ErrorIs(t, err, ErrCorruptSnapshot)
	})

	t.Run("link to occupied slot", func(t *testing.T) {
		img := image[string, uint32, uint64]{
			Slots:    []imageSlot[string, uint32, uint64]{free(1, true), occ("a")},
			FreeHead: 0,
			HasFree:  true,
		}
		_, err := Decode[string, uint32, uint64](frameImage(t, img))
		require.ErrorIs(t, err, ErrCorruptSnapshot)
	})

	t.Run("orphan free slot", func(t *testing.T) {
		img := image[string, uint32, uint64]{
			Slots:    []imageSlot[string, uint32, uint64]{free(0, false), free(0, false)},
			FreeHead: 0,
			HasFree:  true,
		}
		_, err := Decode[string, uint32, uint64](frameImage(t, img))
		require.ErrorIs(t, err, ErrCorruptSnapshot)
	})

	t.Run("free slots without a head", func(t *testing.T) {
		img := image[string, uint32, uint64]{
			Slots: []imageSlot[string, uint32, uint64]{free(0, false), occ("a")},
		}
		_, err := Decode[string, uint32, uint64](frameImage(t, img))
		require.ErrorIs(t, err, ErrCorruptSnapshot)
	})
}

func TestSnapshot_PreservesRetirement(t *testing.T) {
	arena := NewTiny[int]()
	for i := 0; i < 255; i++ {
		idx := arena.Insert(i)
		arena.TryRemove(idx)
	}
	require.EqualValues(t, 1, arena.Stats().Retired)

	data, err := arena.Encode(nil)
	require.NoError(t, err)

	decoded, err := Decode[int, uint8, uint8](data)
	require.NoError(t, err)
	require.EqualValues(t, 1, decoded.Stats().Retired)
	require.True(t, decoded.RetiredSet().Contains(0))

	// The retired slot must not be handed out after decode either.
	idx := decoded.Insert(7)
	require.NotZero(t, idx.Slot())
}
