package codec

import (
	"fmt"

	"github.com/klauspost/compress/s2"
)

// Compressed wraps an inner codec with s2 block compression. Arena images
// are highly repetitive (one record per slot, free runs, shared field
// names), so they compress well.
type Compressed struct {
	Inner Codec
}

func (c Compressed) inner() Codec {
	if c.Inner == nil {
		return Default
	}
	return c.Inner
}

// Marshal encodes with the inner codec, then compresses the result.
func (c Compressed) Marshal(v any) ([]byte, error) {
	b, err := c.inner().Marshal(v)
	if err != nil {
		return nil, err
	}
	return s2.Encode(nil, b), nil
}

// Unmarshal decompresses the data, then decodes with the inner codec.
func (c Compressed) Unmarshal(data []byte, v any) error {
	b, err := s2.Decode(nil, data)
	if err != nil {
		return fmt.Errorf("codec %s decompress failed: %w", c.Name(), err)
	}
	return c.inner().Unmarshal(b, v)
}

// Name returns the inner codec's name with a "+s2" suffix.
func (c Compressed) Name() string { return c.inner().Name() + "+s2" }
