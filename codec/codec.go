// Package codec centralizes value encoding for arena snapshots.
//
// Codec selection is a compatibility boundary: snapshot images record the
// codec name in their header, and bytes written by one codec may not decode
// through another.
package codec

import "fmt"

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// ByName returns a built-in codec by its stable name.
//
// Snapshot images are self-describing: they store the codec name in their
// header, and decoding resolves the codec through this registry.
func ByName(name string) (Codec, bool) {
	switch name {
	case "json":
		return JSON{}, true
	case "go-json":
		return GoJSON{}, true
	case "json+s2":
		return Compressed{Inner: JSON{}}, true
	case "go-json+s2":
		return Compressed{Inner: GoJSON{}}, true
	default:
		return nil, false
	}
}

// MustMarshal is a helper for internal tests/benchmarks.
func MustMarshal(c Codec, v any) []byte {
	if c == nil {
		c = Default
	}
	b, err := c.Marshal(v)
	if err != nil {
		panic(fmt.Errorf("codec %s marshal failed: %w", c.Name(), err))
	}
	return b
}
