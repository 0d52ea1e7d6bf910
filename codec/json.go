package codec

import (
	"encoding/json"
)

// JSON is the standard-library JSON codec.
//
// It handles the value types JSON handles: typical structs, maps, slices
// and scalars. Values holding funcs, channels, or complex numbers need a
// custom Codec.
type JSON struct{}

// Marshal encodes the value to JSON.
func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// Unmarshal decodes the JSON data into v.
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Name returns the unique name of the codec ("json").
func (JSON) Name() string { return "json" }

// Default is the codec used when none is given.
//
// This affects newly encoded snapshots only. Existing images are
// self-describing (the codec name is in the header) and decode through the
// codec they were written with.
var Default Codec = GoJSON{}
