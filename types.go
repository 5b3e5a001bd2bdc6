package shapejson

import "github.com/hupe1980/shapejson/internal/shape"

// Wrapper, embedded in a struct with exactly one exported scalar field,
// makes the struct encode as that field's bare value.
//
//	type UserID struct {
//	    shapejson.Wrapper
//	    Value int64
//	}
type Wrapper = shape.WrapperMarker

// Char is a rune that encodes as a one-character string.
type Char = shape.CharValue

// Unzoned is a wall-clock timestamp with no zone. It is resolved to UTC or
// local time per Config.UnspecifiedTime before formatting, and decodes
// without attaching the input's offset.
type Unzoned = shape.UnzonedTime
