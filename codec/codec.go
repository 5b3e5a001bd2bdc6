// Package codec provides interchangeable payload codecs behind one interface.
//
// The shapejson codec is the default; the others wrap well-known JSON and
// CBOR libraries so callers can compare output and throughput, and the
// Compressed and JSONC wrappers layer block compression and comment-tolerant
// input over any of them.
package codec

import (
	"fmt"
	"strings"
)

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// Default is the codec used when none is configured.
var Default Codec = Shape{}

// ByName returns a built-in codec by its stable name.
//
// Names of wrapped codecs are "<wrapper>+<inner>", for example "zstd+json"
// or "jsonc+shapejson-iso8601", and nest from the left.
func ByName(name string) (Codec, bool) {
	if wrapper, inner, ok := strings.Cut(name, "+"); ok {
		c, ok := ByName(inner)
		if !ok {
			return nil, false
		}
		switch wrapper {
		case "none":
			return Compressed{Codec: c, Compression: CompressionNone}, true
		case "lz4":
			return Compressed{Codec: c, Compression: CompressionLZ4}, true
		case "zstd":
			return Compressed{Codec: c, Compression: CompressionZSTD}, true
		case "jsonc":
			return JSONC{Codec: c}, true
		default:
			return nil, false
		}
	}

	switch name {
	case "json":
		return JSON{}, true
	case "go-json":
		return GoJSON{}, true
	case "jsoniter":
		return JSONIter{}, true
	case "sonic":
		return Sonic{}, true
	case "cbor":
		return CBOR{}, true
	}
	for _, p := range shapePresets {
		if p.name == name {
			return Shape{Config: p.cfg}, true
		}
	}
	return nil, false
}

// Names lists the names of the unwrapped built-in codecs.
func Names() []string {
	names := []string{"json", "go-json", "jsoniter", "sonic", "cbor"}
	for _, p := range shapePresets {
		names = append(names, p.name)
	}
	return names
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
