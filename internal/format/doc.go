// Package format renders and parses scalar JSON tokens.
//
// Every function is append-style: it appends the exact token text to a
// caller-supplied buffer and returns the extended slice. Nothing here knows
// about the enclosing shape; the plan package composes these formatters into
// object, array and mapping output.
//
// Covered scalars:
//   - integers of every width (base-10, culture invariant)
//   - floats (shortest round-trip text, non-finite values rejected)
//   - strings and characters (JSON escaping, optional JSONP-safe escaping)
//   - unique identifiers (lower-case 8-4-4-4-12)
//   - timestamps in five wire formats (see TimestampFormat)
//   - durations
//   - enumerated and flags values (see Enum)
package format
