// Package names matches object member names on the decode path.
//
// A Matcher is a deterministic automaton over the expected names of one
// object shape. Transitions are stored densely over a compressed alphabet
// (only the bytes that occur in some expected name get a column), so a
// lookup costs one table read per input byte and rejects unknown names at
// the first byte that cannot continue any expected name.
package names
