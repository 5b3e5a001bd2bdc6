// Package plan compiles classified shapes into encode and decode routines.
//
// Build walks a shape graph once and emits one closure per distinct shape.
// Recursive shapes are wired through slots registered before their children
// are built, so a self-referential type compiles in time proportional to
// the number of distinct shapes it reaches. Routines are immutable after
// Build returns and may be shared across goroutines; all per-call state
// lives in pooled encodeState and decodeState values.
package plan
