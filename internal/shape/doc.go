// Package shape classifies Go types into the closed set of encoding
// strategies used by the plan builder.
//
// # Kinds
//
// Every reflect.Type maps to exactly one Kind: a scalar (integers, floats,
// bool, string, Char, UUID, Time, Unzoned, Duration, Bytes), a registered
// Enum or Flags type, a Nullable pointer, a primitive Wrapper, a Sequence,
// a Mapping, an Object, or Dynamic (interface values resolved at run time).
// Union is the shape of a group of object members sharing one output name.
//
// # Directives
//
// Member-level directives come from struct tags and are resolved once, at
// classification time:
//
//	type Order struct {
//	    ID     int64         `shape:"id,order=1"`
//	    Status Status        `shape:"status,asint"`
//	    Notes  string        `json:"notes,omitempty"`
//	    Secret string        `shape:"-"`
//	    Card   *Card         `shape:"payment,union"`
//	    IBAN   string        `shape:"payment,union"`
//	    Kind   reflect.Type  `shape:"payment,uniontype"`
//	}
//
// A `shape` tag name overrides a `json` tag name, which overrides the Go
// field name; the Config naming convention applies afterwards unless the
// member carries the verbatim option.
//
// # Self-reference
//
// Composite shapes are registered before their children are classified, so a
// type that refers to itself yields a cyclic *Shape graph and classification
// terminates after visiting each distinct type once.
package shape
