// Package shapejson provides a type-directed JSON codec for Go.
//
// The first time a Go type is encoded or decoded under a Config, shapejson
// classifies the type, validates it and compiles a routine specialized to
// its shape. The routine is cached per (type, Config) and every later call
// runs it directly, so reflection over struct tags and method sets happens
// once per process.
//
// # Quick Start
//
//	type Order struct {
//	    ID      int64     `json:"id"`
//	    Placed  time.Time `json:"placed"`
//	    Note    *string   `json:"note"`
//	}
//
//	data, _ := shapejson.Marshal(order, shapejson.ISO8601)
//	var back Order
//	_ = shapejson.Unmarshal(data, &back, shapejson.ISO8601)
//
// Precompile a typed codec to report unsupported types at startup:
//
//	var orders = shapejson.MustFor[Order](shapejson.ISO8601PrettyExcludeNulls)
//
// # Output Configuration
//
// A Config selects compact or pretty output, whether null members are
// written, JSONP-safe escaping, one of five timestamp formats, the naming
// convention, promotion of embedded struct fields and the zone applied to
// Unzoned timestamps. Presets cover common combinations; NewConfig and
// Config.With compose options.
//
// # Member Directives
//
// Member names come from the shape tag, then the json tag, then the field
// name. The shape tag accepts options after the name:
//
//	omitempty   write the member only when its value is non-zero
//	verbatim    exempt the name from the naming convention
//	empty       use "" as the member name
//	order=N     emit before members without order, ascending N
//	if=Method   write the member only when Method() returns true
//	asint       write a registered enum as its integer
//	int8..uint64  as asint, converted to the given width
//	union       share the name with other union candidates
//	uniontype   reflect.Type member selecting the union candidate
//
// A method ShouldEncode<Field>() bool on the struct acts as the predicate of
// Field when no if= option is given.
//
// # Unions
//
// Members tagged with the same name and the union option are candidates for
// one output key. A reflect.Type member tagged uniontype picks the candidate
// whose type it holds; without one the first candidate that is non-zero, or
// whose predicate holds, is written. Candidates must decode from distinct
// JSON value classes so Unmarshal can choose one by the first token.
//
// # Errors
//
// Types that cannot be encoded are reported as *BuildError before any
// output is written. Runtime failures are *RecursionError,
// *UnsupportedValueError, *UnionTagError and *DecodeError; all match their
// sentinel with errors.Is.
package shapejson
