package shapejson

import (
	"reflect"

	"github.com/hupe1980/shapejson/internal/format"
	"github.com/hupe1980/shapejson/internal/shape"
)

// Integer is the set of types that can be registered as enumerations.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// EnumMember names one value of an enumerated type.
type EnumMember[T Integer] struct {
	Value T
	Name  string
}

// RegisterEnum makes T encode as the name of its value. Values without a
// name fall back to the bare integer. Members keep their declared order.
//
// Registration must happen before T is first encoded or decoded under any
// Config: compiled routines are never rebuilt.
//
// Example:
//
//	type Level int
//
//	const (
//	    Debug Level = iota
//	    Info
//	)
//
//	shapejson.RegisterEnum(
//	    shapejson.EnumMember[Level]{Debug, "debug"},
//	    shapejson.EnumMember[Level]{Info, "info"},
//	)
func RegisterEnum[T Integer](members ...EnumMember[T]) error {
	return register(false, members)
}

// RegisterFlags makes T encode as the names of its set bits joined in
// declared order, "A,B" in compact output and "A, B" when pretty printed.
// A member with value 0 names the empty set.
func RegisterFlags[T Integer](members ...EnumMember[T]) error {
	return register(true, members)
}

// UnregisterEnum removes the registration of T. Routines already compiled
// for types containing T keep their behavior.
func UnregisterEnum[T Integer]() {
	shape.UnregisterEnum(reflect.TypeFor[T]())
}

func register[T Integer](flags bool, members []EnumMember[T]) error {
	raw := make([]format.EnumMember, len(members))
	for i, m := range members {
		// int64 sign-extends signed values and keeps the bits of unsigned ones
		raw[i] = format.EnumMember{Name: m.Name, Value: uint64(int64(m.Value))}
	}
	return shape.RegisterEnum(reflect.TypeFor[T](), flags, raw)
}
