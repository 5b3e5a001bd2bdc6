package plan

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrRecursionTooDeep is matched by every *RecursionError.
	ErrRecursionTooDeep = errors.New("recursion too deep")

	// ErrUnionTagMismatch is matched by every *UnionTagError.
	ErrUnionTagMismatch = errors.New("union tag matches no candidate")

	// ErrDecode is matched by every *DecodeError.
	ErrDecode = errors.New("cannot decode")

	// ErrTypeMismatch reports a JSON value of the wrong class for its target.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrUnknownField reports a member name with no destination when unknown
	// fields are disallowed.
	ErrUnknownField = errors.New("unknown field")
)

// RecursionError aborts a call whose value nests deeper than the bound.
// Output produced before the error is not retracted.
type RecursionError struct {
	Type  reflect.Type
	Depth int
}

func (e *RecursionError) Error() string {
	return fmt.Sprintf("recursion too deep: %s exceeds depth %d", e.Type, e.Depth)
}

// Is reports whether target is ErrRecursionTooDeep.
func (e *RecursionError) Is(target error) bool { return target == ErrRecursionTooDeep }

// UnionTagError reports a discriminant naming a type that is not one of the
// union's candidates.
type UnionTagError struct {
	Type   reflect.Type
	Member string
	Tag    reflect.Type
}

func (e *UnionTagError) Error() string {
	return fmt.Sprintf("union %s.%s: tag %v matches no candidate", e.Type, e.Member, e.Tag)
}

// Is reports whether target is ErrUnionTagMismatch.
func (e *UnionTagError) Is(target error) bool { return target == ErrUnionTagMismatch }

// DecodeError reports input that cannot be decoded into Type. Offset is the
// byte offset in the input just after the offending token.
type DecodeError struct {
	Type   reflect.Type
	Offset int64
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("cannot decode into %v at offset %d: %v", e.Type, e.Offset, e.Err)
}

// Is reports whether target is ErrDecode.
func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

func (e *DecodeError) Unwrap() error { return e.Err }
