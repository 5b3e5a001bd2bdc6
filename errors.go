package shapejson

import (
	"errors"

	"github.com/hupe1980/shapejson/internal/format"
	"github.com/hupe1980/shapejson/internal/plan"
	"github.com/hupe1980/shapejson/internal/shape"
)

var (
	// ErrBuild is matched by every *BuildError.
	ErrBuild = shape.ErrBuild

	// ErrRecursionTooDeep is matched by every *RecursionError.
	ErrRecursionTooDeep = plan.ErrRecursionTooDeep

	// ErrUnsupportedValue is matched by every *UnsupportedValueError.
	ErrUnsupportedValue = format.ErrUnsupportedValue

	// ErrUnionTagMismatch is matched by every *UnionTagError.
	ErrUnionTagMismatch = plan.ErrUnionTagMismatch

	// ErrDecode is matched by every *DecodeError.
	ErrDecode = plan.ErrDecode

	// ErrSyntax is wrapped by decode errors for malformed scalar text.
	ErrSyntax = format.ErrSyntax

	// ErrTypeMismatch is wrapped by decode errors for JSON values of the
	// wrong class.
	ErrTypeMismatch = plan.ErrTypeMismatch

	// ErrUnknownField is wrapped by decode errors when WithDisallowUnknownFields
	// is set and a member has no destination.
	ErrUnknownField = plan.ErrUnknownField

	// ErrTrailingData is wrapped by decode errors when input continues after
	// the first JSON value.
	ErrTrailingData = errors.New("trailing data after value")

	// ErrInvalidTarget is returned when Unmarshal is given something other
	// than a non-nil pointer.
	ErrInvalidTarget = errors.New("unmarshal target must be a non-nil pointer")
)

// BuildError reports a type that cannot be compiled. It is returned on the
// first use of a (type, Config) pair and every later one until the type or
// its enum registrations change.
type BuildError = shape.BuildError

// BuildReason classifies a BuildError.
type BuildReason = shape.BuildReason

const (
	UnsupportedKey       = shape.UnsupportedKey
	WrapperArity         = shape.WrapperArity
	EmptyEnum            = shape.EmptyEnum
	AmbiguousUnion       = shape.AmbiguousUnion
	DiscriminantMismatch = shape.DiscriminantMismatch
	DuplicateName        = shape.DuplicateName
	UnsupportedType      = shape.UnsupportedType
	InvalidDirective     = shape.InvalidDirective
)

// RecursionError aborts a call whose value nests deeper than the configured
// bound. Output already written is not retracted.
type RecursionError = plan.RecursionError

// UnsupportedValueError reports a value with no JSON form, such as NaN.
type UnsupportedValueError = format.UnsupportedValueError

// UnionTagError reports a union discriminant naming no candidate type.
type UnionTagError = plan.UnionTagError

// DecodeError reports input that cannot be decoded, with its byte offset.
type DecodeError = plan.DecodeError
