package shape

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrBuild is matched by every *BuildError.
var ErrBuild = errors.New("cannot build plan")

// BuildReason classifies a BuildError.
type BuildReason uint8

const (
	// UnsupportedKey: mapping key is not text, enumerated or integer.
	UnsupportedKey BuildReason = iota + 1
	// WrapperArity: a primitive wrapper does not have exactly one scalar member.
	WrapperArity
	// EmptyEnum: an enumerated type has no named values.
	EmptyEnum
	// AmbiguousUnion: two union candidates cannot be told apart on decode.
	AmbiguousUnion
	// DiscriminantMismatch: the discriminant does not fit the candidate set.
	DiscriminantMismatch
	// DuplicateName: two members resolve to the same output name.
	DuplicateName
	// UnsupportedType: the Go type has no JSON representation.
	UnsupportedType
	// InvalidDirective: a struct tag could not be applied.
	InvalidDirective
)

func (r BuildReason) String() string {
	switch r {
	case UnsupportedKey:
		return "unsupported mapping key"
	case WrapperArity:
		return "primitive wrapper must have exactly one scalar member"
	case EmptyEnum:
		return "enumerated type has no named values"
	case AmbiguousUnion:
		return "ambiguous union candidates"
	case DiscriminantMismatch:
		return "union discriminant mismatch"
	case DuplicateName:
		return "duplicate member name"
	case UnsupportedType:
		return "unsupported type"
	case InvalidDirective:
		return "invalid directive"
	default:
		return "unknown reason"
	}
}

// BuildError reports a type that cannot be planned. It is returned on first
// use of a (type, Config) pair and repeats until the type changes.
type BuildError struct {
	Type   reflect.Type
	Member string
	Reason BuildReason
	Detail string
}

func (e *BuildError) Error() string {
	where := "<nil>"
	if e.Type != nil {
		where = e.Type.String()
	}
	if e.Member != "" {
		where += "." + e.Member
	}
	if e.Detail == "" {
		return fmt.Sprintf("cannot build plan for %s: %s", where, e.Reason)
	}
	return fmt.Sprintf("cannot build plan for %s: %s: %s", where, e.Reason, e.Detail)
}

// Is reports whether target is ErrBuild.
func (e *BuildError) Is(target error) bool { return target == ErrBuild }

func buildError(t reflect.Type, member string, reason BuildReason, format string, args ...any) *BuildError {
	return &BuildError{Type: t, Member: member, Reason: reason, Detail: fmt.Sprintf(format, args...)}
}
