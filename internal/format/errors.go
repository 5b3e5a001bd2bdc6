package format

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrUnsupportedValue is matched by every UnsupportedValueError.
	ErrUnsupportedValue = errors.New("unsupported value")

	// ErrSyntax is returned when a scalar token cannot be parsed.
	ErrSyntax = errors.New("invalid token")
)

// UnsupportedValueError reports a value that has no JSON representation,
// such as NaN or an infinite float. Type is the Go type of the value; Owner
// and Member name the innermost struct member holding it, when there is one.
type UnsupportedValueError struct {
	Value  string
	Reason string
	Type   reflect.Type
	Owner  reflect.Type
	Member string
}

func (e *UnsupportedValueError) Error() string {
	where := ""
	if e.Type != nil {
		where = " of type " + e.Type.String()
	}
	if e.Owner != nil {
		where += " in " + e.Owner.String() + "." + e.Member
	}
	return fmt.Sprintf("unsupported value %s%s: %s", e.Value, where, e.Reason)
}

// Is reports whether target is ErrUnsupportedValue.
func (e *UnsupportedValueError) Is(target error) bool { return target == ErrUnsupportedValue }

// SyntaxError reports scalar token text that does not match the expected
// format. Kind names what was being parsed ("timestamp", "duration", ...).
type SyntaxError struct {
	Kind  string
	Text  string
	cause error
}

func (e *SyntaxError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("invalid %s %q: %v", e.Kind, e.Text, e.cause)
	}
	return fmt.Sprintf("invalid %s %q", e.Kind, e.Text)
}

// Is reports whether target is ErrSyntax.
func (e *SyntaxError) Is(target error) bool { return target == ErrSyntax }

func (e *SyntaxError) Unwrap() error { return e.cause }

func syntaxError(kind, text string, cause error) error {
	return &SyntaxError{Kind: kind, Text: text, cause: cause}
}
