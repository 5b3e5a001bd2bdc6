package shape

import (
	"reflect"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/hupe1980/shapejson/internal/format"
)

// Kind is the closed set of encoding strategies.
type Kind uint8

const (
	Invalid Kind = iota
	Int
	Uint
	Float
	Bool
	String
	Char
	UUID
	Time
	Unzoned
	Duration
	Bytes
	Nullable
	Enum
	Flags
	Wrapper
	Sequence
	Mapping
	Union
	Object
	Dynamic
)

var kindNames = [...]string{
	Invalid:  "invalid",
	Int:      "int",
	Uint:     "uint",
	Float:    "float",
	Bool:     "bool",
	String:   "string",
	Char:     "char",
	UUID:     "uuid",
	Time:     "time",
	Unzoned:  "unzoned-time",
	Duration: "duration",
	Bytes:    "bytes",
	Nullable: "nullable",
	Enum:     "enum",
	Flags:    "flags",
	Wrapper:  "wrapper",
	Sequence: "sequence",
	Mapping:  "mapping",
	Union:    "union",
	Object:   "object",
	Dynamic:  "dynamic",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Scalar reports whether values of this kind render as a single token.
func (k Kind) Scalar() bool {
	switch k {
	case Int, Uint, Float, Bool, String, Char, UUID, Time, Unzoned, Duration, Bytes, Enum, Flags:
		return true
	}
	return false
}

// SeqKind distinguishes the Go containers behind a Sequence.
type SeqKind uint8

const (
	Slice SeqKind = iota
	Array
	Iter
)

// Shape is the classified encoding structure of one Go type. Shapes are
// immutable once Classify returns and may form cycles through Elem, Key and
// Members.
type Shape struct {
	Kind Kind
	Type reflect.Type

	// Bits is the width of Int, Uint and Float shapes.
	Bits int

	// Elem is the inner shape of Nullable, Wrapper, Sequence and Mapping.
	Elem *Shape
	// Key is the key shape of Mapping.
	Key *Shape
	// Seq is the container behind a Sequence.
	Seq SeqKind

	// Enum formats Enum and Flags values.
	Enum *format.Enum

	// Field is the index path of the single member of a Wrapper.
	Field []int

	// Members of an Object, in output order.
	Members []*Member

	// Union holds the candidates of a Union shape.
	Union *UnionPlan
}

// CanBeNull reports whether a value of this shape can encode as null.
func (s *Shape) CanBeNull() bool {
	switch s.Kind {
	case Nullable, Dynamic, Bytes, Mapping:
		return true
	case Sequence:
		return s.Seq != Array
	}
	return false
}

// Member is one emitted key of an Object.
type Member struct {
	// Name is the resolved output name.
	Name string
	// GoName is the Go field name, or the union name for union groups.
	GoName string
	// Index is the reflect field index path; promoted fields have more than
	// one element.
	Index []int
	Shape *Shape

	// Predicate is the inclusion predicate, nil when the member is always
	// written.
	Predicate *Predicate
	// OmitEmpty omits zero values.
	OmitEmpty bool

	order    int
	hasOrder bool
	depth    int
	seq      int
	role     memberRole
	ifMethod string
}

type memberRole uint8

const (
	roleValue memberRole = iota
	roleUnion
	roleDiscriminant
)

// Predicate names a func() bool method deciding per instance whether a
// member is written.
type Predicate struct {
	Method string
	// Pointer reports that the method has a pointer receiver.
	Pointer bool
}

// UnionPlan is a group of members sharing one output name; at most one is
// written per instance.
type UnionPlan struct {
	Candidates []*Member
	// Discriminant is the reflect.Type member selecting the candidate, or nil.
	Discriminant *Member
}

// Markers recognized by identity.

// WrapperMarker, embedded in a struct, marks it as a primitive wrapper.
type WrapperMarker struct{}

// CharValue is a rune that encodes as a one-character string.
type CharValue rune

// UnzonedTime is a wall-clock timestamp whose zone is unspecified; it is
// resolved through Config.UnspecifiedTime before formatting.
type UnzonedTime struct {
	time.Time
}

var (
	wrapperType  = reflect.TypeFor[WrapperMarker]()
	charType     = reflect.TypeFor[CharValue]()
	unzonedType  = reflect.TypeFor[UnzonedTime]()
	timeType     = reflect.TypeFor[time.Time]()
	durationType = reflect.TypeFor[time.Duration]()
	uuidType     = reflect.TypeFor[uuid.UUID]()
	// TypeType is the type of union discriminant members.
	TypeType = reflect.TypeFor[reflect.Type]()
)
