package shape

import (
	"iter"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/shapejson/internal/format"
)

type node struct {
	Name     string
	Next     *node
	Children []node
}

type celsius struct {
	WrapperMarker
	Degrees float64
}

type twoFields struct {
	WrapperMarker
	A int
	B int
}

type objectWrapper struct {
	WrapperMarker
	Inner node
}

type color uint8

type permission uint16

type hollow int32

func init() {
	_ = RegisterEnum(reflect.TypeFor[color](), false, []format.EnumMember{
		{Name: "Red", Value: 1},
		{Name: "Green", Value: 2},
	})
	_ = RegisterEnum(reflect.TypeFor[permission](), true, []format.EnumMember{
		{Name: "None", Value: 0},
		{Name: "Read", Value: 1},
		{Name: "Write", Value: 2},
	})
	_ = RegisterEnum(reflect.TypeFor[hollow](), false, nil)
}

func classify(t *testing.T, typ reflect.Type, cfg Config) *Shape {
	t.Helper()
	s, err := Classify(typ, cfg)
	require.NoError(t, err)
	return s
}

func requireReason(t *testing.T, err error, reason BuildReason) *BuildError {
	t.Helper()
	require.ErrorIs(t, err, ErrBuild)
	var be *BuildError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, reason, be.Reason, be.Error())
	return be
}

func TestClassifyScalars(t *testing.T) {
	tests := []struct {
		name string
		typ  reflect.Type
		kind Kind
		bits int
	}{
		{"int", reflect.TypeFor[int](), Int, 64},
		{"int8", reflect.TypeFor[int8](), Int, 8},
		{"uint16", reflect.TypeFor[uint16](), Uint, 16},
		{"uintptr", reflect.TypeFor[uintptr](), Uint, 64},
		{"float32", reflect.TypeFor[float32](), Float, 32},
		{"bool", reflect.TypeFor[bool](), Bool, 0},
		{"string", reflect.TypeFor[string](), String, 0},
		{"char", reflect.TypeFor[CharValue](), Char, 0},
		{"uuid", reflect.TypeFor[uuid.UUID](), UUID, 0},
		{"time", reflect.TypeFor[time.Time](), Time, 0},
		{"unzoned", reflect.TypeFor[UnzonedTime](), Unzoned, 0},
		{"duration", reflect.TypeFor[time.Duration](), Duration, 0},
		{"bytes", reflect.TypeFor[[]byte](), Bytes, 0},
		{"enum", reflect.TypeFor[color](), Enum, 8},
		{"flags", reflect.TypeFor[permission](), Flags, 16},
		{"any", reflect.TypeFor[any](), Dynamic, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := classify(t, tt.typ, Config{})
			assert.Equal(t, tt.kind, s.Kind)
			assert.Equal(t, tt.bits, s.Bits)
			assert.Equal(t, tt.typ, s.Type)
		})
	}
}

func TestClassifyContainers(t *testing.T) {
	s := classify(t, reflect.TypeFor[*int](), Config{})
	assert.Equal(t, Nullable, s.Kind)
	assert.Equal(t, Int, s.Elem.Kind)

	s = classify(t, reflect.TypeFor[[3]string](), Config{})
	assert.Equal(t, Sequence, s.Kind)
	assert.Equal(t, Array, s.Seq)
	assert.False(t, s.CanBeNull())

	s = classify(t, reflect.TypeFor[[]color](), Config{})
	assert.Equal(t, Sequence, s.Kind, "slices of enum bytes are sequences")
	assert.Equal(t, Enum, s.Elem.Kind)

	s = classify(t, reflect.TypeFor[iter.Seq[int]](), Config{})
	assert.Equal(t, Sequence, s.Kind)
	assert.Equal(t, Iter, s.Seq)
	assert.Equal(t, Int, s.Elem.Kind)

	s = classify(t, reflect.TypeFor[map[color][]int](), Config{})
	assert.Equal(t, Mapping, s.Kind)
	assert.Equal(t, Enum, s.Key.Kind)
	assert.Equal(t, Sequence, s.Elem.Kind)
}

func TestClassifySelfReference(t *testing.T) {
	s := classify(t, reflect.TypeFor[node](), Config{})
	require.Equal(t, Object, s.Kind)
	require.Len(t, s.Members, 3)

	next := s.Members[1]
	assert.Equal(t, "Next", next.Name)
	assert.Equal(t, Nullable, next.Shape.Kind)
	assert.Same(t, s, next.Shape.Elem)

	children := s.Members[2]
	assert.Same(t, s, children.Shape.Elem)
}

func TestClassifyMappingKeys(t *testing.T) {
	type point struct{ X, Y int }

	_, err := Classify(reflect.TypeFor[map[point]int](), Config{})
	be := requireReason(t, err, UnsupportedKey)
	assert.Contains(t, be.Error(), "point")

	_, err = Classify(reflect.TypeFor[map[time.Duration]int](), Config{})
	requireReason(t, err, UnsupportedKey)

	for _, typ := range []reflect.Type{
		reflect.TypeFor[map[string]int](),
		reflect.TypeFor[map[int64]int](),
		reflect.TypeFor[map[uint8]int](),
		reflect.TypeFor[map[permission]int](),
	} {
		_, err := Classify(typ, Config{})
		assert.NoError(t, err, typ.String())
	}
}

func TestClassifyWrapper(t *testing.T) {
	s := classify(t, reflect.TypeFor[celsius](), Config{})
	assert.Equal(t, Wrapper, s.Kind)
	assert.Equal(t, Float, s.Elem.Kind)
	assert.Equal(t, []int{1}, s.Field)

	_, err := Classify(reflect.TypeFor[twoFields](), Config{})
	requireReason(t, err, WrapperArity)

	_, err = Classify(reflect.TypeFor[objectWrapper](), Config{})
	requireReason(t, err, WrapperArity)
}

func TestClassifyEmptyEnum(t *testing.T) {
	_, err := Classify(reflect.TypeFor[hollow](), Config{})
	requireReason(t, err, EmptyEnum)

	s := classify(t, reflect.TypeFor[*hollow](), Config{})
	assert.Equal(t, Enum, s.Elem.Kind)

	type asInt struct {
		H hollow `shape:",asint"`
	}
	s = classify(t, reflect.TypeFor[asInt](), Config{})
	assert.Equal(t, Int, s.Members[0].Shape.Kind)
	assert.Equal(t, 32, s.Members[0].Shape.Bits)
}

func TestClassifyAsIntWidth(t *testing.T) {
	type widths struct {
		C color      `shape:",asint"`
		P permission `shape:",int8"`
		Q *color     `shape:",uint64"`
		S string     `shape:",asint"`
	}
	_, err := Classify(reflect.TypeFor[widths](), Config{})
	be := requireReason(t, err, InvalidDirective)
	assert.Equal(t, "S", be.Member)

	type valid struct {
		C color      `shape:",asint"`
		P permission `shape:",int8"`
		Q *color     `shape:",uint64"`
	}
	s := classify(t, reflect.TypeFor[valid](), Config{})
	assert.Equal(t, Uint, s.Members[0].Shape.Kind)
	assert.Equal(t, 8, s.Members[0].Shape.Bits)
	assert.Equal(t, Int, s.Members[1].Shape.Kind)
	assert.Equal(t, 8, s.Members[1].Shape.Bits)
	assert.Equal(t, Nullable, s.Members[2].Shape.Kind)
	assert.Equal(t, Uint, s.Members[2].Shape.Elem.Kind)
	assert.Equal(t, 64, s.Members[2].Shape.Elem.Bits)
}

func TestClassifyUnsupported(t *testing.T) {
	for _, typ := range []reflect.Type{
		reflect.TypeFor[chan int](),
		reflect.TypeFor[func()](),
		reflect.TypeFor[complex128](),
		reflect.TypeFor[struct{ C chan int }](),
	} {
		_, err := Classify(typ, Config{})
		requireReason(t, err, UnsupportedType)
	}
	_, err := Classify(nil, Config{})
	requireReason(t, err, UnsupportedType)
}

func TestNamingAndOrder(t *testing.T) {
	type order struct {
		URLPath string
		ID      int    `shape:",order=1"`
		Total   int    `json:"total_amount"`
		Raw     string `shape:"Raw_Name,verbatim"`
		Hidden  string `shape:"-"`
		Dash    string `shape:"-,"`
		Blank   string `shape:",empty"`
		Skipped string `json:"-"`
		First   int    `shape:",order=0"`
		private int
	}
	s := classify(t, reflect.TypeFor[order](), Config{Naming: CamelCase})

	var names []string
	for _, m := range s.Members {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"first", "id", "urlPath", "total_amount", "Raw_Name", "-", ""}, names)
}

func TestDuplicateName(t *testing.T) {
	type dup struct {
		A int `shape:"x"`
		B int `json:"x"`
	}
	_, err := Classify(reflect.TypeFor[dup](), Config{})
	be := requireReason(t, err, DuplicateName)
	assert.Equal(t, "B", be.Member)
}

type base struct {
	ID    int
	Label string
}

type derived struct {
	base
	Label string
	Extra bool
}

func TestInheritedMembers(t *testing.T) {
	s := classify(t, reflect.TypeFor[derived](), Config{})
	require.Len(t, s.Members, 2)
	assert.Equal(t, "Label", s.Members[0].Name)
	assert.Equal(t, "Extra", s.Members[1].Name)

	s = classify(t, reflect.TypeFor[derived](), Config{IncludeInherited: true})
	require.Len(t, s.Members, 3)
	assert.Equal(t, "ID", s.Members[0].Name)
	assert.Equal(t, []int{0, 0}, s.Members[0].Index)
	assert.Equal(t, "Label", s.Members[1].Name)
	assert.Equal(t, []int{1}, s.Members[1].Index, "shallower member shadows the promoted one")
}

type gated struct {
	A int
	B int `shape:",if=WantB"`
	C int `shape:",omitempty"`
}

func (g gated) ShouldEncodeA() bool { return g.A > 0 }
func (g *gated) WantB() bool        { return g.B > 0 }

func TestPredicates(t *testing.T) {
	s := classify(t, reflect.TypeFor[gated](), Config{})
	require.Len(t, s.Members, 3)
	assert.Equal(t, &Predicate{Method: "ShouldEncodeA"}, s.Members[0].Predicate)
	assert.Equal(t, &Predicate{Method: "WantB", Pointer: true}, s.Members[1].Predicate)
	assert.Nil(t, s.Members[2].Predicate)
	assert.True(t, s.Members[2].OmitEmpty)

	type missing struct {
		A int `shape:",if=Nope"`
	}
	_, err := Classify(reflect.TypeFor[missing](), Config{})
	requireReason(t, err, InvalidDirective)
}

func TestInvalidDirectives(t *testing.T) {
	type badOrder struct {
		A int `shape:",order=x"`
	}
	type badOption struct {
		A int `shape:",bogus"`
	}
	type both struct {
		A int `shape:"a,union,uniontype"`
	}
	for _, typ := range []reflect.Type{
		reflect.TypeFor[badOrder](),
		reflect.TypeFor[badOption](),
		reflect.TypeFor[both](),
	} {
		_, err := Classify(typ, Config{})
		be := requireReason(t, err, InvalidDirective)
		assert.Equal(t, typ, be.Type)
		assert.Equal(t, "A", be.Member)
	}
}

func TestCamelCase(t *testing.T) {
	tests := map[string]string{
		"Name":       "name",
		"ID":         "id",
		"URLPath":    "urlPath",
		"HTTPServer": "httpServer",
		"already":    "already",
		"X":          "x",
		"":           "",
		"ÄrgerNis":   "ärgerNis",
	}
	for in, want := range tests {
		assert.Equal(t, want, CamelCase.Apply(in), in)
		assert.Equal(t, in, Verbatim.Apply(in), in)
	}
}

func TestConfigKey(t *testing.T) {
	a := Config{PrettyPrint: true, Timestamps: format.ISO8601}
	b := Config{PrettyPrint: true, Timestamps: format.ISO8601}
	c := Config{PrettyPrint: true, Timestamps: format.RFC1123}
	assert.Equal(t, a.Key(), b.Key())
	assert.NotEqual(t, a.Key(), c.Key())
	assert.Len(t, Config{}.Key(), 7)
	assert.Equal(t, "{pretty iso8601 verbatim unspecified-local}", a.String())
	assert.Equal(t, time.UTC, Config{UnspecifiedTime: AsUTC}.Location())
}
