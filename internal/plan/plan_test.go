package plan

import (
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/go-json-experiment/json/jsontext"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/shapejson/internal/format"
	"github.com/hupe1980/shapejson/internal/shape"
)

type level uint8

const (
	levelLow level = iota + 1
	levelHigh
)

type access uint32

const (
	accessRead access = 1 << iota
	accessWrite
	accessExec
)

type empty int16

func init() {
	mustRegister(reflect.TypeFor[level](), false, []format.EnumMember{
		{Name: "Low", Value: uint64(levelLow)},
		{Name: "High", Value: uint64(levelHigh)},
	})
	mustRegister(reflect.TypeFor[access](), true, []format.EnumMember{
		{Name: "None", Value: 0},
		{Name: "Read", Value: uint64(accessRead)},
		{Name: "Write", Value: uint64(accessWrite)},
		{Name: "Exec", Value: uint64(accessExec)},
	})
	mustRegister(reflect.TypeFor[empty](), false, nil)
}

func mustRegister(t reflect.Type, flags bool, members []format.EnumMember) {
	if err := shape.RegisterEnum(t, flags, members); err != nil {
		panic(err)
	}
}

// routines is a minimal resolver for dynamic values.
type routines struct {
	mu sync.Mutex
	m  map[reflect.Type]map[shape.Config]*Routine
}

func newRoutines() *routines {
	return &routines{m: make(map[reflect.Type]map[shape.Config]*Routine)}
}

func (r *routines) resolve(t reflect.Type, cfg shape.Config) (*Routine, error) {
	r.mu.Lock()
	rt, ok := r.m[t][cfg]
	r.mu.Unlock()
	if ok {
		return rt, nil
	}
	rt, err := Build(t, cfg, r.resolve)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	if r.m[t] == nil {
		r.m[t] = make(map[shape.Config]*Routine)
	}
	r.m[t][cfg] = rt
	r.mu.Unlock()
	return rt, nil
}

var testRoutines = newRoutines()

func encode[T any](t *testing.T, v T, cfg shape.Config) string {
	t.Helper()
	out, err := tryEncode(v, cfg, 0)
	require.NoError(t, err)
	return out
}

func tryEncode[T any](v T, cfg shape.Config, maxDepth int) (string, error) {
	rt, err := testRoutines.resolve(reflect.TypeFor[T](), cfg)
	if err != nil {
		return "", err
	}
	out, err := rt.Append(nil, reflect.ValueOf(&v).Elem(), maxDepth)
	return string(out), err
}

func decode[T any](t *testing.T, data string, cfg shape.Config) T {
	t.Helper()
	v, err := tryDecode[T](data, cfg, DecodeOptions{})
	require.NoError(t, err)
	return v
}

func tryDecode[T any](data string, cfg shape.Config, opts DecodeOptions) (T, error) {
	var v T
	rt, err := testRoutines.resolve(reflect.TypeFor[T](), cfg)
	if err != nil {
		return v, err
	}
	dec := newTestDecoder(data)
	err = rt.Decode(dec, reflect.ValueOf(&v).Elem(), opts)
	return v, err
}

func newTestDecoder(data string) *jsontext.Decoder {
	return jsontext.NewDecoder(strings.NewReader(data), jsontext.AllowDuplicateNames(true))
}
