package plan

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/hupe1980/shapejson/internal/conv"
	"github.com/hupe1980/shapejson/internal/shape"
)

// rawBits returns the two's complement bits of an integer value.
func rawBits(v reflect.Value) uint64 {
	if v.CanInt() {
		return uint64(v.Int())
	}
	return v.Uint()
}

// setRawBits stores raw into an integer value, narrowing it to the width
// of the value's type.
func setRawBits(v reflect.Value, raw uint64) {
	bits := v.Type().Bits()
	if v.CanInt() {
		v.SetInt(conv.SignExtend(raw, bits))
		return
	}
	v.SetUint(conv.Truncate(raw, bits))
}

// fieldByIndex follows index through embedded pointers. It reports false
// when a nil embedded pointer hides the field.
func fieldByIndex(v reflect.Value, index []int) (reflect.Value, bool) {
	for i, x := range index {
		if i > 0 && v.Kind() == reflect.Pointer {
			if v.IsNil() {
				return reflect.Value{}, false
			}
			v = v.Elem()
		}
		v = v.Field(x)
	}
	return v, true
}

var errUnexportedEmbed = errors.New("cannot allocate embedded pointer to unexported struct")

// fieldForSet follows index, allocating nil embedded pointers on the way.
func fieldForSet(v reflect.Value, index []int) (reflect.Value, error) {
	for i, x := range index {
		if i > 0 && v.Kind() == reflect.Pointer {
			if v.IsNil() {
				if !v.CanSet() {
					return reflect.Value{}, fmt.Errorf("%w %s", errUnexportedEmbed, v.Type().Elem())
				}
				v.Set(reflect.New(v.Type().Elem()))
			}
			v = v.Elem()
		}
		v = v.Field(x)
	}
	return v, nil
}

// isNull reports whether v of shape s encodes as null.
func isNull(s *shape.Shape, v reflect.Value) bool {
	switch s.Kind {
	case shape.Nullable, shape.Bytes, shape.Mapping:
		return v.IsNil()
	case shape.Sequence:
		return s.Seq != shape.Array && v.IsNil()
	case shape.Wrapper:
		return s.Elem.Kind == shape.Nullable && v.FieldByIndex(s.Field).IsNil()
	case shape.Dynamic:
		if v.IsNil() {
			return true
		}
		switch elem := v.Elem(); elem.Kind() {
		case reflect.Pointer, reflect.Map, reflect.Slice:
			return elem.IsNil()
		}
	}
	return false
}

// predicate is a compiled inclusion predicate.
type predicate struct {
	index   int
	pointer bool
}

func newPredicate(t reflect.Type, p *shape.Predicate) *predicate {
	if p == nil {
		return nil
	}
	recv := t
	if p.Pointer {
		recv = reflect.PointerTo(t)
	}
	m, _ := recv.MethodByName(p.Method)
	return &predicate{index: m.Index, pointer: p.Pointer}
}

// call evaluates the predicate on the struct value v.
func (p *predicate) call(v reflect.Value) bool {
	if p.pointer {
		if v.CanAddr() {
			v = v.Addr()
		} else {
			ptr := reflect.New(v.Type())
			ptr.Elem().Set(v)
			v = ptr
		}
	}
	return v.Method(p.index).Call(nil)[0].Bool()
}
