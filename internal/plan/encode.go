package plan

import (
	"encoding/base64"
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hupe1980/shapejson/internal/conv"
	"github.com/hupe1980/shapejson/internal/format"
	"github.com/hupe1980/shapejson/internal/shape"
)

func (b *builder) newEncoder(s *shape.Shape) (encodeFunc, error) {
	cfg := b.cfg
	switch s.Kind {
	case shape.Int:
		bits := s.Bits
		return func(e *encodeState, v reflect.Value) error {
			e.buf = format.AppendInt(e.buf, conv.SignExtend(rawBits(v), bits))
			return nil
		}, nil
	case shape.Uint:
		bits := s.Bits
		return func(e *encodeState, v reflect.Value) error {
			e.buf = format.AppendUint(e.buf, conv.Truncate(rawBits(v), bits))
			return nil
		}, nil
	case shape.Float:
		bits, t := s.Bits, s.Type
		return func(e *encodeState, v reflect.Value) (err error) {
			e.buf, err = format.AppendFloat(e.buf, v.Float(), bits)
			if uve, ok := err.(*format.UnsupportedValueError); ok {
				uve.Type = t
			}
			return err
		}, nil
	case shape.Bool:
		return func(e *encodeState, v reflect.Value) error {
			e.buf = strconv.AppendBool(e.buf, v.Bool())
			return nil
		}, nil
	case shape.String:
		return func(e *encodeState, v reflect.Value) error {
			e.buf = format.AppendString(e.buf, v.String(), cfg.JSONP)
			return nil
		}, nil
	case shape.Char:
		return func(e *encodeState, v reflect.Value) error {
			e.buf = format.AppendChar(e.buf, rune(v.Int()), cfg.JSONP)
			return nil
		}, nil
	case shape.UUID:
		return func(e *encodeState, v reflect.Value) error {
			e.buf = format.AppendUUID(e.buf, v.Interface().(uuid.UUID))
			return nil
		}, nil
	case shape.Time:
		return func(e *encodeState, v reflect.Value) error {
			e.buf = format.AppendTime(e.buf, v.Interface().(time.Time), cfg.Timestamps)
			return nil
		}, nil
	case shape.Unzoned:
		loc := cfg.Location()
		return func(e *encodeState, v reflect.Value) error {
			wall := v.Interface().(shape.UnzonedTime).Time
			e.buf = format.AppendTime(e.buf, format.Resolve(wall, loc), cfg.Timestamps)
			return nil
		}, nil
	case shape.Duration:
		return func(e *encodeState, v reflect.Value) error {
			e.buf = format.AppendDuration(e.buf, time.Duration(v.Int()), cfg.Timestamps)
			return nil
		}, nil
	case shape.Bytes:
		return func(e *encodeState, v reflect.Value) error {
			if v.IsNil() {
				e.null()
				return nil
			}
			e.buf = append(e.buf, '"')
			e.buf = base64.StdEncoding.AppendEncode(e.buf, v.Bytes())
			e.buf = append(e.buf, '"')
			return nil
		}, nil
	case shape.Enum, shape.Flags:
		enum := s.Enum
		return func(e *encodeState, v reflect.Value) error {
			e.buf = enum.Append(e.buf, rawBits(v), cfg.PrettyPrint, cfg.JSONP)
			return nil
		}, nil
	case shape.Nullable:
		elem, err := b.encoder(s.Elem)
		if err != nil {
			return nil, err
		}
		return func(e *encodeState, v reflect.Value) error {
			if v.IsNil() {
				e.null()
				return nil
			}
			return elem(e, v.Elem())
		}, nil
	case shape.Wrapper:
		inner, err := b.encoder(s.Elem)
		if err != nil {
			return nil, err
		}
		field := s.Field
		return func(e *encodeState, v reflect.Value) error {
			return inner(e, v.FieldByIndex(field))
		}, nil
	case shape.Sequence:
		return b.sequenceEncoder(s)
	case shape.Mapping:
		return b.mappingEncoder(s)
	case shape.Object:
		return b.objectEncoder(s)
	case shape.Dynamic:
		return b.dynamicEncoder(s), nil
	}
	return nil, &shape.BuildError{Type: s.Type, Reason: shape.UnsupportedType, Detail: "no encoder for " + s.Kind.String()}
}

func (b *builder) sequenceEncoder(s *shape.Shape) (encodeFunc, error) {
	elem, err := b.encoder(s.Elem)
	if err != nil {
		return nil, err
	}
	t := s.Type

	if s.Seq == shape.Iter {
		return func(e *encodeState, v reflect.Value) error {
			if v.IsNil() {
				e.null()
				return nil
			}
			if err := e.enter(t); err != nil {
				return err
			}
			e.open('[')
			var err error
			n := 0
			for x := range v.Seq() {
				e.next(n)
				if err = elem(e, x); err != nil {
					break
				}
				n++
			}
			if err != nil {
				return err
			}
			e.close(']', n == 0)
			e.leave()
			return nil
		}, nil
	}

	nilable := s.Seq == shape.Slice
	return func(e *encodeState, v reflect.Value) error {
		if nilable && v.IsNil() {
			e.null()
			return nil
		}
		if err := e.enter(t); err != nil {
			return err
		}
		e.open('[')
		n := v.Len()
		for i := range n {
			e.next(i)
			if err := elem(e, v.Index(i)); err != nil {
				return err
			}
		}
		e.close(']', n == 0)
		e.leave()
		return nil
	}, nil
}

type mapEntry struct {
	key   string
	value reflect.Value
}

func (b *builder) mappingEncoder(s *shape.Shape) (encodeFunc, error) {
	elem, err := b.encoder(s.Elem)
	if err != nil {
		return nil, err
	}
	keyText, err := b.keyFormatter(s.Key)
	if err != nil {
		return nil, err
	}
	t, elemShape := s.Type, s.Elem
	excludeNulls, jsonp := b.cfg.ExcludeNulls, b.cfg.JSONP
	sep := keySeparator(b.cfg.PrettyPrint)

	return func(e *encodeState, v reflect.Value) error {
		if v.IsNil() {
			e.null()
			return nil
		}
		if err := e.enter(t); err != nil {
			return err
		}
		entries := make([]mapEntry, 0, v.Len())
		for it := v.MapRange(); it.Next(); {
			val := it.Value()
			if excludeNulls && isNull(elemShape, val) {
				continue
			}
			entries = append(entries, mapEntry{key: keyText(it.Key()), value: val})
		}
		slices.SortFunc(entries, func(a, b mapEntry) int { return strings.Compare(a.key, b.key) })

		e.open('{')
		for i, ent := range entries {
			e.next(i)
			e.buf = format.AppendString(e.buf, ent.key, jsonp)
			e.buf = append(e.buf, sep...)
			if err := elem(e, ent.value); err != nil {
				return err
			}
		}
		e.close('}', len(entries) == 0)
		e.leave()
		return nil
	}, nil
}

// keyFormatter renders mapping keys as member-name text.
func (b *builder) keyFormatter(s *shape.Shape) (func(reflect.Value) string, error) {
	switch s.Kind {
	case shape.String:
		return reflect.Value.String, nil
	case shape.Int:
		return func(v reflect.Value) string { return strconv.FormatInt(v.Int(), 10) }, nil
	case shape.Uint:
		return func(v reflect.Value) string { return strconv.FormatUint(v.Uint(), 10) }, nil
	case shape.Enum, shape.Flags:
		enum, pretty := s.Enum, b.cfg.PrettyPrint
		return func(v reflect.Value) string { return enum.Name(rawBits(v), pretty) }, nil
	}
	return nil, &shape.BuildError{Type: s.Type, Reason: shape.UnsupportedKey, Detail: fmt.Sprintf("key type %s", s.Type)}
}

func keySeparator(pretty bool) string {
	if pretty {
		return ": "
	}
	return ":"
}

func (b *builder) dynamicEncoder(s *shape.Shape) encodeFunc {
	resolve, cfg, t := b.resolve, b.cfg, s.Type
	return func(e *encodeState, v reflect.Value) error {
		if v.IsNil() {
			e.null()
			return nil
		}
		elem := v.Elem()
		r, err := resolve(elem.Type(), cfg)
		if err != nil {
			return err
		}
		// a boxed root adds no nesting of its own
		if e.depth == 0 {
			return r.encode(e, elem)
		}
		if err := e.enter(t); err != nil {
			return err
		}
		if err := r.encode(e, elem); err != nil {
			return err
		}
		e.leave()
		return nil
	}
}
