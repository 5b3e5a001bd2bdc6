package plan

import (
	"encoding/base64"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/go-json-experiment/json/jsontext"

	"github.com/hupe1980/shapejson/internal/conv"
	"github.com/hupe1980/shapejson/internal/format"
	"github.com/hupe1980/shapejson/internal/shape"
)

// newDecoder compiles the decoder for s. A JSON null leaves scalars
// untouched and resets nullable targets, as encoding/json does.
func (b *builder) newDecoder(s *shape.Shape) (decodeFunc, error) {
	cfg, t := b.cfg, s.Type
	switch s.Kind {
	case shape.Int:
		bits := s.Bits
		return scalar(t, '0', func(d *decodeState, v reflect.Value, tok jsontext.Token) error {
			n, err := format.ParseInt(tok.String(), bits)
			if err != nil {
				return err
			}
			setRawBits(v, uint64(n))
			return nil
		}), nil
	case shape.Uint:
		bits := s.Bits
		return scalar(t, '0', func(d *decodeState, v reflect.Value, tok jsontext.Token) error {
			n, err := format.ParseUint(tok.String(), bits)
			if err != nil {
				return err
			}
			setRawBits(v, n)
			return nil
		}), nil
	case shape.Float:
		bits := s.Bits
		return scalar(t, '0', func(d *decodeState, v reflect.Value, tok jsontext.Token) error {
			f, err := format.ParseFloat(tok.String(), bits)
			if err != nil {
				return err
			}
			v.SetFloat(f)
			return nil
		}), nil
	case shape.Bool:
		return func(d *decodeState, v reflect.Value) error {
			tok, err := d.dec.ReadToken()
			if err != nil {
				return err
			}
			switch tok.Kind() {
			case 'n':
			case 't', 'f':
				v.SetBool(tok.Bool())
			default:
				return d.mismatch(t, tok.Kind())
			}
			return nil
		}, nil
	case shape.String:
		return scalar(t, '"', func(d *decodeState, v reflect.Value, tok jsontext.Token) error {
			v.SetString(tok.String())
			return nil
		}), nil
	case shape.Char:
		return scalar(t, '"', func(d *decodeState, v reflect.Value, tok jsontext.Token) error {
			r, err := format.ParseChar(tok.String())
			if err != nil {
				return err
			}
			v.SetInt(int64(r))
			return nil
		}), nil
	case shape.UUID:
		return scalar(t, '"', func(d *decodeState, v reflect.Value, tok jsontext.Token) error {
			u, err := format.ParseUUID(tok.String())
			if err != nil {
				return err
			}
			v.Set(reflect.ValueOf(u))
			return nil
		}), nil
	case shape.Time, shape.Unzoned:
		return b.timeDecoder(s), nil
	case shape.Duration:
		return func(d *decodeState, v reflect.Value) error {
			tok, err := d.dec.ReadToken()
			if err != nil {
				return err
			}
			var dur time.Duration
			switch tok.Kind() {
			case 'n':
				return nil
			case '0':
				dur, err = format.ParseDurationNumber(tok.String(), cfg.Timestamps)
			case '"':
				dur, err = format.ParseDurationString(tok.String())
			default:
				return d.mismatch(t, tok.Kind())
			}
			if err != nil {
				return d.fail(t, err)
			}
			v.SetInt(int64(dur))
			return nil
		}, nil
	case shape.Bytes:
		return func(d *decodeState, v reflect.Value) error {
			tok, err := d.dec.ReadToken()
			if err != nil {
				return err
			}
			switch tok.Kind() {
			case 'n':
				v.SetZero()
				return nil
			case '"':
				raw, err := base64.StdEncoding.DecodeString(tok.String())
				if err != nil {
					return d.fail(t, err)
				}
				v.SetBytes(raw)
				return nil
			}
			return d.mismatch(t, tok.Kind())
		}, nil
	case shape.Enum, shape.Flags:
		enum := s.Enum
		return func(d *decodeState, v reflect.Value) error {
			tok, err := d.dec.ReadToken()
			if err != nil {
				return err
			}
			switch tok.Kind() {
			case 'n':
				return nil
			case '"', '0':
				raw, err := parseEnum(enum, t, tok.String())
				if err != nil {
					return d.fail(t, err)
				}
				setRawBits(v, raw)
				return nil
			}
			return d.mismatch(t, tok.Kind())
		}, nil
	case shape.Nullable:
		elem, err := b.decoder(s.Elem)
		if err != nil {
			return nil, err
		}
		elemType := t.Elem()
		return func(d *decodeState, v reflect.Value) error {
			if d.dec.PeekKind() == 'n' {
				if _, err := d.dec.ReadToken(); err != nil {
					return err
				}
				v.SetZero()
				return nil
			}
			if v.IsNil() {
				v.Set(reflect.New(elemType))
			}
			return elem(d, v.Elem())
		}, nil
	case shape.Wrapper:
		inner, err := b.decoder(s.Elem)
		if err != nil {
			return nil, err
		}
		field := s.Field
		return func(d *decodeState, v reflect.Value) error {
			return inner(d, v.FieldByIndex(field))
		}, nil
	case shape.Sequence:
		return b.sequenceDecoder(s)
	case shape.Mapping:
		return b.mappingDecoder(s)
	case shape.Object:
		return b.objectDecoder(s)
	case shape.Dynamic:
		return b.dynamicDecoder(s), nil
	}
	return nil, &shape.BuildError{Type: t, Reason: shape.UnsupportedType, Detail: "no decoder for " + s.Kind.String()}
}

// scalar decodes a single token of kind want; null is ignored.
func scalar(t reflect.Type, want jsontext.Kind, set func(*decodeState, reflect.Value, jsontext.Token) error) decodeFunc {
	return func(d *decodeState, v reflect.Value) error {
		tok, err := d.dec.ReadToken()
		if err != nil {
			return err
		}
		switch tok.Kind() {
		case 'n':
			return nil
		case want:
			if err := set(d, v, tok); err != nil {
				return d.fail(t, err)
			}
			return nil
		}
		return d.mismatch(t, tok.Kind())
	}
}

func (b *builder) timeDecoder(s *shape.Shape) decodeFunc {
	t, unzoned := s.Type, s.Kind == shape.Unzoned
	timestamps, loc := b.cfg.Timestamps, b.cfg.Location()
	return func(d *decodeState, v reflect.Value) error {
		tok, err := d.dec.ReadToken()
		if err != nil {
			return err
		}
		var (
			ts    time.Time
			zoned = true
		)
		switch tok.Kind() {
		case 'n':
			return nil
		case '0':
			ts, err = format.ParseTimeNumber(tok.String(), timestamps)
		case '"':
			ts, zoned, err = format.ParseTimeString(tok.String())
		default:
			return d.mismatch(t, tok.Kind())
		}
		if err != nil {
			return d.fail(t, err)
		}
		if unzoned {
			// keep the wall clock as seen in the configured zone
			if zoned {
				ts = ts.In(loc)
			}
			v.Set(reflect.ValueOf(shape.UnzonedTime{Time: format.Resolve(ts, time.UTC)}))
			return nil
		}
		if !zoned {
			ts = format.Resolve(ts, loc)
		}
		v.Set(reflect.ValueOf(ts))
		return nil
	}
}

func (b *builder) sequenceDecoder(s *shape.Shape) (decodeFunc, error) {
	elem, err := b.decoder(s.Elem)
	if err != nil {
		return nil, err
	}
	t := s.Type

	switch s.Seq {
	case shape.Array:
		return func(d *decodeState, v reflect.Value) error {
			if err := d.begin(t, '['); err != nil {
				return d.nullOr(err)
			}
			n := v.Len()
			i := 0
			for ; d.dec.PeekKind() != ']'; i++ {
				if i >= n {
					if err := d.dec.SkipValue(); err != nil {
						return err
					}
					continue
				}
				v.Index(i).SetZero()
				if err := elem(d, v.Index(i)); err != nil {
					return err
				}
			}
			for ; i < n; i++ {
				v.Index(i).SetZero()
			}
			return d.end()
		}, nil
	case shape.Iter:
		sliceType := reflect.SliceOf(t.In(0).In(0))
		return func(d *decodeState, v reflect.Value) error {
			items := reflect.New(sliceType).Elem()
			if err := decodeSlice(d, t, elem, items); err != nil {
				if errors.Is(err, errNull) {
					v.SetZero()
					return nil
				}
				return err
			}
			v.Set(reflect.MakeFunc(t, func(args []reflect.Value) []reflect.Value {
				yield := args[0]
				for i := range items.Len() {
					if !yield.Call([]reflect.Value{items.Index(i)})[0].Bool() {
						break
					}
				}
				return nil
			}))
			return nil
		}, nil
	}
	return func(d *decodeState, v reflect.Value) error {
		if err := decodeSlice(d, t, elem, v); err != nil {
			if errors.Is(err, errNull) {
				v.SetZero()
				return nil
			}
			return err
		}
		return nil
	}, nil
}

// decodeSlice fills the slice v from a JSON array, reusing its backing
// array. A JSON null is reported as errNull.
func decodeSlice(d *decodeState, t reflect.Type, elem decodeFunc, v reflect.Value) error {
	if err := d.begin(t, '['); err != nil {
		return err
	}
	i := 0
	for ; d.dec.PeekKind() != ']'; i++ {
		if i >= v.Cap() {
			v.Grow(1)
		}
		if i >= v.Len() {
			v.SetLen(i + 1)
		}
		v.Index(i).SetZero()
		if err := elem(d, v.Index(i)); err != nil {
			return err
		}
	}
	v.SetLen(i)
	if v.IsNil() {
		v.Set(reflect.MakeSlice(v.Type(), 0, 0))
	}
	return d.end()
}

func (b *builder) mappingDecoder(s *shape.Shape) (decodeFunc, error) {
	elem, err := b.decoder(s.Elem)
	if err != nil {
		return nil, err
	}
	parseKey, err := keyParser(s.Key)
	if err != nil {
		return nil, err
	}
	t, keyType, elemType := s.Type, s.Type.Key(), s.Type.Elem()

	return func(d *decodeState, v reflect.Value) error {
		if err := d.begin(t, '{'); err != nil {
			if errors.Is(err, errNull) {
				v.SetZero()
				return nil
			}
			return err
		}
		if v.IsNil() {
			v.Set(reflect.MakeMap(t))
		}
		for d.dec.PeekKind() != '}' {
			tok, err := d.dec.ReadToken()
			if err != nil {
				return err
			}
			key := reflect.New(keyType).Elem()
			if err := parseKey(key, tok.String()); err != nil {
				return d.fail(t, err)
			}
			val := reflect.New(elemType).Elem()
			if err := elem(d, val); err != nil {
				return err
			}
			v.SetMapIndex(key, val)
		}
		return d.end()
	}, nil
}

// parseEnum parses enum text and rejects integers outside the range of t.
func parseEnum(enum *format.Enum, t reflect.Type, text string) (uint64, error) {
	raw, err := enum.Parse(text)
	if err != nil {
		return 0, err
	}
	var fits bool
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		fits = conv.FitsInt(int64(raw), t.Bits())
	default:
		fits = conv.FitsUint(raw, t.Bits())
	}
	if !fits {
		return 0, fmt.Errorf("%w: %s overflows %s", ErrTypeMismatch, text, t)
	}
	return raw, nil
}

func keyParser(s *shape.Shape) (func(reflect.Value, string) error, error) {
	switch s.Kind {
	case shape.String:
		return func(v reflect.Value, text string) error {
			v.SetString(text)
			return nil
		}, nil
	case shape.Int:
		bits := s.Bits
		return func(v reflect.Value, text string) error {
			n, err := format.ParseInt(text, bits)
			if err != nil {
				return err
			}
			v.SetInt(n)
			return nil
		}, nil
	case shape.Uint:
		bits := s.Bits
		return func(v reflect.Value, text string) error {
			n, err := format.ParseUint(text, bits)
			if err != nil {
				return err
			}
			v.SetUint(n)
			return nil
		}, nil
	case shape.Enum, shape.Flags:
		enum, t := s.Enum, s.Type
		return func(v reflect.Value, text string) error {
			raw, err := parseEnum(enum, t, text)
			if err != nil {
				return err
			}
			setRawBits(v, raw)
			return nil
		}, nil
	}
	return nil, &shape.BuildError{Type: s.Type, Reason: shape.UnsupportedKey, Detail: fmt.Sprintf("key type %s", s.Type)}
}

func (b *builder) dynamicDecoder(s *shape.Shape) decodeFunc {
	resolve, cfg, t := b.resolve, b.cfg, s.Type
	return func(d *decodeState, v reflect.Value) error {
		// decode into the value a non-nil pointer refers to
		if !v.IsNil() {
			if p := v.Elem(); p.Kind() == reflect.Pointer && !p.IsNil() {
				r, err := resolve(p.Type().Elem(), cfg)
				if err != nil {
					return err
				}
				if d.depth == 0 {
					return r.decode(d, p.Elem())
				}
				if err := d.enter(t); err != nil {
					return err
				}
				if err := r.decode(d, p.Elem()); err != nil {
					return err
				}
				d.leave()
				return nil
			}
		}
		if t.NumMethod() != 0 {
			return d.fail(t, fmt.Errorf("%w: cannot choose a concrete type for %s", ErrTypeMismatch, t))
		}
		x, err := d.decodeAny(t)
		if err != nil {
			return err
		}
		if x == nil {
			v.SetZero()
			return nil
		}
		v.Set(reflect.ValueOf(x))
		return nil
	}
}

// decodeAny decodes a value into the generic representation: map[string]any,
// []any, string, float64, bool or nil.
func (d *decodeState) decodeAny(t reflect.Type) (any, error) {
	switch d.dec.PeekKind() {
	case '{':
		if err := d.begin(t, '{'); err != nil {
			return nil, err
		}
		m := make(map[string]any)
		for d.dec.PeekKind() != '}' {
			tok, err := d.dec.ReadToken()
			if err != nil {
				return nil, err
			}
			name := tok.String()
			val, err := d.decodeAny(t)
			if err != nil {
				return nil, err
			}
			m[name] = val
		}
		return m, d.end()
	case '[':
		if err := d.begin(t, '['); err != nil {
			return nil, err
		}
		items := make([]any, 0)
		for d.dec.PeekKind() != ']' {
			val, err := d.decodeAny(t)
			if err != nil {
				return nil, err
			}
			items = append(items, val)
		}
		return items, d.end()
	}
	tok, err := d.dec.ReadToken()
	if err != nil {
		return nil, err
	}
	switch tok.Kind() {
	case 'n':
		return nil, nil
	case 't', 'f':
		return tok.Bool(), nil
	case '"':
		return tok.String(), nil
	case '0':
		f, err := strconv.ParseFloat(tok.String(), 64)
		if err != nil {
			return nil, d.fail(t, err)
		}
		return f, nil
	}
	return nil, d.mismatch(t, tok.Kind())
}
