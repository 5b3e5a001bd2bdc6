package plan

import (
	"fmt"
	"reflect"

	"github.com/go-json-experiment/json/jsontext"

	"github.com/hupe1980/shapejson/internal/names"
	"github.com/hupe1980/shapejson/internal/shape"
)

type memberDecoder struct {
	index  []int
	decode decodeFunc
	union  *unionDecoder
}

type unionDecoder struct {
	candidates   []unionTarget
	discriminant []int
}

type unionTarget struct {
	index   []int
	typ     reflect.Type
	classes shape.ValueClass
	decode  decodeFunc
}

func (b *builder) objectDecoder(s *shape.Shape) (decodeFunc, error) {
	t := s.Type
	members := make([]memberDecoder, len(s.Members))
	memberNames := make([]string, len(s.Members))
	for i, m := range s.Members {
		memberNames[i] = m.Name
		if m.Shape.Kind == shape.Union {
			u, err := b.unionDecoder(m.Shape.Union)
			if err != nil {
				return nil, err
			}
			members[i] = memberDecoder{union: u}
			continue
		}
		dec, err := b.decoder(m.Shape)
		if err != nil {
			return nil, err
		}
		members[i] = memberDecoder{index: m.Index, decode: dec}
	}
	match := names.New(memberNames)

	return func(d *decodeState, v reflect.Value) error {
		if err := d.begin(t, '{'); err != nil {
			return d.nullOr(err)
		}
		for d.dec.PeekKind() != '}' {
			tok, err := d.dec.ReadToken()
			if err != nil {
				return err
			}
			i, ok := match.Match(tok.String())
			if !ok {
				if d.disallowUnknown {
					return d.fail(t, fmt.Errorf("%w %q", ErrUnknownField, tok.String()))
				}
				if err := d.dec.SkipValue(); err != nil {
					return err
				}
				continue
			}
			m := &members[i]
			if m.union != nil {
				if err := m.union.decode(d, t, v); err != nil {
					return err
				}
				continue
			}
			fv, err := fieldForSet(v, m.index)
			if err != nil {
				return d.fail(t, err)
			}
			if err := m.decode(d, fv); err != nil {
				return err
			}
		}
		return d.end()
	}, nil
}

func (b *builder) unionDecoder(plan *shape.UnionPlan) (*unionDecoder, error) {
	u := &unionDecoder{candidates: make([]unionTarget, len(plan.Candidates))}
	for i, c := range plan.Candidates {
		dec, err := b.decoder(c.Shape)
		if err != nil {
			return nil, err
		}
		u.candidates[i] = unionTarget{
			index:   c.Index,
			typ:     c.Shape.Type,
			classes: shape.ClassOf(c.Shape, b.cfg) &^ shape.ClassNull,
			decode:  dec,
		}
	}
	if plan.Discriminant != nil {
		u.discriminant = plan.Discriminant.Index
	}
	return u, nil
}

// decode populates the candidate whose value class matches the next token
// and records its type in the discriminant.
func (u *unionDecoder) decode(d *decodeState, owner reflect.Type, v reflect.Value) error {
	k := d.dec.PeekKind()
	if k == 'n' {
		_, err := d.dec.ReadToken()
		return err
	}
	class := classOfKind(k)
	for i := range u.candidates {
		c := &u.candidates[i]
		if c.classes&class == 0 {
			continue
		}
		fv, err := fieldForSet(v, c.index)
		if err != nil {
			return d.fail(owner, err)
		}
		if err := c.decode(d, fv); err != nil {
			return err
		}
		if u.discriminant != nil {
			tv, err := fieldForSet(v, u.discriminant)
			if err != nil {
				return d.fail(owner, err)
			}
			tv.Set(reflect.ValueOf(c.typ))
		}
		return nil
	}
	if k == 0 {
		if _, err := d.dec.ReadToken(); err != nil {
			return err
		}
	}
	return d.mismatch(owner, k)
}

func classOfKind(k jsontext.Kind) shape.ValueClass {
	switch k {
	case '0':
		return shape.ClassNumber
	case '"':
		return shape.ClassString
	case 't', 'f':
		return shape.ClassBool
	case '[':
		return shape.ClassArray
	case '{':
		return shape.ClassObject
	case 'n':
		return shape.ClassNull
	}
	return 0
}
