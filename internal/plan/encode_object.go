package plan

import (
	"reflect"

	"github.com/hupe1980/shapejson/internal/format"
	"github.com/hupe1980/shapejson/internal/shape"
)

type memberEncoder struct {
	goName    string
	key       []byte // quoted name and separator
	index     []int
	shape     *shape.Shape
	encode    encodeFunc
	omitEmpty bool
	predicate *predicate
	union     *unionEncoder
}

type unionCandidate struct {
	index     []int
	typ       reflect.Type
	shape     *shape.Shape
	encode    encodeFunc
	predicate *predicate
}

type unionEncoder struct {
	owner        reflect.Type
	name         string
	candidates   []unionCandidate
	discriminant []int
}

func (b *builder) objectEncoder(s *shape.Shape) (encodeFunc, error) {
	t := s.Type
	sep := keySeparator(b.cfg.PrettyPrint)
	members := make([]memberEncoder, len(s.Members))
	for i, m := range s.Members {
		key := format.AppendString(nil, m.Name, b.cfg.JSONP)
		members[i] = memberEncoder{
			goName:    m.GoName,
			key:       append(key, sep...),
			index:     m.Index,
			shape:     m.Shape,
			omitEmpty: m.OmitEmpty,
			predicate: newPredicate(t, m.Predicate),
		}
		if m.Shape.Kind == shape.Union {
			u, err := b.unionEncoder(t, m)
			if err != nil {
				return nil, err
			}
			members[i].union = u
			continue
		}
		enc, err := b.encoder(m.Shape)
		if err != nil {
			return nil, err
		}
		members[i].encode = enc
	}
	excludeNulls := b.cfg.ExcludeNulls

	return func(e *encodeState, v reflect.Value) error {
		if err := e.enter(t); err != nil {
			return err
		}
		e.open('{')
		n := 0
		for i := range members {
			m := &members[i]
			fv, sel, ok, err := m.resolve(v)
			if err != nil {
				return err
			}
			if !ok || (excludeNulls && isNull(sel.shape, fv)) {
				continue
			}
			e.next(n)
			e.buf = append(e.buf, m.key...)
			if err := sel.encode(e, fv); err != nil {
				return annotateValueError(err, t, m.goName)
			}
			n++
		}
		e.close('}', n == 0)
		e.leave()
		return nil
	}, nil
}

// selected is the member value chosen for output together with its shape.
type selected struct {
	shape  *shape.Shape
	encode encodeFunc
}

// resolve decides whether m is written for the struct value v and returns
// the value to write.
func (m *memberEncoder) resolve(v reflect.Value) (reflect.Value, selected, bool, error) {
	if m.union != nil {
		return m.union.pick(v)
	}
	fv, ok := fieldByIndex(v, m.index)
	if !ok {
		return fv, selected{}, false, nil
	}
	if m.predicate != nil && !m.predicate.call(v) {
		return fv, selected{}, false, nil
	}
	if m.omitEmpty && fv.IsZero() {
		return fv, selected{}, false, nil
	}
	return fv, selected{shape: m.shape, encode: m.encode}, true, nil
}

func (b *builder) unionEncoder(owner reflect.Type, m *shape.Member) (*unionEncoder, error) {
	plan := m.Shape.Union
	u := &unionEncoder{owner: owner, name: m.Name, candidates: make([]unionCandidate, len(plan.Candidates))}
	for i, c := range plan.Candidates {
		enc, err := b.encoder(c.Shape)
		if err != nil {
			return nil, err
		}
		u.candidates[i] = unionCandidate{
			index:     c.Index,
			typ:       c.Shape.Type,
			shape:     c.Shape,
			encode:    enc,
			predicate: newPredicate(owner, c.Predicate),
		}
	}
	if plan.Discriminant != nil {
		u.discriminant = plan.Discriminant.Index
	}
	return u, nil
}

// pick selects the candidate to write. With a discriminant the candidate of
// the tagged type is written and a nil tag writes nothing. Without one the
// first eligible candidate in declared order wins: a candidate with a
// predicate is eligible when it returns true, any other when its value is
// not the zero value.
func (u *unionEncoder) pick(v reflect.Value) (reflect.Value, selected, bool, error) {
	if u.discriminant != nil {
		tv, ok := fieldByIndex(v, u.discriminant)
		if !ok || tv.IsNil() {
			return reflect.Value{}, selected{}, false, nil
		}
		tag := tv.Interface().(reflect.Type)
		for i := range u.candidates {
			c := &u.candidates[i]
			if c.typ != tag {
				continue
			}
			fv, ok := fieldByIndex(v, c.index)
			if !ok || (c.predicate != nil && !c.predicate.call(v)) {
				return fv, selected{}, false, nil
			}
			return fv, selected{shape: c.shape, encode: c.encode}, true, nil
		}
		return reflect.Value{}, selected{}, false, &UnionTagError{Type: u.owner, Member: u.name, Tag: tag}
	}

	for i := range u.candidates {
		c := &u.candidates[i]
		fv, ok := fieldByIndex(v, c.index)
		if !ok {
			continue
		}
		eligible := !fv.IsZero()
		if c.predicate != nil {
			eligible = c.predicate.call(v)
		}
		if eligible {
			return fv, selected{shape: c.shape, encode: c.encode}, true, nil
		}
	}
	return reflect.Value{}, selected{}, false, nil
}

// annotateValueError records the innermost struct member that held an
// unsupported value.
func annotateValueError(err error, owner reflect.Type, member string) error {
	if uve, ok := err.(*format.UnsupportedValueError); ok && uve.Owner == nil {
		uve.Owner, uve.Member = owner, member
	}
	return err
}
