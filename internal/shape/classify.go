package shape

import (
	"errors"
	"reflect"
	"sort"
)

// Classify returns the shape of t under cfg. Self-referential types yield a
// cyclic shape graph; every distinct composite type is classified once.
func Classify(t reflect.Type, cfg Config) (*Shape, error) {
	if t == nil {
		return nil, buildError(nil, "", UnsupportedType, "nil type")
	}
	c := &classifier{cfg: cfg, seen: make(map[reflect.Type]*Shape)}
	return c.classify(t, false)
}

type classifier struct {
	cfg  Config
	seen map[reflect.Type]*Shape
}

// classify resolves t. nullable reports that a null can stand for the
// value, which lifts the requirement that enums have named values.
func (c *classifier) classify(t reflect.Type, nullable bool) (*Shape, error) {
	if s, ok := c.seen[t]; ok {
		return s, nil
	}

	switch t {
	case timeType:
		return &Shape{Kind: Time, Type: t}, nil
	case durationType:
		return &Shape{Kind: Duration, Type: t}, nil
	case uuidType:
		return &Shape{Kind: UUID, Type: t}, nil
	case unzonedType:
		return &Shape{Kind: Unzoned, Type: t}, nil
	case charType:
		return &Shape{Kind: Char, Type: t}, nil
	}

	if e, ok := LookupEnum(t); ok {
		if e.Len() == 0 && !nullable {
			return nil, buildError(t, "", EmptyEnum, "register a named value, use a pointer or the asint option")
		}
		kind := Enum
		if e.Flags() {
			kind = Flags
		}
		return &Shape{Kind: kind, Type: t, Bits: bitsOf(t.Kind()), Enum: e}, nil
	}

	switch k := t.Kind(); {
	case k == reflect.Pointer:
		s := &Shape{Kind: Nullable, Type: t}
		c.seen[t] = s
		elem, err := c.classify(t.Elem(), true)
		if err != nil {
			return nil, err
		}
		s.Elem = elem
		return s, nil
	case k == reflect.Bool:
		return &Shape{Kind: Bool, Type: t}, nil
	case isSigned(k):
		return &Shape{Kind: Int, Type: t, Bits: bitsOf(k)}, nil
	case isUnsigned(k):
		return &Shape{Kind: Uint, Type: t, Bits: bitsOf(k)}, nil
	case k == reflect.Float32 || k == reflect.Float64:
		return &Shape{Kind: Float, Type: t, Bits: bitsOf(k)}, nil
	case k == reflect.String:
		return &Shape{Kind: String, Type: t}, nil
	case k == reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			if _, isEnum := LookupEnum(t.Elem()); !isEnum {
				return &Shape{Kind: Bytes, Type: t}, nil
			}
		}
		return c.sequence(t, t.Elem(), Slice)
	case k == reflect.Array:
		return c.sequence(t, t.Elem(), Array)
	case k == reflect.Map:
		return c.mapping(t)
	case k == reflect.Interface:
		return &Shape{Kind: Dynamic, Type: t}, nil
	case k == reflect.Struct:
		if isWrapper(t) {
			return c.wrapper(t)
		}
		return c.object(t)
	case k == reflect.Func:
		if elem, ok := seqElem(t); ok {
			return c.sequence(t, elem, Iter)
		}
	}
	return nil, buildError(t, "", UnsupportedType, "%s values have no JSON representation", t.Kind())
}

func (c *classifier) sequence(t, elem reflect.Type, seq SeqKind) (*Shape, error) {
	s := &Shape{Kind: Sequence, Type: t, Seq: seq}
	c.seen[t] = s
	e, err := c.classify(elem, false)
	if err != nil {
		return nil, err
	}
	s.Elem = e
	return s, nil
}

// seqElem reports whether t has the signature of iter.Seq[E] and returns E.
func seqElem(t reflect.Type) (reflect.Type, bool) {
	if t.NumIn() != 1 || t.NumOut() != 0 || t.IsVariadic() {
		return nil, false
	}
	yield := t.In(0)
	if yield.Kind() != reflect.Func || yield.NumIn() != 1 || yield.NumOut() != 1 || yield.Out(0).Kind() != reflect.Bool {
		return nil, false
	}
	return yield.In(0), true
}

func (c *classifier) mapping(t reflect.Type) (*Shape, error) {
	kt := t.Key()
	if kt.Kind() != reflect.String && !isInteger(kt.Kind()) {
		return nil, buildError(t, "", UnsupportedKey, "key type %s", kt)
	}
	s := &Shape{Kind: Mapping, Type: t}
	c.seen[t] = s
	key, err := c.classify(kt, false)
	if err != nil {
		return nil, err
	}
	switch key.Kind {
	case String, Enum, Flags, Int, Uint:
	default:
		return nil, buildError(t, "", UnsupportedKey, "key type %s classifies as %s", kt, key.Kind)
	}
	elem, err := c.classify(t.Elem(), false)
	if err != nil {
		return nil, err
	}
	s.Key, s.Elem = key, elem
	return s, nil
}

func isWrapper(t reflect.Type) bool {
	for i := range t.NumField() {
		if f := t.Field(i); f.Anonymous && f.Type == wrapperType {
			return true
		}
	}
	return false
}

func (c *classifier) wrapper(t reflect.Type) (*Shape, error) {
	s := &Shape{Kind: Wrapper, Type: t}
	c.seen[t] = s

	var (
		field reflect.StructField
		dir   directive
		count int
	)
	for i := range t.NumField() {
		f := t.Field(i)
		if f.Type == wrapperType || !f.IsExported() {
			continue
		}
		d, err := parseDirective(f)
		if err != nil {
			return nil, annotate(err, t, f)
		}
		if d.ignore {
			continue
		}
		field, dir = f, d
		count++
	}
	if count != 1 {
		return nil, buildError(t, "", WrapperArity, "found %d exported members", count)
	}

	inner, err := c.memberShape(field, dir)
	if err != nil {
		return nil, annotate(err, t, field)
	}
	scalar := inner
	if scalar.Kind == Nullable {
		scalar = scalar.Elem
	}
	if !scalar.Kind.Scalar() {
		return nil, buildError(t, field.Name, WrapperArity, "member is %s, not a scalar", inner.Kind)
	}
	s.Elem, s.Field = inner, field.Index
	return s, nil
}

// memberShape classifies a member type, applying the asint directive.
func (c *classifier) memberShape(f reflect.StructField, d directive) (*Shape, error) {
	if !d.asInt {
		return c.classify(f.Type, false)
	}
	return asIntShape(f.Type, d.asIntKind)
}

func asIntShape(t reflect.Type, width reflect.Kind) (*Shape, error) {
	if t.Kind() == reflect.Pointer {
		elem, err := asIntShape(t.Elem(), width)
		if err != nil {
			return nil, err
		}
		return &Shape{Kind: Nullable, Type: t, Elem: elem}, nil
	}
	if !isInteger(t.Kind()) {
		return nil, buildError(t, "", InvalidDirective, "asint needs an integer type")
	}
	if width == reflect.Invalid {
		width = t.Kind()
	}
	s := &Shape{Kind: Int, Type: t, Bits: bitsOf(width)}
	if isUnsigned(width) {
		s.Kind = Uint
	}
	return s, nil
}

func (c *classifier) object(t reflect.Type) (*Shape, error) {
	s := &Shape{Kind: Object, Type: t}
	c.seen[t] = s

	var fields []*Member
	if err := c.collect(t, t, nil, 0, map[reflect.Type]bool{t: true}, &fields); err != nil {
		return nil, err
	}
	members, err := c.resolve(t, fields)
	if err != nil {
		return nil, err
	}
	s.Members = members
	return s, nil
}

// collect appends the candidate members of t, descending into embedded
// structs when inherited members are included.
func (c *classifier) collect(owner, t reflect.Type, index []int, depth int, visiting map[reflect.Type]bool, out *[]*Member) error {
	for i := range t.NumField() {
		f := t.Field(i)
		d, err := parseDirective(f)
		if err != nil {
			return annotate(err, owner, f)
		}
		if d.ignore {
			continue
		}
		path := append(append(make([]int, 0, len(index)+1), index...), i)

		if f.Anonymous {
			if !c.cfg.IncludeInherited {
				continue
			}
			ft := f.Type
			if ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct && !d.hasName && promotable(ft) {
				if visiting[ft] {
					continue
				}
				visiting[ft] = true
				err := c.collect(owner, ft, path, depth+1, visiting, out)
				delete(visiting, ft)
				if err != nil {
					return err
				}
				continue
			}
		}
		if !f.IsExported() {
			continue
		}

		name := f.Name
		if d.hasName {
			name = d.name
		}
		if !d.verbatim {
			name = c.cfg.Naming.Apply(name)
		}
		m := &Member{
			Name:      name,
			GoName:    f.Name,
			Index:     path,
			OmitEmpty: d.omitEmpty,
			order:     d.order,
			hasOrder:  d.hasOrder,
			depth:     depth,
			seq:       len(*out),
			ifMethod:  d.predicate,
		}
		switch {
		case d.unionType:
			m.role = roleDiscriminant
			m.Shape = &Shape{Kind: Dynamic, Type: f.Type}
		default:
			if d.union {
				m.role = roleUnion
			}
			if m.Shape, err = c.memberShape(f, d); err != nil {
				return annotate(err, owner, f)
			}
		}
		*out = append(*out, m)
	}
	return nil
}

// promotable reports whether an embedded struct contributes its members
// rather than being written as one member.
func promotable(t reflect.Type) bool {
	switch t {
	case timeType, unzonedType, uuidType:
		return false
	}
	if _, ok := LookupEnum(t); ok {
		return false
	}
	return !isWrapper(t)
}

// resolve groups candidates by output name, applies shadowing and union
// grouping, attaches predicates and orders the result.
func (c *classifier) resolve(t reflect.Type, fields []*Member) ([]*Member, error) {
	byName := make(map[string][]*Member, len(fields))
	var names []string
	for _, m := range fields {
		if _, ok := byName[m.Name]; !ok {
			names = append(names, m.Name)
		}
		byName[m.Name] = append(byName[m.Name], m)
	}

	members := make([]*Member, 0, len(names))
	for _, name := range names {
		group := byName[name]
		minDepth := group[0].depth
		for _, m := range group[1:] {
			minDepth = min(minDepth, m.depth)
		}
		top := group[:0:0]
		grouped := false
		for _, m := range group {
			if m.depth == minDepth {
				top = append(top, m)
				grouped = grouped || m.role != roleValue
			}
		}

		if grouped {
			u, err := c.union(t, name, top)
			if err != nil {
				return nil, err
			}
			members = append(members, u)
			continue
		}
		if len(top) > 1 {
			return nil, buildError(t, top[1].GoName, DuplicateName, "%s and %s both resolve to %q", top[0].GoName, top[1].GoName, name)
		}
		m := top[0]
		p, err := predicateFor(t, m)
		if err != nil {
			return nil, err
		}
		m.Predicate = p
		members = append(members, m)
	}

	sort.SliceStable(members, func(i, j int) bool {
		a, b := members[i], members[j]
		if a.hasOrder != b.hasOrder {
			return a.hasOrder
		}
		if a.hasOrder && a.order != b.order {
			return a.order < b.order
		}
		return a.seq < b.seq
	})
	return members, nil
}

// predicateFor resolves the inclusion predicate of m: the method named by
// the if directive, or by convention ShouldEncode<GoName>.
func predicateFor(t reflect.Type, m *Member) (*Predicate, error) {
	name := m.ifMethod
	if name == "" {
		name = "ShouldEncode" + m.GoName
	}
	if meth, ok := t.MethodByName(name); ok && isPredicate(meth.Type) {
		return &Predicate{Method: name}, nil
	}
	if meth, ok := reflect.PointerTo(t).MethodByName(name); ok && isPredicate(meth.Type) {
		return &Predicate{Method: name, Pointer: true}, nil
	}
	if m.ifMethod != "" {
		return nil, buildError(t, m.GoName, InvalidDirective, "no method %s() bool", name)
	}
	return nil, nil
}

// isPredicate reports whether a method type (receiver first) is func() bool.
func isPredicate(ft reflect.Type) bool {
	return ft.NumIn() == 1 && ft.NumOut() == 1 && ft.Out(0).Kind() == reflect.Bool
}

// annotate attaches the owning type and member to a BuildError raised while
// classifying field f of owner.
func annotate(err error, owner reflect.Type, f reflect.StructField) error {
	var be *BuildError
	if !errors.As(err, &be) {
		return err
	}
	if be.Type == nil || (be.Member == "" && be.Type == f.Type) {
		be.Type, be.Member = owner, f.Name
	}
	return err
}
