package shape

import (
	"reflect"
	"strings"
)

// ValueClass is a set of JSON value classes, identified by the first token
// of a value.
type ValueClass uint8

const (
	ClassNumber ValueClass = 1 << iota
	ClassString
	ClassBool
	ClassArray
	ClassObject
	ClassNull
)

// ClassAny is every class.
const ClassAny = ClassNumber | ClassString | ClassBool | ClassArray | ClassObject | ClassNull

func (v ValueClass) String() string {
	names := []string{"number", "string", "bool", "array", "object", "null"}
	var parts []string
	for i, n := range names {
		if v&(1<<i) != 0 {
			parts = append(parts, n)
		}
	}
	return strings.Join(parts, "|")
}

// ClassOf returns the JSON value classes values of s can take under cfg.
func ClassOf(s *Shape, cfg Config) ValueClass {
	switch s.Kind {
	case Int, Uint, Float:
		return ClassNumber
	case Bool:
		return ClassBool
	case String, Char, UUID:
		return ClassString
	case Bytes:
		return ClassString | ClassNull
	case Time, Unzoned, Duration:
		if cfg.Timestamps.Numeric() {
			return ClassNumber
		}
		return ClassString
	case Enum, Flags:
		// unnamed values fall back to the bare integer
		return ClassString | ClassNumber
	case Wrapper:
		return ClassOf(s.Elem, cfg)
	case Nullable:
		return ClassOf(s.Elem, cfg) | ClassNull
	case Sequence:
		if s.Seq == Array {
			return ClassArray
		}
		return ClassArray | ClassNull
	case Mapping:
		return ClassObject | ClassNull
	case Object:
		return ClassObject
	}
	return ClassAny
}

// union validates a group of members sharing name and folds it into one
// Union member.
func (c *classifier) union(owner reflect.Type, name string, group []*Member) (*Member, error) {
	plan := &UnionPlan{}
	for _, m := range group {
		switch m.role {
		case roleUnion:
			plan.Candidates = append(plan.Candidates, m)
		case roleDiscriminant:
			if plan.Discriminant != nil {
				return nil, buildError(owner, m.GoName, DiscriminantMismatch, "%q already has discriminant %s", name, plan.Discriminant.GoName)
			}
			if m.Shape.Type != TypeType {
				return nil, buildError(owner, m.GoName, DiscriminantMismatch, "discriminant must be reflect.Type, not %s", m.Shape.Type)
			}
			plan.Discriminant = m
		default:
			return nil, buildError(owner, m.GoName, DuplicateName, "%q is shared with union members but %s is not one", name, m.GoName)
		}
	}
	if len(plan.Candidates) == 0 {
		return nil, buildError(owner, plan.Discriminant.GoName, DiscriminantMismatch, "%q has no union candidates", name)
	}

	classes := make([]ValueClass, len(plan.Candidates))
	for i, a := range plan.Candidates {
		classes[i] = ClassOf(a.Shape, c.cfg) &^ ClassNull
		for j, b := range plan.Candidates[:i] {
			if a.Shape.Type == b.Shape.Type {
				return nil, buildError(owner, a.GoName, DiscriminantMismatch, "%s and %s share type %s", b.GoName, a.GoName, a.Shape.Type)
			}
			if overlap := classes[i] & classes[j]; overlap != 0 {
				return nil, buildError(owner, a.GoName, AmbiguousUnion, "%s and %s both decode from %s", b.GoName, a.GoName, overlap)
			}
		}
		p, err := predicateFor(owner, a)
		if err != nil {
			return nil, err
		}
		a.Predicate = p
	}

	first := group[0]
	u := &Member{
		Name:   name,
		GoName: name,
		Shape:  &Shape{Kind: Union, Type: owner, Union: plan},
		seq:    first.seq,
	}
	for _, m := range group {
		if m.hasOrder {
			u.order, u.hasOrder = m.order, true
			break
		}
	}
	return u, nil
}
