package format

import (
	"fmt"
	"strconv"
	"strings"
)

// EnumMember is one named value of an enumerated type. Value holds the raw
// bits; signed values are sign-extended to 64 bits.
type EnumMember struct {
	Name  string
	Value uint64
}

// Enum renders and parses the values of one enumerated or flags type.
// It is immutable after construction and safe for concurrent use.
type Enum struct {
	typeName string
	flags    bool
	signed   bool
	members  []EnumMember
	byValue  map[uint64]string
	byName   map[string]uint64
	zeroName string
	hasZero  bool
}

// NewEnum builds the formatter for typeName. Members keep their declared
// order, which is also the order flag names are joined in.
func NewEnum(typeName string, flags, signed bool, members []EnumMember) (*Enum, error) {
	e := &Enum{
		typeName: typeName,
		flags:    flags,
		signed:   signed,
		members:  append([]EnumMember(nil), members...),
		byValue:  make(map[uint64]string, len(members)),
		byName:   make(map[string]uint64, len(members)),
	}
	for _, m := range members {
		if m.Name == "" {
			return nil, fmt.Errorf("enum %s: empty name for value %d", typeName, m.Value)
		}
		if _, dup := e.byName[m.Name]; dup {
			return nil, fmt.Errorf("enum %s: duplicate name %q", typeName, m.Name)
		}
		e.byName[m.Name] = m.Value
		if _, dup := e.byValue[m.Value]; !dup {
			e.byValue[m.Value] = m.Name
		}
		if m.Value == 0 && !e.hasZero {
			e.zeroName = m.Name
			e.hasZero = true
		}
	}
	return e, nil
}

// TypeName returns the name of the enumerated type.
func (e *Enum) TypeName() string { return e.typeName }

// Flags reports whether values combine by bitwise OR.
func (e *Enum) Flags() bool { return e.flags }

// Len returns the number of named values.
func (e *Enum) Len() int { return len(e.members) }

// Name returns the key text for raw: the declared name, the joined flag
// names, or the base-10 integer when raw has no name.
func (e *Enum) Name(raw uint64, pretty bool) string {
	if s, ok := e.lookup(raw, pretty); ok {
		return s
	}
	return e.integerText(raw)
}

// Append appends raw as a quoted name. Values without a name, and flag
// combinations that cannot be decomposed into named bits, fall back to the
// bare integer.
func (e *Enum) Append(dst []byte, raw uint64, pretty, jsonp bool) []byte {
	if s, ok := e.lookup(raw, pretty); ok {
		return AppendString(dst, s, jsonp)
	}
	if e.signed {
		return AppendInt(dst, int64(raw))
	}
	return AppendUint(dst, raw)
}

func (e *Enum) lookup(raw uint64, pretty bool) (string, bool) {
	if !e.flags {
		name, ok := e.byValue[raw]
		return name, ok
	}
	if raw == 0 {
		return e.zeroName, e.hasZero
	}
	sep := ","
	if pretty {
		sep = ", "
	}
	var b strings.Builder
	remaining := raw
	for _, m := range e.members {
		if m.Value == 0 || raw&m.Value != m.Value || remaining&m.Value == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(m.Name)
		remaining &^= m.Value
	}
	if remaining != 0 {
		return "", false
	}
	return b.String(), true
}

func (e *Enum) integerText(raw uint64) string {
	if e.signed {
		return strconv.FormatInt(int64(raw), 10)
	}
	return strconv.FormatUint(raw, 10)
}

// Parse maps a name (or a comma separated list of names for flags, or the
// integer text) back to raw bits.
func (e *Enum) Parse(s string) (uint64, error) {
	if v, ok := e.byName[s]; ok {
		return v, nil
	}
	if raw, ok := e.parseInteger(s); ok {
		return raw, nil
	}
	if !e.flags {
		return 0, syntaxError(e.typeName, s, nil)
	}
	var raw uint64
	for _, part := range strings.Split(s, ",") {
		v, ok := e.byName[strings.TrimSpace(part)]
		if !ok {
			return 0, syntaxError(e.typeName, s, nil)
		}
		raw |= v
	}
	return raw, nil
}

func (e *Enum) parseInteger(s string) (uint64, bool) {
	if e.signed {
		v, err := strconv.ParseInt(s, 10, 64)
		return uint64(v), err == nil
	}
	v, err := strconv.ParseUint(s, 10, 64)
	return v, err == nil
}
