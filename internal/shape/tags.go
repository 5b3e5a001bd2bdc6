package shape

import (
	"reflect"
	"strconv"
	"strings"
)

// TagKey is the struct tag key read for member directives.
const TagKey = "shape"

// directive holds the member-level options parsed from struct tags.
type directive struct {
	name     string
	hasName  bool
	ignore   bool
	verbatim bool

	omitEmpty bool
	union     bool
	unionType bool

	asInt     bool
	asIntKind reflect.Kind // reflect.Invalid keeps the declared width

	order    int
	hasOrder bool

	predicate string
}

var asIntKinds = map[string]reflect.Kind{
	"int8":   reflect.Int8,
	"int16":  reflect.Int16,
	"int32":  reflect.Int32,
	"int64":  reflect.Int64,
	"uint8":  reflect.Uint8,
	"uint16": reflect.Uint16,
	"uint32": reflect.Uint32,
	"uint64": reflect.Uint64,
}

// parseDirective reads the `shape` and `json` tags of f. The shape tag wins
// for the name; omitempty is honored from either.
func parseDirective(f reflect.StructField) (directive, error) {
	var d directive

	if tag, ok := f.Tag.Lookup("json"); ok {
		name, opts, _ := strings.Cut(tag, ",")
		if tag == "-" {
			d.ignore = true
		} else if name != "" {
			d.name, d.hasName = name, true
		}
		for _, opt := range strings.Split(opts, ",") {
			if opt == "omitempty" {
				d.omitEmpty = true
			}
		}
	}

	tag, ok := f.Tag.Lookup(TagKey)
	if !ok {
		return d, nil
	}
	if tag == "-" {
		d.ignore = true
		return d, nil
	}
	d.ignore = false

	name, opts, _ := strings.Cut(tag, ",")
	if name != "" {
		d.name, d.hasName = name, true
	}
	if opts == "" {
		return d, nil
	}
	for _, opt := range strings.Split(opts, ",") {
		key, value, hasValue := strings.Cut(opt, "=")
		switch key {
		case "":
		case "omitempty":
			d.omitEmpty = true
		case "verbatim":
			d.verbatim = true
		case "empty":
			d.name, d.hasName = "", true
		case "union":
			d.union = true
		case "uniontype":
			d.unionType = true
		case "asint":
			d.asInt = true
		case "order":
			n, err := strconv.Atoi(value)
			if !hasValue || err != nil {
				return d, buildError(nil, f.Name, InvalidDirective, "order needs an integer, got %q", value)
			}
			d.order, d.hasOrder = n, true
		case "if":
			if value == "" {
				return d, buildError(nil, f.Name, InvalidDirective, "if needs a method name")
			}
			d.predicate = value
		default:
			kind, ok := asIntKinds[key]
			if !ok {
				return d, buildError(nil, f.Name, InvalidDirective, "unknown option %q", key)
			}
			d.asInt, d.asIntKind = true, kind
		}
	}
	if d.union && d.unionType {
		return d, buildError(nil, f.Name, InvalidDirective, "union and uniontype are exclusive")
	}
	return d, nil
}
