package shapejson

import "github.com/hupe1980/shapejson/internal/plan"

// DefaultMaxDepth bounds the nesting of objects, sequences, mappings and
// dynamic values in one call.
const DefaultMaxDepth = plan.DefaultMaxDepth

type callOptions struct {
	maxDepth              int
	disallowUnknownFields bool
}

// CallOption configures a single Marshal or Unmarshal call. Call options are
// not part of the routine cache key.
type CallOption func(*callOptions)

// WithMaxDepth overrides DefaultMaxDepth for one call. Values <= 0 restore
// the default.
//
// Example:
//
//	data, err := shapejson.Marshal(tree, shapejson.Default, shapejson.WithMaxDepth(16))
//	if errors.Is(err, shapejson.ErrRecursionTooDeep) {
//	    // tree nests deeper than 16 levels
//	}
func WithMaxDepth(n int) CallOption {
	return func(o *callOptions) {
		o.maxDepth = n
	}
}

// WithDisallowUnknownFields makes Unmarshal fail on object members that
// match no destination instead of skipping them.
func WithDisallowUnknownFields() CallOption {
	return func(o *callOptions) {
		o.disallowUnknownFields = true
	}
}

func applyCallOptions(optFns []CallOption) callOptions {
	o := callOptions{
		maxDepth: DefaultMaxDepth,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

func (o callOptions) decode() plan.DecodeOptions {
	return plan.DecodeOptions{
		MaxDepth:              o.maxDepth,
		DisallowUnknownFields: o.disallowUnknownFields,
	}
}
