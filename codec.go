package shapejson

import (
	"bytes"
	"io"
	"reflect"

	"github.com/hupe1980/shapejson/internal/plan"
)

// Codec is a routine precompiled for T under one Config. It skips the cache
// lookup of the package-level functions and is safe for concurrent use.
type Codec[T any] struct {
	cfg     Config
	routine *plan.Routine
}

// For compiles the routine for T under cfg. Interface types such as any
// compile to the dynamic path.
//
// Example:
//
//	orders, err := shapejson.For[Order](shapejson.ISO8601)
//	if err != nil {
//	    return err // *BuildError: Order cannot be encoded
//	}
//	data, err := orders.Marshal(order)
func For[T any](cfg Config) (*Codec[T], error) {
	rt, err := routineFor(reflect.TypeFor[T](), cfg)
	if err != nil {
		return nil, err
	}
	return &Codec[T]{cfg: cfg, routine: rt}, nil
}

// MustFor is like For but panics if T cannot be compiled. It is intended
// for package-level variables.
func MustFor[T any](cfg Config) *Codec[T] {
	c, err := For[T](cfg)
	if err != nil {
		panic(err)
	}
	return c
}

// Config returns the configuration c was compiled for.
func (c *Codec[T]) Config() Config { return c.cfg }

// Marshal encodes v.
func (c *Codec[T]) Marshal(v T, opts ...CallOption) ([]byte, error) {
	out, err := c.Append(nil, v, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Append encodes v onto dst. On error the returned slice holds the output
// written before the failure.
func (c *Codec[T]) Append(dst []byte, v T, opts ...CallOption) ([]byte, error) {
	return encodeWith(c.routine, dst, reflect.ValueOf(&v).Elem(), applyCallOptions(opts))
}

// MarshalTo encodes v to w, flushing partial output on runtime errors.
func (c *Codec[T]) MarshalTo(w io.Writer, v T, opts ...CallOption) error {
	bp := bufferPool.Get().(*[]byte)
	out, err := c.Append((*bp)[:0], v, opts...)
	if len(out) > 0 {
		if _, werr := w.Write(out); werr != nil && err == nil {
			err = werr
		}
	}
	if cap(out) <= maxPooledBuffer {
		*bp = out[:0]
		bufferPool.Put(bp)
	}
	return err
}

// Unmarshal decodes one JSON value from data into v.
func (c *Codec[T]) Unmarshal(data []byte, v *T, opts ...CallOption) error {
	return c.UnmarshalFrom(bytes.NewBuffer(data), v, opts...)
}

// UnmarshalFrom decodes the JSON value held by r into v.
func (c *Codec[T]) UnmarshalFrom(r io.Reader, v *T, opts ...CallOption) error {
	if v == nil {
		return ErrInvalidTarget
	}
	return decodeWith(c.routine, r, reflect.ValueOf(v).Elem(), applyCallOptions(opts))
}
