package plan

import (
	"reflect"

	"github.com/go-json-experiment/json/jsontext"

	"github.com/hupe1980/shapejson/internal/shape"
)

// Resolver returns the routine for a runtime type. Dynamic values are
// dispatched through it, which lets the routine cache serve interface
// members without the plan package depending on it.
type Resolver func(t reflect.Type, cfg shape.Config) (*Routine, error)

// Routine is the compiled encode and decode procedure for one
// (type, Config) pair.
type Routine struct {
	Type   reflect.Type
	Config shape.Config
	Shape  *shape.Shape

	encode encodeFunc
	decode decodeFunc
}

// DecodeOptions are per-call decode settings.
type DecodeOptions struct {
	MaxDepth              int
	DisallowUnknownFields bool
}

// Append encodes v, which must be of r.Type, onto dst. On error the
// returned slice holds everything written before the failure.
func (r *Routine) Append(dst []byte, v reflect.Value, maxDepth int) ([]byte, error) {
	e := getEncodeState(dst, maxDepth, r.Config.PrettyPrint)
	err := r.encode(e, v)
	out := e.buf
	putEncodeState(e)
	return out, err
}

// Decode reads one JSON value from dec into v, which must be a settable
// value of r.Type.
func (r *Routine) Decode(dec *jsontext.Decoder, v reflect.Value, opts DecodeOptions) error {
	d := getDecodeState(dec, opts)
	defer putDecodeState(d)
	if err := r.decode(d, v); err != nil {
		return d.wrap(r.Type, err)
	}
	return nil
}

// wrap attaches position information to errors raised by the tokenizer.
func (d *decodeState) wrap(t reflect.Type, err error) error {
	switch err.(type) {
	case *DecodeError, *RecursionError:
		return err
	}
	return d.fail(t, err)
}
