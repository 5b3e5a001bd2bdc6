package plan

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/go-json-experiment/json/jsontext"
)

// DefaultMaxDepth bounds the nesting of objects, sequences, mappings and
// dynamic values within one call.
const DefaultMaxDepth = 100

// encodeState is the per-call encoder state. It is never shared between
// goroutines.
type encodeState struct {
	buf      []byte
	depth    int
	maxDepth int
	indent   int
	pretty   bool
}

var encodeStates = sync.Pool{New: func() any { return new(encodeState) }}

func getEncodeState(dst []byte, maxDepth int, pretty bool) *encodeState {
	e := encodeStates.Get().(*encodeState)
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	*e = encodeState{buf: dst, maxDepth: maxDepth, pretty: pretty}
	return e
}

func putEncodeState(e *encodeState) {
	e.buf = nil
	encodeStates.Put(e)
}

// enter records one more level of nesting for a value of type t.
func (e *encodeState) enter(t reflect.Type) error {
	if e.depth >= e.maxDepth {
		return &RecursionError{Type: t, Depth: e.maxDepth}
	}
	e.depth++
	return nil
}

func (e *encodeState) leave() { e.depth-- }

// open writes the opening delimiter of a container.
func (e *encodeState) open(c byte) {
	e.buf = append(e.buf, c)
	e.indent++
}

// close writes the closing delimiter; empty containers stay on one line.
func (e *encodeState) close(c byte, empty bool) {
	e.indent--
	if !empty {
		e.newline()
	}
	e.buf = append(e.buf, c)
}

// next starts element i of a container.
func (e *encodeState) next(i int) {
	if i > 0 {
		e.buf = append(e.buf, ',')
	}
	e.newline()
}

func (e *encodeState) newline() {
	if !e.pretty {
		return
	}
	e.buf = append(e.buf, '\n')
	for range e.indent {
		e.buf = append(e.buf, ' ', ' ')
	}
}

func (e *encodeState) null() {
	e.buf = append(e.buf, "null"...)
}

// decodeState is the per-call decoder state.
type decodeState struct {
	dec             *jsontext.Decoder
	depth           int
	maxDepth        int
	disallowUnknown bool
}

var decodeStates = sync.Pool{New: func() any { return new(decodeState) }}

func getDecodeState(dec *jsontext.Decoder, opts DecodeOptions) *decodeState {
	d := decodeStates.Get().(*decodeState)
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	*d = decodeState{dec: dec, maxDepth: maxDepth, disallowUnknown: opts.DisallowUnknownFields}
	return d
}

func putDecodeState(d *decodeState) {
	d.dec = nil
	decodeStates.Put(d)
}

func (d *decodeState) enter(t reflect.Type) error {
	if d.depth >= d.maxDepth {
		return &RecursionError{Type: t, Depth: d.maxDepth}
	}
	d.depth++
	return nil
}

func (d *decodeState) leave() { d.depth-- }

// fail wraps err with the target type and the current input offset.
func (d *decodeState) fail(t reflect.Type, err error) error {
	return &DecodeError{Type: t, Offset: d.dec.InputOffset(), Err: err}
}

// mismatch reports a token of kind k where a value of type t was expected.
func (d *decodeState) mismatch(t reflect.Type, k jsontext.Kind) error {
	return d.fail(t, fmt.Errorf("%w: unexpected %s", ErrTypeMismatch, kindName(k)))
}

func kindName(k jsontext.Kind) string {
	switch k {
	case 'n':
		return "null"
	case 't', 'f':
		return "boolean"
	case '"':
		return "string"
	case '0':
		return "number"
	case '{', '}':
		return "object"
	case '[', ']':
		return "array"
	}
	return "end of input"
}

// errNull reports that a container position held a JSON null, which has
// already been consumed.
var errNull = errors.New("null")

// begin consumes the opening delimiter of a container of type t and enters
// one level of nesting.
func (d *decodeState) begin(t reflect.Type, delim jsontext.Kind) error {
	switch k := d.dec.PeekKind(); k {
	case 'n':
		if _, err := d.dec.ReadToken(); err != nil {
			return err
		}
		return errNull
	case delim:
		if err := d.enter(t); err != nil {
			return err
		}
		_, err := d.dec.ReadToken()
		return err
	default:
		if k == 0 {
			if _, err := d.dec.ReadToken(); err != nil {
				return err
			}
		}
		return d.mismatch(t, k)
	}
}

// end consumes the closing delimiter opened by begin.
func (d *decodeState) end() error {
	d.leave()
	_, err := d.dec.ReadToken()
	return err
}

// nullOr treats a JSON null as a no-op.
func (d *decodeState) nullOr(err error) error {
	if errors.Is(err, errNull) {
		return nil
	}
	return err
}
