package shapejson

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"reflect"
	"sync"
	"time"

	"github.com/go-json-experiment/json/jsontext"

	"github.com/hupe1980/shapejson/internal/cache"
	"github.com/hupe1980/shapejson/internal/plan"
)

var anyType = reflect.TypeFor[any]()

// Marshal encodes v under cfg. The routine for v's type is compiled on first
// use and reused by every later call with an equal cfg.
//
// A nil interface encodes as null. On error Marshal returns no output; use
// MarshalTo to keep the output written before a runtime failure.
func Marshal(v any, cfg Config, opts ...CallOption) ([]byte, error) {
	out, err := appendValue(nil, reflect.ValueOf(v), cfg, applyCallOptions(opts))
	if err != nil {
		return nil, err
	}
	return out, nil
}

// MarshalTo encodes v under cfg and writes the result to w. If encoding
// fails at runtime, the output produced up to the failure is written to w
// before the error is returned.
func MarshalTo(w io.Writer, v any, cfg Config, opts ...CallOption) error {
	return writeValue(w, reflect.ValueOf(v), cfg, applyCallOptions(opts))
}

// MarshalDynamic encodes v through the dynamic dispatch path used for
// interface-typed members. The output is identical to Marshal's; it exists
// for boxed values such as map[string]any or []any built at runtime.
func MarshalDynamic(v any, cfg Config, opts ...CallOption) ([]byte, error) {
	out, err := appendValue(nil, reflect.ValueOf(&v).Elem(), cfg, applyCallOptions(opts))
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Unmarshal decodes exactly one JSON value from data into the value v points
// to. Input after the value, other than white space, is an error.
//
// Object member names are matched exactly first, then ASCII
// case-insensitively when that is unambiguous. Unknown members are skipped
// unless WithDisallowUnknownFields is set.
func Unmarshal(data []byte, v any, cfg Config, opts ...CallOption) error {
	return UnmarshalFrom(bytes.NewBuffer(data), v, cfg, opts...)
}

// UnmarshalFrom is Unmarshal reading from r. The whole of r must hold one
// JSON value.
func UnmarshalFrom(r io.Reader, v any, cfg Config, opts ...CallOption) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("%w, got %T", ErrInvalidTarget, v)
	}
	return decodeValue(r, rv.Elem(), cfg, applyCallOptions(opts))
}

// CacheStats is a snapshot of the compiled-routine cache.
type CacheStats = cache.Stats

// Stats returns the counters of the process-wide routine cache.
func Stats() CacheStats {
	return cache.Default.Stats()
}

// Precompile compiles the routine for t under cfg without encoding
// anything. It reports the same BuildError the first Marshal would.
func Precompile(t reflect.Type, cfg Config) error {
	if t == nil {
		return nil
	}
	_, err := cache.Default.Get(t, cfg.internal())
	return err
}

func routineFor(t reflect.Type, cfg Config) (*plan.Routine, error) {
	rt, err := cache.Default.Get(t, cfg.internal())
	if err != nil {
		return nil, fmt.Errorf("shapejson: %w", err)
	}
	return rt, nil
}

func appendValue(dst []byte, rv reflect.Value, cfg Config, o callOptions) ([]byte, error) {
	if !rv.IsValid() {
		return append(dst, "null"...), nil
	}
	rt, err := routineFor(rv.Type(), cfg)
	if err != nil {
		return dst, err
	}
	return encodeWith(rt, dst, rv, o)
}

func encodeWith(rt *plan.Routine, dst []byte, rv reflect.Value, o callOptions) ([]byte, error) {
	mc := currentMetrics()
	if mc == nil {
		out, err := rt.Append(dst, rv, o.maxDepth)
		if err != nil {
			currentLogger().LogCodecError(context.Background(), "encode", rt.Type, err)
		}
		return out, err
	}
	start := time.Now()
	out, err := rt.Append(dst, rv, o.maxDepth)
	mc.RecordEncode(len(out)-len(dst), time.Since(start), err)
	if err != nil {
		currentLogger().LogCodecError(context.Background(), "encode", rt.Type, err)
	}
	return out, err
}

var bufferPool = sync.Pool{
	New: func() any {
		b := make([]byte, 0, 1024)
		return &b
	},
}

// maxPooledBuffer keeps one huge document from pinning its buffer.
const maxPooledBuffer = 64 << 10

func writeValue(w io.Writer, rv reflect.Value, cfg Config, o callOptions) error {
	bp := bufferPool.Get().(*[]byte)
	out, err := appendValue((*bp)[:0], rv, cfg, o)
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

var decoderPool = sync.Pool{
	New: func() any {
		return jsontext.NewDecoder(bytes.NewReader(nil), jsontext.AllowDuplicateNames(true))
	},
}

func decodeValue(r io.Reader, rv reflect.Value, cfg Config, o callOptions) error {
	rt, err := routineFor(rv.Type(), cfg)
	if err != nil {
		return err
	}
	return decodeWith(rt, r, rv, o)
}

func decodeWith(rt *plan.Routine, r io.Reader, rv reflect.Value, o callOptions) error {
	dec := decoderPool.Get().(*jsontext.Decoder)
	dec.Reset(r, jsontext.AllowDuplicateNames(true))
	defer func() {
		// drop the reference to r; jsontext rejects a nil reader
		dec.Reset(bytes.NewReader(nil))
		decoderPool.Put(dec)
	}()

	mc := currentMetrics()
	var start time.Time
	if mc != nil {
		start = time.Now()
	}

	err := rt.Decode(dec, rv, o.decode())
	if err == nil {
		err = expectEOF(dec, rt.Type)
	}
	if mc != nil {
		mc.RecordDecode(int(dec.InputOffset()), time.Since(start), err)
	}
	if err != nil {
		currentLogger().LogCodecError(context.Background(), "decode", rt.Type, err)
	}
	return err
}

func expectEOF(dec *jsontext.Decoder, t reflect.Type) error {
	_, err := dec.ReadToken()
	switch err {
	case io.EOF:
		return nil
	case nil:
		err = ErrTrailingData
	}
	return &DecodeError{Type: t, Offset: dec.InputOffset(), Err: err}
}
