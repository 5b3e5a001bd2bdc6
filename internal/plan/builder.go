package plan

import (
	"reflect"

	"github.com/hupe1980/shapejson/internal/shape"
)

type (
	encodeFunc func(*encodeState, reflect.Value) error
	decodeFunc func(*decodeState, reflect.Value) error
)

// Build classifies t under cfg and compiles its routine. Nothing is
// returned when any reachable shape fails to classify or compile.
func Build(t reflect.Type, cfg shape.Config, resolve Resolver) (*Routine, error) {
	s, err := shape.Classify(t, cfg)
	if err != nil {
		return nil, err
	}
	b := &builder{
		cfg:     cfg,
		resolve: resolve,
		enc:     make(map[*shape.Shape]*encodeFunc),
		dec:     make(map[*shape.Shape]*decodeFunc),
	}
	enc, err := b.encoder(s)
	if err != nil {
		return nil, err
	}
	dec, err := b.decoder(s)
	if err != nil {
		return nil, err
	}
	return &Routine{Type: t, Config: cfg, Shape: s, encode: enc, decode: dec}, nil
}

type builder struct {
	cfg     shape.Config
	resolve Resolver
	enc     map[*shape.Shape]*encodeFunc
	dec     map[*shape.Shape]*decodeFunc
}

// encoder returns the encoder for s. A shape that is still being built
// yields a closure reading its slot, which is filled once the outer build
// finishes.
func (b *builder) encoder(s *shape.Shape) (encodeFunc, error) {
	if slot, ok := b.enc[s]; ok {
		if *slot != nil {
			return *slot, nil
		}
		return func(e *encodeState, v reflect.Value) error { return (*slot)(e, v) }, nil
	}
	slot := new(encodeFunc)
	b.enc[s] = slot
	fn, err := b.newEncoder(s)
	if err != nil {
		return nil, err
	}
	*slot = fn
	return fn, nil
}

func (b *builder) decoder(s *shape.Shape) (decodeFunc, error) {
	if slot, ok := b.dec[s]; ok {
		if *slot != nil {
			return *slot, nil
		}
		return func(d *decodeState, v reflect.Value) error { return (*slot)(d, v) }, nil
	}
	slot := new(decodeFunc)
	b.dec[s] = slot
	fn, err := b.newDecoder(s)
	if err != nil {
		return nil, err
	}
	*slot = fn
	return fn, nil
}
