package codec

import (
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

var (
	cborEnc cbor.EncMode
	cborDec cbor.DecMode
)

func init() {
	var err error

	// Core deterministic encoding sorts map keys, so equal values produce
	// equal bytes as they do with the JSON codecs.
	encOptions := cbor.CoreDetEncOptions()
	encOptions.Time = cbor.TimeRFC3339Nano
	cborEnc, err = encOptions.EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}

	cborDec, err = cbor.DecOptions{
		// any-typed targets decode maps as map[string]any like the JSON codecs
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
}

// CBOR is a binary codec backed by github.com/fxamacker/cbor/v2 using the
// core deterministic encoding of RFC 8949.
type CBOR struct{}

// Marshal encodes the value to CBOR.
func (CBOR) Marshal(v any) ([]byte, error) { return cborEnc.Marshal(v) }

// Unmarshal decodes the CBOR data into v.
func (CBOR) Unmarshal(data []byte, v any) error { return cborDec.Unmarshal(data, v) }

// Name returns the unique name of the codec ("cbor").
func (CBOR) Name() string { return "cbor" }
