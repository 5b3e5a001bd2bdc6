package codec

import "github.com/tidwall/jsonc"

// JSONC accepts JSON with comments and trailing commas on decode, as found
// in hand-edited configuration files. Encoding is delegated unchanged.
type JSONC struct {
	Codec Codec
}

// Marshal encodes the value with the wrapped codec.
func (j JSONC) Marshal(v any) ([]byte, error) { return j.inner().Marshal(v) }

// Unmarshal strips comments and trailing commas, then decodes with the
// wrapped codec.
func (j JSONC) Unmarshal(data []byte, v any) error {
	return j.inner().Unmarshal(jsonc.ToJSON(data), v)
}

// Name returns "jsonc+" followed by the wrapped codec's name.
func (j JSONC) Name() string { return "jsonc+" + j.inner().Name() }

func (j JSONC) inner() Codec {
	if j.Codec == nil {
		return Default
	}
	return j.Codec
}
