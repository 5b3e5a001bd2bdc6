package codec

import "github.com/bytedance/sonic"

// Sonic is a JSON codec backed by github.com/bytedance/sonic in its
// encoding/json compatible configuration. On platforms without the JIT it
// falls back to a reflection encoder with the same output.
type Sonic struct{}

// Marshal encodes the value to JSON.
func (Sonic) Marshal(v any) ([]byte, error) { return sonic.ConfigStd.Marshal(v) }

// Unmarshal decodes the JSON data into v.
func (Sonic) Unmarshal(data []byte, v any) error { return sonic.ConfigStd.Unmarshal(data, v) }

// Name returns the unique name of the codec ("sonic").
func (Sonic) Name() string { return "sonic" }
