package codec

import "github.com/hupe1980/shapejson"

type shapePreset struct {
	name string
	cfg  shapejson.Config
}

// shapePresets are the shapejson configurations reachable through ByName.
var shapePresets = []shapePreset{
	{"shapejson", shapejson.Default},
	{"shapejson-pretty", shapejson.Pretty},
	{"shapejson-iso8601", shapejson.ISO8601},
	{"shapejson-compact", shapejson.ExcludeNullsConfig},
	{"shapejson-camel", shapejson.CamelCase},
	{"shapejson-epoch-ms", shapejson.EpochMillis},
}

// Shape is the shapejson codec. Config selects the output dialect; the zero
// value uses shapejson.Default.
type Shape struct {
	Config shapejson.Config
}

// Marshal encodes the value to JSON.
func (s Shape) Marshal(v any) ([]byte, error) { return shapejson.Marshal(v, s.Config) }

// Unmarshal decodes the JSON data into v.
func (s Shape) Unmarshal(data []byte, v any) error { return shapejson.Unmarshal(data, v, s.Config) }

// Name returns the name ByName resolves to s, or "shapejson" followed by the
// configuration for configurations without a preset name.
func (s Shape) Name() string {
	for _, p := range shapePresets {
		if p.cfg == s.Config {
			return p.name
		}
	}
	return "shapejson" + s.Config.String()
}
