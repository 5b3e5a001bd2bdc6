package codec

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/shapejson"
)

type child struct {
	K string `json:"k"`
	V int64  `json:"v"`
}

type payload struct {
	ID       uint64            `json:"id"`
	Title    string            `json:"title"`
	Score    float64           `json:"score"`
	Tags     []string          `json:"tags"`
	Attrs    map[string]string `json:"attrs"`
	Flags    []bool            `json:"flags"`
	Children []child           `json:"children"`
	Note     *string           `json:"note"`
}

func samplePayload() payload {
	return payload{
		ID:    123456789,
		Title: "hello <shapejson> & \"friends\"",
		Score: 0.12345,
		Tags:  []string{"a", "b", "c"},
		Attrs: map[string]string{
			"kind":  "bench",
			"owner": "hupe1980",
			"lang":  "go",
		},
		Flags:    []bool{true, false, true},
		Children: []child{{K: "x", V: 1}, {K: "y", V: -2}},
	}
}

func allCodecs() []Codec {
	var out []Codec
	for _, name := range Names() {
		c, ok := ByName(name)
		if !ok {
			panic("missing codec " + name)
		}
		out = append(out, c)
	}
	return out
}

func TestRoundTrip(t *testing.T) {
	in := samplePayload()
	for _, c := range allCodecs() {
		t.Run(c.Name(), func(t *testing.T) {
			data := MustMarshal(c, in)
			var out payload
			require.NoError(t, c.Unmarshal(data, &out))
			assert.Equal(t, in, out)
		})
	}
}

func TestByName(t *testing.T) {
	for _, name := range Names() {
		c, ok := ByName(name)
		require.True(t, ok, name)
		assert.Equal(t, name, c.Name())
	}

	for _, name := range []string{"zstd+json", "lz4+shapejson-pretty", "jsonc+go-json", "zstd+jsonc+sonic", "none+cbor"} {
		c, ok := ByName(name)
		require.True(t, ok, name)
		assert.Equal(t, name, c.Name())
	}

	for _, name := range []string{"", "xml", "zstd+", "brotli+json", "zstd+xml"} {
		_, ok := ByName(name)
		assert.False(t, ok, name)
	}
}

func TestShapeMatchesEncodingJSON(t *testing.T) {
	in := samplePayload()
	want := MustMarshal(JSON{}, in)

	for _, c := range []Codec{Shape{}, GoJSON{}, JSONIter{}} {
		got := MustMarshal(c, in)
		assert.JSONEq(t, string(want), string(got), c.Name())
		assert.True(t, Valid(got), c.Name())
	}
}

func TestShapeConfig(t *testing.T) {
	c := Shape{Config: shapejson.ISO8601}
	assert.Equal(t, "shapejson-iso8601", c.Name())

	ts := time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)
	data, err := c.Marshal(struct{ At time.Time }{ts})
	require.NoError(t, err)
	assert.Equal(t, `{"At":"2021-06-01T00:00:00Z"}`, string(data))

	custom := Shape{Config: shapejson.NewConfig(shapejson.WithJSONP(true), shapejson.WithInherited(true))}
	assert.Equal(t, "shapejson"+custom.Config.String(), custom.Name())
}

func TestCompressed(t *testing.T) {
	in := samplePayload()
	in.Tags = make([]string, 200)
	for i := range in.Tags {
		in.Tags[i] = "repeated-tag-value"
	}
	plain := MustMarshal(JSON{}, in)

	for _, ct := range []CompressionType{CompressionNone, CompressionLZ4, CompressionZSTD} {
		t.Run(ct.String(), func(t *testing.T) {
			c := Compressed{Codec: JSON{}, Compression: ct}
			data, err := c.Marshal(in)
			require.NoError(t, err)
			if ct == CompressionNone {
				assert.Equal(t, len(plain)+payloadHeaderSize, len(data))
			} else {
				assert.Less(t, len(data), len(plain)/2)
			}

			var out payload
			require.NoError(t, c.Unmarshal(data, &out))
			assert.Equal(t, in, out)
		})
	}
}

func TestCompressedIncompressible(t *testing.T) {
	c := Compressed{Codec: JSON{}, Compression: CompressionLZ4}
	data, err := c.Marshal(1)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 0, 0, 0, 0, 0, 0, 0, '1'}, data)

	var v int
	require.NoError(t, c.Unmarshal(data, &v))
	assert.Equal(t, 1, v)
}

func TestCompressedCorrupt(t *testing.T) {
	c := Compressed{Codec: JSON{}, Compression: CompressionZSTD}
	var v payload
	assert.ErrorIs(t, c.Unmarshal([]byte{1, 2}, &v), ErrCorruptPayload)
	assert.ErrorIs(t, c.Unmarshal([]byte{9, 0, 0, 0, 0, 0, 0, 0, '1'}, &v), ErrCorruptPayload)
	assert.ErrorIs(t, c.Unmarshal([]byte{9, 0, 0, 0, 5, 0, 0, 0, 1}, &v), ErrCorruptPayload)
}

func TestCompressedDeclaredSizeLimit(t *testing.T) {
	// 1 GiB declared, one compressed byte
	huge := []byte{0, 0, 0, 0x40, 1, 0, 0, 0, 0}

	for _, ct := range []CompressionType{CompressionLZ4, CompressionZSTD} {
		t.Run(ct.String(), func(t *testing.T) {
			var v payload
			err := Compressed{Codec: JSON{}, Compression: ct}.Unmarshal(huge, &v)
			require.ErrorIs(t, err, ErrCorruptPayload)
			assert.Contains(t, err.Error(), "exceeds limit")
		})
	}

	t.Run("custom limit", func(t *testing.T) {
		in := samplePayload()
		c := Compressed{Codec: JSON{}, Compression: CompressionNone}
		data, err := c.Marshal(in)
		require.NoError(t, err)

		var out payload
		c.MaxPayloadSize = len(data) - payloadHeaderSize - 1
		assert.ErrorIs(t, c.Unmarshal(data, &out), ErrCorruptPayload)

		c.MaxPayloadSize = len(data) - payloadHeaderSize
		require.NoError(t, c.Unmarshal(data, &out))
		assert.Equal(t, in, out)
	})

	t.Run("lz4 ratio", func(t *testing.T) {
		// 4 KiB claimed from 2 bytes is beyond what an LZ4 block can expand to
		data := []byte{0, 0x10, 0, 0, 2, 0, 0, 0, 0, 0}
		var v payload
		err := Compressed{Codec: JSON{}, Compression: CompressionLZ4}.Unmarshal(data, &v)
		require.ErrorIs(t, err, ErrCorruptPayload)
		assert.Contains(t, err.Error(), "compressed bytes")
	})
}

func TestJSONC(t *testing.T) {
	input := []byte(`{
		// identifier
		"id": 7,
		/* display name */
		"title": "x",
		"tags": ["a", "b",],
	}`)
	for _, inner := range []Codec{JSON{}, Shape{}, Sonic{}} {
		c := JSONC{Codec: inner}
		var out payload
		require.NoError(t, c.Unmarshal(input, &out), c.Name())
		assert.Equal(t, uint64(7), out.ID)
		assert.Equal(t, "x", out.Title)
		assert.Equal(t, []string{"a", "b"}, out.Tags)
	}

	assert.Equal(t, "jsonc+shapejson", JSONC{}.Name())
	var out payload
	assert.Error(t, JSON{}.Unmarshal(input, &out))
}

func TestCBORDynamicMaps(t *testing.T) {
	data := MustMarshal(CBOR{}, map[string]any{"b": 1, "a": "x"})
	var out any
	require.NoError(t, CBOR{}.Unmarshal(data, &out))
	assert.Equal(t, map[string]any{"a": "x", "b": uint64(1)}, out)

	again := MustMarshal(CBOR{}, map[string]any{"a": "x", "b": 1})
	assert.True(t, bytes.Equal(data, again), "deterministic encoding")
}
