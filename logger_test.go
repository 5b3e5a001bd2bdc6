package shapejson

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetLogger(NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { SetLogger(nil) })
	return &buf
}

func decodeLogLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var lines []map[string]any
	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal(line, &m))
		lines = append(lines, m)
	}
	return lines
}

func TestLoggerRecordsBuilds(t *testing.T) {
	type logged struct {
		A string
	}
	type broken struct {
		C chan int
	}
	buf := captureLogs(t)

	_, err := Marshal(logged{A: "x"}, Pretty)
	require.NoError(t, err)
	_, err = Marshal(broken{}, Default)
	require.Error(t, err)

	lines := decodeLogLines(t, buf)
	require.GreaterOrEqual(t, len(lines), 2)

	assert.Equal(t, "routine built", lines[0]["msg"])
	assert.Equal(t, "DEBUG", lines[0]["level"])
	assert.Equal(t, reflect.TypeFor[logged]().String(), lines[0]["type"])
	assert.Equal(t, Pretty.String(), lines[0]["config"])

	assert.Equal(t, "routine build failed", lines[1]["msg"])
	assert.Equal(t, "WARN", lines[1]["level"])
	assert.Contains(t, lines[1]["error"], "unsupported type")
}

func TestLoggerHelpers(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})).
		WithConfig(ISO8601)

	l.LogCodecError(context.Background(), "decode", nil, errors.New("eof"))
	l.WithType(reflect.TypeFor[lineItem]()).Info("scoped")
	lines := decodeLogLines(t, &buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "decode failed", lines[0]["msg"])
	assert.Equal(t, ISO8601.String(), lines[0]["config"])
	assert.Equal(t, "<nil>", lines[0]["type"])
	assert.Equal(t, "eof", lines[0]["error"])
	assert.Equal(t, reflect.TypeFor[lineItem]().String(), lines[1]["type"])
}

func TestLoggerRecordsCodecErrors(t *testing.T) {
	buf := captureLogs(t)

	var item lineItem
	require.NoError(t, Precompile(reflect.TypeFor[lineItem](), Default))
	require.Error(t, Unmarshal([]byte(`{"sku":1}`), &item, Default))

	lines := decodeLogLines(t, buf)
	require.NotEmpty(t, lines)
	last := lines[len(lines)-1]
	assert.Equal(t, "decode failed", last["msg"])
	assert.Equal(t, "DEBUG", last["level"])
	assert.Equal(t, reflect.TypeFor[lineItem]().String(), last["type"])
	assert.Contains(t, last["error"], "type mismatch")
}

func TestNoopLogger(t *testing.T) {
	l := NoopLogger()
	assert.False(t, l.Enabled(context.Background(), slog.LevelError))
}
