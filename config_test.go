package shapejson

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewConfig(t *testing.T) {
	cfg := NewConfig(
		WithPrettyPrint(true),
		WithExcludeNulls(true),
		WithTimestamps(TimestampISO8601),
	)
	assert.Equal(t, ISO8601PrettyExcludeNulls, cfg)
	assert.Equal(t, Default, NewConfig())
	assert.Equal(t, Default, NewConfig(nil))
}

func TestConfigWith(t *testing.T) {
	base := Pretty
	derived := base.With(WithNaming(NamingCamelCase), WithJSONP(true))

	assert.Equal(t, Pretty, base, "With must not modify its receiver")
	assert.True(t, derived.PrettyPrint)
	assert.True(t, derived.JSONP)
	assert.Equal(t, NamingCamelCase, derived.Naming)
	assert.Equal(t, Default, derived.With(WithPrettyPrint(false), WithJSONP(false), WithNaming(NamingVerbatim)))
}

func TestConfigString(t *testing.T) {
	assert.Equal(t, "{epoch-wrapped-ms verbatim unspecified-local}", Default.String())
	assert.Equal(t, "{pretty exclude-nulls iso8601 verbatim unspecified-local}", ISO8601PrettyExcludeNulls.String())
	assert.Equal(t, "{inherited rfc1123 camel-case unspecified-utc}",
		RFC1123.With(WithInherited(true), WithNaming(NamingCamelCase), WithUnspecifiedTime(UnspecifiedAsUTC)).String())
}

func TestPresetsAreDistinctCacheKeys(t *testing.T) {
	presets := []Config{
		Default, Pretty, ExcludeNullsConfig, ISO8601, ISO8601PrettyExcludeNulls,
		JSONPSafe, CamelCase, EpochSeconds, EpochMillis, RFC1123,
	}
	seen := make(map[string]bool, len(presets))
	for _, p := range presets {
		key := p.internal().Key()
		assert.False(t, seen[key], "duplicate preset %s", p)
		seen[key] = true
	}
}
