package shapejson

import (
	"github.com/hupe1980/shapejson/internal/format"
	"github.com/hupe1980/shapejson/internal/shape"
)

// Config is the output configuration. The zero value encodes compact JSON,
// includes nulls, writes timestamps as "/Date(ms)/", keeps member names
// verbatim, skips embedded struct fields and reads zone-less timestamps as
// local time.
//
// Config is comparable. Every distinct Config compiles its own routines, so
// prefer a handful of shared values over building one per call.
type Config shape.Config

// TimestampFormat selects the wire format of timestamps and durations.
type TimestampFormat = format.TimestampFormat

const (
	TimestampEpochWrappedMillis = format.EpochWrappedMillis
	TimestampEpochSeconds       = format.EpochSeconds
	TimestampEpochMillis        = format.EpochMillis
	TimestampISO8601            = format.ISO8601
	TimestampRFC1123            = format.RFC1123
)

// NamingConvention transforms member names that are not marked verbatim.
type NamingConvention = shape.NamingConvention

const (
	NamingVerbatim  = shape.Verbatim
	NamingCamelCase = shape.CamelCase
)

// UnspecifiedTimePolicy resolves timestamps that carry no zone.
type UnspecifiedTimePolicy = shape.UnspecifiedTimePolicy

const (
	UnspecifiedAsLocal = shape.AsLocal
	UnspecifiedAsUTC   = shape.AsUTC
)

// Presets.
var (
	Default                   = Config{}
	Pretty                    = Config{PrettyPrint: true}
	ExcludeNullsConfig        = Config{ExcludeNulls: true}
	ISO8601                   = Config{Timestamps: format.ISO8601}
	ISO8601PrettyExcludeNulls = Config{PrettyPrint: true, ExcludeNulls: true, Timestamps: format.ISO8601}
	JSONPSafe                 = Config{JSONP: true}
	CamelCase                 = Config{Naming: shape.CamelCase}
	EpochSeconds              = Config{Timestamps: format.EpochSeconds}
	EpochMillis               = Config{Timestamps: format.EpochMillis}
	RFC1123                   = Config{Timestamps: format.RFC1123}
)

// Option modifies a Config.
type Option func(*Config)

// NewConfig returns the zero Config with opts applied.
//
// Example:
//
//	cfg := shapejson.NewConfig(
//	    shapejson.WithPrettyPrint(true),
//	    shapejson.WithTimestamps(shapejson.TimestampISO8601),
//	)
func NewConfig(opts ...Option) Config {
	return Config{}.With(opts...)
}

// With returns a copy of c with opts applied. c is not modified.
func (c Config) With(opts ...Option) Config {
	for _, fn := range opts {
		if fn != nil {
			fn(&c)
		}
	}
	return c
}

func (c Config) String() string { return shape.Config(c).String() }

func (c Config) internal() shape.Config { return shape.Config(c) }

// WithPrettyPrint toggles indented output.
func WithPrettyPrint(on bool) Option {
	return func(c *Config) { c.PrettyPrint = on }
}

// WithExcludeNulls toggles dropping of object members and mapping entries
// whose value is null. Array elements are always written.
func WithExcludeNulls(on bool) Option {
	return func(c *Config) { c.ExcludeNulls = on }
}

// WithJSONP toggles escaping of U+2028 and U+2029.
func WithJSONP(on bool) Option {
	return func(c *Config) { c.JSONP = on }
}

// WithTimestamps sets the timestamp and duration wire format.
func WithTimestamps(f TimestampFormat) Option {
	return func(c *Config) { c.Timestamps = f }
}

// WithNaming sets the member naming convention.
func WithNaming(n NamingConvention) Option {
	return func(c *Config) { c.Naming = n }
}

// WithInherited toggles promotion of fields from embedded structs.
func WithInherited(on bool) Option {
	return func(c *Config) { c.IncludeInherited = on }
}

// WithUnspecifiedTime sets how zone-less timestamps are resolved.
func WithUnspecifiedTime(p UnspecifiedTimePolicy) Option {
	return func(c *Config) { c.UnspecifiedTime = p }
}
