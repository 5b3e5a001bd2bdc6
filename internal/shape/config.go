package shape

import (
	"strings"
	"time"

	"github.com/hupe1980/shapejson/internal/format"
)

// NamingConvention transforms resolved member names.
type NamingConvention uint8

const (
	// Verbatim keeps names as resolved.
	Verbatim NamingConvention = iota
	// CamelCase lower-cases the leading upper-case run ("URLPath" -> "urlPath").
	CamelCase
)

func (n NamingConvention) String() string {
	if n == CamelCase {
		return "camel-case"
	}
	return "verbatim"
}

// UnspecifiedTimePolicy decides how zone-less timestamps are resolved.
type UnspecifiedTimePolicy uint8

const (
	// AsLocal treats the wall clock as local time.
	AsLocal UnspecifiedTimePolicy = iota
	// AsUTC treats the wall clock as UTC.
	AsUTC
)

func (p UnspecifiedTimePolicy) String() string {
	if p == AsUTC {
		return "as-utc"
	}
	return "as-local"
}

// Config is the immutable output configuration. It is comparable and forms
// part of the compiled-routine cache key: two configs are cache-equivalent
// iff every field is equal.
type Config struct {
	PrettyPrint      bool
	ExcludeNulls     bool
	JSONP            bool
	Timestamps       format.TimestampFormat
	Naming           NamingConvention
	IncludeInherited bool
	UnspecifiedTime  UnspecifiedTimePolicy
}

// Key returns a compact string that identifies c.
func (c Config) Key() string {
	var b [7]byte
	b[0] = bit(c.PrettyPrint)
	b[1] = bit(c.ExcludeNulls)
	b[2] = bit(c.JSONP)
	b[3] = '0' + byte(c.Timestamps)
	b[4] = '0' + byte(c.Naming)
	b[5] = bit(c.IncludeInherited)
	b[6] = '0' + byte(c.UnspecifiedTime)
	return string(b[:])
}

func bit(v bool) byte {
	if v {
		return '1'
	}
	return '0'
}

func (c Config) String() string {
	parts := make([]string, 0, 7)
	if c.PrettyPrint {
		parts = append(parts, "pretty")
	}
	if c.ExcludeNulls {
		parts = append(parts, "exclude-nulls")
	}
	if c.JSONP {
		parts = append(parts, "jsonp")
	}
	if c.IncludeInherited {
		parts = append(parts, "inherited")
	}
	parts = append(parts,
		c.Timestamps.String(),
		c.Naming.String(),
		"unspecified-"+strings.TrimPrefix(c.UnspecifiedTime.String(), "as-"),
	)
	return "{" + strings.Join(parts, " ") + "}"
}

// Location returns the zone applied to Unzoned timestamps.
func (c Config) Location() *time.Location {
	if c.UnspecifiedTime == AsUTC {
		return time.UTC
	}
	return time.Local
}
