package format

import (
	"strconv"
	"strings"
	"time"
)

// TimestampFormat selects the wire format for timestamps and durations.
type TimestampFormat uint8

const (
	// EpochWrappedMillis renders "/Date(1500000000000)/", with a +hhmm/-hhmm
	// suffix inside the parentheses for values that are not in UTC.
	EpochWrappedMillis TimestampFormat = iota
	// EpochSeconds renders the bare number of seconds since the Unix epoch.
	EpochSeconds
	// EpochMillis renders the bare number of milliseconds since the Unix epoch.
	EpochMillis
	// ISO8601 renders "2006-01-02T15:04:05.1234567Z" or with a ±hh:mm offset.
	ISO8601
	// RFC1123 renders the HTTP-date form "Mon, 02 Jan 2006 15:04:05 GMT".
	RFC1123
)

func (f TimestampFormat) String() string {
	switch f {
	case EpochWrappedMillis:
		return "epoch-wrapped-ms"
	case EpochSeconds:
		return "epoch-seconds"
	case EpochMillis:
		return "epoch-ms"
	case ISO8601:
		return "iso8601"
	case RFC1123:
		return "rfc1123"
	default:
		return "timestamp-format(" + strconv.Itoa(int(f)) + ")"
	}
}

// Numeric reports whether values in this format are JSON numbers.
func (f TimestampFormat) Numeric() bool {
	return f == EpochSeconds || f == EpochMillis
}

const (
	rfc1123Layout  = "Mon, 02 Jan 2006 15:04:05 GMT"
	isoLayout      = "2006-01-02T15:04:05"
	ticksPerSecond = 10_000_000
	nanosPerTick   = 100
)

// AppendTime appends t in the given wire format. The caller resolves
// zone-less values (see Resolve) before calling.
func AppendTime(dst []byte, t time.Time, f TimestampFormat) []byte {
	switch f {
	case EpochSeconds:
		return strconv.AppendInt(dst, t.Unix(), 10)
	case EpochMillis:
		return strconv.AppendInt(dst, t.UnixMilli(), 10)
	case ISO8601:
		dst = append(dst, '"')
		dst = t.AppendFormat(dst, isoLayout)
		dst = appendFraction(dst, t.Nanosecond()/nanosPerTick)
		if isUTC(t) {
			dst = append(dst, 'Z')
		} else {
			_, offset := t.Zone()
			dst = appendOffset(dst, offset, true)
		}
		return append(dst, '"')
	case RFC1123:
		dst = append(dst, '"')
		dst = t.UTC().AppendFormat(dst, rfc1123Layout)
		return append(dst, '"')
	default:
		dst = append(dst, `"/Date(`...)
		dst = strconv.AppendInt(dst, t.UnixMilli(), 10)
		if !isUTC(t) {
			_, offset := t.Zone()
			dst = appendOffset(dst, offset, false)
		}
		return append(dst, `)/"`...)
	}
}

// Resolve attaches loc to the wall clock of t, discarding whatever zone t
// carried. It is used for timestamps whose zone is unspecified.
func Resolve(t time.Time, loc *time.Location) time.Time {
	y, mo, d := t.Date()
	h, mi, s := t.Clock()
	return time.Date(y, mo, d, h, mi, s, t.Nanosecond(), loc)
}

func isUTC(t time.Time) bool {
	loc := t.Location()
	if loc == time.UTC {
		return true
	}
	name, offset := t.Zone()
	return offset == 0 && name == "UTC"
}

// appendFraction appends ".fffffff" trimmed of trailing zeros, or nothing
// when ticks is zero.
func appendFraction(dst []byte, ticks int) []byte {
	if ticks == 0 {
		return dst
	}
	var buf [8]byte
	buf[0] = '.'
	for i := 7; i >= 1; i-- {
		buf[i] = byte('0' + ticks%10)
		ticks /= 10
	}
	n := len(buf)
	for buf[n-1] == '0' {
		n--
	}
	return append(dst, buf[:n]...)
}

func appendOffset(dst []byte, seconds int, colon bool) []byte {
	sign := byte('+')
	if seconds < 0 {
		sign = '-'
		seconds = -seconds
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	dst = append(dst, sign)
	dst = appendTwo(dst, hours)
	if colon {
		dst = append(dst, ':')
	}
	return appendTwo(dst, minutes)
}

func appendTwo(dst []byte, v int) []byte {
	return append(dst, byte('0'+v/10%10), byte('0'+v%10))
}

// ParseTimeNumber parses a bare epoch number in the given format. Formats
// other than EpochSeconds are read as milliseconds.
func ParseTimeNumber(text string, f TimestampFormat) (time.Time, error) {
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return time.Time{}, syntaxError("timestamp", text, err)
	}
	if f == EpochSeconds {
		return time.Unix(n, 0).UTC(), nil
	}
	return time.UnixMilli(n).UTC(), nil
}

// ParseTimeString parses any of the string wire formats. The zoned result
// reports whether the text carried a zone designator; text without one
// yields its wall clock in UTC.
func ParseTimeString(s string) (t time.Time, zoned bool, err error) {
	if strings.HasPrefix(s, "/Date(") && strings.HasSuffix(s, ")/") {
		return parseWrapped(s)
	}
	if v, err := time.Parse(rfc1123Layout, s); err == nil {
		return v.UTC(), true, nil
	}
	if v, err := time.Parse(time.RFC3339Nano, s); err == nil {
		if isUTC(v) {
			return v.UTC(), true, nil
		}
		return v, true, nil
	}
	for _, layout := range []string{"2006-01-02T15:04:05.999999999", "2006-01-02T15:04:05", "2006-01-02"} {
		if v, err := time.Parse(layout, s); err == nil {
			return v, false, nil
		}
	}
	return time.Time{}, false, syntaxError("timestamp", s, nil)
}

func parseWrapped(s string) (time.Time, bool, error) {
	body := s[len("/Date(") : len(s)-len(")/")]
	offset, hasOffset := 0, false
	if i := strings.LastIndexAny(body, "+-"); i > 0 {
		zone := body[i:]
		if len(zone) != 5 {
			return time.Time{}, false, syntaxError("timestamp", s, nil)
		}
		hh, err1 := strconv.Atoi(zone[1:3])
		mm, err2 := strconv.Atoi(zone[3:5])
		if err1 != nil || err2 != nil {
			return time.Time{}, false, syntaxError("timestamp", s, nil)
		}
		offset = hh*3600 + mm*60
		if zone[0] == '-' {
			offset = -offset
		}
		hasOffset = true
		body = body[:i]
	}
	ms, err := strconv.ParseInt(body, 10, 64)
	if err != nil {
		return time.Time{}, false, syntaxError("timestamp", s, err)
	}
	t := time.UnixMilli(ms).UTC()
	if hasOffset {
		t = t.In(time.FixedZone("", offset))
	}
	return t, true, nil
}
