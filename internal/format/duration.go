package format

import (
	"strconv"
	"strings"
	"time"
)

const ticksPerDay = 86400 * ticksPerSecond

// AppendDuration appends d in the representation implied by f.
//
// EpochSeconds and EpochMillis emit the total seconds or milliseconds as a
// JSON number, ISO8601 emits a duration literal such as "P1DT2H3M4.5S" and
// every other format emits "[-][d.]hh:mm:ss[.fffffff]". Precision is 100ns.
func AppendDuration(dst []byte, d time.Duration, f TimestampFormat) []byte {
	switch f {
	case EpochSeconds:
		dst, _ = AppendFloat(dst, d.Seconds(), 64)
		return dst
	case EpochMillis:
		dst, _ = AppendFloat(dst, float64(d)/float64(time.Millisecond), 64)
		return dst
	}

	neg := d < 0
	ticks := absNanos(d) / nanosPerTick
	days := ticks / ticksPerDay
	rem := ticks % ticksPerDay
	hours := rem / (3600 * ticksPerSecond)
	rem %= 3600 * ticksPerSecond
	minutes := rem / (60 * ticksPerSecond)
	rem %= 60 * ticksPerSecond
	seconds := rem / ticksPerSecond
	fraction := int(rem % ticksPerSecond)

	dst = append(dst, '"')
	if neg {
		dst = append(dst, '-')
	}
	if f == ISO8601 {
		dst = appendISODuration(dst, days, hours, minutes, seconds, fraction)
		return append(dst, '"')
	}
	if days > 0 {
		dst = strconv.AppendUint(dst, days, 10)
		dst = append(dst, '.')
	}
	dst = appendTwo(dst, int(hours))
	dst = append(dst, ':')
	dst = appendTwo(dst, int(minutes))
	dst = append(dst, ':')
	dst = appendTwo(dst, int(seconds))
	dst = appendFraction(dst, fraction)
	return append(dst, '"')
}

func appendISODuration(dst []byte, days, hours, minutes, seconds uint64, fraction int) []byte {
	dst = append(dst, 'P')
	if days > 0 {
		dst = strconv.AppendUint(dst, days, 10)
		dst = append(dst, 'D')
	}
	if hours == 0 && minutes == 0 && seconds == 0 && fraction == 0 && days > 0 {
		return dst
	}
	dst = append(dst, 'T')
	if hours > 0 {
		dst = strconv.AppendUint(dst, hours, 10)
		dst = append(dst, 'H')
	}
	if minutes > 0 {
		dst = strconv.AppendUint(dst, minutes, 10)
		dst = append(dst, 'M')
	}
	if seconds > 0 || fraction > 0 || (hours == 0 && minutes == 0) {
		dst = strconv.AppendUint(dst, seconds, 10)
		dst = appendFraction(dst, fraction)
		dst = append(dst, 'S')
	}
	return dst
}

func absNanos(d time.Duration) uint64 {
	if d >= 0 {
		return uint64(d)
	}
	return uint64(-(d + 1)) + 1
}

// ParseDurationNumber parses the numeric duration forms. EpochSeconds reads
// seconds; every other format reads milliseconds.
func ParseDurationNumber(text string, f TimestampFormat) (time.Duration, error) {
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, syntaxError("duration", text, err)
	}
	if f == EpochSeconds {
		return time.Duration(v * float64(time.Second)), nil
	}
	return time.Duration(v * float64(time.Millisecond)), nil
}

// ParseDurationString parses "[-][d.]hh:mm:ss[.fffffff]" or an ISO8601
// duration literal.
func ParseDurationString(s string) (time.Duration, error) {
	body := s
	neg := strings.HasPrefix(body, "-")
	if neg {
		body = body[1:]
	}
	var (
		ticks uint64
		err   error
	)
	if strings.HasPrefix(body, "P") {
		ticks, err = parseISODuration(body[1:])
	} else {
		ticks, err = parseClockDuration(body)
	}
	if err != nil {
		return 0, syntaxError("duration", s, err)
	}
	d := time.Duration(ticks * nanosPerTick)
	if neg {
		d = -d
	}
	return d, nil
}

func parseClockDuration(s string) (uint64, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, ErrSyntax
	}
	var days uint64
	hourPart := parts[0]
	if i := strings.IndexByte(hourPart, '.'); i >= 0 {
		v, err := strconv.ParseUint(hourPart[:i], 10, 32)
		if err != nil {
			return 0, err
		}
		days = v
		hourPart = hourPart[i+1:]
	}
	hours, err := strconv.ParseUint(hourPart, 10, 8)
	if err != nil {
		return 0, err
	}
	minutes, err := strconv.ParseUint(parts[1], 10, 8)
	if err != nil {
		return 0, err
	}
	secs, frac, err := splitSeconds(parts[2])
	if err != nil {
		return 0, err
	}
	if hours > 23 || minutes > 59 || secs > 59 {
		return 0, ErrSyntax
	}
	return days*ticksPerDay + hours*3600*ticksPerSecond + minutes*60*ticksPerSecond + secs*ticksPerSecond + frac, nil
}

// splitSeconds parses "ss[.fffffff]" into whole seconds and 100ns ticks.
func splitSeconds(s string) (uint64, uint64, error) {
	whole, fracText, _ := strings.Cut(s, ".")
	secs, err := strconv.ParseUint(whole, 10, 32)
	if err != nil {
		return 0, 0, err
	}
	if fracText == "" {
		return secs, 0, nil
	}
	if len(fracText) > 7 {
		fracText = fracText[:7]
	}
	frac, err := strconv.ParseUint(fracText, 10, 32)
	if err != nil {
		return 0, 0, err
	}
	for i := len(fracText); i < 7; i++ {
		frac *= 10
	}
	return secs, frac, nil
}

func parseISODuration(s string) (uint64, error) {
	if s == "" {
		return 0, ErrSyntax
	}
	var ticks uint64
	inTime := false
	for len(s) > 0 {
		if s[0] == 'T' {
			inTime = true
			s = s[1:]
			continue
		}
		i := strings.IndexAny(s, "DHMS")
		if i <= 0 {
			return 0, ErrSyntax
		}
		num, unit := s[:i], s[i]
		s = s[i+1:]
		switch {
		case unit == 'D' && !inTime:
			v, err := strconv.ParseUint(num, 10, 32)
			if err != nil {
				return 0, err
			}
			ticks += v * ticksPerDay
		case unit == 'H' && inTime:
			v, err := strconv.ParseUint(num, 10, 32)
			if err != nil {
				return 0, err
			}
			ticks += v * 3600 * ticksPerSecond
		case unit == 'M' && inTime:
			v, err := strconv.ParseUint(num, 10, 32)
			if err != nil {
				return 0, err
			}
			ticks += v * 60 * ticksPerSecond
		case unit == 'S' && inTime:
			secs, frac, err := splitSeconds(num)
			if err != nil {
				return 0, err
			}
			ticks += secs*ticksPerSecond + frac
		default:
			return 0, ErrSyntax
		}
	}
	return ticks, nil
}
