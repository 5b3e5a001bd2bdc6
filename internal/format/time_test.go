package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	baseUTC   = time.Date(2017, 1, 2, 3, 4, 5, 0, time.UTC)
	mountain  = time.FixedZone("MST", -7*3600)
	baseMinus = time.Date(2017, 1, 2, 3, 4, 5, 0, mountain)
)

func TestAppendTime(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		f    TimestampFormat
		want string
	}{
		{"WrappedUTC", baseUTC, EpochWrappedMillis, `"/Date(1483326245000)/"`},
		{"WrappedOffset", baseMinus, EpochWrappedMillis, `"/Date(1483351445000-0700)/"`},
		{"WrappedBeforeEpoch", time.Date(1969, 12, 31, 23, 59, 59, 0, time.UTC), EpochWrappedMillis, `"/Date(-1000)/"`},
		{"Seconds", baseUTC, EpochSeconds, `1483326245`},
		{"Millis", baseUTC.Add(250 * time.Millisecond), EpochMillis, `1483326245250`},
		{"ISOWhole", baseUTC, ISO8601, `"2017-01-02T03:04:05Z"`},
		{"ISOTenth", baseUTC.Add(100 * time.Millisecond), ISO8601, `"2017-01-02T03:04:05.1Z"`},
		{"ISOTicks", baseUTC.Add(426533900 * time.Nanosecond), ISO8601, `"2017-01-02T03:04:05.4265339Z"`},
		{"ISOSubTickDropped", baseUTC.Add(50 * time.Nanosecond), ISO8601, `"2017-01-02T03:04:05Z"`},
		{"ISOOffset", baseMinus, ISO8601, `"2017-01-02T03:04:05-07:00"`},
		{"ISOHalfHour", time.Date(2017, 1, 2, 3, 4, 5, 0, time.FixedZone("", 5*3600+1800)), ISO8601, `"2017-01-02T03:04:05+05:30"`},
		{"RFC1123", baseMinus, RFC1123, `"Mon, 02 Jan 2017 10:04:05 GMT"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, string(AppendTime(nil, tt.in, tt.f)))
		})
	}
}

func TestResolve(t *testing.T) {
	wall := time.Date(2020, 5, 6, 7, 8, 9, 10, mountain)

	utc := Resolve(wall, time.UTC)
	assert.Equal(t, time.UTC, utc.Location())
	assert.Equal(t, 7, utc.Hour())
	assert.Equal(t, 10, utc.Nanosecond())

	local := Resolve(wall, time.Local)
	assert.Equal(t, time.Local, local.Location())
	assert.Equal(t, 7, local.Hour())
}

func TestParseTimeString(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		want  time.Time
		zoned bool
	}{
		{"Wrapped", "/Date(1483326245000)/", baseUTC, true},
		{"WrappedOffset", "/Date(1483351445000-0700)/", baseMinus, true},
		{"ISOZulu", "2017-01-02T03:04:05.4265339Z", baseUTC.Add(426533900), true},
		{"ISOOffset", "2017-01-02T03:04:05-07:00", baseMinus, true},
		{"ISONoZone", "2017-01-02T03:04:05", baseUTC, false},
		{"RFC1123", "Mon, 02 Jan 2017 03:04:05 GMT", baseUTC, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, zoned, err := ParseTimeString(tt.in)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v want %v", got, tt.want)
			assert.Equal(t, tt.zoned, zoned)
		})
	}

	_, _, err := ParseTimeString("yesterday")
	assert.ErrorIs(t, err, ErrSyntax)
}

func TestParseTimeNumber(t *testing.T) {
	got, err := ParseTimeNumber("1483326245", EpochSeconds)
	require.NoError(t, err)
	assert.True(t, baseUTC.Equal(got))

	got, err = ParseTimeNumber("1483326245000", EpochMillis)
	require.NoError(t, err)
	assert.True(t, baseUTC.Equal(got))

	_, err = ParseTimeNumber("1.5", EpochMillis)
	assert.ErrorIs(t, err, ErrSyntax)
}

func TestTimeRoundTrip(t *testing.T) {
	in := baseUTC.Add(123456700)
	for _, f := range []TimestampFormat{EpochWrappedMillis, ISO8601} {
		text := AppendTime(nil, in, f)
		got, _, err := ParseTimeString(string(text[1 : len(text)-1]))
		require.NoError(t, err)
		if f == ISO8601 {
			assert.True(t, in.Equal(got))
		} else {
			assert.True(t, in.Truncate(time.Millisecond).Equal(got))
		}
	}
}
