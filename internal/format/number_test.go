package format

import (
	"errors"
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendInt(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{-1, "-1"},
		{math.MinInt8, "-128"},
		{math.MinInt16, "-32768"},
		{math.MinInt32, "-2147483648"},
		{math.MinInt64, "-9223372036854775808"},
		{math.MaxInt64, "9223372036854775807"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, string(AppendInt(nil, tt.in)))
	}
	assert.Equal(t, "18446744073709551615", string(AppendUint(nil, math.MaxUint64)))
}

func TestAppendFloat(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		bits int
		want string
	}{
		{"Zero", 0, 64, "0"},
		{"NegativeZero", math.Copysign(0, -1), 64, "0"},
		{"Integral", 42, 64, "42"},
		{"Fraction", 0.1, 64, "0.1"},
		{"Shortest", 1.0 / 3.0, 64, "0.3333333333333333"},
		{"SmallExponent", 1e-7, 64, "1e-7"},
		{"LargeExponent", 1e21, 64, "1e+21"},
		{"BelowLarge", 1e20, 64, "100000000000000000000"},
		{"Float32", float64(float32(0.1)), 32, "0.1"},
		{"Float32Max", math.MaxFloat32, 32, "3.4028235e+38"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AppendFloat(nil, tt.in, tt.bits)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))

			back, err := strconv.ParseFloat(string(got), tt.bits)
			require.NoError(t, err)
			assert.Equal(t, math.Abs(tt.in), math.Abs(back))
		})
	}
}

func TestAppendFloatRejectsNonFinite(t *testing.T) {
	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		got, err := AppendFloat([]byte("x"), f, 64)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnsupportedValue))
		assert.Equal(t, "x", string(got))

		var uve *UnsupportedValueError
		require.ErrorAs(t, err, &uve)
		assert.NotEmpty(t, uve.Value)
	}
}

func TestParseNumbers(t *testing.T) {
	v, err := ParseInt("-128", 8)
	require.NoError(t, err)
	assert.Equal(t, int64(-128), v)

	_, err = ParseInt("128", 8)
	assert.ErrorIs(t, err, ErrSyntax)

	u, err := ParseUint("255", 8)
	require.NoError(t, err)
	assert.Equal(t, uint64(255), u)

	f, err := ParseFloat("1e-7", 64)
	require.NoError(t, err)
	assert.Equal(t, 1e-7, f)
}
