package testutil

import (
	"math"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	rng := NewRNG(4711)

	for range 100 {
		s := rng.String(16)
		assert.True(t, utf8.ValidString(s))
		assert.Equal(t, 16, utf8.RuneCountInString(s))
	}
}

func TestName(t *testing.T) {
	rng := NewRNG(4711)

	for range 100 {
		n := rng.Name(8)
		assert.NotEmpty(t, n)
		assert.LessOrEqual(t, len(n), 8)
		assert.NotContains(t, "0123456789_", n[:1])
	}
}

func TestFloatsAreFinite(t *testing.T) {
	rng := NewRNG(4711)

	for _, f := range rng.EdgeFloats(1000) {
		assert.False(t, math.IsNaN(f) || math.IsInf(f, 0))
	}
	for range 1000 {
		f := rng.Float32()
		assert.False(t, math.IsNaN(float64(f)) || math.IsInf(float64(f), 0))
	}
}

func TestTime(t *testing.T) {
	rng := NewRNG(4711)

	for range 1000 {
		ts := rng.Time()
		assert.Zero(t, ts.Nanosecond()%100)
		assert.GreaterOrEqual(t, ts.Year(), 1)
		assert.LessOrEqual(t, ts.Year(), 9999)

		_, offset := ts.Zone()
		assert.LessOrEqual(t, offset, 14*3600)
		assert.GreaterOrEqual(t, offset, -14*3600)
	}
}

func TestDuration(t *testing.T) {
	rng := NewRNG(4711)

	for range 1000 {
		assert.Zero(t, rng.Duration()%(100*time.Nanosecond))
	}
}

func TestZipf(t *testing.T) {
	rng := NewRNG(4711)

	counts := make([]int, 10)
	for range 10000 {
		counts[rng.Zipf(10, 1.5)]++
	}

	// Lower indices should be more frequent
	assert.Greater(t, counts[0], counts[9])
	assert.Greater(t, counts[0], 10000/10)
}

func TestStrings(t *testing.T) {
	rng := NewRNG(4711)

	for _, s := range rng.Strings(100, 32) {
		assert.Less(t, utf8.RuneCountInString(s), 32)
	}
}

func TestReset(t *testing.T) {
	rng := NewRNG(4711)
	a := rng.String(10)
	b := rng.Float64()

	rng.Reset()
	assert.Equal(t, a, rng.String(10))
	assert.Equal(t, b, rng.Float64())
	assert.Equal(t, int64(4711), rng.Seed())
}
