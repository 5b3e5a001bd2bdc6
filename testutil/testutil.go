package testutil

import (
	"math"
	"math/rand"
	"sync"
	"time"
	"unicode/utf8"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Int64 returns a pseudo-random int64 over the full range, including
// negative values.
func (r *RNG) Int64() int64 {
	return int64(r.Uint64())
}

// Uint64 returns a pseudo-random uint64.
func (r *RNG) Uint64() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Uint64()
}

// Bool returns a pseudo-random bool.
func (r *RNG) Bool() bool {
	return r.Intn(2) == 1
}

// Float64 returns a finite float64 whose bits are random, so every exponent
// and subnormals are covered. NaN and infinities are redrawn.
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	for {
		f := math.Float64frombits(r.rand.Uint64())
		if !math.IsNaN(f) && !math.IsInf(f, 0) {
			return f
		}
	}
}

// Float32 returns a finite float32 with random bits.
func (r *RNG) Float32() float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	for {
		f := math.Float32frombits(r.rand.Uint32())
		if !math.IsNaN(float64(f)) && !math.IsInf(float64(f), 0) {
			return f
		}
	}
}

// edgeFloats are values whose formatting is easy to get wrong.
var edgeFloats = []float64{
	0, math.Copysign(0, -1), 1, -1, 0.1, 1e-6, 1e-7, 1e20, 1e21, 123456789e-15,
	math.MaxFloat64, math.SmallestNonzeroFloat64, -math.MaxFloat64,
	float64(math.MaxInt64), float64(math.MinInt64), 5e-324, 2.2250738585072014e-308,
}

// EdgeFloats returns floats at formatting boundaries followed by n random
// finite floats.
func (r *RNG) EdgeFloats(n int) []float64 {
	out := append([]float64(nil), edgeFloats...)
	for range n {
		out = append(out, r.Float64())
	}
	return out
}

// runePool mixes ASCII, characters JSON must escape, and runes of every
// UTF-8 length.
var runePool = []rune{
	'a', 'Z', '0', ' ', '"', '\\', '/', '\b', '\f', '\n', '\r', '\t', 0x00, 0x1f, 0x7f,
	'é', 'ß', 'Ω', '€', '中', 0x2028, 0x2029, 0xfeff, 0xfffd, 0x1f600, 0x10ffff,
}

// String returns a valid UTF-8 string of n runes.
func (r *RNG) String(n int) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	buf := make([]byte, 0, n*2)
	for range n {
		var c rune
		if r.rand.Intn(3) == 0 {
			c = runePool[r.rand.Intn(len(runePool))]
		} else {
			c = rune(' ' + r.rand.Intn('~'-' '+1))
		}
		buf = utf8.AppendRune(buf, c)
	}
	return string(buf)
}

// Name returns an ASCII identifier of length 1..n starting with a letter.
func (r *RNG) Name(n int) string {
	const letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	const tail = letters + "0123456789_"
	r.mu.Lock()
	defer r.mu.Unlock()
	size := 1 + r.rand.Intn(n)
	buf := make([]byte, size)
	buf[0] = letters[r.rand.Intn(len(letters))]
	for i := 1; i < size; i++ {
		buf[i] = tail[r.rand.Intn(len(tail))]
	}
	return string(buf)
}

// Bytes returns n random bytes.
func (r *RNG) Bytes(n int) []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	b := make([]byte, n)
	_, _ = r.rand.Read(b)
	return b
}

// Time returns a timestamp between years 1 and 9999 with 100ns precision in
// a fixed zone offset by a whole number of minutes within ±14h.
func (r *RNG) Time() time.Time {
	const (
		minUnix = -62135596800 // 0001-01-01T00:00:00Z
		maxUnix = 253402300799 // 9999-12-31T23:59:59Z
	)
	r.mu.Lock()
	defer r.mu.Unlock()
	// keep clear of the range ends so offsets cannot push the year out
	sec := minUnix + 86400 + r.rand.Int63n(maxUnix-minUnix-2*86400)
	nsec := r.rand.Int63n(1e7) * 100
	offset := (r.rand.Intn(28*60+1) - 14*60) * 60
	return time.Unix(sec, nsec).In(time.FixedZone("", offset))
}

// Duration returns a duration with 100ns precision and random sign.
func (r *RNG) Duration() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	d := time.Duration(r.rand.Int63n(math.MaxInt64/100)) * 100
	if r.rand.Intn(2) == 0 {
		d = -d
	}
	return d
}

// Zipf returns a Zipfian-distributed value in [0, n).
// Uses Zipf's law: P(k) ∝ 1/k^s where s is the skew parameter.
// s=1.0 gives standard Zipf, s=1.5 gives heavy-tail (80/20 rule).
func (r *RNG) Zipf(n int, s float64) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.zipfLocked(n, s)
}

// zipfLocked is the internal implementation (caller must hold lock).
func (r *RNG) zipfLocked(n int, s float64) int {
	if n <= 1 {
		return 0
	}

	// Compute normalization constant (harmonic number with exponent s)
	var hns float64
	for i := 1; i <= n; i++ {
		hns += 1.0 / math.Pow(float64(i), s)
	}

	// Sample from uniform and use inverse transform
	u := r.rand.Float64() * hns
	var cumulative float64
	for k := 1; k <= n; k++ {
		cumulative += 1.0 / math.Pow(float64(k), s)
		if u <= cumulative {
			return k - 1 // 0-indexed
		}
	}

	return n - 1
}

// Strings returns n strings whose rune counts follow a Zipf distribution
// below maxLen.
func (r *RNG) Strings(n, maxLen int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = r.String(r.Zipf(maxLen, 1.5))
	}
	return out
}
