// Package testutil provides testing utilities for shapejson.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded, thread-safe generator of values that stress the
// formatters: strings with control characters and non-ASCII runes,
// floats across the full exponent range, timestamps with sub-second ticks
// and fixed zones.
//
// # Random Values
//
//	rng := testutil.NewRNG(seed)
//	s := rng.String(32)         // mixed ASCII, control and multi-byte runes
//	f := rng.Float64()          // finite, any magnitude
//	ts := rng.Time()            // 100ns precision, random fixed zone
//
// # Skewed Sizes
//
//	n := rng.Zipf(64, 1.5)      // most values small, a few large
package testutil
