// Package conv provides fixed-width integer conversions.
//
// Values travel through the codec as raw 64-bit patterns. Truncate and
// SignExtend narrow such a pattern to a declared width, which is how an
// integer-redirected enumerated member is rendered at a width other than
// its own.
package conv
