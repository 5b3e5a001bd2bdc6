package format

import (
	"math"
	"strconv"
)

// AppendInt appends the base-10 text of v.
func AppendInt(dst []byte, v int64) []byte {
	return strconv.AppendInt(dst, v, 10)
}

// AppendUint appends the base-10 text of v.
func AppendUint(dst []byte, v uint64) []byte {
	return strconv.AppendUint(dst, v, 10)
}

// AppendFloat appends the shortest decimal text that round-trips to f at the
// given bit size (32 or 64).
//
// Magnitudes below 1e-6 or at/above 1e21 use exponent notation with an
// unpadded exponent (1e-7, 1e+21). Negative zero renders as 0. NaN and the
// infinities are rejected with an *UnsupportedValueError and dst is returned
// unchanged.
func AppendFloat(dst []byte, f float64, bits int) ([]byte, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return dst, &UnsupportedValueError{
			Value:  strconv.FormatFloat(f, 'g', -1, bits),
			Reason: "non-finite floats have no JSON representation",
		}
	}
	if f == 0 {
		return append(dst, '0'), nil
	}

	abs := math.Abs(f)
	verb := byte('f')
	if bits == 32 {
		if a := float32(abs); a < 1e-6 || a >= 1e21 {
			verb = 'e'
		}
	} else if abs < 1e-6 || abs >= 1e21 {
		verb = 'e'
	}

	dst = strconv.AppendFloat(dst, f, verb, -1, bits)
	if verb == 'e' {
		// strconv pads the exponent to two digits: 1e-07 -> 1e-7.
		n := len(dst)
		if n >= 4 && dst[n-4] == 'e' && dst[n-3] == '-' && dst[n-2] == '0' {
			dst[n-2] = dst[n-1]
			dst = dst[:n-1]
		}
	}
	return dst, nil
}

// ParseInt parses base-10 integer text that must fit in bits.
func ParseInt(s string, bits int) (int64, error) {
	v, err := strconv.ParseInt(s, 10, bits)
	if err != nil {
		return 0, syntaxError("integer", s, err)
	}
	return v, nil
}

// ParseUint parses base-10 unsigned integer text that must fit in bits.
func ParseUint(s string, bits int) (uint64, error) {
	v, err := strconv.ParseUint(s, 10, bits)
	if err != nil {
		return 0, syntaxError("unsigned integer", s, err)
	}
	return v, nil
}

// ParseFloat parses JSON number text at the given bit size.
func ParseFloat(s string, bits int) (float64, error) {
	v, err := strconv.ParseFloat(s, bits)
	if err != nil {
		return 0, syntaxError("number", s, err)
	}
	return v, nil
}
