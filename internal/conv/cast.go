package conv

// Truncate keeps the low bits of v.
func Truncate(v uint64, bits int) uint64 {
	if bits >= 64 || bits <= 0 {
		return v
	}
	return v & (1<<uint(bits) - 1)
}

// SignExtend interprets the low bits of v as a two's complement integer.
func SignExtend(v uint64, bits int) int64 {
	if bits >= 64 || bits <= 0 {
		return int64(v)
	}
	shift := uint(64 - bits)
	return int64(v<<shift) >> shift
}

// FitsInt reports whether v is representable as a signed integer of the
// given width.
func FitsInt(v int64, bits int) bool {
	if bits >= 64 {
		return true
	}
	limit := int64(1) << uint(bits-1)
	return v >= -limit && v < limit
}

// FitsUint reports whether v is representable as an unsigned integer of the
// given width.
func FitsUint(v uint64, bits int) bool {
	return bits >= 64 || v>>uint(bits) == 0
}
