package format

import (
	"github.com/google/uuid"
)

// AppendUUID appends u as a quoted lower-case 8-4-4-4-12 hex string.
func AppendUUID(dst []byte, u uuid.UUID) []byte {
	var buf [36]byte
	encodeHex(buf[0:8], u[0:4])
	buf[8] = '-'
	encodeHex(buf[9:13], u[4:6])
	buf[13] = '-'
	encodeHex(buf[14:18], u[6:8])
	buf[18] = '-'
	encodeHex(buf[19:23], u[8:10])
	buf[23] = '-'
	encodeHex(buf[24:], u[10:])

	dst = append(dst, '"')
	dst = append(dst, buf[:]...)
	return append(dst, '"')
}

func encodeHex(dst, src []byte) {
	for i, b := range src {
		dst[i*2] = hexDigits[b>>4]
		dst[i*2+1] = hexDigits[b&0xF]
	}
}

// ParseUUID parses the canonical hyphenated form (either case) as well as
// the other layouts accepted by uuid.Parse.
func ParseUUID(s string) (uuid.UUID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, syntaxError("unique identifier", s, err)
	}
	return u, nil
}
