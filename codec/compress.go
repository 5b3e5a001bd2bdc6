package codec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// CompressionType defines the compression algorithm used.
type CompressionType uint8

const (
	// CompressionNone stores payloads as produced by the wrapped codec.
	CompressionNone CompressionType = 0
	// CompressionLZ4 indicates LZ4 block compression (fast, good for hot data).
	CompressionLZ4 CompressionType = 1
	// CompressionZSTD indicates ZSTD block compression (better ratio, good for cold data).
	CompressionZSTD CompressionType = 2
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("compression(%d)", uint8(c))
	}
}

var (
	// ErrCorruptPayload is returned when a compressed payload is truncated or
	// its header disagrees with its contents.
	ErrCorruptPayload = errors.New("corrupt compressed payload")

	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

// DefaultMaxPayloadSize bounds the decompressed size a Compressed codec
// accepts when MaxPayloadSize is zero.
const DefaultMaxPayloadSize = 64 << 20

// lz4MaxRatio is the largest expansion an LZ4 block can encode: a single
// literal followed by a match that runs to the end of the block.
const lz4MaxRatio = 255

// payloadHeaderSize covers [UncompressedSize uint32][CompressedSize uint32].
// CompressedSize 0 marks a payload stored uncompressed.
const payloadHeaderSize = 8

// Compressed wraps a codec and compresses its output. Payloads that do not
// shrink by at least 10% are stored uncompressed behind the same header.
//
// The header of an incoming payload declares its decompressed size; sizes
// above MaxPayloadSize are rejected before any buffer is allocated.
type Compressed struct {
	Codec       Codec
	Compression CompressionType
	// MaxPayloadSize is the largest decompressed payload Unmarshal accepts.
	// Zero means DefaultMaxPayloadSize.
	MaxPayloadSize int
}

// Marshal encodes v with the wrapped codec and compresses the result.
func (c Compressed) Marshal(v any) ([]byte, error) {
	raw, err := c.inner().Marshal(v)
	if err != nil {
		return nil, err
	}
	return compressPayload(raw, c.Compression)
}

// Unmarshal decompresses data and decodes it with the wrapped codec.
func (c Compressed) Unmarshal(data []byte, v any) error {
	raw, err := decompressPayload(data, c.Compression, c.maxPayloadSize())
	if err != nil {
		return err
	}
	return c.inner().Unmarshal(raw, v)
}

// Name returns the compression name, "+", and the wrapped codec's name.
func (c Compressed) Name() string {
	return c.Compression.String() + "+" + c.inner().Name()
}

func (c Compressed) maxPayloadSize() uint64 {
	if c.MaxPayloadSize <= 0 {
		return DefaultMaxPayloadSize
	}
	return uint64(c.MaxPayloadSize)
}

func (c Compressed) inner() Codec {
	if c.Codec == nil {
		return Default
	}
	return c.Codec
}

func compressPayload(data []byte, ct CompressionType) ([]byte, error) {
	var compressed []byte
	switch ct {
	case CompressionNone:
	case CompressionLZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(data)))
		n, err := lz4.CompressBlock(data, buf, nil)
		if err != nil {
			return nil, err
		}
		compressed = buf[:n] // n == 0: incompressible
	case CompressionZSTD:
		enc := getZstdEncoder()
		compressed = enc.EncodeAll(data, nil)
		zstdEncoderPool.Put(enc)
	default:
		return nil, fmt.Errorf("codec: unknown compression %s", ct)
	}

	out := make([]byte, payloadHeaderSize, payloadHeaderSize+len(data))
	binary.LittleEndian.PutUint32(out[0:], uint32(len(data)))
	if len(compressed) == 0 || float64(len(compressed)) > float64(len(data))*0.9 {
		return append(out, data...), nil
	}
	binary.LittleEndian.PutUint32(out[4:], uint32(len(compressed)))
	return append(out, compressed...), nil
}

func decompressPayload(data []byte, ct CompressionType, maxSize uint64) ([]byte, error) {
	if len(data) < payloadHeaderSize {
		return nil, fmt.Errorf("%w: %d bytes is shorter than the header", ErrCorruptPayload, len(data))
	}
	size := binary.LittleEndian.Uint32(data[0:])
	compressedSize := binary.LittleEndian.Uint32(data[4:])
	body := data[payloadHeaderSize:]

	if uint64(size) > maxSize {
		return nil, fmt.Errorf("%w: declared size %d exceeds limit %d", ErrCorruptPayload, size, maxSize)
	}

	if compressedSize == 0 {
		if uint32(len(body)) != size {
			return nil, fmt.Errorf("%w: stored size %d, have %d", ErrCorruptPayload, size, len(body))
		}
		return body, nil
	}
	if uint32(len(body)) != compressedSize {
		return nil, fmt.Errorf("%w: compressed size %d, have %d", ErrCorruptPayload, compressedSize, len(body))
	}

	switch ct {
	case CompressionLZ4:
		if uint64(size) > uint64(len(body))*lz4MaxRatio {
			return nil, fmt.Errorf("%w: declared size %d from %d compressed bytes", ErrCorruptPayload, size, len(body))
		}
		result := make([]byte, size)
		n, err := lz4.UncompressBlock(body, result)
		if err != nil {
			return nil, err
		}
		if uint32(n) != size {
			return nil, fmt.Errorf("%w: decompressed %d of %d bytes", ErrCorruptPayload, n, size)
		}
		return result, nil
	case CompressionZSTD:
		dec := getZstdDecoder()
		defer zstdDecoderPool.Put(dec)
		decoded, err := dec.DecodeAll(body, make([]byte, 0, size))
		if err != nil {
			return nil, err
		}
		if uint32(len(decoded)) != size {
			return nil, fmt.Errorf("%w: decompressed %d of %d bytes", ErrCorruptPayload, len(decoded), size)
		}
		return decoded, nil
	default:
		return nil, fmt.Errorf("codec: cannot decompress %s payload", ct)
	}
}
