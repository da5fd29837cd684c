// Package frame wraps encoded binarize payloads in a checksummed, optionally
// compressed envelope for storage and transport.
//
// Frame layout (all integers big-endian):
//
//	offset 0:  magic number (uint16)
//	offset 2:  version (uint8)
//	offset 3:  compression type (uint8)
//	offset 4:  payload length before compression (uint32)
//	offset 8:  xxHash64 checksum of the payload before compression (uint64)
//	offset 16: payload, compressed with the codec named at offset 3
//
// The envelope is strictly layered above the serialization wire formats: the
// payload bytes are opaque to it.
package frame

import (
	"fmt"
	"math"

	"github.com/koehlma/binarize/compress"
	"github.com/koehlma/binarize/endian"
	"github.com/koehlma/binarize/errs"
	"github.com/koehlma/binarize/format"
	"github.com/koehlma/binarize/internal/hash"
	"github.com/koehlma/binarize/internal/options"
	"github.com/koehlma/binarize/internal/pool"
)

// HeaderSize is the fixed size of the frame header in bytes.
const HeaderSize = 16

var engine = endian.GetBigEndianEngine()

// Config holds the encoder configuration assembled from Options.
type Config struct {
	compression format.CompressionType
}

// Option configures frame encoding.
type Option = options.Option[*Config]

// WithCompression selects the compression codec applied to the payload.
// The default is no compression.
func WithCompression(t format.CompressionType) Option {
	return options.New(func(c *Config) error {
		if _, err := compress.GetCodec(t); err != nil {
			return fmt.Errorf("%w: %s", errs.ErrInvalidCompressionType, t)
		}
		c.compression = t

		return nil
	})
}

// Encode wraps payload in a frame. The checksum and length always describe
// the uncompressed payload, so corruption is detected after decompression.
func Encode(payload []byte, opts ...Option) ([]byte, error) {
	cfg := &Config{compression: format.CompressionNone}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	if len(payload) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: payload length %d", errs.ErrInvalidFrameSize, len(payload))
	}

	codec, err := compress.GetCodec(cfg.compression)
	if err != nil {
		return nil, err
	}

	body, err := codec.Compress(payload)
	if err != nil {
		return nil, err
	}

	buf := pool.GetFrameBuffer()
	defer pool.PutFrameBuffer(buf)
	buf.Grow(HeaderSize + len(body))

	var hdr [HeaderSize]byte
	engine.PutUint16(hdr[0:2], format.MagicNumber)
	hdr[2] = format.Version
	hdr[3] = byte(cfg.compression)
	engine.PutUint32(hdr[4:8], uint32(len(payload)))
	engine.PutUint64(hdr[8:16], hash.Sum64(payload))

	buf.MustWrite(hdr[:])
	buf.MustWrite(body)

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())

	return out, nil
}

// Decode validates a frame and returns its payload. The returned slice is
// newly allocated and owned by the caller.
func Decode(data []byte) ([]byte, error) {
	if len(data) < HeaderSize {
		return nil, fmt.Errorf("%w: %d bytes", errs.ErrInvalidFrameSize, len(data))
	}
	if engine.Uint16(data[0:2]) != format.MagicNumber {
		return nil, errs.ErrInvalidMagicNumber
	}
	if data[2] != format.Version {
		return nil, fmt.Errorf("%w: 0x%02X", errs.ErrInvalidVersion, data[2])
	}

	compression := format.CompressionType(data[3])
	codec, err := compress.GetCodec(compression)
	if err != nil {
		return nil, fmt.Errorf("%w: 0x%02X", errs.ErrInvalidCompressionType, data[3])
	}

	length := engine.Uint32(data[4:8])
	sum := engine.Uint64(data[8:16])

	payload, err := codec.Decompress(data[HeaderSize:])
	if err != nil {
		return nil, err
	}
	if len(payload) != int(length) {
		return nil, fmt.Errorf("%w: payload is %d bytes, header says %d", errs.ErrInvalidFrameSize, len(payload), length)
	}
	if hash.Sum64(payload) != sum {
		return nil, errs.ErrChecksumMismatch
	}

	out := make([]byte, len(payload))
	copy(out, payload)

	return out, nil
}
