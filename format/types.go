// Package format defines the wire-level constants shared by the binarize
// frame envelope: the magic number, the frame version, and the compression
// type identifiers stored in the frame header.
package format

// MagicNumber identifies a binarize frame. It is stored big-endian in the
// first two bytes of every frame.
const MagicNumber uint16 = 0xB17A

// Version is the current frame layout version byte.
const Version uint8 = 0x01

// CompressionType identifies the compression codec applied to a frame
// payload.
type CompressionType uint8

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
