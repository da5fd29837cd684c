// Package compress provides the payload compression codecs used by the
// binarize frame envelope.
//
// Encoded payloads are small to medium buffers (typically a few hundred bytes
// to a few hundred kilobytes), so every codec here works on whole blocks
// rather than streams.
package compress

import (
	"fmt"

	"github.com/koehlma/binarize/format"
)

// Compressor compresses a complete payload block.
type Compressor interface {
	// Compress compresses the input data and returns the compressed result.
	//
	// The returned slice is newly allocated and owned by the caller; the
	// input slice is not modified. Internal buffers may be reused for
	// efficiency.
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a payload block produced by the matching Compressor.
type Decompressor interface {
	// Decompress decompresses the input data and returns the original
	// payload.
	//
	// Returns an error if the data is corrupted or was compressed with an
	// incompatible algorithm.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves a built-in Codec for the specified compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}
