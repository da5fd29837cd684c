package compress

// ZstdCompressor compresses frame payloads with Zstandard.
//
// Zstd gives the best ratio of the built-in codecs and is the right choice
// for archival or network transmission of large encoded payloads. The
// implementation is selected by build tag: the pure-Go klauspost/compress
// backend by default, or the cgo gozstd backend (see zstd_cgo.go).
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
