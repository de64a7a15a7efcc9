package compress

// ZstdCompressor provides Zstandard compression for finished documents.
//
// Zstd trades compression speed for ratio, which suits cold storage,
// long-term retention, and bandwidth-limited transfer of large documents.
//
// Two implementations exist behind build tags: a cgo binding when cgo is
// available, and a pure-Go fallback otherwise. Both produce standard zstd
// frames and interoperate freely.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
