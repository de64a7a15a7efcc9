// Package compress provides compression and decompression codecs for
// finished fleece documents.
//
// Compression wraps a complete encoded document; it never alters the wire
// format itself. The internal pointer structure of a document already
// deduplicates repeated strings, so compression mostly pays off on large
// documents with many distinct literals.
//
// The package defines three core interfaces:
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// Four codecs are built in, selected by format.CompressionType:
//
//   - None: no compression, zero overhead
//   - Zstd: best ratio, moderate speed; cold storage and network transfer
//   - S2: balanced ratio and speed; hot paths
//   - LZ4: fastest decompression; read-heavy workloads
//
// All codecs are stateless values and safe for concurrent use; internal
// encoder/decoder state is pooled per algorithm.
package compress
