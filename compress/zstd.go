package compress

// ZstdCompressor provides Zstandard compression/decompression for CBOR
// documents stored or transmitted with a .zst suffix.
//
// This codec favors compression ratio over speed, making it suited to
// archived or network-transmitted documents where decompression happens
// far less often than compression.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
//
// Returns:
//   - ZstdCompressor: New Zstd compressor instance
//
// Example:
//
//	compressor := NewZstdCompressor()
//	compressed, err := compressor.Compress(data)
//	if err != nil {
//		return err
//	}
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
