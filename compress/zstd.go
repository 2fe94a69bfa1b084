package compress

// ZstdDecompressor reads Zstandard framed sources.
//
// The implementation is selected at build time: klauspost/compress by default,
// valyala/gozstd when the "gozstd" build tag is set.
type ZstdDecompressor struct{}

var _ Decompressor = (*ZstdDecompressor)(nil)

// NewZstdDecompressor creates a Zstd decompressor.
func NewZstdDecompressor() ZstdDecompressor {
	return ZstdDecompressor{}
}
