package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/arloliu/wxf/errs"
	"github.com/arloliu/wxf/format"
)

// Decompressor wraps a compressed byte source into a reader of plain bytes.
type Decompressor interface {
	// NewReader returns a reader that yields the decompressed content of r.
	//
	// Closing the returned reader releases decompressor resources but never closes r.
	NewReader(r io.Reader) (io.ReadCloser, error)
}

// MagicSize is the number of leading bytes Detect needs to classify a source.
const MagicSize = 10

var (
	zstdMagic   = []byte{0x28, 0xB5, 0x2F, 0xFD}
	lz4Magic    = []byte{0x04, 0x22, 0x4D, 0x18}
	s2Magic     = []byte("\xff\x06\x00\x00S2sTwO")
	snappyMagic = []byte("\xff\x06\x00\x00sNaPpY")
)

// Detect classifies a source by its leading bytes.
//
// Zlib is never detected here; it is only reachable through the "8C:" header.
//
// Parameters:
//   - prefix: The first bytes of the source (MagicSize bytes is enough)
//
// Returns:
//   - format.CompressionType: the detected container, or CompressionNone
func Detect(prefix []byte) format.CompressionType {
	switch {
	case bytes.HasPrefix(prefix, zstdMagic):
		return format.CompressionZstd
	case bytes.HasPrefix(prefix, lz4Magic):
		return format.CompressionLZ4
	case bytes.HasPrefix(prefix, s2Magic), bytes.HasPrefix(prefix, snappyMagic):
		return format.CompressionS2
	default:
		return format.CompressionNone
	}
}

var builtinDecompressors = map[format.CompressionType]Decompressor{
	format.CompressionNone: NewNoOpDecompressor(),
	format.CompressionZstd: NewZstdDecompressor(),
	format.CompressionS2:   NewS2Decompressor(),
	format.CompressionLZ4:  NewLZ4Decompressor(),
	format.CompressionZlib: NewZlibDecompressor(),
}

// GetDecompressor returns the built-in Decompressor for compressionType.
func GetDecompressor(compressionType format.CompressionType) (Decompressor, error) {
	if d, ok := builtinDecompressors[compressionType]; ok {
		return d, nil
	}

	return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedCompression, compressionType)
}

// closerFunc adapts a reader and a release function into an io.ReadCloser.
type closerFunc struct {
	io.Reader
	close func() error
}

func (c closerFunc) Close() error {
	return c.close()
}
