package compress

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

// ZlibDecompressor reads the zlib body that follows a "8C:" WXF header.
type ZlibDecompressor struct{}

var _ Decompressor = (*ZlibDecompressor)(nil)

// NewZlibDecompressor creates a zlib decompressor.
func NewZlibDecompressor() ZlibDecompressor {
	return ZlibDecompressor{}
}

// NewReader wraps r in a zlib reader. The zlib header is read eagerly, so a
// corrupt body is reported here rather than on the first value.
func (ZlibDecompressor) NewReader(r io.Reader) (io.ReadCloser, error) {
	zr, err := zlib.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("zlib reader init failed: %w", err)
	}

	return zr, nil
}
