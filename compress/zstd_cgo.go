//go:build gozstd

package compress

import (
	"io"

	"github.com/valyala/gozstd"
)

// NewReader wraps r in a cgo zstd stream decoder.
func (ZstdDecompressor) NewReader(r io.Reader) (io.ReadCloser, error) {
	zr := gozstd.NewReader(r)

	return closerFunc{
		Reader: zr,
		close: func() error {
			zr.Release()
			return nil
		},
	}, nil
}
