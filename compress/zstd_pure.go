//go:build !gozstd

package compress

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

// NewReader wraps r in a single-goroutine zstd stream decoder.
func (ZstdDecompressor) NewReader(r io.Reader) (io.ReadCloser, error) {
	decoder, err := zstd.NewReader(r,
		zstd.WithDecoderConcurrency(1), // decode sessions are single-threaded
		zstd.WithDecoderLowmem(true),
	)
	if err != nil {
		return nil, fmt.Errorf("zstd reader init failed: %w", err)
	}

	return decoder.IOReadCloser(), nil
}
