package stream

import (
	"fmt"
	"reflect"

	"github.com/arloliu/wxf/internal/options"
	"go.uber.org/zap"
)

const (
	// DefaultMaxElements bounds the element count of a single array, list or string.
	// A corrupt length field therefore fails with ErrLimitExceeded instead of
	// triggering a huge allocation.
	DefaultMaxElements = 1 << 28

	// DefaultBufferSize is the read buffer size placed in front of the source.
	DefaultBufferSize = 64 * 1024

	minBufferSize = 16
)

// ListFallback decides whether ReadVector may decode a List[...] container
// when the stream presents one instead of a packed array. It receives the
// requested element type.
type ListFallback func(elem reflect.Type) bool

// NoListFallback rejects the container path for every element type. It is the default:
// all element types ReadVector accepts have a packed representation.
func NoListFallback(reflect.Type) bool { return false }

// AlwaysListFallback accepts the container path for every element type.
func AlwaysListFallback(reflect.Type) bool { return true }

// ReaderConfig holds the settings of a decode session.
type ReaderConfig struct {
	logger       *zap.Logger
	listFallback ListFallback
	maxElements  int
	bufferSize   int
	checksum     bool
	decompress   bool
}

// NewReaderConfig returns the default configuration.
func NewReaderConfig() *ReaderConfig {
	return &ReaderConfig{
		logger:       Logger(),
		listFallback: NoListFallback,
		maxElements:  DefaultMaxElements,
		bufferSize:   DefaultBufferSize,
		decompress:   true,
	}
}

// MaxElements returns the configured element limit (0 means unlimited).
func (c *ReaderConfig) MaxElements() int {
	return c.maxElements
}

// ReaderOption represents a functional option for configuring a Reader.
type ReaderOption = options.Option[*ReaderConfig]

// WithLogger sets the logger used for session diagnostics. A nil logger restores the default.
func WithLogger(logger *zap.Logger) ReaderOption {
	return options.NoError(func(c *ReaderConfig) {
		if logger == nil {
			logger = Logger()
		}
		c.logger = logger
	})
}

// WithListFallback sets the predicate that enables the List container path in ReadVector.
func WithListFallback(pred ListFallback) ReaderOption {
	return options.NoError(func(c *ReaderConfig) {
		if pred == nil {
			pred = NoListFallback
		}
		c.listFallback = pred
	})
}

// WithMaxElements bounds the declared size of arrays, lists and strings.
// Zero disables the limit.
func WithMaxElements(n int) ReaderOption {
	return options.New(func(c *ReaderConfig) error {
		if n < 0 {
			return fmt.Errorf("invalid max elements: %d", n)
		}
		c.maxElements = n

		return nil
	})
}

// WithBufferSize sets the size of the read buffer in front of the source.
func WithBufferSize(size int) ReaderOption {
	return options.New(func(c *ReaderConfig) error {
		if size < minBufferSize {
			return fmt.Errorf("buffer size %d is below minimum %d", size, minBufferSize)
		}
		c.bufferSize = size

		return nil
	})
}

// WithChecksum enables a running xxHash64 over every consumed byte, exposed by Reader.Checksum.
func WithChecksum(enabled bool) ReaderOption {
	return options.NoError(func(c *ReaderConfig) {
		c.checksum = enabled
	})
}

// WithDecompression controls detection of compressed containers (Zstd, S2, LZ4)
// around the stream. Native "8C:" streams are always accepted.
func WithDecompression(enabled bool) ReaderOption {
	return options.NoError(func(c *ReaderConfig) {
		c.decompress = enabled
	})
}
