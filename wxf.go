// Package wxf provides a schema-driven decoder for the Wolfram Exchange Format (WXF).
//
// WXF is a compact, self-describing binary serialization. A WXF stream handled
// by this module is a single List[...] of records. Each record is a tagged
// integer, real, string, symbol, packed numeric array, or nested list. The
// decoder is pull-style: the caller knows the schema and requests one typed
// value at a time, and every request validates the wire tag before any value
// is produced.
//
// # Core Features
//
//   - Generic, typed extraction: ReadInt[T], ReadVector[T], ReadArray[T], ReadList[T]
//   - Strict validation: no coercion between integers and reals, range-checked narrowing
//   - Zero-copy fast path for packed arrays whose wire width matches the destination
//   - Terminal, offset-carrying errors (errs.DecodeError) classified with errors.Is
//   - Transparent Zstd, S2, LZ4 containers and native "8C:" zlib streams
//   - Views for regularly sampled series (package series)
//   - Discriminator registries for records of several shapes (package registry)
//
// # Basic Usage
//
//	r, err := wxf.Open("prices.wxf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
//	for range r.Length() {
//	    ts, err := wxf.ReadTimeSeries[float64](r)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(ts.PathLength(), ts.DurationSeconds())
//	}
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the stream, series
// and registry packages. For fine-grained control, use those packages directly.
package wxf

import (
	"bytes"
	"io"
	"reflect"
	"slices"

	"github.com/arloliu/wxf/internal/hash"
	"github.com/arloliu/wxf/registry"
	"github.com/arloliu/wxf/series"
	"github.com/arloliu/wxf/stream"
)

var lenientOptions = []stream.ReaderOption{
	stream.WithListFallback(stream.AlwaysListFallback),
}

// Open opens a WXF file with custom options.
//
// Available options:
//   - stream.WithLogger(logger)
//   - stream.WithListFallback(pred)
//   - stream.WithMaxElements(n)
//   - stream.WithBufferSize(n)
//   - stream.WithChecksum(true|false)
//   - stream.WithDecompression(true|false)
//
// Example:
//
//	r, err := wxf.Open("data.wxf", stream.WithChecksum(true))
func Open(path string, opts ...stream.ReaderOption) (*stream.Reader, error) {
	return stream.Open(path, opts...)
}

// NewReader starts a decode session over src with custom options.
// The caller keeps ownership of src.
func NewReader(src io.Reader, opts ...stream.ReaderOption) (*stream.Reader, error) {
	return stream.NewReader(src, opts...)
}

// FromBytes starts a decode session over an in-memory stream.
//
// Example:
//
//	r, err := wxf.FromBytes(payload)
//	if err != nil {
//	    return err
//	}
//	n, err := stream.ReadInt[int64](r)
func FromBytes(data []byte, opts ...stream.ReaderOption) (*stream.Reader, error) {
	return stream.NewReader(bytes.NewReader(data), opts...)
}

// OpenLenient opens a WXF file whose vectors may be written as List[...]
// containers of scalars instead of packed arrays.
//
// Later options override the lenient defaults.
func OpenLenient(path string, opts ...stream.ReaderOption) (*stream.Reader, error) {
	return stream.Open(path, append(slices.Clone(lenientOptions), opts...)...)
}

// ListFallbackFor returns a ListFallback predicate that accepts exactly the given element types.
//
// Example:
//
//	pred := wxf.ListFallbackFor(reflect.TypeFor[float64]())
//	r, err := wxf.Open("data.wxf", stream.WithListFallback(pred))
func ListFallbackFor(types ...reflect.Type) stream.ListFallback {
	allowed := make(map[reflect.Type]struct{}, len(types))
	for _, t := range types {
		allowed[t] = struct{}{}
	}

	return func(elem reflect.Type) bool {
		_, ok := allowed[elem]
		return ok
	}
}

// ReadTimeSeries decodes an interval and a rank-1 array as a series.TimeSeriesView.
func ReadTimeSeries[T stream.Element](r *stream.Reader) (series.TimeSeriesView[T], error) {
	return series.ReadTimeSeries[T](r)
}

// ReadTemporalData decodes an interval and a rank-2 array as a series.TemporalDataView.
func ReadTemporalData[T stream.Element](r *stream.Reader) (series.TemporalDataView[T], error) {
	return series.ReadTemporalData[T](r)
}

// NewRegistry creates an empty discriminator registry for records of type T.
func NewRegistry[T any]() *registry.Registry[T] {
	return registry.New[T]()
}

// DiscriminatorID returns the 64-bit xxHash of a discriminator name, the key registries use.
func DiscriminatorID(name string) uint64 {
	return hash.ID(name)
}
