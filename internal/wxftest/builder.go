// Package wxftest assembles WXF streams for tests.
//
// It covers exactly the tokens the decoder understands. The module has no
// public encoder.
package wxftest

import (
	"math"

	"github.com/arloliu/wxf/endian"
	"github.com/arloliu/wxf/format"
	"github.com/arloliu/wxf/internal/pool"
	"github.com/arloliu/wxf/internal/varint"
)

// Builder appends WXF tokens to an in-memory buffer.
type Builder struct {
	buf    *pool.ByteBuffer
	engine endian.EndianEngine
}

// New returns an empty builder backed by a pooled stream buffer.
func New() *Builder {
	return &Builder{buf: pool.GetStreamBuffer(), engine: endian.WireEngine()}
}

// Release returns the builder's buffer to the pool. The builder must not be used afterwards.
func (b *Builder) Release() {
	pool.PutStreamBuffer(b.buf)
	b.buf = nil
}

// Stream returns a builder that already holds the header and a List of n records.
func Stream(n int) *Builder {
	return New().Header().List(n)
}

// Bytes returns a copy of the assembled stream.
func (b *Builder) Bytes() []byte {
	out := make([]byte, b.buf.Len())
	copy(out, b.buf.Bytes())

	return out
}

// Raw appends arbitrary bytes.
func (b *Builder) Raw(data ...byte) *Builder {
	b.buf.MustWrite(data)
	return b
}

// Header appends "8:".
func (b *Builder) Header() *Builder {
	return b.Raw(format.HeaderVersion, format.HeaderSeparator)
}

// Varint appends a variable-length integer.
func (b *Builder) Varint(n int) *Builder {
	b.buf.B = varint.Append(b.buf.B, n)
	return b
}

// Tag appends a tag byte.
func (b *Builder) Tag(t format.Tag) *Builder {
	return b.Raw(byte(t))
}

// Symbol appends a Symbol token.
func (b *Builder) Symbol(name string) *Builder {
	b.Tag(format.TagSymbol).Varint(len(name))
	b.buf.MustWrite([]byte(name))

	return b
}

// String appends a String token.
func (b *Builder) String(s string) *Builder {
	b.Tag(format.TagString).Varint(len(s))
	b.buf.MustWrite([]byte(s))

	return b
}

// List appends the head of a List[...] with n elements.
func (b *Builder) List(n int) *Builder {
	return b.Tag(format.TagFunction).Varint(n).Symbol(format.ListSymbol)
}

// Int8 appends an Int8 scalar.
func (b *Builder) Int8(v int8) *Builder {
	return b.Tag(format.TagInt8).Raw(byte(v))
}

// Int16 appends an Int16 scalar.
func (b *Builder) Int16(v int16) *Builder {
	b.Tag(format.TagInt16)
	b.buf.B = b.engine.AppendUint16(b.buf.B, uint16(v)) //nolint:gosec

	return b
}

// Int32 appends an Int32 scalar.
func (b *Builder) Int32(v int32) *Builder {
	b.Tag(format.TagInt32)
	b.buf.B = b.engine.AppendUint32(b.buf.B, uint32(v)) //nolint:gosec

	return b
}

// Real appends a Real scalar.
func (b *Builder) Real(v float64) *Builder {
	b.Tag(format.TagReal)
	b.buf.B = b.engine.AppendUint64(b.buf.B, math.Float64bits(v))

	return b
}

// PackedHeader appends a PackedArray tag, element kind, rank and dimensions.
func (b *Builder) PackedHeader(at format.ArrayType, dims ...int) *Builder {
	b.Tag(format.TagPackedArray).Raw(byte(at)).Varint(len(dims))
	for _, d := range dims {
		b.Varint(d)
	}

	return b
}

// PackedInt8 appends a packed Int8 array.
func (b *Builder) PackedInt8(values []int8, dims ...int) *Builder {
	b.PackedHeader(format.ArrayInt8, dimsOr(dims, len(values))...)
	for _, v := range values {
		b.buf.B = append(b.buf.B, byte(v))
	}

	return b
}

// PackedInt16 appends a packed Int16 array.
func (b *Builder) PackedInt16(values []int16, dims ...int) *Builder {
	b.PackedHeader(format.ArrayInt16, dimsOr(dims, len(values))...)
	for _, v := range values {
		b.buf.B = b.engine.AppendUint16(b.buf.B, uint16(v)) //nolint:gosec
	}

	return b
}

// PackedInt32 appends a packed Int32 array.
func (b *Builder) PackedInt32(values []int32, dims ...int) *Builder {
	b.PackedHeader(format.ArrayInt32, dimsOr(dims, len(values))...)
	for _, v := range values {
		b.buf.B = b.engine.AppendUint32(b.buf.B, uint32(v)) //nolint:gosec
	}

	return b
}

// PackedReal appends a packed Real array.
func (b *Builder) PackedReal(values []float64, dims ...int) *Builder {
	b.PackedHeader(format.ArrayReal, dimsOr(dims, len(values))...)
	for _, v := range values {
		b.buf.B = b.engine.AppendUint64(b.buf.B, math.Float64bits(v))
	}

	return b
}

// dimsOr defaults to a rank-1 shape of n elements.
func dimsOr(dims []int, n int) []int {
	if len(dims) == 0 {
		return []int{n}
	}

	return dims
}
