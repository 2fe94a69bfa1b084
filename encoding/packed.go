package encoding

import (
	"fmt"
	"math"
	"reflect"
	"unsafe"

	"github.com/arloliu/wxf/endian"
	"github.com/arloliu/wxf/errs"
	"github.com/arloliu/wxf/format"
)

// Number is the set of destination types a packed payload can decode into.
type Number interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~int | ~float64
}

// PackedDecoder converts packed elements of one wire kind into T.
//
// The decoder is immutable and stateless; it is returned by value.
type PackedDecoder[T Number] struct {
	engine endian.EndianEngine
	kind   format.ArrayType
	direct bool
}

// NewPackedDecoder creates a decoder from wire kind to T.
//
// Returns:
//   - ErrUnknownElementType: kind is not Int8, Int16, Int32 or Real
//   - ErrTagMismatch: an integer kind with a float T, or Real with an integer T
func NewPackedDecoder[T Number](kind format.ArrayType) (PackedDecoder[T], error) {
	if !kind.Valid() {
		return PackedDecoder[T]{}, fmt.Errorf("%w: %s", errs.ErrUnknownElementType, kind)
	}

	if kind.IsInteger() == isFloat[T]() {
		return PackedDecoder[T]{}, fmt.Errorf("%w: cannot decode %s elements into %s",
			errs.ErrTagMismatch, kind, reflect.TypeFor[T]())
	}

	var zero T
	engine := endian.WireEngine()

	return PackedDecoder[T]{
		engine: engine,
		kind:   kind,
		direct: kind.Width() == int(unsafe.Sizeof(zero)) && endian.CompareNativeEndian(engine),
	}, nil
}

// Kind returns the wire element kind.
func (d PackedDecoder[T]) Kind() format.ArrayType {
	return d.kind
}

// Width returns the wire size of one element in bytes.
func (d PackedDecoder[T]) Width() int {
	return d.kind.Width()
}

// Direct reports whether the wire payload has the memory layout of []T on this host.
func (d PackedDecoder[T]) Direct() bool {
	return d.direct
}

// Bytes returns the memory of dst as a byte slice, for filling it in place
// when Direct is true. The result aliases dst.
func (d PackedDecoder[T]) Bytes(dst []T) []byte {
	if len(dst) == 0 {
		return nil
	}

	var zero T

	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(dst))), len(dst)*int(unsafe.Sizeof(zero)))
}

// Decode converts len(dst) elements from src into dst.
//
// src must hold at least len(dst)*Width() bytes. On a value that does not fit
// T it stops and returns the index of that element and false.
func (d PackedDecoder[T]) Decode(dst []T, src []byte) (int, bool) {
	switch d.kind {
	case format.ArrayInt8:
		for i := range dst {
			v := int64(int8(src[i]))
			if dst[i] = T(v); int64(dst[i]) != v {
				return i, false
			}
		}
	case format.ArrayInt16:
		for i := range dst {
			v := int64(int16(d.engine.Uint16(src[2*i:]))) //nolint:gosec
			if dst[i] = T(v); int64(dst[i]) != v {
				return i, false
			}
		}
	case format.ArrayInt32:
		for i := range dst {
			v := int64(int32(d.engine.Uint32(src[4*i:]))) //nolint:gosec
			if dst[i] = T(v); int64(dst[i]) != v {
				return i, false
			}
		}
	case format.ArrayReal:
		for i := range dst {
			dst[i] = T(math.Float64frombits(d.engine.Uint64(src[8*i:])))
		}
	}

	return 0, true
}

func isFloat[T Number]() bool {
	return reflect.TypeFor[T]().Kind() == reflect.Float64
}
