package stream

import (
	"fmt"
	"math"
	"reflect"

	"github.com/arloliu/wxf/endian"
	"github.com/arloliu/wxf/errs"
	"github.com/arloliu/wxf/format"
)

// Integer is the set of destination types for integer extraction.
type Integer interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~int
}

// Float is the set of destination types for Real extraction.
type Float interface {
	~float64
}

// Element is the set of element types ReadVector and ReadArray can produce.
type Element interface {
	Integer | Float
}

// DecodeFunc decodes one logical value from a Reader.
type DecodeFunc[T any] func(r *Reader) (T, error)

// ReadInt decodes an Int8, Int16 or Int32 scalar into T.
//
// Narrow wire values are sign-extended. A wire value outside T's range fails with
// ErrValueOutOfRange; it is never wrapped. Real and non-numeric tags fail with
// ErrTagMismatch.
func ReadInt[T Integer](r *Reader) (T, error) {
	if err := r.check(); err != nil {
		return 0, err
	}

	v, err := readInt[T](r)
	if err != nil {
		return 0, r.poison(err)
	}

	return v, nil
}

// ReadInt decodes an integer scalar into a native int.
func (r *Reader) ReadInt() (int, error) {
	return ReadInt[int](r)
}

// ReadReal decodes a Real scalar. Integer tags are rejected with ErrTagMismatch.
func (r *Reader) ReadReal() (float64, error) {
	if err := r.check(); err != nil {
		return 0, err
	}

	v, err := r.readReal()
	if err != nil {
		return 0, r.poison(err)
	}

	return v, nil
}

// ReadScalar decodes one scalar into T: ReadReal for float types, ReadInt otherwise.
func ReadScalar[T Element](r *Reader) (T, error) {
	if err := r.check(); err != nil {
		return 0, err
	}

	v, err := readScalar[T](r)
	if err != nil {
		return 0, r.poison(err)
	}

	return v, nil
}

func readScalar[T Element](r *Reader) (T, error) {
	if isFloat[T]() {
		v, err := r.readReal()
		return T(v), err
	}

	off := r.cur.offset
	v, err := r.readWireInt()
	if err != nil {
		return 0, err
	}

	t := T(v)
	if int64(t) != v {
		return 0, errs.At("ReadInt", off, errs.ErrValueOutOfRange, fmt.Sprintf("%d does not fit %s", v, typeName[T]()))
	}

	return t, nil
}

func readInt[T Integer](r *Reader) (T, error) {
	off := r.cur.offset

	v, err := r.readWireInt()
	if err != nil {
		return 0, err
	}

	t, ok := narrow[T](v)
	if !ok {
		return 0, errs.At("ReadInt", off, errs.ErrValueOutOfRange, fmt.Sprintf("%d does not fit %s", v, typeName[T]()))
	}

	return t, nil
}

// readWireInt reads an integer tag and its sign-extended payload.
func (r *Reader) readWireInt() (int64, error) {
	off := r.cur.offset

	tag, err := r.readTag()
	if err != nil {
		return 0, err
	}

	var buf [4]byte
	engine := endian.WireEngine()

	switch tag { //nolint:exhaustive
	case format.TagInt8:
		if err := r.cur.readFull(buf[:1]); err != nil {
			return 0, r.ioError("ReadInt", off, err)
		}

		return int64(int8(buf[0])), nil
	case format.TagInt16:
		if err := r.cur.readFull(buf[:2]); err != nil {
			return 0, r.ioError("ReadInt", off, err)
		}

		return int64(int16(engine.Uint16(buf[:2]))), nil //nolint:gosec
	case format.TagInt32:
		if err := r.cur.readFull(buf[:4]); err != nil {
			return 0, r.ioError("ReadInt", off, err)
		}

		return int64(int32(engine.Uint32(buf[:4]))), nil //nolint:gosec
	default:
		return 0, errs.At("ReadInt", off, errs.ErrTagMismatch, "expected Int8, Int16 or Int32, got "+tag.String())
	}
}

func (r *Reader) readReal() (float64, error) {
	if err := r.expectTag(format.TagReal); err != nil {
		return 0, err
	}

	off := r.cur.offset

	var buf [8]byte
	if err := r.cur.readFull(buf[:]); err != nil {
		return 0, r.ioError("ReadReal", off, err)
	}

	return math.Float64frombits(endian.WireEngine().Uint64(buf[:])), nil
}

// narrow converts v to T and reports whether the value survived unchanged.
func narrow[T Integer](v int64) (T, bool) {
	t := T(v)
	return t, int64(t) == v
}

func isFloat[T Element]() bool {
	return reflect.TypeFor[T]().Kind() == reflect.Float64
}

func typeName[T any]() string {
	return reflect.TypeFor[T]().String()
}
