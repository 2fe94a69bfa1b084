package stream

import (
	"fmt"
	"math"
	"math/bits"
	"reflect"
	"slices"

	"github.com/arloliu/wxf/encoding"
	"github.com/arloliu/wxf/errs"
	"github.com/arloliu/wxf/format"
	"github.com/arloliu/wxf/internal/pool"
)

// MaxRank is the largest packed array rank the decoder accepts. Any array of a
// higher rank has at least one unit dimension per extra axis, so no real stream
// needs more.
const MaxRank = bits.UintSize

// ReadVector decodes a rank-1 packed array into a new []T.
//
// Integer element kinds fill integer T with sign extension and a range check;
// Real elements fill float T only. Any other pairing fails with ErrTagMismatch,
// and a rank other than 1 fails with ErrRankMismatch before any dimension is read.
//
// When the stream holds a List[...] container instead of a packed array, the
// elements are decoded one scalar at a time, provided the reader's ListFallback
// predicate accepts T (see WithListFallback).
func ReadVector[T Element](r *Reader) ([]T, error) {
	if err := r.check(); err != nil {
		return nil, err
	}

	vec, err := readVector[T](r)
	if err != nil {
		return nil, r.poison(err)
	}

	return vec, nil
}

// ReadArray decodes a packed array of any rank into T. The rank and dimensions
// are taken from the stream.
func ReadArray[T Element](r *Reader) (Array[T], error) {
	return readArray[T](r, -1, "ReadArray")
}

// ReadArrayRank decodes a packed array whose rank must equal rank.
func ReadArrayRank[T Element](r *Reader, rank int) (Array[T], error) {
	if rank < 1 || rank > MaxRank {
		return Array[T]{}, errs.At("ReadArrayRank", r.Offset(), errs.ErrInvalidArgument,
			fmt.Sprintf("rank %d outside 1..%d", rank, MaxRank))
	}

	return readArray[T](r, rank, "ReadArrayRank")
}

func readArray[T Element](r *Reader, rank int, op string) (Array[T], error) {
	if err := r.check(); err != nil {
		return Array[T]{}, err
	}

	if err := r.expectTag(format.TagPackedArray); err != nil {
		return Array[T]{}, r.poison(err)
	}

	arr, err := readPackedBody[T](r, rank, op)
	if err != nil {
		return Array[T]{}, r.poison(err)
	}

	return arr, nil
}

func readVector[T Element](r *Reader) ([]T, error) {
	off := r.cur.offset

	tag, err := r.readTag()
	if err != nil {
		return nil, err
	}

	switch tag { //nolint:exhaustive
	case format.TagPackedArray:
		arr, err := readPackedBody[T](r, 1, "ReadVector")
		if err != nil {
			return nil, err
		}

		return arr.data, nil
	case format.TagFunction:
		if !r.cfg.listFallback(reflect.TypeFor[T]()) {
			return nil, errs.At("ReadVector", off, errs.ErrTagMismatch,
				fmt.Sprintf("expected PackedArray, got Function (list fallback disabled for %s)", typeName[T]()))
		}

		return readListBody(r, readScalar[T])
	default:
		return nil, errs.At("ReadVector", off, errs.ErrTagMismatch, "expected PackedArray, got "+tag.String())
	}
}

// readPackedBody decodes everything after the PackedArray tag. A negative rank
// accepts whatever rank the stream declares.
func readPackedBody[T Element](r *Reader, rank int, op string) (Array[T], error) {
	atOff := r.cur.offset
	at, err := r.readArrayType()
	if err != nil {
		return Array[T]{}, err
	}

	dec, err := encoding.NewPackedDecoder[T](at)
	if err != nil {
		return Array[T]{}, errs.At(op, atOff, err, "")
	}

	rankOff := r.cur.offset
	n, err := r.readCount(op)
	if err != nil {
		return Array[T]{}, err
	}

	if rank >= 0 && n != rank {
		return Array[T]{}, errs.At(op, rankOff, errs.ErrRankMismatch, fmt.Sprintf("expected rank %d, got %d", rank, n))
	}
	if n == 0 {
		return Array[T]{}, errs.At(op, rankOff, errs.ErrRankMismatch, "packed array with rank 0")
	}
	if n > MaxRank {
		return Array[T]{}, errs.At(op, rankOff, errs.ErrLimitExceeded, fmt.Sprintf("rank %d > %d", n, MaxRank))
	}

	dims := make([]int, n)
	total := 1
	for i := range dims {
		dimOff := r.cur.offset
		d, err := r.readCount(op)
		if err != nil {
			return Array[T]{}, err
		}

		if d != 0 && total > math.MaxInt/d {
			return Array[T]{}, errs.At(op, dimOff, errs.ErrOverflow, fmt.Sprintf("dimensions %v overflow int", dims[:i+1]))
		}
		dims[i] = d
		total *= d
	}

	if limit := r.cfg.maxElements; limit > 0 && total > limit {
		return Array[T]{}, errs.At(op, rankOff, errs.ErrLimitExceeded, fmt.Sprintf("%d elements > %d", total, limit))
	}

	data, err := readData(r, total, dec, op)
	if err != nil {
		return Array[T]{}, err
	}

	return Array[T]{dims: dims, data: data}, nil
}

// readData reads total elements. The result grows with the elements actually
// read, doubling from growChunk bytes, so the declared dimensions alone never
// size the allocation.
func readData[T Element](r *Reader, total int, dec encoding.PackedDecoder[T], op string) ([]T, error) {
	off := r.cur.offset
	first := max(growChunk/dec.Width(), 1)

	data := make([]T, 0, min(total, first))
	for len(data) < total {
		start := len(data)
		step := min(total-start, max(start, first))
		data = slices.Grow(data, step)[:start+step]
		if err := readElements(r, data[start:], start, off, dec, op); err != nil {
			return nil, err
		}
	}

	return data, nil
}

// readElements fills dst with len(dst) wire elements. base is the index of
// dst[0] in the array and off the offset of the array's first element, both
// used for error reporting.
//
// A direct decoder lets the bytes land in dst as they are. Otherwise they are
// staged through a pooled scratch buffer, one chunk at a time, and widened (or
// range-checked) element by element.
func readElements[T Element](r *Reader, dst []T, base int, off int64, dec encoding.PackedDecoder[T], op string) error {
	if len(dst) == 0 {
		return nil
	}

	if dec.Direct() {
		if err := r.cur.readFull(dec.Bytes(dst)); err != nil {
			return r.ioError(op, off, err)
		}

		return nil
	}

	scratch := pool.GetScratch()
	defer pool.PutScratch(scratch)

	width := dec.Width()
	chunk := max(pool.ScratchBufferDefaultSize/width, 1)
	for start := 0; start < len(dst); start += chunk {
		end := min(start+chunk, len(dst))

		buf := scratch.Resize((end - start) * width)
		if err := r.cur.readFull(buf); err != nil {
			return r.ioError(op, off, err)
		}

		if i, ok := dec.Decode(dst[start:end], buf); !ok {
			return errs.At(op, off, errs.ErrValueOutOfRange,
				fmt.Sprintf("element %d does not fit %s", base+start+i, typeName[T]()))
		}
	}

	return nil
}
