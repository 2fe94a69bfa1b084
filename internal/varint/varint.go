// Package varint implements the 7-bit continuation encoding WXF uses for every
// length, arity, rank and dimension field.
package varint

import (
	"errors"
	"io"
	"math/bits"

	"github.com/arloliu/wxf/errs"
)

// MaxBytes is the longest varint that still fits a non-negative int.
const MaxBytes = bits.UintSize / 7

// ReadLength decodes one varint from r.
//
// Byte i contributes its low 7 bits at bit offset 7*i; a clear high bit ends the
// value. Returns errs.ErrOverflow if MaxBytes bytes are read without reaching the
// end, and errs.ErrTruncatedStream if r runs out first.
//
// Returns:
//   - int: Decoded non-negative value
//   - int: Number of bytes consumed
//   - error: ErrOverflow, ErrTruncatedStream, or an I/O error from r
func ReadLength(r io.ByteReader) (int, int, error) {
	var v uint

	for i := range MaxBytes {
		b, err := r.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return 0, i, errs.ErrTruncatedStream
			}

			return 0, i, err
		}

		v |= uint(b&0x7F) << (7 * i)
		if b&0x80 == 0 {
			return int(v), i + 1, nil //nolint:gosec
		}
	}

	return 0, MaxBytes, errs.ErrOverflow
}

// Decode decodes one varint from the start of data.
//
// Returns:
//   - int: Decoded value
//   - int: Number of bytes consumed
//   - error: ErrOverflow or ErrTruncatedStream
func Decode(data []byte) (int, int, error) {
	var v uint

	for i := range MaxBytes {
		if i >= len(data) {
			return 0, i, errs.ErrTruncatedStream
		}

		b := data[i]
		v |= uint(b&0x7F) << (7 * i)
		if b&0x80 == 0 {
			return int(v), i + 1, nil //nolint:gosec
		}
	}

	return 0, MaxBytes, errs.ErrOverflow
}

// Append appends the varint encoding of n to dst. n must be non-negative.
func Append(dst []byte, n int) []byte {
	u := uint(n) //nolint:gosec
	for u >= 0x80 {
		dst = append(dst, byte(u)|0x80)
		u >>= 7
	}

	return append(dst, byte(u))
}

// Size returns the number of bytes needed to encode n.
func Size(n int) int {
	size := 1
	for u := uint(n) >> 7; u != 0; u >>= 7 { //nolint:gosec
		size++
	}

	return size
}
