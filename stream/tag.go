package stream

import (
	"fmt"

	"github.com/arloliu/wxf/errs"
	"github.com/arloliu/wxf/format"
)

// ReadTag consumes and returns the next wire tag.
//
// Returns ErrTagMismatch for a byte that is not a known tag.
func (r *Reader) ReadTag() (format.Tag, error) {
	if err := r.check(); err != nil {
		return 0, err
	}

	tag, err := r.readTag()
	if err != nil {
		return 0, r.poison(err)
	}

	return tag, nil
}

// PeekTag returns the next wire tag without consuming it.
//
// It lets a caller dispatch on the stream when its schema allows more than one
// shape at a position. A failed peek does not poison the session.
func (r *Reader) PeekTag() (format.Tag, error) {
	if err := r.check(); err != nil {
		return 0, err
	}

	b, err := r.cur.peek(1)
	if err != nil {
		return 0, r.ioError("PeekTag", r.cur.offset, err)
	}

	tag := format.Tag(b[0])
	if !tag.Valid() {
		return tag, errs.At("PeekTag", r.cur.offset, errs.ErrTagMismatch, "unknown tag "+tag.String())
	}

	return tag, nil
}

// ExpectTag consumes the next tag and fails with ErrTagMismatch unless it equals want.
func (r *Reader) ExpectTag(want format.Tag) error {
	if err := r.check(); err != nil {
		return err
	}

	if err := r.expectTag(want); err != nil {
		return r.poison(err)
	}

	return nil
}

// ReadArrayElementTag consumes the element kind byte that follows a PackedArray tag.
//
// Returns ErrUnknownElementType for kinds other than Int8, Int16, Int32 and Real.
func (r *Reader) ReadArrayElementTag() (format.ArrayType, error) {
	if err := r.check(); err != nil {
		return 0, err
	}

	at, err := r.readArrayType()
	if err != nil {
		return 0, r.poison(err)
	}

	return at, nil
}

// ExpectArrayElementTag consumes the element kind byte and fails unless it equals want.
func (r *Reader) ExpectArrayElementTag(want format.ArrayType) error {
	if err := r.check(); err != nil {
		return err
	}

	off := r.cur.offset
	at, err := r.readArrayType()
	if err != nil {
		return r.poison(err)
	}

	if at != want {
		return r.poison(errs.At("ExpectArrayElementTag", off, errs.ErrTagMismatch,
			fmt.Sprintf("expected %s, got %s", want, at)))
	}

	return nil
}

// ReadLength consumes one variable-length integer.
func (r *Reader) ReadLength() (int, error) {
	if err := r.check(); err != nil {
		return 0, err
	}

	off := r.cur.offset
	n, err := r.cur.readLength()
	if err != nil {
		return 0, r.poison(r.ioError("ReadLength", off, err))
	}

	return n, nil
}

func (r *Reader) readTag() (format.Tag, error) {
	off := r.cur.offset

	b, err := r.cur.ReadByte()
	if err != nil {
		return 0, r.ioError("ReadTag", off, err)
	}

	tag := format.Tag(b)
	if !tag.Valid() {
		return tag, errs.At("ReadTag", off, errs.ErrTagMismatch, "unknown tag "+tag.String())
	}

	return tag, nil
}

func (r *Reader) expectTag(want format.Tag) error {
	off := r.cur.offset

	tag, err := r.readTag()
	if err != nil {
		return err
	}

	if tag != want {
		return errs.At("ExpectTag", off, errs.ErrTagMismatch, fmt.Sprintf("expected %s, got %s", want, tag))
	}

	return nil
}

func (r *Reader) readArrayType() (format.ArrayType, error) {
	off := r.cur.offset

	b, err := r.cur.ReadByte()
	if err != nil {
		return 0, r.ioError("ReadArrayElementTag", off, err)
	}

	at := format.ArrayType(b)
	if !at.Valid() {
		return at, errs.At("ReadArrayElementTag", off, errs.ErrUnknownElementType, at.String())
	}

	return at, nil
}

// readCount reads a length field that sizes an allocation and enforces the element limit.
func (r *Reader) readCount(op string) (int, error) {
	off := r.cur.offset

	n, err := r.cur.readLength()
	if err != nil {
		return 0, r.ioError(op, off, err)
	}

	if limit := r.cfg.maxElements; limit > 0 && n > limit {
		return 0, errs.At(op, off, errs.ErrLimitExceeded, fmt.Sprintf("%d > %d", n, limit))
	}

	return n, nil
}
