package stream

import (
	"fmt"

	"github.com/arloliu/wxf/errs"
	"github.com/arloliu/wxf/format"
)

// ExpectSymbol consumes a Symbol and fails with ErrSymbolMismatch unless its text is name.
//
// A length mismatch fails before the symbol text is read.
func (r *Reader) ExpectSymbol(name string) error {
	if err := r.check(); err != nil {
		return err
	}

	if err := r.expectSymbol(name); err != nil {
		return r.poison(err)
	}

	return nil
}

// ReadSymbol consumes a Symbol and returns its name.
func (r *Reader) ReadSymbol() (string, error) {
	if err := r.check(); err != nil {
		return "", err
	}

	s, err := r.readText(format.TagSymbol, "ReadSymbol")
	if err != nil {
		return "", r.poison(err)
	}

	return s, nil
}

// ReadString consumes a String and returns its UTF-8 text.
func (r *Reader) ReadString() (string, error) {
	if err := r.check(); err != nil {
		return "", err
	}

	s, err := r.readText(format.TagString, "ReadString")
	if err != nil {
		return "", r.poison(err)
	}

	return s, nil
}

func (r *Reader) expectSymbol(name string) error {
	if err := r.expectTag(format.TagSymbol); err != nil {
		return err
	}

	off := r.cur.offset
	n, err := r.cur.readLength()
	if err != nil {
		return r.ioError("ExpectSymbol", off, err)
	}

	if n != len(name) {
		return errs.At("ExpectSymbol", off, errs.ErrSymbolMismatch,
			fmt.Sprintf("expected %q, got length %d", name, n))
	}

	buf := make([]byte, n)
	if err := r.cur.readFull(buf); err != nil {
		return r.ioError("ExpectSymbol", off, err)
	}

	if string(buf) != name {
		return errs.At("ExpectSymbol", off, errs.ErrSymbolMismatch,
			fmt.Sprintf("expected %q, got %q", name, buf))
	}

	return nil
}

func (r *Reader) readText(tag format.Tag, op string) (string, error) {
	if err := r.expectTag(tag); err != nil {
		return "", err
	}

	off := r.cur.offset
	n, err := r.readCount(op)
	if err != nil {
		return "", err
	}

	buf, err := r.cur.readBytes(n)
	if err != nil {
		return "", r.ioError(op, off, err)
	}

	return string(buf), nil
}
