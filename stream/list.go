package stream

import (
	"github.com/arloliu/wxf/format"
)

// listPrealloc caps the capacity reserved from a declared list arity.
const listPrealloc = 1024

// ReadList decodes a List[...] container by calling elem once per element.
//
// This is the recursive entry point of the decoder: elem may itself be ReadList,
// ReadVector or a caller-defined record decoder.
//
//	rows, err := stream.ReadList(r, stream.ReadVector[int32])
func ReadList[T any](r *Reader, elem DecodeFunc[T]) ([]T, error) {
	if err := r.check(); err != nil {
		return nil, err
	}

	if err := r.expectTag(format.TagFunction); err != nil {
		return nil, r.poison(err)
	}

	out, err := readListBody(r, elem)
	if err != nil {
		return nil, r.poison(err)
	}

	return out, nil
}

// ReadListHeader consumes the Function tag, arity and "List" head of a container
// and returns the arity. The caller then decodes exactly that many values.
func (r *Reader) ReadListHeader() (int, error) {
	if err := r.check(); err != nil {
		return 0, err
	}

	if err := r.expectTag(format.TagFunction); err != nil {
		return 0, r.poison(err)
	}

	n, err := r.readCount("ReadListHeader")
	if err != nil {
		return 0, r.poison(err)
	}

	if err := r.expectSymbol(format.ListSymbol); err != nil {
		return 0, r.poison(err)
	}

	return n, nil
}

// readListBody decodes the arity, head symbol and elements after a Function tag.
func readListBody[T any](r *Reader, elem DecodeFunc[T]) ([]T, error) {
	n, err := r.readCount("ReadList")
	if err != nil {
		return nil, err
	}

	if err := r.expectSymbol(format.ListSymbol); err != nil {
		return nil, err
	}

	// the arity is untrusted until the elements are actually there
	out := make([]T, 0, min(n, listPrealloc))
	for range n {
		v, err := elem(r)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}

	return out, nil
}
