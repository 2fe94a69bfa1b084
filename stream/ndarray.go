package stream

import (
	"fmt"
	"slices"
)

// Array is a dense row-major array produced by ReadArray.
//
// The Array owns its storage; nothing in it is shared with the Reader.
type Array[T Element] struct {
	dims []int
	data []T
}

// NewArray builds an Array from dimensions and row-major data.
//
// Returns an error if a dimension is negative or len(data) differs from the
// product of dims. Both slices are copied.
func NewArray[T Element](dims []int, data []T) (Array[T], error) {
	if len(dims) == 0 {
		return Array[T]{}, fmt.Errorf("array rank must be at least 1")
	}

	total := 1
	for _, d := range dims {
		if d < 0 {
			return Array[T]{}, fmt.Errorf("negative dimension in %v", dims)
		}
		total *= d
	}

	if total != len(data) {
		return Array[T]{}, fmt.Errorf("dimensions %v need %d elements, got %d", dims, total, len(data))
	}

	return Array[T]{dims: slices.Clone(dims), data: slices.Clone(data)}, nil
}

// Rank returns the number of dimensions.
func (a Array[T]) Rank() int {
	return len(a.dims)
}

// Dims returns a copy of the dimensions.
func (a Array[T]) Dims() []int {
	return slices.Clone(a.dims)
}

// Dim returns the extent of axis i.
func (a Array[T]) Dim(i int) int {
	return a.dims[i]
}

// Len returns the total number of elements.
func (a Array[T]) Len() int {
	return len(a.data)
}

// Data returns the flat row-major elements. The slice is the Array's storage.
func (a Array[T]) Data() []T {
	return a.data
}

// At returns the element at the given indices, one per axis.
// It panics if the number of indices differs from the rank or an index is out of range.
func (a Array[T]) At(indices ...int) T {
	return a.data[a.offset(indices)]
}

// Sub returns the row-major block selected by the leading index i, for example
// a row of a matrix. The result shares storage with a.
func (a Array[T]) Sub(i int) []T {
	if len(a.dims) == 0 || i < 0 || i >= a.dims[0] {
		panic(fmt.Sprintf("stream: index %d out of range", i))
	}

	stride := 1
	for _, d := range a.dims[1:] {
		stride *= d
	}

	return a.data[i*stride : (i+1)*stride : (i+1)*stride]
}

func (a Array[T]) offset(indices []int) int {
	if len(indices) != len(a.dims) {
		panic(fmt.Sprintf("stream: %d indices for rank %d array", len(indices), len(a.dims)))
	}

	off := 0
	for axis, idx := range indices {
		if idx < 0 || idx >= a.dims[axis] {
			panic(fmt.Sprintf("stream: index %d out of range for axis %d of extent %d", idx, axis, a.dims[axis]))
		}
		off = off*a.dims[axis] + idx
	}

	return off
}
