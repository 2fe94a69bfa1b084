package stream

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewArray(t *testing.T) {
	data := []int32{1, 2, 3, 4, 5, 6}

	a, err := NewArray([]int{2, 3}, data)
	require.NoError(t, err)
	require.Equal(t, 2, a.Rank())
	require.Equal(t, 3, a.Dim(1))
	require.Equal(t, 6, a.Len())
	require.Equal(t, int32(6), a.At(1, 2))

	// inputs are copied
	data[0] = 100
	require.Equal(t, int32(1), a.At(0, 0))

	dims := a.Dims()
	dims[0] = 9
	require.Equal(t, []int{2, 3}, a.Dims())
}

func TestNewArray_Invalid(t *testing.T) {
	_, err := NewArray[float64](nil, nil)
	require.Error(t, err)

	_, err = NewArray([]int{2, -1}, []float64{})
	require.Error(t, err)

	_, err = NewArray([]int{2, 2}, []float64{1, 2, 3})
	require.Error(t, err)
}

func TestArray_Sub(t *testing.T) {
	a, err := NewArray([]int{3, 2}, []int{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)

	require.Equal(t, []int{1, 2}, a.Sub(0))
	require.Equal(t, []int{5, 6}, a.Sub(2))

	row := a.Sub(1)
	row[0] = 30
	require.Equal(t, 30, a.At(1, 0))

	// capacity is clipped so appends never clobber the next row
	_ = append(row, 99)
	require.Equal(t, 5, a.At(2, 0))
}

func TestArray_Panics(t *testing.T) {
	a, err := NewArray([]int{2, 2}, []int8{1, 2, 3, 4})
	require.NoError(t, err)

	require.Panics(t, func() { a.At(0) })
	require.Panics(t, func() { a.At(2, 0) })
	require.Panics(t, func() { a.At(0, -1) })
	require.Panics(t, func() { a.Sub(2) })
}
