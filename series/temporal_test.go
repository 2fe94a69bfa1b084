package series

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/wxf/errs"
	"github.com/arloliu/wxf/internal/wxftest"
	"github.com/arloliu/wxf/stream"
)

func TestTemporalDataView(t *testing.T) {
	arr, err := stream.NewArray([]int{2, 3}, []float64{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)

	td, err := NewTemporalDataView(0.5, arr)
	require.NoError(t, err)

	require.Equal(t, 2, td.PathCount())
	require.Equal(t, 3, td.PathLength())
	require.InDelta(t, 1.5, td.DurationSeconds(), 1e-12)

	p := td.Path(1)
	require.Equal(t, []float64{4, 5, 6}, p.Values)
	require.InDelta(t, 0.5, p.IntervalSeconds, 0)

	// paths are views into the array
	p.Values[0] = -4
	require.InDelta(t, -4, td.Values.At(1, 0), 0)

	var rows [][]float64
	for _, path := range td.Paths() {
		rows = append(rows, path.Values)
	}
	require.Equal(t, [][]float64{{1, 2, 3}, {-4, 5, 6}}, rows)

	require.Panics(t, func() { td.Path(2) })
}

func TestNewTemporalDataView_Rank(t *testing.T) {
	arr, err := stream.NewArray([]int{3}, []int32{1, 2, 3})
	require.NoError(t, err)

	_, err = NewTemporalDataView(1, arr)
	require.ErrorIs(t, err, errs.ErrRankMismatch)

	var zero TemporalDataView[int32]
	require.Equal(t, 0, zero.PathCount())
	require.Equal(t, 0, zero.PathLength())
}

func TestReadTimeSeries(t *testing.T) {
	data := wxftest.Stream(2).Real(0.1).PackedInt16([]int16{-1, 0, 1}).Bytes()
	r, err := stream.NewReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer r.Close()

	ts, err := ReadTimeSeries[int32](r)
	require.NoError(t, err)
	require.InDelta(t, 0.1, ts.IntervalSeconds, 0)
	require.Equal(t, []int32{-1, 0, 1}, ts.Values)
}

func TestReadTemporalData(t *testing.T) {
	data := wxftest.Stream(2).Real(2).PackedReal([]float64{1, 2, 3, 4}, 2, 2).Bytes()
	r, err := stream.NewReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer r.Close()

	td, err := ReadTemporalData[float64](r)
	require.NoError(t, err)
	require.Equal(t, 2, td.PathCount())
	require.Equal(t, []float64{3, 4}, td.Path(1).Values)
	require.InDelta(t, 4, td.DurationSeconds(), 0)
}

func TestReadTemporalData_Errors(t *testing.T) {
	t.Run("interval not real", func(t *testing.T) {
		data := wxftest.Stream(2).Int32(2).PackedReal([]float64{1}, 1, 1).Bytes()
		r, err := stream.NewReader(bytes.NewReader(data))
		require.NoError(t, err)
		defer r.Close()

		_, err = ReadTemporalData[float64](r)
		require.ErrorIs(t, err, errs.ErrTagMismatch)
	})

	t.Run("rank 1", func(t *testing.T) {
		data := wxftest.Stream(2).Real(1).PackedReal([]float64{1, 2}).Bytes()
		r, err := stream.NewReader(bytes.NewReader(data))
		require.NoError(t, err)
		defer r.Close()

		_, err = ReadTemporalData[float64](r)
		require.ErrorIs(t, err, errs.ErrRankMismatch)
	})
}
