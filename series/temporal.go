package series

import (
	"iter"
	"time"

	"github.com/arloliu/wxf/stream"
)

// TemporalDataView is a collection of regular time series sharing one interval.
// Row i of Values is path i.
type TemporalDataView[T stream.Element] struct {
	IntervalSeconds float64
	Values          stream.Array[T]
}

// NewTemporalDataView wraps a rank-2 array. Returns an error for any other rank.
func NewTemporalDataView[T stream.Element](intervalSeconds float64, values stream.Array[T]) (TemporalDataView[T], error) {
	if values.Rank() != 2 {
		return TemporalDataView[T]{}, rankError(values.Rank())
	}

	return TemporalDataView[T]{IntervalSeconds: intervalSeconds, Values: values}, nil
}

// PathCount returns the number of paths.
func (td TemporalDataView[T]) PathCount() int {
	if td.Values.Rank() != 2 {
		return 0
	}

	return td.Values.Dim(0)
}

// PathLength returns the number of samples in each path.
func (td TemporalDataView[T]) PathLength() int {
	if td.Values.Rank() != 2 {
		return 0
	}

	return td.Values.Dim(1)
}

// DurationSeconds returns the duration of each path.
func (td TemporalDataView[T]) DurationSeconds() float64 {
	return float64(td.PathLength()) * td.IntervalSeconds
}

// Duration returns DurationSeconds as a time.Duration.
func (td TemporalDataView[T]) Duration() time.Duration {
	return secondsToDuration(td.DurationSeconds())
}

// Path returns path i as a TimeSeriesView. It does not copy; it panics if i is out of range.
func (td TemporalDataView[T]) Path(i int) TimeSeriesView[T] {
	return TimeSeriesView[T]{IntervalSeconds: td.IntervalSeconds, Values: td.Values.Sub(i)}
}

// Paths returns a sequence of (index, path) pairs.
func (td TemporalDataView[T]) Paths() iter.Seq2[int, TimeSeriesView[T]] {
	return func(yield func(int, TimeSeriesView[T]) bool) {
		for i := range td.PathCount() {
			if !yield(i, td.Path(i)) {
				return
			}
		}
	}
}
