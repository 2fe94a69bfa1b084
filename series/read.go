package series

import (
	"fmt"

	"github.com/arloliu/wxf/errs"
	"github.com/arloliu/wxf/stream"
)

// ReadTimeSeries decodes a Real interval followed by a rank-1 packed array.
func ReadTimeSeries[T stream.Element](r *stream.Reader) (TimeSeriesView[T], error) {
	interval, err := r.ReadReal()
	if err != nil {
		return TimeSeriesView[T]{}, err
	}

	values, err := stream.ReadVector[T](r)
	if err != nil {
		return TimeSeriesView[T]{}, err
	}

	return TimeSeriesView[T]{IntervalSeconds: interval, Values: values}, nil
}

// ReadTemporalData decodes a Real interval followed by a rank-2 packed array,
// one path per row.
func ReadTemporalData[T stream.Element](r *stream.Reader) (TemporalDataView[T], error) {
	interval, err := r.ReadReal()
	if err != nil {
		return TemporalDataView[T]{}, err
	}

	values, err := stream.ReadArrayRank[T](r, 2)
	if err != nil {
		return TemporalDataView[T]{}, err
	}

	return TemporalDataView[T]{IntervalSeconds: interval, Values: values}, nil
}

func rankError(rank int) error {
	return fmt.Errorf("%w: temporal data needs rank 2, got %d", errs.ErrRankMismatch, rank)
}
