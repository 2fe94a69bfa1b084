// Package series provides views over regularly sampled paths decoded from WXF.
//
// A regular time series travels as two consecutive records: a Real holding the
// sampling interval in seconds, followed by a packed array of samples. A rank-1
// array is a single path (TimeSeriesView); a rank-2 array holds one path per row
// (TemporalDataView).
//
//	ts, err := series.ReadTimeSeries[float64](r)
//	if err != nil {
//	    return err
//	}
//	for sec, v := range ts.All() {
//	    fmt.Printf("t=%.2fs v=%f\n", sec, v)
//	}
//
// Views never copy: Window and Path slice the decoded storage.
package series

import (
	"iter"
	"math"
	"time"

	"github.com/arloliu/wxf/stream"
)

// TimeSeriesView is a regular time series: Values[i] was sampled at i*IntervalSeconds.
type TimeSeriesView[T stream.Element] struct {
	// IntervalSeconds is the time between two consecutive values.
	IntervalSeconds float64
	// Values holds the samples in time order.
	Values []T
}

// PathLength returns the number of samples.
func (ts TimeSeriesView[T]) PathLength() int {
	return len(ts.Values)
}

// DurationSeconds returns PathLength() * IntervalSeconds.
func (ts TimeSeriesView[T]) DurationSeconds() float64 {
	return float64(ts.PathLength()) * ts.IntervalSeconds
}

// Duration returns DurationSeconds as a time.Duration, rounded to the nearest nanosecond.
func (ts TimeSeriesView[T]) Duration() time.Duration {
	return secondsToDuration(ts.DurationSeconds())
}

// ValueAt returns the sample at index i.
//
// Returns (value, true) if successful, or (0, false) if i is out of range.
func (ts TimeSeriesView[T]) ValueAt(i int) (T, bool) {
	if i < 0 || i >= len(ts.Values) {
		return 0, false
	}

	return ts.Values[i], true
}

// TimeAt returns the sampling time of index i in seconds.
func (ts TimeSeriesView[T]) TimeAt(i int) float64 {
	return float64(i) * ts.IntervalSeconds
}

// Window returns the samples whose time lies in [startSeconds, startSeconds+durationSeconds).
//
// The result keeps the interval and shares storage with ts. A non-positive
// interval or duration yields an empty window.
//
// Example:
//
//	ts := TimeSeriesView[int]{IntervalSeconds: 1, Values: []int{0, 1, 2, 3}}
//	ts.Window(0.5, 1.75).Values // [1 2]
//	ts.Window(0.5, 1.5).Values  // [1]
func (ts TimeSeriesView[T]) Window(startSeconds, durationSeconds float64) TimeSeriesView[T] {
	empty := TimeSeriesView[T]{IntervalSeconds: ts.IntervalSeconds, Values: ts.Values[:0:0]}
	if !(ts.IntervalSeconds > 0) || !(durationSeconds > 0) {
		return empty
	}

	first := ts.indexAtOrAfter(startSeconds)
	end := ts.indexAtOrAfter(startSeconds + durationSeconds)
	if first >= end {
		return empty
	}

	return TimeSeriesView[T]{IntervalSeconds: ts.IntervalSeconds, Values: ts.Values[first:end:end]}
}

// All returns a sequence of (time in seconds, value) pairs.
//
// Example:
//
//	for sec, v := range ts.All() {
//	    fmt.Printf("t=%.2fs v=%v\n", sec, v)
//	}
func (ts TimeSeriesView[T]) All() iter.Seq2[float64, T] {
	return func(yield func(float64, T) bool) {
		for i, v := range ts.Values {
			if !yield(ts.TimeAt(i), v) {
				return
			}
		}
	}
}

// indexAtOrAfter returns the first index whose time is >= sec, clamped to [0, len].
func (ts TimeSeriesView[T]) indexAtOrAfter(sec float64) int {
	idx := math.Ceil(sec / ts.IntervalSeconds)

	switch {
	case math.IsNaN(idx), idx <= 0:
		return 0
	case idx >= float64(len(ts.Values)):
		return len(ts.Values)
	default:
		return int(idx)
	}
}

func secondsToDuration(sec float64) time.Duration {
	return time.Duration(math.Round(sec * float64(time.Second)))
}
