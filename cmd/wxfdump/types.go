package main

import (
	"fmt"
	"strings"

	"github.com/arloliu/wxf/registry"
	"github.com/arloliu/wxf/series"
	"github.com/arloliu/wxf/stream"
)

// anyOf erases the result type of a decoder so that every schema type can share one registry.
func anyOf[T any](fn stream.DecodeFunc[T]) stream.DecodeFunc[any] {
	return func(r *stream.Reader) (any, error) {
		v, err := fn(r)
		if err != nil {
			return nil, err
		}

		return v, nil
	}
}

func readIntMatrix(r *stream.Reader) (stream.Array[int64], error) {
	return stream.ReadArrayRank[int64](r, 2)
}

func readRealMatrix(r *stream.Reader) (stream.Array[float64], error) {
	return stream.ReadArrayRank[float64](r, 2)
}

// newTypeRegistry returns the decoders a schema can name, keyed by type name.
//
// "tagged" reads a String naming one of these types, then a value of that type.
func newTypeRegistry() *registry.Registry[any] {
	reg := registry.New[any]()

	reg.MustRegister("int", anyOf(stream.ReadInt[int64]))
	reg.MustRegister("real", anyOf((*stream.Reader).ReadReal))
	reg.MustRegister("string", anyOf((*stream.Reader).ReadString))
	reg.MustRegister("symbol", anyOf((*stream.Reader).ReadSymbol))
	reg.MustRegister("int-vector", anyOf(stream.ReadVector[int64]))
	reg.MustRegister("real-vector", anyOf(stream.ReadVector[float64]))
	reg.MustRegister("int-matrix", anyOf(readIntMatrix))
	reg.MustRegister("real-matrix", anyOf(readRealMatrix))
	reg.MustRegister("int-array", anyOf(stream.ReadArray[int64]))
	reg.MustRegister("real-array", anyOf(stream.ReadArray[float64]))
	reg.MustRegister("timeseries", anyOf(series.ReadTimeSeries[float64]))
	reg.MustRegister("temporal", anyOf(series.ReadTemporalData[float64]))
	reg.MustRegister("tagged", reg.DecodeFunc())
	reg.MustRegister("tagged-list", func(r *stream.Reader) (any, error) {
		v, err := stream.ReadList(r, reg.DecodeFunc())
		if err != nil {
			return nil, err
		}

		return v, nil
	})

	return reg
}

// formatValue renders a decoded record on one line.
func formatValue(v any) string {
	switch val := v.(type) {
	case stream.Array[int64]:
		return fmt.Sprintf("dims=%v data=%v", val.Dims(), val.Data())
	case stream.Array[float64]:
		return fmt.Sprintf("dims=%v data=%v", val.Dims(), val.Data())
	case series.TimeSeriesView[float64]:
		return fmt.Sprintf("interval=%gs duration=%gs values=%v", val.IntervalSeconds, val.DurationSeconds(), val.Values)
	case series.TemporalDataView[float64]:
		return fmt.Sprintf("interval=%gs paths=%d length=%d data=%v",
			val.IntervalSeconds, val.PathCount(), val.PathLength(), val.Values.Data())
	case string:
		return fmt.Sprintf("%q", val)
	case []any:
		parts := make([]string, len(val))
		for i, e := range val {
			parts[i] = formatValue(e)
		}

		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return fmt.Sprintf("%v", val)
	}
}
