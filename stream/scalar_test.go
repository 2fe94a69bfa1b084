package stream

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/wxf/errs"
	"github.com/arloliu/wxf/internal/wxftest"
)

func TestReadInt_Widths(t *testing.T) {
	data := wxftest.Stream(9).
		Int8(-128).Int8(127).
		Int16(math.MinInt16).Int16(math.MaxInt16).
		Int32(math.MinInt32).Int32(math.MaxInt32).
		Int8(-1).Int16(-1).Int32(-1).
		Bytes()
	r := newTestReader(t, data)

	i8, err := ReadInt[int8](r)
	require.NoError(t, err)
	require.Equal(t, int8(-128), i8)

	i16, err := ReadInt[int16](r)
	require.NoError(t, err)
	require.Equal(t, int16(127), i16)

	i32, err := ReadInt[int32](r)
	require.NoError(t, err)
	require.Equal(t, int32(math.MinInt16), i32)

	i64, err := ReadInt[int64](r)
	require.NoError(t, err)
	require.Equal(t, int64(math.MaxInt16), i64)

	n, err := r.ReadInt()
	require.NoError(t, err)
	require.Equal(t, math.MinInt32, n)

	i64, err = ReadInt[int64](r)
	require.NoError(t, err)
	require.Equal(t, int64(math.MaxInt32), i64)

	// sign extension from every wire width
	for range 3 {
		v, err := ReadInt[int64](r)
		require.NoError(t, err)
		require.Equal(t, int64(-1), v)
	}
}

func TestReadInt_NamedType(t *testing.T) {
	type celsius int16

	r := newTestReader(t, wxftest.Stream(1).Int8(-40).Bytes())
	v, err := ReadInt[celsius](r)
	require.NoError(t, err)
	require.Equal(t, celsius(-40), v)
}

func TestReadInt_OutOfRange(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		read func(*Reader) error
	}{
		{
			name: "int16 into int8",
			data: wxftest.Stream(1).Int16(300).Bytes(),
			read: func(r *Reader) error { _, err := ReadInt[int8](r); return err },
		},
		{
			name: "int32 into int16",
			data: wxftest.Stream(1).Int32(-70000).Bytes(),
			read: func(r *Reader) error { _, err := ReadInt[int16](r); return err },
		},
		{
			name: "int32 into int8 via ReadScalar",
			data: wxftest.Stream(1).Int32(128).Bytes(),
			read: func(r *Reader) error { _, err := ReadScalar[int8](r); return err },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestReader(t, tt.data)
			err := tt.read(r)
			require.ErrorIs(t, err, errs.ErrValueOutOfRange)

			off, ok := errs.OffsetOf(err)
			require.True(t, ok)
			require.Equal(t, int64(10), off)
		})
	}
}

func TestReadInt_FitsNarrower(t *testing.T) {
	r := newTestReader(t, wxftest.Stream(2).Int32(-5).Int16(100).Bytes())

	v, err := ReadInt[int8](r)
	require.NoError(t, err)
	require.Equal(t, int8(-5), v)

	v, err = ReadInt[int8](r)
	require.NoError(t, err)
	require.Equal(t, int8(100), v)
}

func TestReadInt_TagMismatch(t *testing.T) {
	streams := map[string][]byte{
		"real":   wxftest.Stream(1).Real(1).Bytes(),
		"string": wxftest.Stream(1).String("1").Bytes(),
		"symbol": wxftest.Stream(1).Symbol("x").Bytes(),
		"list":   wxftest.Stream(1).List(0).Bytes(),
		"packed": wxftest.Stream(1).PackedInt32([]int32{1}).Bytes(),
	}

	for name, data := range streams {
		t.Run(name, func(t *testing.T) {
			r := newTestReader(t, data)
			_, err := ReadInt[int64](r)
			require.ErrorIs(t, err, errs.ErrTagMismatch)
		})
	}
}

func TestReadReal(t *testing.T) {
	values := []float64{0, math.Copysign(0, -1), 3.14, -1e300, math.SmallestNonzeroFloat64, math.Inf(1), math.NaN()}

	b := wxftest.Stream(len(values))
	for _, v := range values {
		b.Real(v)
	}
	r := newTestReader(t, b.Bytes())

	for _, want := range values {
		got, err := r.ReadReal()
		require.NoError(t, err)
		require.Equal(t, math.Float64bits(want), math.Float64bits(got))
	}
}

func TestReadReal_RejectsIntegers(t *testing.T) {
	r := newTestReader(t, wxftest.Stream(1).Int32(3).Bytes())

	_, err := r.ReadReal()
	require.ErrorIs(t, err, errs.ErrTagMismatch)

	r = newTestReader(t, wxftest.Stream(1).Int8(3).Bytes())
	_, err = ReadScalar[float64](r)
	require.ErrorIs(t, err, errs.ErrTagMismatch)
}

func TestReadScalar(t *testing.T) {
	r := newTestReader(t, wxftest.Stream(2).Int16(-300).Real(0.25).Bytes())

	i, err := ReadScalar[int32](r)
	require.NoError(t, err)
	require.Equal(t, int32(-300), i)

	f, err := ReadScalar[float64](r)
	require.NoError(t, err)
	require.Equal(t, 0.25, f)
}

func TestReadInt_Truncated(t *testing.T) {
	data := wxftest.Stream(1).Int32(1 << 20).Bytes()
	r := newTestReader(t, data[:len(data)-2])

	_, err := ReadInt[int32](r)
	require.ErrorIs(t, err, errs.ErrTruncatedStream)

	off, ok := errs.OffsetOf(err)
	require.True(t, ok)
	require.Equal(t, int64(10), off)
}
