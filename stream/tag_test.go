package stream

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/wxf/errs"
	"github.com/arloliu/wxf/format"
	"github.com/arloliu/wxf/internal/wxftest"
)

func TestPeekTag(t *testing.T) {
	r := newTestReader(t, wxftest.Stream(2).Int16(9).Real(2).Bytes())

	off := r.Offset()
	tag, err := r.PeekTag()
	require.NoError(t, err)
	require.Equal(t, format.TagInt16, tag)
	require.Equal(t, off, r.Offset())

	v, err := ReadInt[int16](r)
	require.NoError(t, err)
	require.Equal(t, int16(9), v)

	tag, err = r.PeekTag()
	require.NoError(t, err)
	require.Equal(t, format.TagReal, tag)
}

func TestPeekTag_DoesNotPoison(t *testing.T) {
	r := newTestReader(t, wxftest.Stream(1).Raw(0x02).Bytes())

	_, err := r.PeekTag()
	require.ErrorIs(t, err, errs.ErrTagMismatch)
	require.NoError(t, r.Err())

	r = newTestReader(t, wxftest.Stream(0).Bytes())
	_, err = r.PeekTag()
	require.ErrorIs(t, err, errs.ErrTruncatedStream)
	require.NoError(t, r.Err())
}

func TestLowLevelPackedArray(t *testing.T) {
	data := wxftest.Stream(1).PackedInt16([]int16{-2, 2}).Bytes()
	r := newTestReader(t, data)

	require.NoError(t, r.ExpectTag(format.TagPackedArray))
	require.NoError(t, r.ExpectArrayElementTag(format.ArrayInt16))

	rank, err := r.ReadLength()
	require.NoError(t, err)
	require.Equal(t, 1, rank)

	dim, err := r.ReadLength()
	require.NoError(t, err)
	require.Equal(t, 2, dim)
	require.Equal(t, int64(len(data)-4), r.Offset())
}

func TestReadArrayElementTag(t *testing.T) {
	r := newTestReader(t, wxftest.Stream(1).Tag(format.TagPackedArray).Raw(byte(format.ArrayReal)).Bytes())

	tag, err := r.ReadTag()
	require.NoError(t, err)
	require.Equal(t, format.TagPackedArray, tag)

	at, err := r.ReadArrayElementTag()
	require.NoError(t, err)
	require.Equal(t, format.ArrayReal, at)
}

func TestExpectArrayElementTag_Mismatch(t *testing.T) {
	r := newTestReader(t, wxftest.Stream(1).Tag(format.TagPackedArray).Raw(byte(format.ArrayInt8)).Bytes())

	require.NoError(t, r.ExpectTag(format.TagPackedArray))
	err := r.ExpectArrayElementTag(format.ArrayInt32)
	require.ErrorIs(t, err, errs.ErrTagMismatch)
}

func TestExpectTag_Mismatch(t *testing.T) {
	r := newTestReader(t, wxftest.Stream(1).Int8(1).Bytes())

	err := r.ExpectTag(format.TagInt32)
	require.ErrorIs(t, err, errs.ErrTagMismatch)
	require.Contains(t, err.Error(), "expected Int32, got Int8")
}
