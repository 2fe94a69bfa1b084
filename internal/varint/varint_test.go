package varint

import (
	"bufio"
	"bytes"
	"math"
	"testing"

	"github.com/arloliu/wxf/errs"
	"github.com/stretchr/testify/require"
)

func TestReadLength(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected int
		consumed int
	}{
		{name: "zero", data: []byte{0x00}, expected: 0, consumed: 1},
		{name: "single byte max", data: []byte{0x7F}, expected: 127, consumed: 1},
		{name: "two bytes", data: []byte{0x80, 0x01}, expected: 128, consumed: 2},
		{name: "300", data: []byte{0xAC, 0x02}, expected: 300, consumed: 2},
		{name: "three bytes", data: []byte{0xFF, 0xFF, 0x7F}, expected: 1<<21 - 1, consumed: 3},
		{name: "trailing data untouched", data: []byte{0x04, 0xFF}, expected: 4, consumed: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := bytes.NewReader(tt.data)
			v, n, err := ReadLength(r)
			require.NoError(t, err)
			require.Equal(t, tt.expected, v)
			require.Equal(t, tt.consumed, n)
			require.Equal(t, len(tt.data)-tt.consumed, r.Len())
		})
	}
}

func TestReadLength_Truncated(t *testing.T) {
	_, _, err := ReadLength(bytes.NewReader([]byte{0x80, 0x80}))
	require.ErrorIs(t, err, errs.ErrTruncatedStream)

	_, _, err = ReadLength(bytes.NewReader(nil))
	require.ErrorIs(t, err, errs.ErrTruncatedStream)
}

func TestReadLength_Overflow(t *testing.T) {
	data := bytes.Repeat([]byte{0xFF}, MaxBytes+1)
	_, n, err := ReadLength(bufio.NewReader(bytes.NewReader(data)))
	require.ErrorIs(t, err, errs.ErrOverflow)
	require.Equal(t, MaxBytes, n)
}

func TestRoundTrip(t *testing.T) {
	values := []int{0, 1, 127, 128, 255, 16383, 16384, 1<<28 - 1, math.MaxInt32, math.MaxInt}

	for _, v := range values {
		if Size(v) > MaxBytes {
			continue
		}

		buf := Append(nil, v)
		require.Len(t, buf, Size(v))

		got, n, err := Decode(buf)
		require.NoError(t, err)
		require.Equal(t, v, got)
		require.Equal(t, len(buf), n)

		got, n, err = ReadLength(bytes.NewReader(buf))
		require.NoError(t, err)
		require.Equal(t, v, got)
		require.Equal(t, len(buf), n)
	}
}

func TestDecode_Errors(t *testing.T) {
	_, _, err := Decode([]byte{0x81})
	require.ErrorIs(t, err, errs.ErrTruncatedStream)

	_, _, err = Decode(bytes.Repeat([]byte{0x80}, MaxBytes))
	require.ErrorIs(t, err, errs.ErrOverflow)
}
