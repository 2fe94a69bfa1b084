package stream

import (
	"bytes"
	"io"
	"testing"

	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/wxf/errs"
	"github.com/arloliu/wxf/format"
	"github.com/arloliu/wxf/internal/wxftest"
)

func wrapContainer(t *testing.T, kind format.CompressionType, data []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	var w io.WriteCloser

	switch kind {
	case format.CompressionZstd:
		enc, err := zstd.NewWriter(&buf)
		require.NoError(t, err)
		w = enc
	case format.CompressionS2:
		w = s2.NewWriter(&buf)
	case format.CompressionLZ4:
		w = lz4.NewWriter(&buf)
	default:
		t.Fatalf("unexpected container %s", kind)
	}

	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return buf.Bytes()
}

// nativeCompressed builds an "8C:" stream whose zlib body is the stream without its header.
func nativeCompressed(t *testing.T, data []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	buf.WriteString("8C:")

	zw := zlib.NewWriter(&buf)
	_, err := zw.Write(data[2:])
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	return buf.Bytes()
}

func readScenario(t *testing.T, r *Reader) {
	t.Helper()

	require.Equal(t, 4, r.Length())

	n, err := ReadInt[int32](r)
	require.NoError(t, err)
	require.Equal(t, int32(1024), n)

	x, err := r.ReadReal()
	require.NoError(t, err)
	require.Equal(t, 3.14, x)

	v, err := ReadVector[int64](r)
	require.NoError(t, err)
	require.Equal(t, []int64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, v)

	m, err := ReadArrayRank[int32](r, 2)
	require.NoError(t, err)
	require.Equal(t, []int32{1, 0, 0, 1}, []int32{m.At(0, 0), m.At(0, 1), m.At(1, 0), m.At(1, 1)})
}

func TestReader_Containers(t *testing.T) {
	kinds := []format.CompressionType{format.CompressionZstd, format.CompressionS2, format.CompressionLZ4}

	for _, kind := range kinds {
		t.Run(kind.String(), func(t *testing.T) {
			data := wrapContainer(t, kind, scenarioStream())

			r, err := NewReader(bytes.NewReader(data))
			require.NoError(t, err)
			require.Equal(t, kind, r.Container())
			require.False(t, r.Compressed())

			readScenario(t, r)
			require.NoError(t, r.Close())
		})
	}
}

func TestReader_ContainerDetectionDisabled(t *testing.T) {
	data := wrapContainer(t, format.CompressionZstd, scenarioStream())

	_, err := NewReader(bytes.NewReader(data), WithDecompression(false))
	require.ErrorIs(t, err, errs.ErrInvalidHeader)
}

func TestReader_NativeCompressed(t *testing.T) {
	data := nativeCompressed(t, scenarioStream())

	r, err := NewReader(bytes.NewReader(data))
	require.NoError(t, err)
	require.True(t, r.Compressed())
	require.Equal(t, format.CompressionNone, r.Container())

	readScenario(t, r)
	// offsets count decoded bytes
	require.Equal(t, int64(len(scenarioStream())+1), r.Offset())
	require.NoError(t, r.Close())
}

func TestReader_NativeCompressedInContainer(t *testing.T) {
	data := wrapContainer(t, format.CompressionLZ4, nativeCompressed(t, scenarioStream()))

	r, err := NewReader(bytes.NewReader(data))
	require.NoError(t, err)
	require.True(t, r.Compressed())
	require.Equal(t, format.CompressionLZ4, r.Container())

	readScenario(t, r)
	require.NoError(t, r.Close())
}

func TestReader_NativeCompressedCorrupt(t *testing.T) {
	_, err := NewReader(bytes.NewReader([]byte("8C:not zlib")))
	require.ErrorIs(t, err, errs.ErrInvalidHeader)
}

func TestReader_NativeCompressedTruncated(t *testing.T) {
	values := make([]float64, 256)
	for i := range values {
		values[i] = float64(i*i) / 7
	}
	data := nativeCompressed(t, wxftest.Stream(1).PackedReal(values).Bytes())

	// The cut may land inside the envelope or inside the array body.
	r, err := NewReader(bytes.NewReader(data[:len(data)/2]))
	if err == nil {
		_, err = ReadVector[float64](r)
	}
	require.ErrorIs(t, err, errs.ErrTruncatedStream)
}
