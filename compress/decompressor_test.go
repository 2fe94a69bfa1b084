package compress

import (
	"bytes"
	"io"
	"testing"

	"github.com/arloliu/wxf/errs"
	"github.com/arloliu/wxf/format"
	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/require"
)

func testPayload() []byte {
	// A header followed by repetitive bytes so every codec actually compresses.
	data := []byte("8:f\x01\x04List")
	for i := range 4096 {
		data = append(data, byte(i%7))
	}

	return data
}

func compressWith(t *testing.T, kind format.CompressionType, data []byte) []byte {
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
	case format.CompressionZlib:
		w = zlib.NewWriter(&buf)
	default:
		return data
	}

	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return buf.Bytes()
}

func TestDecompressors_RoundTrip(t *testing.T) {
	kinds := []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
		format.CompressionZlib,
	}

	payload := testPayload()

	for _, kind := range kinds {
		t.Run(kind.String(), func(t *testing.T) {
			compressed := compressWith(t, kind, payload)

			dec, err := GetDecompressor(kind)
			require.NoError(t, err)

			rc, err := dec.NewReader(bytes.NewReader(compressed))
			require.NoError(t, err)

			got, err := io.ReadAll(rc)
			require.NoError(t, err)
			require.NoError(t, rc.Close())
			require.Equal(t, payload, got)
		})
	}
}

func TestDetect(t *testing.T) {
	payload := testPayload()

	tests := []struct {
		kind     format.CompressionType
		expected format.CompressionType
	}{
		{format.CompressionNone, format.CompressionNone},
		{format.CompressionZstd, format.CompressionZstd},
		{format.CompressionS2, format.CompressionS2},
		{format.CompressionLZ4, format.CompressionLZ4},
		// zlib bodies are only reachable through the "8C:" header
		{format.CompressionZlib, format.CompressionNone},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			data := compressWith(t, tt.kind, payload)
			require.Equal(t, tt.expected, Detect(data[:min(MagicSize, len(data))]))
		})
	}

	require.Equal(t, format.CompressionNone, Detect(nil))
	require.Equal(t, format.CompressionS2, Detect([]byte("\xff\x06\x00\x00sNaPpY")))
}

func TestGetDecompressor_Unsupported(t *testing.T) {
	_, err := GetDecompressor(format.CompressionType(0xEE))
	require.ErrorIs(t, err, errs.ErrUnsupportedCompression)
}

func TestZlibDecompressor_CorruptHeader(t *testing.T) {
	_, err := NewZlibDecompressor().NewReader(bytes.NewReader([]byte{0x00, 0x01, 0x02}))
	require.Error(t, err)
}
