// Package compress provides streaming decompressors for WXF byte sources.
//
// A WXF stream may reach the decoder in two compressed shapes:
//
//  1. A native compressed WXF stream, whose header is "8C:" and whose body is a
//     zlib stream. The stream package handles this transparently with the Zlib
//     decompressor.
//  2. A WXF file stored inside a generic compressed container (Zstd, S2/Snappy
//     framing, or LZ4 framing). Detect recognizes these by their magic bytes so
//     that stream.Open can unwrap them before header validation.
//
// Supported algorithms:
//   - None: pass-through
//   - Zstd: github.com/klauspost/compress/zstd, or github.com/valyala/gozstd when
//     built with the "gozstd" tag (requires cgo)
//   - S2: github.com/klauspost/compress/s2 (also reads Snappy framed streams)
//   - LZ4: github.com/pierrec/lz4/v4 frame format
//   - Zlib: github.com/klauspost/compress/zlib
//
// # Usage
//
//	kind := compress.Detect(prefix)
//	dec, err := compress.GetDecompressor(kind)
//	if err != nil {
//	    return err
//	}
//	rc, err := dec.NewReader(file)
//	if err != nil {
//	    return err
//	}
//	defer rc.Close()
//
// # Thread Safety
//
// Decompressor values are stateless and safe for concurrent use. Each returned
// io.ReadCloser belongs to a single decode session and must not be shared.
package compress
