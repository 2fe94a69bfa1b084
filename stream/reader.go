package stream

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/arloliu/wxf/compress"
	"github.com/arloliu/wxf/errs"
	"github.com/arloliu/wxf/format"
	"github.com/arloliu/wxf/internal/options"
	"go.uber.org/zap"
)

// Reader is an open WXF decode session: the stream envelope plus its cursor.
//
// A Reader is created by NewReader or Open, which validate the header and the
// outer List[...] wrapper before returning. The caller then issues one typed
// extraction per record, Length() times. The Reader does not enforce that count.
//
// The first failed extraction poisons the Reader: every later call returns the
// same error. Decoded values never alias Reader memory.
//
// Note: Reader is NOT thread-safe. A session must be driven by one goroutine.
type Reader struct {
	cfg        *ReaderConfig
	cur        *cursor
	closers    []io.Closer
	err        error
	length     int
	container  format.CompressionType
	compressed bool
	closed     bool
}

// NewReader opens a decode session over src.
//
// The reader does not take ownership of src: Close releases decompressors but
// never closes src itself.
//
// Parameters:
//   - src: Byte source positioned at the start of a WXF stream
//   - opts: Optional configuration (see ReaderOption)
//
// Returns:
//   - *Reader: A ready session, Length() already known
//   - error: ErrInvalidHeader, ErrTagMismatch, ErrSymbolMismatch, ErrTruncatedStream,
//     ErrOverflow, or an option/decompressor error
func NewReader(src io.Reader, opts ...ReaderOption) (*Reader, error) {
	cfg := NewReaderConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	r := &Reader{cfg: cfg, container: format.CompressionNone}
	if err := r.open(src); err != nil {
		_ = r.Close()
		return nil, err
	}

	return r, nil
}

// Open opens the file at path and starts a decode session over it.
//
// The file is closed by Reader.Close, or immediately if opening fails.
func Open(path string, opts ...ReaderOption) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.At("Open", 0, fmt.Errorf("%w: %w", errs.ErrOpen, err), path)
	}

	r, err := NewReader(f, opts...)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	// decompressors must be released before the file underneath them
	r.closers = append([]io.Closer{f}, r.closers...)

	return r, nil
}

func (r *Reader) open(src io.Reader) error {
	if src == nil {
		return errs.At("Open", 0, errs.ErrOpen, "nil source")
	}

	if r.cfg.decompress {
		pb := bufio.NewReaderSize(src, r.cfg.bufferSize)
		prefix, _ := pb.Peek(compress.MagicSize) // short sources fail later on the header
		src = pb

		if kind := compress.Detect(prefix); kind != format.CompressionNone {
			rc, err := r.unwrap(kind, pb)
			if err != nil {
				return errs.At("Open", 0, err, "container "+kind.String())
			}
			src = rc
			r.container = kind
		}
	}

	r.cur = newCursor(src, r.cfg.bufferSize, r.cfg.checksum)

	if err := r.readHeader(); err != nil {
		return r.poison(err)
	}

	if err := r.expectTag(format.TagFunction); err != nil {
		return r.poison(err)
	}

	n, err := r.readCount("Length")
	if err != nil {
		return r.poison(err)
	}

	if err := r.expectSymbol(format.ListSymbol); err != nil {
		return r.poison(err)
	}

	r.length = n
	r.cfg.logger.Debug("wxf stream opened",
		zap.Int("length", n),
		zap.Stringer("container", r.container),
		zap.Bool("compressed", r.compressed),
		zap.Int64("offset", r.cur.offset))

	return nil
}

func (r *Reader) unwrap(kind format.CompressionType, src io.Reader) (io.Reader, error) {
	dec, err := compress.GetDecompressor(kind)
	if err != nil {
		return nil, err
	}

	rc, err := dec.NewReader(src)
	if err != nil {
		return nil, err
	}
	r.closers = append(r.closers, rc)

	return rc, nil
}

// readHeader validates "8:" and switches to the zlib body for "8C:".
func (r *Reader) readHeader() error {
	var hdr [2]byte
	if err := r.cur.readFull(hdr[:]); err != nil {
		return r.ioError("ReadHeader", 0, err)
	}

	if hdr[0] != format.HeaderVersion {
		return errs.At("ReadHeader", 0, errs.ErrInvalidHeader, fmt.Sprintf("got %q", hdr[:]))
	}

	switch hdr[1] {
	case format.HeaderSeparator:
		return nil
	case format.HeaderCompressed:
		sep, err := r.cur.ReadByte()
		if err != nil {
			return r.ioError("ReadHeader", 2, err)
		}
		if sep != format.HeaderSeparator {
			return errs.At("ReadHeader", 0, errs.ErrInvalidHeader, fmt.Sprintf("got %q", []byte{hdr[0], hdr[1], sep}))
		}

		body, err := r.unwrap(format.CompressionZlib, r.cur.br)
		if err != nil {
			return errs.At("ReadHeader", r.cur.offset, errs.ErrInvalidHeader, err.Error())
		}
		r.cur.rebase(body)
		r.compressed = true

		return nil
	default:
		return errs.At("ReadHeader", 0, errs.ErrInvalidHeader, fmt.Sprintf("got %q", hdr[:]))
	}
}

// Length returns the declared number of top-level records.
func (r *Reader) Length() int {
	return r.length
}

// Offset returns the number of decoded WXF bytes consumed so far.
// Capture it before an extraction to locate a failure.
func (r *Reader) Offset() int64 {
	if r.cur == nil {
		return 0
	}

	return r.cur.offset
}

// Checksum returns the xxHash64 of every byte consumed so far.
// The second result is false unless the reader was created WithChecksum(true).
func (r *Reader) Checksum() (uint64, bool) {
	if r.cur == nil || r.cur.digest == nil {
		return 0, false
	}

	return r.cur.digest.Sum64(), true
}

// Container returns the compression of the container the stream was unwrapped from.
func (r *Reader) Container() format.CompressionType {
	return r.container
}

// Compressed reports whether the stream used the native "8C:" compressed header.
func (r *Reader) Compressed() bool {
	return r.compressed
}

// Err returns the terminal error of the session, if any.
func (r *Reader) Err() error {
	return r.err
}

// Close releases the source file (for Open) and any decompressors.
// It is safe to call more than once.
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	if r.err == nil {
		r.err = errs.At("Close", r.Offset(), errs.ErrClosed, "")
	}

	var errList []error
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i].Close(); err != nil {
			errList = append(errList, err)
		}
	}
	r.closers = nil

	return errors.Join(errList...)
}

// Fail ends the session with err, as if an extraction had failed with it, and
// returns the terminal error. Decoders built on top of the Reader use it when a
// failure they detect leaves the stream mid-record. If the session has already
// failed, the earlier error is kept and returned.
func (r *Reader) Fail(err error) error {
	if err == nil {
		return r.err
	}

	return r.poison(err)
}

// check returns the sticky error of a failed or closed session.
func (r *Reader) check() error {
	return r.err
}

// poison records err as the terminal error of the session.
func (r *Reader) poison(err error) error {
	if r.err != nil {
		return r.err
	}

	var de *errs.DecodeError
	if !errors.As(err, &de) {
		de = errs.At("", r.Offset(), err, "")
	}

	r.err = de
	r.cfg.logger.Debug("wxf decode failed",
		zap.String("op", de.Op),
		zap.Int64("offset", de.Offset),
		zap.Error(de.Err))

	return de
}

// ioError classifies a read failure that began at offset.
func (r *Reader) ioError(op string, offset int64, err error) error {
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) || errors.Is(err, errs.ErrTruncatedStream) {
		return errs.At(op, offset, errs.ErrTruncatedStream, "")
	}

	return errs.At(op, offset, err, "")
}
