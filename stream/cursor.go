package stream

import (
	"bufio"
	"errors"
	"io"
	"slices"

	"github.com/arloliu/wxf/internal/hash"
	"github.com/arloliu/wxf/internal/varint"
)

// growChunk is the first allocation step for buffers sized by a wire length.
const growChunk = 64 * 1024

// cursor is the exclusive owner of the byte source and the logical read offset.
//
// The offset counts decoded WXF bytes; bytes consumed by a surrounding
// decompressor are not counted.
type cursor struct {
	br     *bufio.Reader
	digest *hash.Digest
	offset int64
	size   int
}

func newCursor(src io.Reader, size int, checksum bool) *cursor {
	c := &cursor{
		br:   bufio.NewReaderSize(src, size),
		size: size,
	}
	if checksum {
		c.digest = hash.NewDigest()
	}

	return c
}

// rebase continues reading from src, keeping offset and digest. src normally
// wraps the previous buffered reader, so no buffered byte is lost.
func (c *cursor) rebase(src io.Reader) {
	c.br = bufio.NewReaderSize(src, c.size)
}

// ReadByte implements io.ByteReader so varint decoding advances the offset.
func (c *cursor) ReadByte() (byte, error) {
	b, err := c.br.ReadByte()
	if err != nil {
		return 0, err
	}

	c.offset++
	if c.digest != nil {
		_ = c.digest.WriteByte(b)
	}

	return b, nil
}

// readFull fills p entirely or fails. A short source yields io.ErrUnexpectedEOF.
func (c *cursor) readFull(p []byte) error {
	n, err := io.ReadFull(c.br, p)
	c.offset += int64(n)
	if c.digest != nil && n > 0 {
		_, _ = c.digest.Write(p[:n])
	}

	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}

	return err
}

// readBytes reads exactly n bytes into a new slice. The slice grows with the
// bytes actually read, so a corrupt n cannot reserve more than the source holds.
func (c *cursor) readBytes(n int) ([]byte, error) {
	buf := make([]byte, 0, min(n, growChunk))
	for len(buf) < n {
		start := len(buf)
		step := min(n-start, max(start, growChunk))
		buf = slices.Grow(buf, step)[:start+step]
		if err := c.readFull(buf[start:]); err != nil {
			return nil, err
		}
	}

	return buf, nil
}

// peek returns up to n upcoming bytes without consuming them.
func (c *cursor) peek(n int) ([]byte, error) {
	return c.br.Peek(n)
}

func (c *cursor) readLength() (int, error) {
	v, _, err := varint.ReadLength(c)
	return v, err
}
