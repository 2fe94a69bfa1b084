// Package errs defines the error values returned by the wxf decoder.
//
// Every stream failure is terminal for the decode session that produced it.
// ErrInvalidArgument and a registry Decode miss are the exceptions: neither
// consumes input. Callers classify failures with errors.Is against the sentinels
// below, and recover the failing cursor position with errors.As and *DecodeError.
package errs

import (
	"errors"
	"strconv"
	"strings"
)

var (
	// ErrOpen is returned when the byte source cannot be opened.
	ErrOpen = errors.New("wxf: cannot open source")
	// ErrInvalidHeader is returned when the stream does not start with "8:" (or "8C:").
	ErrInvalidHeader = errors.New("wxf: invalid header")
	// ErrTagMismatch is returned when the wire tag differs from the expected tag.
	ErrTagMismatch = errors.New("wxf: tag mismatch")
	// ErrSymbolMismatch is returned when a symbol's length or text differs from the expected name.
	ErrSymbolMismatch = errors.New("wxf: symbol mismatch")
	// ErrRankMismatch is returned when a packed array's rank differs from the expected rank.
	ErrRankMismatch = errors.New("wxf: rank mismatch")
	// ErrTruncatedStream is returned when fewer bytes are available than a declared length implies.
	ErrTruncatedStream = errors.New("wxf: truncated stream")
	// ErrOverflow is returned when a variable-length integer or a dimension product exceeds int.
	ErrOverflow = errors.New("wxf: integer overflow")
	// ErrUnknownElementType is returned for a packed array element kind the decoder does not know.
	ErrUnknownElementType = errors.New("wxf: unknown array element type")
	// ErrValueOutOfRange is returned when a wire integer does not fit the requested destination type.
	ErrValueOutOfRange = errors.New("wxf: value out of range for destination type")
	// ErrLimitExceeded is returned when a declared size exceeds the configured element limit.
	ErrLimitExceeded = errors.New("wxf: declared size exceeds limit")
	// ErrUnsupportedCompression is returned when a source uses an unknown compression.
	ErrUnsupportedCompression = errors.New("wxf: unsupported compression")
	// ErrInvalidArgument is returned when a caller passes an argument no stream can satisfy.
	// It does not end the decode session.
	ErrInvalidArgument = errors.New("wxf: invalid argument")
	// ErrClosed is returned by every operation on a closed reader.
	ErrClosed = errors.New("wxf: reader closed")

	// ErrUnknownDiscriminator is returned when a registry has no decoder for a name.
	ErrUnknownDiscriminator = errors.New("wxf: unknown discriminator")
	// ErrDuplicateDiscriminator is returned when a name is registered twice.
	ErrDuplicateDiscriminator = errors.New("wxf: duplicate discriminator")
	// ErrDiscriminatorCollision is returned when two different names hash to the same ID.
	ErrDiscriminatorCollision = errors.New("wxf: discriminator hash collision")
	// ErrInvalidDiscriminator is returned for an empty discriminator name.
	ErrInvalidDiscriminator = errors.New("wxf: invalid discriminator")
)

// DecodeError describes a failed check at a given stream offset.
type DecodeError struct {
	// Err is one of the sentinel errors in this package, or an I/O error from the source.
	Err error
	// Op names the failing operation, e.g. "ReadVector" or "ExpectSymbol".
	Op string
	// Detail is an optional human readable description of the mismatch.
	Detail string
	// Offset is the cursor position at which the failing operation started.
	Offset int64
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	var b strings.Builder

	if e.Err != nil {
		b.WriteString(e.Err.Error())
	} else {
		b.WriteString("wxf: decode error")
	}

	if e.Op != "" {
		b.WriteString(" in ")
		b.WriteString(e.Op)
	}

	b.WriteString(" at offset ")
	b.WriteString(strconv.FormatInt(e.Offset, 10))

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	return b.String()
}

// Unwrap returns the underlying sentinel.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// At builds a DecodeError for op at offset.
func At(op string, offset int64, err error, detail string) *DecodeError {
	return &DecodeError{Err: err, Op: op, Offset: offset, Detail: detail}
}

// OffsetOf extracts the failing offset from err, if err carries one.
func OffsetOf(err error) (int64, bool) {
	var de *DecodeError
	if errors.As(err, &de) {
		return de.Offset, true
	}

	return 0, false
}
