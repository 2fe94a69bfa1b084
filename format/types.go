package format

import "fmt"

type (
	// Tag is the one-byte token that precedes every value on the wire.
	Tag uint8
	// ArrayType is the element kind byte that follows a PackedArray tag.
	ArrayType uint8
	// CompressionType identifies how a byte source is compressed before WXF decoding.
	CompressionType uint8
)

const (
	TagFunction    Tag = 'f' // TagFunction marks a function application, e.g. List[...].
	TagInt8        Tag = 'C' // TagInt8 marks a signed 8-bit integer.
	TagInt16       Tag = 'j' // TagInt16 marks a signed 16-bit little-endian integer.
	TagInt32       Tag = 'i' // TagInt32 marks a signed 32-bit little-endian integer.
	TagReal        Tag = 'r' // TagReal marks an IEEE-754 little-endian double.
	TagString      Tag = 'S' // TagString marks a length-prefixed UTF-8 string.
	TagSymbol      Tag = 's' // TagSymbol marks a length-prefixed symbol name.
	TagPackedArray Tag = 193 // TagPackedArray marks a flat homogeneous array with rank and dimensions.

	ArrayInt8  ArrayType = 0  // ArrayInt8 is a packed array of signed 8-bit integers.
	ArrayInt16 ArrayType = 1  // ArrayInt16 is a packed array of signed 16-bit integers.
	ArrayInt32 ArrayType = 2  // ArrayInt32 is a packed array of signed 32-bit integers.
	ArrayReal  ArrayType = 35 // ArrayReal is a packed array of 64-bit doubles.

	CompressionNone CompressionType = 0x1 // CompressionNone represents an uncompressed source.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents a Zstandard framed source.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents an S2/Snappy framed source.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents an LZ4 framed source.
	CompressionZlib CompressionType = 0x5 // CompressionZlib represents the zlib body of an "8C:" stream.
)

// Header bytes of a WXF stream.
const (
	HeaderVersion    byte = '8' // HeaderVersion is the first header byte.
	HeaderSeparator  byte = ':' // HeaderSeparator terminates the header.
	HeaderCompressed byte = 'C' // HeaderCompressed marks a zlib-compressed body ("8C:").

	// ListSymbol is the only container head the decoder accepts.
	ListSymbol = "List"
)

// Valid reports whether t is one of the known wire tags.
func (t Tag) Valid() bool {
	switch t {
	case TagFunction, TagInt8, TagInt16, TagInt32, TagReal, TagString, TagSymbol, TagPackedArray:
		return true
	default:
		return false
	}
}

// IsInteger reports whether t is one of the scalar integer tags.
func (t Tag) IsInteger() bool {
	return t == TagInt8 || t == TagInt16 || t == TagInt32
}

func (t Tag) String() string {
	switch t {
	case TagFunction:
		return "Function"
	case TagInt8:
		return "Int8"
	case TagInt16:
		return "Int16"
	case TagInt32:
		return "Int32"
	case TagReal:
		return "Real"
	case TagString:
		return "String"
	case TagSymbol:
		return "Symbol"
	case TagPackedArray:
		return "PackedArray"
	default:
		return fmt.Sprintf("Unknown(0x%02x)", uint8(t))
	}
}

// Valid reports whether a is one of the supported packed array element kinds.
func (a ArrayType) Valid() bool {
	switch a {
	case ArrayInt8, ArrayInt16, ArrayInt32, ArrayReal:
		return true
	default:
		return false
	}
}

// Width returns the on-wire size of one element in bytes, or 0 for unknown kinds.
func (a ArrayType) Width() int {
	switch a {
	case ArrayInt8:
		return 1
	case ArrayInt16:
		return 2
	case ArrayInt32:
		return 4
	case ArrayReal:
		return 8
	default:
		return 0
	}
}

// IsInteger reports whether a holds signed integers.
func (a ArrayType) IsInteger() bool {
	return a == ArrayInt8 || a == ArrayInt16 || a == ArrayInt32
}

func (a ArrayType) String() string {
	switch a {
	case ArrayInt8:
		return "Int8"
	case ArrayInt16:
		return "Int16"
	case ArrayInt32:
		return "Int32"
	case ArrayReal:
		return "Real64"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(a))
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	case CompressionZlib:
		return "Zlib"
	default:
		return "Unknown"
	}
}
