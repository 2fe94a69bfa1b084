// Package endian provides the byte order utilities used by the wxf decoder.
//
// WXF writes every fixed-width integer and real in little-endian order. The
// decoder reads them through an EndianEngine so that the element conversion code
// never hardcodes a byte order, and it asks this package whether the host shares
// the wire order to decide if packed arrays can be copied straight into Go slices.
//
//	engine := endian.WireEngine()
//	v := int32(engine.Uint32(buf)) //nolint:gosec
//
// # Thread Safety
//
// All functions in this package are safe for concurrent use.
// The returned EndianEngine instances are immutable and stateless.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary.
//
// It is satisfied by binary.LittleEndian and binary.BigEndian.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// CheckEndianness uses a fixed integer value to determine the host's byte order.
func CheckEndianness() binary.ByteOrder {
	// 0x0100 is 256. A little-endian host stores the 0x00 byte first.
	var i uint16 = 0x0100

	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

func IsNativeLittleEndian() bool {
	return CheckEndianness() == binary.LittleEndian
}

// CompareNativeEndian reports whether engine matches the host byte order.
func CompareNativeEndian(engine EndianEngine) bool {
	return engine == CheckEndianness()
}

// WireEngine returns the byte order used by WXF streams.
func WireEngine() EndianEngine {
	return binary.LittleEndian
}

// NativeWire reports whether values decoded from the wire can be reinterpreted in
// place, i.e. the host is little-endian.
func NativeWire() bool {
	return CompareNativeEndian(WireEngine())
}
