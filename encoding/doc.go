// Package encoding decodes the element payload of WXF packed arrays.
//
// A packed array stores its elements back to back, little-endian, in one of
// four kinds: Int8, Int16, Int32 or Real. PackedDecoder turns such a payload
// into a Go slice of any numeric destination type, widening integers with sign
// extension and rejecting values a narrower destination cannot hold.
//
// When the wire width equals the destination width and the host is
// little-endian, the payload already has the in-memory layout of the
// destination slice. Direct reports this case; the caller then reads the
// payload straight into the bytes returned by Bytes and skips Decode.
//
//	dec, err := encoding.NewPackedDecoder[int64](format.ArrayInt16)
//	if err != nil {
//	    return err
//	}
//	dst := make([]int64, n)
//	if i, ok := dec.Decode(dst, payload); !ok {
//	    return fmt.Errorf("element %d out of range", i)
//	}
package encoding
