// Package stream implements a pull-style, schema-driven decoder for WXF streams.
//
// A WXF stream starts with the header "8:" followed by a single List[...]
// expression whose arity is the number of records. Each record is a tagged
// value: an Int8/Int16/Int32 or Real scalar, a String, a Symbol, a packed
// array, or a nested List. The decoder never builds a tree; the caller knows
// the schema out of band and asks for one typed value at a time:
//
//	r, err := stream.Open("data.wxf")
//	if err != nil {
//	    return err
//	}
//	defer r.Close()
//
//	n, _ := stream.ReadInt[int32](r)            // Int32(1024)
//	x, _ := r.ReadReal()                       // Real(3.14)
//	v, _ := stream.ReadVector[int](r)          // PackedArray rank 1
//	m, _ := stream.ReadArrayRank[int32](r, 2)  // PackedArray rank 2
//
// # Validation
//
// Every extraction starts by checking the wire tag against the requested type.
// There is no coercion between incompatible kinds: a Real never satisfies an
// integer request and an integer never satisfies ReadReal. Narrow integers are
// sign-extended into wider destinations; a value that does not fit a narrower
// destination fails with errs.ErrValueOutOfRange.
//
// # Failure
//
// Stream failures are terminal. The first error is returned as *errs.DecodeError
// carrying the offset where the failing check began, and the Reader returns
// that same error from every later call. Use errors.Is with the sentinels in
// package errs to classify it. Decoders layered on a Reader end the session
// themselves with Reader.Fail.
//
// An argument no stream could satisfy, such as ReadArrayRank with rank 0, fails
// with errs.ErrInvalidArgument before anything is read and leaves the Reader usable.
//
// # Sources
//
// Open and NewReader accept plain streams, native compressed streams ("8C:"
// with a zlib body), and streams stored in Zstd, S2 or LZ4 containers.
//
// # Thread Safety
//
// A Reader is owned by a single goroutine. Independent Readers share no state.
package stream
