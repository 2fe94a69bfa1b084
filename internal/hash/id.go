package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of a discriminator name.
func ID(name string) uint64 {
	return xxhash.Sum64String(name)
}

// Digest is a running xxHash64 over consumed stream bytes.
type Digest struct {
	d *xxhash.Digest
}

// NewDigest returns an empty running digest.
func NewDigest() *Digest {
	return &Digest{d: xxhash.New()}
}

// Write feeds p into the digest. It never fails.
func (d *Digest) Write(p []byte) (int, error) {
	return d.d.Write(p)
}

// WriteByte feeds one byte into the digest.
func (d *Digest) WriteByte(c byte) error {
	_, err := d.d.Write([]byte{c})
	return err
}

// Sum64 returns the digest of everything written so far.
func (d *Digest) Sum64() uint64 {
	return d.d.Sum64()
}
