// Package hash wraps xxHash64 for dataset checksums and point-set fingerprints.
package hash

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Checksum returns the xxHash64 of data.
func Checksum(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// Float64Hasher feeds the IEEE-754 bit patterns of float64 values into an
// xxHash64 digest. The zero value is not usable; call NewFloat64Hasher.
type Float64Hasher struct {
	d   *xxhash.Digest
	buf [8]byte
}

// NewFloat64Hasher returns a hasher with an empty digest.
func NewFloat64Hasher() *Float64Hasher {
	return &Float64Hasher{d: xxhash.New()}
}

// Add hashes v. Distinct NaN payloads and signed zeros hash differently.
func (h *Float64Hasher) Add(v float64) {
	binary.LittleEndian.PutUint64(h.buf[:], math.Float64bits(v))
	_, _ = h.d.Write(h.buf[:])
}

// Sum64 returns the digest of everything added so far.
func (h *Float64Hasher) Sum64() uint64 {
	return h.d.Sum64()
}
