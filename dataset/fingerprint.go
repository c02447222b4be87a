package dataset

import (
	"github.com/arloliu/lpfit/curve"
	"github.com/arloliu/lpfit/internal/hash"
)

// Fingerprint returns an xxHash64 over the bit patterns of every x and y in
// order. Reordered point sets get different fingerprints.
func Fingerprint(points []curve.Point) uint64 {
	h := hash.NewFloat64Hasher()
	for _, p := range points {
		h.Add(p.X)
		h.Add(p.Y)
	}

	return h.Sum64()
}
