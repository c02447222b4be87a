package compress

import (
	"errors"
	"fmt"
)

// MaxDecompressedSize bounds the output of every Decompress call. A dataset
// payload decompressing to more than this is rejected before, or while, the
// output buffer is allocated, so a hostile size header cannot exhaust memory.
const MaxDecompressedSize = 512 << 20

// ErrDecompressedTooLarge is returned when data would decompress to more than
// MaxDecompressedSize bytes.
var ErrDecompressedTooLarge = errors.New("compress: decompressed size exceeds limit")

// checkDecodedLen rejects a declared decompressed size above the limit.
func checkDecodedLen(algo string, n uint64) error {
	if n > MaxDecompressedSize {
		return fmt.Errorf("%w: %s declares %d bytes, limit %d", ErrDecompressedTooLarge, algo, n, MaxDecompressedSize)
	}

	return nil
}
