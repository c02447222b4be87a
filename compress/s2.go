package compress

import (
	"fmt"

	"github.com/klauspost/compress/s2"
)

// S2Compressor wraps klauspost/compress/s2 block encoding. S2 trades a little
// ratio for very fast decoding, which suits datasets that are read far more
// often than they are written.
type S2Compressor struct{}

var _ Codec = (*S2Compressor)(nil)

// NewS2Compressor creates an S2 codec.
func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// Compress encodes data as a single S2 block.
//
// Parameters:
//   - data: the dataset payload to compress
//
// Returns:
//   - []byte: the S2 block, or nil for empty input
//   - error: always nil
func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Encode(nil, data), nil
}

// Decompress decodes an S2 block.
//
// The block header records the decoded length; it is checked against
// MaxDecompressedSize before the output buffer is allocated.
//
// Parameters:
//   - data: an S2 block produced by Compress
//
// Returns:
//   - []byte: the decompressed payload, or nil for empty input
//   - error: ErrDecompressedTooLarge, or the s2 error for corrupted input
func (c S2Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	n, err := s2.DecodedLen(data)
	if err != nil {
		return nil, fmt.Errorf("s2 decompression failed: %w", err)
	}
	if err := checkDecodedLen("s2", uint64(n)); err != nil {
		return nil, err
	}

	return s2.Decode(nil, data)
}
