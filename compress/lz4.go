package compress

import (
	"errors"
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"
)

// lz4CompressorPool reuses lz4.Compressor values, each of which carries a hash
// table that is expensive to allocate per call.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4Compressor wraps pierrec/lz4 block compression.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates an LZ4 codec.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress encodes data as a single LZ4 block using a pooled compressor.
//
// Parameters:
//   - data: the dataset payload to compress
//
// Returns:
//   - []byte: the LZ4 block, or nil for empty input
//   - error: the lz4 error if the block could not be written
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	dst := make([]byte, lz4.CompressBlockBound(len(data)))

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst)
	if err != nil {
		return nil, err
	}

	return dst[:n], nil
}

// Decompress decodes an LZ4 block.
//
// The block format does not record the decompressed size, so decoding starts
// with a buffer four times the input and doubles it on
// lz4.ErrInvalidSourceShortBuffer, up to MaxDecompressedSize.
//
// Parameters:
//   - data: an LZ4 block produced by Compress
//
// Returns:
//   - []byte: the decompressed payload, or nil for empty input
//   - error: ErrDecompressedTooLarge when no buffer within the limit fits, or
//     the lz4 error for corrupted input
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	for bufSize := len(data) * 4; ; bufSize *= 2 {
		bufSize = min(bufSize, MaxDecompressedSize)
		buf := make([]byte, bufSize)
		n, err := lz4.UncompressBlock(data, buf)
		if err == nil {
			return buf[:n], nil
		}
		if !errors.Is(err, lz4.ErrInvalidSourceShortBuffer) {
			return nil, err
		}
		if bufSize == MaxDecompressedSize {
			return nil, fmt.Errorf("%w: lz4 block exceeds %d bytes", ErrDecompressedTooLarge, MaxDecompressedSize)
		}
	}
}
