//go:build gozstd && cgo

package compress

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/valyala/gozstd"
)

const zstdLevel = 3

// Compress compresses data with libzstd at zstdLevel.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return gozstd.CompressLevel(nil, data, zstdLevel), nil
}

// Decompress decodes zstd frames with libzstd. gozstd has no output limit, so
// the declared frame content size is checked first and the output length
// after decoding.
func (c ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var h zstd.Header
	if err := h.Decode(data); err == nil && h.HasFCS {
		if err := checkDecodedLen("zstd", h.FrameContentSize); err != nil {
			return nil, err
		}
	}

	out, err := gozstd.Decompress(nil, data)
	if err != nil {
		return nil, fmt.Errorf("zstd decompression failed: %w", err)
	}
	if err := checkDecodedLen("zstd", uint64(len(out))); err != nil {
		return nil, err
	}

	return out, nil
}
