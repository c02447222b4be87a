package encoding

import (
	"errors"
	"fmt"

	"github.com/arloliu/lpfit/format"
)

// ErrCorrupted is returned when a column payload ends early or carries an
// impossible block descriptor.
var ErrCorrupted = errors.New("encoding: corrupted column data")

// ColumnEncoder accumulates float64 values into an encoded column.
type ColumnEncoder interface {
	// WriteSlice appends values to the column.
	WriteSlice(values []float64)
	// Bytes returns the encoded column. The slice is valid until Finish.
	Bytes() []byte
	// Len returns the number of values written.
	Len() int
	// Finish releases pooled resources. The encoder is unusable afterwards.
	Finish()
}

// ColumnDecoder restores count values from an encoded column.
type ColumnDecoder interface {
	Decode(data []byte, count int) ([]float64, error)
}

// NewColumnEncoder returns an encoder for the given column encoding.
func NewColumnEncoder(t format.EncodingType) (ColumnEncoder, error) {
	switch t {
	case format.TypeRaw:
		return NewRawEncoder(), nil
	case format.TypeGorilla:
		return NewGorillaEncoder(), nil
	default:
		return nil, fmt.Errorf("encoding: unsupported column encoding %s", t)
	}
}

// NewColumnDecoder returns a decoder for the given column encoding.
func NewColumnDecoder(t format.EncodingType) (ColumnDecoder, error) {
	switch t {
	case format.TypeRaw:
		return RawDecoder{}, nil
	case format.TypeGorilla:
		return GorillaDecoder{}, nil
	default:
		return nil, fmt.Errorf("encoding: unsupported column encoding %s", t)
	}
}

// MinEncodedSize returns the smallest column, in bytes, that can hold count
// values under encoding t. Decoders check it before allocating, so a count
// that the data cannot hold fails fast.
func MinEncodedSize(t format.EncodingType, count int) (int, error) {
	if count < 0 {
		return 0, fmt.Errorf("%w: negative count %d", ErrCorrupted, count)
	}

	switch t {
	case format.TypeRaw:
		return count * 8, nil
	case format.TypeGorilla:
		if count == 0 {
			return 0, nil
		}
		// 64 bits for the first value, at least one control bit per value after it
		return (64 + count - 1 + 7) / 8, nil
	default:
		return 0, fmt.Errorf("encoding: unsupported column encoding %s", t)
	}
}
