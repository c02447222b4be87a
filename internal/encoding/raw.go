package encoding

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/arloliu/lpfit/internal/pool"
)

// RawEncoder stores each value as 8 little-endian bytes.
type RawEncoder struct {
	buf   *pool.ByteBuffer
	count int
}

var _ ColumnEncoder = (*RawEncoder)(nil)

// NewRawEncoder creates a RawEncoder backed by a pooled buffer.
func NewRawEncoder() *RawEncoder {
	return &RawEncoder{buf: pool.GetPayloadBuffer()}
}

func (e *RawEncoder) WriteSlice(values []float64) {
	if e.buf == nil {
		panic("encoder already finished - cannot write values after Finish()")
	}

	e.buf.Grow(len(values) * 8)
	for _, v := range values {
		e.buf.B = binary.LittleEndian.AppendUint64(e.buf.B, math.Float64bits(v))
	}
	e.count += len(values)
}

func (e *RawEncoder) Bytes() []byte {
	if e.buf == nil {
		panic("encoder already finished - cannot access bytes after Finish()")
	}

	return e.buf.Bytes()
}

func (e *RawEncoder) Len() int { return e.count }

func (e *RawEncoder) Finish() {
	if e.buf == nil {
		return
	}
	pool.PutPayloadBuffer(e.buf)
	e.buf = nil
}

// RawDecoder reads columns written by RawEncoder.
type RawDecoder struct{}

var _ ColumnDecoder = RawDecoder{}

func (RawDecoder) Decode(data []byte, count int) ([]float64, error) {
	if count < 0 || len(data) != count*8 {
		return nil, fmt.Errorf("%w: raw column has %d bytes, want %d", ErrCorrupted, len(data), count*8)
	}

	out := make([]float64, count)
	for i := range out {
		out[i] = math.Float64frombits(binary.LittleEndian.Uint64(data[i*8:]))
	}

	return out, nil
}
