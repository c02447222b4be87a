package encoding

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/bits"

	"github.com/arloliu/lpfit/format"
	"github.com/arloliu/lpfit/internal/pool"
)

// maxLeading is the largest leading-zero count representable in the 5-bit field.
const maxLeading = 31

// GorillaEncoder compresses a float64 column with XOR encoding:
//
//   - the first value is stored verbatim (64 bits);
//   - an unchanged value costs a single 0 bit;
//   - otherwise the XOR with the previous value is written after a 1 bit,
//     either inside the previous meaningful-bit window ('0' control bit) or
//     with a new window: 5 bits leading zeros, 6 bits window size - 1.
type GorillaEncoder struct {
	acc       uint64 // pending bits, left aligned
	accBits   int
	prev      uint64
	leading   int
	trailing  int
	blockSize int
	count     int
	sealed    bool

	buf *pool.ByteBuffer
}

var _ ColumnEncoder = (*GorillaEncoder)(nil)

// NewGorillaEncoder creates a GorillaEncoder backed by a pooled buffer.
func NewGorillaEncoder() *GorillaEncoder {
	return &GorillaEncoder{buf: pool.GetPayloadBuffer()}
}

// WriteSlice appends values to the column. It panics after Bytes or Finish.
func (e *GorillaEncoder) WriteSlice(values []float64) {
	if e.buf == nil || e.sealed {
		panic("encoder sealed - cannot write values after Bytes() or Finish()")
	}

	for _, v := range values {
		e.write(math.Float64bits(v))
	}
}

// Bytes flushes pending bits, padding the last byte with zeros, and seals the
// encoder. Repeated calls return the same slice.
func (e *GorillaEncoder) Bytes() []byte {
	if e.buf == nil {
		panic("encoder already finished - cannot access bytes after Finish()")
	}

	if !e.sealed {
		e.sealed = true
		for i := 0; i < (e.accBits+7)/8; i++ {
			_ = e.buf.WriteByte(byte(e.acc >> (56 - 8*i)))
		}
		e.acc, e.accBits = 0, 0
	}

	return e.buf.Bytes()
}

func (e *GorillaEncoder) Len() int { return e.count }

func (e *GorillaEncoder) Finish() {
	if e.buf == nil {
		return
	}
	pool.PutPayloadBuffer(e.buf)
	e.buf = nil
}

func (e *GorillaEncoder) write(v uint64) {
	e.count++
	if e.count == 1 {
		e.prev = v
		e.writeBits(v, 64)

		return
	}

	xor := v ^ e.prev
	e.prev = v
	if xor == 0 {
		e.writeBits(0, 1)
		return
	}

	leading := min(bits.LeadingZeros64(xor), maxLeading)
	trailing := bits.TrailingZeros64(xor)

	if e.blockSize > 0 && leading >= e.leading && trailing >= e.trailing {
		e.writeBits(0b10, 2)
		e.writeBits(xor>>e.trailing, e.blockSize)

		return
	}

	blockSize := 64 - leading - trailing
	e.writeBits(0b11, 2)
	e.writeBits(uint64(leading), 5)     //nolint:gosec // 0..31
	e.writeBits(uint64(blockSize-1), 6) //nolint:gosec // 0..63
	e.writeBits(xor>>trailing, blockSize)

	e.leading, e.trailing, e.blockSize = leading, trailing, blockSize
}

// writeBits appends the n low bits of v, most significant first.
func (e *GorillaEncoder) writeBits(v uint64, n int) {
	for n > 0 {
		space := 64 - e.accBits
		take := min(n, space)
		chunk := (v >> (n - take)) & lowMask(take)
		e.acc |= chunk << (space - take)
		e.accBits += take
		n -= take

		if e.accBits == 64 {
			e.buf.B = binary.BigEndian.AppendUint64(e.buf.B, e.acc)
			e.acc, e.accBits = 0, 0
		}
	}
}

func lowMask(n int) uint64 {
	if n >= 64 {
		return math.MaxUint64
	}

	return 1<<n - 1
}

// GorillaDecoder reads columns written by GorillaEncoder.
type GorillaDecoder struct{}

var _ ColumnDecoder = GorillaDecoder{}

func (GorillaDecoder) Decode(data []byte, count int) ([]float64, error) {
	need, err := MinEncodedSize(format.TypeGorilla, count)
	if err != nil {
		return nil, err
	}
	if len(data) < need {
		return nil, fmt.Errorf("%w: %d bytes cannot hold %d values", ErrCorrupted, len(data), count)
	}

	out := make([]float64, 0, count)
	if count == 0 {
		return out, nil
	}

	r := bitReader{data: data}
	prev, ok := r.readBits(64)
	if !ok {
		return nil, fmt.Errorf("%w: missing first value", ErrCorrupted)
	}
	out = append(out, math.Float64frombits(prev))

	var trailing, blockSize int
	for len(out) < count {
		changed, ok := r.readBits(1)
		if !ok {
			return nil, fmt.Errorf("%w: truncated at value %d", ErrCorrupted, len(out))
		}
		if changed == 0 {
			out = append(out, math.Float64frombits(prev))
			continue
		}

		newBlock, ok := r.readBits(1)
		if !ok {
			return nil, fmt.Errorf("%w: truncated at value %d", ErrCorrupted, len(out))
		}
		if newBlock == 1 {
			leading, ok1 := r.readBits(5)
			size, ok2 := r.readBits(6)
			if !ok1 || !ok2 {
				return nil, fmt.Errorf("%w: truncated block header at value %d", ErrCorrupted, len(out))
			}
			blockSize = int(size) + 1
			trailing = 64 - int(leading) - blockSize
			if trailing < 0 {
				return nil, fmt.Errorf("%w: invalid block at value %d", ErrCorrupted, len(out))
			}
		} else if blockSize == 0 {
			return nil, fmt.Errorf("%w: block reuse before first block at value %d", ErrCorrupted, len(out))
		}

		meaningful, ok := r.readBits(blockSize)
		if !ok {
			return nil, fmt.Errorf("%w: truncated at value %d", ErrCorrupted, len(out))
		}
		prev ^= meaningful << trailing
		out = append(out, math.Float64frombits(prev))
	}

	return out, nil
}

// bitReader reads big-endian bit fields from a byte slice.
type bitReader struct {
	data []byte
	pos  int // bit offset
}

func (r *bitReader) readBits(n int) (uint64, bool) {
	if r.pos+n > len(r.data)*8 {
		return 0, false
	}

	var v uint64
	for n > 0 {
		off := r.pos & 7
		avail := 8 - off
		take := min(avail, n)
		b := (uint64(r.data[r.pos>>3]) >> (avail - take)) & lowMask(take)
		v = v<<take | b
		r.pos += take
		n -= take
	}

	return v, true
}
