package dataset

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/arloliu/lpfit/compress"
	"github.com/arloliu/lpfit/curve"
	"github.com/arloliu/lpfit/internal/encoding"
	"github.com/arloliu/lpfit/internal/hash"
	"github.com/arloliu/lpfit/internal/options"
	"github.com/arloliu/lpfit/internal/pool"
)

// MaxPayloadSize bounds the stored payload Read accepts.
const MaxPayloadSize = 256 << 20 // 256MiB

// Encode serializes points into a container.
func Encode(points []curve.Point, opts ...Option) ([]byte, error) {
	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}
	if len(points) == 0 {
		return nil, ErrEmpty
	}
	if uint64(len(points)) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %d points", ErrTooLarge, len(points))
	}

	payload := pool.GetPayloadBuffer()
	defer pool.PutPayloadBuffer(payload)

	xs, ys := curve.XY(points)
	if err := appendColumns(payload, cfg, xs, ys); err != nil {
		return nil, err
	}

	if payload.Len() > compress.MaxDecompressedSize {
		return nil, fmt.Errorf("%w: uncompressed payload of %d bytes", ErrTooLarge, payload.Len())
	}

	codec, err := compress.GetCodec(cfg.compression)
	if err != nil {
		return nil, err
	}
	body, err := codec.Compress(payload.Bytes())
	if err != nil {
		return nil, fmt.Errorf("dataset: compress payload: %w", err)
	}
	if len(body) > MaxPayloadSize {
		return nil, fmt.Errorf("%w: payload of %d bytes", ErrTooLarge, len(body))
	}

	h := Header{
		Version:     Version,
		Encoding:    cfg.encoding,
		Compression: cfg.compression,
		Count:       uint32(len(points)),
		PayloadLen:  uint32(len(body)),
		Checksum:    hash.Checksum(payload.Bytes()),
	}

	// body may alias the pooled payload, so it is copied before the deferred Put.
	out := make([]byte, 0, HeaderSize+len(body))
	out = h.AppendTo(out)
	out = append(out, body...)

	return out, nil
}

func appendColumns(payload *pool.ByteBuffer, cfg *config, xs, ys []float64) error {
	xEnc, err := encoding.NewColumnEncoder(cfg.encoding)
	if err != nil {
		return err
	}
	defer xEnc.Finish()
	xEnc.WriteSlice(xs)

	yEnc, err := encoding.NewColumnEncoder(cfg.encoding)
	if err != nil {
		return err
	}
	defer yEnc.Finish()
	yEnc.WriteSlice(ys)

	xCol, yCol := xEnc.Bytes(), yEnc.Bytes()
	payload.Grow(4 + len(xCol) + len(yCol))
	payload.B = binary.LittleEndian.AppendUint32(payload.B, uint32(len(xCol)))
	payload.MustWrite(xCol)
	payload.MustWrite(yCol)

	return nil
}

// Decode parses a container produced by Encode. data must hold exactly one
// container.
func Decode(data []byte) ([]curve.Point, error) {
	h, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}

	body := data[HeaderSize:]
	switch {
	case len(body) < int(h.PayloadLen):
		return nil, fmt.Errorf("%w: payload needs %d bytes, got %d", ErrTruncated, h.PayloadLen, len(body))
	case len(body) > int(h.PayloadLen):
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrCorrupted, len(body)-int(h.PayloadLen))
	}

	return decodeBody(&h, body)
}

func decodeBody(h *Header, body []byte) ([]curve.Point, error) {
	codec, err := compress.GetCodec(h.Compression)
	if err != nil {
		return nil, err
	}
	payload, err := codec.Decompress(body)
	if err != nil {
		return nil, fmt.Errorf("%w: decompress: %w", ErrCorrupted, err)
	}
	if sum := hash.Checksum(payload); sum != h.Checksum {
		return nil, fmt.Errorf("%w: got %016x, want %016x", ErrChecksumMismatch, sum, h.Checksum)
	}

	if len(payload) < 4 {
		return nil, fmt.Errorf("%w: missing column length", ErrCorrupted)
	}
	xLen := binary.LittleEndian.Uint32(payload)
	cols := payload[4:]
	if uint64(xLen) > uint64(len(cols)) {
		return nil, fmt.Errorf("%w: x column length %d exceeds payload", ErrCorrupted, xLen)
	}

	dec, err := encoding.NewColumnDecoder(h.Encoding)
	if err != nil {
		return nil, err
	}
	count := int(h.Count)
	need, err := encoding.MinEncodedSize(h.Encoding, count)
	if err != nil {
		return nil, err
	}
	if int(xLen) < need || len(cols)-int(xLen) < need {
		return nil, fmt.Errorf("%w: count %d exceeds the column payload", ErrCorrupted, count)
	}
	xs, err := dec.Decode(cols[:xLen], count)
	if err != nil {
		return nil, fmt.Errorf("%w: x column: %w", ErrCorrupted, err)
	}
	ys, err := dec.Decode(cols[xLen:], count)
	if err != nil {
		return nil, fmt.Errorf("%w: y column: %w", ErrCorrupted, err)
	}

	return curve.FromXY(xs, ys)
}

// Write encodes points and writes the container to w.
func Write(w io.Writer, points []curve.Point, opts ...Option) error {
	data, err := Encode(points, opts...)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("dataset: write: %w", err)
	}

	return nil
}

// Read reads one container from r. It consumes exactly the header and the
// payload it announces.
func Read(r io.Reader) ([]curve.Point, error) {
	var hdr [HeaderSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, readError("header", err)
	}
	h, err := ParseHeader(hdr[:])
	if err != nil {
		return nil, err
	}
	if h.PayloadLen > MaxPayloadSize {
		return nil, fmt.Errorf("%w: payload of %d bytes", ErrTooLarge, h.PayloadLen)
	}

	body := make([]byte, h.PayloadLen)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, readError("payload", err)
	}

	return decodeBody(&h, body)
}

func readError(what string, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %s", ErrTruncated, what)
	}

	return fmt.Errorf("dataset: read %s: %w", what, err)
}
