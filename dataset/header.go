package dataset

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/arloliu/lpfit/format"
)

const (
	// Magic identifies a dataset container.
	Magic = "LPFD"
	// Version is the only container version this package reads and writes.
	Version uint8 = 1
	// HeaderSize is the fixed size of the header in bytes.
	HeaderSize = 24
)

var (
	ErrInvalidMagic       = errors.New("dataset: invalid magic")
	ErrUnsupportedVersion = errors.New("dataset: unsupported version")
	ErrTruncated          = errors.New("dataset: truncated data")
	ErrChecksumMismatch   = errors.New("dataset: checksum mismatch")
	ErrCorrupted          = errors.New("dataset: corrupted payload")
	ErrEmpty              = errors.New("dataset: no points")
	ErrTooLarge           = errors.New("dataset: too large")
	ErrUnknownEncoding    = errors.New("dataset: unknown column encoding")
	ErrUnknownCompression = errors.New("dataset: unknown compression")
)

// Header is the fixed-size section at the start of a container.
type Header struct {
	Version     uint8                  // byte offset 4
	Encoding    format.EncodingType    // byte offset 5
	Compression format.CompressionType // byte offset 6
	// Count is the number of points.
	Count uint32 // byte offset 8-11
	// PayloadLen is the length of the payload as stored, i.e. after compression.
	PayloadLen uint32 // byte offset 12-15
	// Checksum is the xxHash64 of the uncompressed payload.
	Checksum uint64 // byte offset 16-23
}

// AppendTo appends the serialized header to dst.
func (h *Header) AppendTo(dst []byte) []byte {
	dst = append(dst, Magic...)
	dst = append(dst, h.Version, byte(h.Encoding), byte(h.Compression), 0)
	dst = binary.LittleEndian.AppendUint32(dst, h.Count)
	dst = binary.LittleEndian.AppendUint32(dst, h.PayloadLen)
	dst = binary.LittleEndian.AppendUint64(dst, h.Checksum)

	return dst
}

// Bytes serializes the header.
func (h *Header) Bytes() []byte {
	return h.AppendTo(make([]byte, 0, HeaderSize))
}

// ParseHeader parses and validates the header at the start of data.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("%w: header needs %d bytes, got %d", ErrTruncated, HeaderSize, len(data))
	}
	if string(data[0:4]) != Magic {
		return Header{}, fmt.Errorf("%w: %q", ErrInvalidMagic, data[0:4])
	}

	h := Header{
		Version:     data[4],
		Encoding:    format.EncodingType(data[5]),
		Compression: format.CompressionType(data[6]),
		Count:       binary.LittleEndian.Uint32(data[8:12]),
		PayloadLen:  binary.LittleEndian.Uint32(data[12:16]),
		Checksum:    binary.LittleEndian.Uint64(data[16:24]),
	}

	return h, h.Validate()
}

// Validate checks the version, the enums and the point count.
func (h *Header) Validate() error {
	if h.Version != Version {
		return fmt.Errorf("%w: %d", ErrUnsupportedVersion, h.Version)
	}
	if !validEncoding(h.Encoding) {
		return fmt.Errorf("%w: 0x%x", ErrUnknownEncoding, uint8(h.Encoding))
	}
	if !validCompression(h.Compression) {
		return fmt.Errorf("%w: 0x%x", ErrUnknownCompression, uint8(h.Compression))
	}
	if h.Count == 0 {
		return ErrEmpty
	}

	return nil
}

func validEncoding(t format.EncodingType) bool {
	return t == format.TypeRaw || t == format.TypeGorilla
}

func validCompression(t format.CompressionType) bool {
	switch t {
	case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
		return true
	default:
		return false
	}
}
