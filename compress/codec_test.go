package compress

import (
	"bytes"
	"encoding/binary"
	"math"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/lpfit/format"
)

var allTypes = []format.CompressionType{
	format.CompressionNone,
	format.CompressionZstd,
	format.CompressionS2,
	format.CompressionLZ4,
}

// pointPayload mimics a raw-encoded dataset payload: an x grid and a noisy line.
func pointPayload(n int) []byte {
	rng := rand.New(rand.NewSource(int64(n)))
	buf := make([]byte, 0, n*16)
	for i := range n {
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(float64(i)*0.25))
	}
	for i := range n {
		y := 2*float64(i) + 1 + rng.NormFloat64()*0.01
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(y))
	}

	return buf
}

func TestCreateCodec(t *testing.T) {
	for _, ct := range allTypes {
		codec, err := CreateCodec(ct, "test")
		require.NoError(t, err, ct.String())
		require.NotNil(t, codec)

		shared, err := GetCodec(ct)
		require.NoError(t, err)
		require.NotNil(t, shared)
	}

	_, err := CreateCodec(format.CompressionType(0x7f), "dataset payload")
	require.ErrorContains(t, err, "invalid dataset payload compression")

	_, err = GetCodec(format.CompressionType(0x7f))
	require.Error(t, err)
}

func TestAllCodecs_EmptyData(t *testing.T) {
	for _, ct := range allTypes {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)

			compressed, err := codec.Compress(nil)
			require.NoError(t, err)
			require.Empty(t, compressed)

			out, err := codec.Decompress(compressed)
			require.NoError(t, err)
			require.Empty(t, out)
		})
	}
}

func TestAllCodecs_RoundTrip(t *testing.T) {
	payloads := map[string][]byte{
		"tiny":     []byte("LPFD"),
		"points":   pointPayload(256),
		"zeros":    make([]byte, 64*1024),
		"repeated": bytes.Repeat([]byte("0123456789abcdef"), 4096),
	}

	for _, ct := range allTypes {
		codec, err := CreateCodec(ct, "test")
		require.NoError(t, err)

		for name, data := range payloads {
			t.Run(ct.String()+"/"+name, func(t *testing.T) {
				compressed, err := codec.Compress(data)
				require.NoError(t, err)

				out, err := codec.Decompress(compressed)
				require.NoError(t, err)
				require.Equal(t, data, out)
			})
		}
	}
}

func TestAllCodecs_CompressRepetitiveData(t *testing.T) {
	data := make([]byte, 64*1024)
	for _, ct := range allTypes[1:] {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		compressed, err := codec.Compress(data)
		require.NoError(t, err)
		require.Less(t, len(compressed), len(data)/10, ct.String())
	}
}

func TestAllCodecs_InvalidData(t *testing.T) {
	garbage := []byte{0xde, 0xad, 0xbe, 0xef, 0xff, 0xff, 0xff, 0xff, 0x01}
	for _, ct := range allTypes[1:] {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		_, err = codec.Decompress(garbage)
		require.Error(t, err, ct.String())
	}
}

func TestDecompress_SizeLimit(t *testing.T) {
	tests := []struct {
		name  string
		codec Codec
		data  []byte
	}{
		{
			// block header declaring one byte more than the limit
			name:  "s2",
			codec: NewS2Compressor(),
			data:  append(binary.AppendUvarint(nil, MaxDecompressedSize+1), 0x00, 0x01),
		},
		{
			// single-segment frame whose content size field claims 1TiB
			name:  "zstd",
			codec: NewZstdCompressor(),
			data: []byte{
				0x28, 0xb5, 0x2f, 0xfd, // magic
				0xe0,                                           // 8-byte content size, single segment
				0x00, 0x00, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, // 1 << 40
				0x01, 0x00, 0x00, // last raw block, empty
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.codec.Decompress(tt.data)
			require.ErrorIs(t, err, ErrDecompressedTooLarge)
		})
	}
}

func TestNoOpCompressor_ReturnsInput(t *testing.T) {
	data := []byte{1, 2, 3}
	codec := NewNoOpCompressor()

	out, err := codec.Compress(data)
	require.NoError(t, err)
	require.Same(t, &data[0], &out[0])
}

func TestAllCodecs_ConcurrentUsage(t *testing.T) {
	data := pointPayload(128)

	for _, ct := range allTypes {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		var wg sync.WaitGroup
		errs := make(chan error, 16)
		for range 16 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				compressed, err := codec.Compress(data)
				if err != nil {
					errs <- err
					return
				}
				out, err := codec.Decompress(compressed)
				if err != nil {
					errs <- err
					return
				}
				if !bytes.Equal(out, data) {
					errs <- bytes.ErrTooLarge
				}
			}()
		}
		wg.Wait()
		close(errs)

		for err := range errs {
			require.NoError(t, err, ct.String())
		}
	}
}

func BenchmarkAllCodecs_RoundTrip(b *testing.B) {
	data := pointPayload(4096)
	for _, ct := range allTypes {
		codec, _ := GetCodec(ct)
		b.Run(ct.String(), func(b *testing.B) {
			b.SetBytes(int64(len(data)))
			b.ReportAllocs()
			for b.Loop() {
				compressed, _ := codec.Compress(data)
				_, _ = codec.Decompress(compressed)
			}
		})
	}
}
