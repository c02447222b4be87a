package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCompression(t *testing.T) {
	tests := []struct {
		in   string
		want CompressionType
	}{
		{"", CompressionNone},
		{"none", CompressionNone},
		{"ZSTD", CompressionZstd},
		{" s2 ", CompressionS2},
		{"lz4", CompressionLZ4},
	}
	for _, tt := range tests {
		got, err := ParseCompression(tt.in)
		require.NoError(t, err, tt.in)
		require.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseCompression("brotli")
	require.Error(t, err)
}

func TestParseEncoding(t *testing.T) {
	got, err := ParseEncoding("Gorilla")
	require.NoError(t, err)
	require.Equal(t, TypeGorilla, got)
	require.Equal(t, "Gorilla", got.String())

	got, err = ParseEncoding("raw")
	require.NoError(t, err)
	require.Equal(t, "Raw", got.String())

	_, err = ParseEncoding("delta")
	require.Error(t, err)
	require.Equal(t, "Unknown", EncodingType(0).String())
	require.Equal(t, "Unknown", CompressionType(0).String())
}
