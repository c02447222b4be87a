// Package dataset stores point sets in a small binary container so they can
// be saved and fitted again later.
//
// # Layout
//
// All integers are little-endian.
//
//	offset  size  field
//	0       4     magic "LPFD"
//	4       1     version (1)
//	5       1     column encoding (format.TypeRaw or format.TypeGorilla)
//	6       1     compression (format.CompressionNone, Zstd, S2 or LZ4)
//	7       1     reserved, zero
//	8       4     point count
//	12      4     payload length in bytes, as stored after the header
//	16      8     xxHash64 of the uncompressed payload
//
// The uncompressed payload is the encoded x column prefixed with its length
// as a uint32, followed by the encoded y column:
//
//	uint32 xLen | x column (xLen bytes) | y column
//
// Gorilla encoding suits evenly spaced x values and slowly varying y values;
// raw encoding stores every float64 verbatim. Either way the points decode
// bit-exactly.
//
// # Usage
//
//	data, err := dataset.Encode(points,
//		dataset.WithEncoding(format.TypeGorilla),
//		dataset.WithCompression(format.CompressionZstd),
//	)
//	...
//	points, err = dataset.Decode(data)
package dataset
