// Package compress provides the payload codecs of the dataset container.
//
// Compression is applied to the whole encoded payload (both columns) after
// column encoding. The algorithm is recorded in the dataset header so Decode
// picks the matching Decompressor automatically:
//
//   - format.CompressionNone: payload stored as-is.
//   - format.CompressionZstd: best ratio. Pure Go (klauspost/compress) by
//     default; build with -tags gozstd (cgo required) to use the libzstd
//     binding from valyala/gozstd instead. Both produce standard frames.
//   - format.CompressionS2: fast, moderate ratio.
//   - format.CompressionLZ4: fastest decompression.
//
// Gorilla-encoded columns are already dense, so compression pays off mostly
// for raw columns and for large point sets with repeated values.
//
// Example:
//
//	codec, err := compress.CreateCodec(format.CompressionZstd, "dataset payload")
//	if err != nil {
//		return err
//	}
//	packed, err := codec.Compress(payload)
package compress
