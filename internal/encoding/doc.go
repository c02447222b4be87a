// Package encoding implements the column codecs used by the dataset container.
//
// A point set is stored as two float64 columns (x and y). Each column is
// written by a ColumnEncoder and read back by a ColumnDecoder of the same
// format.EncodingType:
//
//   - format.TypeRaw: 8 bytes per value, little-endian IEEE-754 bits.
//   - format.TypeGorilla: XOR compression of consecutive values as described in
//     the Gorilla paper (https://www.vldb.org/pvldb/vol8/p1816-teller.pdf).
//     Evenly sampled x grids and smooth y series shrink to a few bits per value.
//
// Decoders need the value count, which the dataset header records.
package encoding
