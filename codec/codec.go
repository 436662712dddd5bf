// Package codec provides fixed-width encoders/decoders for the keys and
// values stored in a rbforest.Forest. Every type stored in a forest must
// compile to exactly Size() bytes; the forest itself never sees the Go
// type, only the encoded bytes, so key ordering is defined by
// lexicographic comparison of the encoded form.
package codec

import "errors"

// ErrTooLarge is returned by Encode when a value cannot be represented
// in the codec's fixed width.
var ErrTooLarge = errors.New("codec: value does not fit in fixed width")

// Codec encodes and decodes values of type T into a fixed-width byte
// window. Encode must write exactly Size() bytes into dst and Decode
// must read exactly Size() bytes from src; neither may retain a
// reference to the slice it was given.
type Codec[T any] interface {
	// Size is the fixed number of bytes this codec occupies.
	Size() int
	// Encode writes the fixed-width encoding of v into dst, which is
	// exactly Size() bytes long.
	Encode(dst []byte, v T) error
	// Decode reconstructs a T from src, which is exactly Size() bytes
	// long.
	Decode(src []byte) T
}
