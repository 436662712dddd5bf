package codec

import "encoding/binary"

// Signed integer codecs add an offset of 1<<(width-1) before encoding so
// that lexicographic byte comparison of the encoded form matches
// numeric comparison of the original value: the smallest representable
// value maps to the all-zero encoding and the largest maps to the
// all-ones encoding, with zero landing in the middle. Unsigned codecs
// need no offset; byte-wise big-endian comparison already matches
// numeric order for unsigned integers.

// Uint64Codec encodes a uint64 as 8 big-endian bytes.
type Uint64Codec struct{}

func (Uint64Codec) Size() int { return 8 }

func (Uint64Codec) Encode(dst []byte, v uint64) error {
	binary.BigEndian.PutUint64(dst, v)
	return nil
}

func (Uint64Codec) Decode(src []byte) uint64 {
	return binary.BigEndian.Uint64(src)
}

// Int64Codec encodes an int64 as 8 big-endian bytes, offset by 1<<63 so
// that encoded order matches numeric order.
type Int64Codec struct{}

func (Int64Codec) Size() int { return 8 }

const int64Offset = uint64(1) << 63

func (Int64Codec) Encode(dst []byte, v int64) error {
	binary.BigEndian.PutUint64(dst, uint64(v)+int64Offset)
	return nil
}

func (Int64Codec) Decode(src []byte) int64 {
	return int64(binary.BigEndian.Uint64(src) - int64Offset)
}

// Uint32Codec encodes a uint32 as 4 big-endian bytes.
type Uint32Codec struct{}

func (Uint32Codec) Size() int { return 4 }

func (Uint32Codec) Encode(dst []byte, v uint32) error {
	binary.BigEndian.PutUint32(dst, v)
	return nil
}

func (Uint32Codec) Decode(src []byte) uint32 {
	return binary.BigEndian.Uint32(src)
}

// Int32Codec encodes an int32 as 4 big-endian bytes, offset by 1<<31.
type Int32Codec struct{}

func (Int32Codec) Size() int { return 4 }

const int32Offset = uint32(1) << 31

func (Int32Codec) Encode(dst []byte, v int32) error {
	binary.BigEndian.PutUint32(dst, uint32(v)+int32Offset)
	return nil
}

func (Int32Codec) Decode(src []byte) int32 {
	return int32(binary.BigEndian.Uint32(src) - int32Offset)
}

// Uint16Codec encodes a uint16 as 2 big-endian bytes.
type Uint16Codec struct{}

func (Uint16Codec) Size() int { return 2 }

func (Uint16Codec) Encode(dst []byte, v uint16) error {
	binary.BigEndian.PutUint16(dst, v)
	return nil
}

func (Uint16Codec) Decode(src []byte) uint16 {
	return binary.BigEndian.Uint16(src)
}

// Int16Codec encodes an int16 as 2 big-endian bytes, offset by 1<<15.
type Int16Codec struct{}

func (Int16Codec) Size() int { return 2 }

const int16Offset = uint16(1) << 15

func (Int16Codec) Encode(dst []byte, v int16) error {
	binary.BigEndian.PutUint16(dst, uint16(v)+int16Offset)
	return nil
}

func (Int16Codec) Decode(src []byte) int16 {
	return int16(binary.BigEndian.Uint16(src) - int16Offset)
}

// Uint8Codec encodes a uint8 as a single byte.
type Uint8Codec struct{}

func (Uint8Codec) Size() int { return 1 }

func (Uint8Codec) Encode(dst []byte, v uint8) error {
	dst[0] = v
	return nil
}

func (Uint8Codec) Decode(src []byte) uint8 { return src[0] }

// Int8Codec encodes an int8 as a single byte, offset by 1<<7.
type Int8Codec struct{}

func (Int8Codec) Size() int { return 1 }

const int8Offset = uint8(1) << 7

func (Int8Codec) Encode(dst []byte, v int8) error {
	dst[0] = uint8(v) + int8Offset
	return nil
}

func (Int8Codec) Decode(src []byte) int8 {
	return int8(src[0] - int8Offset)
}
