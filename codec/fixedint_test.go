package codec

import (
	"bytes"
	"sort"
	"testing"
)

func TestInt64CodecPreservesOrder(t *testing.T) {
	values := []int64{0, -1, 1, -9223372036854775808, 9223372036854775807, -42, 42}
	c := Int64Codec{}
	encoded := make([][]byte, len(values))
	for i, v := range values {
		b := make([]byte, c.Size())
		if err := c.Encode(b, v); err != nil {
			t.Fatalf("Encode(%d): %v", v, err)
		}
		encoded[i] = b
	}
	sortedIdx := make([]int, len(values))
	for i := range sortedIdx {
		sortedIdx[i] = i
	}
	sort.Slice(sortedIdx, func(a, b int) bool { return values[sortedIdx[a]] < values[sortedIdx[b]] })

	byteSorted := append([][]byte(nil), encoded...)
	sort.Slice(byteSorted, func(a, b int) bool { return bytes.Compare(byteSorted[a], byteSorted[b]) < 0 })

	for i, idx := range sortedIdx {
		if !bytes.Equal(byteSorted[i], encoded[idx]) {
			t.Fatalf("byte order mismatch at position %d: numeric order gives value %d, byte order gives a different encoding", i, values[idx])
		}
	}

	for _, v := range values {
		b := make([]byte, c.Size())
		_ = c.Encode(b, v)
		if got := c.Decode(b); got != v {
			t.Fatalf("round trip for %d: got %d", v, got)
		}
	}
}

func TestUint64CodecRoundTrip(t *testing.T) {
	c := Uint64Codec{}
	for _, v := range []uint64{0, 1, 42, 18446744073709551615} {
		b := make([]byte, c.Size())
		if err := c.Encode(b, v); err != nil {
			t.Fatalf("Encode(%d): %v", v, err)
		}
		if got := c.Decode(b); got != v {
			t.Fatalf("round trip for %d: got %d", v, got)
		}
	}
}

func TestInt32AndInt16RoundTripAndOrder(t *testing.T) {
	i32 := Int32Codec{}
	a, b := make([]byte, i32.Size()), make([]byte, i32.Size())
	_ = i32.Encode(a, -5)
	_ = i32.Encode(b, 5)
	if bytes.Compare(a, b) >= 0 {
		t.Fatalf("Int32Codec: encoding of -5 does not sort before encoding of 5")
	}
	if got := i32.Decode(a); got != -5 {
		t.Fatalf("Int32Codec round trip: got %d, want -5", got)
	}

	i16 := Int16Codec{}
	c, d := make([]byte, i16.Size()), make([]byte, i16.Size())
	_ = i16.Encode(c, -100)
	_ = i16.Encode(d, 100)
	if bytes.Compare(c, d) >= 0 {
		t.Fatalf("Int16Codec: encoding of -100 does not sort before encoding of 100")
	}
	if got := i16.Decode(c); got != -100 {
		t.Fatalf("Int16Codec round trip: got %d, want -100", got)
	}
}

func TestUint8AndInt8(t *testing.T) {
	u8 := Uint8Codec{}
	b := make([]byte, u8.Size())
	_ = u8.Encode(b, 200)
	if got := u8.Decode(b); got != 200 {
		t.Fatalf("Uint8Codec round trip: got %d, want 200", got)
	}

	i8 := Int8Codec{}
	neg, pos := make([]byte, i8.Size()), make([]byte, i8.Size())
	_ = i8.Encode(neg, -10)
	_ = i8.Encode(pos, 10)
	if bytes.Compare(neg, pos) >= 0 {
		t.Fatalf("Int8Codec: encoding of -10 does not sort before encoding of 10")
	}
}
