package codec

import "golang.org/x/text/unicode/norm"

// FixedString encodes strings into a fixed-width window by normalizing
// to Unicode NFC and storing the UTF-8 bytes left-justified, zero
// padded. It is grounded on the normalize-then-store approach used
// throughout the pack for string keys, adapted here to the caller-sized
// window a forest node requires instead of an unbounded allocation.
//
// Zero-padding keeps lexicographic ordering consistent with the
// "shorter string compares first" rule for any two strings that do not
// themselves contain NUL bytes, since 0x00 cannot appear inside a
// multi-byte UTF-8 sequence's continuation or lead bytes other than to
// encode NUL itself.
type FixedString struct {
	Width int
}

func (c FixedString) Size() int { return c.Width }

func (c FixedString) Encode(dst []byte, v string) error {
	s := norm.NFC.String(v)
	b := []byte(s)
	if len(b) > c.Width {
		return ErrTooLarge
	}
	n := copy(dst, b)
	for i := n; i < c.Width; i++ {
		dst[i] = 0
	}
	return nil
}

func (c FixedString) Decode(src []byte) string {
	end := len(src)
	for end > 0 && src[end-1] == 0 {
		end--
	}
	return string(src[:end])
}
