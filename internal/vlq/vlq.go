// Package vlq implements [Variable-length quantity] encoding as used in MIDI or
// BER. A VLQ is essentially a base-128 representation of an unsigned integer
// with the addition of the eighth bit to mark continuation of bytes. VLQ is
// identical to [LEB128] except in endianness.
//
// [Variable-length quantity]: https://en.wikipedia.org/wiki/Variable-length_quantity
// [LEB128]: https://en.wikipedia.org/wiki/LEB128
package vlq

import (
	"errors"
	"math/bits"
	"unsafe"
)

var (
	ErrTruncated  = errors.New("vlq is truncated")
	ErrNotMinimal = errors.New("vlq is not minimally encoded")
	ErrOverflow   = errors.New("vlq too large for target type")
)

// Decode parses an unsigned VLQ from the beginning of b. It returns the
// decoded value and the number of bytes it occupies. The maximum allowed value
// is limited by the size of T.
//
// Decode accepts an arbitrary amount of leading zeros (encoded as 0x80 bytes).
// Use [DecodeMinimal] to parse a minimally-encoded VLQ.
func Decode[T ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64](b []byte) (T, int, error) {
	return decode[T](b, false)
}

// DecodeMinimal works like [Decode] but returns [ErrNotMinimal] if the VLQ is
// not minimally encoded (i.e. if it starts with a 0x80 byte).
func DecodeMinimal[T ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64](b []byte) (T, int, error) {
	return decode[T](b, true)
}

// decode implements [Decode] and [DecodeMinimal]. If minimal is true, the
// encoded VLQ must be minimally encoded.
func decode[T ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64](b []byte, minimal bool) (ret T, n int, err error) {
	if len(b) == 0 {
		return 0, 0, ErrTruncated
	}
	c := b[0]
	if c == 0x80 && minimal {
		return 0, 0, ErrNotMinimal
	}
	n = 1
	ret = T(c & 0x7f)
	numBits := bits.Len8(c & 0x7f)

	for c&0x80 != 0 {
		if n == len(b) {
			return 0, n, ErrTruncated
		}
		c = b[n]
		n++
		ret <<= 7
		ret |= T(c & 0x7f)

		if numBits == 0 {
			numBits = bits.Len8(c & 0x7f)
		} else {
			numBits += 7
		}
		if numBits > int(unsafe.Sizeof(ret)*8) {
			return 0, n, ErrOverflow
		}
	}
	return ret, n, nil
}

// Length returns the number of bytes needed to encode n as a VLQ.
func Length[T ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64](n T) int {
	if n == 0 {
		return 1
	}
	l := 0
	for i := n; i > 0; i >>= 7 {
		l++
	}
	return l
}

// Append appends the minimal VLQ encoding of v to dst and returns the extended
// slice.
func Append[T ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64](dst []byte, v T) []byte {
	l := Length(v)
	for j := l - 1; j >= 0; j-- {
		b := byte(v>>(j*7)) & 0x7f
		if j > 0 {
			b |= 0x80
		}
		dst = append(dst, b)
	}
	return dst
}
