// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package der

import "math"

// Length is the number of content octets of a data value encoding. Lengths are
// limited to 32 bits; encodings declaring a larger length are rejected with
// [KindOverflow]. The indefinite length form is not valid in DER.
type Length uint32

// DefaultMaxLength is the length limit of a [Decoder] that has not been
// configured via [Decoder.SetMaxLength].
const DefaultMaxLength Length = 1 << 20 // 1 MiB

// addLength returns a + b, reporting [KindOverflow] if the sum does not fit in
// a Length.
func addLength(a, b Length) (Length, error) {
	if a > math.MaxUint32-b {
		return 0, errorf(KindOverflow, 0, "length overflow")
	}
	return a + b, nil
}

// lengthOf converts the length of a Go slice to a [Length].
func lengthOf(n int) (Length, error) {
	if uint64(n) > math.MaxUint32 {
		return 0, errorf(KindOverflow, 0, "value of %d bytes does not fit in 32 bits", n)
	}
	return Length(n), nil
}

// encodedLen returns the number of length octets needed to encode l.
func (l Length) encodedLen() Length {
	switch {
	case l < 0x80:
		return 1
	case l < 0x100:
		return 2
	case l < 0x10000:
		return 3
	case l < 0x1000000:
		return 4
	default:
		return 5
	}
}

// encode writes the length octets for l to e using the minimal DER form.
func (l Length) encode(e *Encoder) error {
	if l < 0x80 {
		return e.writeByte(byte(l))
	}
	numBytes := int(l.encodedLen()) - 1
	if err := e.writeByte(0x80 | byte(numBytes)); err != nil {
		return err
	}
	for i := numBytes - 1; i >= 0; i-- {
		if err := e.writeByte(byte(l >> (8 * i))); err != nil {
			return err
		}
	}
	return nil
}

// decodeLength reads the length octets of a data value encoding from d. The
// indefinite form and non-minimal long forms are rejected, as is any length
// exceeding the limit configured on d.
func decodeLength(d *Decoder) (Length, error) {
	start := d.Offset()
	b, err := d.byte()
	if err != nil {
		return 0, err
	}
	var n Length
	switch {
	case b < 0x80:
		n = Length(b)
	case b == 0x80:
		return 0, errorf(KindLength, start, "indefinite length is not allowed in DER")
	default:
		numBytes := int(b & 0x7f)
		if numBytes > 4 {
			return 0, errorf(KindOverflow, start, "length does not fit in 32 bits")
		}
		for range numBytes {
			if b, err = d.byte(); err != nil {
				return 0, newError(KindTruncated, start)
			}
			n = n<<8 | Length(b)
		}
		// X.690 Section 10.1: the length must use the minimum number of
		// octets.
		if n < 0x80 || numBytes > 1 && n>>(8*(numBytes-1)) == 0 {
			return 0, errorf(KindLength, start, "length is not minimally encoded")
		}
	}
	if n > d.maxLength {
		return 0, errorf(KindOverflow, start, "length %d exceeds limit of %d", n, d.maxLength)
	}
	return n, nil
}
