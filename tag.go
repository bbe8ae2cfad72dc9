// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package der

import (
	"errors"
	"strconv"
	"strings"

	"codello.dev/der/internal/vlq"
)

// Class holds the class part of an ASN.1 tag. The class acts as a namespace
// for the tag number. A Class value is an unsigned 2-bit integer. Class values
// whose value exceeds 2 bits are invalid.
//
//go:generate go run golang.org/x/tools/cmd/stringer -type=Class -trimprefix=Class
type Class uint8

// Predefined [Class] constants. These are all the possible values that can be
// encoded in the [Class] type.
const (
	ClassUniversal Class = iota
	ClassApplication
	ClassContextSpecific
	ClassPrivate
)

// IsValid reports whether c is a valid Class value.
func (c Class) IsValid() bool {
	return c <= 3
}

// Tag constitutes an ASN.1 tag as found in the identifier octets of a data
// value encoding, consisting of its class, number, and the primitive or
// constructed flag. For details see Section 8.1.2 of Rec. ITU-T X.690.
//
// Two tags are equal if their class, number, and constructed flag are equal.
// DER primitives always use the primitive form, so the tag of a universal
// primitive type has Constructed set to false.
type Tag struct {
	Class       Class
	Constructed bool
	Number      uint32
}

// String returns a string representation of t in a format similar to the one
// used in ASN.1 notation. The tag number is enclosed by square brackets and
// prefixed with the class used. To avoid ambiguity the UNIVERSAL word is used
// for universal tags, although this is not valid ASN.1 syntax.
func (t Tag) String() string {
	if t.Class == ClassContextSpecific {
		return "[" + strconv.FormatUint(uint64(t.Number), 10) + "]"
	}
	return "[" + strings.ToUpper(t.Class.String()) + " " + strconv.FormatUint(uint64(t.Number), 10) + "]"
}

// These are the ASN.1 tag numbers in the [ClassUniversal] namespace that are
// relevant for DER. The assignments are defined in Rec. ITU-T X.680, Section
// 8, Table 1.
const (
	TagBoolean         uint32 = 1
	TagInteger         uint32 = 2
	TagBitString       uint32 = 3
	TagOctetString     uint32 = 4
	TagNull            uint32 = 5
	TagOID             uint32 = 6
	TagEnumerated      uint32 = 10
	TagUTF8String      uint32 = 12
	TagSequence        uint32 = 16
	TagSet             uint32 = 17
	TagPrintableString uint32 = 19
	TagIA5String       uint32 = 22
	TagUTCTime         uint32 = 23
	TagGeneralizedTime uint32 = 24
)

// encodedLen returns the number of identifier octets needed to encode t.
func (t Tag) encodedLen() Length {
	if t.Number < 0x1f {
		return 1
	}
	return Length(1 + vlq.Length(t.Number))
}

// encode writes the identifier octets of t to e. Tag numbers 31 and above use
// the high tag number form with a minimal base-128 encoding.
func (t Tag) encode(e *Encoder) error {
	b := byte(t.Class) << 6
	if t.Constructed {
		b |= 0x20
	}
	if t.Number < 0x1f {
		return e.writeByte(b | byte(t.Number))
	}
	if err := e.writeByte(b | 0x1f); err != nil {
		return err
	}
	var buf [5]byte
	return e.write(vlq.Append(buf[:0], t.Number))
}

// decodeTag reads the identifier octets of a data value encoding from d. DER
// requires the high tag number form to be minimal and to only be used for tag
// numbers 31 and above.
func decodeTag(d *Decoder) (Tag, error) {
	start := d.Offset()
	b, err := d.byte()
	if err != nil {
		return Tag{}, err
	}
	t := Tag{
		Class:       Class(b >> 6),
		Constructed: b&0x20 != 0,
		Number:      uint32(b & 0x1f),
	}
	if b&0x1f == 0x1f {
		n, size, err := vlq.DecodeMinimal[uint32](d.buf[d.pos:])
		switch {
		case errors.Is(err, vlq.ErrNotMinimal):
			return Tag{}, errorf(KindEncoding, start, "tag number is not minimally encoded")
		case errors.Is(err, vlq.ErrOverflow):
			return Tag{}, errorf(KindOverflow, start, "tag number does not fit in 32 bits")
		case err != nil:
			return Tag{}, newError(KindTruncated, start)
		}
		d.pos += size
		if n < 0x1f {
			return Tag{}, errorf(KindEncoding, start, "tag number %d must use the low tag number form", n)
		}
		t.Number = n
	}
	return t, nil
}
