// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package der implements the Distinguished Encoding Rules for ASN.1 as defined
// in [Rec. ITU-T X.690]. DER is a restricted variant of BER that admits exactly
// one encoding for every value, which makes it suitable for cryptographic
// applications such as X.509 certificates and the PKCS family of standards.
//
// # Decoding
//
// Decoding operates on a byte slice in a single pass. The [Decoder] type is a
// cursor over the input; decoded values such as [OctetString] or [Any] borrow
// their content from the input slice instead of copying it. Callers that
// retain the input for the lifetime of the decoded values never pay for an
// allocation:
//
//	var n Int
//	err := der.Decode(input, &n)
//
// Constructed types are decoded through [Decoder.Sequence] and friends, which
// scope a nested Decoder to the content octets of the constructed value and
// verify that it is consumed exactly.
//
// # Encoding
//
// Encoding is a two-pass process: first the exact size of the encoding is
// computed via [DerEncoder.DerLen], then the bytes are written to a
// caller-supplied buffer. The [Encoder] never grows its buffer. [Marshal]
// combines both passes and allocates a buffer of exactly the right size.
//
// # Custom Types
//
// Types implement [DerEncoder] and [DerDecoder] to participate in encoding and
// decoding. Implementations for the common universal ASN.1 types are included
// in this package. Types whose tag acceptance is broader than a single tag
// additionally implement [DerMatcher].
//
// [Rec. ITU-T X.690]: https://www.itu.int/rec/T-REC-X.690
package der

// DerEncoder is the interface implemented by types that can encode themselves
// using the Distinguished Encoding Rules.
//
// Encoding is a two-pass process: DerLen returns the exact number of content
// octets the value will occupy and DerEncode writes exactly that many bytes to
// e. The [Encoder] verifies this promise and fails the encoding if it is
// violated. DerTag returns the tag written before the content octets. Both
// DerTag and DerLen must be pure: they may be called multiple times during a
// single encoding and must return the same result each time.
type DerEncoder interface {
	DerTag() Tag
	DerLen() (Length, error)
	DerEncode(e *Encoder) error
}

// DerDecoder is the interface implemented by types that can decode themselves
// from content octets in DER.
//
// DerDecode receives the header of the data value, its content octets, and the
// absolute byte offset of content within the original input. The content slice
// is borrowed from the input buffer: implementations may retain it (the
// standard types in this package do) but must not modify it. Implementations
// must verify that content is a valid DER encoding for their type and report
// anything else as an [Error].
//
// DerTag reports the tag the type expects. The [Decoder] rejects data values
// whose tag differs before DerDecode is called, unless the type also
// implements [DerMatcher].
type DerDecoder interface {
	DerTag() Tag
	DerDecode(h Header, content []byte, offset int) error
}

// DerMatcher can be implemented by types that implement [DerDecoder] to accept
// more than a single tag. If a type implements DerMatcher, the [Decoder]
// consults DerMatch instead of comparing tags for equality. DerMatch reports
// whether decoding a data value with tag t is expected to succeed.
type DerMatcher interface {
	DerMatch(t Tag) bool
}

// match reports whether v accepts a data value with tag t.
func match(v DerDecoder, t Tag) bool {
	if m, ok := v.(DerMatcher); ok {
		return m.DerMatch(t)
	}
	return v.DerTag() == t
}

// Decode parses a single DER data value from data into v. Decode returns an
// error if data contains anything but exactly one valid data value acceptable
// to v.
func Decode(data []byte, v DerDecoder) error {
	d := NewDecoder(data)
	if err := d.Decode(v); err != nil {
		return err
	}
	if !d.IsFinished() {
		return errorf(KindLength, d.Offset(), "%d trailing bytes after data value", len(data)-d.pos)
	}
	return nil
}

// EncodedLen returns the number of bytes the complete encoding of v occupies,
// including its tag and length octets.
func EncodedLen(v DerEncoder) (Length, error) {
	n, err := v.DerLen()
	if err != nil {
		return 0, err
	}
	hl, err := Header{v.DerTag(), n}.encodedLen()
	if err != nil {
		return 0, err
	}
	return addLength(hl, n)
}

// Encode writes the complete encoding of v into buf and returns the prefix of
// buf that was written. If buf is too small the encoding fails with
// [KindOverflow]; the buffer is never grown.
func Encode(v DerEncoder, buf []byte) ([]byte, error) {
	e := NewEncoder(buf)
	if err := e.Encode(v); err != nil {
		return nil, err
	}
	return e.Finish()
}

// Marshal returns the complete encoding of v in a newly allocated buffer of
// exactly [EncodedLen] bytes.
func Marshal(v DerEncoder) ([]byte, error) {
	n, err := EncodedLen(v)
	if err != nil {
		return nil, err
	}
	return Encode(v, make([]byte, n))
}
