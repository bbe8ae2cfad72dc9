// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package der

// ContextSpecific is a raw context-specific field: its tag number together
// with its lazily decoded inner value. It represents the EXPLICIT framing
// where the content octets of the context-specific data value hold one
// complete nested data value. Use ContextSpecific when the tag number decides
// how the inner value is interpreted, for example in extension-style open
// types.
type ContextSpecific struct {
	Number uint32
	Value  Any
}

func (c ContextSpecific) DerTag() Tag {
	return Tag{Class: ClassContextSpecific, Constructed: true, Number: c.Number}
}

// DerMatch reports whether t is a constructed context-specific tag of any
// number.
func (ContextSpecific) DerMatch(t Tag) bool {
	return t.Class == ClassContextSpecific && t.Constructed
}

func (c ContextSpecific) DerLen() (Length, error) {
	return EncodedLen(c.Value)
}

func (c ContextSpecific) DerEncode(e *Encoder) error {
	return e.Encode(c.Value)
}

func (c *ContextSpecific) DerDecode(h Header, content []byte, offset int) error {
	if h.Tag.Class != ClassContextSpecific || !h.Tag.Constructed {
		return errorf(KindUnexpectedTag, offset, "expected a constructed context-specific tag, found %v", h.Tag)
	}
	c.Number = h.Tag.Number
	d := subDecoder(content, offset)
	if err := d.Decode(&c.Value); err != nil {
		return err
	}
	if !d.IsFinished() {
		return errorf(KindLength, d.Offset(), "%v: %d unconsumed content bytes", h.Tag, len(d.buf)-d.pos)
	}
	return nil
}

// Explicit wraps v in an explicitly tagged context-specific data value with
// the given tag number. The encoding of v, including its own tag and length,
// becomes the content of the wrapper.
func Explicit(number uint32, v DerEncoder) DerEncoder {
	return explicitValue{number, v}
}

type explicitValue struct {
	number uint32
	value  DerEncoder
}

func (x explicitValue) DerTag() Tag {
	return Tag{Class: ClassContextSpecific, Constructed: true, Number: x.number}
}

func (x explicitValue) DerLen() (Length, error) {
	return EncodedLen(x.value)
}

func (x explicitValue) DerEncode(e *Encoder) error {
	return e.Encode(x.value)
}

// Implicit re-tags v with a context-specific tag of the given number. The
// content octets of v are encoded unchanged; only the tag is replaced. The
// constructed flag of the original tag is preserved.
func Implicit(number uint32, v DerEncoder) DerEncoder {
	return implicitValue{number, v}
}

type implicitValue struct {
	number uint32
	value  DerEncoder
}

func (x implicitValue) DerTag() Tag {
	return Tag{Class: ClassContextSpecific, Constructed: x.value.DerTag().Constructed, Number: x.number}
}

func (x implicitValue) DerLen() (Length, error) {
	return x.value.DerLen()
}

func (x implicitValue) DerEncode(e *Encoder) error {
	return x.value.DerEncode(e)
}

// DecodeExplicit decodes an OPTIONAL explicitly tagged field with the given
// tag number into v. It returns true if the field was present. If the next
// data value carries a different tag or d is finished, DecodeExplicit returns
// false and consumes no input.
func DecodeExplicit(d *Decoder, number uint32, v DerDecoder) (bool, error) {
	if d.IsFinished() {
		return false, nil
	}
	h, err := d.PeekHeader()
	if err != nil {
		return false, err
	}
	want := Tag{Class: ClassContextSpecific, Constructed: true, Number: number}
	if h.Tag != want {
		return false, nil
	}
	return true, d.constructed(want, func(in *Decoder) error {
		return in.Decode(v)
	})
}

// DecodeImplicit decodes an OPTIONAL implicitly tagged field with the given
// tag number into v. The content octets are decoded according to v; only the
// tag differs from the untagged encoding. It returns true if the field was
// present. If the next data value carries a different tag or d is finished,
// DecodeImplicit returns false and consumes no input.
func DecodeImplicit(d *Decoder, number uint32, v DerDecoder) (bool, error) {
	if d.IsFinished() {
		return false, nil
	}
	h, err := d.PeekHeader()
	if err != nil {
		return false, err
	}
	want := Tag{Class: ClassContextSpecific, Constructed: v.DerTag().Constructed, Number: number}
	if h.Tag != want {
		return false, nil
	}
	start := d.Offset()
	c := *d
	h, err = decodeHeader(&c)
	if err != nil {
		return false, err
	}
	*d = c
	content, offset, err := d.bytes(h.Length)
	if err != nil {
		return true, newError(KindTruncated, start)
	}
	return true, v.DerDecode(h, content, offset)
}
