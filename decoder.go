// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package der

// DefaultMaxDepth is the nesting depth limit of a [Decoder] that has not been
// configured via [Decoder.SetMaxDepth].
const DefaultMaxDepth = 32

// A Decoder is a cursor over a DER-encoded byte slice. Decoded values borrow
// their content from the input slice, so the input must not be modified while
// decoded values are in use.
//
// A Decoder can only be used by a single goroutine at a time. Decoding a
// constructed data value creates a nested Decoder scoped to its content
// octets; errors from nested Decoders report offsets relative to the original
// input.
type Decoder struct {
	buf []byte
	pos int

	base      int // offset of buf[0] within the original input
	depth     int
	maxLength Length
	maxDepth  int
}

// NewDecoder returns a Decoder reading from data. The Decoder uses
// [DefaultMaxLength] and [DefaultMaxDepth] as its resource limits.
func NewDecoder(data []byte) *Decoder {
	return &Decoder{buf: data, maxLength: DefaultMaxLength, maxDepth: DefaultMaxDepth}
}

// subDecoder returns a Decoder scoped to content, reporting offsets relative
// to the original input. It is used for data values that are decoded outside
// of an enclosing Decoder, such as the content of an [Any].
func subDecoder(content []byte, offset int) *Decoder {
	return &Decoder{buf: content, base: offset, maxLength: DefaultMaxLength, maxDepth: DefaultMaxDepth}
}

// SetMaxLength limits the length any single data value may declare. Lengths
// exceeding n are rejected with [KindOverflow]. The limit is inherited by
// nested Decoders.
func (d *Decoder) SetMaxLength(n Length) {
	d.maxLength = n
}

// SetMaxDepth limits the nesting depth of constructed data values. Exceeding
// the limit is reported as [KindOverflow]. The limit is inherited by nested
// Decoders.
func (d *Decoder) SetMaxDepth(n int) {
	d.maxDepth = n
}

// Offset returns the current position of d as a byte offset into the original
// input.
func (d *Decoder) Offset() int {
	return d.base + d.pos
}

// IsFinished reports whether d has consumed all of its input.
func (d *Decoder) IsFinished() bool {
	return d.pos == len(d.buf)
}

// byte consumes and returns the next input byte.
func (d *Decoder) byte() (byte, error) {
	if d.pos >= len(d.buf) {
		return 0, newError(KindTruncated, d.Offset())
	}
	b := d.buf[d.pos]
	d.pos++
	return b, nil
}

// bytes consumes the next n input bytes and returns them together with their
// absolute offset. The returned slice aliases the input buffer.
func (d *Decoder) bytes(n Length) ([]byte, int, error) {
	if uint64(n) > uint64(len(d.buf)-d.pos) {
		return nil, 0, newError(KindTruncated, d.Offset())
	}
	offset := d.Offset()
	b := d.buf[d.pos : d.pos+int(n)]
	d.pos += int(n)
	return b, offset, nil
}

// PeekHeader decodes the header of the next data value without advancing d.
func (d *Decoder) PeekHeader() (Header, error) {
	c := *d
	return decodeHeader(&c)
}

// Decode decodes the next data value into v. If the tag of the data value is
// not acceptable to v, Decode fails with [KindUnexpectedTag] without consuming
// any input, so that a different type may be tried.
func (d *Decoder) Decode(v DerDecoder) error {
	start := d.Offset()
	c := *d
	h, err := decodeHeader(&c)
	if err != nil {
		return err
	}
	if !match(v, h.Tag) {
		return errorf(KindUnexpectedTag, start, "expected %v, found %v", v.DerTag(), h.Tag)
	}
	*d = c
	content, offset, err := d.bytes(h.Length)
	if err != nil {
		return newError(KindTruncated, start)
	}
	return v.DerDecode(h, content, offset)
}

// Sequence decodes a SEQUENCE data value. f is called with a nested Decoder
// scoped to the content octets of the SEQUENCE. If f does not consume the
// content octets exactly, Sequence fails with [KindLength].
func (d *Decoder) Sequence(f func(*Decoder) error) error {
	return d.constructed(Tag{Class: ClassUniversal, Constructed: true, Number: TagSequence}, f)
}

// Set decodes a SET or SET OF data value. f is called with a nested Decoder
// scoped to the content octets. Decoding imposes no order requirement on the
// elements; DER ordering is enforced during encoding only.
func (d *Decoder) Set(f func(*Decoder) error) error {
	return d.constructed(Tag{Class: ClassUniversal, Constructed: true, Number: TagSet}, f)
}

// SetOf decodes a SET OF data value with a homogeneous element type. f is
// called once per element until the content octets are exhausted.
func (d *Decoder) SetOf(f func(*Decoder) error) error {
	return d.Set(func(in *Decoder) error {
		for !in.IsFinished() {
			if err := f(in); err != nil {
				return err
			}
		}
		return nil
	})
}

// constructed decodes a constructed data value with the given tag and calls f
// with a nested Decoder scoped to its content octets.
func (d *Decoder) constructed(want Tag, f func(*Decoder) error) error {
	start := d.Offset()
	c := *d
	h, err := decodeHeader(&c)
	if err != nil {
		return err
	}
	if h.Tag != want {
		return errorf(KindUnexpectedTag, start, "expected %v, found %v", want, h.Tag)
	}
	if d.depth+1 > d.maxDepth {
		return errorf(KindOverflow, start, "nesting depth exceeds limit of %d", d.maxDepth)
	}
	*d = c
	content, offset, err := d.bytes(h.Length)
	if err != nil {
		return newError(KindTruncated, start)
	}
	in := &Decoder{
		buf:       content,
		base:      offset,
		depth:     d.depth + 1,
		maxLength: d.maxLength,
		maxDepth:  d.maxDepth,
	}
	if err := f(in); err != nil {
		return err
	}
	if !in.IsFinished() {
		return errorf(KindLength, in.Offset(), "%v: %d unconsumed content bytes", h.Tag, len(in.buf)-in.pos)
	}
	return nil
}

// DecodeOptional decodes the next data value into v if its tag is acceptable
// to v. It returns true if a value was decoded and false, with no input
// consumed, if the next tag does not match or d is finished. Use this for
// OPTIONAL elements of a SEQUENCE.
func (d *Decoder) DecodeOptional(v DerDecoder) (bool, error) {
	if d.IsFinished() {
		return false, nil
	}
	h, err := d.PeekHeader()
	if err != nil {
		return false, err
	}
	if !match(v, h.Tag) {
		return false, nil
	}
	return true, d.Decode(v)
}

// An Alternative is one variant of a CHOICE. Match reports whether the
// variant accepts a data value with the given tag; Decode decodes it.
type Alternative struct {
	Match  func(Tag) bool
	Decode func(*Decoder) error
}

// Alt returns an [Alternative] that decodes into v.
func Alt(v DerDecoder) Alternative {
	return Alternative{
		Match:  func(t Tag) bool { return match(v, t) },
		Decode: func(d *Decoder) error { return d.Decode(v) },
	}
}

// Choice decodes a CHOICE by peeking at the tag of the next data value and
// dispatching to the first matching alternative. It returns the index of the
// alternative that was selected. If no alternative matches, Choice fails with
// [KindUnexpectedTag] without consuming any input.
func (d *Decoder) Choice(alts ...Alternative) (int, error) {
	h, err := d.PeekHeader()
	if err != nil {
		return -1, err
	}
	for i, alt := range alts {
		if alt.Match(h.Tag) {
			return i, alt.Decode(d)
		}
	}
	return -1, errorf(KindUnexpectedTag, d.Offset(), "no alternative matches %v", h.Tag)
}
