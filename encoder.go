// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package der

import (
	"bytes"
	"slices"
)

// An Encoder writes DER data values into a caller-supplied buffer. The buffer
// is never grown; running out of space fails the encoding with
// [KindOverflow].
//
// Once an encoding operation fails, the Encoder is tainted: all subsequent
// operations return the first error. An Encoder can only be used by a single
// goroutine at a time.
type Encoder struct {
	buf []byte
	pos int
	err error // sticky
}

// NewEncoder returns an Encoder writing into buf.
func NewEncoder(buf []byte) *Encoder {
	return &Encoder{buf: buf}
}

// Len returns the number of bytes written so far.
func (e *Encoder) Len() int {
	return e.pos
}

// Finish returns the prefix of the buffer containing all data values written
// so far, or the first error encountered.
func (e *Encoder) Finish() ([]byte, error) {
	if e.err != nil {
		return nil, e.err
	}
	return e.buf[:e.pos], nil
}

// fail records err as the sticky error of e.
func (e *Encoder) fail(err error) error {
	if e.err == nil {
		e.err = err
	}
	return e.err
}

// writeByte appends a single byte to the buffer.
func (e *Encoder) writeByte(b byte) error {
	if e.err != nil {
		return e.err
	}
	if e.pos >= len(e.buf) {
		return e.fail(errorf(KindOverflow, e.pos, "encoding buffer is full"))
	}
	e.buf[e.pos] = b
	e.pos++
	return nil
}

// write appends p to the buffer.
func (e *Encoder) write(p []byte) error {
	if e.err != nil {
		return e.err
	}
	if len(p) > len(e.buf)-e.pos {
		return e.fail(errorf(KindOverflow, e.pos, "encoding buffer is full"))
	}
	copy(e.buf[e.pos:], p)
	e.pos += len(p)
	return nil
}

// Encode writes the complete encoding of v, consisting of its header and
// content octets. Encode verifies that v writes exactly the number of content
// octets promised by its DerLen method and fails the encoding with
// [KindLength] otherwise.
func (e *Encoder) Encode(v DerEncoder) error {
	if e.err != nil {
		return e.err
	}
	n, err := v.DerLen()
	if err != nil {
		return e.fail(err)
	}
	h := Header{v.DerTag(), n}
	if err := h.encode(e); err != nil {
		return err
	}
	start := e.pos
	if err := v.DerEncode(e); err != nil {
		return e.fail(err)
	}
	if written := Length(e.pos - start); written != n {
		return e.fail(errorf(KindLength, e.pos, "%v: promised %d content bytes, wrote %d", h.Tag, n, written))
	}
	return nil
}

// Sequence writes a SEQUENCE data value containing vs in order.
func (e *Encoder) Sequence(vs ...DerEncoder) error {
	return e.Encode(Sequence(vs))
}

// SetOf writes a SET OF data value containing vs in canonical order.
func (e *Encoder) SetOf(vs ...DerEncoder) error {
	return e.Encode(SetOf(vs))
}

// Sequence encodes its elements as an ASN.1 SEQUENCE in the order given.
// Sequence can be nested to build constructed encodings without defining a
// custom type:
//
//	der.Marshal(der.Sequence{der.Int(1), der.Sequence{der.Bool(true)}})
type Sequence []DerEncoder

func (s Sequence) DerTag() Tag {
	return Tag{Class: ClassUniversal, Constructed: true, Number: TagSequence}
}

func (s Sequence) DerLen() (Length, error) {
	var n Length
	for _, v := range s {
		l, err := EncodedLen(v)
		if err != nil {
			return 0, err
		}
		if n, err = addLength(n, l); err != nil {
			return 0, err
		}
	}
	return n, nil
}

func (s Sequence) DerEncode(e *Encoder) error {
	for _, v := range s {
		if err := e.Encode(v); err != nil {
			return err
		}
	}
	return nil
}

// SetOf encodes its elements as an ASN.1 SET OF. DER requires the elements of
// a SET OF to appear in ascending order of their encoded bytes, so SetOf
// encodes each element separately and sorts the encodings before writing them.
// Duplicate elements are kept.
type SetOf []DerEncoder

func (s SetOf) DerTag() Tag {
	return Tag{Class: ClassUniversal, Constructed: true, Number: TagSet}
}

func (s SetOf) DerLen() (Length, error) {
	var n Length
	for _, v := range s {
		l, err := EncodedLen(v)
		if err != nil {
			return 0, err
		}
		if n, err = addLength(n, l); err != nil {
			return 0, err
		}
	}
	return n, nil
}

func (s SetOf) DerEncode(e *Encoder) error {
	encoded := make([][]byte, len(s))
	for i, v := range s {
		b, err := Marshal(v)
		if err != nil {
			return err
		}
		encoded[i] = b
	}
	slices.SortFunc(encoded, bytes.Compare)
	for _, b := range encoded {
		if err := e.write(b); err != nil {
			return err
		}
	}
	return nil
}
