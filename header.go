// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package der

import "strconv"

// Header represents the identifier and length octets of a data value
// encoding. The Length indicates the number of content octets that follow the
// header.
type Header struct {
	Tag    Tag
	Length Length
}

// String returns a readable representation of h for use in diagnostics.
func (h Header) String() string {
	return h.Tag.String() + " of length " + strconv.FormatUint(uint64(h.Length), 10)
}

// encodedLen returns the number of bytes needed to encode h. The encode method
// writes this exact number of bytes.
func (h Header) encodedLen() (Length, error) {
	return addLength(h.Tag.encodedLen(), h.Length.encodedLen())
}

// encode writes the identifier and length octets of h to e.
func (h Header) encode(e *Encoder) error {
	if err := h.Tag.encode(e); err != nil {
		return err
	}
	return h.Length.encode(e)
}

// decodeHeader reads the identifier and length octets of a data value encoding
// from d. If the encoding is invalid an error is returned. decodeHeader does
// not read past the header and does not verify that the declared content
// octets are present.
func decodeHeader(d *Decoder) (Header, error) {
	t, err := decodeTag(d)
	if err != nil {
		return Header{}, err
	}
	l, err := decodeLength(d)
	if err != nil {
		return Header{}, err
	}
	return Header{Tag: t, Length: l}, nil
}
