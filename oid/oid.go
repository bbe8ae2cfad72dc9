// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package oid implements ASN.1 OBJECT IDENTIFIER values: dotted-decimal
// notation, arc validation, and the base-128 arc encoding used inside the
// content octets of a DER OBJECT IDENTIFIER. The tag and length framing of a
// complete data value is handled by [codello.dev/der].
package oid

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"codello.dev/der/internal/vlq"
)

// ErrMalformed is wrapped by every error reported by this package.
var ErrMalformed = errors.New("malformed object identifier")

// An ObjectIdentifier represents an ASN.1 OBJECT IDENTIFIER as its sequence of
// arcs. The semantics of an object identifier are specified in [Rec. ITU-T
// X.660]. Arc values are limited to 32 bits.
//
// A valid ObjectIdentifier has at least two arcs, a first arc of 0, 1, or 2,
// and a second arc below 40 unless the first arc is 2.
//
// [Rec. ITU-T X.660]: https://www.itu.int/rec/T-REC-X.660
type ObjectIdentifier []uint32

// IsValid reports whether o satisfies the structural constraints of an OBJECT
// IDENTIFIER.
func (o ObjectIdentifier) IsValid() bool {
	if len(o) < 2 || o[0] > 2 {
		return false
	}
	return o[0] == 2 || o[1] <= 39
}

// Equal reports whether o and other represent the same identifier.
func (o ObjectIdentifier) Equal(other ObjectIdentifier) bool {
	return slices.Equal(o, other)
}

// String returns the dot-separated notation of o.
func (o ObjectIdentifier) String() string {
	var s strings.Builder
	s.Grow(32)

	buf := make([]byte, 0, 19)
	for i, v := range o {
		if i > 0 {
			s.WriteByte('.')
		}
		s.Write(strconv.AppendUint(buf, uint64(v), 10))
	}

	return s.String()
}

// Parse parses the dot-separated notation of an OBJECT IDENTIFIER, e.g.
// "1.2.840.113549".
func Parse(s string) (ObjectIdentifier, error) {
	if s == "" {
		return nil, fmt.Errorf("%w: empty string", ErrMalformed)
	}
	o := make(ObjectIdentifier, 0, strings.Count(s, ".")+1)
	for part := range strings.SplitSeq(s, ".") {
		v, err := strconv.ParseUint(part, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a valid arc", ErrMalformed, part)
		}
		o = append(o, uint32(v))
	}
	if !o.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrMalformed, o)
	}
	return o, nil
}

// EncodedLen returns the number of bytes the arc encoding of o occupies.
func (o ObjectIdentifier) EncodedLen() (int, error) {
	if !o.IsValid() {
		return 0, fmt.Errorf("%w: %s", ErrMalformed, o)
	}
	n := vlq.Length(uint64(o[0])*40 + uint64(o[1]))
	for _, arc := range o[2:] {
		n += vlq.Length(arc)
	}
	return n, nil
}

// AppendDER appends the arc encoding of o to dst. The first two arcs are
// packed into a single subidentifier as defined in Section 8.19 of Rec. ITU-T
// X.690.
func (o ObjectIdentifier) AppendDER(dst []byte) ([]byte, error) {
	if !o.IsValid() {
		return dst, fmt.Errorf("%w: %s", ErrMalformed, o)
	}
	dst = vlq.Append(dst, uint64(o[0])*40+uint64(o[1]))
	for _, arc := range o[2:] {
		dst = vlq.Append(dst, arc)
	}
	return dst, nil
}

// DER returns the arc encoding of o in a new slice. These are the content
// octets of an OBJECT IDENTIFIER data value, without tag and length.
func (o ObjectIdentifier) DER() ([]byte, error) {
	n, err := o.EncodedLen()
	if err != nil {
		return nil, err
	}
	return o.AppendDER(make([]byte, 0, n))
}

// FromDER parses the content octets of an OBJECT IDENTIFIER data value. Every
// subidentifier must be minimally encoded.
func FromDER(b []byte) (ObjectIdentifier, error) {
	if len(b) == 0 {
		return nil, fmt.Errorf("%w: empty encoding", ErrMalformed)
	}
	o := make(ObjectIdentifier, 0, len(b)+1)
	for len(b) > 0 {
		v, n, err := vlq.DecodeMinimal[uint64](b)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
		b = b[n:]
		if len(o) == 0 {
			// The first subidentifier packs the first two arcs.
			switch {
			case v < 40:
				o = append(o, 0, uint32(v))
			case v < 80:
				o = append(o, 1, uint32(v-40))
			case v-80 <= math.MaxUint32:
				o = append(o, 2, uint32(v-80))
			default:
				return nil, fmt.Errorf("%w: arc does not fit in 32 bits", ErrMalformed)
			}
		} else {
			if v > math.MaxUint32 {
				return nil, fmt.Errorf("%w: arc does not fit in 32 bits", ErrMalformed)
			}
			o = append(o, uint32(v))
		}
	}
	return o, nil
}
