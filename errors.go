// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package der

import (
	"fmt"
	"strconv"
)

// ErrorKind classifies the errors reported by this package. An ErrorKind is
// itself an error and can be used as a target for [errors.Is]:
//
//	if errors.Is(err, der.KindTruncated) { ... }
//
//go:generate go run golang.org/x/tools/cmd/stringer -type=ErrorKind -trimprefix=Kind
type ErrorKind uint8

const (
	// KindTruncated indicates that the input ended before the end of a data
	// value.
	KindTruncated ErrorKind = iota + 1
	// KindOverflow indicates that a value exceeds the limits of this package
	// or the configured resource limits of a [Decoder], or that an [Encoder]
	// ran out of buffer space.
	KindOverflow
	// KindUnexpectedTag indicates that a data value was encountered whose tag
	// does not match the expected tag.
	KindUnexpectedTag
	// KindLength indicates invalid length octets or a length that does not
	// match the content of a data value.
	KindLength
	// KindEncoding indicates content octets that are not valid DER for the
	// type identified by the tag. This includes encodings that are valid BER
	// but not canonical.
	KindEncoding
	// KindMalformedOID indicates an OBJECT IDENTIFIER whose content octets or
	// arc values are invalid.
	KindMalformedOID
	// KindUnknownOID indicates an OBJECT IDENTIFIER that could not be resolved
	// against a registry. This kind is never produced by this package; it is
	// defined for callers that map decoded identifiers to known values.
	KindUnknownOID
)

// Error implements the error interface. The returned message describes the
// kind in general terms; the [Error] type carries location and detail.
func (k ErrorKind) Error() string {
	switch k {
	case KindTruncated:
		return "der: unexpected end of input"
	case KindOverflow:
		return "der: value exceeds supported limits"
	case KindUnexpectedTag:
		return "der: unexpected tag"
	case KindLength:
		return "der: invalid length"
	case KindEncoding:
		return "der: encoding is not valid DER"
	case KindMalformedOID:
		return "der: malformed object identifier"
	case KindUnknownOID:
		return "der: unknown object identifier"
	default:
		return "der: error kind " + strconv.Itoa(int(k))
	}
}

// Error describes a failure to encode or decode DER data. Every Error has a
// Kind and the byte offset at which the failure was detected. During decoding
// the offset is relative to the beginning of the original input, even for
// errors inside nested data values.
type Error struct {
	Kind ErrorKind
	Err  error // optional detail

	// ByteOffset is the location of the error. For most decoding errors this
	// is the offset of the header of the offending data value.
	ByteOffset int
}

func (e *Error) Error() string {
	b := []byte(e.Kind.Error())
	if e.ByteOffset > 0 {
		b = strconv.AppendInt(append(b, " at offset "...), int64(e.ByteOffset), 10)
	}
	if e.Err != nil {
		b = append(b, ": "...)
		b = append(b, e.Err.Error()...)
	}
	return string(b)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether e matches target. An [Error] matches its own [ErrorKind].
func (e *Error) Is(target error) bool {
	k, ok := target.(ErrorKind)
	return ok && e.Kind == k
}

// newError returns an [Error] of the given kind at the given offset.
func newError(kind ErrorKind, offset int) *Error {
	return &Error{Kind: kind, ByteOffset: offset}
}

// errorf returns an [Error] of the given kind whose detail is formatted from
// format and args.
func errorf(kind ErrorKind, offset int, format string, args ...any) *Error {
	return &Error{Kind: kind, ByteOffset: offset, Err: fmt.Errorf(format, args...)}
}
