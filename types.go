// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package der

import (
	"math/big"
	"time"
	"unicode/utf8"

	"codello.dev/der/oid"
)

//region [UNIVERSAL 1] BOOLEAN

// Bool implements the ASN.1 BOOLEAN type. DER admits exactly two encodings:
// 0x00 for FALSE and 0xFF for TRUE. Anything else is rejected during decoding.
type Bool bool

func (Bool) DerTag() Tag {
	return Tag{Class: ClassUniversal, Number: TagBoolean}
}

func (Bool) DerLen() (Length, error) {
	return 1, nil
}

func (b Bool) DerEncode(e *Encoder) error {
	if b {
		return e.writeByte(0xff)
	}
	return e.writeByte(0x00)
}

func (b *Bool) DerDecode(h Header, content []byte, offset int) error {
	if len(content) != 1 {
		return errorf(KindLength, offset, "BOOLEAN must have exactly one content byte, got %d", len(content))
	}
	switch content[0] {
	case 0x00:
		*b = false
	case 0xff:
		*b = true
	default:
		return errorf(KindEncoding, offset, "invalid BOOLEAN value 0x%02x", content[0])
	}
	return nil
}

//endregion

//region [UNIVERSAL 2] INTEGER

// Int implements the ASN.1 INTEGER type for values that fit into an int64.
// Use [BigInt] for larger values.
type Int int64

func (Int) DerTag() Tag {
	return Tag{Class: ClassUniversal, Number: TagInteger}
}

func (i Int) DerLen() (Length, error) {
	n := Length(1)
	for v := int64(i); v > 0x7f || v < -0x80; v >>= 8 {
		n++
	}
	return n, nil
}

func (i Int) DerEncode(e *Encoder) error {
	n, _ := i.DerLen()
	for j := int(n) - 1; j >= 0; j-- {
		if err := e.writeByte(byte(int64(i) >> (8 * j))); err != nil {
			return err
		}
	}
	return nil
}

func (i *Int) DerDecode(h Header, content []byte, offset int) error {
	if len(content) == 0 {
		return errorf(KindLength, offset, "INTEGER must have at least one content byte")
	}
	if len(content) > 8 {
		return errorf(KindOverflow, offset, "INTEGER does not fit in 64 bits")
	}
	// X.690 Section 8.3.2: the first nine bits must not be all zeros or all
	// ones.
	if len(content) > 1 && (content[0] == 0x00 && content[1] < 0x80 || content[0] == 0xff && content[1] >= 0x80) {
		return errorf(KindEncoding, offset, "INTEGER is not minimally encoded")
	}
	v := int64(int8(content[0])) // sign extend
	for _, b := range content[1:] {
		v = v<<8 | int64(b)
	}
	*i = Int(v)
	return nil
}

// BigInt implements the ASN.1 INTEGER type for non-negative values of
// arbitrary size, as used for RSA moduli and similar cryptographic
// quantities. Negative values cannot be encoded and encodings of negative
// values are rejected.
type BigInt big.Int

// Int returns i as a *big.Int. The returned value shares memory with i.
func (i *BigInt) Int() *big.Int {
	return (*big.Int)(i)
}

func (*BigInt) DerTag() Tag {
	return Tag{Class: ClassUniversal, Number: TagInteger}
}

func (i *BigInt) DerLen() (Length, error) {
	v := i.Int()
	if v.Sign() < 0 {
		return 0, errorf(KindEncoding, 0, "negative INTEGER cannot be encoded as BigInt")
	}
	// One extra byte when the high bit is set, so that the value does not
	// read as negative. BitLen of zero encodes as the single byte 0x00.
	return Length(v.BitLen()/8 + 1), nil
}

func (i *BigInt) DerEncode(e *Encoder) error {
	v := i.Int()
	if v.Sign() < 0 {
		return errorf(KindEncoding, 0, "negative INTEGER cannot be encoded as BigInt")
	}
	b := v.Bytes()
	if len(b) == 0 {
		return e.writeByte(0x00)
	}
	if b[0]&0x80 != 0 {
		if err := e.writeByte(0x00); err != nil {
			return err
		}
	}
	return e.write(b)
}

func (i *BigInt) DerDecode(h Header, content []byte, offset int) error {
	if len(content) == 0 {
		return errorf(KindLength, offset, "INTEGER must have at least one content byte")
	}
	if content[0]&0x80 != 0 {
		return errorf(KindEncoding, offset, "negative INTEGER cannot be decoded into BigInt")
	}
	// A leading zero byte is only allowed if it is needed to keep the high
	// bit clear.
	if len(content) > 1 && content[0] == 0x00 && content[1] < 0x80 {
		return errorf(KindEncoding, offset, "INTEGER is not minimally encoded")
	}
	i.Int().SetBytes(content)
	return nil
}

//endregion

//region [UNIVERSAL 3] BIT STRING

// BitString implements the ASN.1 BIT STRING type. A bit string is padded up to
// the nearest byte in memory and the number of valid bits is recorded. DER
// requires the padding bits to be zero; they are zeroed during encoding and
// validated during decoding.
//
// After decoding, Bytes aliases the input buffer.
type BitString struct {
	Bytes     []byte // bits packed into bytes.
	BitLength int    // length in bits.
}

// IsValid reports whether there are enough bytes in s for the indicated
// BitLength.
func (s BitString) IsValid() bool {
	return s.BitLength >= 0 && len(s.Bytes) >= (s.BitLength+8-1)/8
}

// Len returns the number of bits in s.
func (s BitString) Len() int {
	return s.BitLength
}

// At returns the bit at the given index. If the index is out of range At
// panics.
func (s BitString) At(i int) int {
	if i < 0 || i >= s.BitLength {
		panic("index out of range")
	}
	x := i / 8
	y := 7 - uint(i%8)
	return int(s.Bytes[x]>>y) & 1
}

// RightAlign returns a slice where the padding bits are at the beginning. The
// slice may share memory with the BitString.
func (s BitString) RightAlign() []byte {
	shift := uint(8 - (s.BitLength % 8))
	if shift == 8 || len(s.Bytes) == 0 {
		return s.Bytes
	}

	a := make([]byte, len(s.Bytes))
	a[0] = s.Bytes[0] >> shift
	for i := 1; i < len(s.Bytes); i++ {
		a[i] = s.Bytes[i-1] << (8 - shift)
		a[i] |= s.Bytes[i] >> shift
	}

	return a
}

func (BitString) DerTag() Tag {
	return Tag{Class: ClassUniversal, Number: TagBitString}
}

func (s BitString) DerLen() (Length, error) {
	if !s.IsValid() {
		return 0, errorf(KindEncoding, 0, "BIT STRING has fewer than %d bits", s.BitLength)
	}
	return lengthOf((s.BitLength+7)/8 + 1)
}

func (s BitString) DerEncode(e *Encoder) error {
	numBytes := (s.BitLength + 7) / 8
	pad := byte(8*numBytes - s.BitLength)
	if err := e.writeByte(pad); err != nil {
		return err
	}
	if numBytes == 0 {
		return nil
	}
	if err := e.write(s.Bytes[:numBytes-1]); err != nil {
		return err
	}
	return e.writeByte(s.Bytes[numBytes-1] &^ (1<<pad - 1))
}

func (s *BitString) DerDecode(h Header, content []byte, offset int) error {
	if len(content) == 0 {
		return errorf(KindLength, offset, "BIT STRING must have at least one content byte")
	}
	pad := content[0]
	if pad > 7 {
		return errorf(KindEncoding, offset, "invalid BIT STRING padding of %d bits", pad)
	}
	if len(content) == 1 && pad != 0 {
		return errorf(KindEncoding, offset, "empty BIT STRING cannot have padding")
	}
	if pad > 0 && content[len(content)-1]&(1<<pad-1) != 0 {
		return errorf(KindEncoding, offset, "BIT STRING padding bits must be zero")
	}
	s.Bytes = content[1:]
	s.BitLength = 8*(len(content)-1) - int(pad)
	return nil
}

//endregion

//region [UNIVERSAL 4] OCTET STRING

// OctetString implements the ASN.1 OCTET STRING type as an opaque byte slice.
// After decoding, the slice aliases the input buffer.
type OctetString []byte

func (OctetString) DerTag() Tag {
	return Tag{Class: ClassUniversal, Number: TagOctetString}
}

func (s OctetString) DerLen() (Length, error) {
	return lengthOf(len(s))
}

func (s OctetString) DerEncode(e *Encoder) error {
	return e.write(s)
}

func (s *OctetString) DerDecode(h Header, content []byte, offset int) error {
	*s = content
	return nil
}

//endregion

//region [UNIVERSAL 5] NULL

// Null implements the ASN.1 NULL type. NULL has no content octets.
type Null struct{}

func (Null) DerTag() Tag {
	return Tag{Class: ClassUniversal, Number: TagNull}
}

func (Null) DerLen() (Length, error) {
	return 0, nil
}

func (Null) DerEncode(*Encoder) error {
	return nil
}

func (Null) DerDecode(h Header, content []byte, offset int) error {
	if len(content) != 0 {
		return errorf(KindLength, offset, "NULL must not have content bytes, got %d", len(content))
	}
	return nil
}

//endregion

//region [UNIVERSAL 6] OBJECT IDENTIFIER

// An ObjectIdentifier implements the ASN.1 OBJECT IDENTIFIER type. This type
// handles the tag and length framing; the arc arithmetic and dotted-decimal
// notation live in the [codello.dev/der/oid] package.
type ObjectIdentifier oid.ObjectIdentifier

// Equal reports whether o and other represent the same identifier.
func (o ObjectIdentifier) Equal(other ObjectIdentifier) bool {
	return oid.ObjectIdentifier(o).Equal(oid.ObjectIdentifier(other))
}

// String returns the dot-separated notation of o.
func (o ObjectIdentifier) String() string {
	return oid.ObjectIdentifier(o).String()
}

func (ObjectIdentifier) DerTag() Tag {
	return Tag{Class: ClassUniversal, Number: TagOID}
}

func (o ObjectIdentifier) DerLen() (Length, error) {
	n, err := oid.ObjectIdentifier(o).EncodedLen()
	if err != nil {
		return 0, &Error{Kind: KindMalformedOID, Err: err}
	}
	return lengthOf(n)
}

func (o ObjectIdentifier) DerEncode(e *Encoder) error {
	b, err := oid.ObjectIdentifier(o).DER()
	if err != nil {
		return &Error{Kind: KindMalformedOID, Err: err}
	}
	return e.write(b)
}

func (o *ObjectIdentifier) DerDecode(h Header, content []byte, offset int) error {
	v, err := oid.FromDER(content)
	if err != nil {
		return &Error{Kind: KindMalformedOID, ByteOffset: offset, Err: err}
	}
	*o = ObjectIdentifier(v)
	return nil
}

//endregion

//region [UNIVERSAL 12] UTF8String

// UTF8String implements the ASN.1 UTF8String type. It can only hold valid
// UTF-8 values.
type UTF8String string

// IsValid reports whether s is a valid UTF-8 string.
func (s UTF8String) IsValid() bool {
	return utf8.ValidString(string(s))
}

func (UTF8String) DerTag() Tag {
	return Tag{Class: ClassUniversal, Number: TagUTF8String}
}

func (s UTF8String) DerLen() (Length, error) {
	if !s.IsValid() {
		return 0, errorf(KindEncoding, 0, "UTF8String contains invalid UTF-8")
	}
	return lengthOf(len(s))
}

func (s UTF8String) DerEncode(e *Encoder) error {
	return e.write([]byte(s))
}

func (s *UTF8String) DerDecode(h Header, content []byte, offset int) error {
	if !utf8.Valid(content) {
		return errorf(KindEncoding, offset, "UTF8String contains invalid UTF-8")
	}
	*s = UTF8String(content)
	return nil
}

//endregion

//region [UNIVERSAL 19] PrintableString

// PrintableString implements the ASN.1 type PrintableString. A printable
// string can only contain the following ASCII characters:
//
//	A-Z	// upper case letters
//	a-z	// lower case letters
//	0-9	// digits
//	 	// space
//	'	// apostrophe
//	()	// Parenthesis
//	+-/	// plus, hyphen, solidus
//	.,:	// fill stop, comma, colon
//	=	// equals sign
//	?	// question mark
type PrintableString string

// IsValid reports whether s consists only of printable characters.
func (s PrintableString) IsValid() bool {
	for i := 0; i < len(s); i++ {
		if !isPrintable(s[i]) {
			return false
		}
	}
	return true
}

// isPrintable reports whether b is in the ASN.1 PrintableString set.
func isPrintable(b byte) bool {
	return 'a' <= b && b <= 'z' ||
		'A' <= b && b <= 'Z' ||
		'0' <= b && b <= '9' ||
		'\'' <= b && b <= ')' ||
		'+' <= b && b <= '/' ||
		b == ' ' ||
		b == ':' ||
		b == '=' ||
		b == '?'
}

func (PrintableString) DerTag() Tag {
	return Tag{Class: ClassUniversal, Number: TagPrintableString}
}

func (s PrintableString) DerLen() (Length, error) {
	if !s.IsValid() {
		return 0, errorf(KindEncoding, 0, "PrintableString contains invalid characters")
	}
	return lengthOf(len(s))
}

func (s PrintableString) DerEncode(e *Encoder) error {
	return e.write([]byte(s))
}

func (s *PrintableString) DerDecode(h Header, content []byte, offset int) error {
	for _, b := range content {
		if !isPrintable(b) {
			return errorf(KindEncoding, offset, "PrintableString contains invalid character 0x%02x", b)
		}
	}
	*s = PrintableString(content)
	return nil
}

//endregion

//region [UNIVERSAL 22] IA5String

// IA5String implements the ASN.1 type IA5String. An IA5String may only contain
// ASCII characters (bytes 0x00 through 0x7F).
type IA5String string

// IsValid reports whether the contents of s consist only of ASCII characters.
func (s IA5String) IsValid() bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

func (IA5String) DerTag() Tag {
	return Tag{Class: ClassUniversal, Number: TagIA5String}
}

func (s IA5String) DerLen() (Length, error) {
	if !s.IsValid() {
		return 0, errorf(KindEncoding, 0, "IA5String contains non-ASCII characters")
	}
	return lengthOf(len(s))
}

func (s IA5String) DerEncode(e *Encoder) error {
	return e.write([]byte(s))
}

func (s *IA5String) DerDecode(h Header, content []byte, offset int) error {
	for _, b := range content {
		if b >= utf8.RuneSelf {
			return errorf(KindEncoding, offset, "IA5String contains non-ASCII character 0x%02x", b)
		}
	}
	*s = IA5String(content)
	return nil
}

//endregion

//region [UNIVERSAL 23] UTCTime

// UTCTime implements the corresponding ASN.1 type. Only dates between 1950 and
// 2049 can be represented by this type. DER admits exactly one format:
// YYMMDDHHMMSSZ. Years 50 through 99 are interpreted as 1950 through 1999,
// years 00 through 49 as 2000 through 2049.
type UTCTime time.Time

// IsValid reports whether the year of t is between 1950 and 2049.
func (t UTCTime) IsValid() bool {
	year := time.Time(t).Year()
	return year >= 1950 && year < 2050
}

func (UTCTime) DerTag() Tag {
	return Tag{Class: ClassUniversal, Number: TagUTCTime}
}

func (t UTCTime) DerLen() (Length, error) {
	if !t.IsValid() {
		return 0, errorf(KindEncoding, 0, "UTCTime cannot represent year %d", time.Time(t).Year())
	}
	return 13, nil
}

func (t UTCTime) DerEncode(e *Encoder) error {
	tt := time.Time(t).UTC()
	b := make([]byte, 0, 13)
	b = appendIntN(b, tt.Year()%100, 2)
	b = appendIntN(b, int(tt.Month()), 2)
	b = appendIntN(b, tt.Day(), 2)
	b = appendIntN(b, tt.Hour(), 2)
	b = appendIntN(b, tt.Minute(), 2)
	b = appendIntN(b, tt.Second(), 2)
	b = append(b, 'Z')
	return e.write(b)
}

func (t *UTCTime) DerDecode(h Header, content []byte, offset int) error {
	if len(content) != 13 {
		return errorf(KindLength, offset, "UTCTime must be exactly 13 bytes, got %d", len(content))
	}
	if content[12] != 'Z' {
		return errorf(KindEncoding, offset, "UTCTime must use the Z time zone")
	}
	tt, err := parseTimeContent(content[:12], offset, 2)
	if err != nil {
		return err
	}
	*t = UTCTime(tt)
	return nil
}

//endregion

//region [UNIVERSAL 24] GeneralizedTime

// GeneralizedTime implements the corresponding ASN.1 type for dates between
// years 0 and 9999. DER restricts the format to YYYYMMDDHHMMSSZ: seconds are
// always present, fractional seconds are omitted, and the time zone is always
// Z.
type GeneralizedTime time.Time

// IsValid reports whether the year of t is between 0 and 9999.
func (t GeneralizedTime) IsValid() bool {
	year := time.Time(t).Year()
	return year >= 0 && year <= 9999
}

func (GeneralizedTime) DerTag() Tag {
	return Tag{Class: ClassUniversal, Number: TagGeneralizedTime}
}

func (t GeneralizedTime) DerLen() (Length, error) {
	if !t.IsValid() {
		return 0, errorf(KindEncoding, 0, "GeneralizedTime cannot represent year %d", time.Time(t).Year())
	}
	return 15, nil
}

func (t GeneralizedTime) DerEncode(e *Encoder) error {
	tt := time.Time(t).UTC()
	b := make([]byte, 0, 15)
	b = appendIntN(b, tt.Year()%10000, 4)
	b = appendIntN(b, int(tt.Month()), 2)
	b = appendIntN(b, tt.Day(), 2)
	b = appendIntN(b, tt.Hour(), 2)
	b = appendIntN(b, tt.Minute(), 2)
	b = appendIntN(b, tt.Second(), 2)
	b = append(b, 'Z')
	return e.write(b)
}

func (t *GeneralizedTime) DerDecode(h Header, content []byte, offset int) error {
	if len(content) != 15 {
		return errorf(KindLength, offset, "GeneralizedTime must be exactly 15 bytes, got %d", len(content))
	}
	if content[14] != 'Z' {
		return errorf(KindEncoding, offset, "GeneralizedTime must use the Z time zone")
	}
	tt, err := parseTimeContent(content[:14], offset, 4)
	if err != nil {
		return err
	}
	*t = GeneralizedTime(tt)
	return nil
}

// parseTimeContent parses the date and time digits shared by UTCTime and
// GeneralizedTime. yearDigits is 2 for UTCTime and 4 for GeneralizedTime. The
// two-digit form uses the 1950-2049 sliding window.
func parseTimeContent(b []byte, offset, yearDigits int) (time.Time, error) {
	fields := make([]int, 6)
	fields[0] = yearDigits
	for i := 1; i < 6; i++ {
		fields[i] = 2
	}
	vals := make([]int, 6)
	for i, n := range fields {
		v, ok := atoi(b[:n])
		if !ok {
			return time.Time{}, errorf(KindEncoding, offset, "time contains non-digit characters")
		}
		vals[i] = v
		b = b[n:]
	}
	year := vals[0]
	if yearDigits == 2 {
		if year < 50 {
			year += 2000
		} else {
			year += 1900
		}
	}
	tt := time.Date(year, time.Month(vals[1]), vals[2], vals[3], vals[4], vals[5], 0, time.UTC)
	// time.Date normalizes out-of-range components, so compare against the
	// parsed values to reject dates like month 13 or April 31.
	if tt.Year() != year || tt.Month() != time.Month(vals[1]) || tt.Day() != vals[2] ||
		tt.Hour() != vals[3] || tt.Minute() != vals[4] || tt.Second() != vals[5] {
		return time.Time{}, errorf(KindEncoding, offset, "invalid calendar date")
	}
	return tt, nil
}

// atoi parses b as an unsigned decimal number with exactly len(b) digits.
func atoi(b []byte) (int, bool) {
	n := 0
	for _, c := range b {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}

// appendIntN appends the base 10 representation of the absolute value of i,
// truncated or zero padded to exactly n digits.
func appendIntN(dst []byte, i int, n int) []byte {
	if i < 0 {
		i = -i
	}
	bs := make([]byte, n)
	for ; n > 0; n-- {
		bs[n-1] = '0' + byte(i%10)
		i /= 10
	}
	return append(dst, bs...)
}

//endregion

//region ANY

// Any is a lazily decoded data value: its tag together with its raw content
// octets. Any matches every tag during decoding, which makes it useful for
// deferred decoding of CHOICE or open types. Bytes aliases the input buffer
// after decoding.
type Any struct {
	Tag   Tag
	Bytes []byte
}

func (a Any) DerTag() Tag {
	return a.Tag
}

// DerMatch reports true for every tag.
func (Any) DerMatch(Tag) bool {
	return true
}

func (a Any) DerLen() (Length, error) {
	return lengthOf(len(a.Bytes))
}

func (a Any) DerEncode(e *Encoder) error {
	return e.write(a.Bytes)
}

func (a *Any) DerDecode(h Header, content []byte, offset int) error {
	a.Tag = h.Tag
	a.Bytes = content
	return nil
}

// IsNull reports whether a holds an ASN.1 NULL value.
func (a Any) IsNull() bool {
	return a.Tag == (Tag{Class: ClassUniversal, Number: TagNull}) && len(a.Bytes) == 0
}

// Decode narrows a into v by re-dispatching the stored tag and content
// octets. Offsets in errors returned by Decode are relative to the content of
// a.
func (a Any) Decode(v DerDecoder) error {
	if !match(v, a.Tag) {
		return errorf(KindUnexpectedTag, 0, "expected %v, found %v", v.DerTag(), a.Tag)
	}
	n, err := lengthOf(len(a.Bytes))
	if err != nil {
		return err
	}
	return v.DerDecode(Header{Tag: a.Tag, Length: n}, a.Bytes, 0)
}

// Sequence interprets a as a SEQUENCE and calls f with a Decoder scoped to its
// content octets. If f does not consume the content octets exactly, Sequence
// fails with [KindLength].
func (a Any) Sequence(f func(*Decoder) error) error {
	if a.Tag != (Tag{Class: ClassUniversal, Constructed: true, Number: TagSequence}) {
		return errorf(KindUnexpectedTag, 0, "expected SEQUENCE, found %v", a.Tag)
	}
	d := subDecoder(a.Bytes, 0)
	if err := f(d); err != nil {
		return err
	}
	if !d.IsFinished() {
		return errorf(KindLength, d.Offset(), "%d unconsumed content bytes", len(d.buf)-d.pos)
	}
	return nil
}

//endregion
