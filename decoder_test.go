// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package der

import (
	"errors"
	"testing"
)

func TestDecoder_Decode(t *testing.T) {
	t.Run("TagMismatchConsumesNothing", func(t *testing.T) {
		d := NewDecoder([]byte{0x01, 0x01, 0xff})
		var n Int
		err := d.Decode(&n)
		if !errors.Is(err, KindUnexpectedTag) {
			t.Fatalf("Decode() error = %v, want %v", err, KindUnexpectedTag)
		}
		if d.Offset() != 0 {
			t.Fatalf("Decode() consumed input on tag mismatch, offset = %d", d.Offset())
		}
		var b Bool
		if err := d.Decode(&b); err != nil {
			t.Fatalf("Decode() error = %v, want nil", err)
		}
		if b != true {
			t.Errorf("Decode() = %v, want true", b)
		}
	})

	t.Run("TruncatedContent", func(t *testing.T) {
		// The header at offset 3 declares 5 content bytes but only 2 remain.
		data := []byte{0x04, 0x01, 0xaa, 0x04, 0x05, 0x01, 0x02}
		d := NewDecoder(data)
		var s OctetString
		if err := d.Decode(&s); err != nil {
			t.Fatalf("Decode() error = %v, want nil", err)
		}
		err := d.Decode(&s)
		if !errors.Is(err, KindTruncated) {
			t.Fatalf("Decode() error = %v, want %v", err, KindTruncated)
		}
		var derErr *Error
		if !errors.As(err, &derErr) {
			t.Fatalf("Decode() error is not a *Error: %v", err)
		}
		if derErr.ByteOffset != 3 {
			t.Errorf("Decode() error offset = %d, want 3", derErr.ByteOffset)
		}
	})

	t.Run("Any", func(t *testing.T) {
		d := NewDecoder([]byte{0xa1, 0x03, 0x02, 0x01, 0x2a})
		var a Any
		if err := d.Decode(&a); err != nil {
			t.Fatalf("Decode() error = %v, want nil", err)
		}
		want := Tag{ClassContextSpecific, true, 1}
		if a.Tag != want {
			t.Errorf("Decode() tag = %v, want %v", a.Tag, want)
		}
		if string(a.Bytes) != string([]byte{0x02, 0x01, 0x2a}) {
			t.Errorf("Decode() bytes = %# x", a.Bytes)
		}
	})
}

func TestDecode_TrailingBytes(t *testing.T) {
	var b Bool
	err := Decode([]byte{0x01, 0x01, 0xff, 0x00}, &b)
	if !errors.Is(err, KindLength) {
		t.Fatalf("Decode() error = %v, want %v", err, KindLength)
	}
}

func TestDecoder_Sequence(t *testing.T) {
	t.Run("Nested", func(t *testing.T) {
		// SEQUENCE { INTEGER 1, SEQUENCE { BOOLEAN TRUE } }
		data := []byte{0x30, 0x08, 0x02, 0x01, 0x01, 0x30, 0x03, 0x01, 0x01, 0xff}
		var n Int
		var b Bool
		err := NewDecoder(data).Sequence(func(in *Decoder) error {
			if err := in.Decode(&n); err != nil {
				return err
			}
			return in.Sequence(func(in *Decoder) error {
				return in.Decode(&b)
			})
		})
		if err != nil {
			t.Fatalf("Sequence() error = %v, want nil", err)
		}
		if n != 1 || b != true {
			t.Errorf("Sequence() = (%v, %v), want (1, true)", n, b)
		}
	})

	t.Run("UnconsumedBytes", func(t *testing.T) {
		// SEQUENCE { INTEGER 1, BOOLEAN TRUE } but only the INTEGER is read.
		data := []byte{0x30, 0x06, 0x02, 0x01, 0x01, 0x01, 0x01, 0xff}
		var n Int
		err := NewDecoder(data).Sequence(func(in *Decoder) error {
			return in.Decode(&n)
		})
		if !errors.Is(err, KindLength) {
			t.Fatalf("Sequence() error = %v, want %v", err, KindLength)
		}
	})

	t.Run("WrongTag", func(t *testing.T) {
		err := NewDecoder([]byte{0x31, 0x00}).Sequence(func(*Decoder) error { return nil })
		if !errors.Is(err, KindUnexpectedTag) {
			t.Fatalf("Sequence() error = %v, want %v", err, KindUnexpectedTag)
		}
	})

	t.Run("PrimitiveForm", func(t *testing.T) {
		// 0x10 is SEQUENCE without the constructed bit.
		err := NewDecoder([]byte{0x10, 0x00}).Sequence(func(*Decoder) error { return nil })
		if !errors.Is(err, KindUnexpectedTag) {
			t.Fatalf("Sequence() error = %v, want %v", err, KindUnexpectedTag)
		}
	})

	t.Run("NestedErrorOffset", func(t *testing.T) {
		// The BOOLEAN at offset 5 has an invalid value.
		data := []byte{0x30, 0x06, 0x02, 0x01, 0x01, 0x01, 0x01, 0x01}
		var n Int
		var b Bool
		err := NewDecoder(data).Sequence(func(in *Decoder) error {
			if err := in.Decode(&n); err != nil {
				return err
			}
			return in.Decode(&b)
		})
		var derErr *Error
		if !errors.As(err, &derErr) {
			t.Fatalf("Sequence() error = %v, want *Error", err)
		}
		if derErr.Kind != KindEncoding {
			t.Errorf("Sequence() error kind = %v, want %v", derErr.Kind, KindEncoding)
		}
		if derErr.ByteOffset != 7 {
			t.Errorf("Sequence() error offset = %d, want 7", derErr.ByteOffset)
		}
	})
}

func TestDecoder_SetOf(t *testing.T) {
	// Decoding imposes no order requirement.
	data := []byte{0x31, 0x06, 0x02, 0x01, 0x02, 0x02, 0x01, 0x01}
	var got []Int
	err := NewDecoder(data).SetOf(func(in *Decoder) error {
		var n Int
		if err := in.Decode(&n); err != nil {
			return err
		}
		got = append(got, n)
		return nil
	})
	if err != nil {
		t.Fatalf("SetOf() error = %v, want nil", err)
	}
	if len(got) != 2 || got[0] != 2 || got[1] != 1 {
		t.Errorf("SetOf() = %v, want [2 1]", got)
	}
}

func TestDecoder_Choice(t *testing.T) {
	t.Run("Dispatch", func(t *testing.T) {
		var n Int
		var b Bool
		d := NewDecoder([]byte{0x01, 0x01, 0xff})
		i, err := d.Choice(Alt(&n), Alt(&b))
		if err != nil {
			t.Fatalf("Choice() error = %v, want nil", err)
		}
		if i != 1 {
			t.Errorf("Choice() = %d, want 1", i)
		}
		if b != true {
			t.Errorf("Choice() decoded %v, want true", b)
		}
	})

	t.Run("NoMatchConsumesNothing", func(t *testing.T) {
		var n Int
		d := NewDecoder([]byte{0x04, 0x01, 0xaa})
		_, err := d.Choice(Alt(&n))
		if !errors.Is(err, KindUnexpectedTag) {
			t.Fatalf("Choice() error = %v, want %v", err, KindUnexpectedTag)
		}
		if d.Offset() != 0 {
			t.Errorf("Choice() consumed input, offset = %d", d.Offset())
		}
	})
}

func TestDecoder_DecodeOptional(t *testing.T) {
	t.Run("Present", func(t *testing.T) {
		d := NewDecoder([]byte{0x02, 0x01, 0x05})
		var n Int
		ok, err := d.DecodeOptional(&n)
		if err != nil || !ok {
			t.Fatalf("DecodeOptional() = (%v, %v), want (true, nil)", ok, err)
		}
		if n != 5 {
			t.Errorf("DecodeOptional() decoded %v, want 5", n)
		}
	})

	t.Run("Absent", func(t *testing.T) {
		d := NewDecoder([]byte{0x01, 0x01, 0xff})
		var n Int
		ok, err := d.DecodeOptional(&n)
		if err != nil || ok {
			t.Fatalf("DecodeOptional() = (%v, %v), want (false, nil)", ok, err)
		}
		if d.Offset() != 0 {
			t.Errorf("DecodeOptional() consumed input, offset = %d", d.Offset())
		}
	})

	t.Run("Finished", func(t *testing.T) {
		d := NewDecoder(nil)
		var n Int
		ok, err := d.DecodeOptional(&n)
		if err != nil || ok {
			t.Fatalf("DecodeOptional() = (%v, %v), want (false, nil)", ok, err)
		}
	})
}

func TestDecoder_SetMaxDepth(t *testing.T) {
	// SEQUENCE { SEQUENCE { SEQUENCE { } } }
	data := []byte{0x30, 0x04, 0x30, 0x02, 0x30, 0x00}
	depth3 := func(d *Decoder) error {
		return d.Sequence(func(in *Decoder) error {
			return in.Sequence(func(in *Decoder) error {
				return in.Sequence(func(*Decoder) error { return nil })
			})
		})
	}

	d := NewDecoder(data)
	if err := depth3(d); err != nil {
		t.Fatalf("Sequence() error = %v, want nil", err)
	}

	d = NewDecoder(data)
	d.SetMaxDepth(2)
	if err := depth3(d); !errors.Is(err, KindOverflow) {
		t.Fatalf("Sequence() error = %v, want %v", err, KindOverflow)
	}
}

func TestDecoder_SetMaxLength(t *testing.T) {
	d := NewDecoder([]byte{0x04, 0x05, 0x01, 0x02, 0x03, 0x04, 0x05})
	d.SetMaxLength(4)
	var s OctetString
	if err := d.Decode(&s); !errors.Is(err, KindOverflow) {
		t.Fatalf("Decode() error = %v, want %v", err, KindOverflow)
	}
}
