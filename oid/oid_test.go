// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package oid

import (
	"errors"
	"slices"
	"testing"
)

func TestParse(t *testing.T) {
	tests := map[string]struct {
		s       string
		want    ObjectIdentifier
		wantErr bool
	}{
		"RSA":           {"1.2.840.113549", ObjectIdentifier{1, 2, 840, 113549}, false},
		"X690Sample":    {"2.999", ObjectIdentifier{2, 999}, false},
		"Empty":         {"", nil, true},
		"SingleArc":     {"1", nil, true},
		"FirstTooLarge": {"3.1", nil, true},
		"SecondTooLarge": {"1.40", nil, true},
		"SecondArc2":    {"2.40", ObjectIdentifier{2, 40}, false},
		"NotANumber":    {"1.2.x", nil, true},
		"Negative":      {"1.-2", nil, true},
		"ArcOverflow":   {"1.2.4294967296", nil, true},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := Parse(tc.s)
			if tc.wantErr {
				if !errors.Is(err, ErrMalformed) {
					t.Fatalf("Parse(%q) error = %v, want %v", tc.s, err, ErrMalformed)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) error = %v, want nil", tc.s, err)
			}
			if !got.Equal(tc.want) {
				t.Errorf("Parse(%q) = %v, want %v", tc.s, got, tc.want)
			}
			if got.String() != tc.s {
				t.Errorf("String() = %q, want %q", got.String(), tc.s)
			}
		})
	}
}

func TestDER(t *testing.T) {
	tests := map[string]struct {
		oid  ObjectIdentifier
		want []byte
	}{
		"RSA":        {ObjectIdentifier{1, 2, 840, 113549}, []byte{0x2a, 0x86, 0x48, 0x86, 0xf7, 0x0d}},
		"X690Sample": {ObjectIdentifier{2, 999, 3}, []byte{0x88, 0x37, 0x03}},
		"Minimal":    {ObjectIdentifier{0, 0}, []byte{0x00}},
		"LargeFirst": {ObjectIdentifier{2, 4294967295}, []byte{0x90, 0x80, 0x80, 0x80, 0x4f}},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			n, err := tc.oid.EncodedLen()
			if err != nil {
				t.Fatalf("EncodedLen() error = %v, want nil", err)
			}
			if n != len(tc.want) {
				t.Errorf("EncodedLen() = %d, want %d", n, len(tc.want))
			}
			got, err := tc.oid.DER()
			if err != nil {
				t.Fatalf("DER() error = %v, want nil", err)
			}
			if !slices.Equal(got, tc.want) {
				t.Errorf("DER() = %# x, want %# x", got, tc.want)
			}
		})
	}

	t.Run("Invalid", func(t *testing.T) {
		if _, err := (ObjectIdentifier{3, 1}).DER(); !errors.Is(err, ErrMalformed) {
			t.Errorf("DER() error = %v, want %v", err, ErrMalformed)
		}
	})
}

func TestFromDER(t *testing.T) {
	tests := map[string]struct {
		data    []byte
		want    ObjectIdentifier
		wantErr bool
	}{
		"RSA":        {[]byte{0x2a, 0x86, 0x48, 0x86, 0xf7, 0x0d}, ObjectIdentifier{1, 2, 840, 113549}, false},
		"X690Sample": {[]byte{0x88, 0x37, 0x03}, ObjectIdentifier{2, 999, 3}, false},
		"FirstArc0":  {[]byte{0x27}, ObjectIdentifier{0, 39}, false},
		"FirstArc1":  {[]byte{0x28}, ObjectIdentifier{1, 0}, false},
		"FirstArc2":  {[]byte{0x50}, ObjectIdentifier{2, 0}, false},
		"Empty":      {nil, nil, true},
		"NonMinimal": {[]byte{0x80, 0x01}, nil, true},
		"Truncated":  {[]byte{0x88}, nil, true},
		"ArcOverflow": {[]byte{0x2a, 0x90, 0x80, 0x80, 0x80, 0x00}, nil, true},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := FromDER(tc.data)
			if tc.wantErr {
				if !errors.Is(err, ErrMalformed) {
					t.Fatalf("FromDER(%# x) error = %v, want %v", tc.data, err, ErrMalformed)
				}
				return
			}
			if err != nil {
				t.Fatalf("FromDER(%# x) error = %v, want nil", tc.data, err)
			}
			if !got.Equal(tc.want) {
				t.Errorf("FromDER(%# x) = %v, want %v", tc.data, got, tc.want)
			}
		})
	}
}
