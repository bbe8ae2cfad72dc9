package vlq

import (
	"errors"
	"reflect"
	"runtime"
	"slices"
	"strconv"
	"testing"
)

//region Testing Helpers

// decodeTestCase represents a single decoding test case for type T.
type decodeTestCase[T ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64] struct {
	data    []byte // input
	want    T      // expected output
	wantN   int    // expected number of consumed bytes
	wantErr error  // expected error
}

// testDecode asserts that decoding a VLQ using f from tc.data produces the
// expected results.
func testDecode[T ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64](t *testing.T, f func([]byte) (T, int, error), tc decodeTestCase[T]) {
	t.Helper()
	fName := runtime.FuncForPC(reflect.ValueOf(f).Pointer()).Name()

	got, n, err := f(tc.data)
	if !errors.Is(err, tc.wantErr) {
		t.Fatalf("%s(%# x) error = %v, wantErr %v", fName, tc.data, err, tc.wantErr)
	}
	if err != nil {
		return
	}
	if got != tc.want {
		t.Errorf("%s(%# x) got = %v, want %v", fName, tc.data, got, tc.want)
	}
	if n != tc.wantN {
		t.Errorf("%s(%# x) n = %d, want %d", fName, tc.data, n, tc.wantN)
	}
}

// appendTestCase represents a single encoding test case for type T.
type appendTestCase[T ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64] struct {
	value T
	want  []byte
}

// testAppend asserts that encoding tc.value produces the bytes in tc.want.
func testAppend[T ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64](t *testing.T, tc appendTestCase[T]) {
	t.Helper()

	l := Length(tc.value)
	if l != len(tc.want) {
		t.Errorf("Length(%d) = %d, want %d", tc.value, l, len(tc.want))
	}
	if got := Append(nil, tc.value); !slices.Equal(got, tc.want) {
		t.Errorf("Append(%d) = %# x, want %# x", tc.value, got, tc.want)
	}
}

//endregion

//region Decode Tests

func TestDecode(t *testing.T) {
	tests := map[string]decodeTestCase[uint]{
		"SingleByte": {[]byte{0x05}, 5, 1, nil},
		"MultiByte":  {[]byte{0x85, 0x01, 0x00}, 641, 2, nil},
		"Empty":      {nil, 0, 0, ErrTruncated},
		"Truncated":  {[]byte{0x81, 0x80}, 0, 0, ErrTruncated},
		"Overflow":   {[]byte{0x81, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x00}, 0, 0, ErrOverflow}, // assumes uint size of 8 bytes (64 bit architecture)
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			testDecode(t, Decode[uint], tc)
		})
	}
}

func TestDecode8(t *testing.T) {
	tests := map[string]decodeTestCase[uint8]{
		"SingleByte": {[]byte{0x05}, 5, 1, nil},
		"Overflow":   {[]byte{0x85, 0x01, 0x00}, 0, 0, ErrOverflow},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			testDecode(t, Decode[uint8], tc)
		})
	}
}

func TestDecodeMinimal(t *testing.T) {
	tests := map[string]decodeTestCase[uint]{
		"Minimal":    {[]byte{0x85, 0x01}, 641, 2, nil},
		"NonMinimal": {[]byte{0x80, 0x85, 0x01}, 0, 0, ErrNotMinimal},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			testDecode(t, DecodeMinimal[uint], tc)
		})
	}
}

//endregion

//region Append Tests

func TestAppend(t *testing.T) {
	tests := []appendTestCase[uint]{
		{0, []byte{0x00}},
		{25, []byte{25}},
		{641, []byte{0x85, 0x01}},
	}
	for _, tc := range tests {
		t.Run(strconv.FormatUint(uint64(tc.value), 10), func(t *testing.T) {
			testAppend(t, tc)
		})
	}
}

func TestAppend8(t *testing.T) {
	tests := []appendTestCase[uint8]{
		{0, []byte{0x00}},
		{200, []byte{0x81, 0x48}},
	}
	for _, tc := range tests {
		t.Run(strconv.FormatUint(uint64(tc.value), 10), func(t *testing.T) {
			testAppend(t, tc)
		})
	}
}

//endregion

func BenchmarkLength(b *testing.B) {
	for b.Loop() {
		Length(uint8(200))
	}
}
