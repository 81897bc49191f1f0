// Copyright 2026 The Fennel Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package fennel

import "testing"

func TestReadCompressedUint32(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want uint32
	}{
		{"one byte low", []byte{0x03}, 3},
		{"one byte max", []byte{0x7F}, 127},
		{"two byte min", []byte{0x80, 0x80}, 128},
		{"two byte mid", []byte{0xAE, 0x57}, 0x2E57},
		{"two byte max", []byte{0xBF, 0xFF}, 0x3FFF},
		{"four byte min", []byte{0xC0, 0x00, 0x40, 0x00}, 0x4000},
		{"four byte max", []byte{0xDF, 0xFF, 0xFF, 0xFF}, 0x1FFFFFFF},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCursor(tt.in)
			got, err := readCompressedUint32(c)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got 0x%X, want 0x%X", got, tt.want)
			}
			if c.pos != len(tt.in) {
				t.Errorf("cursor left at %d, want %d", c.pos, len(tt.in))
			}
		})
	}
}

func TestReadCompressedInt32(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want int32
	}{
		{"one byte positive", []byte{0x06}, 3},
		{"one byte negative", []byte{0x7B}, -3},
		{"two byte positive", []byte{0x80, 0x80}, 64},
		{"one byte negative boundary", []byte{0x01}, -64},
		{"four byte positive", []byte{0xC0, 0x00, 0x40, 0x00}, 8192},
		{"two byte negative", []byte{0x80, 0x01}, -8192},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCursor(tt.in)
			got, err := readCompressedInt32(c)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCompressedUint32RoundTrip(t *testing.T) {
	// Every 1-byte and 2-byte encodable value should round-trip through
	// decode(encode(u)); exercising the whole 29-bit range isn't
	// practical in a unit test, so this spot-checks each width boundary.
	values := []uint32{0, 1, 0x7F, 0x80, 0x3FFF, 0x4000, 0x1FFFFFFF}
	for _, v := range values {
		enc := encodeCompressedUint32ForTest(v)
		c := newCursor(enc)
		got, err := readCompressedUint32(c)
		if err != nil {
			t.Fatalf("decode(%d) error: %v", v, err)
		}
		if got != v {
			t.Errorf("round trip %d -> %v -> %d", v, enc, got)
		}
	}
}

// encodeCompressedUint32ForTest mirrors the decoder's width boundaries so
// the round-trip test above doesn't depend on a separate encoder this
// package has no other use for.
func encodeCompressedUint32ForTest(v uint32) []byte {
	switch {
	case v <= 0x7F:
		return []byte{byte(v)}
	case v <= 0x3FFF:
		return []byte{byte(v>>8) | 0x80, byte(v)}
	default:
		return []byte{byte(v>>24) | 0xC0, byte(v >> 16), byte(v >> 8), byte(v)}
	}
}
