// Copyright 2026 The Fennel Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package fennel

import "testing"

func TestHeapsString(t *testing.T) {
	h := &Heaps{strings: []byte("\x00Hello\x00World\x00")}

	if s, err := h.String(0); err != nil || s != "" {
		t.Errorf("offset 0: got %q, err=%v", s, err)
	}
	if s, err := h.String(1); err != nil || s != "Hello" {
		t.Errorf("offset 1: got %q, err=%v", s, err)
	}
	if s, err := h.String(7); err != nil || s != "World" {
		t.Errorf("offset 7: got %q, err=%v", s, err)
	}
}

func TestHeapsBlob(t *testing.T) {
	// offset 0 is conventionally skipped; blob at offset 1 is 3 bytes.
	h := &Heaps{blobs: []byte{0x00, 0x03, 0xAA, 0xBB, 0xCC}}

	b, err := h.Blob(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []byte{0xAA, 0xBB, 0xCC}
	if len(b) != len(want) {
		t.Fatalf("got %v, want %v", b, want)
	}
	for i := range want {
		if b[i] != want[i] {
			t.Errorf("byte %d: got %x, want %x", i, b[i], want[i])
		}
	}
}

func TestHeapsGUID(t *testing.T) {
	g1 := [16]byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0A, 0x0B, 0x0C, 0x0D, 0x0E, 0x0F, 0x10}
	h := &Heaps{guids: g1[:]}

	got, err := h.GUID(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if GUID(g1) != got {
		t.Errorf("got %v, want %v", got, GUID(g1))
	}

	if empty, err := h.GUID(0); err != nil || empty != EmptyGUID {
		t.Errorf("index 0 should be empty GUID, got %v err=%v", empty, err)
	}
}

func TestHeapsUserString(t *testing.T) {
	// "Hi" in UTF-16LE is 48 00 69 00; the #US entry is that plus a
	// trailing flag byte, prefixed by its total compressed length (5).
	h := &Heaps{userStrings: []byte{0x00, 0x05, 0x48, 0x00, 0x69, 0x00, 0x00}}

	s, err := h.UserString(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s != "Hi" {
		t.Errorf("got %q, want %q", s, "Hi")
	}
}

// TestHeapIndexWidthsAreIndependent guards against the historical bug of
// deriving GUID/Blob handle width from the Strings heap's size bit: each
// of the three bits must gate exactly one heap.
func TestHeapIndexWidthsAreIndependent(t *testing.T) {
	h := &Heaps{wideStrings: true, wideGUID: false, wideBlob: false}
	if got := h.stringIndexSize(); got != 4 {
		t.Errorf("wide strings: got %d, want 4", got)
	}
	if got := h.guidIndexSize(); got != 2 {
		t.Errorf("narrow guid alongside wide strings: got %d, want 2", got)
	}
	if got := h.blobIndexSize(); got != 2 {
		t.Errorf("narrow blob alongside wide strings: got %d, want 2", got)
	}

	h2 := &Heaps{wideStrings: false, wideGUID: true, wideBlob: true}
	if got := h2.stringIndexSize(); got != 2 {
		t.Errorf("narrow strings alongside wide guid/blob: got %d, want 2", got)
	}
	if got := h2.guidIndexSize(); got != 4 {
		t.Errorf("wide guid: got %d, want 4", got)
	}
	if got := h2.blobIndexSize(); got != 4 {
		t.Errorf("wide blob: got %d, want 4", got)
	}
}
