// Copyright 2026 The Fennel Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package fennel

import "golang.org/x/text/encoding/unicode"

// Heaps exposes the #Strings, #US, #GUID and #Blob streams of a metadata
// root. Every handle into a heap is an offset or 1-based index recorded in
// a table column; callers reach a heap almost exclusively through a typed
// facade (TypeDef.Name, Field.Signature, and so on) rather than directly.
type Heaps struct {
	strings     []byte
	userStrings []byte
	guids       []byte
	blobs       []byte

	// wideStrings, wideGUID and wideBlob are read from the tables stream's
	// HeapSizes byte. Each bit gates the width of handles into exactly one
	// heap; they are independent of one another.
	wideStrings bool
	wideGUID    bool
	wideBlob    bool
}

// String reads a NUL-terminated UTF-8 string from the #Strings heap at the
// given offset. Offset zero always denotes the empty string.
func (h *Heaps) String(offset uint32) (string, error) {
	if offset == 0 {
		return "", nil
	}
	if int(offset) >= len(h.strings) {
		return "", &Error{Kind: ErrInvalidHeapReference, Detail: "string offset out of range"}
	}
	return cString(h.strings[offset:]), nil
}

// Blob reads a length-prefixed blob from the #Blob heap at the given
// offset. The length prefix is a canonical ECMA-335 §II.24.2.4 compressed
// unsigned integer, decoded with the same routine used for every other
// compressed integer in this package.
func (h *Heaps) Blob(offset uint32) ([]byte, error) {
	if offset == 0 {
		return nil, nil
	}
	if int(offset) >= len(h.blobs) {
		return nil, &Error{Kind: ErrInvalidHeapReference, Detail: "blob offset out of range"}
	}
	c := newCursor(h.blobs)
	c.pos = int(offset)
	n, err := readCompressedUint32(c)
	if err != nil {
		return nil, &Error{Kind: ErrInvalidHeapReference, Detail: "truncated blob length", Err: err}
	}
	b, err := c.bytes(int(n))
	if err != nil {
		return nil, &Error{Kind: ErrInvalidHeapReference, Detail: "blob extends past heap", Err: err}
	}
	return b, nil
}

// GUID reads one 16-byte GUID from the #GUID heap. Index is 1-based, as
// every GUID-heap column in the table stream is; index zero means "no
// GUID".
func (h *Heaps) GUID(index uint32) (GUID, error) {
	if index == 0 {
		return EmptyGUID, nil
	}
	offset := (index - 1) * 16
	if int(offset)+16 > len(h.guids) {
		return EmptyGUID, &Error{Kind: ErrInvalidHeapReference, Detail: "guid index out of range"}
	}
	return guidFromBytes(h.guids[offset : offset+16])
}

// UserString reads one entry of the #US heap: a length-prefixed run of
// UTF-16LE characters used by ldstr. The length prefix counts bytes and
// includes one trailing flag byte (indicating whether any character needs
// careful round-tripping) that is not part of the string itself.
func (h *Heaps) UserString(offset uint32) (string, error) {
	if offset == 0 {
		return "", nil
	}
	if int(offset) >= len(h.userStrings) {
		return "", &Error{Kind: ErrInvalidHeapReference, Detail: "user string offset out of range"}
	}
	c := newCursor(h.userStrings)
	c.pos = int(offset)
	n, err := readCompressedUint32(c)
	if err != nil {
		return "", &Error{Kind: ErrInvalidHeapReference, Detail: "truncated user string length", Err: err}
	}
	if n == 0 {
		return "", nil
	}
	raw, err := c.bytes(int(n))
	if err != nil {
		return "", &Error{Kind: ErrInvalidHeapReference, Detail: "user string extends past heap", Err: err}
	}
	utf16Bytes := raw[:len(raw)-1]
	decoder := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
	out, err := decoder.Bytes(utf16Bytes)
	if err != nil {
		return "", &Error{Kind: ErrMalformed, Detail: "invalid utf-16 in user string", Err: err}
	}
	return string(out), nil
}

// stringIndexSize and its siblings report the column width, in bytes, that
// a heap handle occupies in the table stream: 2 bytes normally, 4 when the
// matching HeapSizes bit says the heap is "large". Each heap is gated by
// its own bit; a large #Strings heap does not widen #GUID or #Blob
// handles.
func (h *Heaps) stringIndexSize() int {
	if h.wideStrings {
		return 4
	}
	return 2
}

func (h *Heaps) guidIndexSize() int {
	if h.wideGUID {
		return 4
	}
	return 2
}

func (h *Heaps) blobIndexSize() int {
	if h.wideBlob {
		return 4
	}
	return 2
}
