// Copyright 2026 The Fennel Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package fennel

import (
	"bytes"
	"encoding/binary"
	"path/filepath"
	"runtime"
)

// structUnpack reads size bytes starting at offset out of the image buffer
// and decodes them little-endian into iface, which must be a pointer to a
// fixed-layout struct of primitive fields.
func (img *Image) structUnpack(iface interface{}, offset, size uint32) error {
	end := uint64(offset) + uint64(size)
	if end > img.size {
		return &Error{Kind: ErrIO, Detail: "read outside image boundary"}
	}
	r := bytes.NewReader(img.data[offset:end])
	return binary.Read(r, binary.LittleEndian, iface)
}

// readBytes returns a bounds-checked view of n bytes at offset. The slice
// aliases the underlying image buffer; callers that need to retain it past
// the lifetime of a larger parse should copy it.
func (img *Image) readBytes(offset uint64, n uint64) ([]byte, error) {
	end := offset + n
	if end > img.size || end < offset {
		return nil, &Error{Kind: ErrIO, Detail: "read outside image boundary"}
	}
	return img.data[offset:end], nil
}

func (img *Image) readUint16(offset uint64) (uint16, error) {
	b, err := img.readBytes(offset, 2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (img *Image) readUint32(offset uint64) (uint32, error) {
	b, err := img.readBytes(offset, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// rvaToOffset maps a relative virtual address to a file offset by locating
// the section that contains it, per the teacher's mapping strategy: find
// the section whose virtual range covers rva, then translate using the
// delta between its virtual address and its raw file pointer.
func (img *Image) rvaToOffset(rva uint32) (uint64, error) {
	for _, s := range img.Sections {
		if s.contains(rva) {
			delta := rva - s.Header.VirtualAddress
			return uint64(s.Header.PointerToRawData) + uint64(delta), nil
		}
	}
	return 0, &Error{Kind: ErrSectionNotFound, Detail: "rva not contained in any section"}
}

// isBitSet reports whether bit pos (0 = least significant) is set in n.
func isBitSet(n uint64, pos uint) bool {
	return n&(1<<pos) != 0
}

// getAbsoluteFilePath resolves a path relative to the directory holding
// this source file (and so this package's test files), the same trick the teacher's own test suite uses to locate fixtures
// regardless of the working directory `go test` was invoked from.
func getAbsoluteFilePath(testfile string) string {
	_, p, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(p), testfile)
}
