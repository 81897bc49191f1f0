// Copyright 2026 The Fennel Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package fennel

import "testing"

// buildMinimalPE32 assembles DOS stub + PE signature + COFF header + PE32
// optional header into one buffer, with the optional header's DataDirectory
// left zeroed. It returns the buffer and the file offset the NT header
// starts at.
func buildMinimalPE32() ([]byte, uint32) {
	dos := minimalDOSHeader(ImageDOSSignature, 64)

	buf := append([]byte{}, dos...)
	buf = append(buf, 'P', 'E', 0, 0)

	fileHeader := make([]byte, 20)
	fileHeader[0], fileHeader[1] = 0x4C, 0x01 // Machine = I386
	fileHeader[16], fileHeader[17] = 224, 0   // SizeOfOptionalHeader = 224
	buf = append(buf, fileHeader...)

	opt := make([]byte, 224)
	opt[0], opt[1] = 0x0B, 0x01 // Magic = PE32
	buf = append(buf, opt...)

	return buf, 64
}

func TestParseNTHeaderPE32(t *testing.T) {
	data, ntOffset := buildMinimalPE32()
	img := &Image{data: data, size: uint64(len(data))}
	img.DOSHeader.AddressOfNewEXEHeader = ntOffset

	if err := img.parseNTHeader(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if img.Is64() {
		t.Error("PE32 image reported as 64-bit")
	}
	oh, ok := img.NtHeader.OptionalHeader.(*ImageOptionalHeader32)
	if !ok {
		t.Fatalf("OptionalHeader is %T, want *ImageOptionalHeader32", img.NtHeader.OptionalHeader)
	}
	if oh.Magic != ImageNtOptionalHeader32Magic {
		t.Errorf("Magic = %#x, want %#x", oh.Magic, ImageNtOptionalHeader32Magic)
	}
	if len(img.dataDirectories) != int(ImageNumberOfDirectoryEntries) {
		t.Errorf("got %d data directories, want %d", len(img.dataDirectories), ImageNumberOfDirectoryEntries)
	}
}

func TestParseNTHeaderRejectsBadSignature(t *testing.T) {
	data, ntOffset := buildMinimalPE32()
	data[ntOffset] = 'X'
	img := &Image{data: data, size: uint64(len(data))}
	img.DOSHeader.AddressOfNewEXEHeader = ntOffset

	err := img.parseNTHeader()
	if e, ok := err.(*Error); !ok || e.Kind != ErrInvalidSignature {
		t.Fatalf("got %v, want ErrInvalidSignature", err)
	}
}

func TestParseNTHeaderRejectsBadOptionalHeaderMagic(t *testing.T) {
	data, ntOffset := buildMinimalPE32()
	optOffset := ntOffset + 4 + 20
	data[optOffset], data[optOffset+1] = 0xFF, 0xFF
	img := &Image{data: data, size: uint64(len(data))}
	img.DOSHeader.AddressOfNewEXEHeader = ntOffset

	err := img.parseNTHeader()
	if e, ok := err.(*Error); !ok || e.Kind != ErrNotAPortableExecutable {
		t.Fatalf("got %v, want ErrNotAPortableExecutable", err)
	}
}

func TestMachineString(t *testing.T) {
	tests := []struct {
		machine uint16
		want    string
	}{
		{ImageFileMachineI386, "I386"},
		{ImageFileMachineAMD64, "AMD64"},
		{ImageFileMachineARM64, "ARM64"},
		{0xBEEF, "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := MachineString(tt.machine); got != tt.want {
			t.Errorf("MachineString(%#x) = %q, want %q", tt.machine, got, tt.want)
		}
	}
}

func TestDataDirectoryReportsUnusedEntry(t *testing.T) {
	data, ntOffset := buildMinimalPE32()
	img := &Image{data: data, size: uint64(len(data))}
	img.DOSHeader.AddressOfNewEXEHeader = ntOffset
	if err := img.parseNTHeader(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := img.dataDirectory(ImageDirectoryEntryCLIHeader)
	if e, ok := err.(*Error); !ok || e.Kind != ErrDirectoryNotFound {
		t.Fatalf("got %v, want ErrDirectoryNotFound", err)
	}
}
