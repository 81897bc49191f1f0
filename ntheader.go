// Copyright 2026 The Fennel Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package fennel

import "encoding/binary"

// ImageFileHeader is the COFF file header that immediately follows the PE
// signature.
type ImageFileHeader struct {
	Machine              uint16
	NumberOfSections     uint16
	TimeDateStamp        uint32
	PointerToSymbolTable uint32
	NumberOfSymbols      uint32
	SizeOfOptionalHeader uint16
	Characteristics      uint16
}

// DataDirectory is one entry of the 16-slot data directory array carried by
// the optional header.
type DataDirectory struct {
	VirtualAddress uint32
	Size           uint32
}

// ImageOptionalHeader32 is the PE32 optional header.
type ImageOptionalHeader32 struct {
	Magic                       uint16
	MajorLinkerVersion          uint8
	MinorLinkerVersion          uint8
	SizeOfCode                  uint32
	SizeOfInitializedData       uint32
	SizeOfUninitializedData     uint32
	AddressOfEntryPoint         uint32
	BaseOfCode                  uint32
	BaseOfData                  uint32
	ImageBase                   uint32
	SectionAlignment            uint32
	FileAlignment                uint32
	MajorOperatingSystemVersion uint16
	MinorOperatingSystemVersion uint16
	MajorImageVersion           uint16
	MinorImageVersion           uint16
	MajorSubsystemVersion       uint16
	MinorSubsystemVersion       uint16
	Win32VersionValue           uint32
	SizeOfImage                 uint32
	SizeOfHeaders                uint32
	CheckSum                     uint32
	Subsystem                    uint16
	DllCharacteristics            uint16
	SizeOfStackReserve           uint32
	SizeOfStackCommit            uint32
	SizeOfHeapReserve            uint32
	SizeOfHeapCommit             uint32
	LoaderFlags                  uint32
	NumberOfRvaAndSizes          uint32
	DataDirectory                [ImageNumberOfDirectoryEntries]DataDirectory
}

// ImageOptionalHeader64 is the PE32+ optional header. It drops BaseOfData
// and widens ImageBase and the stack/heap size fields to 64 bits.
type ImageOptionalHeader64 struct {
	Magic                       uint16
	MajorLinkerVersion          uint8
	MinorLinkerVersion          uint8
	SizeOfCode                  uint32
	SizeOfInitializedData       uint32
	SizeOfUninitializedData     uint32
	AddressOfEntryPoint         uint32
	BaseOfCode                  uint32
	ImageBase                   uint64
	SectionAlignment            uint32
	FileAlignment                uint32
	MajorOperatingSystemVersion uint16
	MinorOperatingSystemVersion uint16
	MajorImageVersion           uint16
	MinorImageVersion           uint16
	MajorSubsystemVersion       uint16
	MinorSubsystemVersion       uint16
	Win32VersionValue           uint32
	SizeOfImage                 uint32
	SizeOfHeaders                uint32
	CheckSum                     uint32
	Subsystem                    uint16
	DllCharacteristics            uint16
	SizeOfStackReserve           uint64
	SizeOfStackCommit            uint64
	SizeOfHeapReserve            uint64
	SizeOfHeapCommit             uint64
	LoaderFlags                  uint32
	NumberOfRvaAndSizes          uint32
	DataDirectory                [ImageNumberOfDirectoryEntries]DataDirectory
}

// ImageNtHeader bundles the PE signature, the COFF file header and the
// optional header (either *ImageOptionalHeader32 or *ImageOptionalHeader64,
// dispatched on the magic the parser reads at the optional header's start).
type ImageNtHeader struct {
	Signature      uint32
	FileHeader     ImageFileHeader
	OptionalHeader interface{}
}

// parseNTHeader reads the COFF header and the PE32/PE32+ optional header
// that follow the DOS stub's e_lfanew.
func (img *Image) parseNTHeader() error {
	ntOffset := img.DOSHeader.AddressOfNewEXEHeader
	sig, err := img.readUint32(uint64(ntOffset))
	if err != nil {
		return err
	}
	if sig != ImageNTSignature {
		return &Error{Kind: ErrInvalidSignature, Detail: "missing PE signature"}
	}
	img.NtHeader.Signature = sig

	fileHeaderOffset := ntOffset + 4
	fileHeaderSize := uint32(binary.Size(img.NtHeader.FileHeader))
	if err := img.structUnpack(&img.NtHeader.FileHeader, fileHeaderOffset, fileHeaderSize); err != nil {
		return err
	}

	optOffset := fileHeaderOffset + fileHeaderSize
	magic, err := img.readUint16(uint64(optOffset))
	if err != nil {
		return err
	}

	switch magic {
	case ImageNtOptionalHeader32Magic:
		var oh ImageOptionalHeader32
		if err := img.structUnpack(&oh, optOffset, uint32(binary.Size(oh))); err != nil {
			return err
		}
		img.NtHeader.OptionalHeader = &oh
		img.dataDirectories = oh.DataDirectory[:]
		img.is64 = false

	case ImageNtOptionalHeader64Magic:
		var oh ImageOptionalHeader64
		if err := img.structUnpack(&oh, optOffset, uint32(binary.Size(oh))); err != nil {
			return err
		}
		img.NtHeader.OptionalHeader = &oh
		img.dataDirectories = oh.DataDirectory[:]
		img.is64 = true

	default:
		return &Error{Kind: ErrNotAPortableExecutable, Detail: "unrecognized optional header magic"}
	}

	return nil
}

// dataDirectory returns the requested data directory entry, or an error if
// the entry is unused (zero virtual address and size).
func (img *Image) dataDirectory(entry ImageDirectoryEntry) (DataDirectory, error) {
	if int(entry) >= len(img.dataDirectories) {
		return DataDirectory{}, &Error{Kind: ErrDirectoryNotFound, Detail: "directory index out of range"}
	}
	d := img.dataDirectories[entry]
	if d.VirtualAddress == 0 && d.Size == 0 {
		return DataDirectory{}, &Error{Kind: ErrDirectoryNotFound}
	}
	return d, nil
}
