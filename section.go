// Copyright 2026 The Fennel Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package fennel

import "encoding/binary"

// ImageSectionHeader is one 40-byte entry of the PE section table.
type ImageSectionHeader struct {
	Name                 [8]uint8
	VirtualSize          uint32
	VirtualAddress       uint32
	SizeOfRawData        uint32
	PointerToRawData     uint32
	PointerToRelocations uint32
	PointerToLineNumbers uint32
	NumberOfRelocations  uint16
	NumberOfLineNumbers  uint16
	Characteristics      uint32
}

// NameString returns the section name with trailing NUL padding trimmed.
func (h ImageSectionHeader) NameString() string {
	n := 0
	for n < len(h.Name) && h.Name[n] != 0 {
		n++
	}
	return string(h.Name[:n])
}

// Section pairs a parsed section header with a reference back to the image
// it belongs to, so callers can pull raw bytes out of it.
type Section struct {
	Header ImageSectionHeader
	img    *Image
}

// contains reports whether rva falls within this section's virtual range.
func (s Section) contains(rva uint32) bool {
	if rva < s.Header.VirtualAddress {
		return false
	}
	return rva < s.Header.VirtualAddress+s.Header.VirtualSize
}

// parseSectionTable reads the NumberOfSections entries that follow the
// optional header.
func (img *Image) parseSectionTable() error {
	sizeOfOptionalHeader := img.NtHeader.FileHeader.SizeOfOptionalHeader

	fileHeaderOffset := img.DOSHeader.AddressOfNewEXEHeader + 4
	optOffset := fileHeaderOffset + uint32(binary.Size(img.NtHeader.FileHeader))
	offset := optOffset + uint32(sizeOfOptionalHeader)

	sectionSize := uint32(binary.Size(ImageSectionHeader{}))
	count := img.NtHeader.FileHeader.NumberOfSections

	img.Sections = make([]Section, 0, count)
	for i := uint16(0); i < count; i++ {
		var h ImageSectionHeader
		if err := img.structUnpack(&h, offset, sectionSize); err != nil {
			return err
		}
		img.Sections = append(img.Sections, Section{Header: h, img: img})
		offset += sectionSize
	}
	return nil
}

// data returns a bounds-checked view of length bytes starting at rva,
// translated through this section's virtual-to-raw mapping.
func (s Section) data(rva uint32, length uint64) ([]byte, error) {
	if !s.contains(rva) {
		return nil, &Error{Kind: ErrSectionNotFound}
	}
	delta := rva - s.Header.VirtualAddress
	offset := uint64(s.Header.PointerToRawData) + uint64(delta)
	return s.img.readBytes(offset, length)
}
