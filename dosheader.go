// Copyright 2026 The Fennel Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package fennel

import (
	"encoding/binary"
)

// ImageDOSZMSignature is the legacy "ZM" signature accepted by some loaders
// in place of "MZ". It is recognized but not otherwise special-cased.
const ImageDOSZMSignature = 0x4D5A

// ImageDOSHeader represents the MS-DOS stub every PE image carries ahead of
// its real NT headers.
type ImageDOSHeader struct {
	Magic                    uint16
	BytesOnLastPageOfFile    uint16
	PagesInFile              uint16
	Relocations              uint16
	SizeOfHeader             uint16
	MinExtraParagraphsNeeded uint16
	MaxExtraParagraphsNeeded uint16
	InitialSS                uint16
	InitialSP                uint16
	Checksum                 uint16
	InitialIP                uint16
	InitialCS                uint16
	AddressOfRelocationTable uint16
	OverlayNumber            uint16
	ReservedWords1           [4]uint16
	OEMIdentifier            uint16
	OEMInformation           uint16
	ReservedWords2           [10]uint16

	// AddressOfNewEXEHeader (e_lfanew) points at the real NT headers.
	AddressOfNewEXEHeader uint32
}

// parseDOSHeader unpacks the DOS stub at offset zero and validates just
// enough of it to locate the NT headers: the MZ/ZM magic and a sane
// e_lfanew. Everything else in the stub is cosmetic as far as a CLI metadata
// reader is concerned.
func (img *Image) parseDOSHeader() error {
	size := uint32(binary.Size(img.DOSHeader))
	if err := img.structUnpack(&img.DOSHeader, 0, size); err != nil {
		return err
	}

	if img.DOSHeader.Magic != ImageDOSSignature &&
		img.DOSHeader.Magic != ImageDOSZMSignature {
		return &Error{Kind: ErrInvalidSignature, Detail: "missing MZ signature"}
	}

	// e_lfanew is the only required field (besides the magic) for the DOS
	// stub to also be a valid PE. It can't be null, since the signatures
	// would then overlap, and it can be 4 at minimum.
	if img.DOSHeader.AddressOfNewEXEHeader < 4 ||
		uint64(img.DOSHeader.AddressOfNewEXEHeader) > img.size {
		return &Error{Kind: ErrNotAPortableExecutable, Detail: "invalid e_lfanew value"}
	}

	return nil
}
