// Copyright 2026 The Fennel Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package fennel

import "encoding/binary"

// CliHeaderFlags are the COMIMAGE_FLAGS bits carried in CliHeader.Flags.
const (
	CliFlagILOnly           = 0x00000001
	CliFlag32BitRequired    = 0x00000002
	CliFlagILLibrary        = 0x00000004
	CliFlagStrongNameSigned = 0x00000008
	CliFlagNativeEntrypoint = 0x00000010
	CliFlagTrackDebugData   = 0x00010000
	CliFlag32BitPreferred   = 0x00020000
)

// CliHeader is the IMAGE_COR20_HEADER found via the CLI Header data
// directory. It is the entry point into everything else this package
// parses: its MetaData field points at the metadata root.
type CliHeader struct {
	Cb                      uint32
	MajorRuntimeVersion     uint16
	MinorRuntimeVersion     uint16
	MetaData                DataDirectory
	Flags                   uint32
	EntryPointToken         uint32
	Resources               DataDirectory
	StrongNameSignature     DataDirectory
	CodeManagerTable        DataDirectory
	VTableFixups            DataDirectory
	ExportAddressTableJumps DataDirectory
	ManagedNativeHeader     DataDirectory
}

// parseCliHeader locates the CLI Header data directory, translates its RVA
// to a file offset, and unpacks the 72-byte IMAGE_COR20_HEADER. Absence of
// this directory means the image isn't a managed assembly at all.
func (img *Image) parseCliHeader() error {
	dir, err := img.dataDirectory(ImageDirectoryEntryCLIHeader)
	if err != nil {
		return &Error{Kind: ErrCliHeaderNotFound}
	}

	offset, err := img.rvaToOffset(dir.VirtualAddress)
	if err != nil {
		return &Error{Kind: ErrCliHeaderNotFound, Err: err}
	}

	size := uint32(binary.Size(img.CliHeader))
	if err := img.structUnpack(&img.CliHeader, uint32(offset), size); err != nil {
		return &Error{Kind: ErrCliHeaderNotFound, Err: err}
	}
	return nil
}
