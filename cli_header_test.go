// Copyright 2026 The Fennel Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package fennel

import "testing"

func TestParseCliHeader(t *testing.T) {
	buf := make([]byte, 72)
	putU32(buf[0:4], 72)       // Cb
	buf[4], buf[5] = 2, 0      // MajorRuntimeVersion
	buf[6], buf[7] = 5, 0      // MinorRuntimeVersion
	putU32(buf[8:12], 0x3000)  // MetaData.VirtualAddress
	putU32(buf[12:16], 0x200)  // MetaData.Size
	putU32(buf[16:20], CliFlagILOnly)

	img := &Image{data: buf, size: uint64(len(buf))}
	img.Sections = []Section{{
		Header: ImageSectionHeader{
			VirtualAddress:   0,
			VirtualSize:      uint32(len(buf)),
			SizeOfRawData:    uint32(len(buf)),
			PointerToRawData: 0,
		},
		img: img,
	}}
	img.dataDirectories = make([]DataDirectory, ImageNumberOfDirectoryEntries)
	img.dataDirectories[ImageDirectoryEntryCLIHeader] = DataDirectory{VirtualAddress: 0, Size: 72}

	if err := img.parseCliHeader(); err != nil {
		t.Fatalf("parseCliHeader: %v", err)
	}
	if img.CliHeader.MetaData.VirtualAddress != 0x3000 {
		t.Errorf("MetaData.VirtualAddress = %#x, want 0x3000", img.CliHeader.MetaData.VirtualAddress)
	}
	if img.CliHeader.Flags&CliFlagILOnly == 0 {
		t.Error("expected CliFlagILOnly to be set")
	}
}

func TestParseCliHeaderMissingDirectory(t *testing.T) {
	img := &Image{data: []byte{}, size: 0}
	img.dataDirectories = make([]DataDirectory, ImageNumberOfDirectoryEntries)

	err := img.parseCliHeader()
	if e, ok := err.(*Error); !ok || e.Kind != ErrCliHeaderNotFound {
		t.Fatalf("got %v, want ErrCliHeaderNotFound", err)
	}
}
