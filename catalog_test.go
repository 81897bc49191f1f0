// Copyright 2026 The Fennel Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package fennel

import "testing"

// buildTablesStream assembles a minimal #~ stream containing only the
// Module table, so parseTables and the entity facades can be exercised
// without a full PE/CLI fixture.
func buildTablesStream(rows []byte) []byte {
	buf := []byte{
		0, 0, 0, 0, // reserved
		2, 0, // major/minor version
		0, // heap sizes: everything narrow
		0, // reserved
	}
	valid := uint64(1) << uint(TableModule)
	buf = append(buf, le64(valid)...)
	buf = append(buf, le64(0)...) // sorted
	buf = append(buf, le32(1)...) // Module row count
	buf = append(buf, rows...)
	return buf
}

// buildTablesStreamWithExtraData is buildTablesStream but with the
// HeapSizes EXTRA_DATA bit (0x40) set and an extra 4-byte field inserted
// between the row counts and the row data, mirroring what a heap whose
// size exceeds the normal encoding produces in the wild.
func buildTablesStreamWithExtraData(rows []byte) []byte {
	buf := []byte{
		0, 0, 0, 0, // reserved
		2, 0,              // major/minor version
		heapSizeExtraData, // heap sizes: narrow heaps, extra data present
		0,                 // reserved
	}
	valid := uint64(1) << uint(TableModule)
	buf = append(buf, le64(valid)...)
	buf = append(buf, le64(0)...) // sorted
	buf = append(buf, le32(1)...) // Module row count
	buf = append(buf, le32(0xDEADBEEF)...) // extra data, unused
	buf = append(buf, rows...)
	return buf
}

func le32(v uint32) []byte {
	return []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
}

func le64(v uint64) []byte {
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * i))
	}
	return b
}

func TestParseTablesAndModuleFacade(t *testing.T) {
	moduleRow := append(le32(0)[:2], // Generation (u16, narrow)
		le32(1)[:2]..., // Name -> string heap offset 1
	)
	moduleRow = append(moduleRow, le32(1)[:2]...) // Mvid -> guid index 1
	moduleRow = append(moduleRow, le32(0)[:2]...) // EncId
	moduleRow = append(moduleRow, le32(0)[:2]...) // EncBaseId

	img := &Image{tablesStreamData: buildTablesStream(moduleRow)}
	img.Heaps.strings = append([]byte{0x00}, "MyModule\x00"...)
	var guid [16]byte
	for i := range guid {
		guid[i] = byte(i + 1)
	}
	img.Heaps.guids = guid[:]

	if err := img.parseTables(); err != nil {
		t.Fatalf("parseTables: %v", err)
	}

	if got := img.Tables.RowCount(TableModule); got != 1 {
		t.Fatalf("RowCount(Module) = %d, want 1", got)
	}

	m, err := img.Module()
	if err != nil {
		t.Fatalf("Module(): %v", err)
	}
	name, err := m.Name()
	if err != nil {
		t.Fatalf("Name(): %v", err)
	}
	if name != "MyModule" {
		t.Errorf("Name() = %q, want %q", name, "MyModule")
	}

	mvid, err := m.Mvid()
	if err != nil {
		t.Fatalf("Mvid(): %v", err)
	}
	if mvid != GUID(guid) {
		t.Errorf("Mvid() = %v, want %v", mvid, GUID(guid))
	}
}

func TestParseTablesConsumesExtraData(t *testing.T) {
	moduleRow := append(le32(0)[:2], // Generation (u16, narrow)
		le32(1)[:2]..., // Name -> string heap offset 1
	)
	moduleRow = append(moduleRow, le32(1)[:2]...) // Mvid -> guid index 1
	moduleRow = append(moduleRow, le32(0)[:2]...) // EncId
	moduleRow = append(moduleRow, le32(0)[:2]...) // EncBaseId

	img := &Image{tablesStreamData: buildTablesStreamWithExtraData(moduleRow)}
	img.Heaps.strings = append([]byte{0x00}, "MyModule\x00"...)
	var guid [16]byte
	for i := range guid {
		guid[i] = byte(i + 1)
	}
	img.Heaps.guids = guid[:]

	if err := img.parseTables(); err != nil {
		t.Fatalf("parseTables: %v", err)
	}

	m, err := img.Module()
	if err != nil {
		t.Fatalf("Module(): %v", err)
	}
	name, err := m.Name()
	if err != nil {
		t.Fatalf("Name(): %v", err)
	}
	if name != "MyModule" {
		t.Errorf("Name() = %q, want %q; row data likely decoded at the wrong offset", name, "MyModule")
	}
}

func TestParseTablesRejectsUnmodeledTable(t *testing.T) {
	buf := []byte{
		0, 0, 0, 0,
		2, 0,
		0,
		0,
	}
	// Set an out-of-range bit (portable-debug table 0x30) in Valid.
	valid := uint64(1) << 0x30
	buf = append(buf, le64(valid)...)
	buf = append(buf, le64(0)...)
	buf = append(buf, le32(0)...)

	img := &Image{tablesStreamData: buf}
	err := img.parseTables()
	if err == nil {
		t.Fatal("expected error for unmodeled table")
	}
	if e, ok := err.(*Error); !ok || e.Kind != ErrUnsupportedTable {
		t.Errorf("got %v, want ErrUnsupportedTable", err)
	}
}
