// Copyright 2026 The Fennel Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package fennel

// Heap-size flag bits read from the tables stream header. Each gates the
// handle width of exactly one heap; ECMA-335 §II.24.2.6 defines them as
// independent bits and this package honors that independence rather than
// deriving GUID/Blob width from the Strings bit.
const (
	heapSizeWideStrings = 0x01
	heapSizeWideGUID    = 0x02
	heapSizeWideBlob    = 0x04

	// heapSizeExtraData marks one additional 4-byte field, read but
	// otherwise unused, inserted between the row counts and the row data
	// itself.
	heapSizeExtraData = 0x40
)

// Catalog holds every decoded row of every present metadata table. It is
// the backing store for the typed entity facades (TypeDef, MethodDef,
// Field, ...); most callers reach it through those rather than directly.
type Catalog struct {
	rowCounts [tableCount]uint32
	rows      map[TableIndex][]row
}

// RowCount returns how many rows table t has. Tables absent from the
// metadata report zero.
func (c *Catalog) RowCount(t TableIndex) uint32 {
	return c.rowCounts[t]
}

// row looks up the idx'th row (1-based) of table t.
func (c *Catalog) row(t TableIndex, idx uint32) (row, []column, error) {
	rows, ok := c.rows[t]
	if !ok || idx == 0 || idx > uint32(len(rows)) {
		return row{}, nil, &Error{Kind: ErrMalformed, Detail: "row index out of range: " + t.String()}
	}
	return rows[idx-1], tableSchemas[t], nil
}

// columnIndex finds a column by name within a schema. Entity facades call
// this once per field access; schemas are small enough that a linear scan
// costs nothing that matters.
func columnIndex(schema []column, name string) int {
	for i, c := range schema {
		if c.name == name {
			return i
		}
	}
	return -1
}

// parseTables reads the #~/#- stream header (reserved word, version,
// HeapSizes, reserved byte, Valid/Sorted bitmasks, per-table row counts)
// and then decodes every present table's rows in ascending table-number
// order, which is the order their rows are laid out in the stream.
func (img *Image) parseTables() error {
	c := newCursor(img.tablesStreamData)

	if _, err := c.u32(); err != nil { // reserved
		return err
	}
	if _, err := c.u8(); err != nil { // major version
		return err
	}
	if _, err := c.u8(); err != nil { // minor version
		return err
	}
	heapSizes, err := c.u8()
	if err != nil {
		return err
	}
	if _, err := c.u8(); err != nil { // reserved
		return err
	}
	valid, err := c.u64()
	if err != nil {
		return err
	}
	sorted, err := c.u64()
	if err != nil {
		return err
	}
	_ = sorted

	img.Heaps.wideStrings = heapSizes&heapSizeWideStrings != 0
	img.Heaps.wideGUID = heapSizes&heapSizeWideGUID != 0
	img.Heaps.wideBlob = heapSizes&heapSizeWideBlob != 0

	img.Tables = Catalog{rows: make(map[TableIndex][]row)}

	present := make([]TableIndex, 0, 32)
	for bit := uint(0); bit < 64; bit++ {
		if !isBitSet(valid, bit) {
			continue
		}
		t := TableIndex(bit)
		if int(t) >= tableCount || tableSchemas[t] == nil {
			// A present-but-unmodeled table makes every later table's
			// offset unrecoverable, since each table's position is the
			// cumulative size of every earlier one.
			return &Error{Kind: ErrUnsupportedTable, Detail: t.String()}
		}
		present = append(present, t)
	}

	for _, t := range present {
		n, err := c.u32()
		if err != nil {
			return err
		}
		img.Tables.rowCounts[t] = n
	}

	if heapSizes&heapSizeExtraData != 0 {
		if _, err := c.u32(); err != nil { // extra data, unused
			return err
		}
	}

	sizes := MetadataSizes{rowCounts: img.Tables.rowCounts, heaps: &img.Heaps}

	for _, t := range present {
		schema := tableSchemas[t]
		widths := make([]int, len(schema))
		for i, col := range schema {
			widths[i] = col.width(sizes)
		}

		n := img.Tables.rowCounts[t]
		rows := make([]row, 0, n)
		for i := uint32(0); i < n; i++ {
			r, err := decodeRow(c, schema, widths)
			if err != nil {
				return err
			}
			rows = append(rows, r)
		}
		img.Tables.rows[t] = rows
	}

	return nil
}
