// Copyright 2026 The Fennel Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package fennel

// columnKind identifies how one column of a table row is encoded in the
// #~/#- tables stream.
type columnKind int

const (
	colU16 columnKind = iota
	colU32
	colStringHeap
	colGUIDHeap
	colBlobHeap
	colSimpleIndex
	colCodedIndex
)

// column describes one field of a table row: its name (used by the typed
// entity facades), its storage kind, and, for index columns, what it
// points at.
type column struct {
	name   string
	kind   columnKind
	target TableIndex      // colSimpleIndex
	coded  codedIndexKind  // colCodedIndex
}

// row is a fully-decoded table row: one widened uint32 per column. Heap
// columns hold the heap offset/index; simple-index columns hold the raw
// row number; coded-index columns hold the packed tag+row value, decoded
// lazily via the schema's codedIndexKind.
type row struct {
	values []uint32
}

func (r row) u32(i int) uint32 {
	return r.values[i]
}

// width reports how many bytes this column occupies in the tables stream,
// given a MetadataSizes snapshot computed from the stream header.
func (c column) width(sizes MetadataSizes) int {
	switch c.kind {
	case colU16:
		return 2
	case colU32:
		return 4
	case colStringHeap:
		return sizes.heaps.stringIndexSize()
	case colGUIDHeap:
		return sizes.heaps.guidIndexSize()
	case colBlobHeap:
		return sizes.heaps.blobIndexSize()
	case colSimpleIndex:
		return sizes.IndexSize(c.target)
	case colCodedIndex:
		return sizes.CodedIndexSize(c.coded)
	}
	return 4
}

// decodeRow reads one row's worth of columns out of c, given each
// column's resolved width.
func decodeRow(c *cursor, schema []column, widths []int) (row, error) {
	r := row{values: make([]uint32, len(schema))}
	for i, w := range widths {
		var v uint32
		var err error
		switch w {
		case 2:
			var u uint16
			u, err = c.u16()
			v = uint32(u)
		default:
			v, err = c.u32()
		}
		if err != nil {
			return row{}, &Error{Kind: ErrMalformed, Detail: "truncated table row: " + schema[i].name, Err: err}
		}
		r.values[i] = v
	}
	return r, nil
}
