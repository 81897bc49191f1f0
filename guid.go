// Copyright 2026 The Fennel Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package fennel

import "fmt"

// GUID is a 16-byte globally unique identifier, stored exactly as it
// appears in the #GUID heap (a Microsoft GUID, not a byte-order-neutral
// UUID).
type GUID [16]byte

// EmptyGUID is the all-zero GUID.
var EmptyGUID = GUID{}

// guidFromBytes builds a GUID from a 16-byte slice, rather than panicking
// on a short read the way a fixed-size conversion would.
func guidFromBytes(b []byte) (GUID, error) {
	var g GUID
	if len(b) != 16 {
		return g, &Error{Kind: ErrInvalidHeapReference, Detail: "guid must be exactly 16 bytes"}
	}
	copy(g[:], b)
	return g, nil
}

// String renders the GUID in the conventional
// {XXXXXXXX-XXXX-XXXX-XXXX-XXXXXXXXXXXX} form, reading the first three
// fields little-endian and the last two big-endian, per the Microsoft GUID
// layout.
func (g GUID) String() string {
	return fmt.Sprintf("{%02X%02X%02X%02X-%02X%02X-%02X%02X-%02X%02X-%02X%02X%02X%02X%02X%02X}",
		g[3], g[2], g[1], g[0],
		g[5], g[4],
		g[7], g[6],
		g[8], g[9],
		g[10], g[11], g[12], g[13], g[14], g[15])
}
