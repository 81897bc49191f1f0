// Copyright 2026 The Fennel Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package fennel

// metadataRootSignature is the "BSJB" magic every metadata root begins
// with (ECMA-335 §II.24.2.1).
const metadataRootSignature = 0x424A5342

// StreamHeader describes one entry of the metadata stream directory: a
// named region of the metadata root, given as an offset relative to the
// root's own start.
type StreamHeader struct {
	Offset uint32
	Size   uint32
	Name   string
}

// MetadataHeader is the metadata root itself, as found at the file offset
// the CLI header's MetaData directory resolves to.
type MetadataHeader struct {
	MajorVersion  uint16
	MinorVersion  uint16
	VersionString string
	Flags         uint16
	Streams       []StreamHeader
}

// parseMetadataRoot reads the "BSJB" metadata root and its stream
// directory, then hands each well-known stream's raw bytes off to the
// heaps and to the table-stream parser.
func (img *Image) parseMetadataRoot() error {
	dir := img.CliHeader.MetaData
	offset, err := img.rvaToOffset(dir.VirtualAddress)
	if err != nil {
		return &Error{Kind: ErrMalformed, Detail: "metadata root rva out of range", Err: err}
	}
	img.metadataRootOffset = offset

	c := newCursor(img.data)
	c.pos = int(offset)

	sig, err := c.u32()
	if err != nil {
		return &Error{Kind: ErrMalformed, Detail: "truncated metadata root", Err: err}
	}
	if sig != metadataRootSignature {
		return &Error{Kind: ErrInvalidSignature, Detail: "missing BSJB metadata signature"}
	}

	major, err := c.u16()
	if err != nil {
		return err
	}
	minor, err := c.u16()
	if err != nil {
		return err
	}
	if _, err := c.u32(); err != nil { // reserved
		return err
	}
	versionLength, err := c.u32()
	if err != nil {
		return err
	}
	versionBytes, err := c.bytes(int(versionLength))
	if err != nil {
		return &Error{Kind: ErrMalformed, Detail: "truncated version string", Err: err}
	}
	version := cString(versionBytes)

	// The version string's padding isn't accounted for by its own length;
	// the next field starts on the next 4-byte boundary of the image
	// buffer, which is also the next 4-byte boundary from the root when the
	// root itself starts at a multiple of 4.
	if pad := c.pos % 4; pad != 0 {
		c.pos += 4 - pad
	}

	flags, err := c.u16()
	if err != nil {
		return err
	}
	streamCount, err := c.u16()
	if err != nil {
		return err
	}

	img.Metadata = MetadataHeader{
		MajorVersion:  major,
		MinorVersion:  minor,
		VersionString: version,
		Flags:         flags,
	}

	for i := uint16(0); i < streamCount; i++ {
		streamOffset, err := c.u32()
		if err != nil {
			return err
		}
		streamSize, err := c.u32()
		if err != nil {
			return err
		}
		name, err := readPaddedName(c)
		if err != nil {
			return err
		}
		img.Metadata.Streams = append(img.Metadata.Streams, StreamHeader{
			Offset: streamOffset,
			Size:   streamSize,
			Name:   name,
		})
	}

	return img.bindStreams()
}

// readPaddedName reads a NUL-terminated ASCII stream name, then consumes
// padding up to the next 4-byte boundary the way the stream directory
// requires.
func readPaddedName(c *cursor) (string, error) {
	start := c.pos
	for {
		b, err := c.u8()
		if err != nil {
			return "", &Error{Kind: ErrMalformed, Detail: "unterminated stream name"}
		}
		if b == 0 {
			break
		}
	}
	name := string(c.buf[start : c.pos-1])
	if pad := c.pos % 4; pad != 0 {
		c.pos += 4 - pad
	}
	return name, nil
}

// cString trims a byte slice at its first NUL, or returns it whole if
// there is none.
func cString(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}

// streamBytes returns the raw bytes of the named stream, relative to the
// metadata root.
func (img *Image) streamBytes(name string) ([]byte, error) {
	for _, s := range img.Metadata.Streams {
		if s.Name == name {
			start := img.metadataRootOffset + uint64(s.Offset)
			return img.readBytes(start, uint64(s.Size))
		}
	}
	return nil, &Error{Kind: ErrStreamNotFound, Detail: name}
}

// bindStreams wires up the #Strings/#US/#GUID/#Blob heaps and locates the
// tables stream (#~, or its uncompressed #- sibling).
func (img *Image) bindStreams() error {
	if b, err := img.streamBytes("#Strings"); err == nil {
		img.Heaps.strings = b
	}
	if b, err := img.streamBytes("#US"); err == nil {
		img.Heaps.userStrings = b
	}
	if b, err := img.streamBytes("#GUID"); err == nil {
		img.Heaps.guids = b
	}
	if b, err := img.streamBytes("#Blob"); err == nil {
		img.Heaps.blobs = b
	}

	tables, err := img.streamBytes("#~")
	if err != nil {
		tables, err = img.streamBytes("#-")
	}
	if err != nil {
		return &Error{Kind: ErrStreamNotFound, Detail: "#~/#-"}
	}
	img.tablesStreamData = tables
	return nil
}
