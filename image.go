// Copyright 2026 The Fennel Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package fennel

import (
	"os"

	"github.com/go-kratos/kratos/v2/log"
)

// Options configures how an Image is loaded and parsed.
type Options struct {
	// Logger receives diagnostic messages encountered while parsing.
	// Defaults to a kratos logger writing errors only to stdout.
	Logger log.Logger
}

func (o Options) logger() *log.Helper {
	l := o.Logger
	if l == nil {
		l = log.NewFilter(log.NewStdLogger(os.Stdout), log.FilterLevel(log.LevelError))
	}
	return log.NewHelper(l)
}

// Image is a parsed PE file carrying CLI (.NET) metadata: headers, section
// table, metadata streams, heaps and the logical table catalog they decode
// into.
type Image struct {
	DOSHeader ImageDOSHeader
	NtHeader  ImageNtHeader
	Sections  []Section

	CliHeader CliHeader
	Metadata  MetadataHeader
	Heaps     Heaps
	Tables    Catalog

	data            []byte
	size            uint64
	is64            bool
	dataDirectories []DataDirectory
	log             *log.Helper

	metadataRootOffset uint64
	tablesStreamData   []byte

}

// Load reads and parses the PE/CLI image stored at path.
func Load(path string, opts Options) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Kind: ErrIO, Err: err}
	}
	return LoadBytes(data, opts)
}

// LoadBytes parses a PE/CLI image already held in memory. The returned
// Image aliases data; callers must not mutate it afterwards.
func LoadBytes(data []byte, opts Options) (*Image, error) {
	img := &Image{
		data: data,
		size: uint64(len(data)),
		log:  opts.logger(),
	}
	if err := img.parse(); err != nil {
		img.log.Errorw("msg", "failed to parse image", "err", err)
		return nil, err
	}
	return img, nil
}

// parse walks the image the way the format demands: DOS stub, NT headers,
// section table, then the CLI header and the metadata root it points at.
// Any failure before the CLI header is a PE-container problem; any failure
// after it is a metadata problem. Most Kind values belong to one side only,
// but ErrInvalidSignature is returned both for the MZ/PE signatures and for
// the metadata root's BSJB signature.
func (img *Image) parse() error {
	if err := img.parseDOSHeader(); err != nil {
		return err
	}
	if err := img.parseNTHeader(); err != nil {
		return err
	}
	if err := img.parseSectionTable(); err != nil {
		return err
	}
	if err := img.parseCliHeader(); err != nil {
		return err
	}
	if err := img.parseMetadataRoot(); err != nil {
		return err
	}
	if err := img.parseTables(); err != nil {
		return err
	}
	return nil
}

// Is64 reports whether the image carries a PE32+ optional header.
func (img *Image) Is64() bool {
	return img.is64
}
