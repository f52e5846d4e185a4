// Package document loads annotation files into parsed documents with
// provenance attached.
//
// Load classifies failures with the ErrIO and ErrParse markers so bulk
// callers (catalog scans, alignment passes) can skip and log a bad file
// while still telling a missing file apart from a malformed one.
package document

import (
	"errors"
	"fmt"

	"tgrid/internal/praat"
	"tgrid/internal/textenc"
)

var (
	// ErrIO marks failures opening or reading a file.
	ErrIO = errors.New("io error")
	// ErrParse marks files that could be read but not understood.
	ErrParse = errors.New("parse error")
)

// Load detects the encoding of the file at path, parses it, and attaches
// provenance: source path, detected encoding, and 0-based tier indexes.
func Load(path string) (*praat.Document, error) {
	enc, err := textenc.Detect(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}

	doc, err := praat.ReadFile(path, enc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	doc.Path = path
	doc.Encoding = enc
	for i := range doc.Tiers {
		doc.Tiers[i].Index = i
	}
	return doc, nil
}
