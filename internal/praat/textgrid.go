package praat

import (
	"fmt"
	"os"

	"tgrid/internal/textenc"
)

// Interval is one time span [XMin, XMax) with a text label. Modified is set
// by the table model when the label changes after load and cleared on save.
type Interval struct {
	XMin     float64
	XMax     float64
	Text     string
	Modified bool
}

// Point is a single time-stamped mark on a point tier. Points are carried
// only so documents round-trip; the alignment engine ignores them.
type Point struct {
	Number float64
	Mark   string
}

// Tier is a named ordered sequence of intervals (or points). Index is the
// tier's 0-based position within its document, assigned at load time. Tier
// names are not required to be unique within a document.
type Tier struct {
	Name      string
	Index     int
	XMin      float64
	XMax      float64
	IsPoint   bool
	Intervals []Interval
	Points    []Point
}

// Document represents one on-disk TextGrid file.
type Document struct {
	Path     string
	Encoding textenc.Encoding
	XMin     float64
	XMax     float64
	Tiers    []Tier
}

// ReadFile parses the TextGrid at path, decoding it with the given encoding.
func ReadFile(path string, enc textenc.Encoding) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := Parse(textenc.NewReader(f, enc))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	doc.Path = path
	doc.Encoding = enc
	return doc, nil
}

// WriteFile serializes the document to path in its source encoding. The
// write is in-place over the original file; callers choose the path.
func (d *Document) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := d.Write(textenc.NewWriter(f, d.Encoding)); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
