// Package testsupport provides fixture helpers shared by package tests.
package testsupport

import (
	"path/filepath"
	"testing"

	"tgrid/internal/praat"
	"tgrid/internal/textenc"
)

// GridInterval describes one interval of a fixture tier.
type GridInterval struct {
	XMin float64
	XMax float64
	Text string
}

// GridTier describes one tier of a fixture TextGrid.
type GridTier struct {
	Name      string
	Point     bool
	Intervals []GridInterval
}

// Grid describes a fixture TextGrid file.
type Grid struct {
	XMin     float64
	XMax     float64
	Encoding textenc.Encoding
	Tiers    []GridTier
}

// WriteTextGrid serializes the fixture under dir and returns its path.
func WriteTextGrid(t testing.TB, dir, name string, grid Grid) string {
	t.Helper()

	enc := grid.Encoding
	if enc == "" {
		enc = textenc.UTF8
	}
	doc := &praat.Document{
		XMin:     grid.XMin,
		XMax:     grid.XMax,
		Encoding: enc,
	}
	for i, tier := range grid.Tiers {
		out := praat.Tier{
			Name:    tier.Name,
			Index:   i,
			XMin:    grid.XMin,
			XMax:    grid.XMax,
			IsPoint: tier.Point,
		}
		for _, iv := range tier.Intervals {
			out.Intervals = append(out.Intervals, praat.Interval{XMin: iv.XMin, XMax: iv.XMax, Text: iv.Text})
		}
		doc.Tiers = append(doc.Tiers, out)
	}

	path := filepath.Join(dir, name)
	doc.Path = path
	if err := doc.WriteFile(path); err != nil {
		t.Fatalf("write fixture %s: %v", name, err)
	}
	return path
}
