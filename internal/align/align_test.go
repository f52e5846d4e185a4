package align_test

import (
	"path/filepath"
	"reflect"
	"testing"

	"tgrid/internal/align"
	"tgrid/internal/testsupport"
)

func newEngine() *align.Engine {
	return align.NewEngine(".TextGrid", nil)
}

func TestAlignEndToEnd(t *testing.T) {
	dir := t.TempDir()
	path := testsupport.WriteTextGrid(t, dir, "one.TextGrid", testsupport.Grid{
		XMax: 1,
		Tiers: []testsupport.GridTier{
			{Name: "word", Intervals: []testsupport.GridInterval{{XMin: 0, XMax: 1, Text: "cat"}}},
			{Name: "phone", Intervals: []testsupport.GridInterval{{XMin: 0, XMax: 1, Text: "k"}}},
		},
	})

	table := newEngine().Align(dir, "word", []string{"phone"})
	if !reflect.DeepEqual(table.Headers, []string{"filename", "word", "phone"}) {
		t.Fatalf("unexpected headers: %v", table.Headers)
	}
	if len(table.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(table.Rows))
	}
	row := table.Rows[0]
	if row.Source != path {
		t.Fatalf("row source = %q, want %q", row.Source, path)
	}
	if got := row.Cells[0].Text(); got != "cat" {
		t.Fatalf("primary cell = %q, want cat", got)
	}
	if got := row.Cells[1].Text(); got != "k" {
		t.Fatalf("secondary cell = %q, want k", got)
	}
}

func TestAlignKeyExactness(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteTextGrid(t, dir, "exact.TextGrid", testsupport.Grid{
		XMax: 3,
		Tiers: []testsupport.GridTier{
			{Name: "word", Intervals: []testsupport.GridInterval{
				{XMin: 1.0, XMax: 2.0, Text: "aligned"},
				{XMin: 2.0, XMax: 3.0, Text: "lonely"},
			}},
			{Name: "phone", Intervals: []testsupport.GridInterval{
				{XMin: 1.0, XMax: 2.0, Text: "match"},
				{XMin: 2.0000001, XMax: 3.0, Text: "off by epsilon"},
			}},
		},
	})

	table := newEngine().Align(dir, "word", []string{"phone"})
	if len(table.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(table.Rows))
	}
	if got := table.Rows[0].Cells[1].Text(); got != "match" {
		t.Fatalf("exact match slot = %q, want match", got)
	}
	if table.Rows[1].Cells[1].Valid() {
		t.Fatalf("near-miss bound must not align, got %q", table.Rows[1].Cells[1].Text())
	}
}

func TestAlignSkipsBlankPrimaryIntervals(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteTextGrid(t, dir, "blank.TextGrid", testsupport.Grid{
		XMax: 2,
		Tiers: []testsupport.GridTier{
			{Name: "word", Intervals: []testsupport.GridInterval{
				{XMin: 0, XMax: 1, Text: "   "},
				{XMin: 1, XMax: 2, Text: "ok"},
			}},
		},
	})

	table := newEngine().Align(dir, "word", nil)
	if len(table.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(table.Rows))
	}
	if got := table.Rows[0].Cells[0].Text(); got != "ok" {
		t.Fatalf("row text = %q, want ok", got)
	}
}

func TestAlignHeaderOrderIgnoresTierOrderInFiles(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteTextGrid(t, dir, "shuffled.TextGrid", testsupport.Grid{
		XMax: 1,
		Tiers: []testsupport.GridTier{
			{Name: "gloss", Intervals: []testsupport.GridInterval{{XMin: 0, XMax: 1, Text: "CAT"}}},
			{Name: "word", Intervals: []testsupport.GridInterval{{XMin: 0, XMax: 1, Text: "cat"}}},
			{Name: "phone", Intervals: []testsupport.GridInterval{{XMin: 0, XMax: 1, Text: "k"}}},
		},
	})

	table := newEngine().Align(dir, "word", []string{"phone", "gloss"})
	want := []string{"filename", "word", "phone", "gloss"}
	if !reflect.DeepEqual(table.Headers, want) {
		t.Fatalf("headers = %v, want %v", table.Headers, want)
	}
	row := table.Rows[0]
	if row.Cells[1].Text() != "k" || row.Cells[2].Text() != "CAT" {
		t.Fatalf("slots out of order: %q %q", row.Cells[1].Text(), row.Cells[2].Text())
	}
}

func TestAlignInvalidRootYieldsEmptyTable(t *testing.T) {
	engine := newEngine()
	for _, root := range []string{
		"relative/path",
		filepath.Join(t.TempDir(), "does-not-exist"),
	} {
		table := engine.Align(root, "word", []string{"phone"})
		if len(table.Headers) != 0 || len(table.Rows) != 0 {
			t.Fatalf("root %q: expected empty table, got %v", root, table.Headers)
		}
	}
}

func TestAlignIdenticalSpansInDifferentFilesStaySeparate(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteTextGrid(t, dir, "a.TextGrid", testsupport.Grid{
		XMax: 1,
		Tiers: []testsupport.GridTier{
			{Name: "word", Intervals: []testsupport.GridInterval{{XMin: 0, XMax: 1, Text: "first"}}},
		},
	})
	testsupport.WriteTextGrid(t, dir, "b.TextGrid", testsupport.Grid{
		XMax: 1,
		Tiers: []testsupport.GridTier{
			{Name: "word", Intervals: []testsupport.GridInterval{{XMin: 0, XMax: 1, Text: "second"}}},
		},
	})

	table := newEngine().Align(dir, "word", nil)
	if len(table.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(table.Rows))
	}
	if table.Rows[0].Cells[0].Text() != "first" || table.Rows[1].Cells[0].Text() != "second" {
		t.Fatalf("rows merged across files: %+v", table.Rows)
	}
}

func TestAlignIdempotentReload(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteTextGrid(t, dir, "a.TextGrid", testsupport.Grid{
		XMax: 2,
		Tiers: []testsupport.GridTier{
			{Name: "word", Intervals: []testsupport.GridInterval{
				{XMin: 0, XMax: 1, Text: "one"},
				{XMin: 1, XMax: 2, Text: "two"},
			}},
			{Name: "phone", Intervals: []testsupport.GridInterval{{XMin: 0, XMax: 1, Text: "w"}}},
		},
	})
	testsupport.WriteTextGrid(t, dir, "b.TextGrid", testsupport.Grid{
		XMax: 1,
		Tiers: []testsupport.GridTier{
			{Name: "word", Intervals: []testsupport.GridInterval{{XMin: 0, XMax: 1, Text: "three"}}},
		},
	})

	engine := newEngine()
	first := engine.Align(dir, "word", []string{"phone"})
	second := engine.Align(dir, "word", []string{"phone"})

	if !reflect.DeepEqual(first.Headers, second.Headers) {
		t.Fatalf("headers differ across reloads: %v vs %v", first.Headers, second.Headers)
	}
	if len(first.Rows) != len(second.Rows) {
		t.Fatalf("row counts differ: %d vs %d", len(first.Rows), len(second.Rows))
	}
	for i := range first.Rows {
		a, b := first.Rows[i], second.Rows[i]
		if a.Source != b.Source {
			t.Fatalf("row %d source differs: %q vs %q", i, a.Source, b.Source)
		}
		for c := range a.Cells {
			if a.Cells[c].Text() != b.Cells[c].Text() {
				t.Fatalf("row %d cell %d differs: %q vs %q", i, c, a.Cells[c].Text(), b.Cells[c].Text())
			}
		}
	}
}

func TestAlignSkipsFilesWithoutPrimaryTier(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteTextGrid(t, dir, "no-primary.TextGrid", testsupport.Grid{
		XMax: 1,
		Tiers: []testsupport.GridTier{
			{Name: "phone", Intervals: []testsupport.GridInterval{{XMin: 0, XMax: 1, Text: "k"}}},
		},
	})
	testsupport.WriteTextGrid(t, dir, "with-primary.TextGrid", testsupport.Grid{
		XMax: 1,
		Tiers: []testsupport.GridTier{
			{Name: "word", Intervals: []testsupport.GridInterval{{XMin: 0, XMax: 1, Text: "cat"}}},
		},
	})

	table := newEngine().Align(dir, "word", []string{"phone"})
	if len(table.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(table.Rows))
	}
	if table.Rows[0].Cells[0].Text() != "cat" {
		t.Fatalf("unexpected row: %+v", table.Rows[0])
	}
}

func TestAlignIgnoresPointTiers(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteTextGrid(t, dir, "points.TextGrid", testsupport.Grid{
		XMax: 1,
		Tiers: []testsupport.GridTier{
			{Name: "word", Point: true},
			{Name: "word", Intervals: []testsupport.GridInterval{{XMin: 0, XMax: 1, Text: "cat"}}},
		},
	})

	table := newEngine().Align(dir, "word", nil)
	if len(table.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(table.Rows))
	}
	if table.Rows[0].Cells[0].Tier != 1 {
		t.Fatalf("primary resolved to point tier: %+v", table.Rows[0].Cells[0])
	}
}
