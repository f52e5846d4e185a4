package align

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"tgrid/internal/document"
	"tgrid/internal/praat"
)

// FilenameColumn is the header of the leading source-path column.
const FilenameColumn = "filename"

// Cell addresses one interval inside a loaded document. The zero Cell is
// an absent slot (no secondary interval matched the row's time span).
type Cell struct {
	Doc      *praat.Document
	Tier     int
	Interval int
}

// Valid reports whether the cell points at an interval.
func (c Cell) Valid() bool { return c.Doc != nil }

// Ref returns the addressed interval for in-place mutation.
func (c Cell) Ref() *praat.Interval {
	return &c.Doc.Tiers[c.Tier].Intervals[c.Interval]
}

// Text returns the interval's label, or "" for an absent slot.
func (c Cell) Text() string {
	if !c.Valid() {
		return ""
	}
	return c.Ref().Text
}

// Row is one line of the aligned table. Cells holds one slot per tier
// column: the primary tier at index 0, then the secondary tiers in
// selection order.
type Row struct {
	Source string
	Cells  []Cell
}

// Table is the aligned output. Headers lead with the filename column and
// the column set is fixed until the next alignment pass; cell contents
// remain mutable through the coordinates in Rows.
type Table struct {
	Headers []string
	Rows    []Row
}

// Engine joins annotation files under a directory into aligned tables.
type Engine struct {
	ext    string
	logger *slog.Logger
}

// NewEngine returns an engine matching files by extension ext.
func NewEngine(ext string, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{ext: ext, logger: logger}
}

type spanKey struct {
	source     string
	xmin, xmax float64
}

// Align scans root recursively and joins every file's tiers into one
// table. root must be an absolute path to an existing directory; anything
// else yields an empty table rather than an error, and callers detect the
// no-op by the empty header set. Files that fail to load and files without
// the primary tier are logged and skipped.
func (e *Engine) Align(root, primaryTier string, secondaryTiers []string) *Table {
	if !filepath.IsAbs(root) {
		return &Table{}
	}
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return &Table{}
	}

	headers := make([]string, 0, len(secondaryTiers)+2)
	headers = append(headers, FilenameColumn, primaryTier)
	headers = append(headers, secondaryTiers...)

	// Tier name to slot position; first occurrence wins so a duplicated
	// secondary name cannot clobber an earlier column.
	slots := make(map[string]int, len(secondaryTiers)+1)
	slots[primaryTier] = 0
	for i, name := range secondaryTiers {
		if _, ok := slots[name]; !ok {
			slots[name] = i + 1
		}
	}
	width := len(secondaryTiers) + 1

	var rows []Row
	index := make(map[spanKey]int)

	walkErr := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), e.ext) {
			return nil
		}

		doc, loadErr := document.Load(path)
		if loadErr != nil {
			e.logger.Warn("skipping unreadable annotation file", "path", path, "error", loadErr)
			return nil
		}
		e.alignDocument(doc, primaryTier, slots, width, &rows, index)
		return nil
	})
	if walkErr != nil {
		e.logger.Warn("directory walk aborted", "root", root, "error", walkErr)
		return &Table{}
	}

	return &Table{Headers: headers, Rows: rows}
}

func (e *Engine) alignDocument(doc *praat.Document, primaryTier string, slots map[string]int, width int, rows *[]Row, index map[spanKey]int) {
	primary := -1
	for i := range doc.Tiers {
		if !doc.Tiers[i].IsPoint && doc.Tiers[i].Name == primaryTier {
			primary = i
			break
		}
	}
	if primary < 0 {
		e.logger.Warn("primary tier not found", "path", doc.Path, "tier", primaryTier)
		return
	}

	for i := range doc.Tiers[primary].Intervals {
		iv := &doc.Tiers[primary].Intervals[i]
		if strings.TrimSpace(iv.Text) == "" {
			continue
		}
		row := Row{Source: doc.Path, Cells: make([]Cell, width)}
		row.Cells[0] = Cell{Doc: doc, Tier: primary, Interval: i}

		key := spanKey{source: doc.Path, xmin: iv.XMin, xmax: iv.XMax}
		if at, ok := index[key]; ok {
			(*rows)[at] = row
		} else {
			index[key] = len(*rows)
			*rows = append(*rows, row)
		}
	}

	for t := range doc.Tiers {
		tier := &doc.Tiers[t]
		if t == primary || tier.IsPoint {
			continue
		}
		slot, ok := slots[tier.Name]
		if !ok || slot == 0 {
			continue
		}
		for i := range tier.Intervals {
			iv := &tier.Intervals[i]
			key := spanKey{source: doc.Path, xmin: iv.XMin, xmax: iv.XMax}
			if at, ok := index[key]; ok {
				(*rows)[at].Cells[slot] = Cell{Doc: doc, Tier: t, Interval: i}
			}
		}
	}
}
