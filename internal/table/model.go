package table

import (
	"fmt"
	"log/slog"
	"sort"

	"tgrid/internal/align"
)

// CellID addresses one cell of the grid by row and column, where column 0
// is the read-only filename column.
type CellID struct {
	Row int
	Col int
}

// Model is a mutable grid view over an aligned table.
type Model struct {
	table    *align.Table
	modified map[CellID]struct{}
	onChange func(CellID)
	lockPath string
	logger   *slog.Logger
}

// NewModel wraps an aligned table. The table's column shape is fixed; only
// cell contents change through the model.
func NewModel(t *align.Table, logger *slog.Logger) *Model {
	if logger == nil {
		logger = slog.Default()
	}
	return &Model{
		table:    t,
		modified: make(map[CellID]struct{}),
		logger:   logger,
	}
}

// SetOnChange registers a callback fired after every successful cell edit.
func (m *Model) SetOnChange(fn func(CellID)) { m.onChange = fn }

// SetSaveLock names a lock file that guards Save against concurrent
// writers from other processes. Empty disables locking.
func (m *Model) SetSaveLock(path string) { m.lockPath = path }

// Headers returns the column names, filename column first.
func (m *Model) Headers() []string { return m.table.Headers }

// RowCount returns the number of rows.
func (m *Model) RowCount() int { return len(m.table.Rows) }

// ColumnCount returns the number of columns including the filename column.
func (m *Model) ColumnCount() int { return len(m.table.Headers) }

// ColumnIndex resolves a header name to its column, first match wins.
func (m *Model) ColumnIndex(name string) (int, bool) {
	for i, h := range m.table.Headers {
		if h == name {
			return i, true
		}
	}
	return 0, false
}

// Cell returns the text at (row, col): the source path for column 0, the
// interval's label otherwise, or "" for an absent slot.
func (m *Model) Cell(row, col int) string {
	if row < 0 || row >= len(m.table.Rows) || col < 0 || col >= len(m.table.Headers) {
		return ""
	}
	if col == 0 {
		return m.table.Rows[row].Source
	}
	return m.table.Rows[row].Cells[col-1].Text()
}

func (m *Model) cellAt(row, col int) (align.Cell, error) {
	if row < 0 || row >= len(m.table.Rows) {
		return align.Cell{}, fmt.Errorf("row %d out of range", row)
	}
	if col <= 0 || col >= len(m.table.Headers) {
		return align.Cell{}, fmt.Errorf("column %d is not editable", col)
	}
	cell := m.table.Rows[row].Cells[col-1]
	if !cell.Valid() {
		return align.Cell{}, fmt.Errorf("no interval at row %d column %d", row, col)
	}
	return cell, nil
}

// SetCell writes text into the interval behind (row, col), marks it
// modified, and fires the change notification.
func (m *Model) SetCell(row, col int, text string) error {
	cell, err := m.cellAt(row, col)
	if err != nil {
		return err
	}
	iv := cell.Ref()
	iv.Text = text
	iv.Modified = true
	m.modified[CellID{Row: row, Col: col}] = struct{}{}
	if m.onChange != nil {
		m.onChange(CellID{Row: row, Col: col})
	}
	return nil
}

// Replace applies the matcher to each referenced cell independently and
// substitutes matches in place. Cells that do not match, are absent, or
// are not editable are left untouched. Returns the number of cells
// changed.
func (m *Model) Replace(refs []CellID, matcher Matcher, replacement string) int {
	changed := 0
	for _, ref := range refs {
		text := m.Cell(ref.Row, ref.Col)
		if !matcher.Matches(text) {
			continue
		}
		if err := m.SetCell(ref.Row, ref.Col, matcher.ReplaceIn(text, replacement)); err != nil {
			continue
		}
		changed++
	}
	return changed
}

// ReplaceAll remaps values row by row: where the srcCol cell matches, the
// dstCol cell is set to the (backreference-expanded) replacement. srcCol
// and dstCol may differ, mapping e.g. a code column onto a label column.
// Returns the number of rows changed.
func (m *Model) ReplaceAll(find Matcher, replacement string, srcCol, dstCol int) int {
	changed := 0
	for row := range m.table.Rows {
		value, ok := find.Expand(m.Cell(row, srcCol), replacement)
		if !ok {
			continue
		}
		if err := m.SetCell(row, dstCol, value); err != nil {
			continue
		}
		changed++
	}
	return changed
}

// Find returns the first row at or after fromRow whose cell in col matches.
func (m *Model) Find(fromRow, col int, matcher Matcher) (int, bool) {
	if fromRow < 0 {
		fromRow = 0
	}
	for row := fromRow; row < len(m.table.Rows); row++ {
		if matcher.Matches(m.Cell(row, col)) {
			return row, true
		}
	}
	return 0, false
}

// Modified returns the dirty cell coordinates in deterministic order.
func (m *Model) Modified() []CellID {
	out := make([]CellID, 0, len(m.modified))
	for id := range m.modified {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Col < out[j].Col
	})
	return out
}

// HasModifications reports whether any unsaved edits exist.
func (m *Model) HasModifications() bool { return len(m.modified) > 0 }

// ClearModified drops all dirty state without saving.
func (m *Model) ClearModified() {
	m.modified = make(map[CellID]struct{})
}
