package project

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"tgrid/internal/align"
	"tgrid/internal/config"
	"tgrid/internal/launch"
	"tgrid/internal/projectstore"
	"tgrid/internal/table"
)

var (
	// ErrNotOpen indicates an operation that requires an open session.
	ErrNotOpen = errors.New("no project is open")
	// ErrUnknownProject indicates a saved project name that does not exist.
	ErrUnknownProject = errors.New("unknown project")
)

// Session holds one open project: the corpus directory, the tier
// selection, and the table built from them.
type Session struct {
	cfg    *config.Config
	logger *slog.Logger

	rootDir        string
	primaryTier    string
	secondaryTiers []string

	data  *align.Table
	model *table.Model
}

// NewSession returns a closed session bound to the given configuration.
func NewSession(cfg *config.Config, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{cfg: cfg, logger: logger}
}

// Open scans rootDir and builds the aligned table for the tier
// selection. An already-open session is replaced, dropping unsaved
// edits.
func (s *Session) Open(rootDir, primaryTier string, secondaryTiers []string) error {
	abs, err := filepath.Abs(rootDir)
	if err != nil {
		return fmt.Errorf("resolve project directory: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("project directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("project directory %q is not a directory", abs)
	}

	engine := align.NewEngine(s.cfg.Project.Extension, s.logger)
	data := engine.Align(abs, primaryTier, secondaryTiers)

	model := table.NewModel(data, s.logger)
	model.SetSaveLock(s.cfg.SaveLockPath())

	s.rootDir = abs
	s.primaryTier = primaryTier
	s.secondaryTiers = append([]string(nil), secondaryTiers...)
	s.data = data
	s.model = model

	s.logger.Info("project opened",
		"root", abs,
		"primary", primaryTier,
		"rows", model.RowCount(),
	)
	return nil
}

// OpenStored looks a saved project up by name, opens it, and records the
// access time.
func (s *Session) OpenStored(ctx context.Context, store *projectstore.Store, name string) error {
	saved, err := store.ByName(ctx, name)
	if err != nil {
		return err
	}
	if saved == nil {
		return fmt.Errorf("%w: %q", ErrUnknownProject, name)
	}
	if err := s.Open(saved.RootDir, saved.PrimaryTier, saved.SecondaryTiers); err != nil {
		return err
	}
	return store.Touch(ctx, saved.ID)
}

// IsOpen reports whether a project is loaded.
func (s *Session) IsOpen() bool { return s.model != nil }

// Model returns the live table, or nil when no project is open.
func (s *Session) Model() *table.Model { return s.model }

// RootDir returns the open project's corpus directory.
func (s *Session) RootDir() string { return s.rootDir }

// PrimaryTier returns the open project's primary tier name.
func (s *Session) PrimaryTier() string { return s.primaryTier }

// SecondaryTiers returns the open project's secondary tier selection.
func (s *Session) SecondaryTiers() []string {
	return append([]string(nil), s.secondaryTiers...)
}

// Reload rebuilds the table from disk, dropping unsaved edits.
func (s *Session) Reload() error {
	if !s.IsOpen() {
		return ErrNotOpen
	}
	return s.Open(s.rootDir, s.primaryTier, s.secondaryTiers)
}

// Save flushes all modified documents.
func (s *Session) Save(ctx context.Context) error {
	if !s.IsOpen() {
		return ErrNotOpen
	}
	return s.model.Save(ctx)
}

// Close tears the session down. When save is set, pending edits are
// flushed first; a failed flush keeps the session open so the save can
// be retried.
func (s *Session) Close(ctx context.Context, save bool) error {
	if !s.IsOpen() {
		return nil
	}
	if save && s.model.HasModifications() {
		if err := s.model.Save(ctx); err != nil {
			return err
		}
	}
	s.rootDir = ""
	s.primaryTier = ""
	s.secondaryTiers = nil
	s.data = nil
	s.model = nil
	return nil
}

// SelectionAt resolves a table cell to a Praat selection. The filename
// column and absent slots have no selection.
func (s *Session) SelectionAt(row, col int) (launch.Selection, bool) {
	if !s.IsOpen() || col <= 0 {
		return launch.Selection{}, false
	}
	if row < 0 || row >= len(s.data.Rows) || col-1 >= len(s.data.Rows[row].Cells) {
		return launch.Selection{}, false
	}
	cell := s.data.Rows[row].Cells[col-1]
	if !cell.Valid() {
		return launch.Selection{}, false
	}
	iv := cell.Ref()
	return launch.Selection{
		TextGridPath: cell.Doc.Path,
		TierIndex:    cell.Doc.Tiers[cell.Tier].Index,
		XMin:         iv.XMin,
		XMax:         iv.XMax,
	}, true
}

// OpenInPraat launches Praat for the interval behind a table cell.
func (s *Session) OpenInPraat(ctx context.Context, row, col int) error {
	sel, ok := s.SelectionAt(row, col)
	if !ok {
		return fmt.Errorf("no interval at row %d column %d", row, col)
	}
	return launch.Run(ctx, s.cfg, sel, s.logger)
}
