package testsupport

import (
	"path/filepath"
	"testing"

	"tgrid/internal/config"
)

// NewConfig produces a config seeded with a unique temp state directory
// per test.
func NewConfig(t testing.TB) *config.Config {
	t.Helper()

	cfg := config.Default()
	cfg.Storage.StateDir = filepath.Join(t.TempDir(), "state")
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	return &cfg
}
