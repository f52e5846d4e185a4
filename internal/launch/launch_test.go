package launch_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"tgrid/internal/launch"
	"tgrid/internal/testsupport"
)

func TestSoundPathPrefersConfiguredOrder(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	dir := t.TempDir()

	tgPath := filepath.Join(dir, "rec01.TextGrid")
	for _, name := range []string{"rec01.TextGrid", "rec01.mp3", "rec01.wav"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	got := launch.SoundPath(cfg, tgPath)
	if got != filepath.Join(dir, "rec01.wav") {
		t.Fatalf("expected wav to win, got %q", got)
	}
}

func TestSoundPathEmptyWhenMissing(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	tgPath := filepath.Join(t.TempDir(), "rec01.TextGrid")
	if got := launch.SoundPath(cfg, tgPath); got != "" {
		t.Fatalf("expected empty sound path, got %q", got)
	}
}

func TestArgsBuildsInvocation(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	dir := t.TempDir()

	// A fake executable so LookPath resolves.
	praatPath := filepath.Join(dir, "praat")
	if err := os.WriteFile(praatPath, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatalf("write fake praat: %v", err)
	}
	cfg.Praat.Path = praatPath
	cfg.Praat.ScriptPath = filepath.Join(dir, "open_file.praat")

	sel := launch.Selection{
		TextGridPath: filepath.Join(dir, "rec01.TextGrid"),
		TierIndex:    1,
		XMin:         0.25,
		XMax:         1.5,
	}

	args, err := launch.Args(cfg, sel)
	if err != nil {
		t.Fatalf("Args returned error: %v", err)
	}

	want := []string{
		praatPath,
		"--hide-picture",
		"--no-plugins",
		"--new-send",
		cfg.Praat.ScriptPath,
		sel.TextGridPath,
		"",
		"0",
		"2",
		"0.25",
		"1.5",
	}
	if len(args) != len(want) {
		t.Fatalf("unexpected arg count: got %v", args)
	}
	for i := range want {
		if args[i] != want[i] {
			t.Fatalf("arg %d = %q, want %q (all: %v)", i, args[i], want[i], args)
		}
	}
}

func TestArgsOmitsNoPluginsWhenActivated(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	dir := t.TempDir()

	praatPath := filepath.Join(dir, "praat")
	if err := os.WriteFile(praatPath, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatalf("write fake praat: %v", err)
	}
	cfg.Praat.Path = praatPath
	cfg.Praat.ActivatePlugins = true
	cfg.Praat.MaximizeAudibility = true

	args, err := launch.Args(cfg, launch.Selection{TextGridPath: "a.TextGrid"})
	if err != nil {
		t.Fatalf("Args returned error: %v", err)
	}
	for _, arg := range args {
		if arg == "--no-plugins" {
			t.Fatalf("--no-plugins should be omitted: %v", args)
		}
	}
	if args[len(args)-4] != "1" {
		t.Fatalf("expected audibility flag 1: %v", args)
	}
}

func TestArgsReportsMissingPraat(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Praat.Path = filepath.Join(t.TempDir(), "no-such-praat")

	_, err := launch.Args(cfg, launch.Selection{TextGridPath: "a.TextGrid"})
	if !errors.Is(err, launch.ErrPraatNotFound) {
		t.Fatalf("expected ErrPraatNotFound, got %v", err)
	}
}
