package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tgrid/internal/document"
	"tgrid/internal/testsupport"
)

type cliTestEnv struct {
	baseDir    string
	configPath string
	corpusDir  string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	configPath := filepath.Join(base, "config.toml")
	content := fmt.Sprintf(
		"[storage]\nstate_dir = %q\n\n[logging]\nlevel = \"error\"\n",
		filepath.Join(base, "state"),
	)
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	corpus := filepath.Join(base, "corpus")
	if err := os.MkdirAll(corpus, 0o755); err != nil {
		t.Fatalf("create corpus dir: %v", err)
	}
	testsupport.WriteTextGrid(t, corpus, "rec01.TextGrid", testsupport.Grid{
		XMax: 2,
		Tiers: []testsupport.GridTier{
			{Name: "words", Intervals: []testsupport.GridInterval{
				{XMin: 0, XMax: 1, Text: "hello"},
				{XMin: 1, XMax: 2, Text: "world"},
			}},
			{Name: "phones", Intervals: []testsupport.GridInterval{
				{XMin: 0, XMax: 1, Text: "HH"},
				{XMin: 1, XMax: 2, Text: "W"},
			}},
		},
	})

	return &cliTestEnv{baseDir: base, configPath: configPath, corpusDir: corpus}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	flags := []string{}
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q, got:\n%s", needle, haystack)
	}
}

func TestCLITiersCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"tiers", env.corpusDir}, env.configPath)
	if err != nil {
		t.Fatalf("tiers: %v", err)
	}
	requireContains(t, out, "words")
	requireContains(t, out, "phones")
}

func TestCLIViewCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"view", env.corpusDir, "--primary", "words", "--secondary", "phones"}, env.configPath)
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	requireContains(t, out, "hello")
	requireContains(t, out, "HH")
	requireContains(t, out, "rec01.TextGrid")

	out, _, err = runCLI(t, []string{"view", env.corpusDir, "--primary", "words", "--limit", "1"}, env.configPath)
	if err != nil {
		t.Fatalf("view --limit: %v", err)
	}
	requireContains(t, out, "Showing 1 of 2 rows")
}

func TestCLIViewRequiresPrimary(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"view", env.corpusDir}, env.configPath)
	if err == nil {
		t.Fatal("expected error without --primary")
	}
}

func TestCLIReplaceCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{
		"replace", env.corpusDir, "--primary", "words",
		"--find", "hello", "--replace", "goodbye",
	}, env.configPath)
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	requireContains(t, out, "Changed 1 cells")

	doc, err := document.Load(filepath.Join(env.corpusDir, "rec01.TextGrid"))
	if err != nil {
		t.Fatalf("reload corpus file: %v", err)
	}
	if got := doc.Tiers[0].Intervals[0].Text; got != "goodbye" {
		t.Fatalf("replacement not written: %q", got)
	}
}

func TestCLIReplaceDryRun(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{
		"replace", env.corpusDir, "--primary", "words",
		"--find", "hello", "--replace", "goodbye", "--dry-run",
	}, env.configPath)
	if err != nil {
		t.Fatalf("replace --dry-run: %v", err)
	}
	requireContains(t, out, "Would change 1 cells")

	doc, err := document.Load(filepath.Join(env.corpusDir, "rec01.TextGrid"))
	if err != nil {
		t.Fatalf("reload corpus file: %v", err)
	}
	if got := doc.Tiers[0].Intervals[0].Text; got != "hello" {
		t.Fatalf("dry run wrote to disk: %q", got)
	}
}

func TestCLIMapCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{
		"map", env.corpusDir, "--primary", "words", "--secondary", "phones",
		"--from", "words", "--to", "phones",
		"--find", "^(h)ello$", "--regex", "--replace", "phone-$1",
	}, env.configPath)
	if err != nil {
		t.Fatalf("map: %v", err)
	}
	requireContains(t, out, "Changed 1 rows")

	doc, err := document.Load(filepath.Join(env.corpusDir, "rec01.TextGrid"))
	if err != nil {
		t.Fatalf("reload corpus file: %v", err)
	}
	if got := doc.Tiers[1].Intervals[0].Text; got != "phone-h" {
		t.Fatalf("mapping not written: %q", got)
	}
}

func TestCLIProjectCommands(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{
		"project", "save", "corpus", env.corpusDir,
		"--primary", "words", "--secondary", "phones",
	}, env.configPath)
	if err != nil {
		t.Fatalf("project save: %v", err)
	}
	requireContains(t, out, `Saved project "corpus"`)

	out, _, err = runCLI(t, []string{"project", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("project list: %v", err)
	}
	requireContains(t, out, "corpus")
	requireContains(t, out, "words")

	out, _, err = runCLI(t, []string{"view", "--project", "corpus"}, env.configPath)
	if err != nil {
		t.Fatalf("view --project: %v", err)
	}
	requireContains(t, out, "hello")

	out, _, err = runCLI(t, []string{"project", "delete", "corpus"}, env.configPath)
	if err != nil {
		t.Fatalf("project delete: %v", err)
	}
	requireContains(t, out, `Deleted project "corpus"`)

	_, _, err = runCLI(t, []string{"project", "delete", "corpus"}, env.configPath)
	if err == nil {
		t.Fatal("expected error deleting missing project")
	}
}

func TestCLIConfigCommands(t *testing.T) {
	env := setupCLITestEnv(t)

	target := filepath.Join(env.baseDir, "fresh", "config.toml")
	out, _, err := runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	_, _, err = runCLI(t, []string{"config", "init", "--path", target}, "")
	if err == nil {
		t.Fatal("expected error without --overwrite")
	}

	out, _, err = runCLI(t, []string{"config", "show"}, env.configPath)
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "[project]")
	requireContains(t, out, ".TextGrid")
}
