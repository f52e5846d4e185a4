package config

import (
	"fmt"
	"regexp"
	"strings"
)

var soundExtPattern = regexp.MustCompile(`^\.?[a-zA-Z0-9]+$`)

func (c *Config) normalize() error {
	if err := c.normalizeProject(); err != nil {
		return err
	}
	if err := c.normalizePraat(); err != nil {
		return err
	}
	if err := c.normalizeStorage(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeProject() error {
	ext := strings.TrimSpace(c.Project.Extension)
	if ext == "" {
		ext = defaultExtension
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	c.Project.Extension = ext
	return nil
}

func (c *Config) normalizePraat() error {
	c.Praat.Path = strings.TrimSpace(c.Praat.Path)
	if c.Praat.Path == "" {
		c.Praat.Path = defaultPraatPath
	}
	if strings.TrimSpace(c.Praat.ScriptPath) != "" {
		expanded, err := ExpandPath(c.Praat.ScriptPath)
		if err != nil {
			return fmt.Errorf("praat.script_path: %w", err)
		}
		c.Praat.ScriptPath = expanded
	}

	// Clean the `;`-delimited extension list: strip whitespace, require a
	// dot prefix, drop malformed entries and duplicates.
	var normalized []string
	seen := make(map[string]struct{})
	for _, ext := range strings.Split(c.Praat.SoundExtensions, ";") {
		ext = strings.TrimSpace(ext)
		if !soundExtPattern.MatchString(ext) {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if _, ok := seen[ext]; ok {
			continue
		}
		seen[ext] = struct{}{}
		normalized = append(normalized, ext)
	}
	c.Praat.SoundExtensions = strings.Join(normalized, ";")
	return nil
}

func (c *Config) normalizeStorage() error {
	if strings.TrimSpace(c.Storage.StateDir) == "" {
		c.Storage.StateDir = defaultStateDir
	}
	expanded, err := ExpandPath(c.Storage.StateDir)
	if err != nil {
		return fmt.Errorf("storage.state_dir: %w", err)
	}
	c.Storage.StateDir = expanded
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
