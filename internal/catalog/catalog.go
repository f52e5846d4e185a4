// Package catalog reports the tier names present in a directory tree of
// annotation files, for populating tier selection prompts.
package catalog

import (
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"tgrid/internal/document"
)

// TierNames walks root recursively and returns the distinct tier names of
// every annotation file matching ext, in first-seen order. The scan is
// best-effort: files that fail to load are logged and skipped, and only a
// failure of the walk itself is returned.
func TierNames(root, ext string, logger *slog.Logger) ([]string, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var names []string
	seen := make(map[string]struct{})

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ext) {
			return nil
		}

		doc, loadErr := document.Load(path)
		if loadErr != nil {
			logger.Warn("skipping unreadable annotation file", "path", path, "error", loadErr)
			return nil
		}
		for _, tier := range doc.Tiers {
			if _, ok := seen[tier.Name]; ok {
				continue
			}
			seen[tier.Name] = struct{}{}
			names = append(names, tier.Name)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}
