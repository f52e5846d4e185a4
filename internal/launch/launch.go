package launch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"tgrid/internal/config"
)

// ErrPraatNotFound indicates the configured Praat executable could not be
// resolved.
var ErrPraatNotFound = errors.New("praat executable not found")

// Selection identifies an interval to open in Praat.
type Selection struct {
	TextGridPath string
	// TierIndex is the zero-based tier position within the document.
	TierIndex int
	XMin      float64
	XMax      float64
}

// SoundPath returns the companion sound file for a TextGrid, trying the
// configured extensions in order. It returns "" when no sound file
// exists.
func SoundPath(cfg *config.Config, textgridPath string) string {
	base := strings.TrimSuffix(textgridPath, cfg.Project.Extension)
	for _, ext := range cfg.SoundExtensionList() {
		candidate := base + ext
		info, err := os.Stat(candidate)
		if err != nil || info.IsDir() {
			continue
		}
		return candidate
	}
	return ""
}

// Args builds the Praat command line for a selection. The configured
// script receives the TextGrid path, the sound path (possibly empty),
// the audibility flag, the 1-based tier position, and the selection
// bounds.
func Args(cfg *config.Config, sel Selection) ([]string, error) {
	praatPath, err := exec.LookPath(cfg.Praat.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrPraatNotFound, cfg.Praat.Path)
	}

	maximize := "0"
	if cfg.Praat.MaximizeAudibility {
		maximize = "1"
	}

	args := []string{
		praatPath,
		"--hide-picture",
	}
	if !cfg.Praat.ActivatePlugins {
		args = append(args, "--no-plugins")
	}
	args = append(args,
		"--new-send",
		cfg.Praat.ScriptPath,
		sel.TextGridPath,
		SoundPath(cfg, sel.TextGridPath),
		maximize,
		strconv.Itoa(sel.TierIndex+1),
		formatNumber(sel.XMin),
		formatNumber(sel.XMax),
	)
	return args, nil
}

// Run launches Praat for the selection and waits for the send to
// complete.
func Run(ctx context.Context, cfg *config.Config, sel Selection, logger *slog.Logger) error {
	args, err := Args(cfg, sel)
	if err != nil {
		return err
	}

	if logger != nil {
		logger.Debug("launching praat",
			"textgrid", sel.TextGridPath,
			"tier", sel.TierIndex+1,
			"xmin", sel.XMin,
			"xmax", sel.XMax,
		)
	}

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("run praat: %w", err)
	}
	return nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
