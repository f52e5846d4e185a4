package main

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"tgrid/internal/config"
	"tgrid/internal/logging"
	"tgrid/internal/project"
	"tgrid/internal/projectstore"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

func (c *commandContext) withStore(ctx context.Context, fn func(*projectstore.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	store, err := projectstore.Open(cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

// tableFlags selects the corpus a table command works on: either a saved
// project by name, or a directory argument plus an explicit tier
// selection.
type tableFlags struct {
	projectName string
	primary     string
	secondary   []string
}

func (f *tableFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.projectName, "project", "", "Saved project to open")
	cmd.Flags().StringVar(&f.primary, "primary", "", "Primary tier name")
	cmd.Flags().StringSliceVar(&f.secondary, "secondary", nil, "Secondary tier names")
}

func (c *commandContext) openSession(ctx context.Context, args []string, flags tableFlags) (*project.Session, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	session := project.NewSession(cfg, logger)

	if flags.projectName != "" {
		err := c.withStore(ctx, func(store *projectstore.Store) error {
			return session.OpenStored(ctx, store, flags.projectName)
		})
		if err != nil {
			return nil, err
		}
		return session, nil
	}

	if len(args) == 0 {
		return nil, errors.New("a corpus directory or --project is required")
	}
	if flags.primary == "" {
		return nil, errors.New("--primary is required when opening a directory")
	}
	if err := session.Open(args[0], flags.primary, flags.secondary); err != nil {
		return nil, err
	}
	return session, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
