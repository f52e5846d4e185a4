package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tgrid/internal/catalog"
	"tgrid/internal/config"
)

func newTiersCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "tiers <directory>",
		Short: "List the tier names found under a corpus directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			root, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}

			names, err := catalog.TierNames(root, cfg.Project.Extension, logger)
			if err != nil {
				return fmt.Errorf("scan %s: %w", root, err)
			}

			out := cmd.OutOrStdout()
			if len(names) == 0 {
				fmt.Fprintf(out, "No %s files with tiers under %s\n", cfg.Project.Extension, root)
				return nil
			}
			for _, name := range names {
				fmt.Fprintln(out, name)
			}
			return nil
		},
	}
}
