package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tgrid/internal/config"
	"tgrid/internal/projectstore"
)

func newProjectCommand(ctx *commandContext) *cobra.Command {
	projectCmd := &cobra.Command{
		Use:   "project",
		Short: "Manage saved projects",
	}

	projectCmd.AddCommand(newProjectSaveCommand(ctx))
	projectCmd.AddCommand(newProjectListCommand(ctx))
	projectCmd.AddCommand(newProjectDeleteCommand(ctx))

	return projectCmd
}

func newProjectSaveCommand(ctx *commandContext) *cobra.Command {
	var primary string
	var secondary []string

	cmd := &cobra.Command{
		Use:   "save <name> <directory>",
		Short: "Save a corpus directory and tier selection under a name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if primary == "" {
				return errors.New("--primary is required")
			}
			rootDir, err := config.ExpandPath(args[1])
			if err != nil {
				return err
			}

			return ctx.withStore(cmd.Context(), func(store *projectstore.Store) error {
				saved, err := store.Save(cmd.Context(), projectstore.Project{
					Name:           args[0],
					RootDir:        rootDir,
					PrimaryTier:    primary,
					SecondaryTiers: secondary,
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved project %q (%s)\n", saved.Name, saved.RootDir)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&primary, "primary", "", "Primary tier name")
	cmd.Flags().StringSliceVar(&secondary, "secondary", nil, "Secondary tier names")
	return cmd
}

func newProjectListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd.Context(), func(store *projectstore.Store) error {
				projects, err := store.List(cmd.Context())
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if len(projects) == 0 {
					fmt.Fprintln(out, "No saved projects.")
					return nil
				}

				rows := make([][]string, 0, len(projects))
				for _, p := range projects {
					opened := "never"
					if p.LastOpenedAt != nil {
						opened = p.LastOpenedAt.Local().Format("2006-01-02 15:04")
					}
					rows = append(rows, []string{
						p.Name,
						p.RootDir,
						p.PrimaryTier,
						strings.Join(p.SecondaryTiers, ", "),
						opened,
					})
				}
				headers := []string{"Name", "Directory", "Primary", "Secondary", "Last opened"}
				fmt.Fprintln(out, formatRows(headers, rows))
				return nil
			})
		},
	}
}

func newProjectDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a saved project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd.Context(), func(store *projectstore.Store) error {
				removed, err := store.Delete(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if !removed {
					return fmt.Errorf("no saved project named %q", args[0])
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted project %q\n", args[0])
				return nil
			})
		},
	}
}
