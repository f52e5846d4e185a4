package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newViewCommand(ctx *commandContext) *cobra.Command {
	var flags tableFlags
	var limit int
	var fullPaths bool

	cmd := &cobra.Command{
		Use:   "view [directory]",
		Short: "Show the aligned table for a corpus",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := ctx.openSession(cmd.Context(), args, flags)
			if err != nil {
				return err
			}

			model := session.Model()
			out := cmd.OutOrStdout()
			if model.RowCount() == 0 {
				fmt.Fprintln(out, "No rows matched the tier selection.")
				return nil
			}

			count := model.RowCount()
			if limit > 0 && limit < count {
				count = limit
			}

			rows := make([][]string, 0, count)
			for row := 0; row < count; row++ {
				line := make([]string, model.ColumnCount())
				for col := 0; col < model.ColumnCount(); col++ {
					value := model.Cell(row, col)
					if col == 0 && !fullPaths {
						value = filepath.Base(value)
					}
					line[col] = value
				}
				rows = append(rows, line)
			}

			fmt.Fprintln(out, formatRows(model.Headers(), rows))
			if count < model.RowCount() {
				fmt.Fprintf(out, "Showing %d of %d rows\n", count, model.RowCount())
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of rows to show (0 for all)")
	cmd.Flags().BoolVar(&fullPaths, "full-paths", false, "Show full file paths in the filename column")
	return cmd
}
