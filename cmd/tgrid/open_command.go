package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newOpenCommand(ctx *commandContext) *cobra.Command {
	var flags tableFlags
	var row int
	var column string

	cmd := &cobra.Command{
		Use:   "open [directory]",
		Short: "Open one table cell's interval in Praat",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := ctx.openSession(cmd.Context(), args, flags)
			if err != nil {
				return err
			}
			model := session.Model()

			col := 1
			if column != "" {
				var ok bool
				col, ok = model.ColumnIndex(column)
				if !ok {
					return fmt.Errorf("unknown column %q", column)
				}
			}
			if row < 0 || row >= model.RowCount() {
				return fmt.Errorf("row %d out of range (0-%d)", row, model.RowCount()-1)
			}

			return session.OpenInPraat(cmd.Context(), row, col)
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVar(&row, "row", 0, "Row of the cell to open")
	cmd.Flags().StringVar(&column, "column", "", "Column of the cell to open (defaults to the primary tier)")
	return cmd
}
