package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"tgrid/internal/table"
)

func buildMatcher(pattern string, regex bool) (table.Matcher, error) {
	if regex {
		return table.NewRegexpMatcher(pattern)
	}
	return table.NewLiteralMatcher(pattern), nil
}

func newReplaceCommand(ctx *commandContext) *cobra.Command {
	var flags tableFlags
	var column string
	var find string
	var replacement string
	var regex bool
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "replace [directory]",
		Short: "Find and replace labels in one table column",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if find == "" {
				return errors.New("--find is required")
			}

			session, err := ctx.openSession(cmd.Context(), args, flags)
			if err != nil {
				return err
			}
			model := session.Model()

			// The primary tier column unless a column is named.
			col := 1
			if column != "" {
				var ok bool
				col, ok = model.ColumnIndex(column)
				if !ok {
					return fmt.Errorf("unknown column %q", column)
				}
				if col == 0 {
					return fmt.Errorf("column %q is not editable", column)
				}
			}

			matcher, err := buildMatcher(find, regex)
			if err != nil {
				return fmt.Errorf("compile pattern: %w", err)
			}

			refs := make([]table.CellID, 0, model.RowCount())
			for row := 0; row < model.RowCount(); row++ {
				refs = append(refs, table.CellID{Row: row, Col: col})
			}
			changed := model.Replace(refs, matcher, replacement)

			out := cmd.OutOrStdout()
			if dryRun {
				fmt.Fprintf(out, "Would change %d cells (dry run, nothing written)\n", changed)
				return nil
			}
			if changed == 0 {
				fmt.Fprintln(out, "No cells matched.")
				return nil
			}
			if err := session.Save(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(out, "Changed %d cells\n", changed)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&column, "column", "", "Column to edit (defaults to the primary tier)")
	cmd.Flags().StringVar(&find, "find", "", "Pattern to search for")
	cmd.Flags().StringVar(&replacement, "replace", "", "Replacement text")
	cmd.Flags().BoolVar(&regex, "regex", false, "Treat the pattern as a regular expression")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report matches without writing files")
	return cmd
}

func newMapCommand(ctx *commandContext) *cobra.Command {
	var flags tableFlags
	var fromColumn string
	var toColumn string
	var find string
	var replacement string
	var regex bool
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "map [directory]",
		Short: "Map matching values from one column onto another",
		Long: `Map scans the source column row by row and, where the pattern
matches, writes the (backreference-expanded) replacement into the
destination column of the same row.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if find == "" {
				return errors.New("--find is required")
			}
			if fromColumn == "" || toColumn == "" {
				return errors.New("--from and --to are required")
			}

			session, err := ctx.openSession(cmd.Context(), args, flags)
			if err != nil {
				return err
			}
			model := session.Model()

			src, ok := model.ColumnIndex(fromColumn)
			if !ok {
				return fmt.Errorf("unknown column %q", fromColumn)
			}
			dst, ok := model.ColumnIndex(toColumn)
			if !ok {
				return fmt.Errorf("unknown column %q", toColumn)
			}
			if dst == 0 {
				return fmt.Errorf("column %q is not editable", toColumn)
			}

			matcher, err := buildMatcher(find, regex)
			if err != nil {
				return fmt.Errorf("compile pattern: %w", err)
			}

			changed := model.ReplaceAll(matcher, replacement, src, dst)

			out := cmd.OutOrStdout()
			if dryRun {
				fmt.Fprintf(out, "Would change %d rows (dry run, nothing written)\n", changed)
				return nil
			}
			if changed == 0 {
				fmt.Fprintln(out, "No rows matched.")
				return nil
			}
			if err := session.Save(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(out, "Changed %d rows\n", changed)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&fromColumn, "from", "", "Column whose values are matched")
	cmd.Flags().StringVar(&toColumn, "to", "", "Column that receives the mapped value")
	cmd.Flags().StringVar(&find, "find", "", "Pattern to match in the source column")
	cmd.Flags().StringVar(&replacement, "replace", "", "Value written to the destination column")
	cmd.Flags().BoolVar(&regex, "regex", false, "Treat the pattern as a regular expression")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report matches without writing files")
	return cmd
}
