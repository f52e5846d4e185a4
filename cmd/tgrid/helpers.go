package main

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// formatRows renders a bordered table on a terminal and tab-separated
// lines when output is piped.
func formatRows(headers []string, rows [][]string) string {
	if stdoutIsTerminal() {
		return renderTable(headers, rows, nil)
	}

	var b strings.Builder
	b.WriteString(strings.Join(headers, "\t"))
	b.WriteByte('\n')
	for _, row := range rows {
		b.WriteString(strings.Join(row, "\t"))
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}
