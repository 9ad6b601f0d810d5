package ui

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"
)

// PrintTable renders rows as a boxed table. The first row is the header.
func PrintTable(w io.Writer, rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}

	table := pterm.DefaultTable.
		WithBoxed().
		WithHasHeader().
		WithData(rows)

	str, err := table.Srender()
	if err != nil {
		return fmt.Errorf("rendering table: %w", err)
	}

	_, err = fmt.Fprintln(w, str)

	return err
}
