package ui

import (
	"fmt"
	"io"
	"strings"
)

// Column is one fixed-width table column.
type Column struct {
	Header string
	Width  int
}

// Table renders fixed-width rows with truncated cells.
type Table struct {
	w    io.Writer
	cols []Column
}

func NewTable(w io.Writer, cols ...Column) *Table {
	return &Table{w: w, cols: cols}
}

// Header prints the column headers and a divider line.
func (t *Table) Header() {
	total := 0
	for i, col := range t.cols {
		last := i == len(t.cols)-1
		if last {
			fmt.Fprintf(t.w, "%s\n", col.Header)
		} else {
			fmt.Fprintf(t.w, "%-*s ", col.Width, col.Header)
		}
		total += col.Width + 1
	}
	fmt.Fprintln(t.w, strings.Repeat("-", total))
}

// Row prints one row; extra cells are dropped, missing cells left blank.
func (t *Table) Row(cells ...string) {
	for i, col := range t.cols {
		cell := ""
		if i < len(cells) {
			cell = Truncate(cells[i], col.Width)
		}
		if i == len(t.cols)-1 {
			fmt.Fprintf(t.w, "%s\n", cell)
		} else {
			fmt.Fprintf(t.w, "%-*s ", col.Width, cell)
		}
	}
}

// Truncate shortens s to at most max characters, ellipsized.
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

// YesNo renders a bool the way the listings expect it.
func YesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
