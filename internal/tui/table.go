package tui

import (
	"fmt"
	"io"
	"strings"
)

// Column defines a single column in a status table.
type Column struct {
	Header string
	Width  int
}

// Row holds the field values for a single table row. The field aligned with a
// STATUS column gets status styling in styled mode.
type Row struct {
	Fields []string
}

// Table renders rows under fixed-width columns, styled or plain.
type Table struct {
	columns   []Column
	rows      []Row
	statusCol int
}

// NewTable creates a table with the given columns.
func NewTable(columns []Column) *Table {
	statusCol := -1
	for i, c := range columns {
		if strings.EqualFold(c.Header, "STATUS") {
			statusCol = i
			break
		}
	}
	return &Table{columns: columns, statusCol: statusCol}
}

// AddRow appends a row; missing fields render empty.
func (t *Table) AddRow(fields ...string) {
	padded := make([]string, len(t.columns))
	copy(padded, fields)
	t.rows = append(t.rows, Row{Fields: padded})
}

// Write renders the table to out.
func (t *Table) Write(out io.Writer, mode OutputMode) {
	styled := mode == ModeStyled

	headers := make([]string, len(t.columns))
	for i, c := range t.columns {
		headers[i] = pad(c.Header, c.Width)
	}
	headerLine := strings.TrimRight(strings.Join(headers, " "), " ")
	if styled {
		headerLine = HeaderStyle.Render(headerLine)
	}
	fmt.Fprintln(out, headerLine)

	for _, row := range t.rows {
		cells := make([]string, len(t.columns))
		for i, c := range t.columns {
			cell := pad(row.Fields[i], c.Width)
			if styled && i == t.statusCol {
				cell = StatusStyle(row.Fields[i]).Render(cell)
			}
			cells[i] = cell
		}
		fmt.Fprintln(out, strings.TrimRight(strings.Join(cells, " "), " "))
	}
}

func pad(s string, width int) string {
	if width <= 0 || len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
