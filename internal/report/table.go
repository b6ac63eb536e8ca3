package report

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Table is a plain-text table with dynamic column widths.
// Widths are measured in terminal cells, so glyphs like ✓ line up.
type Table struct {
	headers []string
	rows    [][]string
	padding int
	styles  map[int]func(string) string // applied after padding
	indent  string
}

// NewTable creates a new table with the given headers.
func NewTable(headers []string) *Table {
	return &Table{
		headers: headers,
		rows:    make([][]string, 0),
		padding: 2, // 2 spaces between columns
		styles:  make(map[int]func(string) string),
	}
}

// SetIndent sets a prefix written before every line.
func (t *Table) SetIndent(indent string) {
	t.indent = indent
}

// SetColumnStyle decorates the cells of a column once they are padded.
// The style must not change the visible width, only add escape sequences.
func (t *Table) SetColumnStyle(colIndex int, style func(string) string) {
	t.styles[colIndex] = style
}

// AddRow adds a row to the table, padding or truncating it to the header count.
func (t *Table) AddRow(row []string) {
	newRow := make([]string, len(t.headers))
	copy(newRow, row)
	t.rows = append(t.rows, newRow)
}

// Render formats and returns the table as a string.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	colWidths := make([]int, len(t.headers))
	for i, h := range t.headers {
		colWidths[i] = runewidth.StringWidth(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > colWidths[i] {
				colWidths[i] = w
			}
		}
	}

	var result strings.Builder
	sep := strings.Repeat(" ", t.padding)

	writeLine := func(parts []string) {
		result.WriteString(t.indent)
		result.WriteString(strings.TrimRight(strings.Join(parts, sep), " "))
		result.WriteString("\n")
	}

	headerParts := make([]string, len(t.headers))
	for i, h := range t.headers {
		headerParts[i] = padRight(h, colWidths[i])
	}
	writeLine(headerParts)

	sepParts := make([]string, len(t.headers))
	for i, w := range colWidths {
		sepParts[i] = strings.Repeat("-", w)
	}
	writeLine(sepParts)

	for _, row := range t.rows {
		rowParts := make([]string, len(t.headers))
		for i, cell := range row {
			padded := padRight(cell, colWidths[i])
			if style, ok := t.styles[i]; ok && cell != "" {
				// Style only the text so trailing padding stays plain.
				padded = style(cell) + padded[len(cell):]
			}
			rowParts[i] = padded
		}
		writeLine(rowParts)
	}

	return result.String()
}

// padRight pads a string with spaces on the right to reach the desired cell width.
// If the string is already at least that wide, it is returned unchanged.
func padRight(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
