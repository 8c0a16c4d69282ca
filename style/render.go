// Package style paints rendered tables for the terminal.
package style

import (
	"strings"
	"unicode"

	"charm.land/lipgloss/v2/table"

	nt "logan/entity"
	lt "logan/table"
)

// tabWidth is the number of spaces a tab expands to.
const tabWidth = 4

// Rows lays out rendered rows as plain cells, one per visible column.
// A fragment goes in the last column so stack traces line up under messages.
func Rows(rows []lt.Row, columns []nt.Column) (cells [][]string, classes []string) {

	columns = lt.Visible(columns)
	cells = make([][]string, 0, len(rows))
	classes = make([]string, 0, len(rows))

	for _, row := range rows {
		line := make([]string, len(columns))

		if row.Class == lt.TextClass && len(row.Cells) == 1 && len(columns) > 0 {
			last := len(columns) - 1
			line[last] = fit(row.Cells[0].Text, columns[last].Width)
		} else {
			for i, cell := range row.Cells {
				if i >= len(columns) {
					break
				}
				line[i] = fit(cell.Text, columns[i].Width)
			}
		}

		cells = append(cells, line)
		classes = append(classes, row.Class)
	}

	return
}

// NewTable builds a styled lipgloss table for a rendered table.
func NewTable(tbl lt.Table, columns []nt.Column, selected int) *table.Table {

	columns = lt.Visible(columns)
	headers := make([]string, 0, len(tbl.Header.Cells))
	for i, cell := range tbl.Header.Cells {
		width := 0
		if i < len(columns) {
			width = columns[i].Width
		}
		headers = append(headers, fit(cell.Title, width))
	}

	cells, classes := Rows(tbl.Rows, columns)

	lgt := table.New().
		Headers(headers...).
		Rows(cells...).
		StyleFunc(RowStyler(classes, selected))
	StyleTable(lgt)

	return lgt
}

// Render paints a rendered table as a string.
func Render(tbl lt.Table, columns []nt.Column) string {
	return NewTable(tbl, columns, -1).String()
}

// unexported

// fit cleans text for a cell and truncates it to width.
func fit(text string, width int) string {
	return truncate(clean(text), width)
}

// clean expands tabs and drops other control characters, which the table cannot measure.
func clean(text string) string {

	if !strings.ContainsFunc(text, unicode.IsControl) {
		return text
	}

	var bld strings.Builder
	for _, rn := range text {
		switch {
		case rn == '\t':
			bld.WriteString(strings.Repeat(" ", tabWidth))
		case unicode.IsControl(rn):
		default:
			bld.WriteRune(rn)
		}
	}
	return bld.String()
}

func truncate(in string, width int) string {

	if width <= 0 || len([]rune(in)) <= width {
		return in
	}

	runes := []rune(in)
	truncated := string(runes[:width-1])
	ellipsis := MutedStyle.Render("…")
	return truncated + ellipsis
}
