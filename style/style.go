package style

import (
	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
)

var (
	TableBorderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")) // Subtle warm grey border
	HeaderStyle      = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	HlRowStyle       = lipgloss.NewStyle().Background(lipgloss.Color("235")) // Very subtle warm grey row
	MutedStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("246")) // Warm muted grey text
	UnStyle          = lipgloss.NewStyle()
)

// ClassStyles maps row classes to their cell styles.
var ClassStyles = map[string]lipgloss.Style{
	"all":   lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	"trace": lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Faint(true),
	"debug": lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	"info":  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	"warn":  lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
	"error": lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	"fatal": lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("196")).Bold(true),
	"text":  MutedStyle,
}

// ClassStyle returns the style for a row class, unstyled when unknown.
func ClassStyle(class string) lipgloss.Style {

	stl, ok := ClassStyles[class]
	if !ok {
		return UnStyle
	}
	return stl
}

// RowStyler returns a StyleFunc that colors rows by class and highlights the selected row.
// A selected row of -1 highlights nothing.
func RowStyler(classes []string, selectedRow int) func(row, col int) lipgloss.Style {
	return func(row, col int) lipgloss.Style {
		if row == table.HeaderRow || row < 0 || row >= len(classes) {
			return HeaderStyle
		}

		stl := ClassStyle(classes[row]).Padding(0, 1)
		if row == selectedRow {
			stl = stl.Background(HlRowStyle.GetBackground())
		}
		return stl
	}
}

// StyleTable applies consistent table styling for borders and separators
func StyleTable(tbl *table.Table) {
	tbl.Border(lipgloss.Border{
		Top:         "─", // Horizontal parts of separator
		Middle:      "─", // Between columns in separator
		MiddleLeft:  "─", // Left edge of separator
		MiddleRight: "─", // Right edge of separator
	}).
		BorderTop(false).    // Disable top border
		BorderBottom(false). // Disable bottom border
		BorderLeft(false).   // Disable left border
		BorderRight(false).  // Disable right border
		BorderColumn(false). // Disable column separators
		BorderStyle(TableBorderStyle)
}
