// Package panel is a scrollable terminal viewer for rendered log tables.
package panel

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	nt "logan/entity"
	"logan/style"
	lt "logan/table"
)

const (
	headerHeight = 2
	footerHeight = 1
)

// TablePanel handles the table view display and navigation state
type TablePanel struct {
	selected int // Absolute position of selected row
	offset   int // Offset of page shown

	width  int
	height int

	name    string
	columns []nt.Column
	records []nt.Record
	table   lt.Table

	screen Screen
	detail DetailPanel

	ctx    context.Context
	logger nt.Logger
}

// NewTablePanel creates a panel over records rendered through columns.  Name is shown in the footer.
func NewTablePanel(ctx context.Context, name string, records []nt.Record, columns []nt.Column, lgr nt.Logger) TablePanel {

	if lgr == nil {
		lgr = nt.NopLogger{}
	}

	return TablePanel{
		name:    name,
		columns: columns,
		records: records,
		table:   lt.Render(records, columns),
		ctx:     ctx,
		logger:  lgr,
	}
}

func (pnl TablePanel) Init() tea.Cmd {
	return nil
}

func (pnl TablePanel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		pnl.width = msg.Width
		pnl.height = msg.Height
		pnl.detail = pnl.detail.Update(tea.WindowSizeMsg{Width: msg.Width, Height: pnl.bodyHeight()})
		pnl = pnl.follow()

	case tea.KeyPressMsg:
		if pnl.screen == DetailScreen {
			return pnl.updateDetail(msg)
		}

		pageSize := pnl.PageSize()
		total := len(pnl.table.Rows)

		switch msg.String() {
		case "ctrl+c", "q", "esc":
			pnl.logger.Info(pnl.ctx, "viewer closed", "selected", pnl.selected)
			return pnl, tea.Quit

		case "up", "k":
			if pnl.selected > 0 {
				pnl.selected--
			}

		case "down", "j":
			if pnl.selected < total-1 {
				pnl.selected++
			}

		case "pgup", "ctrl+u":
			pnl.selected -= pageSize
			if pnl.selected < 0 {
				pnl.selected = 0
			}

		case "pgdown", "ctrl+d":
			pnl.selected += pageSize
			if pnl.selected >= total {
				pnl.selected = total - 1
			}

		case "g":
			pnl.selected = 0

		case "G":
			pnl.selected = total - 1

		case "enter", "right", "l":
			if pnl.selected < total {
				pnl.screen = DetailScreen
				pnl.detail = NewDetailPanel(pnl.records[pnl.selected], pnl.bodyHeight())
			}
		}

		if pnl.selected < 0 {
			pnl.selected = 0
		}
		pnl = pnl.follow()
	}

	return pnl, nil
}

func (pnl TablePanel) View() tea.View {

	if pnl.width == 0 {
		return tea.NewView("Loading...")
	}

	view := tea.NewView(pnl.Render())
	view.AltScreen = true
	return view
}

// Render renders the current screen and footer.
func (pnl TablePanel) Render() string {

	body := pnl.detail.Render()
	if pnl.screen == TableScreen {
		body = pnl.renderPage()
	}
	footer := RenderFooter(pnl.selected+1, len(pnl.table.Rows), pnl.name, pnl.width)

	return lipgloss.JoinVertical(lipgloss.Left, body, footer)
}

// Screen returns the screen currently shown.
func (pnl TablePanel) Screen() Screen {
	return pnl.screen
}

// Selected returns the absolute position of the selected row.
func (pnl TablePanel) Selected() int {
	return pnl.selected
}

// Offset returns the position of the first row shown.
func (pnl TablePanel) Offset() int {
	return pnl.offset
}

// PageSize returns the number of rows that fit on panel
func (pnl TablePanel) PageSize() int {

	size := pnl.height - headerHeight - footerHeight
	if size < 1 {
		return 1
	}
	return size
}

// RenderFooter renders position and name, pushed to either edge.
func RenderFooter(current, total int, name string, width int) string {

	left := fmt.Sprintf("%d/%d", current, total)
	right := name

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	return style.MutedStyle.Render(left + strings.Repeat(" ", padding) + right)
}

// unexported

func (pnl TablePanel) renderPage() string {

	page := lt.Table{
		Header: pnl.table.Header,
		Rows:   pnl.page(),
	}

	lgt := style.NewTable(page, pnl.columns, pnl.selected-pnl.offset)
	lgt.Width(pnl.width)

	return lgt.String()
}

// follow adjusts offset to keep the selected row visible.
func (pnl TablePanel) follow() TablePanel {

	pageSize := pnl.PageSize()
	if pnl.selected < pnl.offset {
		pnl.offset = pnl.selected
	} else if pnl.selected >= pnl.offset+pageSize {
		pnl.offset = pnl.selected - pageSize + 1
	}
	return pnl
}

func (pnl TablePanel) page() []lt.Row {

	start := pnl.offset
	if start > len(pnl.table.Rows) {
		start = len(pnl.table.Rows)
	}
	end := start + pnl.PageSize()
	if end > len(pnl.table.Rows) {
		end = len(pnl.table.Rows)
	}
	return pnl.table.Rows[start:end]
}

func (pnl TablePanel) updateDetail(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {

	switch msg.String() {
	case "ctrl+c", "q":
		return pnl, tea.Quit

	case "esc", "left", "h":
		pnl.screen = TableScreen
		return pnl, nil
	}

	pnl.detail = pnl.detail.Update(msg)
	return pnl, nil
}

func (pnl TablePanel) bodyHeight() int {
	return pnl.height - footerHeight
}
