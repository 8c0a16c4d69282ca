package panel

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	nt "logan/entity"
	"logan/style"
	lt "logan/table"
)

// Screen indicates which screen is currently displayed
type Screen int

const (
	TableScreen Screen = iota
	DetailScreen
)

// absent marks a field the record does not have.
const absent = "-"

// detailKeys are shown in order on the detail screen.
var detailKeys = []string{
	nt.LoggerKey,
	nt.DateKey,
	nt.LevelKey,
	nt.ThreadKey,
	nt.QualifiedKey,
	nt.FileKey,
	nt.LineKey,
	nt.MessageKey,
	nt.SourceKey,
}

// DetailPanel shows every field of one record.
type DetailPanel struct {
	contentLines []string

	height       int
	ScrollOffset int // Line offset for scrolling content
}

// NewDetailPanel lays out a record's fields one per line.
func NewDetailPanel(rec nt.Record, height int) DetailPanel {
	return DetailPanel{
		contentLines: detailLines(rec),
		height:       height,
	}
}

func (pnl DetailPanel) Update(msg tea.Msg) DetailPanel {

	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		pnl.height = msg.Height
		pnl.ScrollOffset = 0

	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "k":
			if pnl.ScrollOffset > 0 {
				pnl.ScrollOffset--
			}

		case "down", "j":
			// Only allow scrolling if content exceeds viewport
			if pnl.height > 0 && len(pnl.contentLines) > pnl.height {
				maxScroll := len(pnl.contentLines) - pnl.height
				if pnl.ScrollOffset < maxScroll {
					pnl.ScrollOffset++
				}
			}
		}
	}

	return pnl
}

// Render renders the visible portion of the record.
func (pnl DetailPanel) Render() string {

	visibleLines := pnl.contentLines[pnl.ScrollOffset:]
	if pnl.height > 0 && len(visibleLines) > pnl.height {
		visibleLines = visibleLines[:pnl.height]
	}

	return strings.Join(visibleLines, "\n")
}

// unexported

func detailLines(rec nt.Record) []string {

	stl := style.ClassStyle(rec.Level.Class())
	if rec.IsFragment() {
		stl = style.ClassStyle(lt.TextClass)
	}

	lines := make([]string, 0, len(detailKeys))
	for _, key := range detailKeys {
		text := detailText(rec, key)
		if key == nt.SourceKey {
			text = stl.Render(text)
		}
		lines = append(lines, fmt.Sprintf("%-10s %s", key+":", text))
	}

	return lines
}

// detailText shows the date to the nanosecond and marks absent fields with a dash.
func detailText(rec nt.Record, key string) string {

	val := rec.Field(key)
	switch {
	case key == nt.LevelKey:
		return rec.Level.String()
	case val.IsNil():
		return absent
	}

	date, err := val.Time()
	if err == nil {
		return date.UTC().Format(time.RFC3339Nano)
	}
	return val.String()
}
