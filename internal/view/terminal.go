package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/klabast/wb-services/movement-calendar/internal/calendar"
	"github.com/klabast/wb-services/movement-calendar/internal/overlay"
)

// CellWidth is the width of one day column in terminal cells
const CellWidth = 4

// MinGutterWidth fits an abbreviated month label
const MinGutterWidth = overlay.LabelLength

// Styles of the terminal backend
type Styles struct {
	Header   lipgloss.Style
	Label    lipgloss.Style
	Cell     lipgloss.Style
	Shade    lipgloss.Style
	Today    lipgloss.Style
	Holiday  lipgloss.Style
	Selected lipgloss.Style
	Marked   lipgloss.Style
}

// DefaultStyles returns the built-in color scheme
func DefaultStyles() Styles {
	cell := lipgloss.NewStyle().Width(CellWidth).Align(lipgloss.Right).PaddingRight(1)
	return Styles{
		Header:   lipgloss.NewStyle().Width(CellWidth).MaxHeight(1).Align(lipgloss.Right).PaddingRight(1).Faint(true),
		Label:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
		Cell:     cell,
		Shade:    cell.Background(lipgloss.Color("236")),
		Today:    cell.Bold(true).Reverse(true),
		Holiday:  cell.Foreground(lipgloss.Color("1")),
		Selected: cell.Underline(true).Foreground(lipgloss.Color("3")),
		Marked:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	}
}

// Terminal draws a CalendarView as text, one grid row per line
type Terminal struct {
	View   *CalendarView
	Styles Styles

	// Selected is the flat index of the highlighted cell, -1 for none
	Selected int

	// Marked reports dates to flag with a dot, e.g. days with entries
	Marked func(calendar.CalendarDate) bool
}

// NewTerminal returns a terminal backend for grid. The gutter is widened to
// MinGutterWidth when narrower.
func NewTerminal(grid *calendar.Grid, gutterWidth int, clock Clock) *Terminal {
	gutterWidth = max(gutterWidth, MinGutterWidth)
	t := &Terminal{Styles: DefaultStyles(), Selected: -1}
	measure := overlay.MeasurerFunc(func(text string) (int, int) {
		return lipgloss.Width(text), 1
	})
	t.View = New(grid, gutterWidth, measure, CellRendererFunc(t.renderCell), clock)
	return t
}

func (t *Terminal) renderCell(cell calendar.GridCell, now time.Time) string {
	if cell.Blank {
		return t.Styles.Cell.Render("")
	}

	text := fmt.Sprintf("%d", cell.Date.Day)
	if t.Marked != nil && t.Marked(cell.Date) {
		text = t.Styles.Marked.Render("•") + text
	}

	style := t.Styles.Cell
	switch {
	case cell.Index == t.Selected:
		style = t.Styles.Selected
	case cell.IsToday(now):
		style = t.Styles.Today
	case cell.Holiday != "":
		style = t.Styles.Holiday
	case cell.ShadeVariant:
		style = t.Styles.Shade
	}
	return style.Render(text)
}

// Viewport returns a one line per row viewport of the given height
func (t *Terminal) Viewport(scroll, height int) Viewport {
	return Viewport{Scroll: scroll, Height: height, ItemHeight: 1}
}

// Render draws the header and height grid lines scrolled down by scroll rows
func (t *Terminal) Render(scroll, height int) string {
	frame := t.View.Frame(t.Viewport(scroll, height))
	// One line per row: wide labels are cut, never wrapped
	gutter := lipgloss.NewStyle().Width(t.View.GutterWidth).MaxWidth(t.View.GutterWidth).Inline(true)

	var header strings.Builder
	for _, name := range frame.Header {
		header.WriteString(t.Styles.Header.Render(name))
	}

	labels := make(map[int]overlay.DrawCommand, len(frame.Labels))
	for _, cmd := range frame.Labels {
		labels[cmd.Y] = cmd
	}

	lines := []string{gutter.Render("") + header.String()}
	for y := 0; y < height; y++ {
		left := ""
		if cmd, ok := labels[y]; ok {
			left = strings.Repeat(" ", max(cmd.X, 0)) + t.Styles.Label.Render(cmd.Text)
		}

		row := ""
		if y < len(frame.Rows) {
			row = strings.Join(frame.Rows[y].Cells, "")
		}
		lines = append(lines, gutter.Render(left)+row)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
