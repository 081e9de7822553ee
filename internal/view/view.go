// Package view composes the week grid, its weekday header and the sticky
// month labels into frames that a rendering backend can draw.
package view

import (
	"time"

	"github.com/klabast/wb-services/movement-calendar/internal/calendar"
	"github.com/klabast/wb-services/movement-calendar/internal/overlay"
)

// HeaderLength is the number of characters kept of each weekday name
const HeaderLength = 2

// CellRenderer draws the content of one grid cell
type CellRenderer interface {
	RenderCell(cell calendar.GridCell, now time.Time) string
}

// CellRendererFunc adapts a function to CellRenderer
type CellRendererFunc func(cell calendar.GridCell, now time.Time) string

// RenderCell calls f(cell, now)
func (f CellRendererFunc) RenderCell(cell calendar.GridCell, now time.Time) string {
	return f(cell, now)
}

// Clock returns the current time; the view asks it once per frame
type Clock func() time.Time

// FrameRow is one visible grid row with its rendered cells
type FrameRow struct {
	Row     int      `json:"row"`
	OffsetY int      `json:"offsetY"`
	Cells   []string `json:"cells"`
}

// Frame is everything needed to draw one pass
type Frame struct {
	Header []string              `json:"header"`
	Rows   []FrameRow            `json:"rows"`
	Labels []overlay.DrawCommand `json:"labels"`
}

// CalendarView draws a grid through a caller supplied cell renderer
type CalendarView struct {
	Grid        *calendar.Grid
	GutterWidth int

	renderer CellRenderer
	clock    Clock
	overlay  *overlay.Overlay
}

// New returns a view of grid. A nil clock uses time.Now.
func New(grid *calendar.Grid, gutterWidth int, measure overlay.TextMeasurer, renderer CellRenderer, clock Clock) *CalendarView {
	if clock == nil {
		clock = time.Now
	}
	return &CalendarView{
		Grid:        grid,
		GutterWidth: gutterWidth,
		renderer:    renderer,
		clock:       clock,
		overlay:     overlay.New(grid.Labels(), gutterWidth, measure),
	}
}

// Overlay returns the sticky label state of the view
func (v *CalendarView) Overlay() *overlay.Overlay {
	return v.overlay
}

// Header returns the weekday names in column order, truncated
func (v *CalendarView) Header() []string {
	days := v.Grid.Locale.Weekdays()
	header := make([]string, len(days))
	for i, d := range days {
		header[i] = truncate(v.Grid.Locale.WeekdayName(d), HeaderLength)
	}
	return header
}

// Frame renders the rows visible in vp and the labels for them
func (v *CalendarView) Frame(vp Viewport) Frame {
	visible := vp.Visible(v.Grid.Len())
	frame := Frame{
		Header: v.Header(),
		Labels: v.overlay.Render(visible),
	}

	now := v.clock()
	for _, item := range visible {
		row := item.Index / calendar.Columns
		if len(frame.Rows) == 0 || frame.Rows[len(frame.Rows)-1].Row != row {
			frame.Rows = append(frame.Rows, FrameRow{Row: row, OffsetY: item.OffsetY})
		}
		last := &frame.Rows[len(frame.Rows)-1]
		last.Cells = append(last.Cells, v.renderer.RenderCell(v.Grid.Cells[item.Index], now))
	}
	return frame
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
