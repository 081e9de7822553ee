package view

import (
	"github.com/klabast/wb-services/movement-calendar/internal/calendar"
	"github.com/klabast/wb-services/movement-calendar/internal/overlay"
)

// Viewport is the scroll container of the grid: a window of Height units
// over rows of ItemHeight units, scrolled down by Scroll units.
type Viewport struct {
	Scroll     int
	Height     int
	ItemHeight int
}

// Visible returns the laid out cells intersecting the viewport in row-major
// order, the same information a lazy grid reports on each layout pass.
func (v Viewport) Visible(cellCount int) []overlay.VisibleItem {
	if v.Height <= 0 || v.ItemHeight <= 0 || cellCount <= 0 {
		return nil
	}

	scroll := max(v.Scroll, 0)
	firstRow := scroll / v.ItemHeight
	lastRow := (scroll + v.Height - 1) / v.ItemHeight

	var items []overlay.VisibleItem
	for row := firstRow; row <= lastRow; row++ {
		for col := 0; col < calendar.Columns; col++ {
			idx := row*calendar.Columns + col
			if idx >= cellCount {
				return items
			}
			items = append(items, overlay.VisibleItem{
				Index:   idx,
				Column:  col,
				OffsetY: row*v.ItemHeight - scroll,
				Height:  v.ItemHeight,
			})
		}
	}
	return items
}

// MaxScroll returns the largest scroll offset that still fills the viewport
func (v Viewport) MaxScroll(rows int) int {
	return max(rows*v.ItemHeight-v.Height, 0)
}

// ScrollBy moves the viewport by delta units, clamped to the content
func (v *Viewport) ScrollBy(delta, rows int) {
	v.Scroll = min(max(v.Scroll+delta, 0), v.MaxScroll(rows))
}

// EnsureVisible scrolls the minimum amount needed to show row
func (v *Viewport) EnsureVisible(row, rows int) {
	top := row * v.ItemHeight
	switch {
	case top < v.Scroll:
		v.Scroll = top
	case top+v.ItemHeight > v.Scroll+v.Height:
		v.Scroll = top + v.ItemHeight - v.Height
	}
	v.ScrollBy(0, rows)
}
