// Package overlay computes the sticky month labels drawn in the gutter of a
// scrolling week grid.
//
// A label is emitted for every distinct month boundary in the visible window.
// The label of the first visible row sticks to the top of the viewport for as
// long as the following row belongs to the same month, then scrolls away with
// its row once the next month takes over.
package overlay

import "unicode/utf8"

// RowWidth is the number of grid cells per row
const RowWidth = 7

// LabelLength is the number of characters of the month name shown
const LabelLength = 3

// VisibleItem is what the scroll container reports for one laid out cell
type VisibleItem struct {
	Index   int `json:"index"`   // flat position in the cell sequence
	Column  int `json:"column"`  // 0-6
	OffsetY int `json:"offsetY"` // top edge relative to the viewport
	Height  int `json:"height"`
}

// DrawCommand places one label
type DrawCommand struct {
	Text   string `json:"text"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Row    int    `json:"row"`
	Sticky bool   `json:"sticky"`
}

// TextMeasurer reports the rendered size of a label
type TextMeasurer interface {
	Measure(text string) (width, height int)
}

// MeasurerFunc adapts a function to TextMeasurer
type MeasurerFunc func(text string) (int, int)

// Measure calls f(text)
func (f MeasurerFunc) Measure(text string) (int, int) {
	return f(text)
}

// FixedMeasurer measures text as a run of equally sized glyphs
type FixedMeasurer struct {
	GlyphWidth  int
	GlyphHeight int
}

// Measure implements TextMeasurer
func (m FixedMeasurer) Measure(text string) (int, int) {
	return utf8.RuneCountInString(text) * m.GlyphWidth, m.GlyphHeight
}

// Overlay holds the state that survives between passes: the item height,
// cached from the first pass that has a visible item.
type Overlay struct {
	labels      []string
	gutterWidth int
	measure     TextMeasurer

	itemHeight    int
	hasItemHeight bool
}

// New returns an overlay for the given per-cell labels, indexed by flat
// position. An empty label means the cell has none.
func New(labels []string, gutterWidth int, measure TextMeasurer) *Overlay {
	return &Overlay{
		labels:      labels,
		gutterWidth: gutterWidth,
		measure:     measure,
	}
}

// ItemHeight returns the cached item height and whether it has been set
func (o *Overlay) ItemHeight() (int, bool) {
	return o.itemHeight, o.hasItemHeight
}

// SetItemHeight seeds the cache, e.g. from a value the host already knows
func (o *Overlay) SetItemHeight(h int) {
	o.itemHeight, o.hasItemHeight = h, true
}

// label returns the label at index or "" past the end of data
func (o *Overlay) label(index int) string {
	if index < 0 || index >= len(o.labels) {
		return ""
	}
	return o.labels[index]
}

// Abbreviate returns the first LabelLength characters of name
func Abbreviate(name string) string {
	n := 0
	for i := range name {
		if n == LabelLength {
			return name[:i]
		}
		n++
	}
	return name
}

// Render computes the labels for one pass over the visible items, given in
// viewport order. It never fails: an empty window yields no commands and
// leaves the state untouched, rows without a label are skipped.
func (o *Overlay) Render(visible []VisibleItem) []DrawCommand {
	if len(visible) == 0 {
		return nil
	}
	if !o.hasItemHeight && visible[0].Height > 0 {
		o.SetItemHeight(visible[0].Height)
	}

	var (
		commands []DrawCommand
		current  string
	)
	for pos, item := range visible {
		// Only the last cell of a row carries the row's label
		if item.Column != RowWidth-1 {
			continue
		}
		label := o.label(item.Index)
		if label == "" || label == current {
			continue
		}
		current = label

		text := Abbreviate(label)
		w, h := o.measure.Measure(text)

		// The last cell of the first visible row pins its label to the top
		// while the next row still belongs to the same month
		sticky := pos == RowWidth-1 && o.label(item.Index+RowWidth) == label
		base := item.OffsetY
		if sticky {
			base = 0
		}

		commands = append(commands, DrawCommand{
			Text:   text,
			X:      (o.gutterWidth - w) / 2,
			Y:      base + (o.itemHeight-h)/2,
			Row:    item.Index / RowWidth,
			Sticky: sticky,
		})
	}
	return commands
}
