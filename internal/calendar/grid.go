package calendar

import "time"

// Columns is the number of cells per grid row
const Columns = 7

// GridCell is one position in the week grid. Leading cells before the first
// date of the range are Blank and carry no date.
type GridCell struct {
	Date         CalendarDate
	Index        int
	Row          int
	Column       int
	Blank        bool
	MonthLabel   string
	ShadeVariant bool
	Holiday      string
}

// IsToday reports whether the cell shows the day of now. It is evaluated on
// each call so a long lived grid follows midnight rollovers.
func (c GridCell) IsToday(now time.Time) bool {
	return !c.Blank && c.Date == DateOf(now)
}

// Grid is a flat, row-major sequence of cells
type Grid struct {
	Locale Locale
	Cells  []GridCell
}

// Layout maps dates into a seven column grid. The first row is padded with
// blank cells up to the column of the first date's weekday.
func Layout(dates []CalendarDate, loc Locale, holidays map[CalendarDate]string) *Grid {
	g := &Grid{Locale: loc}
	if len(dates) == 0 {
		return g
	}

	lead := loc.Column(dates[0].Weekday())
	g.Cells = make([]GridCell, 0, lead+len(dates))
	for i := 0; i < lead; i++ {
		g.Cells = append(g.Cells, GridCell{Index: i, Column: i, Blank: true})
	}

	for _, d := range dates {
		idx := len(g.Cells)
		g.Cells = append(g.Cells, GridCell{
			Date:         d,
			Index:        idx,
			Row:          idx / Columns,
			Column:       idx % Columns,
			MonthLabel:   loc.MonthName(d.Month),
			ShadeVariant: d.Month%2 == 0,
			Holiday:      holidays[d],
		})
	}
	return g
}

// Len returns the number of cells including blanks
func (g *Grid) Len() int {
	return len(g.Cells)
}

// RowCount returns the number of rows, counting a partial last row
func (g *Grid) RowCount() int {
	return (len(g.Cells) + Columns - 1) / Columns
}

// Rows groups the cells into rows of seven; the last row may be shorter
func (g *Grid) Rows() [][]GridCell {
	rows := make([][]GridCell, 0, g.RowCount())
	for start := 0; start < len(g.Cells); start += Columns {
		end := min(start+Columns, len(g.Cells))
		rows = append(rows, g.Cells[start:end])
	}
	return rows
}

// Labels returns the month label of each cell indexed by flat position;
// blank cells have an empty label.
func (g *Grid) Labels() []string {
	labels := make([]string, len(g.Cells))
	for i, c := range g.Cells {
		labels[i] = c.MonthLabel
	}
	return labels
}

// IndexOf returns the flat index of date, or -1 if the grid does not contain it
func (g *Grid) IndexOf(date CalendarDate) int {
	for _, c := range g.Cells {
		if !c.Blank && c.Date == date {
			return c.Index
		}
	}
	return -1
}

// Dates returns the dates of all non-blank cells in order
func (g *Grid) Dates() []CalendarDate {
	dates := make([]CalendarDate, 0, len(g.Cells))
	for _, c := range g.Cells {
		if !c.Blank {
			dates = append(dates, c.Date)
		}
	}
	return dates
}
