// Package tui is the interactive terminal calendar.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/klabast/wb-services/movement-calendar/internal/calendar"
	"github.com/klabast/wb-services/movement-calendar/internal/journal"
	"github.com/klabast/wb-services/movement-calendar/internal/view"
)

// Lines taken by the weekday header and the status bar
const (
	headerLines = 1
	statusLines = 2

	defaultTerminalHeight = 24
)

var (
	statusStyle = lipgloss.NewStyle().Faint(true)
	infoStyle   = lipgloss.NewStyle().Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// Model is the root Bubble Tea model
type Model struct {
	grid    *calendar.Grid
	journal *journal.Journal
	clock   view.Clock
	term    *view.Terminal

	// Viewport over grid rows, one line each
	vp view.Viewport

	// Flat index of the selected cell
	selected int

	status string
}

// New returns a model showing grid with today selected when it is part of it
func New(grid *calendar.Grid, gutterWidth int, j *journal.Journal, clock view.Clock) Model {
	if clock == nil {
		clock = time.Now
	}
	term := view.NewTerminal(grid, gutterWidth, clock)
	term.Marked = func(d calendar.CalendarDate) bool { return j.Count(d) > 0 }

	m := Model{
		grid:    grid,
		journal: j,
		clock:   clock,
		term:    term,
		vp:      term.Viewport(0, defaultTerminalHeight-headerLines-statusLines),
	}
	m.selectToday()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle("Movement calendar")
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.vp.Height = max(msg.Height-headerLines-statusLines, 1)
		m.follow()
		return m, nil

	case tea.KeyMsg:
		rows := m.grid.RowCount()
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "j", "down":
			m.vp.ScrollBy(1, rows)
		case "k", "up":
			m.vp.ScrollBy(-1, rows)
		case "pgdown", " ":
			m.vp.ScrollBy(m.vp.Height, rows)
		case "pgup":
			m.vp.ScrollBy(-m.vp.Height, rows)
		case "g", "home":
			m.vp.ScrollBy(-m.vp.Scroll, rows)
		case "G", "end":
			m.vp.ScrollBy(m.vp.MaxScroll(rows), rows)
		case "t":
			m.selectToday()
		case "h", "left":
			m.move(-1)
		case "l", "right":
			m.move(1)
		case "J":
			m.move(calendar.Columns)
		case "K":
			m.move(-calendar.Columns)
		case "enter":
			m.record()
		}
		return m, nil
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	m.term.Selected = m.selected

	var b strings.Builder
	b.WriteString(m.term.Render(m.vp.Scroll, m.vp.Height))
	b.WriteString("\n")
	b.WriteString(m.detail())
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(m.status)
	} else {
		b.WriteString(statusStyle.Render("j/k scroll · h/l/J/K select · t today · enter record · q quit"))
	}
	return b.String()
}

// Selected returns the date of the selected cell
func (m Model) Selected() (calendar.CalendarDate, bool) {
	if m.selected < 0 || m.selected >= m.grid.Len() || m.grid.Cells[m.selected].Blank {
		return calendar.CalendarDate{}, false
	}
	return m.grid.Cells[m.selected].Date, true
}

// Scroll returns the index of the top visible row
func (m Model) Scroll() int {
	return m.vp.Scroll
}

func (m Model) detail() string {
	date, ok := m.Selected()
	if !ok {
		return ""
	}
	cell := m.grid.Cells[m.selected]
	text := fmt.Sprintf("%s %d %s %d", m.grid.Locale.WeekdayName(date.Weekday()), date.Day, cell.MonthLabel, date.Year)
	if cell.Holiday != "" {
		text += " (" + cell.Holiday + ")"
	}

	n := m.journal.Count(date)
	switch n {
	case 0:
		text += " · no movements"
	case 1:
		text += " · 1 movement"
	default:
		text += fmt.Sprintf(" · %d movements", n)
	}
	return infoStyle.Render(text)
}

// selectToday selects today's cell, or the first date if today is outside the grid
func (m *Model) selectToday() {
	m.selected = m.grid.IndexOf(calendar.DateOf(m.clock()))
	if m.selected < 0 {
		m.selected = 0
		for m.selected < m.grid.Len()-1 && m.grid.Cells[m.selected].Blank {
			m.selected++
		}
	}
	m.follow()
}

// move shifts the selection by delta cells, staying on dates
func (m *Model) move(delta int) {
	next := m.selected + delta
	if next < 0 || next >= m.grid.Len() || m.grid.Cells[next].Blank {
		return
	}
	m.selected = next
	m.status = ""
	m.follow()
}

// follow scrolls the selected row into view
func (m *Model) follow() {
	if m.grid.Len() == 0 {
		return
	}
	m.vp.EnsureVisible(m.selected/calendar.Columns, m.grid.RowCount())
}

// record adds a movement on the selected day at the current time of day
func (m *Model) record() {
	date, ok := m.Selected()
	if !ok {
		m.status = errorStyle.Render("no day selected")
		return
	}
	now := m.clock()
	at := time.Date(date.Year, date.Month, date.Day, now.Hour(), now.Minute(), 0, 0, now.Location())
	mv := m.journal.Record(at)
	m.status = statusStyle.Render(fmt.Sprintf("recorded %s at %s", date, mv.Time.Format("15:04")))
}
