package commands

import (
	"flag"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/klabast/wb-services/movement-calendar/internal/app"
	"github.com/klabast/wb-services/movement-calendar/internal/calendar"
	"github.com/klabast/wb-services/movement-calendar/internal/view"
)

// Print handles the print subcommand: renders one frame of the calendar to stdout
func Print(args []string) error {
	fs := flag.NewFlagSet("print", flag.ExitOnError)
	scroll := fs.Int("scroll", 0, "Number of rows to scroll down")
	height := fs.Int("height", 0, "Number of grid rows to print (default: terminal height, or the whole year)")
	date := fs.String("date", "", "Scroll so that this date (YYYY-MM-DD) is in view")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: movement-calendar print [OPTIONS]\n\n")
		fmt.Fprintf(os.Stderr, "Prints the calendar with its sticky month labels.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	grid, cfg := app.CurrentGrid()
	rows := *height
	if rows <= 0 {
		rows = defaultRows(grid)
	}
	return printCalendar(os.Stdout, grid, cfg.GutterWidth, *scroll, rows, *date)
}

// defaultRows fits the terminal when stdout is one, otherwise prints everything
func defaultRows(grid *calendar.Grid) int {
	if _, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil && h > 2 {
		return h - 2
	}
	return grid.RowCount()
}

func printCalendar(w io.Writer, grid *calendar.Grid, gutterWidth, scroll, rows int, date string) error {
	t := view.NewTerminal(grid, gutterWidth, app.Clock)
	vp := t.Viewport(scroll, rows)

	if date != "" {
		d, err := calendar.ParseDate(date)
		if err != nil {
			return err
		}
		idx := grid.IndexOf(d)
		if idx < 0 {
			return fmt.Errorf("%s: %s", app.ErrDateNotInCalendar, d)
		}
		t.Selected = idx
		vp.EnsureVisible(idx/calendar.Columns, grid.RowCount())
	}
	vp.ScrollBy(0, grid.RowCount())

	_, err := fmt.Fprintln(w, t.Render(vp.Scroll, vp.Height))
	return err
}
