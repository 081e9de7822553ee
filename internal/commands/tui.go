package commands

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/klabast/wb-services/movement-calendar/internal/app"
	"github.com/klabast/wb-services/movement-calendar/internal/tui"
)

// TUI handles the tui subcommand: an interactive calendar in the terminal
func TUI(args []string) error {
	fs := flag.NewFlagSet("tui", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: movement-calendar tui\n\n")
		fmt.Fprintf(os.Stderr, "Browses the calendar and records movements on the selected day.\n")
		fmt.Fprintf(os.Stderr, "Movements are kept in memory for the session.\n")
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	grid, cfg := app.CurrentGrid()
	m := tui.New(grid, cfg.GutterWidth, app.Journal, app.Clock)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("running terminal UI: %w", err)
	}
	return nil
}
