package commands

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/klabast/wb-services/movement-calendar/internal/calendar"
)

func TestMaskInput(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     string
		wantEcho string
		wantErr  error
	}{
		{"Enter", "secret\r", "secret", "******", nil},
		{"Newline", "pw\nrest", "pw", "**", nil},
		{"Backspace", "abc\x7fd\r", "abd", "***\b \b*", nil},
		{"Backspace on empty", "\x08x\r", "x", "*", nil},
		{"Control characters ignored", "a\tb\r", "ab", "**", nil},
		{"EOF", "abc", "abc", "***", nil},
		{"Ctrl+C", "ab\x03", "", "**", errInterrupted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var echo bytes.Buffer
			got, err := maskInput(strings.NewReader(tt.input), &echo)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("maskInput() error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("maskInput() = %q, want %q", got, tt.want)
			}
			if echo.String() != tt.wantEcho {
				t.Errorf("echo = %q, want %q", echo.String(), tt.wantEcho)
			}
		})
	}
}

func TestCheckPasswords(t *testing.T) {
	if err := checkPasswords("", ""); err == nil {
		t.Error("Empty password should be rejected")
	}
	if err := checkPasswords("a", "b"); err == nil {
		t.Error("Mismatch should be rejected")
	}
	if err := checkPasswords("same", "same"); err != nil {
		t.Errorf("Matching passwords rejected: %v", err)
	}
}

func TestPrintCalendar(t *testing.T) {
	loc, err := calendar.LookupLocale("en-GB")
	if err != nil {
		t.Fatal(err)
	}
	grid := calendar.Layout(calendar.YearRange(2024), loc, nil)

	tests := []struct {
		name     string
		scroll   int
		rows     int
		date     string
		want     []string
		wantErr  bool
		notWants []string
	}{
		{"Top of year", 0, 3, "", []string{"Mo", "Jan"}, false, []string{"Feb"}},
		{"Scroll to date", 0, 3, "2024-06-15", []string{"Jun"}, false, []string{"Jan"}},
		{"Invalid date", 0, 3, "15.06.2024", nil, true, nil},
		{"Date outside grid", 0, 3, "2025-01-01", nil, true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := printCalendar(&out, grid, 6, tt.scroll, tt.rows, tt.date)
			if (err != nil) != tt.wantErr {
				t.Fatalf("printCalendar() error = %v, wantErr %v", err, tt.wantErr)
			}
			for _, want := range tt.want {
				if !strings.Contains(out.String(), want) {
					t.Errorf("Output missing %q:\n%s", want, out.String())
				}
			}
			for _, notWant := range tt.notWants {
				if strings.Contains(out.String(), notWant) {
					t.Errorf("Output should not contain %q:\n%s", notWant, out.String())
				}
			}
		})
	}
}

func TestPrintCalendarLines(t *testing.T) {
	loc, _ := calendar.LookupLocale("de-DE")
	grid := calendar.Layout(calendar.DateRange(calendar.NewDate(2024, time.March, 1), calendar.NewDate(2024, time.March, 31)), loc, nil)

	var out bytes.Buffer
	if err := printCalendar(&out, grid, 6, 0, grid.RowCount(), ""); err != nil {
		t.Fatal(err)
	}
	// Header plus one line per row
	if lines := strings.Count(out.String(), "\n"); lines != grid.RowCount()+1 {
		t.Errorf("Expected %d lines, got %d:\n%s", grid.RowCount()+1, lines, out.String())
	}
	if !strings.Contains(out.String(), "Mär") {
		t.Errorf("Expected German month label:\n%s", out.String())
	}
}
