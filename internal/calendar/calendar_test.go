package calendar

import (
	"strings"
	"testing"
	"time"
)

func TestDateRange(t *testing.T) {
	tests := []struct {
		name      string
		start     CalendarDate
		end       CalendarDate
		wantCount int
	}{
		{"single day", NewDate(2024, 3, 1), NewDate(2024, 3, 1), 1},
		{"one week", NewDate(2024, 1, 1), NewDate(2024, 1, 7), 7},
		{"leap february", NewDate(2024, 2, 1), NewDate(2024, 3, 1), 30},
		{"plain february", NewDate(2023, 2, 1), NewDate(2023, 3, 1), 29},
		{"across year end", NewDate(2023, 12, 30), NewDate(2024, 1, 2), 4},
		{"leap year", NewDate(2024, 1, 1), NewDate(2024, 12, 31), 366},
		{"start after end", NewDate(2024, 5, 2), NewDate(2024, 5, 1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dates := DateRange(tt.start, tt.end)
			if dates == nil {
				t.Fatal("DateRange returned nil, want empty or populated slice")
			}
			if len(dates) != tt.wantCount {
				t.Fatalf("Expected %d dates, got %d", tt.wantCount, len(dates))
			}
			if tt.wantCount == 0 {
				return
			}
			if dates[0] != tt.start || dates[len(dates)-1] != tt.end {
				t.Errorf("Range should span %v..%v, got %v..%v", tt.start, tt.end, dates[0], dates[len(dates)-1])
			}
			for i := 1; i < len(dates); i++ {
				if !dates[i-1].Before(dates[i]) {
					t.Fatalf("Dates not strictly ascending at %d: %v, %v", i, dates[i-1], dates[i])
				}
				if dates[i-1].Next() != dates[i] {
					t.Fatalf("Gap between %v and %v", dates[i-1], dates[i])
				}
				gap := dates[i].Time(time.UTC).Sub(dates[i-1].Time(time.UTC))
				if gap != 24*time.Hour {
					t.Fatalf("Expected one day between %v and %v, got %v", dates[i-1], dates[i], gap)
				}
			}
		})
	}
}

func TestDaysInMonth(t *testing.T) {
	tests := map[CalendarDate]int{
		NewDate(2024, time.February, 10): 29,
		NewDate(2023, time.February, 10): 28,
		NewDate(2024, time.April, 1):     30,
		NewDate(2024, time.December, 31): 31,
	}
	for d, want := range tests {
		if got := d.DaysInMonth(); got != want {
			t.Errorf("%s: expected %d days, got %d", d, want, got)
		}
	}
	if got := NewDate(2023, time.December, 31).Next(); got != NewDate(2024, time.January, 1) {
		t.Errorf("Expected rollover to 2024-01-01, got %s", got)
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	if err != nil {
		t.Fatalf("ParseDate() failed: %v", err)
	}
	if d != NewDate(2024, time.February, 29) {
		t.Errorf("Unexpected date %v", d)
	}
	if d.String() != "2024-02-29" {
		t.Errorf("Expected 2024-02-29, got %s", d.String())
	}

	for _, bad := range []string{"", "2023-02-29", "29.02.2024", "2024-13-01"} {
		if _, err := ParseDate(bad); err == nil {
			t.Errorf("ParseDate(%q) should fail", bad)
		}
	}
}

func TestLookupLocale(t *testing.T) {
	tests := []struct {
		tag          string
		wantFirst    time.Weekday
		wantJanuary  string
		wantMondayTo string
	}{
		{"en-GB", time.Monday, "January", "Monday"},
		{"en-US", time.Sunday, "January", "Monday"},
		{"de-DE", time.Monday, "Januar", "Montag"},
		{"de-AT", time.Monday, "Januar", "Montag"},
		{"fr-FR", time.Monday, "janvier", "lundi"},
		{"es-MX", time.Sunday, "enero", "lunes"},
		{"nl", time.Monday, "januari", "maandag"},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			loc, err := LookupLocale(tt.tag)
			if err != nil {
				t.Fatalf("LookupLocale() failed: %v", err)
			}
			if loc.FirstWeekday != tt.wantFirst {
				t.Errorf("Expected first weekday %v, got %v", tt.wantFirst, loc.FirstWeekday)
			}
			if got := loc.MonthName(time.January); !strings.EqualFold(got, tt.wantJanuary) {
				t.Errorf("Expected %q, got %q", tt.wantJanuary, got)
			}
			if got := loc.WeekdayName(time.Monday); !strings.EqualFold(got, tt.wantMondayTo) {
				t.Errorf("Expected %q, got %q", tt.wantMondayTo, got)
			}
			if loc.Column(loc.FirstWeekday) != 0 {
				t.Error("First weekday should be column 0")
			}
		})
	}

	if _, err := LookupLocale("!!"); err == nil {
		t.Error("LookupLocale should reject malformed tags")
	}
}

func TestLookupLocaleTranslatedNames(t *testing.T) {
	english, err := LookupLocale("en-GB")
	if err != nil {
		t.Fatal(err)
	}

	for _, tag := range []string{"it-IT", "pl-PL", "ru-RU", "pt-BR", "ja-JP"} {
		t.Run(tag, func(t *testing.T) {
			loc, err := LookupLocale(tag)
			if err != nil {
				t.Fatalf("LookupLocale() failed: %v", err)
			}
			if base, _ := loc.Tag.Base(); base.String() != tag[:2] {
				t.Errorf("Expected a %s locale, got %s", tag[:2], loc.Tag)
			}
			for m := time.January; m <= time.December; m++ {
				if got := loc.MonthName(m); got == "" || got == english.MonthName(m) {
					t.Errorf("Month %d not translated: %q", m, got)
				}
			}
			if got := loc.WeekdayName(time.Wednesday); got == "" || got == english.WeekdayName(time.Wednesday) {
				t.Errorf("Wednesday not translated: %q", got)
			}
		})
	}
}

func TestLookupLocaleUnsupported(t *testing.T) {
	// Welsh has no translated date names
	if loc, err := LookupLocale("cy-GB"); err == nil {
		t.Errorf("Expected error, got %s with %q", loc.Tag, loc.MonthName(time.March))
	}
}

func TestLayout(t *testing.T) {
	dates := YearRange(2024)
	grid := Layout(dates, DefaultLocale(), nil)

	// Jan 1 2024 is a Monday, no padding needed
	if grid.Len() != 366 {
		t.Fatalf("Expected 366 cells, got %d", grid.Len())
	}
	if grid.RowCount() != 53 {
		t.Errorf("Expected 53 rows, got %d", grid.RowCount())
	}

	for i, c := range grid.Cells {
		if c.Index != i || c.Row != i/Columns || c.Column != i%Columns {
			t.Fatalf("Cell %d has index %d row %d column %d", i, c.Index, c.Row, c.Column)
		}
		if c.Column != grid.Locale.Column(c.Date.Weekday()) {
			t.Fatalf("Cell %v in column %d, weekday %v", c.Date, c.Column, c.Date.Weekday())
		}
	}

	// Rows concatenate back to the original sequence
	var joined []CalendarDate
	for _, row := range grid.Rows() {
		if len(row) > Columns {
			t.Fatalf("Row longer than %d: %d", Columns, len(row))
		}
		for _, c := range row {
			joined = append(joined, c.Date)
		}
	}
	if len(joined) != len(dates) {
		t.Fatalf("Expected %d dates after join, got %d", len(dates), len(joined))
	}
	for i := range dates {
		if joined[i] != dates[i] {
			t.Fatalf("Mismatch at %d: %v != %v", i, joined[i], dates[i])
		}
	}
}

func TestLayoutPadsLeadingCells(t *testing.T) {
	loc, err := LookupLocale("en-US")
	if err != nil {
		t.Fatalf("LookupLocale() failed: %v", err)
	}

	// Sunday first, Jan 1 2024 (Monday) lands in column 1
	grid := Layout(YearRange(2024), loc, nil)
	if grid.Len() != 367 {
		t.Fatalf("Expected 367 cells, got %d", grid.Len())
	}
	if !grid.Cells[0].Blank || grid.Cells[0].MonthLabel != "" {
		t.Errorf("First cell should be a blank placeholder: %+v", grid.Cells[0])
	}
	first := grid.Cells[1]
	if first.Blank || first.Date != NewDate(2024, 1, 1) || first.Column != 1 {
		t.Errorf("Unexpected first date cell: %+v", first)
	}
	if got := grid.IndexOf(NewDate(2024, 1, 1)); got != 1 {
		t.Errorf("Expected IndexOf 1, got %d", got)
	}
	if len(grid.Dates()) != 366 {
		t.Errorf("Expected 366 dates, got %d", len(grid.Dates()))
	}
}

func TestLayoutEmpty(t *testing.T) {
	grid := Layout(nil, DefaultLocale(), nil)
	if grid.Len() != 0 || grid.RowCount() != 0 || len(grid.Rows()) != 0 {
		t.Error("Empty date range should produce an empty grid")
	}
}

func TestIsToday(t *testing.T) {
	grid := Layout(YearRange(2024), DefaultLocale(), nil)
	now := time.Date(2024, time.July, 14, 23, 59, 0, 0, time.Local)

	count := 0
	for _, c := range grid.Cells {
		if c.IsToday(now) {
			count++
			if c.Date != NewDate(2024, time.July, 14) {
				t.Errorf("Wrong cell marked as today: %v", c.Date)
			}
		}
	}
	if count != 1 {
		t.Errorf("Expected exactly one today cell, got %d", count)
	}

	outside := time.Date(2025, time.July, 14, 12, 0, 0, 0, time.Local)
	for _, c := range grid.Cells {
		if c.IsToday(outside) {
			t.Fatalf("No cell should be today for %v", outside)
		}
	}
}

func TestShadeVariant(t *testing.T) {
	grid := Layout(YearRange(2024), DefaultLocale(), nil)
	want := map[time.Month]bool{
		time.January:  false,
		time.February: true,
		time.March:    false,
		time.April:    true,
		time.May:      false,
	}
	for _, c := range grid.Cells {
		if shaded, ok := want[c.Date.Month]; ok && c.ShadeVariant != shaded {
			t.Fatalf("%v: expected shade %v, got %v", c.Date, shaded, c.ShadeVariant)
		}
	}
}

func TestHolidays(t *testing.T) {
	holidays := Holidays("de-nw", 2024)

	// Easter Sunday 2024 is March 31
	tests := map[CalendarDate]string{
		NewDate(2024, time.January, 1):  "Neujahr",
		NewDate(2024, time.March, 29):   "Karfreitag",
		NewDate(2024, time.April, 1):    "Ostermontag",
		NewDate(2024, time.May, 9):      "Christi Himmelfahrt",
		NewDate(2024, time.May, 20):     "Pfingstmontag",
		NewDate(2024, time.May, 30):     "Fronleichnam",
		NewDate(2024, time.December, 26): "2. Weihnachtstag",
	}
	for date, name := range tests {
		if holidays[date] != name {
			t.Errorf("%v: expected %q, got %q", date, name, holidays[date])
		}
	}

	if len(Holidays("", 2024)) != 0 {
		t.Error("Empty region should have no holidays")
	}

	grid := Layout(YearRange(2024), DefaultLocale(), holidays)
	if c := grid.Cells[grid.IndexOf(NewDate(2024, time.October, 3))]; c.Holiday != "Tag der Deutschen Einheit" {
		t.Errorf("Grid cell should carry holiday name, got %q", c.Holiday)
	}
}
