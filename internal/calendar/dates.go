// Package calendar generates the dates of a calendar year and lays them
// out into a seven column week grid.
package calendar

import (
	"fmt"
	"time"

	"cloudeng.io/datetime"
)

// DateLayout is the textual form of a CalendarDate
const DateLayout = "2006-01-02"

// CalendarDate is a year/month/day value without time of day or location
type CalendarDate struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate returns the CalendarDate for the given year, month and day
func NewDate(year int, month time.Month, day int) CalendarDate {
	return CalendarDate{Year: year, Month: month, Day: day}
}

// DateOf returns the calendar date of t in t's location
func DateOf(t time.Time) CalendarDate {
	y, m, d := t.Date()
	return CalendarDate{Year: y, Month: m, Day: d}
}

// ParseDate parses a date in YYYY-MM-DD format
func ParseDate(s string) (CalendarDate, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return CalendarDate{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateOf(t), nil
}

func (d CalendarDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Time returns midnight of the date in loc
func (d CalendarDate) Time(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// Weekday returns the day of the week of the date
func (d CalendarDate) Weekday() time.Weekday {
	// Use noon to avoid any DST edge when deriving the weekday
	return time.Date(d.Year, d.Month, d.Day, 12, 0, 0, 0, time.UTC).Weekday()
}

// Before reports whether d is earlier than other
func (d CalendarDate) Before(other CalendarDate) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// packed returns d as a cloudeng.io/datetime calendar date
func (d CalendarDate) packed() datetime.CalendarDate {
	return datetime.NewCalendarDate(d.Year, datetime.Month(d.Month), d.Day)
}

func fromPacked(cd datetime.CalendarDate) CalendarDate {
	return NewDate(int(cd.Year()), time.Month(cd.Month()), int(cd.Day()))
}

// DaysInMonth returns the number of days in the month of d
func (d CalendarDate) DaysInMonth() int {
	return int(datetime.DaysInMonth(d.Year, datetime.Month(d.Month)))
}

// Next returns the following day, rolling over month and year ends
func (d CalendarDate) Next() CalendarDate {
	return fromPacked(d.packed().Tomorrow())
}

// DateRange returns every date from start to end inclusive in ascending order.
// An empty slice is returned when start is after end.
func DateRange(start, end CalendarDate) []CalendarDate {
	// datetime swaps reversed bounds
	if end.Before(start) {
		return []CalendarDate{}
	}
	dates := []CalendarDate{}
	for cd := range datetime.NewCalendarDateRange(start.packed(), end.packed()).Dates() {
		dates = append(dates, fromPacked(cd))
	}
	return dates
}

// YearRange returns all dates from January 1 to December 31 of year
func YearRange(year int) []CalendarDate {
	return DateRange(NewDate(year, time.January, 1), NewDate(year, time.December, 31))
}
