package calendar

import (
	"strings"
	"time"
)

// Holidays returns the public holidays of region for the given year.
// Unknown or empty regions have no holidays.
func Holidays(region string, year int) map[CalendarDate]string {
	switch strings.ToUpper(region) {
	case "DE-NW":
		return nrwHolidays(year)
	default:
		return map[CalendarDate]string{}
	}
}

// nrwHolidays returns the public holidays in North Rhine-Westphalia
func nrwHolidays(year int) map[CalendarDate]string {
	holidays := map[CalendarDate]string{
		NewDate(year, time.January, 1):   "Neujahr",
		NewDate(year, time.May, 1):       "Tag der Arbeit",
		NewDate(year, time.October, 3):   "Tag der Deutschen Einheit",
		NewDate(year, time.November, 1):  "Allerheiligen",
		NewDate(year, time.December, 25): "1. Weihnachtstag",
		NewDate(year, time.December, 26): "2. Weihnachtstag",
	}

	// Easter-based holidays
	easter := easterSunday(year)
	holidays[DateOf(easter.AddDate(0, 0, -2))] = "Karfreitag"
	holidays[DateOf(easter.AddDate(0, 0, 1))] = "Ostermontag"
	holidays[DateOf(easter.AddDate(0, 0, 39))] = "Christi Himmelfahrt"
	holidays[DateOf(easter.AddDate(0, 0, 50))] = "Pfingstmontag"
	holidays[DateOf(easter.AddDate(0, 0, 60))] = "Fronleichnam"

	return holidays
}

// easterSunday calculates Easter Sunday using the Meeus/Jones/Butcher algorithm
func easterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := ((h + l - 7*m + 114) % 31) + 1

	// Noon keeps AddDate clear of DST transitions
	return time.Date(year, time.Month(month), day, 12, 0, 0, 0, time.UTC)
}
