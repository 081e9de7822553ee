package calendar

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/goodsign/monday"
	"golang.org/x/text/language"
)

// Locale holds the display names and week convention used by the grid
type Locale struct {
	Tag          language.Tag
	FirstWeekday time.Weekday
	months       [12]string
	weekdays     [7]string // indexed by time.Weekday
}

// Supported lists the tags a requested locale is matched against, one per
// locale with translated date names. The first entry is the fallback.
var Supported []language.Tag

var (
	dateLocales = map[language.Tag]monday.Locale{}
	matcher     language.Matcher
)

func init() {
	fallback := language.BritishEnglish
	var tags []language.Tag
	for _, l := range monday.ListLocales() {
		tag, err := language.Parse(strings.ReplaceAll(string(l), "_", "-"))
		if err != nil {
			continue
		}
		if _, dup := dateLocales[tag]; dup {
			continue
		}
		dateLocales[tag] = l
		if tag != fallback {
			tags = append(tags, tag)
		}
	}
	sort.Slice(tags, func(a, b int) bool { return tags[a].String() < tags[b].String() })

	dateLocales[fallback] = monday.LocaleEnGB
	Supported = append([]language.Tag{fallback}, tags...)
	matcher = language.NewMatcher(Supported)
}

// Regions whose week starts on Sunday
var sundayRegions = map[string]bool{
	"US": true, "CA": true, "JP": true, "BR": true, "MX": true, "IL": true, "PH": true, "ZA": true,
}

// LookupLocale matches tag against the supported locales. A language without
// translated date names is an error rather than a silent switch to English.
func LookupLocale(tag string) (Locale, error) {
	requested, err := language.Parse(tag)
	if err != nil {
		return Locale{}, fmt.Errorf("invalid locale %q: %w", tag, err)
	}
	_, idx, _ := matcher.Match(requested)
	matched := Supported[idx]

	wantBase, _ := requested.Base()
	gotBase, _ := matched.Base()
	if wantBase != gotBase {
		return Locale{}, fmt.Errorf("unsupported locale %q: no date names for %s", tag, wantBase)
	}

	// Region of the request wins over the matched tag, "es-MX" keeps Sunday
	region, conf := requested.Region()
	if conf == language.No {
		region, _ = matched.Region()
	}

	loc := Locale{Tag: matched, FirstWeekday: time.Monday}
	names := dateLocales[matched]
	for m := time.January; m <= time.December; m++ {
		loc.months[m-1] = monday.Format(time.Date(2024, m, 1, 12, 0, 0, 0, time.UTC), "January", names)
	}
	// 2024-01-07 is a Sunday
	for d := time.Sunday; d <= time.Saturday; d++ {
		loc.weekdays[d] = monday.Format(time.Date(2024, time.January, 7+int(d), 12, 0, 0, 0, time.UTC), "Monday", names)
	}

	if sundayRegions[region.String()] {
		loc.FirstWeekday = time.Sunday
	}
	return loc, nil
}

// DefaultLocale returns British English with Monday as first weekday
func DefaultLocale() Locale {
	loc, _ := LookupLocale("en-GB")
	return loc
}

// MonthName returns the full month name
func (l Locale) MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return l.months[m-1]
}

// WeekdayName returns the full weekday name
func (l Locale) WeekdayName(d time.Weekday) string {
	return l.weekdays[d%7]
}

// Column returns the grid column (0-6) of weekday d
func (l Locale) Column(d time.Weekday) int {
	return (int(d) - int(l.FirstWeekday) + 7) % 7
}

// Weekdays returns the weekdays in column order
func (l Locale) Weekdays() []time.Weekday {
	days := make([]time.Weekday, 7)
	for i := range days {
		days[i] = time.Weekday((int(l.FirstWeekday) + i) % 7)
	}
	return days
}

// MonthNames returns all twelve month names in order
func (l Locale) MonthNames() []string {
	return append([]string(nil), l.months[:]...)
}
