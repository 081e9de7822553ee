package app

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/klabast/wb-services/movement-calendar/internal/journal"
)

// MovementDuration is the length given to a movement in calendar exports
const MovementDuration = 10 * time.Minute

// writeString writes to w and logs any error
func writeString(w io.Writer, s string) {
	if _, err := io.WriteString(w, s); err != nil {
		Log.WithError(err).Error("writing response")
	}
}

// BuildICS returns an iCalendar document with one event per movement
func BuildICS(year int, days []journal.DayInfo) *ics.Calendar {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(ICSProductID)
	cal.SetXWRCalName(fmt.Sprintf("Movements %d", year))

	stamp := Clock().UTC()
	for _, day := range days {
		for i, m := range day.Movements() {
			// UID must be stable for proper calendar updates
			event := cal.AddEvent(fmt.Sprintf("%s@%s", m.ID, ICSDomain))
			event.SetDtStampTime(stamp)
			event.SetStartAt(m.Time)
			event.SetEndAt(m.Time.Add(MovementDuration))
			event.SetSummary("Bowel movement")
			event.SetDescription(fmt.Sprintf("Movement %d of %d on %s", i+1, day.Count(), day.Date))
		}
	}
	return cal
}

// GenerateICS writes the movements as an iCalendar attachment
func GenerateICS(w http.ResponseWriter, year int, days []journal.DayInfo) {
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=movements_%d.ics", year))
	writeString(w, BuildICS(year, days).Serialize())
}

// GenerateCSV writes one row per movement
func GenerateCSV(w http.ResponseWriter, year int, days []journal.DayInfo) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=movements_%d.csv", year))

	cw := csv.NewWriter(w)
	records := [][]string{{"date", "time", "id"}}
	for _, day := range days {
		for _, m := range day.Movements() {
			records = append(records, []string{day.Date.String(), m.Time.Format("15:04"), m.ID.String()})
		}
	}
	if err := cw.WriteAll(records); err != nil {
		Log.WithError(err).Error("writing CSV export")
	}
}

// GenerateJSON writes the days with their movements
func GenerateJSON(w http.ResponseWriter, year int, days []journal.DayInfo) {
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=movements_%d.json", year))

	out := make([]DayResponse, 0, len(days))
	for _, day := range days {
		out = append(out, dayResponse(day))
	}
	writeJSON(w, map[string]interface{}{
		"year": year,
		"days": out,
	})
}
