package app

import (
	"encoding/csv"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/klabast/wb-services/movement-calendar/internal/journal"
)

func sampleDays() []journal.DayInfo {
	j := journal.New()
	j.Record(time.Date(2024, time.March, 1, 7, 30, 0, 0, time.UTC))
	j.Record(time.Date(2024, time.March, 1, 19, 5, 0, 0, time.UTC))
	j.Record(time.Date(2024, time.March, 4, 8, 0, 0, 0, time.UTC))
	return j.Days()
}

func TestGenerateICS(t *testing.T) {
	Clock = func() time.Time { return time.Date(2024, time.March, 5, 12, 0, 0, 0, time.UTC) }
	defer func() { Clock = time.Now }()

	w := httptest.NewRecorder()
	GenerateICS(w, 2024, sampleDays())

	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/calendar") {
		t.Errorf("Expected text/calendar content type, got %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "movements_2024.ics") {
		t.Errorf("Unexpected Content-Disposition %q", cd)
	}

	body := w.Body.String()
	for _, want := range []string{"BEGIN:VCALENDAR", "END:VCALENDAR", ICSProductID, "METHOD:PUBLISH", "DTSTART:20240301T073000Z", "Bowel movement"} {
		if !strings.Contains(body, want) {
			t.Errorf("ICS output missing %q", want)
		}
	}
	if n := strings.Count(body, "BEGIN:VEVENT"); n != 3 {
		t.Errorf("Expected 3 events, got %d", n)
	}
	if !strings.Contains(body, "Movement 2 of 2 on 2024-03-01") {
		t.Error("Expected per-day movement description")
	}
}

func TestGenerateICSEmpty(t *testing.T) {
	w := httptest.NewRecorder()
	GenerateICS(w, 2024, nil)

	body := w.Body.String()
	if !strings.Contains(body, "BEGIN:VCALENDAR") {
		t.Error("Empty export should still be a calendar")
	}
	if strings.Contains(body, "BEGIN:VEVENT") {
		t.Error("Empty export should have no events")
	}
}

func TestGenerateCSV(t *testing.T) {
	days := sampleDays()
	w := httptest.NewRecorder()
	GenerateCSV(w, 2024, days)

	records, err := csv.NewReader(strings.NewReader(w.Body.String())).ReadAll()
	if err != nil {
		t.Fatalf("Output is not valid CSV: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("Expected header plus 3 rows, got %d", len(records))
	}
	if strings.Join(records[0], ",") != "date,time,id" {
		t.Errorf("Unexpected header %v", records[0])
	}
	if records[1][0] != "2024-03-01" || records[1][1] != "07:30" {
		t.Errorf("Unexpected first row %v", records[1])
	}
	if records[3][0] != "2024-03-04" || records[3][2] != days[1].Movements()[0].ID.String() {
		t.Errorf("Unexpected last row %v", records[3])
	}
}

func TestGenerateJSON(t *testing.T) {
	w := httptest.NewRecorder()
	GenerateJSON(w, 2024, sampleDays())

	var out struct {
		Year int           `json:"year"`
		Days []DayResponse `json:"days"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if out.Year != 2024 {
		t.Errorf("Expected year 2024, got %d", out.Year)
	}
	if len(out.Days) != 2 {
		t.Fatalf("Expected 2 days, got %d", len(out.Days))
	}
	if out.Days[0].Date != "2024-03-01" || out.Days[0].Count != 2 || len(out.Days[0].Movements) != 2 {
		t.Errorf("Unexpected first day %+v", out.Days[0])
	}
}
