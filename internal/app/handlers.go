package app

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/klabast/wb-services/movement-calendar/internal/calendar"
	"github.com/klabast/wb-services/movement-calendar/internal/overlay"
	"github.com/klabast/wb-services/movement-calendar/internal/view"
)

// ServeIndex serves the calendar page
func ServeIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(IndexHTML); err != nil {
		Log.WithError(err).Error("writing index HTML")
	}
}

// GetConfig returns the application configuration
func GetConfig(w http.ResponseWriter, r *http.Request) {
	grid, cfg := CurrentGrid()

	holidays := make(map[string]string)
	for _, c := range grid.Cells {
		if c.Holiday != "" {
			holidays[c.Date.String()] = c.Holiday
		}
	}

	config := map[string]interface{}{
		"year":         cfg.Year,
		"locale":       grid.Locale.Tag.String(),
		"firstWeekday": grid.Locale.FirstWeekday.String(),
		"header":       view.New(grid, DefaultGutterPx, overlay.FixedMeasurer{}, nil, Clock).Header(),
		"months":       grid.Locale.MonthNames(),
		"gutterWidth":  DefaultGutterPx,
		"editMode":     EditMode,
		"holidays":     holidays,
	}
	writeJSON(w, config)
}

// HandleGrid returns every cell of the calendar with its attributes
func HandleGrid(w http.ResponseWriter, r *http.Request) {
	grid, cfg := CurrentGrid()
	now := Clock()

	resp := GridResponse{
		Year:   cfg.Year,
		Header: view.New(grid, DefaultGutterPx, overlay.FixedMeasurer{}, nil, Clock).Header(),
		Rows:   grid.RowCount(),
		Cells:  make([]CellResponse, 0, grid.Len()),
	}
	for _, c := range grid.Cells {
		cell := CellResponse{Index: c.Index, Row: c.Row, Column: c.Column, Blank: c.Blank}
		if !c.Blank {
			cell.Date = c.Date.String()
			cell.Label = c.MonthLabel
			cell.Shade = c.ShadeVariant
			cell.Today = c.IsToday(now)
			cell.Holiday = c.Holiday
			cell.Count = Journal.Count(c.Date)
		}
		resp.Cells = append(resp.Cells, cell)
	}
	writeJSON(w, resp)
}

// dayNumber renders a cell as its day of month
func dayNumber(cell calendar.GridCell, _ time.Time) string {
	if cell.Blank {
		return ""
	}
	return strconv.Itoa(cell.Date.Day)
}

// HandleFrame renders one pass for a viewport simulated on the server
// Query params: scroll, height, itemHeight, gutter, glyphWidth, glyphHeight
func HandleFrame(w http.ResponseWriter, r *http.Request) {
	scroll, ok1 := queryInt(r, "scroll", 0)
	height, ok2 := queryInt(r, "height", 600)
	itemHeight, ok3 := queryInt(r, "itemHeight", 48)
	gutter, ok4 := queryInt(r, "gutter", DefaultGutterPx)
	glyphWidth, ok5 := queryInt(r, "glyphWidth", DefaultGlyphWidth)
	glyphHeight, ok6 := queryInt(r, "glyphHeight", DefaultGlyphHeight)
	if !(ok1 && ok2 && ok3 && ok4 && ok5 && ok6) || itemHeight == 0 ||
		exceeds(MaxViewportHeight, height, itemHeight, gutter, glyphWidth, glyphHeight) {
		http.Error(w, ErrInvalidParameter, http.StatusBadRequest)
		return
	}

	grid, _ := CurrentGrid()
	measure := overlay.FixedMeasurer{GlyphWidth: glyphWidth, GlyphHeight: glyphHeight}
	v := view.New(grid, gutter, measure, view.CellRendererFunc(dayNumber), Clock)

	vp := view.Viewport{Scroll: scroll, Height: height, ItemHeight: itemHeight}
	vp.ScrollBy(0, grid.RowCount())

	writeJSON(w, FrameResponse{
		Frame:     v.Frame(vp),
		Scroll:    vp.Scroll,
		MaxScroll: vp.MaxScroll(grid.RowCount()),
	})
}

// HandleOverlay computes the sticky labels for the visible items a client's
// own scroll container reported
func HandleOverlay(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req OverlayRequest
	r.Body = http.MaxBytesReader(w, r.Body, MaxOverlayBody)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, ErrBodyTooLarge, http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, ErrInvalidBody, http.StatusBadRequest)
		return
	}
	if exceeds(MaxViewportHeight, req.ItemHeight, req.Gutter, req.GlyphWidth, req.GlyphHeight) {
		http.Error(w, ErrInvalidParameter, http.StatusBadRequest)
		return
	}

	grid, _ := CurrentGrid()
	measure := overlay.FixedMeasurer{
		GlyphWidth:  orDefault(req.GlyphWidth, DefaultGlyphWidth),
		GlyphHeight: orDefault(req.GlyphHeight, DefaultGlyphHeight),
	}
	o := overlay.New(grid.Labels(), orDefault(req.Gutter, DefaultGutterPx), measure)
	if req.ItemHeight > 0 {
		o.SetItemHeight(req.ItemHeight)
	}

	labels := o.Render(req.Items)
	if labels == nil {
		labels = []overlay.DrawCommand{}
	}
	writeJSON(w, OverlayResponse{Labels: labels})
}

// HandleText renders the calendar as plain text, as the terminal UI shows it
// Query params: scroll (rows), height (lines)
func HandleText(w http.ResponseWriter, r *http.Request) {
	scroll, ok1 := queryInt(r, "scroll", 0)
	height, ok2 := queryInt(r, "height", 12)
	if !ok1 || !ok2 || height > MaxViewportHeight {
		http.Error(w, ErrInvalidParameter, http.StatusBadRequest)
		return
	}

	grid, cfg := CurrentGrid()
	term := view.NewTerminal(grid, cfg.GutterWidth, Clock)
	term.Marked = func(d calendar.CalendarDate) bool { return Journal.Count(d) > 0 }

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := io.WriteString(w, term.Render(scroll, height)+"\n"); err != nil {
		Log.WithError(err).Error("writing text calendar")
	}
}

// lookupDate parses s and checks that the calendar contains it
func lookupDate(w http.ResponseWriter, s string) (calendar.CalendarDate, bool) {
	date, err := calendar.ParseDate(s)
	if err != nil {
		http.Error(w, ErrInvalidDateFormat, http.StatusBadRequest)
		return calendar.CalendarDate{}, false
	}
	grid, _ := CurrentGrid()
	if grid.IndexOf(date) < 0 {
		http.Error(w, ErrDateNotInCalendar, http.StatusNotFound)
		return calendar.CalendarDate{}, false
	}
	return date, true
}

// HandleDay returns the recorded movements of one day
// URL: /api/days/{date}
func HandleDay(w http.ResponseWriter, r *http.Request) {
	date, ok := lookupDate(w, strings.TrimPrefix(r.URL.Path, "/api/days/"))
	if !ok {
		return
	}
	writeJSON(w, dayResponse(Journal.Day(date)))
}

// AddMovement records a movement (edit mode only)
func AddMovement(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) || !RequireEditMode(w) {
		return
	}

	var req MovementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, ErrInvalidBody, http.StatusBadRequest)
		return
	}

	now := Clock()
	date := calendar.DateOf(now)
	if req.Date != "" {
		var ok bool
		if date, ok = lookupDate(w, req.Date); !ok {
			return
		}
	} else if grid, _ := CurrentGrid(); grid.IndexOf(date) < 0 {
		http.Error(w, ErrDateNotInCalendar, http.StatusNotFound)
		return
	}

	hour, minute := now.Hour(), now.Minute()
	if req.Time != "" {
		tod, err := time.Parse("15:04", req.Time)
		if err != nil {
			http.Error(w, ErrInvalidTimeFormat, http.StatusBadRequest)
			return
		}
		hour, minute = tod.Hour(), tod.Minute()
	}

	at := time.Date(date.Year, date.Month, date.Day, hour, minute, 0, 0, now.Location())
	movement := Journal.Record(at)

	Log.WithFields(logrus.Fields{
		"date": date.String(),
		"id":   movement.ID.String(),
	}).Info("movement recorded")

	writeJSON(w, map[string]interface{}{
		"status":   "ok",
		"movement": movement,
		"count":    Journal.Count(date),
	})
}

// HandleDownload exports the recorded movements in ICS, CSV or JSON format
func HandleDownload(w http.ResponseWriter, r *http.Request) {
	_, cfg := CurrentGrid()
	days := Journal.Days()

	switch r.URL.Query().Get("format") {
	case "ics":
		GenerateICS(w, cfg.Year, days)
	case "csv":
		GenerateCSV(w, cfg.Year, days)
	case "json":
		GenerateJSON(w, cfg.Year, days)
	default:
		http.Error(w, ErrInvalidFormat, http.StatusBadRequest)
	}
}
