package app

import (
	"github.com/klabast/wb-services/movement-calendar/internal/journal"
	"github.com/klabast/wb-services/movement-calendar/internal/overlay"
	"github.com/klabast/wb-services/movement-calendar/internal/view"
)

// CellResponse describes one grid cell
type CellResponse struct {
	Index   int    `json:"index"`
	Row     int    `json:"row"`
	Column  int    `json:"column"`
	Date    string `json:"date,omitempty"`
	Blank   bool   `json:"blank,omitempty"`
	Label   string `json:"label,omitempty"`
	Shade   bool   `json:"shade,omitempty"`
	Today   bool   `json:"today,omitempty"`
	Holiday string `json:"holiday,omitempty"`
	Count   int    `json:"count,omitempty"`
}

// GridResponse is the body of /api/grid
type GridResponse struct {
	Year   int            `json:"year"`
	Header []string       `json:"header"`
	Rows   int            `json:"rows"`
	Cells  []CellResponse `json:"cells"`
}

// FrameResponse is the body of /api/frame
type FrameResponse struct {
	view.Frame
	Scroll    int `json:"scroll"`
	MaxScroll int `json:"maxScroll"`
}

// OverlayRequest carries the visible items a client's scroll container reported
type OverlayRequest struct {
	Items       []overlay.VisibleItem `json:"items"`
	ItemHeight  int                   `json:"itemHeight"`
	Gutter      int                   `json:"gutter"`
	GlyphWidth  int                   `json:"glyphWidth"`
	GlyphHeight int                   `json:"glyphHeight"`
}

// OverlayResponse is the body of /api/overlay
type OverlayResponse struct {
	Labels []overlay.DrawCommand `json:"labels"`
}

// DayResponse is a DayInfo on the wire
type DayResponse struct {
	Date      string             `json:"date"`
	Count     int                `json:"count"`
	Movements []journal.Movement `json:"movements"`
}

// MovementRequest records a movement; empty fields default to now
type MovementRequest struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

func dayResponse(day journal.DayInfo) DayResponse {
	movements := day.Movements()
	if movements == nil {
		movements = []journal.Movement{}
	}
	return DayResponse{
		Date:      day.Date.String(),
		Count:     day.Count(),
		Movements: movements,
	}
}
