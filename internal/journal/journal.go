// Package journal records bowel movements per calendar day in memory.
package journal

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/klabast/wb-services/movement-calendar/internal/calendar"
)

// Movement is a single recorded event
type Movement struct {
	ID   uuid.UUID `json:"id"`
	Time time.Time `json:"time"`
}

// DayInfo is the log of one day
type DayInfo struct {
	Date      calendar.CalendarDate
	count     int
	movements []Movement
}

// AddMovement appends an event at t and increments the count
func (d *DayInfo) AddMovement(t time.Time) Movement {
	m := Movement{ID: uuid.New(), Time: t}
	d.count++
	d.movements = append(d.movements, m)
	return m
}

// Count returns the number of recorded movements
func (d DayInfo) Count() int {
	return d.count
}

// Movements returns the recorded movements in insertion order
func (d DayInfo) Movements() []Movement {
	return append([]Movement(nil), d.movements...)
}

// Journal keeps DayInfo per date and is safe for concurrent use
type Journal struct {
	mu   sync.RWMutex
	days map[calendar.CalendarDate]*DayInfo
}

// New returns an empty journal
func New() *Journal {
	return &Journal{days: make(map[calendar.CalendarDate]*DayInfo)}
}

// Record adds a movement at t to the day of t
func (j *Journal) Record(t time.Time) Movement {
	date := calendar.DateOf(t)

	j.mu.Lock()
	defer j.mu.Unlock()

	day, ok := j.days[date]
	if !ok {
		day = &DayInfo{Date: date}
		j.days[date] = day
	}
	return day.AddMovement(t)
}

// Day returns a snapshot of the given date; days without entries have a zero count
func (j *Journal) Day(date calendar.CalendarDate) DayInfo {
	j.mu.RLock()
	defer j.mu.RUnlock()

	day, ok := j.days[date]
	if !ok {
		return DayInfo{Date: date}
	}
	return DayInfo{Date: date, count: day.count, movements: day.Movements()}
}

// Count returns the number of movements on date
func (j *Journal) Count(date calendar.CalendarDate) int {
	j.mu.RLock()
	defer j.mu.RUnlock()

	if day, ok := j.days[date]; ok {
		return day.count
	}
	return 0
}

// Days returns snapshots of all days with entries sorted by date
func (j *Journal) Days() []DayInfo {
	j.mu.RLock()
	days := make([]DayInfo, 0, len(j.days))
	for date, day := range j.days {
		days = append(days, DayInfo{Date: date, count: day.count, movements: day.Movements()})
	}
	j.mu.RUnlock()

	sort.Slice(days, func(a, b int) bool {
		return days[a].Date.Before(days[b].Date)
	})
	return days
}
