package streak

import (
	"time"

	"github.com/dstasiak/habitflow/internal/dateutil"
)

// DayStatus classifies a single calendar cell for rendering.
type DayStatus string

const (
	DayDone           DayStatus = "done"
	DaySkipped        DayStatus = "skipped"
	DayMissing        DayStatus = "missing"
	DayFuture         DayStatus = "future"
	DayBeforeCreation DayStatus = "before-creation"
	DayPending        DayStatus = "today-pending"
)

// StatusIndex builds a day-key lookup over a habit's entries so that calendar
// classification never rescans the entry list per day.
func StatusIndex(entries []Entry) map[string]EntryStatus {
	index := make(map[string]EntryStatus, len(entries))
	for _, e := range entries {
		index[dateutil.DayKey(e.Day)] = e.Status
	}
	return index
}

// ClassifyDay resolves the status of one calendar day. Days before the habit
// existed win over any stray entry recorded for them.
func ClassifyDay(index map[string]EntryStatus, day, today, createdAt time.Time) DayStatus {
	d := dateutil.DayStart(day)
	t := dateutil.DayStart(today)

	if d.After(t) {
		return DayFuture
	}
	if d.Before(dateutil.DayStart(createdAt)) {
		return DayBeforeCreation
	}
	if status, ok := index[dateutil.DayKey(d)]; ok {
		switch status {
		case StatusDone:
			return DayDone
		case StatusSkipped:
			return DaySkipped
		}
	}
	if d.Equal(t) {
		return DayPending
	}
	return DayMissing
}

// MonthCell is one box of the month grid. Leading padding cells carry Day 0 so
// the first weekday row starts on Monday.
type MonthCell struct {
	Day    int       `json:"day"`
	Key    string    `json:"key,omitempty"`
	Status DayStatus `json:"status,omitempty"`
}

// MonthGrid lays out one month Monday-first, classifying every real day.
func MonthGrid(index map[string]EntryStatus, year int, month time.Month, today, createdAt time.Time) []MonthCell {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	// time.Weekday is Sunday-based; shift so Monday lands at offset 0.
	offset := (int(first.Weekday()) + 6) % 7

	cells := make([]MonthCell, 0, offset+daysInMonth)
	for i := 0; i < offset; i++ {
		cells = append(cells, MonthCell{})
	}
	for day := 1; day <= daysInMonth; day++ {
		d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		cells = append(cells, MonthCell{
			Day:    day,
			Key:    dateutil.DayKey(d),
			Status: ClassifyDay(index, d, today, createdAt),
		})
	}
	return cells
}
