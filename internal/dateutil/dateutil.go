// Package dateutil normalizes arbitrary timestamps to calendar days.
//
// Every day boundary in the system is computed in UTC. Clients may live in any
// timezone, but check-ins are recorded and streaks derived against UTC days so
// that the ledger and the derived metrics can never disagree about what
// "today" means.
package dateutil

import (
	"math"
	"time"
)

const DayKeyLayout = "2006-01-02"

// DayStart truncates t to midnight UTC of its calendar day.
func DayStart(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// DayKey returns the canonical YYYY-MM-DD key for the day t falls on.
func DayKey(t time.Time) string {
	return t.UTC().Format(DayKeyLayout)
}

// DaysBetween returns the absolute number of whole days between two instants.
// Rounding absorbs sub-day drift such as DST offsets in non-UTC inputs.
func DaysBetween(a, b time.Time) int {
	diff := a.Sub(b).Hours() / 24
	return int(math.Round(math.Abs(diff)))
}

// SameDay reports whether two instants fall on the same UTC calendar day.
func SameDay(a, b time.Time) bool {
	return DayKey(a) == DayKey(b)
}

// ParseDay accepts a bare day key or an RFC 3339 timestamp and returns the
// start of the day it names.
func ParseDay(s string) (time.Time, error) {
	if t, err := time.Parse(DayKeyLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return DayStart(t), nil
}

// Yesterday returns the start of the day before t's day.
func Yesterday(t time.Time) time.Time {
	return DayStart(t).AddDate(0, 0, -1)
}
