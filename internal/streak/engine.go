// Package streak derives habit metrics from check-in entries. All functions
// are pure: "today" is always caller-supplied and storage is never touched.
package streak

import (
	"sort"
	"time"

	"github.com/dstasiak/habitflow/internal/dateutil"
)

type EntryStatus string

const (
	StatusDone    EntryStatus = "done"
	StatusSkipped EntryStatus = "skipped"
)

// Entry is one recorded outcome for one calendar day.
type Entry struct {
	Day    time.Time
	Status EntryStatus
}

type Summary struct {
	Total   int `json:"total"`
	Current int `json:"current"`
	Best    int `json:"best"`
}

// Compute derives total done-days, the current streak and the best streak from
// a habit's entries. Input order does not matter; duplicate days are collapsed
// before any comparison.
func Compute(entries []Entry, today time.Time) Summary {
	days := doneDays(entries)
	if len(days) == 0 {
		return Summary{}
	}

	summary := Summary{Total: len(days)}

	// Best streak: walk adjacent unique days ascending. A gap of exactly one
	// day extends the run, anything else resets it.
	run := 1
	best := 1
	for i := 1; i < len(days); i++ {
		if dateutil.DaysBetween(days[i], days[i-1]) == 1 {
			run++
		} else {
			run = 1
		}
		if run > best {
			best = run
		}
	}
	summary.Best = best

	summary.Current = currentStreak(days, entries, today)
	return summary
}

// currentStreak counts backwards from the most recent done-day. The streak is
// alive if that day is today, or yesterday with no explicit skip recorded for
// today; a missing entry for today is a grace period, a skip is a break.
func currentStreak(days []time.Time, entries []Entry, today time.Time) int {
	last := days[len(days)-1]
	todayStart := dateutil.DayStart(today)
	yesterday := dateutil.Yesterday(today)

	alive := last.Equal(todayStart) ||
		(last.Equal(yesterday) && !skippedOn(entries, todayStart))
	if !alive {
		return 0
	}

	current := 1
	for i := len(days) - 1; i > 0; i-- {
		if dateutil.DaysBetween(days[i], days[i-1]) != 1 {
			break
		}
		current++
	}
	return current
}

// doneDays returns the unique day-starts of all done entries, ascending.
func doneDays(entries []Entry) []time.Time {
	uniq := make(map[string]time.Time, len(entries))
	for _, e := range entries {
		if e.Status != StatusDone {
			continue
		}
		uniq[dateutil.DayKey(e.Day)] = dateutil.DayStart(e.Day)
	}

	days := make([]time.Time, 0, len(uniq))
	for _, d := range uniq {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

func skippedOn(entries []Entry, day time.Time) bool {
	for _, e := range entries {
		if e.Status == StatusSkipped && dateutil.SameDay(e.Day, day) {
			return true
		}
	}
	return false
}
