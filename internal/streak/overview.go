package streak

import (
	"math"
	"time"

	"github.com/dstasiak/habitflow/internal/dateutil"
)

// OverviewMetrics summarizes all of a user's habits for one day.
type OverviewMetrics struct {
	TotalHabits    int `json:"total_habits"`
	CompletedToday int `json:"completed_today"`
	ActiveStreaks  int `json:"active_streaks"`
	Consistency    int `json:"consistency"`
}

// ComputeOverview derives the dashboard numbers: how many habits were done
// today, how many carry a streak of at least two days into today, and the
// done-today share as a rounded percentage.
func ComputeOverview(habits [][]Entry, today time.Time) OverviewMetrics {
	metrics := OverviewMetrics{TotalHabits: len(habits)}
	if len(habits) == 0 {
		return metrics
	}

	todayStart := dateutil.DayStart(today)
	for _, entries := range habits {
		if !doneOn(entries, todayStart) {
			continue
		}
		metrics.CompletedToday++
		if Compute(entries, today).Current >= 2 {
			metrics.ActiveStreaks++
		}
	}

	metrics.Consistency = int(math.Round(float64(metrics.CompletedToday) / float64(metrics.TotalHabits) * 100))
	return metrics
}

func doneOn(entries []Entry, day time.Time) bool {
	for _, e := range entries {
		if e.Status == StatusDone && dateutil.SameDay(e.Day, day) {
			return true
		}
	}
	return false
}
