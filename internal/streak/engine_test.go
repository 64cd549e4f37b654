package streak_test

import (
	"testing"
	"time"

	"github.com/dstasiak/habitflow/internal/streak"
	"github.com/stretchr/testify/assert"
)

func day(d int) time.Time {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, d-1)
}

func done(days ...int) []streak.Entry {
	entries := make([]streak.Entry, 0, len(days))
	for _, d := range days {
		entries = append(entries, streak.Entry{Day: day(d), Status: streak.StatusDone})
	}
	return entries
}

func TestComputeEmpty(t *testing.T) {
	assert.Equal(t, streak.Summary{}, streak.Compute(nil, day(10)))
	assert.Equal(t, streak.Summary{}, streak.Compute([]streak.Entry{}, day(10)))
}

func TestComputeSkipsOnlyEntries(t *testing.T) {
	entries := []streak.Entry{
		{Day: day(1), Status: streak.StatusSkipped},
		{Day: day(2), Status: streak.StatusSkipped},
	}
	assert.Equal(t, streak.Summary{}, streak.Compute(entries, day(2)))
}

func TestComputeSingleDoneToday(t *testing.T) {
	got := streak.Compute(done(5), day(5))
	assert.Equal(t, streak.Summary{Total: 1, Current: 1, Best: 1}, got)
}

func TestComputeGapRule(t *testing.T) {
	// Days 1-3 are consecutive, then a two-day gap. Best must be 3, not 5.
	got := streak.Compute(done(1, 2, 3, 5, 6), day(6))
	assert.Equal(t, 5, got.Total)
	assert.Equal(t, 3, got.Best)
	assert.Equal(t, 2, got.Current)
}

func TestComputeOrderIndependent(t *testing.T) {
	shuffled := done(6, 1, 5, 3, 2)
	assert.Equal(t, streak.Compute(done(1, 2, 3, 5, 6), day(6)), streak.Compute(shuffled, day(6)))
}

func TestComputeDedupesDays(t *testing.T) {
	entries := append(done(1, 2, 3), streak.Entry{
		// Same calendar day as day 3, different time of day.
		Day:    day(3).Add(18 * time.Hour),
		Status: streak.StatusDone,
	})
	got := streak.Compute(entries, day(3))
	assert.Equal(t, streak.Summary{Total: 3, Current: 3, Best: 3}, got)
}

func TestCurrentStreakGracePeriod(t *testing.T) {
	// Done yesterday, nothing today: the streak survives until the day ends.
	got := streak.Compute(done(4), day(5))
	assert.Equal(t, 1, got.Current)

	got = streak.Compute(done(2, 3, 4), day(5))
	assert.Equal(t, 3, got.Current)
}

func TestCurrentStreakSkipTodayKills(t *testing.T) {
	entries := append(done(3, 4), streak.Entry{Day: day(5), Status: streak.StatusSkipped})
	got := streak.Compute(entries, day(5))
	assert.Equal(t, 0, got.Current)
	assert.GreaterOrEqual(t, got.Best, 2)
}

func TestCurrentStreakBrokenByOlderLastDone(t *testing.T) {
	got := streak.Compute(done(1, 2, 3), day(6))
	assert.Equal(t, 0, got.Current)
	assert.Equal(t, 3, got.Best)
}

func TestComputeSkipBreaksChain(t *testing.T) {
	// Done Jan 1-2, skipped Jan 3, done Jan 5 (today). The skip breaks the
	// chain; Jan 5 starts fresh.
	entries := append(done(1, 2, 5), streak.Entry{Day: day(3), Status: streak.StatusSkipped})
	got := streak.Compute(entries, day(5))
	assert.Equal(t, streak.Summary{Total: 3, Current: 1, Best: 2}, got)
}

func TestComputeOverview(t *testing.T) {
	today := day(5)

	t.Run("NoHabits", func(t *testing.T) {
		assert.Equal(t, streak.OverviewMetrics{}, streak.ComputeOverview(nil, today))
	})

	t.Run("Mixed", func(t *testing.T) {
		habits := [][]streak.Entry{
			done(4, 5), // done today, 2-day streak
			done(5),    // done today, fresh streak
			done(3, 4), // not done today
			{},         // never touched
		}
		got := streak.ComputeOverview(habits, today)
		assert.Equal(t, streak.OverviewMetrics{
			TotalHabits:    4,
			CompletedToday: 2,
			ActiveStreaks:  1,
			Consistency:    50,
		}, got)
	})
}
