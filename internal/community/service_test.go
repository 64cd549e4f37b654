package community

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCommunityRepo struct {
	activeUsers int64
	newHabits   int64
	rows        []EntryRow

	activeSince time.Time
	habitsSince time.Time
	rowsSince   time.Time
}

func (r *fakeCommunityRepo) CountActiveUsersSince(day time.Time) (int64, error) {
	r.activeSince = day
	return r.activeUsers, nil
}

func (r *fakeCommunityRepo) CountHabitsCreatedSince(t time.Time) (int64, error) {
	r.habitsSince = t
	return r.newHabits, nil
}

func (r *fakeCommunityRepo) DoneEntriesSince(day time.Time) ([]EntryRow, error) {
	r.rowsSince = day
	return r.rows, nil
}

func TestStatsWindow(t *testing.T) {
	repo := &fakeCommunityRepo{activeUsers: 4, newHabits: 2}
	now := time.Date(2024, 6, 10, 15, 30, 0, 0, time.UTC)
	svc := NewServiceWithClock(repo, func() time.Time { return now })

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, stats.ActiveUsers)
	assert.Equal(t, 2, stats.NewHabits)
	assert.Empty(t, stats.TopHabits)

	// Active users count entries from the start of today; the habit and
	// top-habit windows reach back seven whole days.
	assert.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), repo.activeSince)
	assert.Equal(t, time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), repo.habitsSince)
	assert.Equal(t, repo.habitsSince, repo.rowsSince)
}

func TestTopHabitsDistinctUsers(t *testing.T) {
	ala := uuid.New()
	ola := uuid.New()
	jan := uuid.New()

	rows := []EntryRow{
		// Ala logs Yoga twice; she must count once.
		{UserID: ala, HabitName: "Yoga"},
		{UserID: ala, HabitName: "Yoga"},
		{UserID: ola, HabitName: " Yoga "},
		{UserID: ala, HabitName: "Reading"},
		{UserID: ola, HabitName: "Reading"},
		{UserID: jan, HabitName: "Reading"},
		{UserID: jan, HabitName: "Running"},
	}

	top := topHabits(rows, 3)
	require.Len(t, top, 3)
	assert.Equal(t, TopHabit{Name: "Reading", Count: 3}, top[0])
	assert.Equal(t, TopHabit{Name: "Yoga", Count: 2}, top[1])
	assert.Equal(t, TopHabit{Name: "Running", Count: 1}, top[2])
}

func TestTopHabitsTieOrderAndLimit(t *testing.T) {
	u1, u2 := uuid.New(), uuid.New()

	rows := []EntryRow{
		{UserID: u1, HabitName: "Alpha"},
		{UserID: u1, HabitName: "Beta"},
		{UserID: u1, HabitName: "Gamma"},
		{UserID: u2, HabitName: "Delta"},
	}

	top := topHabits(rows, 3)
	require.Len(t, top, 3)
	// All tied at one user each: first encountered wins.
	assert.Equal(t, "Alpha", top[0].Name)
	assert.Equal(t, "Beta", top[1].Name)
	assert.Equal(t, "Gamma", top[2].Name)
}

func TestTopHabitsEmpty(t *testing.T) {
	assert.Empty(t, topHabits(nil, 3))
}
