package dateutil_test

import (
	"testing"
	"time"

	"github.com/dstasiak/habitflow/internal/dateutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayStartIgnoresTimeOfDay(t *testing.T) {
	morning := time.Date(2024, 3, 10, 0, 0, 1, 0, time.UTC)
	night := time.Date(2024, 3, 10, 23, 59, 59, 0, time.UTC)

	assert.Equal(t, dateutil.DayStart(morning), dateutil.DayStart(night))
	assert.Equal(t, dateutil.DayKey(morning), dateutil.DayKey(night))
	assert.Equal(t, "2024-03-10", dateutil.DayKey(night))
}

func TestDayStartConvertsToUTC(t *testing.T) {
	warsaw := time.FixedZone("CET", 1*60*60)
	// 00:30 local on Jan 2 is still Jan 1 in UTC.
	local := time.Date(2024, 1, 2, 0, 30, 0, 0, warsaw)

	assert.Equal(t, "2024-01-01", dateutil.DayKey(local))
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), dateutil.DayStart(local))
}

func TestDaysBetween(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
	}

	assert.Equal(t, 0, dateutil.DaysBetween(day(5), day(5)))
	assert.Equal(t, 1, dateutil.DaysBetween(day(5), day(6)))
	assert.Equal(t, 4, dateutil.DaysBetween(day(9), day(5)))
}

func TestDaysBetweenAbsorbsDSTDrift(t *testing.T) {
	// A 23h or 25h "day" still counts as one whole day.
	a := time.Date(2024, 3, 30, 0, 0, 0, 0, time.UTC)
	b := a.Add(23 * time.Hour)
	c := a.Add(25 * time.Hour)

	assert.Equal(t, 1, dateutil.DaysBetween(a, b))
	assert.Equal(t, 1, dateutil.DaysBetween(a, c))
}

func TestParseDay(t *testing.T) {
	t.Run("DayKey", func(t *testing.T) {
		d, err := dateutil.ParseDay("2024-05-07")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 5, 7, 0, 0, 0, 0, time.UTC), d)
	})

	t.Run("RFC3339", func(t *testing.T) {
		d, err := dateutil.ParseDay("2024-05-07T18:45:00+02:00")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 5, 7, 0, 0, 0, 0, time.UTC), d)
	})

	t.Run("Invalid", func(t *testing.T) {
		_, err := dateutil.ParseDay("07/05/2024")
		require.Error(t, err)
	})
}

func TestYesterday(t *testing.T) {
	now := time.Date(2024, 3, 1, 13, 22, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), dateutil.Yesterday(now))
}
