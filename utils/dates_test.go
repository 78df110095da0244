package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayStartTruncatesToLocalMidnight(t *testing.T) {
	late := time.Date(2025, 3, 1, 23, 45, 12, 0, time.Local)
	got := DayStart(late)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.Local), got)
}

func TestDateKeyRoundTrip(t *testing.T) {
	day, err := ParseDateKey("2025-03-01")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-01", DateKey(day))
	assert.Equal(t, day, DayStart(day))
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2025, 3, 1, 8, 0, 0, 0, time.Local)
	b := time.Date(2025, 3, 4, 22, 0, 0, 0, time.Local)
	assert.Equal(t, 3, DaysBetween(a, b))
	assert.Equal(t, -3, DaysBetween(b, a))
	assert.Equal(t, 0, DaysBetween(a, a))
}

func TestDaysBetweenAcrossDSTChanges(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	old := time.Local
	time.Local = loc
	defer func() { time.Local = old }()

	// spring forward: Mar 9 2025 is a 23-hour day
	a := time.Date(2025, 3, 9, 0, 0, 0, 0, loc)
	b := time.Date(2025, 3, 10, 0, 0, 0, 0, loc)
	assert.Equal(t, 1, DaysBetween(a, b))

	// fall back: Nov 2 2025 is a 25-hour day
	c := time.Date(2025, 11, 2, 0, 0, 0, 0, loc)
	d := time.Date(2025, 11, 3, 0, 0, 0, 0, loc)
	assert.Equal(t, 1, DaysBetween(c, d))
}
