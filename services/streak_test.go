package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/victorhaugaard/sugar-reset-sub002/models"
	"github.com/victorhaugaard/sugar-reset-sub002/utils"
)

var streakBase = time.Date(2025, 3, 1, 0, 0, 0, 0, time.Local)

func day(n int) time.Time { return streakBase.AddDate(0, 0, n) }

func checkIn(n int, sugarFree bool) models.CheckIn {
	return models.CheckIn{Date: day(n), SugarFree: sugarFree}
}

func applyAll(recs ...models.CheckIn) models.StreakState {
	var state models.StreakState
	for _, r := range recs {
		state = ApplyCheckIn(state, nil, r)
	}
	return state
}

func TestConsecutiveDaysGrowStreak(t *testing.T) {
	state := applyAll(
		checkIn(0, true),
		checkIn(1, true),
		checkIn(2, true),
		checkIn(3, true),
		checkIn(4, true),
	)
	assert.Equal(t, 5, state.CurrentStreak)
	assert.Equal(t, 5, state.LongestStreak)
	assert.Equal(t, 5, state.TotalDaysSugarFree)
	assert.Equal(t, utils.DateKey(day(0)), state.StartDate)
}

func TestHadSugarResetsCurrentNotLongest(t *testing.T) {
	state := applyAll(
		checkIn(0, true),
		checkIn(1, true),
		checkIn(2, true),
		checkIn(3, true),
		checkIn(4, true),
		checkIn(5, false),
	)
	assert.Equal(t, 0, state.CurrentStreak)
	assert.Equal(t, 5, state.LongestStreak)
	assert.Equal(t, 5, state.TotalDaysSugarFree)
}

func TestNewStreakStartsAfterBreak(t *testing.T) {
	state := applyAll(
		checkIn(0, true),
		checkIn(1, true),
		checkIn(2, false),
		checkIn(3, true),
	)
	assert.Equal(t, 1, state.CurrentStreak)
	assert.Equal(t, 2, state.LongestStreak)
	assert.Equal(t, utils.DateKey(day(3)), state.StartDate)
}

func TestMissedDaysBreakTheRun(t *testing.T) {
	// day 2 and 3 never checked in
	state := applyAll(
		checkIn(0, true),
		checkIn(1, true),
		checkIn(4, true),
	)
	assert.Equal(t, 1, state.CurrentStreak)
	assert.Equal(t, 2, state.LongestStreak)
	assert.Equal(t, 3, state.TotalDaysSugarFree)
}

func TestReaffirmSameDayIsIdempotent(t *testing.T) {
	state := applyAll(checkIn(0, true), checkIn(1, true))
	prev := checkIn(1, true)
	again := ApplyCheckIn(state, &prev, checkIn(1, true))
	assert.Equal(t, state, again)
}

func TestSameDayFlipToSugarFreeCountsAsNewDay(t *testing.T) {
	state := applyAll(checkIn(0, false))
	assert.Equal(t, 0, state.CurrentStreak)

	prev := checkIn(0, false)
	state = ApplyCheckIn(state, &prev, checkIn(0, true))
	assert.Equal(t, 1, state.CurrentStreak)
	assert.Equal(t, 1, state.TotalDaysSugarFree)
	assert.Equal(t, utils.DateKey(day(0)), state.StartDate)
}

func TestLongestNeverBelowCurrent(t *testing.T) {
	recs := []models.CheckIn{
		checkIn(0, true), checkIn(1, false), checkIn(2, true),
		checkIn(3, true), checkIn(4, true), checkIn(6, true),
		checkIn(7, false), checkIn(8, true),
	}
	var state models.StreakState
	for _, r := range recs {
		state = ApplyCheckIn(state, nil, r)
		assert.GreaterOrEqual(t, state.LongestStreak, state.CurrentStreak)
	}
}

func TestStreakGrowsAcrossDSTChange(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	old := time.Local
	time.Local = loc
	defer func() { time.Local = old }()

	// Mar 9 2025 is a 23-hour day; Mar 10 must still read as gap 1
	a := models.CheckIn{Date: time.Date(2025, 3, 9, 0, 0, 0, 0, loc), SugarFree: true}
	b := models.CheckIn{Date: time.Date(2025, 3, 10, 0, 0, 0, 0, loc), SugarFree: true}
	state := ApplyCheckIn(models.StreakState{}, nil, a)
	state = ApplyCheckIn(state, nil, b)
	assert.Equal(t, 2, state.CurrentStreak)
}

func TestRecomputeAfterRetroactiveEdit(t *testing.T) {
	ledger := []models.CheckIn{
		checkIn(0, true),
		checkIn(1, true),
		checkIn(2, true),
		checkIn(3, true),
		checkIn(4, true),
	}
	// day 2 is later corrected to had-sugar
	ledger[2].SugarFree = false

	state := RecomputeStreak(ledger, day(4))
	assert.Equal(t, 2, state.CurrentStreak)
	assert.Equal(t, 2, state.LongestStreak)
	assert.Equal(t, 4, state.TotalDaysSugarFree)
	assert.Equal(t, utils.DateKey(day(3)), state.StartDate)
}

func TestRecomputeMatchesIncrementalApply(t *testing.T) {
	ledger := []models.CheckIn{
		checkIn(0, true),
		checkIn(1, true),
		checkIn(2, false),
		checkIn(4, true),
	}
	incremental := applyAll(ledger...)
	recomputed := RecomputeStreak(ledger, day(4))
	assert.Equal(t, incremental.CurrentStreak, recomputed.CurrentStreak)
	assert.Equal(t, incremental.LongestStreak, recomputed.LongestStreak)
	assert.Equal(t, incremental.TotalDaysSugarFree, recomputed.TotalDaysSugarFree)
	assert.Equal(t, incremental.StartDate, recomputed.StartDate)
}

func TestRecomputeUnsortedInput(t *testing.T) {
	ledger := []models.CheckIn{
		checkIn(3, true),
		checkIn(0, true),
		checkIn(2, true),
		checkIn(1, true),
	}
	state := RecomputeStreak(ledger, day(3))
	assert.Equal(t, 4, state.CurrentStreak)
	assert.Equal(t, utils.DateKey(day(0)), state.StartDate)
}

func TestRecomputeEmptyLedger(t *testing.T) {
	state := RecomputeStreak(nil, day(0))
	assert.Equal(t, 0, state.CurrentStreak)
	assert.Equal(t, 0, state.LongestStreak)
	assert.Equal(t, 0, state.TotalDaysSugarFree)
	assert.Nil(t, state.LastCheckIn)
	assert.Equal(t, utils.DateKey(day(0)), state.StartDate)
}
