package services

import (
	"sort"
	"time"

	"github.com/victorhaugaard/sugar-reset-sub002/models"
	"github.com/victorhaugaard/sugar-reset-sub002/utils"
)

// ApplyCheckIn advances the streak state machine for one check-in.
// prev is the record previously stored for the same date, nil if none.
// Valid only for check-ins on or after the last check-in date; edits of
// earlier dates must go through RecomputeStreak instead, because they
// can invalidate continuity for every later date.
func ApplyCheckIn(state models.StreakState, prev *models.CheckIn, rec models.CheckIn) models.StreakState {
	day := utils.DayStart(rec.Date)

	// re-affirming a day already marked sugar-free is idempotent
	if prev != nil && prev.SugarFree && rec.SugarFree {
		return state
	}

	if !rec.SugarFree {
		// the break ends the run; the best run is already captured
		state.CurrentStreak = 0
		state.LastCheckIn = &day
		return state
	}

	// first time this date is marked sugar-free (a same-day flip from
	// had-sugar counts as a new streak day)
	gap := 0
	if state.LastCheckIn != nil {
		gap = utils.DaysBetween(*state.LastCheckIn, day)
	}
	switch {
	case state.CurrentStreak == 0 || gap == 1:
		state.CurrentStreak++
	case gap > 1:
		state.CurrentStreak = 1 // the gap broke the old run; today starts fresh
	}
	if state.CurrentStreak == 1 {
		state.StartDate = utils.DateKey(day)
	}
	state.TotalDaysSugarFree++
	if state.CurrentStreak > state.LongestStreak {
		state.LongestStreak = state.CurrentStreak
	}
	state.LastCheckIn = &day
	return state
}

// advanceStreak applies the incremental transition when it is safe: a
// brand-new record for today that the snapshot has not seen yet.
// before may have been rebuilt from a ledger that already contains rec
// (a cold cache read after the row landed); the LastCheckIn comparison
// catches that, and ok=false tells the caller to rescan instead.
func advanceStreak(before models.StreakState, prev *models.CheckIn, rec models.CheckIn, today time.Time) (models.StreakState, bool) {
	day := utils.DayStart(rec.Date)
	if prev != nil || !day.Equal(utils.DayStart(today)) {
		return models.StreakState{}, false
	}
	if before.LastCheckIn != nil && !before.LastCheckIn.Before(day) {
		return models.StreakState{}, false
	}
	return ApplyCheckIn(before, prev, rec), true
}

// RecomputeStreak derives the streak state from a full forward scan of
// the ledger. This is the only safe way to reconcile after a
// retroactive edit.
func RecomputeStreak(records []models.CheckIn, today time.Time) models.StreakState {
	state := models.StreakState{StartDate: utils.DateKey(today)}
	if len(records) == 0 {
		return state
	}

	sorted := make([]models.CheckIn, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	var (
		current      int
		runStart     time.Time
		prevFreeDay  time.Time
		havePrevFree bool
	)
	for _, rec := range sorted {
		day := utils.DayStart(rec.Date)
		state.LastCheckIn = &day

		if !rec.SugarFree {
			current = 0
			continue
		}

		state.TotalDaysSugarFree++
		if current > 0 && havePrevFree && utils.DaysBetween(prevFreeDay, day) == 1 {
			current++
		} else {
			current = 1
			runStart = day
		}
		prevFreeDay = day
		havePrevFree = true
		if current > state.LongestStreak {
			state.LongestStreak = current
		}
	}

	state.CurrentStreak = current
	if current > 0 {
		state.StartDate = utils.DateKey(runStart)
	}
	return state
}
