package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/victorhaugaard/sugar-reset-sub002/models"
)

func TestFirstCheckInCountsOnceOnColdCache(t *testing.T) {
	rec := checkIn(0, true)

	// snapshot rebuilt from a ledger that already holds today's row,
	// the state a cold cache read produces after the write landed
	stale := RecomputeStreak([]models.CheckIn{rec}, day(0))
	assert.Equal(t, 1, stale.TotalDaysSugarFree)

	_, ok := advanceStreak(stale, nil, rec, day(0))
	assert.False(t, ok, "a snapshot that has seen today must force a rescan")

	// fresh snapshot takes the incremental path and counts the day once
	state, ok := advanceStreak(models.StreakState{}, nil, rec, day(0))
	require.True(t, ok)
	assert.Equal(t, 1, state.CurrentStreak)
	assert.Equal(t, 1, state.TotalDaysSugarFree)
}

func TestAdvanceStreakIncrementalPath(t *testing.T) {
	before := applyAll(checkIn(0, true), checkIn(1, true))
	state, ok := advanceStreak(before, nil, checkIn(2, true), day(2))
	require.True(t, ok)
	assert.Equal(t, 3, state.CurrentStreak)
	assert.Equal(t, 3, state.TotalDaysSugarFree)
}

func TestAdvanceStreakForcesRescanOnEdits(t *testing.T) {
	// overwrite of an existing row
	prev := checkIn(0, false)
	_, ok := advanceStreak(models.StreakState{}, &prev, checkIn(0, true), day(0))
	assert.False(t, ok)

	// past-dated record
	_, ok = advanceStreak(models.StreakState{}, nil, checkIn(0, true), day(3))
	assert.False(t, ok)
}

func TestUpsertCheckInRejectsBadInput(t *testing.T) {
	// validation runs before any storage access
	svc := NewCheckInService(nil, NewMemoryKV(), nil)
	ctx := context.Background()

	_, _, err := svc.UpsertCheckIn(ctx, 1, time.Now().AddDate(0, 0, 2), true, 0, "", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "future")

	for _, mood := range []int{-1, 6} {
		_, _, err := svc.UpsertCheckIn(ctx, 1, time.Now(), true, 0, "", mood)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "mood")
	}
}
