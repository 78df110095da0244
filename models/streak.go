package models

import "time"

// StreakState is derived from the check-in ledger and owned by the
// streak calculator; nothing else writes it. It is cached in the KV
// store and mirrored to the remote profile store, never hand-edited.
// LongestStreak >= CurrentStreak holds at all times.
type StreakState struct {
	CurrentStreak      int        `json:"current_streak"`
	LongestStreak      int        `json:"longest_streak"`
	LastCheckIn        *time.Time `json:"last_check_in"` // ISO-8601 instant on the wire
	StartDate          string     `json:"start_date"`    // YYYY-MM-DD
	TotalDaysSugarFree int        `json:"total_days_sugar_free"`
}
