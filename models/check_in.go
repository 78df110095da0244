package models

import (
	"time"

	"gorm.io/gorm"
)

// CheckIn is the daily sugar-free self-report. One row per user per
// calendar day (local midnight); writing the same day again overwrites
// the row in place.
type CheckIn struct {
	gorm.Model
	UserID        uint      `gorm:"uniqueIndex:idx_checkins_user_date;not null"`
	Date          time.Time `gorm:"uniqueIndex:idx_checkins_user_date;not null"` // truncate to YYYY-MM-DD
	SugarFree     bool
	GramsConsumed float64
	Notes         string `gorm:"type:text"`
	Mood          int    // 1..5, 0 when not reported
}
