package models

import (
	"time"

	"gorm.io/gorm"
)

// WellnessLogEntry is the daily mood/energy/focus/sleep self-report.
// At most one per user per day; later writes replace earlier ones.
type WellnessLogEntry struct {
	gorm.Model
	UserID     uint      `gorm:"uniqueIndex:idx_wellness_user_date;not null"`
	Date       time.Time `gorm:"uniqueIndex:idx_wellness_user_date;not null"`
	Mood       int       // 1..5
	Energy     int       // 1..5
	Focus      int       // 1..5
	SleepHours float64
}
