package models

import (
	"time"

	"gorm.io/gorm"
)

// FoodLogEntry stores the nutrient snapshot of one logged item, already
// scaled to the portion that was eaten. HealthScore is computed once at
// log time and kept as written, so history stays stable even if the
// scoring formula changes later.
type FoodLogEntry struct {
	gorm.Model
	ClientID       string    `gorm:"type:varchar(64);uniqueIndex"` // client-generated, makes offline replays idempotent
	UserID         uint      `gorm:"index;not null"`
	Date           time.Time `gorm:"index;not null"`
	Label          string
	Calories       float64
	ProteinG       float64
	CarbsG         float64
	AddedSugarG    float64
	NaturalSugarG  float64
	FiberG         float64
	SaturatedFatG  float64
	SodiumMg       float64
	PortionPercent float64
	HealthScore    int // 0..100
}
