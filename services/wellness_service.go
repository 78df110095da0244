package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/victorhaugaard/sugar-reset-sub002/models"
	"github.com/victorhaugaard/sugar-reset-sub002/utils"
)

type WellnessService struct{ db *gorm.DB }

func NewWellnessService(db *gorm.DB) *WellnessService { return &WellnessService{db: db} }

// UpsertWellness records one day's mood/energy/focus/sleep. At most one
// row per day; a later write for the same day replaces the earlier one.
// Returns the entry and its score (computed for display, not stored).
func (s *WellnessService) UpsertWellness(
	ctx context.Context, userID uint, day time.Time,
	mood, energy, focus int, sleepHours float64,
) (*models.WellnessLogEntry, int, error) {

	if mood < 1 || mood > 5 || energy < 1 || energy > 5 || focus < 1 || focus > 5 {
		return nil, 0, errors.New("mood, energy and focus must be between 1 and 5")
	}
	if sleepHours < 0 {
		return nil, 0, errors.New("sleep hours cannot be negative")
	}

	day = utils.DayStart(day)
	entry := models.WellnessLogEntry{
		UserID:     userID,
		Date:       day,
		Mood:       mood,
		Energy:     energy,
		Focus:      focus,
		SleepHours: sleepHours,
	}
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, day).
		Assign(entry).
		FirstOrCreate(&entry).Error; err != nil {
		return nil, 0, err
	}
	return &entry, utils.WellnessScore(mood, energy, focus, sleepHours), nil
}

func (s *WellnessService) ListRange(ctx context.Context, userID uint, from, to time.Time) ([]models.WellnessLogEntry, error) {
	var entries []models.WellnessLogEntry
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date < ?", userID, utils.DayStart(from), utils.DayStart(to)).
		Order("date ASC").
		Find(&entries).Error
	return entries, err
}
