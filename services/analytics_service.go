package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/victorhaugaard/sugar-reset-sub002/models"
	"github.com/victorhaugaard/sugar-reset-sub002/utils"
)

// Selectable aggregation windows, in days.
var windowLengths = map[int]bool{7: true, 30: true, 365: true}

type AnalyticsService struct{ db *gorm.DB }

func NewAnalyticsService(db *gorm.DB) *AnalyticsService { return &AnalyticsService{db: db} }

type AnalyticsSummary struct {
	WindowDays int            `json:"window_days"`
	Current    CompositeScore `json:"current"`
	Previous   CompositeScore `json:"previous"`

	NutritionDelta float64 `json:"nutrition_delta"`
	WellnessDelta  float64 `json:"wellness_delta"`
	OverallDelta   float64 `json:"overall_delta"`

	Insights []Insight `json:"insights"`
}

// Summary computes the composite score over the trailing window ending
// at today, re-runs the same computation over the immediately preceding
// window of equal length, and derives the insight list.
func (s *AnalyticsService) Summary(
	ctx context.Context, userID uint, window int, today time.Time, streak models.StreakState,
) (*AnalyticsSummary, error) {

	if !windowLengths[window] {
		return nil, errors.New("window must be one of 7, 30 or 365")
	}

	end := utils.DayStart(today).AddDate(0, 0, 1) // window includes today
	start := end.AddDate(0, 0, -window)
	prevStart := start.AddDate(0, 0, -window)

	var foods []models.FoodLogEntry
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date < ?", userID, prevStart, end).
		Order("date ASC").
		Find(&foods).Error; err != nil {
		return nil, err
	}

	var wellness []models.WellnessLogEntry
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date < ?", userID, prevStart, end).
		Order("date ASC").
		Find(&wellness).Error; err != nil {
		return nil, err
	}

	cur := ComputeComposite(foods, wellness, start, end)
	prev := ComputeComposite(foods, wellness, prevStart, start)
	agg := aggregateWindow(foods, wellness, start, end)

	return &AnalyticsSummary{
		WindowDays:     window,
		Current:        cur,
		Previous:       prev,
		NutritionDelta: roundScore(cur.NutritionScore - prev.NutritionScore),
		WellnessDelta:  roundScore(cur.WellnessScore - prev.WellnessScore),
		OverallDelta:   roundScore(cur.OverallScore - prev.OverallScore),
		Insights:       BuildInsights(agg, cur.ConsistencyScore, streak),
	}, nil
}
