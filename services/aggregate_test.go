package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/victorhaugaard/sugar-reset-sub002/models"
)

var aggBase = time.Date(2025, 4, 7, 0, 0, 0, 0, time.Local)

func aggDay(n int) time.Time { return aggBase.AddDate(0, 0, n) }

func foodOn(n, score int, sugarG float64) models.FoodLogEntry {
	return models.FoodLogEntry{Date: aggDay(n), HealthScore: score, AddedSugarG: sugarG}
}

func wellnessOn(n, mood, energy, focus int, sleep float64) models.WellnessLogEntry {
	return models.WellnessLogEntry{Date: aggDay(n), Mood: mood, Energy: energy, Focus: focus, SleepHours: sleep}
}

func TestNutritionMeanSkipsEmptyDays(t *testing.T) {
	foods := []models.FoodLogEntry{
		foodOn(0, 90, 0),
		foodOn(1, 30, 30),
		foodOn(2, 30, 30),
	}
	got := ComputeComposite(foods, nil, aggDay(0), aggDay(7))
	// 4 empty days do not drag the mean down
	assert.InDelta(t, 50.0, got.NutritionScore, 0.01)
	assert.Equal(t, 3, got.DaysWithData)
}

func TestMultipleItemsAveragePerDay(t *testing.T) {
	foods := []models.FoodLogEntry{
		foodOn(0, 80, 0),
		foodOn(0, 100, 0),
		foodOn(1, 40, 0),
	}
	got := ComputeComposite(foods, nil, aggDay(0), aggDay(7))
	// day 0 contributes its mean (90), not both items separately
	assert.InDelta(t, 65.0, got.NutritionScore, 0.01)
}

func TestEntriesOutsideWindowIgnored(t *testing.T) {
	foods := []models.FoodLogEntry{
		foodOn(-1, 10, 0),
		foodOn(3, 60, 0),
		foodOn(7, 10, 0), // end is exclusive
	}
	got := ComputeComposite(foods, nil, aggDay(0), aggDay(7))
	assert.InDelta(t, 60.0, got.NutritionScore, 0.01)
	assert.Equal(t, 1, got.DaysWithData)
}

func TestConsistencySaturatesAtSevenDayRun(t *testing.T) {
	var wellness []models.WellnessLogEntry
	for n := 0; n < 7; n++ {
		wellness = append(wellness, wellnessOn(n, 4, 4, 4, 8))
	}
	got := ComputeComposite(nil, wellness, aggDay(0), aggDay(30))
	// 7 of 30 days logged, but the unbroken week maxes consistency
	assert.InDelta(t, 100.0, got.ConsistencyScore, 0.01)
}

func TestConsistencyFractionWithoutRun(t *testing.T) {
	wellness := []models.WellnessLogEntry{
		wellnessOn(0, 4, 4, 4, 8),
		wellnessOn(2, 4, 4, 4, 8),
		wellnessOn(4, 4, 4, 4, 8),
	}
	got := ComputeComposite(nil, wellness, aggDay(0), aggDay(10))
	assert.InDelta(t, 30.0, got.ConsistencyScore, 0.01)
}

func TestOverallUsesFixedWeights(t *testing.T) {
	foods := []models.FoodLogEntry{foodOn(0, 80, 0)}
	wellness := []models.WellnessLogEntry{wellnessOn(0, 5, 5, 5, 8)}
	got := ComputeComposite(foods, wellness, aggDay(0), aggDay(7))

	want := 0.45*got.NutritionScore + 0.40*got.WellnessScore + 0.15*got.ConsistencyScore
	assert.InDelta(t, want, got.OverallScore, 0.01)
}

func TestEmptyWindowIsZero(t *testing.T) {
	got := ComputeComposite(nil, nil, aggDay(0), aggDay(7))
	assert.Zero(t, got.NutritionScore)
	assert.Zero(t, got.WellnessScore)
	assert.Zero(t, got.ConsistencyScore)
	assert.Zero(t, got.OverallScore)
	assert.Zero(t, got.DaysWithData)
}

func TestAdjacentWindowsPartitionTheData(t *testing.T) {
	var foods []models.FoodLogEntry
	for n := 0; n < 14; n++ {
		foods = append(foods, foodOn(n, 50+n, 0))
	}
	first := ComputeComposite(foods, nil, aggDay(0), aggDay(7))
	second := ComputeComposite(foods, nil, aggDay(7), aggDay(14))
	assert.Equal(t, 7, first.DaysWithData)
	assert.Equal(t, 7, second.DaysWithData)
	assert.InDelta(t, 53.0, first.NutritionScore, 0.01)
	assert.InDelta(t, 60.0, second.NutritionScore, 0.01)
}

func TestInsightSugarEnergyCoOccurrence(t *testing.T) {
	foods := []models.FoodLogEntry{
		foodOn(0, 30, 40),
		foodOn(1, 30, 40),
		foodOn(2, 80, 5),
	}
	wellness := []models.WellnessLogEntry{
		wellnessOn(0, 3, 2, 3, 8),
		wellnessOn(1, 3, 1, 3, 8),
		wellnessOn(2, 4, 4, 4, 8),
	}
	agg := aggregateWindow(foods, wellness, aggDay(0), aggDay(7))
	assert.Equal(t, 2, agg.HighSugarLowEnergyDays)

	insights := BuildInsights(agg, 80, models.StreakState{})
	require.NotEmpty(t, insights)
	assert.Equal(t, "Sugar and energy", insights[0].Title)
	assert.Equal(t, 1, insights[0].Priority)
}

func TestInsightsCappedAndSorted(t *testing.T) {
	agg := windowAggregates{
		AvgAddedSugarG:         35,
		AvgEnergy:              2,
		AvgMood:                2,
		AvgSleepHours:          5.5,
		HighSugarLowEnergyDays: 3,
		DaysWithFood:           5,
		DaysWithWellness:       5,
	}
	insights := BuildInsights(agg, 20, models.StreakState{CurrentStreak: 10})
	require.Len(t, insights, 4)
	for i := 1; i < len(insights); i++ {
		assert.LessOrEqual(t, insights[i-1].Priority, insights[i].Priority)
	}
	assert.Equal(t, 1, insights[0].Priority)
}

func TestInsightsDeterministic(t *testing.T) {
	agg := windowAggregates{AvgAddedSugarG: 30, DaysWithFood: 3}
	a := BuildInsights(agg, 90, models.StreakState{CurrentStreak: 8})
	b := BuildInsights(agg, 90, models.StreakState{CurrentStreak: 8})
	assert.Equal(t, a, b)
}

func TestNoInsightsWhenNothingFires(t *testing.T) {
	agg := windowAggregates{
		AvgAddedSugarG:   10,
		AvgEnergy:        4,
		AvgMood:          4,
		AvgSleepHours:    8,
		DaysWithFood:     5,
		DaysWithWellness: 5,
	}
	insights := BuildInsights(agg, 100, models.StreakState{CurrentStreak: 3})
	assert.Empty(t, insights)
}
