package services

import (
	"math"
	"sort"
	"time"

	"github.com/victorhaugaard/sugar-reset-sub002/models"
	"github.com/victorhaugaard/sugar-reset-sub002/utils"
)

// Composite weights; they sum to 1.
const (
	nutritionWeight   = 0.45
	wellnessWeight    = 0.40
	consistencyWeight = 0.15

	// logging this many consecutive days maxes out the consistency score
	consistencySaturationDays = 7

	maxInsights = 4
)

// CompositeScore is the windowed health snapshot. Derived, never
// persisted on its own.
type CompositeScore struct {
	WindowStart      string  `json:"window_start"`
	WindowEnd        string  `json:"window_end"` // exclusive
	NutritionScore   float64 `json:"nutrition_score"`
	WellnessScore    float64 `json:"wellness_score"`
	ConsistencyScore float64 `json:"consistency_score"`
	OverallScore     float64 `json:"overall_score"`
	DaysWithData     int     `json:"days_with_data"`
}

// ComputeComposite aggregates food and wellness logs over [start, end).
// Days with no food entries are excluded from the nutrition average
// rather than counted as zero, and likewise for wellness.
func ComputeComposite(foods []models.FoodLogEntry, wellness []models.WellnessLogEntry, start, end time.Time) CompositeScore {
	start = utils.DayStart(start)
	end = utils.DayStart(end)

	out := CompositeScore{
		WindowStart: utils.DateKey(start),
		WindowEnd:   utils.DateKey(end),
	}

	// per-day mean of the stored item scores
	type acc struct {
		sum float64
		n   int
	}
	foodDays := map[string]*acc{}
	for _, f := range foods {
		if !inWindow(f.Date, start, end) {
			continue
		}
		key := utils.DateKey(f.Date)
		a := foodDays[key]
		if a == nil {
			a = &acc{}
			foodDays[key] = a
		}
		a.sum += float64(f.HealthScore)
		a.n++
	}
	if len(foodDays) > 0 {
		var sum float64
		for _, a := range foodDays {
			sum += a.sum / float64(a.n)
		}
		out.NutritionScore = roundScore(sum / float64(len(foodDays)))
	}

	wellDays := map[string]int{}
	for _, w := range wellness {
		if !inWindow(w.Date, start, end) {
			continue
		}
		wellDays[utils.DateKey(w.Date)] = utils.WellnessScore(w.Mood, w.Energy, w.Focus, w.SleepHours)
	}
	if len(wellDays) > 0 {
		var sum float64
		for _, v := range wellDays {
			sum += float64(v)
		}
		out.WellnessScore = roundScore(sum / float64(len(wellDays)))
	}

	// consistency: share of window days with any logged data
	logged := map[string]bool{}
	for key := range foodDays {
		logged[key] = true
	}
	for key := range wellDays {
		logged[key] = true
	}
	out.DaysWithData = len(logged)
	windowDays := utils.DaysBetween(start, end)
	if windowDays > 0 {
		out.ConsistencyScore = roundScore(float64(len(logged)) / float64(windowDays) * 100.0)
	}
	if longestLoggedRun(logged) >= consistencySaturationDays {
		out.ConsistencyScore = 100
	}

	out.OverallScore = roundScore(
		nutritionWeight*out.NutritionScore +
			wellnessWeight*out.WellnessScore +
			consistencyWeight*out.ConsistencyScore)
	return out
}

func inWindow(t, start, end time.Time) bool {
	d := utils.DayStart(t)
	return !d.Before(start) && d.Before(end)
}

func longestLoggedRun(logged map[string]bool) int {
	keys := make([]string, 0, len(logged))
	for k := range logged {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	best, run := 0, 0
	var prev time.Time
	for i, k := range keys {
		day, err := utils.ParseDateKey(k)
		if err != nil {
			continue
		}
		if i > 0 && utils.DaysBetween(prev, day) == 1 {
			run++
		} else {
			run = 1
		}
		if run > best {
			best = run
		}
		prev = day
	}
	return best
}

func roundScore(v float64) float64 {
	return math.Round(v*100) / 100
}

// ---------- Insights ----------

// Insight is one rule match shown on the progress screen.
type Insight struct {
	Title    string `json:"title"`
	Message  string `json:"message"`
	Priority int    `json:"priority"`
}

// windowAggregates are the derived averages the insight rules read.
type windowAggregates struct {
	AvgAddedSugarG         float64 // per day with food logs
	AvgEnergy              float64 // per day with wellness logs
	AvgMood                float64
	AvgSleepHours          float64
	HighSugarLowEnergyDays int // days where both co-occur
	DaysWithFood           int
	DaysWithWellness       int
}

const (
	highDailySugarG = 25.0
	lowRating       = 2.5
	shortSleepHours = 6.5
)

func aggregateWindow(foods []models.FoodLogEntry, wellness []models.WellnessLogEntry, start, end time.Time) windowAggregates {
	start = utils.DayStart(start)
	end = utils.DayStart(end)

	sugarByDay := map[string]float64{}
	for _, f := range foods {
		if !inWindow(f.Date, start, end) {
			continue
		}
		sugarByDay[utils.DateKey(f.Date)] += f.AddedSugarG
	}

	var agg windowAggregates
	agg.DaysWithFood = len(sugarByDay)
	if agg.DaysWithFood > 0 {
		var sum float64
		for _, g := range sugarByDay {
			sum += g
		}
		agg.AvgAddedSugarG = sum / float64(agg.DaysWithFood)
	}

	var energySum, moodSum, sleepSum float64
	for _, w := range wellness {
		if !inWindow(w.Date, start, end) {
			continue
		}
		agg.DaysWithWellness++
		energySum += float64(w.Energy)
		moodSum += float64(w.Mood)
		sleepSum += w.SleepHours
		if w.Energy <= 2 && sugarByDay[utils.DateKey(w.Date)] > highDailySugarG {
			agg.HighSugarLowEnergyDays++
		}
	}
	if agg.DaysWithWellness > 0 {
		n := float64(agg.DaysWithWellness)
		agg.AvgEnergy = energySum / n
		agg.AvgMood = moodSum / n
		agg.AvgSleepHours = sleepSum / n
	}
	return agg
}

// BuildInsights runs the rule table over the window aggregates. Pure
// and stateless: the same inputs always produce the same insights,
// sorted by ascending priority and capped.
func BuildInsights(agg windowAggregates, consistency float64, streak models.StreakState) []Insight {
	var out []Insight

	if agg.HighSugarLowEnergyDays >= 2 {
		out = append(out, Insight{
			Title:    "Sugar and energy",
			Message:  "Your lowest-energy days line up with your highest-sugar days. Cutting afternoon sweets may help.",
			Priority: 1,
		})
	}
	if agg.DaysWithFood > 0 && agg.AvgAddedSugarG > highDailySugarG {
		out = append(out, Insight{
			Title:    "Added sugar is trending high",
			Message:  "You averaged more added sugar per day than the recommended limit. Check drinks and snacks first.",
			Priority: 2,
		})
	}
	if agg.DaysWithWellness > 0 && agg.AvgSleepHours > 0 && agg.AvgSleepHours < shortSleepHours {
		out = append(out, Insight{
			Title:    "Short on sleep",
			Message:  "You averaged under 6.5 hours of sleep. Sleep debt makes sugar cravings stronger.",
			Priority: 3,
		})
	}
	if agg.DaysWithWellness > 0 && agg.AvgMood <= lowRating {
		out = append(out, Insight{
			Title:    "Mood has been low",
			Message:  "Your mood ratings were low this period. Be kind to yourself; progress is not linear.",
			Priority: 4,
		})
	}
	if agg.DaysWithWellness > 0 && agg.AvgEnergy <= lowRating {
		out = append(out, Insight{
			Title:    "Energy dipped",
			Message:  "Energy ran low this period. Steady meals with protein and fiber can smooth the dips.",
			Priority: 5,
		})
	}
	if consistency < 50 {
		out = append(out, Insight{
			Title:    "Log a little more",
			Message:  "Scores get sharper the more days you log. Even a quick check-in counts.",
			Priority: 6,
		})
	}
	if streak.CurrentStreak >= 7 {
		out = append(out, Insight{
			Title:    "Streak going strong",
			Message:  "A full week sugar-free and counting. Nice work!",
			Priority: 7,
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Priority < out[j].Priority })
	if len(out) > maxInsights {
		out = out[:maxInsights]
	}
	return out
}
