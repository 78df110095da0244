package utils

// Weights of the four wellness sub-scores; they sum to 100.
const (
	moodPoints   = 25.0
	energyPoints = 25.0
	focusPoints  = 20.0
	sleepPoints  = 30.0
)

// WellnessScore converts one day's mood/energy/focus (each 1-5) and
// sleep hours into a 0-100 score. Out-of-range ratings are clamped to
// the scale instead of rejected; scoring is total over its domain.
func WellnessScore(mood, energy, focus int, sleepHours float64) int {
	score := moodPoints * ratingFraction(mood)
	score += energyPoints * ratingFraction(energy)
	score += focusPoints * ratingFraction(focus)
	score += sleepPoints * sleepCredit(sleepHours)
	return clampScore(score)
}

func ratingFraction(r int) float64 {
	if r < 1 {
		return 0
	}
	if r > 5 {
		r = 5
	}
	return float64(r) / 5.0
}

// sleepCredit is the non-monotonic sleep curve: full credit for 7-9
// hours, ~75% for the 6-10 hour shoulder, then decaying toward 0 at the
// extremes (0 hours, or more than 14).
func sleepCredit(h float64) float64 {
	switch {
	case h <= 0:
		return 0
	case h >= 7 && h <= 9:
		return 1.0
	case h >= 6 && h <= 10:
		return 0.75
	case h < 6:
		return 0.75 * (h / 6.0)
	case h <= 14:
		return 0.75 * ((14.0 - h) / 4.0)
	default:
		return 0
	}
}
