package utils

import "math"

// NutrientVector is one logged item's nutrients, already scaled to the
// actual portion eaten. Absent fields stay zero and contribute nothing;
// scoring never fails.
type NutrientVector struct {
	Calories      float64
	ProteinG      float64
	CarbsG        float64
	AddedSugarG   float64
	NaturalSugarG float64
	FiberG        float64
	SaturatedFatG float64
	SodiumMg      float64
}

// Daily reference limits (Dietary Guidelines for Americans, 2020-2025,
// at a 2000 kcal reference diet).
const (
	addedSugarMaxPenaltyG = 25.0   // half the daily <10%-kcal limit; penalty saturates here
	satFatDailyLimitG     = 22.0   // <10% kcal/day at 2000 kcal
	sodiumDailyLimitMg    = 2300.0 // CDRR, adults
	fiberBonusCapG        = 7.0    // ~25% of the 28 g/day reference
)

const (
	nutritionBase       = 70.0
	proteinBonusMax     = 15.0
	fiberBonusMax       = 10.0
	addedSugarPenalty   = 30.0
	emptyCaloriePenalty = 15.0
	naturalSugarPenalty = 8.0
	satFatPenaltyMax    = 15.0
	sodiumPenaltyMax    = 10.0
	highCaloriePenalty  = 10.0

	// grams of protein per 100 kcal at which the protein bonus maxes out
	proteinDensityCap = 10.0
	highCalorieCutoff = 800.0
)

// NutritionScore converts one nutrient vector into a 0-100 item score.
// Additive and deterministic: base 70, bonuses for protein and fiber
// density, penalties for added sugar, saturated fat, sodium and very
// high calories, clamped to [0,100].
func NutritionScore(n NutrientVector) int {
	kcal := n.Calories
	if kcal <= 0 {
		// reconstruct quietly from macros, same as the label readers do
		kcal = energyFromMacros(n.CarbsG, n.ProteinG, totalFatEstimate(n), 0)
	}

	score := nutritionBase

	// protein bonus, linear in density up to the cap
	if n.ProteinG > 0 {
		density := n.ProteinG
		if kcal > 0 {
			density = n.ProteinG / (kcal / 100.0)
		}
		score += proteinBonusMax * math.Min(1, density/proteinDensityCap)
	}

	// fiber bonus
	if n.FiberG > 0 {
		score += fiberBonusMax * math.Min(1, n.FiberG/fiberBonusCapG)
	}

	// added sugar: the dominant penalty, saturating above the threshold
	if n.AddedSugarG > 0 {
		score -= addedSugarPenalty * math.Min(1, n.AddedSugarG/addedSugarMaxPenaltyG)

		// empty-calorie screen: added sugar supplying half or more of the
		// item's calories (soda territory) costs a further flat penalty
		if kcal > 0 && n.AddedSugarG*4.0 >= 0.5*kcal {
			score -= emptyCaloriePenalty
		}
	}

	// natural sugar draws at most a small penalty, and only when it
	// exceeds ~40% of the item's caloric contribution
	if n.NaturalSugarG > 0 && kcal > 0 {
		share := (n.NaturalSugarG * 4.0) / kcal
		if share > 0.40 {
			score -= naturalSugarPenalty * math.Min(1, (share-0.40)/0.40)
		}
	}

	// saturated fat and sodium, scaled to daily-limit fractions
	if n.SaturatedFatG > 0 {
		score -= satFatPenaltyMax * math.Min(1, n.SaturatedFatG/satFatDailyLimitG)
	}
	if n.SodiumMg > 0 {
		score -= sodiumPenaltyMax * math.Min(1, n.SodiumMg/sodiumDailyLimitMg)
	}

	// flat penalty for very heavy single entries
	if n.Calories > highCalorieCutoff {
		score -= highCaloriePenalty
	}

	return clampScore(score)
}

func energyFromMacros(carbG, protG, fatG, alcoholG float64) float64 {
	if carbG <= 0 && protG <= 0 && fatG <= 0 && alcoholG <= 0 {
		return 0
	}
	return 4.0*carbG + 4.0*protG + 9.0*fatG + 7.0*alcoholG
}

// totalFatEstimate uses saturated fat as a floor when total fat is not
// part of the vector.
func totalFatEstimate(n NutrientVector) float64 {
	return n.SaturatedFatG
}

func clampScore(v float64) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return int(math.Round(v))
}
