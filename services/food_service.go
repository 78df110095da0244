package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/victorhaugaard/sugar-reset-sub002/models"
	"github.com/victorhaugaard/sugar-reset-sub002/utils"
)

type FoodService struct{ db *gorm.DB }

func NewFoodService(db *gorm.DB) *FoodService { return &FoodService{db: db} }

// FoodLogInput carries one item's nutrients, already scaled to the
// portion eaten. Missing fields default to zero at construction and
// simply contribute nothing to the score.
type FoodLogInput struct {
	ClientID       string  `json:"client_id"`
	Date           string  `json:"date"` // YYYY-MM-DD, defaults to today
	Label          string  `json:"label"`
	Calories       float64 `json:"calories"`
	ProteinG       float64 `json:"protein_g"`
	CarbsG         float64 `json:"carbs_g"`
	AddedSugarG    float64 `json:"added_sugar_g"`
	NaturalSugarG  float64 `json:"natural_sugar_g"`
	FiberG         float64 `json:"fiber_g"`
	SaturatedFatG  float64 `json:"saturated_fat_g"`
	SodiumMg       float64 `json:"sodium_mg"`
	PortionPercent float64 `json:"portion_percent"`
}

// LogFood stores the entry with its health score computed once, right
// now. The stored score is never recomputed on read, so history stays
// stable across formula changes. Replaying the same client_id upserts
// instead of duplicating.
func (s *FoodService) LogFood(ctx context.Context, userID uint, in FoodLogInput) (*models.FoodLogEntry, error) {
	day := utils.DayStart(time.Now())
	if in.Date != "" {
		parsed, err := utils.ParseDateKey(in.Date)
		if err != nil {
			return nil, errors.New("invalid date, expected YYYY-MM-DD")
		}
		day = utils.DayStart(parsed)
	}
	if in.PortionPercent <= 0 {
		in.PortionPercent = 100
	}
	clientID := in.ClientID
	if clientID == "" {
		clientID = uuid.NewString()
	}

	score := utils.NutritionScore(utils.NutrientVector{
		Calories:      in.Calories,
		ProteinG:      in.ProteinG,
		CarbsG:        in.CarbsG,
		AddedSugarG:   in.AddedSugarG,
		NaturalSugarG: in.NaturalSugarG,
		FiberG:        in.FiberG,
		SaturatedFatG: in.SaturatedFatG,
		SodiumMg:      in.SodiumMg,
	})

	entry := models.FoodLogEntry{
		ClientID:       clientID,
		UserID:         userID,
		Date:           day,
		Label:          in.Label,
		Calories:       in.Calories,
		ProteinG:       in.ProteinG,
		CarbsG:         in.CarbsG,
		AddedSugarG:    in.AddedSugarG,
		NaturalSugarG:  in.NaturalSugarG,
		FiberG:         in.FiberG,
		SaturatedFatG:  in.SaturatedFatG,
		SodiumMg:       in.SodiumMg,
		PortionPercent: in.PortionPercent,
		HealthScore:    score,
	}
	if err := s.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Assign(entry).
		FirstOrCreate(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *FoodService) ListRange(ctx context.Context, userID uint, from, to time.Time) ([]models.FoodLogEntry, error) {
	var entries []models.FoodLogEntry
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date < ?", userID, utils.DayStart(from), utils.DayStart(to)).
		Order("date ASC").
		Find(&entries).Error
	return entries, err
}
