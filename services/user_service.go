package services

import (
	"context"
	"errors"

	"github.com/victorhaugaard/sugar-reset-sub002/config"
	"github.com/victorhaugaard/sugar-reset-sub002/models"
)

func GetUserProfile(userID uint) (map[string]interface{}, error) {
	var user models.User
	result := config.DB.Where("id = ? AND disabled = ?", userID, false).First(&user)
	if result.Error != nil {
		return nil, errors.New("user not found or disabled")
	}

	return map[string]interface{}{
		"id":        user.ID,
		"email":     user.Email,
		"full_name": user.FullName,
	}, nil
}

func UpdateUserProfile(userID uint, fullName string) error {
	var user models.User
	result := config.DB.Where("id = ? AND disabled = ?", userID, false).First(&user)
	if result.Error != nil {
		return errors.New("user not found or disabled")
	}

	if fullName != "" {
		user.FullName = fullName
	}
	return config.DB.Save(&user).Error
}

// ClearUserData is the explicit user-initiated bulk clear: it removes
// every check-in, food log and wellness log plus the cached streak
// snapshot. Nothing else ever deletes these rows.
func ClearUserData(ctx context.Context, userID uint, kv KV) error {
	// Unscoped: soft-deleted rows would keep the (user,date) and
	// client_id unique keys occupied and block re-logging those days
	db := config.DB.WithContext(ctx).Unscoped()
	if err := db.Where("user_id = ?", userID).Delete(&models.CheckIn{}).Error; err != nil {
		return err
	}
	if err := db.Where("user_id = ?", userID).Delete(&models.FoodLogEntry{}).Error; err != nil {
		return err
	}
	if err := db.Where("user_id = ?", userID).Delete(&models.WellnessLogEntry{}).Error; err != nil {
		return err
	}
	if err := db.Where("user_id = ?", userID).Delete(&models.Alert{}).Error; err != nil {
		return err
	}
	return kv.Remove(ctx, streakKey(userID))
}
