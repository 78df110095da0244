package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/victorhaugaard/sugar-reset-sub002/models"
)

type alertDeps struct {
	db *gorm.DB
	rt *RealtimeHub
}

var _alert alertDeps

func InitAlertDeps(db *gorm.DB, rt *RealtimeHub) {
	_alert = alertDeps{db: db, rt: rt}
}

// EmitAlert persists the alert and fans it out to connected sessions.
// Safe to call anywhere, including before initialization.
func EmitAlert(userID uint, typ, message string) {
	if _alert.db == nil {
		return
	}
	a := &models.Alert{UserID: userID, Type: typ, Message: message, CreatedAt: time.Now()}
	_ = _alert.db.Create(a).Error

	if _alert.rt != nil {
		_alert.rt.Broadcast(userID, map[string]any{
			"kind":  "alert.created",
			"alert": a,
		})
	}
}

// ListAlerts returns the user's alerts, newest first. Limits outside
// 1..100 fall back to 50.
func ListAlerts(ctx context.Context, userID uint, limit int) ([]models.Alert, error) {
	if _alert.db == nil {
		return nil, nil
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var alerts []models.Alert
	err := _alert.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&alerts).Error
	return alerts, err
}

// EmitStreakUpdate pushes the fresh streak snapshot to connected
// sessions so open screens update without polling.
func EmitStreakUpdate(userID uint, state models.StreakState) {
	if _alert.rt == nil {
		return
	}
	_alert.rt.Broadcast(userID, map[string]any{
		"kind":   "streak.updated",
		"streak": state,
	})
}
