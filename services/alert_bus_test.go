package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/victorhaugaard/sugar-reset-sub002/models"
)

func TestListAlertsQueryShape(t *testing.T) {
	db := dryRunDB(t)
	var captured string
	require.NoError(t, db.Callback().Query().After("gorm:query").Register("capture_sql", func(tx *gorm.DB) {
		captured = tx.Statement.SQL.String()
	}))

	old := _alert
	InitAlertDeps(db, nil)
	defer func() { _alert = old }()

	alerts, err := ListAlerts(context.Background(), 7, 0)
	require.NoError(t, err)
	assert.Empty(t, alerts)
	assert.Contains(t, captured, "user_id")
	assert.Contains(t, captured, "ORDER BY")
	assert.Contains(t, captured, "LIMIT")
}

func TestListAlertsBeforeInit(t *testing.T) {
	old := _alert
	_alert = alertDeps{}
	defer func() { _alert = old }()

	alerts, err := ListAlerts(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Nil(t, alerts)
}

func TestEmitSafeBeforeInit(t *testing.T) {
	old := _alert
	_alert = alertDeps{}
	defer func() { _alert = old }()

	EmitAlert(1, "info", "hello")
	EmitStreakUpdate(1, models.StreakState{})
}
