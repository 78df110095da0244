package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/victorhaugaard/sugar-reset-sub002/services"
	"github.com/victorhaugaard/sugar-reset-sub002/utils"
)

type CheckInController struct {
	Svc *services.CheckInService
}

func NewCheckInController(svc *services.CheckInService) *CheckInController {
	return &CheckInController{Svc: svc}
}

type checkInInput struct {
	Date          string  `json:"date"` // YYYY-MM-DD, defaults to today
	SugarFree     *bool   `json:"sugar_free" binding:"required"`
	GramsConsumed float64 `json:"grams_consumed"`
	Notes         string  `json:"notes"`
	Mood          int     `json:"mood"`
}

// POST /checkins
func (h *CheckInController) Upsert(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var body checkInInput
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	day := time.Now()
	if body.Date != "" {
		parsed, err := utils.ParseDateKey(body.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
			return
		}
		day = parsed
	}

	rec, streak, err := h.Svc.UpsertCheckIn(
		c.Request.Context(), userID, day,
		*body.SugarFree, body.GramsConsumed, body.Notes, body.Mood,
	)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"check_in": rec, "streak": streak})
}

// GET /checkins?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *CheckInController) List(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	from, to, err := rangeFromQuery(c, 30)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	records, err := h.Svc.Range(c.Request.Context(), userID, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, records)
}

// GET /streak
func (h *CheckInController) GetStreak(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	streak, err := h.Svc.GetStreak(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, streak)
}

// POST /streak/reset
func (h *CheckInController) ResetStreak(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	streak, err := h.Svc.ResetStreak(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, streak)
}

// POST /sync/session
func (h *CheckInController) StartSession(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	streak, err := h.Svc.StartSession(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"streak": streak})
}

// rangeFromQuery parses from/to date params, defaulting to the trailing
// defaultDays ending today (to is exclusive).
func rangeFromQuery(c *gin.Context, defaultDays int) (time.Time, time.Time, error) {
	now := time.Now()
	to := utils.DayStart(now).AddDate(0, 0, 1)
	from := to.AddDate(0, 0, -defaultDays)

	if v := c.Query("from"); v != "" {
		parsed, err := utils.ParseDateKey(v)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		from = parsed
	}
	if v := c.Query("to"); v != "" {
		parsed, err := utils.ParseDateKey(v)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		to = parsed.AddDate(0, 0, 1) // inclusive in the API
	}
	return from, to, nil
}
