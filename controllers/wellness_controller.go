package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/victorhaugaard/sugar-reset-sub002/services"
	"github.com/victorhaugaard/sugar-reset-sub002/utils"
)

type WellnessController struct {
	Svc *services.WellnessService
}

func NewWellnessController(svc *services.WellnessService) *WellnessController {
	return &WellnessController{Svc: svc}
}

type wellnessInput struct {
	Date       string  `json:"date"` // YYYY-MM-DD, defaults to today
	Mood       int     `json:"mood" binding:"required"`
	Energy     int     `json:"energy" binding:"required"`
	Focus      int     `json:"focus" binding:"required"`
	SleepHours float64 `json:"sleep_hours"`
}

// PUT /wellness
func (h *WellnessController) Upsert(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var body wellnessInput
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

	entry, score, err := h.Svc.UpsertWellness(
		c.Request.Context(), userID, day,
		body.Mood, body.Energy, body.Focus, body.SleepHours,
	)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"entry": entry, "score": score})
}

// GET /wellness?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *WellnessController) List(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	from, to, err := rangeFromQuery(c, 7)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entries, err := h.Svc.ListRange(c.Request.Context(), userID, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, entries)
}
