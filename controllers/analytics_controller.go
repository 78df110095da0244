package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/victorhaugaard/sugar-reset-sub002/services"
)

type AnalyticsController struct {
	Svc      *services.AnalyticsService
	CheckIns *services.CheckInService
}

func NewAnalyticsController(svc *services.AnalyticsService, checkIns *services.CheckInService) *AnalyticsController {
	return &AnalyticsController{Svc: svc, CheckIns: checkIns}
}

// GET /analytics/summary?window=7|30|365
func (h *AnalyticsController) GetSummary(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	window, err := strconv.Atoi(c.DefaultQuery("window", "7"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid window"})
		return
	}

	streak, err := h.CheckIns.GetStreak(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out, err := h.Svc.Summary(c.Request.Context(), userID, window, time.Now(), streak)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}
