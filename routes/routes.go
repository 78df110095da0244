package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/victorhaugaard/sugar-reset-sub002/controllers"
	"github.com/victorhaugaard/sugar-reset-sub002/middlewares"
	"github.com/victorhaugaard/sugar-reset-sub002/services"
)

type Deps struct {
	CheckIns  *services.CheckInService
	Foods     *services.FoodService
	Wellness  *services.WellnessService
	Analytics *services.AnalyticsService
	Hub       *services.RealtimeHub
	KV        services.KV
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.Default()

	checkInCtl := controllers.NewCheckInController(d.CheckIns)
	foodCtl := controllers.NewFoodController(d.Foods)
	wellnessCtl := controllers.NewWellnessController(d.Wellness)
	analyticsCtl := controllers.NewAnalyticsController(d.Analytics, d.CheckIns)
	userCtl := controllers.NewUserController(d.KV)
	realtimeCtl := controllers.NewRealtimeController(d.Hub)

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
	}

	// Protected routes
	api := r.Group("/")
	api.Use(middlewares.AuthMiddleware())
	{
		api.POST("/checkins", checkInCtl.Upsert)
		api.GET("/checkins", checkInCtl.List)
		api.GET("/streak", checkInCtl.GetStreak)
		api.POST("/streak/reset", checkInCtl.ResetStreak)

		api.POST("/foods", foodCtl.Log)
		api.GET("/foods", foodCtl.List)

		api.PUT("/wellness", wellnessCtl.Upsert)
		api.GET("/wellness", wellnessCtl.List)

		api.GET("/analytics/summary", analyticsCtl.GetSummary)
		api.GET("/alerts", controllers.ListAlerts)

		api.POST("/sync/session", checkInCtl.StartSession)
		api.GET("/ws/updates", realtimeCtl.UpdatesWS)

		api.GET("/user/profile", userCtl.GetProfile)
		api.PUT("/user/profile", userCtl.UpdateProfile)
		api.POST("/user/clear", userCtl.ClearData)
	}

	return r
}
