package main

import (
	"context"
	"log"

	"github.com/victorhaugaard/sugar-reset-sub002/config"
	"github.com/victorhaugaard/sugar-reset-sub002/routes"
	"github.com/victorhaugaard/sugar-reset-sub002/services"
)

func main() {
	config.InitDB()

	var kv services.KV
	if rdb := config.InitRedis(); rdb != nil {
		kv = services.NewRedisKV(rdb)
	} else {
		kv = services.NewMemoryKV()
	}

	var remote services.RemoteProfileStore
	if store, err := services.NewS3ProfileStore(context.Background()); err != nil {
		log.Printf("remote profile store disabled: %v", err)
	} else {
		remote = store
	}
	syncSvc := services.NewSyncService(remote, services.DefaultSyncPolicy())

	hub := services.NewRealtimeHub()
	services.InitAlertDeps(config.DB, hub)

	r := routes.SetupRouter(routes.Deps{
		CheckIns:  services.NewCheckInService(config.DB, kv, syncSvc),
		Foods:     services.NewFoodService(config.DB),
		Wellness:  services.NewWellnessService(config.DB),
		Analytics: services.NewAnalyticsService(config.DB),
		Hub:       hub,
		KV:        kv,
	})
	r.Run(":8080")
}
