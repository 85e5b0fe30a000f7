package main

import (
	"context"
	"log"
	"time"

	"github.com/the3dsandwich/csci3100-grp31/config"
	"github.com/the3dsandwich/csci3100-grp31/internal/bootstrap"
	"github.com/the3dsandwich/csci3100-grp31/internal/reconcile"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[error] config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()

	fb, err := bootstrap.OpenFirebase(ctx, &cfg.Firebase)
	if err != nil {
		log.Fatalf("[error] firebase: %v", err)
	}
	defer fb.Close()

	rdb, err := bootstrap.OpenRedis(ctx, &cfg.Redis)
	if err != nil {
		log.Fatalf("[error] redis: %v", err)
	}
	defer rdb.Close()

	router, services := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:    "social-graph-api",
		Version:        cfg.App.Version,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Firebase:       fb,
		Redis:          rdb,
	})

	if cfg.Reconcile.Enabled {
		grace := time.Duration(cfg.Reconcile.GraceSeconds) * time.Second
		svc := reconcile.NewService(services.EventsDB, services.Chats, grace)
		scheduler := reconcile.NewScheduler(svc, cfg.Reconcile.Spec)
		if err := scheduler.Start(); err != nil {
			log.Fatalf("[error] reconcile scheduler: %v", err)
		}
		defer scheduler.Stop()
	}

	log.Printf("[info] listening on :%s (env %s)", cfg.Server.Port, cfg.App.Environment)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("[error] server: %v", err)
	}
}
