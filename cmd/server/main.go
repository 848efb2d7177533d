package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/arnavshah/roster-api-go/pkg/auth"
	"github.com/arnavshah/roster-api-go/pkg/config"
	"github.com/arnavshah/roster-api-go/pkg/database"
	"github.com/arnavshah/roster-api-go/pkg/handlers"
	"github.com/arnavshah/roster-api-go/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.RequireSecrets(); err != nil {
		log.Fatalf("refusing to start: %v", err)
	}
	logger := cfg.Logger()
	gin.SetMode(cfg.GinMode)

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("could not open database: %v", err)
	}

	authn := auth.New(cfg)
	if err := authn.EnsureAdminExists(db, cfg.AdminUsername, cfg.AdminPassword, logger); err != nil {
		logger.Error("could not create admin user", "err", err)
	}

	h := &handlers.Handler{
		DB:               db,
		Auth:             authn,
		Metrics:          metrics.New("roster"),
		Logger:           logger,
		DefaultRateLimit: cfg.DefaultRateLimit,
		Seed:             cfg.Seed,
	}

	r := gin.Default()
	h.Register(r)

	logger.Info("server starting", "port", cfg.Port, "version", handlers.Version)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("could not run server: %v", err)
	}
}
