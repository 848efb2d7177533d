package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arnavshah/roster-api-go/pkg/auth"
	"github.com/arnavshah/roster-api-go/pkg/config"
	"github.com/arnavshah/roster-api-go/pkg/database"
	"github.com/arnavshah/roster-api-go/pkg/handlers"
	"github.com/arnavshah/roster-api-go/pkg/metrics"
)

var r *gin.Engine

func init() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	if err := cfg.RequireSecrets(); err != nil {
		panic(err)
	}
	logger := cfg.Logger()

	db, err := database.Open(cfg)
	if err != nil {
		panic(err)
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

	gin.SetMode(gin.ReleaseMode)
	r = gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	h.Register(r)
}

// Handler is the entry point for Vercel Go Runtime
func Handler(w http.ResponseWriter, req *http.Request) {
	r.ServeHTTP(w, req)
}
