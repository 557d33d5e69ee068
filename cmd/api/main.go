package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/anri-dev/reservation-api/internal/config"
	dbpkg "github.com/anri-dev/reservation-api/internal/db"
	"github.com/anri-dev/reservation-api/internal/middleware"
	"github.com/anri-dev/reservation-api/internal/routes"
)

func main() {

	cfg := config.Load()

	logger := newLogger(cfg.Env)
	defer func() { _ = logger.Sync() }()

	db := dbpkg.NewDB(cfg)
	rdb := dbpkg.NewRedis(cfg)
	if rdb == nil {
		logger.Info("redis indisponível, cache de respostas desligado")
	}

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, rdb, cfg, logger)

	logger.Info("server running", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}

func newLogger(env string) *zap.Logger {
	var zcfg zap.Config

	if env == "production" {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.OutputPaths = []string{"stdout"}

	logger, err := zcfg.Build()
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}

	return logger
}
