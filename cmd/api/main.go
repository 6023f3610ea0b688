package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/medilinkhq/telehealth-api/internal/config"
	dbpkg "github.com/medilinkhq/telehealth-api/internal/db"
	"github.com/medilinkhq/telehealth-api/internal/logger"
	"github.com/medilinkhq/telehealth-api/internal/metrics"
	"github.com/medilinkhq/telehealth-api/internal/middleware"
	"github.com/medilinkhq/telehealth-api/internal/routes"
)

func main() {

	cfg := config.Load()

	zlog, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer zlog.Sync()

	db := dbpkg.NewDB(cfg)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())
	r.Use(metrics.Middleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, redisClient, cfg, zlog)

	zlog.Info("server running", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		zlog.Fatal("failed to start server", zap.Error(err))
	}
}
