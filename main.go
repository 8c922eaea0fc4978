package main

import (
	"context"
	"net/http"
	"time"

	"campus-cravings-api/config"
	"campus-cravings-api/handlers"
	"campus-cravings-api/middleware"
	"campus-cravings-api/notify"
	"campus-cravings-api/routes"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log := newLogger(cfg.Env)
	defer log.Sync()

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := config.InitDB(cfg.DatabaseURL); err != nil {
		log.Fatal("database init failed", zap.Error(err))
	}
	log.Info("database connected and migrated")

	if cfg.Seed {
		if err := config.SeedDev(); err != nil {
			log.Fatal("seeding failed", zap.Error(err))
		}
		log.Info("development data seeded")
	}

	var notifySvc *notify.Service
	if cfg.FCMProjectID != "" && cfg.FCMCredentialsJSON != "" {
		gateway, err := notify.NewFCMGateway(context.Background(), cfg.FCMProjectID, []byte(cfg.FCMCredentialsJSON))
		if err != nil {
			log.Fatal("FCM gateway init failed", zap.Error(err))
		}
		notifySvc = notify.NewService(config.DB, gateway, log)
	} else {
		log.Warn("FCM credentials not set, push notifications disabled")
	}
	handlers.Setup(notifySvc, log)

	r := gin.New()
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recovery(log))
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "campus-cravings-api"})
	})

	routes.SetupRoutes(r)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Info("server listening", zap.String("port", cfg.Port))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger(env string) *zap.Logger {
	if env == "development" {
		log, err := zap.NewDevelopment()
		if err != nil {
			panic(err)
		}
		return log
	}
	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	return log
}
