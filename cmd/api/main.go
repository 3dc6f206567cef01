package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"alxtravel/internal/cache"
	"alxtravel/internal/config"
	"alxtravel/internal/database"
	"alxtravel/internal/modules/listing"
	"alxtravel/internal/modules/notification"
	"alxtravel/internal/pkg/jwt"
	"alxtravel/internal/pkg/logger"
	"alxtravel/internal/server"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Config{}).Fatal("config load failed", "err", err)
	}

	log := logger.New(logger.Config{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: "alxtravel-api",
	})
	log.SetDefault()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("database connection failed", "err", err)
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		log.Fatal("migration failed", "err", err)
	}

	var listingCache listing.Cache = cache.NoopListingCache{}
	if cfg.RedisAddr != "" {
		rdb := cache.NewRedisClient(cache.RedisConfig{
			Address:  cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer cache.Close(rdb)

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := cache.Ping(pingCtx, rdb); err != nil {
			log.Warn("redis unavailable, listing cache disabled", "addr", cfg.RedisAddr, "err", err)
		} else {
			listingCache = cache.NewRedisListingCache(rdb, cfg.ListingCacheTTL)
			log.Info("listing cache enabled", "addr", cfg.RedisAddr, "ttl", cfg.ListingCacheTTL)
		}
		cancel()
	}

	hub := notification.NewHub()
	defer hub.Close()

	router := server.NewRouter(server.Deps{
		DB:           db,
		JWT:          jwt.New(cfg.JWTSecret, cfg.JWTTTL),
		RefreshTTL:   cfg.RefreshTokenTTL,
		Logger:       log.Logger,
		ListingCache: listingCache,
		Hub:          hub,
		CORSOrigins:  cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("http server listening", "addr", cfg.HTTPAddr, "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http server failed", "err", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "err", err)
	}
}
