package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	httpadp "seatime-backend/internal/adapter/http"
	repo "seatime-backend/internal/adapter/repository/mysql"
	"seatime-backend/internal/config"
	"seatime-backend/internal/infrastructure/cache"
	"seatime-backend/internal/infrastructure/db"
	"seatime-backend/internal/infrastructure/logger"
	ucSignoff "seatime-backend/internal/usecase/signoff"
)

func main() {
	// .env is optional
	envErr := godotenv.Load()

	cfg := config.Load()
	log := logger.New(cfg.LogLevel)
	if envErr != nil {
		log.Debug(".env not loaded; using process environment")
	}
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("invalid config")
	}

	gdb, err := db.OpenGorm(cfg.DBDriver, cfg.DSN(), cfg.Debug(), log)
	if err != nil {
		log.WithError(err).WithField("driver", cfg.DBDriver).Fatal("database connect failed")
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		log.WithError(err).Fatal("database handle")
	}
	defer sqlDB.Close()
	if cfg.DBAutoMigrate {
		if err := db.Migrate(gdb); err != nil {
			log.WithError(err).Fatal("auto-migrate failed")
		}
	}

	var rdb *redis.Client
	if cfg.IdempEnabled {
		rdb, err = cache.OpenRedis(context.Background(), cfg.RedisAddr, cfg.RedisDB, 5*time.Second, log)
		if err != nil {
			log.WithError(err).Fatal("redis connect failed")
		}
		defer rdb.Close()
	}

	testimonials := repo.NewTestimonialRepository(gdb)
	uc := ucSignoff.NewUsecase(testimonials, repo.NewGormUoW(gdb), ucSignoff.WithLogger(log))

	e := httpadp.NewRouter(httpadp.RouterConfig{
		Log:            log,
		CORSOrigins:    httpadp.ParseOrigins(cfg.CORSOrigins),
		RateLimit:      cfg.SignoffRateLimit,
		RateBurst:      cfg.SignoffRateBurst,
		Redis:          rdb,
		IdempotencyTTL: cfg.IdempotencyTTL(),
	}, httpadp.NewHandler(sqlDB), httpadp.NewSignoffHandler(uc))

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.WithField("addr", srv.Addr).Info("listening")
		if err := e.StartServer(srv); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info("shutdown signal received, draining")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.WithError(err).Error("forced shutdown")
		return
	}
	log.Info("server stopped")
}
