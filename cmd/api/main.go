package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-productivity-engine/internal/adapters/cache"
	adapterHTTP "github.com/comitanigiacomo/kanso-productivity-engine/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-productivity-engine/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-productivity-engine/internal/config"
	"github.com/comitanigiacomo/kanso-productivity-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-productivity-engine/internal/core/services"
	"github.com/comitanigiacomo/kanso-productivity-engine/internal/core/workers"
	"github.com/comitanigiacomo/kanso-productivity-engine/internal/logger"
)

const tokenDuration = 24 * time.Hour

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Fatal("critical error", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	startTime := time.Now()
	gin.SetMode(cfg.GinMode)

	log.Info("connecting to database", zap.String("host", cfg.DB.Host), zap.String("name", cfg.DB.Name))

	db, err := sqlx.Connect("pgx", cfg.DB.DSN())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := repository.Migrate(ctx, db); err != nil {
		return err
	}
	log.Info("database connected")

	rdb, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		log.Warn("redis unavailable, running without cache", zap.Error(err))
	} else {
		defer rdb.Close()
		log.Info("redis connected")
	}

	clock := domain.NewClock(cfg.Location)
	router, worker := newApp(cfg, log, db, rdb, clock, startTime)
	worker.Start(ctx)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("kanso productivity engine running", zap.String("port", cfg.Port), zap.String("timezone", cfg.Location.String()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	log.Info("stop signal received, shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}

	log.Info("server stopped gracefully")
	return nil
}

// newApp wires repositories, services and handlers. rdb may be nil.
func newApp(cfg *config.Config, log *zap.Logger, db *sqlx.DB, rdb *redis.Client, clock domain.Clock, startTime time.Time) (*gin.Engine, *workers.StreakWorker) {
	var recordRepo domain.DailyRecordRepository = repository.NewPostgresDailyRecordRepository(db)
	if rdb != nil {
		recordRepo = repository.NewCachedDailyRecordRepository(recordRepo, rdb, log)
	}
	streakRepo := repository.NewPostgresStreakRepository(db)

	worker := workers.NewStreakWorker(recordRepo, streakRepo, clock, log)

	statsService := services.NewStatsService(recordRepo, streakRepo, clock)
	recordService := services.NewRecordService(recordRepo, worker, clock)
	tokenService := services.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, tokenDuration)

	deps := adapterHTTP.RouterDependencies{
		StatsHandler:       adapterHTTP.NewStatsHandler(statsService, log),
		RecordHandler:      adapterHTTP.NewRecordHandler(recordService, log),
		TokenService:       tokenService,
		DB:                 db,
		Logger:             log,
		AllowedOrigins:     cfg.AllowedOrigins,
		TrustedProxies:     cfg.TrustedProxies,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		StartTime:          startTime,
		Redis:              rdb,
	}

	return adapterHTTP.NewRouter(deps), worker
}
