// Command api starts the BookVault HTTP server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/bookvault/book-api/internal/api"
	"github.com/bookvault/book-api/internal/core/service"
	"github.com/bookvault/book-api/internal/infrastructure/config"
	mongodb "github.com/bookvault/book-api/internal/infrastructure/db/mongo"
	redisdb "github.com/bookvault/book-api/internal/infrastructure/db/redis"
	"github.com/bookvault/book-api/internal/infrastructure/queue"
	"github.com/bookvault/book-api/internal/token"
	"github.com/bookvault/book-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fallback := logger.New("error", false)
		fallback.Fatal().Err(err).Msg("failed to load configuration")
	}

	isDev := cfg.Env == "development"
	log := logger.New(cfg.LogLevel, isDev)

	// --- Persistence ---
	client, db, err := mongodb.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	rdb, err := redisdb.Connect(ctx, cfg.Redis.Addr, cfg.Redis.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	userRepo := mongodb.NewUserRepository(db)
	bookRepo := mongodb.NewBookRepository(db)
	activityRepo := mongodb.NewActivityRepository(db)
	for name, ensure := range map[string]func(context.Context) error{
		"users":    userRepo.EnsureIndexes,
		"books":    bookRepo.EnsureIndexes,
		"activity": activityRepo.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			log.Fatal().Err(err).Str("collection", name).Msg("index creation failed")
		}
	}

	if isDev {
		if err := mongodb.Seed(ctx, db, log); err != nil {
			log.Warn().Err(err).Msg("development seeding failed")
		}
	}

	// --- Activity pipeline ---
	activityService := service.NewActivityService(activityRepo, redisdb.NewDedupChecker(rdb), log)
	dispatcher := queue.NewDispatcher(0, activityService, log)
	dispatcher.Start(ctx)

	// --- HTTP server ---
	codec := token.NewCodec([]byte(cfg.JWTSecret), cfg.TokenTTL)
	e := api.NewRouter(db, rdb, codec, dispatcher, activityService, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}

	// The server no longer accepts requests, so no new entries can arrive;
	// drain whatever the in-flight requests enqueued.
	dispatcher.Stop()
}
