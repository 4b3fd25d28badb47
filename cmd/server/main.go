package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	mongodriver "go.mongodb.org/mongo-driver/mongo"

	_ "github.com/teamokr/okr-system/docs"
	"github.com/teamokr/okr-system/internal/api"
	"github.com/teamokr/okr-system/internal/infrastructure/db/mongo"
	"github.com/teamokr/okr-system/internal/infrastructure/db/redis"
	"github.com/teamokr/okr-system/internal/pkg/config"
	"github.com/teamokr/okr-system/pkg/logger"
)

// @title        OKR System API
// @version      1.0
// @description  Objectives and key results tracking with role-scoped access.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	// 1. Load configuration
	cfg := config.Load()

	// 2. Initialise structured logger
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})
	log.Info().Str("env", cfg.Env).Msg("starting okr-system server")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. Connect to MongoDB
	client, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect failed")
		}
	}()

	// 4. Connect to Redis
	rdb, err := redis.Connect(ctx, redis.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Warn().Err(err).Msg("redis close failed")
		}
	}()

	// 5. Ensure indexes
	if err := ensureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	// 6. Seed reference and demo data when requested
	if cfg.Seed {
		if err := mongo.Seed(ctx, db, cfg.SeedPassword); err != nil {
			log.Fatal().Err(err).Msg("seeding failed")
		}
		log.Info().Msg("seed data ensured")
	}

	// 7. Build the router and start serving
	e := api.NewRouter(db, rdb, cfg.JWTSecret, logger.With("http"))

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Info().Err(err).Msg("http server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Msg("server listening")

	// 8. Wait for shutdown signal, then drain
	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	log.Info().Msg("server stopped")
}

func ensureIndexes(ctx context.Context, db *mongodriver.Database) error {
	if err := mongo.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := mongo.NewPeriodRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := mongo.NewObjectiveRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	return mongo.NewKeyResultRepository(db).EnsureIndexes(ctx)
}
