// Command server runs the NDA vault HTTP API: connects to MongoDB and
// Redis, starts the revocation reaper, and serves until SIGINT/SIGTERM.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ndavault/nda-vault/internal/api"
	"github.com/ndavault/nda-vault/internal/infrastructure/config"
	mongoadapter "github.com/ndavault/nda-vault/internal/infrastructure/db/mongo"
	redisadapter "github.com/ndavault/nda-vault/internal/infrastructure/db/redis"
	"github.com/ndavault/nda-vault/pkg/logger"
)

func main() {
	bootLog := logger.Init(logger.Options{Level: os.Getenv("LOG_LEVEL"), Pretty: os.Getenv("ENV") != "production"})
	cfg := config.Load(bootLog)
	log := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongoadapter.Connect(ctx, mongoadapter.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("error disconnecting from mongodb")
		}
	}()

	rdb, err := redisadapter.Connect(ctx, redisadapter.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("error closing redis connection")
		}
	}()

	if err := ensureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure mongo indexes")
	}

	e := api.NewRouter(ctx, cfg, db, rdb, log)

	go func() {
		if err := e.Start(cfg.BindAddress); err != nil {
			log.Info().Err(err).Msg("server stopped serving new connections")
		}
	}()
	log.Info().Str("addr", cfg.BindAddress).Msg("server started")

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during graceful shutdown")
	}
}

// ensureIndexes creates every collection's indexes up front so the first
// request against a fresh database is never the one paying for it.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	repos := []interface{ EnsureIndexes(context.Context) error }{
		mongoadapter.NewUserRepository(db),
		mongoadapter.NewProcessRepository(db),
		mongoadapter.NewShareRepository(db),
		mongoadapter.NewAccessRepository(db),
	}
	for _, r := range repos {
		if err := r.EnsureIndexes(ctx); err != nil {
			return err
		}
	}
	return nil
}
