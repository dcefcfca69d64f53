package main

import (
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"sntsa.mx/becas/internal/bootstrap"
	"sntsa.mx/becas/internal/config"
	"sntsa.mx/becas/internal/server"
	"sntsa.mx/becas/pkg/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	if cfg.AppEnv == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	db := database.Connect()
	if err := bootstrap.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
	if err := bootstrap.SeedCatalogos(db); err != nil {
		log.Fatal().Err(err).Msg("failed to seed reference data")
	}
	if err := bootstrap.SeedStaffUser(db); err != nil {
		log.Fatal().Err(err).Msg("failed to seed staff user")
	}

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid REDIS_URL")
	}
	redisClient := redis.NewClient(redisOpts)

	srv := server.NewServer(db, redisClient, cfg)

	log.Info().Str("port", cfg.Port).Msg("starting server")
	if err := srv.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited with error")
	}
}
