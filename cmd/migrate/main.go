package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/nvoss/linkstash/internal/config"
	"github.com/nvoss/linkstash/internal/repository/postgres"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	_ = godotenv.Load()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	sourceURL := "file://migrations"
	if len(os.Args) > 1 {
		sourceURL = os.Args[1]
	}

	if err := postgres.RunMigrations(cfg.Database.DSN(), sourceURL); err != nil {
		log.Fatal().Err(err).Msg("Migration failed")
	}
}
