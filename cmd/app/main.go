package main

import (
	"nest/config"
	"nest/di"
	"nest/helper"
	"nest/shared/logger"

	"github.com/rs/zerolog/log"
)

// @title Nest API
// @version 1.0
// @description Portfolio page and property viewing appointments.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
func main() {
	cfg := config.Get()

	logger.InitLogger(cfg)

	logger.SetLogLevel(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
