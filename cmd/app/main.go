package main

import (
	"mentorbook/config"
	"mentorbook/di"
	"mentorbook/helper"
	"mentorbook/shared/logger"

	"github.com/rs/zerolog/log"
)

// @title MentorBook API
// @version 1.0
// @description Availability and booking for peer mentors and AI personas.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
