// Creates a superuser account (staff + superuser flags) from the command
// line. Administrative elevation is deliberately not an HTTP endpoint.
package main

import (
	"context"
	"flag"

	"github.com/recipebook/backend/config"
	"github.com/recipebook/backend/internal/database"
	"github.com/recipebook/backend/internal/service"
	"github.com/recipebook/backend/pkg/logger"
)

func main() {
	email := flag.String("email", "", "email address for the superuser")
	password := flag.String("password", "", "password for the superuser")
	flag.Parse()

	log := logger.Get()
	if *email == "" || *password == "" {
		log.Fatal().Msg("both -email and -password are required")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	ctx := context.Background()
	if err := database.WaitForDB(ctx, cfg); err != nil {
		log.Fatal().Err(err).Msg("database readiness check failed")
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	user, err := service.NewUserService(db).CreateSuperuser(ctx, *email, *password)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create superuser")
	}

	log.Info().Str("email", user.Email).Msg("superuser created")
}
