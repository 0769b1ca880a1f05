package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/pageza/recipe-api/backend/config"
	"github.com/pageza/recipe-api/backend/internal/database"
	"github.com/pageza/recipe-api/backend/internal/logging"
	"github.com/pageza/recipe-api/backend/internal/service"
)

func main() {
	email := flag.String("email", os.Getenv("SUPERUSER_EMAIL"), "account email")
	password := flag.String("password", os.Getenv("SUPERUSER_PASSWORD"), "account password")
	name := flag.String("name", "Admin", "display name")
	flag.Parse()

	if *email == "" || *password == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger := logging.MustNew(cfg.Environment, cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	db, err := database.New(cfg, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	auth := service.NewAuthService(db, cfg.JWTSecret, cfg.TokenTTL, logger)
	user, err := auth.CreateSuperuser(context.Background(), *email, *password, *name)
	if err != nil {
		logger.Fatal("failed to create superuser", zap.Error(err))
	}
	fmt.Printf("Superuser created: %s (id %d)\n", user.Email, user.ID)
}
