package main

import (
	"context"
	"errors"
	"log"

	"go.uber.org/zap"

	"github.com/pageza/recipe-api/backend/config"
	"github.com/pageza/recipe-api/backend/internal/database"
	"github.com/pageza/recipe-api/backend/internal/logging"
	"github.com/pageza/recipe-api/backend/internal/models"
	"github.com/pageza/recipe-api/backend/internal/service"
	"github.com/pageza/recipe-api/backend/internal/types"
)

const testPassword = "testpassword123"

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.Environment.IsProduction() {
		log.Fatal("refusing to seed test users in production")
	}
	logger := logging.MustNew(cfg.Environment, cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	db, err := database.New(cfg, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	auth := service.NewAuthService(db, cfg.JWTSecret, cfg.TokenTTL, logger)

	// Test users with different account states
	testUsers := []struct {
		name   string
		email  string
		staff  bool
		active bool
	}{
		{name: "John Doe", email: "john.doe@example.com", active: true},
		{name: "Jane Smith", email: "jane.smith@example.com", active: true},
		{name: "Bob Wilson", email: "bob.wilson@example.com", active: false},
		{name: "Admin User", email: "admin@example.com", staff: true, active: true},
	}

	ctx := context.Background()
	for _, u := range testUsers {
		create := auth.CreateUser
		if u.staff {
			create = auth.CreateSuperuser
		}

		user, err := create(ctx, u.email, testPassword, u.name)
		var verr *types.ValidationError
		if errors.As(err, &verr) {
			logger.Info("user already exists, skipping", zap.String("email", u.email))
			continue
		}
		if err != nil {
			logger.Error("failed to create user", zap.String("email", u.email), zap.Error(err))
			continue
		}

		if !u.active {
			if err := db.Model(user).Update("is_active", false).Error; err != nil {
				logger.Error("failed to deactivate user", zap.String("email", u.email), zap.Error(err))
			}
		}
		logger.Info("created test user",
			zap.String("email", u.email),
			zap.Bool("staff", u.staff),
			zap.Bool("active", u.active),
		)
	}

	var active, inactive int64
	db.Model(&models.User{}).Where("is_active = ?", true).Count(&active)
	db.Model(&models.User{}).Where("is_active = ?", false).Count(&inactive)
	logger.Info("test users summary",
		zap.Int64("active", active),
		zap.Int64("inactive", inactive),
		zap.String("password", testPassword),
	)
}
