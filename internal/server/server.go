package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/recipe-api/backend/config"
	"github.com/pageza/recipe-api/backend/internal/api"
	"github.com/pageza/recipe-api/backend/internal/middleware"
	"github.com/pageza/recipe-api/backend/internal/router"
	"github.com/pageza/recipe-api/backend/internal/service"
	"github.com/pageza/recipe-api/backend/internal/storage"
)

const shutdownTimeout = 5 * time.Second

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	log    *zap.Logger
}

// New wires the services and routes. redisClient may be nil, which disables rate limiting.
func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, store storage.FileStore, log *zap.Logger) *Server {
	authService := service.NewAuthService(db, cfg.JWTSecret, cfg.TokenTTL, log.Named("auth"))
	imageService := service.NewImageService(store, log.Named("image"))
	recipeService := service.NewRecipeService(db, imageService, log.Named("recipe"))

	deps := api.Dependencies{
		DB:                db,
		AuthService:       authService,
		RecipeService:     recipeService,
		TagService:        service.NewTagService(db),
		IngredientService: service.NewIngredientService(db),
	}
	if redisClient != nil {
		deps.CreationLimiter = middleware.NewRecipeCreationRateLimiter(redisClient, log)
		deps.ModificationLimiter = middleware.NewRecipeModificationRateLimiter(redisClient, log)
	} else {
		log.Warn("redis not configured, rate limiting disabled")
	}

	engine := router.SetupRouter(cfg, deps, log)
	return &Server{
		router: engine,
		http: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
		log: log,
	}
}

// Handler exposes the routes, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server listening", zap.String("addr", s.http.Addr))
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.Stop(shutdownCtx)
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	if s.http != nil {
		return s.http.Shutdown(ctx)
	}
	return nil
}
