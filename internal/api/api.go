package api

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pageza/recipe-api/backend/internal/middleware"
	"github.com/pageza/recipe-api/backend/internal/models"
	"github.com/pageza/recipe-api/backend/internal/service"
)

// Dependencies are the services the HTTP layer is built on. The limiters are nil when
// Redis is not configured.
type Dependencies struct {
	DB                  *gorm.DB
	AuthService         service.IAuthService
	RecipeService       service.IRecipeService
	TagService          service.IAttributeService[models.Tag]
	IngredientService   service.IAttributeService[models.Ingredient]
	CreationLimiter     *middleware.RateLimiter
	ModificationLimiter *middleware.RateLimiter
}

// RegisterRoutes registers all API routes under router.
func RegisterRoutes(router *gin.RouterGroup, deps Dependencies) {
	auth := middleware.AuthMiddleware(deps.AuthService)

	// Health check endpoints (no auth required)
	router.GET("/health-check", HealthCheck)
	router.GET("/ready", ReadyCheck(deps.DB))

	NewUserHandler(deps.AuthService).RegisterRoutes(router, auth)

	recipe := router.Group("/recipe", auth)
	NewRecipeHandler(deps.RecipeService, deps.CreationLimiter, deps.ModificationLimiter).RegisterRoutes(recipe)
	NewAttributeHandler("/tags", deps.TagService).RegisterRoutes(recipe)
	NewAttributeHandler("/ingredients", deps.IngredientService).RegisterRoutes(recipe)

	admin := router.Group("/admin", auth, middleware.RequireStaff(deps.DB))
	admin.GET("/users", NewAdminHandler(deps.AuthService).ListUsers)

	if deps.CreationLimiter != nil && deps.ModificationLimiter != nil {
		RegisterRateLimitRoutes(router.Group("", auth), deps.CreationLimiter, deps.ModificationLimiter)
	}
}
