package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pageza/recipe-api/backend/internal/database"
	"github.com/pageza/recipe-api/backend/internal/middleware"
	"github.com/pageza/recipe-api/backend/internal/service"
	"github.com/pageza/recipe-api/backend/internal/types"
)

// HealthCheck returns the health status of the API
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// ReadyCheck reports whether the database answers.
func ReadyCheck(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := database.HealthCheck(ctx, db); err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "database unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}

// AdminHandler exposes account listings to staff.
type AdminHandler struct {
	authService service.IAuthService
}

func NewAdminHandler(authService service.IAuthService) *AdminHandler {
	return &AdminHandler{authService: authService}
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.authService.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]types.AdminUserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, types.AdminUserResponse{
			ID:          u.ID,
			Email:       u.Email,
			Name:        u.Name,
			IsActive:    u.IsActive,
			IsStaff:     u.IsStaff,
			IsSuperuser: u.IsSuperuser,
			CreatedAt:   u.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, out)
}

// RegisterRateLimitRoutes registers endpoints for checking rate limit status
func RegisterRateLimitRoutes(router *gin.RouterGroup, creationLimiter, modificationLimiter *middleware.RateLimiter) {
	rateLimits := router.Group("/rate-limits")
	{
		rateLimits.GET("/recipe-creation", func(c *gin.Context) {
			userID, _ := middleware.UserID(c)
			respondRateLimit(c, creationLimiter, strconv.FormatUint(uint64(userID), 10), nil)
		})

		rateLimits.GET("/recipe-modification/:id", func(c *gin.Context) {
			recipeID, ok := parseID(c, "id")
			if !ok {
				respondError(c, service.ErrNotFound)
				return
			}
			userID, _ := middleware.UserID(c)
			subject := strconv.FormatUint(uint64(userID), 10) + ":" + c.Param("id")
			respondRateLimit(c, modificationLimiter, subject, gin.H{"recipe_id": recipeID})
		})
	}
}

func respondRateLimit(c *gin.Context, limiter *middleware.RateLimiter, subject string, extra gin.H) {
	remaining, resetTime, err := limiter.GetRemainingRequests(c.Request.Context(), subject)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check rate limit"})
		return
	}

	cfg := limiter.Config()
	body := gin.H{
		"limit":      cfg.Limit,
		"remaining":  remaining,
		"reset_time": resetTime.Unix(),
		"window":     cfg.Window.String(),
	}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}
