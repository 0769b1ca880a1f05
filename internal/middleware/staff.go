package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pageza/recipe-api/backend/internal/models"
)

// RequireStaff lets only staff accounts through. The flag is read from the database so a
// revoked account loses access without waiting for its token to expire.
func RequireStaff(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := UserID(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication credentials were not provided."})
			return
		}

		var user models.User
		err := db.WithContext(c.Request.Context()).Select("id", "is_staff").First(&user, userID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// The account was removed after its token was issued.
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token."})
			return
		}
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to verify user status"})
			return
		}

		if !user.IsStaff {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "You do not have permission to perform this action."})
			return
		}

		c.Next()
	}
}
