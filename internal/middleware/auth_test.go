package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/pageza/recipe-api/backend/internal/testhelpers"
	"github.com/pageza/recipe-api/backend/internal/types"
)

func setupAuthRouter(validator TokenValidator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", AuthMiddleware(validator), func(c *gin.Context) {
		userID, _ := UserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "is_staff": c.GetBool(ContextIsStaff)})
	})
	return router
}

func TestAuthMiddleware(t *testing.T) {
	validator := &testhelpers.MockTokenValidator{Claims: &types.TokenClaims{UserID: 7, IsStaff: true}}
	router := setupAuthRouter(validator)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"too many parts", "Bearer a b", http.StatusUnauthorized},
		{"bearer", "Bearer good", http.StatusOK},
		{"token scheme", "Token good", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)
			assert.Equal(t, tt.status, rr.Code)
			if tt.status == http.StatusOK {
				assert.JSONEq(t, `{"user_id":7,"is_staff":true}`, rr.Body.String())
			}
		})
	}
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	router := setupAuthRouter(&testhelpers.MockTokenValidator{Error: errors.New("expired")})

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer bad")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.JSONEq(t, `{"error":"Invalid token."}`, rr.Body.String())
}

type requestKey struct{}

func TestAuthMiddlewarePassesRequestContext(t *testing.T) {
	validator := &testhelpers.MockTokenValidator{Claims: &types.TokenClaims{UserID: 7}}
	router := setupAuthRouter(validator)

	req := httptest.NewRequest("GET", "/protected", nil)
	req = req.WithContext(context.WithValue(req.Context(), requestKey{}, "req-1"))
	req.Header.Set("Authorization", "Bearer good")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	if assert.NotNil(t, validator.Ctx) {
		assert.Equal(t, "req-1", validator.Ctx.Value(requestKey{}))
	}
}
