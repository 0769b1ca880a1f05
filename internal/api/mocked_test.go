package api_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pageza/recipe-api/backend/internal/api"
	"github.com/pageza/recipe-api/backend/internal/mocks"
	"github.com/pageza/recipe-api/backend/internal/models"
	"github.com/pageza/recipe-api/backend/internal/router"
	"github.com/pageza/recipe-api/backend/internal/service"
	"github.com/pageza/recipe-api/backend/internal/testhelpers"
	"github.com/pageza/recipe-api/backend/internal/types"
)

const mockedUserID uint = 7

func setupMockedRouter(t *testing.T) (http.Handler, *mocks.MockAuthService, *mocks.MockRecipeService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupTestDatabase(t)
	authService := new(mocks.MockAuthService)
	recipeService := new(mocks.MockRecipeService)
	authService.On("ValidateToken", mock.Anything, "valid").Return(&types.TokenClaims{UserID: mockedUserID}, nil).Maybe()

	deps := api.Dependencies{
		DB:                db,
		AuthService:       authService,
		RecipeService:     recipeService,
		TagService:        service.NewTagService(db),
		IngredientService: service.NewIngredientService(db),
	}
	return router.SetupRouter(newTestConfig(), deps, zap.NewNop()), authService, recipeService
}

func TestListRecipesPassesFilter(t *testing.T) {
	r, _, recipes := setupMockedRouter(t)
	recipes.On("ListRecipes", mock.Anything, mockedUserID, service.RecipeFilter{
		TagIDs:        []uint{1, 2},
		IngredientIDs: []uint{3},
	}).Return([]models.Recipe{}, nil)

	w := PerformRequestWithToken(r, "GET", recipesURL+"?tags=1,2&ingredients=3", nil, "valid")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
	recipes.AssertExpectations(t)
}

func TestServiceFailureIsInternalError(t *testing.T) {
	r, _, recipes := setupMockedRouter(t)
	recipes.On("ListRecipes", mock.Anything, mockedUserID, service.RecipeFilter{}).
		Return(nil, errors.New("connection reset"))

	w := PerformRequestWithToken(r, "GET", recipesURL, nil, "valid")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal Server Error", decode[errorBody](t, w).Error)
	assert.NotContains(t, w.Body.String(), "connection reset")
}

func TestDetailImageURLFailure(t *testing.T) {
	r, _, recipes := setupMockedRouter(t)
	recipe := &models.Recipe{ID: 3, UserID: mockedUserID, Title: "Soup"}
	recipes.On("GetRecipe", mock.Anything, mockedUserID, uint(3)).Return(recipe, nil)
	recipes.On("ImageURL", mock.Anything, recipe).Return(nil, errors.New("presign failed"))

	w := PerformRequestWithToken(r, "GET", recipesURL+"/3", nil, "valid")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	recipes.AssertExpectations(t)
}

func TestDeleteMapsNotFound(t *testing.T) {
	r, _, recipes := setupMockedRouter(t)
	recipes.On("DeleteRecipe", mock.Anything, mockedUserID, uint(9)).Return(service.ErrNotFound)

	w := PerformRequestWithToken(r, "DELETE", recipesURL+"/9", nil, "valid")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Not found.", decode[errorBody](t, w).Error)
}

func TestTokenSigningFailure(t *testing.T) {
	r, auth, _ := setupMockedRouter(t)
	user := &models.User{ID: mockedUserID, Email: "user@example.com"}
	auth.On("Authenticate", mock.Anything, "user@example.com", "testpass123").Return(user, nil)
	auth.On("GenerateToken", user).Return("", errors.New("signing failed"))

	w := PerformRequestWithToken(r, "POST", usersURL+"/token", map[string]string{
		"email":    "user@example.com",
		"password": "testpass123",
	}, "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	auth.AssertExpectations(t)
}

func TestRejectedTokenIsUnauthorized(t *testing.T) {
	r, auth, recipes := setupMockedRouter(t)
	auth.On("ValidateToken", mock.Anything, "revoked").Return(nil, service.ErrInvalidToken)

	w := PerformRequestWithToken(r, "GET", recipesURL, nil, "revoked")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid token.", decode[errorBody](t, w).Error)
	recipes.AssertNotCalled(t, "ListRecipes", mock.Anything, mock.Anything, mock.Anything)
}
