package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/recipe-api/backend/internal/models"
	"github.com/pageza/recipe-api/backend/internal/service"
	"github.com/pageza/recipe-api/backend/internal/types"
)

// MockRecipeService is a mock implementation of the recipe service
type MockRecipeService struct {
	mock.Mock
}

var _ service.IRecipeService = (*MockRecipeService)(nil)

func recipeResult(args mock.Arguments) (*models.Recipe, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Recipe), args.Error(1)
}

// ListRecipes mocks the ListRecipes method
func (m *MockRecipeService) ListRecipes(ctx context.Context, userID uint, filter service.RecipeFilter) ([]models.Recipe, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Recipe), args.Error(1)
}

// GetRecipe mocks the GetRecipe method
func (m *MockRecipeService) GetRecipe(ctx context.Context, userID, id uint) (*models.Recipe, error) {
	return recipeResult(m.Called(ctx, userID, id))
}

// CreateRecipe mocks the CreateRecipe method
func (m *MockRecipeService) CreateRecipe(ctx context.Context, userID uint, req *types.RecipeRequest) (*models.Recipe, error) {
	return recipeResult(m.Called(ctx, userID, req))
}

// UpdateRecipe mocks the UpdateRecipe method
func (m *MockRecipeService) UpdateRecipe(ctx context.Context, userID, id uint, req *types.RecipeRequest, partial bool) (*models.Recipe, error) {
	return recipeResult(m.Called(ctx, userID, id, req, partial))
}

// DeleteRecipe mocks the DeleteRecipe method
func (m *MockRecipeService) DeleteRecipe(ctx context.Context, userID, id uint) error {
	return m.Called(ctx, userID, id).Error(0)
}

// UploadImage mocks the UploadImage method
func (m *MockRecipeService) UploadImage(ctx context.Context, userID, id uint, filename string, data []byte) (*models.Recipe, error) {
	return recipeResult(m.Called(ctx, userID, id, filename, data))
}

// ImageURL mocks the ImageURL method
func (m *MockRecipeService) ImageURL(ctx context.Context, recipe *models.Recipe) (*string, error) {
	args := m.Called(ctx, recipe)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*string), args.Error(1)
}
