package service

import (
	"context"
	"errors"

	"github.com/pageza/recipe-api/backend/internal/models"
	"github.com/pageza/recipe-api/backend/internal/types"
)

var (
	// ErrNotFound is returned for absent records and for records owned by another user.
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("unable to authenticate with provided credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

// IAuthService defines the interface for account and token operations
type IAuthService interface {
	CreateUser(ctx context.Context, email, password, name string) (*models.User, error)
	CreateSuperuser(ctx context.Context, email, password, name string) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	GenerateToken(user *models.User) (string, error)
	ValidateToken(ctx context.Context, token string) (*types.TokenClaims, error)
	GetUser(ctx context.Context, id uint) (*models.User, error)
	UpdateUser(ctx context.Context, id uint, req *types.UpdateUserRequest) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}

// IRecipeService defines the interface for recipe operations. Every call is scoped to the
// owning user.
type IRecipeService interface {
	ListRecipes(ctx context.Context, userID uint, filter RecipeFilter) ([]models.Recipe, error)
	GetRecipe(ctx context.Context, userID, id uint) (*models.Recipe, error)
	CreateRecipe(ctx context.Context, userID uint, req *types.RecipeRequest) (*models.Recipe, error)
	UpdateRecipe(ctx context.Context, userID, id uint, req *types.RecipeRequest, partial bool) (*models.Recipe, error)
	DeleteRecipe(ctx context.Context, userID, id uint) error
	UploadImage(ctx context.Context, userID, id uint, filename string, data []byte) (*models.Recipe, error)
	ImageURL(ctx context.Context, recipe *models.Recipe) (*string, error)
}

// IAttributeService is implemented by the tag and ingredient services.
type IAttributeService[T Attribute] interface {
	List(ctx context.Context, userID uint, assignedOnly bool) ([]T, error)
	Get(ctx context.Context, userID, id uint) (*T, error)
	Update(ctx context.Context, userID, id uint, req *types.AttributeRequest, partial bool) (*T, error)
	Delete(ctx context.Context, userID, id uint) error
}

// IImageService stores validated images and resolves their URLs.
type IImageService interface {
	Store(ctx context.Context, filename string, data []byte) (string, error)
	Delete(ctx context.Context, key string) error
	URL(ctx context.Context, key string) (string, error)
}

var (
	_ IAuthService                         = (*AuthService)(nil)
	_ IRecipeService                       = (*RecipeService)(nil)
	_ IAttributeService[models.Tag]        = (*AttributeService[models.Tag])(nil)
	_ IAttributeService[models.Ingredient] = (*AttributeService[models.Ingredient])(nil)
	_ IImageService                        = (*ImageService)(nil)
)
