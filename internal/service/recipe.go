package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/recipe-api/backend/internal/models"
	"github.com/pageza/recipe-api/backend/internal/types"
)

// RecipeFilter narrows ListRecipes. A recipe matches a list when it is attached to any of its
// ids; both lists must match when both are set.
type RecipeFilter struct {
	TagIDs        []uint
	IngredientIDs []uint
}

// RecipeService handles recipe operations
type RecipeService struct {
	db     *gorm.DB
	images IImageService
	log    *zap.Logger
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB, images IImageService, log *zap.Logger) *RecipeService {
	return &RecipeService{
		db:     db,
		images: images,
		log:    log,
	}
}

func preloadAttributes(db *gorm.DB) *gorm.DB {
	byID := func(db *gorm.DB) *gorm.DB { return db.Order("id") }
	return db.Preload("Tags", byID).Preload("Ingredients", byID)
}

// ListRecipes lists the user's recipes, newest first
func (s *RecipeService) ListRecipes(ctx context.Context, userID uint, filter RecipeFilter) ([]models.Recipe, error) {
	query := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if len(filter.TagIDs) > 0 {
		query = query.Where("id IN (?)",
			s.db.Table("recipe_tags").Select("recipe_id").Where("tag_id IN ?", filter.TagIDs))
	}
	if len(filter.IngredientIDs) > 0 {
		query = query.Where("id IN (?)",
			s.db.Table("recipe_ingredients").Select("recipe_id").Where("ingredient_id IN ?", filter.IngredientIDs))
	}

	var recipes []models.Recipe
	if err := preloadAttributes(query).Order("id DESC").Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	return recipes, nil
}

// GetRecipe retrieves one of the user's recipes by ID
func (s *RecipeService) GetRecipe(ctx context.Context, userID, id uint) (*models.Recipe, error) {
	return s.getRecipe(s.db.WithContext(ctx), userID, id)
}

func (s *RecipeService) getRecipe(db *gorm.DB, userID, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	err := preloadAttributes(db).Where("user_id = ? AND id = ?", userID, id).First(&recipe).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	return &recipe, nil
}

// CreateRecipe creates a recipe together with any inline tags and ingredients
func (s *RecipeService) CreateRecipe(ctx context.Context, userID uint, req *types.RecipeRequest) (*models.Recipe, error) {
	if err := req.Validate(false); err != nil {
		return nil, err
	}

	recipe := &models.Recipe{UserID: userID}
	applyRecipeFields(recipe, req)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(recipe).Error; err != nil {
			return fmt.Errorf("create recipe: %w", err)
		}
		return s.setAttributes(tx, recipe, req, false)
	})
	if err != nil {
		return nil, err
	}

	s.log.Debug("recipe created", zap.Uint("recipe_id", recipe.ID), zap.Uint("user_id", userID))
	return s.GetRecipe(ctx, userID, recipe.ID)
}

// UpdateRecipe applies a full (partial=false) or partial update. Tags and ingredients are
// replaced only when present in the request.
func (s *RecipeService) UpdateRecipe(ctx context.Context, userID, id uint, req *types.RecipeRequest, partial bool) (*models.Recipe, error) {
	if err := req.Validate(partial); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		recipe, err := s.getRecipe(tx, userID, id)
		if err != nil {
			return err
		}
		applyRecipeFields(recipe, req)
		if err := tx.Omit(clause.Associations).Save(recipe).Error; err != nil {
			return fmt.Errorf("update recipe: %w", err)
		}
		return s.setAttributes(tx, recipe, req, true)
	})
	if err != nil {
		return nil, err
	}
	return s.GetRecipe(ctx, userID, id)
}

// DeleteRecipe removes the recipe, its join rows and its stored image
func (s *RecipeService) DeleteRecipe(ctx context.Context, userID, id uint) error {
	recipe, err := s.GetRecipe(ctx, userID, id)
	if err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Select("Tags", "Ingredients").Delete(recipe).Error; err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}

	if recipe.Image != nil {
		s.removeImage(ctx, *recipe.Image)
	}
	return nil
}

// UploadImage stores a new picture for the recipe and drops the previous one
func (s *RecipeService) UploadImage(ctx context.Context, userID, id uint, filename string, data []byte) (*models.Recipe, error) {
	recipe, err := s.GetRecipe(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	key, err := s.images.Store(ctx, filename, data)
	if err != nil {
		return nil, err
	}

	previous := recipe.Image
	if err := s.db.WithContext(ctx).Model(recipe).Update("image", key).Error; err != nil {
		s.removeImage(ctx, key)
		return nil, fmt.Errorf("update recipe image: %w", err)
	}
	recipe.Image = &key

	if previous != nil && *previous != key {
		s.removeImage(ctx, *previous)
	}
	return recipe, nil
}

// ImageURL resolves the stored key of a recipe image to the URL clients fetch.
func (s *RecipeService) ImageURL(ctx context.Context, recipe *models.Recipe) (*string, error) {
	if recipe.Image == nil || *recipe.Image == "" {
		return nil, nil
	}
	url, err := s.images.URL(ctx, *recipe.Image)
	if err != nil {
		return nil, err
	}
	return &url, nil
}

func (s *RecipeService) removeImage(ctx context.Context, key string) {
	if err := s.images.Delete(ctx, key); err != nil {
		s.log.Warn("failed to delete recipe image", zap.String("key", key), zap.Error(err))
	}
}

func applyRecipeFields(recipe *models.Recipe, req *types.RecipeRequest) {
	if req.Title != nil {
		recipe.Title = strings.TrimSpace(*req.Title)
	}
	if req.TimeMinutes != nil {
		recipe.TimeMinutes = *req.TimeMinutes
	}
	if req.Price != nil {
		recipe.Price = *req.Price
	}
	if req.Link != nil {
		recipe.Link = *req.Link
	}
	if req.Description != nil {
		recipe.Description = *req.Description
	}
}

func (s *RecipeService) setAttributes(tx *gorm.DB, recipe *models.Recipe, req *types.RecipeRequest, replace bool) error {
	if req.Tags != nil {
		tags, err := getOrCreate[models.Tag](tx, recipe.UserID, *req.Tags)
		if err != nil {
			return err
		}
		if err := associate(tx, recipe, "Tags", tags, replace); err != nil {
			return err
		}
	}
	if req.Ingredients != nil {
		ingredients, err := getOrCreate[models.Ingredient](tx, recipe.UserID, *req.Ingredients)
		if err != nil {
			return err
		}
		if err := associate(tx, recipe, "Ingredients", ingredients, replace); err != nil {
			return err
		}
	}
	return nil
}

func associate[T Attribute](tx *gorm.DB, recipe *models.Recipe, name string, items []T, replace bool) error {
	assoc := tx.Model(recipe).Association(name)
	var err error
	switch {
	case replace && len(items) == 0:
		err = assoc.Clear()
	case replace:
		err = assoc.Replace(items)
	case len(items) > 0:
		err = assoc.Append(items)
	}
	if err != nil {
		return fmt.Errorf("set recipe %s: %w", strings.ToLower(name), err)
	}
	return nil
}

// getOrCreate resolves inline items by (user, name), reusing existing rows. Repeated names in
// one payload resolve to a single row.
func getOrCreate[T Attribute](tx *gorm.DB, userID uint, items []types.NamedRequest) ([]T, error) {
	seen := make(map[string]bool, len(items))
	result := make([]T, 0, len(items))
	for _, item := range items {
		name := strings.TrimSpace(item.Name)
		if seen[name] {
			continue
		}
		seen[name] = true

		var row T
		err := tx.Where(map[string]interface{}{"user_id": userID, "name": name}).FirstOrCreate(&row).Error
		if err != nil {
			return nil, fmt.Errorf("get or create %q: %w", name, err)
		}
		result = append(result, row)
	}
	return result, nil
}
