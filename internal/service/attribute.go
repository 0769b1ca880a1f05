package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/pageza/recipe-api/backend/internal/models"
	"github.com/pageza/recipe-api/backend/internal/types"
)

// Attribute is a per-user label that recipes link to through a join table.
type Attribute interface {
	models.Tag | models.Ingredient
}

// AttributeService serves tags and ingredients. They are created through recipes, so only
// read, rename and delete are offered here.
type AttributeService[T Attribute] struct {
	db         *gorm.DB
	joinTable  string
	joinColumn string
}

func NewTagService(db *gorm.DB) *AttributeService[models.Tag] {
	return &AttributeService[models.Tag]{db: db, joinTable: "recipe_tags", joinColumn: "tag_id"}
}

func NewIngredientService(db *gorm.DB) *AttributeService[models.Ingredient] {
	return &AttributeService[models.Ingredient]{db: db, joinTable: "recipe_ingredients", joinColumn: "ingredient_id"}
}

// List returns the user's items by name, descending. With assignedOnly only items linked to
// at least one recipe are returned, each once.
func (s *AttributeService[T]) List(ctx context.Context, userID uint, assignedOnly bool) ([]T, error) {
	query := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if assignedOnly {
		query = query.Where("id IN (?)", s.db.Table(s.joinTable).Select(s.joinColumn))
	}

	var items []T
	if err := query.Order("name DESC").Order("id DESC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list %s: %w", s.joinColumn, err)
	}
	return items, nil
}

func (s *AttributeService[T]) Get(ctx context.Context, userID, id uint) (*T, error) {
	return s.get(s.db.WithContext(ctx), userID, id)
}

func (s *AttributeService[T]) get(db *gorm.DB, userID, id uint) (*T, error) {
	var item T
	err := db.Where("user_id = ? AND id = ?", userID, id).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", s.joinColumn, err)
	}
	return &item, nil
}

// Update renames the item.
func (s *AttributeService[T]) Update(ctx context.Context, userID, id uint, req *types.AttributeRequest, partial bool) (*T, error) {
	if err := req.Validate(partial); err != nil {
		return nil, err
	}
	item, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if req.Name == nil {
		return item, nil
	}

	if err := s.db.WithContext(ctx).Model(item).Update("name", strings.TrimSpace(*req.Name)).Error; err != nil {
		return nil, fmt.Errorf("update %s: %w", s.joinColumn, err)
	}
	return s.Get(ctx, userID, id)
}

// Delete removes the item and unlinks it from every recipe.
func (s *AttributeService[T]) Delete(ctx context.Context, userID, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err := s.get(tx, userID, id)
		if err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM "+s.joinTable+" WHERE "+s.joinColumn+" = ?", id).Error; err != nil {
			return fmt.Errorf("unlink %s: %w", s.joinColumn, err)
		}
		if err := tx.Delete(item).Error; err != nil {
			return fmt.Errorf("delete %s: %w", s.joinColumn, err)
		}
		return nil
	})
}
