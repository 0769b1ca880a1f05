package api

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-api/backend/internal/models"
	"github.com/pageza/recipe-api/backend/internal/types"
)

func toUserResponse(u *models.User) types.UserResponse {
	return types.UserResponse{Email: u.Email, Name: u.Name}
}

func toAttributeResponse[T any](item *T) types.AttributeResponse {
	switch v := any(item).(type) {
	case *models.Tag:
		return types.AttributeResponse{ID: v.ID, Name: v.Name}
	case *models.Ingredient:
		return types.AttributeResponse{ID: v.ID, Name: v.Name}
	}
	panic(fmt.Sprintf("unsupported attribute type %T", item))
}

func toAttributeResponses[T any](items []T) []types.AttributeResponse {
	out := make([]types.AttributeResponse, 0, len(items))
	for i := range items {
		out = append(out, toAttributeResponse(&items[i]))
	}
	return out
}

func toRecipeResponse(r *models.Recipe) types.RecipeResponse {
	return types.RecipeResponse{
		ID:          r.ID,
		Title:       r.Title,
		TimeMinutes: r.TimeMinutes,
		Price:       r.Price.StringFixed(2),
		Link:        r.Link,
		Tags:        toAttributeResponses(r.Tags),
		Ingredients: toAttributeResponses(r.Ingredients),
	}
}

// imageURLResolver is the part of the recipe service the detail view needs.
type imageURLResolver interface {
	ImageURL(ctx context.Context, recipe *models.Recipe) (*string, error)
}

func toRecipeDetailResponse(ctx context.Context, images imageURLResolver, r *models.Recipe) (types.RecipeDetailResponse, error) {
	url, err := images.ImageURL(ctx, r)
	if err != nil {
		return types.RecipeDetailResponse{}, err
	}
	return types.RecipeDetailResponse{
		RecipeResponse: toRecipeResponse(r),
		Description:    r.Description,
		Image:          url,
	}, nil
}

// parseID reads a positive integer path parameter. Anything else matches no object.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// parseIDList parses a comma-separated list of ids such as "1,3".
func parseIDList(field, raw string) ([]uint, error) {
	if raw == "" {
		return nil, nil
	}
	var ids []uint
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			return nil, types.NewValidationError(field, fmt.Sprintf("%q is not a valid id.", part))
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}

// parseFlag accepts integers (non-zero is true) and the usual boolean spellings.
func parseFlag(field, raw string) (bool, error) {
	if raw == "" {
		return false, nil
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n != 0, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, types.NewValidationError(field, "Must be a valid boolean.")
	}
	return b, nil
}
