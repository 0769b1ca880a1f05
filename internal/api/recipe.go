package api

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-api/backend/internal/middleware"
	"github.com/pageza/recipe-api/backend/internal/models"
	"github.com/pageza/recipe-api/backend/internal/service"
	"github.com/pageza/recipe-api/backend/internal/types"
)

type RecipeHandler struct {
	recipeService             service.IRecipeService
	recipeCreationLimiter     *middleware.RateLimiter
	recipeModificationLimiter *middleware.RateLimiter
}

// NewRecipeHandler creates the handler. The limiters may be nil when Redis is not configured.
func NewRecipeHandler(recipeService service.IRecipeService, creationLimiter, modificationLimiter *middleware.RateLimiter) *RecipeHandler {
	return &RecipeHandler{
		recipeService:             recipeService,
		recipeCreationLimiter:     creationLimiter,
		recipeModificationLimiter: modificationLimiter,
	}
}

// RegisterRoutes mounts /recipes on an authenticated group.
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	create := []gin.HandlerFunc{h.CreateRecipe}
	if h.recipeCreationLimiter != nil {
		create = append([]gin.HandlerFunc{h.recipeCreationLimiter.RateLimitMiddleware()}, create...)
	}
	modify := func(handler gin.HandlerFunc) []gin.HandlerFunc {
		if h.recipeModificationLimiter == nil {
			return []gin.HandlerFunc{handler}
		}
		return []gin.HandlerFunc{h.recipeModificationLimiter.PerRecipeRateLimitMiddleware(), handler}
	}

	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.POST("", create...)
		recipes.GET("/:id", h.GetRecipe)
		recipes.PUT("/:id", modify(h.UpdateRecipe)...)
		recipes.PATCH("/:id", modify(h.PartialUpdateRecipe)...)
		recipes.DELETE("/:id", h.DeleteRecipe)
		recipes.POST("/:id/upload-image", modify(h.UploadImage)...)
	}
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	tagIDs, err := parseIDList("tags", c.Query("tags"))
	if err != nil {
		respondError(c, err)
		return
	}
	ingredientIDs, err := parseIDList("ingredients", c.Query("ingredients"))
	if err != nil {
		respondError(c, err)
		return
	}

	userID, _ := middleware.UserID(c)
	recipes, err := h.recipeService.ListRecipes(c.Request.Context(), userID, service.RecipeFilter{
		TagIDs:        tagIDs,
		IngredientIDs: ingredientIDs,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]types.RecipeResponse, 0, len(recipes))
	for i := range recipes {
		out = append(out, toRecipeResponse(&recipes[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		respondError(c, service.ErrNotFound)
		return
	}
	userID, _ := middleware.UserID(c)

	recipe, err := h.recipeService.GetRecipe(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondDetail(c, http.StatusOK, recipe)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req types.RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	userID, _ := middleware.UserID(c)

	recipe, err := h.recipeService.CreateRecipe(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondDetail(c, http.StatusCreated, recipe)
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	h.updateRecipe(c, false)
}

func (h *RecipeHandler) PartialUpdateRecipe(c *gin.Context) {
	h.updateRecipe(c, true)
}

func (h *RecipeHandler) updateRecipe(c *gin.Context, partial bool) {
	id, ok := parseID(c, "id")
	if !ok {
		respondError(c, service.ErrNotFound)
		return
	}
	var req types.RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	userID, _ := middleware.UserID(c)

	recipe, err := h.recipeService.UpdateRecipe(c.Request.Context(), userID, id, &req, partial)
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondDetail(c, http.StatusOK, recipe)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		respondError(c, service.ErrNotFound)
		return
	}
	userID, _ := middleware.UserID(c)

	if err := h.recipeService.DeleteRecipe(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UploadImage accepts a multipart form with the picture in the "image" field.
func (h *RecipeHandler) UploadImage(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		respondError(c, service.ErrNotFound)
		return
	}

	header, err := c.FormFile("image")
	if err != nil {
		respondError(c, types.NewValidationError("image", "No file was submitted."))
		return
	}
	file, err := header.Open()
	if err != nil {
		respondError(c, fmt.Errorf("open upload: %w", err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, service.MaxImageSize+1))
	if err != nil {
		respondError(c, fmt.Errorf("read upload: %w", err))
		return
	}

	userID, _ := middleware.UserID(c)
	recipe, err := h.recipeService.UploadImage(c.Request.Context(), userID, id, header.Filename, data)
	if err != nil {
		respondError(c, err)
		return
	}

	url, err := h.recipeService.ImageURL(c.Request.Context(), recipe)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.RecipeImageResponse{ID: recipe.ID, Image: url})
}

func (h *RecipeHandler) respondDetail(c *gin.Context, status int, recipe *models.Recipe) {
	resp, err := toRecipeDetailResponse(c.Request.Context(), h.recipeService, recipe)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(status, resp)
}
