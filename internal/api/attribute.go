package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-api/backend/internal/middleware"
	"github.com/pageza/recipe-api/backend/internal/service"
	"github.com/pageza/recipe-api/backend/internal/types"
)

// AttributeHandler serves /tags and /ingredients. Items are created through recipes, so the
// collection has no POST.
type AttributeHandler[T service.Attribute] struct {
	path    string
	service service.IAttributeService[T]
}

func NewAttributeHandler[T service.Attribute](path string, svc service.IAttributeService[T]) *AttributeHandler[T] {
	return &AttributeHandler[T]{path: path, service: svc}
}

func (h *AttributeHandler[T]) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group(h.path)
	{
		group.GET("", h.List)
		group.GET("/:id", h.Get)
		group.PUT("/:id", h.Update)
		group.PATCH("/:id", h.PartialUpdate)
		group.DELETE("/:id", h.Delete)
	}
}

func (h *AttributeHandler[T]) List(c *gin.Context) {
	assignedOnly, err := parseFlag("assigned_only", c.Query("assigned_only"))
	if err != nil {
		respondError(c, err)
		return
	}
	userID, _ := middleware.UserID(c)

	items, err := h.service.List(c.Request.Context(), userID, assignedOnly)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAttributeResponses(items))
}

func (h *AttributeHandler[T]) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		respondError(c, service.ErrNotFound)
		return
	}
	userID, _ := middleware.UserID(c)

	item, err := h.service.Get(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAttributeResponse(item))
}

func (h *AttributeHandler[T]) Update(c *gin.Context) {
	h.update(c, false)
}

func (h *AttributeHandler[T]) PartialUpdate(c *gin.Context) {
	h.update(c, true)
}

func (h *AttributeHandler[T]) update(c *gin.Context, partial bool) {
	id, ok := parseID(c, "id")
	if !ok {
		respondError(c, service.ErrNotFound)
		return
	}
	var req types.AttributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	userID, _ := middleware.UserID(c)

	item, err := h.service.Update(c.Request.Context(), userID, id, &req, partial)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAttributeResponse(item))
}

func (h *AttributeHandler[T]) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		respondError(c, service.ErrNotFound)
		return
	}
	userID, _ := middleware.UserID(c)

	if err := h.service.Delete(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
