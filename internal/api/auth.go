package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-api/backend/internal/middleware"
	"github.com/pageza/recipe-api/backend/internal/service"
	"github.com/pageza/recipe-api/backend/internal/types"
)

// UserHandler serves account creation, token issue and the caller's own account.
type UserHandler struct {
	authService service.IAuthService
}

func NewUserHandler(authService service.IAuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup, auth gin.HandlerFunc) {
	user := router.Group("/user")
	{
		user.POST("/create", h.CreateUser)
		user.POST("/token", h.CreateToken)
		user.GET("/me", auth, h.GetMe)
		user.PUT("/me", auth, h.UpdateMe)
		user.PATCH("/me", auth, h.PartialUpdateMe)
	}
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	var req types.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.authService.CreateUser(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toUserResponse(user))
}

func (h *UserHandler) CreateToken(c *gin.Context) {
	var req types.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.authService.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := h.authService.GenerateToken(user)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.TokenResponse{Token: token})
}

func (h *UserHandler) GetMe(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	user, err := h.authService.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

// UpdateMe requires the writable fields; PartialUpdateMe takes any subset.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	h.updateMe(c, false)
}

func (h *UserHandler) PartialUpdateMe(c *gin.Context) {
	h.updateMe(c, true)
}

func (h *UserHandler) updateMe(c *gin.Context, partial bool) {
	var req types.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if !partial {
		verr := &types.ValidationError{}
		if req.Name == nil {
			verr.Add("name", types.MsgRequired)
		}
		if req.Password == nil {
			verr.Add("password", types.MsgRequired)
		}
		if err := verr.OrNil(); err != nil {
			respondError(c, err)
			return
		}
	}

	userID, _ := middleware.UserID(c)
	user, err := h.authService.UpdateUser(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}
