package types

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// MinPasswordLength is the shortest password accepted on create and update.
	MinPasswordLength = 5
	maxNameLength     = 255
	maxPriceDigits    = 5
	maxPricePlaces    = 2
)

// CreateUserRequest represents the request body for registration
type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=5,max=128"`
	Name     string `json:"name" binding:"required,max=255"`
}

// TokenRequest exchanges credentials for a bearer token
type TokenRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateUserRequest is used by PUT and PATCH on the caller's own account. Email is
// deliberately absent: the identity cannot be changed on this path.
type UpdateUserRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=255"`
	Password *string `json:"password" binding:"omitempty,min=5,max=128"`
}

// NamedRequest is an inline tag or ingredient inside a recipe payload
type NamedRequest struct {
	Name string `json:"name"`
}

// RecipeRequest represents the body of recipe create, update and partial update. Nil
// fields were absent from the payload.
type RecipeRequest struct {
	Title       *string          `json:"title" binding:"omitempty,min=1,max=255"`
	TimeMinutes *int             `json:"time_minutes" binding:"omitempty,min=0"`
	Price       *decimal.Decimal `json:"price"`
	Link        *string          `json:"link" binding:"omitempty,max=255"`
	Description *string          `json:"description"`
	Tags        *[]NamedRequest  `json:"tags"`
	Ingredients *[]NamedRequest  `json:"ingredients"`
}

// Validate checks what struct tags cannot express. When partial is false the fields
// required for a full write must be present.
func (r *RecipeRequest) Validate(partial bool) error {
	verr := &ValidationError{}

	if !partial {
		if r.Title == nil {
			verr.Add("title", MsgRequired)
		}
		if r.TimeMinutes == nil {
			verr.Add("time_minutes", MsgRequired)
		}
		if r.Price == nil {
			verr.Add("price", MsgRequired)
		}
	}

	if r.Price != nil {
		validatePrice(verr, *r.Price)
	}
	if r.Tags != nil {
		validateNames(verr, "tags", *r.Tags)
	}
	if r.Ingredients != nil {
		validateNames(verr, "ingredients", *r.Ingredients)
	}

	return verr.OrNil()
}

func validatePrice(verr *ValidationError, price decimal.Decimal) {
	if price.Exponent() < -maxPricePlaces {
		verr.Add("price", fmt.Sprintf("Ensure that there are no more than %d decimal places.", maxPricePlaces))
		return
	}
	limit := decimal.New(1, maxPriceDigits-maxPricePlaces)
	if price.Abs().GreaterThanOrEqual(limit) {
		verr.Add("price", fmt.Sprintf("Ensure that there are no more than %d digits in total.", maxPriceDigits))
	}
}

func validateNames(verr *ValidationError, field string, items []NamedRequest) {
	for i, item := range items {
		name := strings.TrimSpace(item.Name)
		switch {
		case name == "":
			verr.Add(fmt.Sprintf("%s[%d].name", field, i), MsgBlank)
		case len(name) > maxNameLength:
			verr.Add(fmt.Sprintf("%s[%d].name", field, i), fmt.Sprintf("Ensure this field has no more than %d characters.", maxNameLength))
		}
	}
}

// AttributeRequest renames a tag or ingredient
type AttributeRequest struct {
	Name *string `json:"name" binding:"omitempty,min=1,max=255"`
}

// Validate requires a name for full updates.
func (r *AttributeRequest) Validate(partial bool) error {
	if !partial && r.Name == nil {
		return NewValidationError("name", MsgRequired)
	}
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return NewValidationError("name", MsgBlank)
	}
	return nil
}

// UserResponse is the public view of an account
type UserResponse struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// TokenResponse carries an issued bearer token
type TokenResponse struct {
	Token string `json:"token"`
}

// AttributeResponse is a tag or ingredient
type AttributeResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// RecipeResponse is the list representation of a recipe
type RecipeResponse struct {
	ID          uint                `json:"id"`
	Title       string              `json:"title"`
	TimeMinutes int                 `json:"time_minutes"`
	Price       string              `json:"price"`
	Link        string              `json:"link"`
	Tags        []AttributeResponse `json:"tags"`
	Ingredients []AttributeResponse `json:"ingredients"`
}

// RecipeDetailResponse adds the fields only shown on a single recipe
type RecipeDetailResponse struct {
	RecipeResponse
	Description string  `json:"description"`
	Image       *string `json:"image"`
}

// RecipeImageResponse is returned by the image upload endpoint
type RecipeImageResponse struct {
	ID    uint    `json:"id"`
	Image *string `json:"image"`
}

// AdminUserResponse is the staff listing of an account
type AdminUserResponse struct {
	ID          uint      `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	IsActive    bool      `json:"is_active"`
	IsStaff     bool      `json:"is_staff"`
	IsSuperuser bool      `json:"is_superuser"`
	CreatedAt   time.Time `json:"created_at"`
}
