package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Recipe belongs to one user and is linked to that user's tags and ingredients. Image holds
// the storage key of the uploaded picture and is nil when none was uploaded.
type Recipe struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	UserID      uint            `gorm:"not null;index" json:"user_id"`
	User        *User           `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Title       string          `gorm:"size:255;not null" json:"title"`
	TimeMinutes int             `gorm:"not null" json:"time_minutes"`
	Price       decimal.Decimal `gorm:"type:numeric(5,2);not null" json:"price"`
	Link        string          `gorm:"size:255" json:"link"`
	Description string          `gorm:"type:text" json:"description"`
	Image       *string         `gorm:"size:255" json:"image"`
	Tags        []Tag           `gorm:"many2many:recipe_tags" json:"tags"`
	Ingredients []Ingredient    `gorm:"many2many:recipe_ingredients" json:"ingredients"`
}

// Tag labels recipes. Names are unique per user.
type Tag struct {
	ID      uint     `gorm:"primaryKey" json:"id"`
	UserID  uint     `gorm:"not null;index" json:"-"`
	User    *User    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Name    string   `gorm:"size:255;not null" json:"name"`
	Recipes []Recipe `gorm:"many2many:recipe_tags" json:"-"`
}

// Ingredient has the same shape and ownership rules as Tag.
type Ingredient struct {
	ID      uint     `gorm:"primaryKey" json:"id"`
	UserID  uint     `gorm:"not null;index" json:"-"`
	User    *User    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Name    string   `gorm:"size:255;not null" json:"name"`
	Recipes []Recipe `gorm:"many2many:recipe_ingredients" json:"-"`
}

// All lists every model in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Recipe{},
		&Tag{},
		&Ingredient{},
	}
}
