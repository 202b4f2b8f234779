package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecipeStatus represents the moderation state of a recipe.
type RecipeStatus string

const (
	RecipeStatusPending  RecipeStatus = "pending"
	RecipeStatusApproved RecipeStatus = "approved"
	RecipeStatusRejected RecipeStatus = "rejected"
)

// Valid reports whether s is a known moderation state.
func (s RecipeStatus) Valid() bool {
	switch s {
	case RecipeStatusPending, RecipeStatusApproved, RecipeStatusRejected:
		return true
	}
	return false
}

// Recipe is a user-submitted recipe. New submissions start pending and
// become publicly visible only once a moderator approves them.
//
// AverageRating is derived: it always equals the mean of the recipe's
// rating rows rounded to 2 decimals, or 0.00 with no ratings. It is
// recomputed inside the same transaction as every rating write and is
// never set directly.
type Recipe struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	Title         string          `json:"title" gorm:"size:200;not null"`
	Description   string          `json:"description" gorm:"type:text;not null"`
	Ingredients   string          `json:"ingredients" gorm:"type:text;not null"` // one item per line by convention
	Instructions  string          `json:"instructions" gorm:"type:text;not null"`
	PrepTime      int             `json:"prep_time" gorm:"not null"` // minutes
	CookTime      int             `json:"cook_time" gorm:"not null"` // minutes
	Servings      int             `json:"servings" gorm:"not null"`
	ImageURL      string          `json:"image_url,omitempty" gorm:"size:500"`
	CategoryID    *uint           `json:"category_id,omitempty" gorm:"index"`
	AuthorID      uint            `json:"author_id" gorm:"not null;index"`
	Status        RecipeStatus    `json:"status" gorm:"type:varchar(10);not null;default:'pending';index"`
	AverageRating decimal.Decimal `json:"average_rating" gorm:"type:decimal(3,2);not null;default:0.00"`
	CreatedAt     time.Time       `json:"created_at" gorm:"index"`
	UpdatedAt     time.Time       `json:"updated_at"`

	// Relations
	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Author   User      `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Comments []Comment `json:"-" gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	Ratings  []Rating  `json:"-" gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}
