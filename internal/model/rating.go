package model

import "time"

// Rating is a single user's 1-5 score for a recipe. The composite unique
// index enforces at most one row per (recipe, user); repeat submissions
// update the existing row.
type Rating struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	RecipeID  uint      `json:"recipe_id" gorm:"not null;uniqueIndex:idx_ratings_recipe_user"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_ratings_recipe_user"`
	Value     int       `json:"rating" gorm:"column:rating;not null;check:rating >= 1 AND rating <= 5"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Recipe Recipe `json:"-" gorm:"foreignKey:RecipeID"`
	User   User   `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
