package model

import "time"

// Comment is free-text feedback on a recipe, listed newest first.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	RecipeID  uint      `json:"recipe_id" gorm:"not null;index"`
	AuthorID  uint      `json:"author_id" gorm:"not null;index"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Recipe Recipe `json:"-" gorm:"foreignKey:RecipeID"`
	Author User   `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
}
