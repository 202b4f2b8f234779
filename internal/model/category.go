package model

import "time"

// Category groups recipes. Deleting a category detaches its recipes
// rather than removing them.
type Category struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"uniqueIndex;size:100;not null"`
	Description string    `json:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`

	// Relations
	Recipes []Recipe `json:"-" gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
}
