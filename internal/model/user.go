package model

import "time"

// User represents a registered account. Staff users can moderate recipes.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:150;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	FirstName    string    `json:"first_name,omitempty" gorm:"size:30"`
	LastName     string    `json:"last_name,omitempty" gorm:"size:30"`
	IsStaff      bool      `json:"is_staff" gorm:"default:false;index"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations. Deleting a user takes their recipes, comments, ratings
	// and profile with it.
	Recipes  []Recipe     `json:"recipes,omitempty" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Comments []Comment    `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Ratings  []Rating     `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Profile  *UserProfile `json:"profile,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
