package model

import "time"

// ThemePreference is the UI theme stored on a profile.
type ThemePreference string

const (
	ThemeAuto  ThemePreference = "auto"
	ThemeLight ThemePreference = "light"
	ThemeDark  ThemePreference = "dark"
)

// Profile page-size preference bounds.
const (
	MinRecipesPerPage = 6
	MaxRecipesPerPage = 24
)

// UserProfile is the one-to-one extension of a user, created lazily on
// first settings access.
type UserProfile struct {
	ID                 uint            `json:"id" gorm:"primaryKey"`
	UserID             uint            `json:"user_id" gorm:"uniqueIndex;not null"`
	Bio                string          `json:"bio" gorm:"size:500"`
	Location           string          `json:"location" gorm:"size:100"`
	BirthDate          *time.Time      `json:"birth_date,omitempty"`
	AvatarURL          string          `json:"avatar_url,omitempty" gorm:"size:500"`
	EmailNotifications bool            `json:"email_notifications" gorm:"default:true"`
	ShowEmail          bool            `json:"show_email" gorm:"default:false"`
	RecipesPerPage     int             `json:"recipes_per_page" gorm:"default:9"`
	ThemePreference    ThemePreference `json:"theme_preference" gorm:"type:varchar(10);default:'auto'"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID"`
}
