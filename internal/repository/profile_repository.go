package repository

import (
	"context"

	"gorm.io/gorm"

	"recipebox/internal/model"
)

// ProfileRepository defines user profile persistence operations.
type ProfileRepository interface {
	Create(ctx context.Context, profile *model.UserProfile) error
	Update(ctx context.Context, profile *model.UserProfile) error
	FindByUserID(ctx context.Context, userID uint) (*model.UserProfile, error)
	FindByUserIDOrCreate(ctx context.Context, userID uint) (*model.UserProfile, error)
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// Create creates a new profile.
func (r *profileRepository) Create(ctx context.Context, profile *model.UserProfile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

// Update updates an existing profile.
func (r *profileRepository) Update(ctx context.Context, profile *model.UserProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

// FindByUserID finds the profile owned by a user.
func (r *profileRepository) FindByUserID(ctx context.Context, userID uint) (*model.UserProfile, error) {
	var profile model.UserProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// FindByUserIDOrCreate returns the user's profile, creating a default one
// on first access.
func (r *profileRepository) FindByUserIDOrCreate(ctx context.Context, userID uint) (*model.UserProfile, error) {
	var existing model.UserProfile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	profile := &model.UserProfile{
		UserID:             userID,
		EmailNotifications: true,
		RecipesPerPage:     9,
		ThemePreference:    model.ThemeAuto,
	}
	if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}
