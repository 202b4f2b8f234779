package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	apperrors "recipebox/internal/errors"
	"recipebox/internal/media"
	"recipebox/internal/model"
	"recipebox/internal/repository"
)

// ErrInvalidPageSize is returned when recipes_per_page is outside its bounds.
var ErrInvalidPageSize = errors.New("recipes per page must be between 6 and 24")

// ErrInvalidTheme is returned when the theme preference is unknown.
var ErrInvalidTheme = errors.New("theme must be auto, light or dark")

// Settings bundles a user with their profile for the settings view.
type Settings struct {
	User    *model.User        `json:"user"`
	Profile *model.UserProfile `json:"profile"`
}

// UpdateSettingsInput carries the editable settings fields.
type UpdateSettingsInput struct {
	FirstName          string
	LastName           string
	Email              string
	Bio                string
	Location           string
	BirthDate          *time.Time
	EmailNotifications bool
	ShowEmail          bool
	RecipesPerPage     int
	ThemePreference    model.ThemePreference
}

// ProfileService handles the settings page: account fields plus the
// lazily-created profile.
type ProfileService interface {
	Get(ctx context.Context, userID uint) (*Settings, error)
	Update(ctx context.Context, userID uint, input UpdateSettingsInput) (*Settings, error)
	UploadAvatar(ctx context.Context, userID uint, data []byte, filename string) (*model.UserProfile, error)
}

type profileService struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	uploader    media.Uploader // nil when media storage is not configured
}

// NewProfileService creates a new profile service.
func NewProfileService(userRepo repository.UserRepository, profileRepo repository.ProfileRepository, uploader media.Uploader) ProfileService {
	return &profileService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		uploader:    uploader,
	}
}

// Get returns the user's settings, creating the profile on first access.
func (s *profileService) Get(ctx context.Context, userID uint) (*Settings, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	profile, err := s.profileRepo.FindByUserIDOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	return &Settings{User: user, Profile: profile}, nil
}

// Update writes the account fields and profile preferences.
func (s *profileService) Update(ctx context.Context, userID uint, input UpdateSettingsInput) (*Settings, error) {
	if input.RecipesPerPage < model.MinRecipesPerPage || input.RecipesPerPage > model.MaxRecipesPerPage {
		return nil, ErrInvalidPageSize
	}
	switch input.ThemePreference {
	case model.ThemeAuto, model.ThemeLight, model.ThemeDark:
	default:
		return nil, ErrInvalidTheme
	}

	settings, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	user := settings.User
	user.FirstName = input.FirstName
	user.LastName = input.LastName
	user.Email = input.Email
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	profile := settings.Profile
	profile.Bio = input.Bio
	profile.Location = input.Location
	profile.BirthDate = input.BirthDate
	profile.EmailNotifications = input.EmailNotifications
	profile.ShowEmail = input.ShowEmail
	profile.RecipesPerPage = input.RecipesPerPage
	profile.ThemePreference = input.ThemePreference
	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	return &Settings{User: user, Profile: profile}, nil
}

// UploadAvatar stores the image bytes and records the URL on the profile.
func (s *profileService) UploadAvatar(ctx context.Context, userID uint, data []byte, filename string) (*model.UserProfile, error) {
	if s.uploader == nil {
		return nil, errors.New("media storage is not configured")
	}

	profile, err := s.profileRepo.FindByUserIDOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	url, err := s.uploader.UploadImage(ctx, data, "avatars", filename)
	if err != nil {
		return nil, fmt.Errorf("upload avatar: %w", err)
	}

	profile.AvatarURL = url
	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	return profile, nil
}
