package handler

import (
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "recipebox/internal/errors"
	"recipebox/internal/model"
	"recipebox/internal/service"
)

// ProfileHandler handles the settings surface.
type ProfileHandler struct {
	profileService service.ProfileService
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// UpdateSettingsRequest represents a settings update.
type UpdateSettingsRequest struct {
	FirstName          string `json:"first_name" validate:"max=30"`
	LastName           string `json:"last_name" validate:"max=30"`
	Email              string `json:"email" validate:"required,email"`
	Bio                string `json:"bio" validate:"max=500"`
	Location           string `json:"location" validate:"max=100"`
	BirthDate          string `json:"birth_date,omitempty"` // YYYY-MM-DD
	EmailNotifications bool   `json:"email_notifications"`
	ShowEmail          bool   `json:"show_email"`
	RecipesPerPage     int    `json:"recipes_per_page" validate:"required,min=6,max=24"`
	ThemePreference    string `json:"theme_preference" validate:"required,oneof=auto light dark"`
}

// Get godoc
// @Summary View own settings (profile created on first access)
// @Tags settings
// @Produce json
// @Success 200 {object} service.Settings
// @Failure 401 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /settings [get]
func (h *ProfileHandler) Get(c echo.Context) error {
	viewer := currentViewer(c)

	settings, err := h.profileService.Get(c.Request().Context(), viewer.ID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, settings)
}

// Update godoc
// @Summary Update account fields and profile preferences
// @Tags settings
// @Accept json
// @Produce json
// @Param request body UpdateSettingsRequest true "Settings"
// @Success 200 {object} service.Settings
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /settings [put]
func (h *ProfileHandler) Update(c echo.Context) error {
	viewer := currentViewer(c)

	var req UpdateSettingsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input := service.UpdateSettingsInput{
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		Email:              req.Email,
		Bio:                req.Bio,
		Location:           req.Location,
		EmailNotifications: req.EmailNotifications,
		ShowEmail:          req.ShowEmail,
		RecipesPerPage:     req.RecipesPerPage,
		ThemePreference:    model.ThemePreference(req.ThemePreference),
	}
	if req.BirthDate != "" {
		birthDate, err := time.Parse("2006-01-02", req.BirthDate)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "birth_date must be YYYY-MM-DD")
		}
		input.BirthDate = &birthDate
	}

	settings, err := h.profileService.Update(c.Request().Context(), viewer.ID, input)
	if err != nil {
		switch err {
		case service.ErrInvalidPageSize, service.ErrInvalidTheme:
			return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
				Error: err.Error(),
				Code:  "INVALID_SETTINGS",
			})
		}
		return httpError(err)
	}
	return c.JSON(http.StatusOK, settings)
}

// UploadAvatar godoc
// @Summary Upload a profile avatar image
// @Tags settings
// @Accept mpfd
// @Produce json
// @Param avatar formData file true "Avatar image"
// @Success 200 {object} model.UserProfile
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /settings/avatar [post]
func (h *ProfileHandler) UploadAvatar(c echo.Context) error {
	viewer := currentViewer(c)

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "avatar file is required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot read avatar file")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot read avatar file")
	}

	profile, err := h.profileService.UploadAvatar(c.Request().Context(), viewer.ID, data, fileHeader.Filename)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, profile)
}
