package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrRecipeNotFound is returned when a recipe does not exist.
	ErrRecipeNotFound = errors.New("recipe not found")
	// ErrRecipeNotAvailable is returned when a recipe exists but is not visible to the viewer.
	ErrRecipeNotAvailable = errors.New("this recipe is not available")
	// ErrUserNotFound is returned when a user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrCategoryNotFound is returned when a category does not exist.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrInvalidRating is returned when a rating value is outside 1-5.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
	// ErrInvalidStatus is returned when a moderation target status is not approved/rejected.
	ErrInvalidStatus = errors.New("status must be approved or rejected")
	// ErrStaffOnly is returned when a non-staff user attempts a moderation action.
	ErrStaffOnly = errors.New("staff access required")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch err {
	case ErrRecipeNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "RECIPE_NOT_FOUND")
	case ErrRecipeNotAvailable:
		return NewHTTPError(http.StatusForbidden, err.Error(), "RECIPE_NOT_AVAILABLE")
	case ErrUserNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case ErrCategoryNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "CATEGORY_NOT_FOUND")
	case ErrInvalidRating:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_RATING")
	case ErrInvalidStatus:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_STATUS")
	case ErrStaffOnly:
		return NewHTTPError(http.StatusForbidden, err.Error(), "STAFF_ONLY")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
