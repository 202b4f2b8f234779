package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"recipebox/internal/service"
)

// RatingHandler handles rating submission.
type RatingHandler struct {
	ratingService service.RatingService
}

// NewRatingHandler creates a new rating handler.
func NewRatingHandler(ratingService service.RatingService) *RatingHandler {
	return &RatingHandler{ratingService: ratingService}
}

// RateRequest represents a rating submission.
type RateRequest struct {
	Rating int `json:"rating" validate:"required,min=1,max=5"`
}

// Rate godoc
// @Summary Rate a recipe (1-5); repeat submissions replace the prior rating
// @Tags ratings
// @Accept json
// @Produce json
// @Param id path int true "Recipe ID"
// @Param request body RateRequest true "Rating value"
// @Success 200 {object} model.Rating
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /recipe/{id}/rating [post]
func (h *RatingHandler) Rate(c echo.Context) error {
	recipeID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid recipe id")
	}

	var req RateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	rating, err := h.ratingService.Rate(c.Request().Context(), currentViewer(c), uint(recipeID), req.Rating)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, rating)
}
