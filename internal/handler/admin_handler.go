package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"recipebox/internal/model"
	"recipebox/internal/service"
)

// AdminHandler handles the moderation surface.
type AdminHandler struct {
	recipeService service.RecipeService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(recipeService service.RecipeService) *AdminHandler {
	return &AdminHandler{recipeService: recipeService}
}

// ModerateRequest represents a bulk approve/reject action.
type ModerateRequest struct {
	RecipeIDs []uint `json:"recipe_ids" validate:"required,min=1"`
	Status    string `json:"status" validate:"required,oneof=approved rejected"`
}

// ModerateResponse reports how many recipes were transitioned.
type ModerateResponse struct {
	Updated int64  `json:"updated"`
	Status  string `json:"status"`
}

// Moderate godoc
// @Summary Bulk approve or reject recipes
// @Tags admin
// @Accept json
// @Produce json
// @Param request body ModerateRequest true "Recipe IDs and target status"
// @Success 200 {object} ModerateResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /admin/recipes/status [post]
func (h *AdminHandler) Moderate(c echo.Context) error {
	var req ModerateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	count, err := h.recipeService.Moderate(c.Request().Context(), currentViewer(c), req.RecipeIDs, model.RecipeStatus(req.Status))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, ModerateResponse{Updated: count, Status: req.Status})
}
