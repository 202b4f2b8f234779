package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "recipebox/internal/errors"
	"recipebox/internal/media"
	"recipebox/internal/model"
	"recipebox/internal/service"
)

// RecipeHandler handles recipe browsing, submission and profile listings.
type RecipeHandler struct {
	recipeService  service.RecipeService
	commentService service.CommentService
	ratingService  service.RatingService
	uploader       media.Uploader // nil when media storage is not configured
}

// NewRecipeHandler creates a new recipe handler.
func NewRecipeHandler(
	recipeService service.RecipeService,
	commentService service.CommentService,
	ratingService service.RatingService,
	uploader media.Uploader,
) *RecipeHandler {
	return &RecipeHandler{
		recipeService:  recipeService,
		commentService: commentService,
		ratingService:  ratingService,
		uploader:       uploader,
	}
}

// SubmitRecipeRequest represents a recipe submission. Bound from multipart
// form fields; the image file rides alongside.
type SubmitRecipeRequest struct {
	Title        string `form:"title" validate:"required,max=200"`
	Description  string `form:"description" validate:"required"`
	Ingredients  string `form:"ingredients" validate:"required"`
	Instructions string `form:"instructions" validate:"required"`
	PrepTime     int    `form:"prep_time" validate:"required,min=1"`
	CookTime     int    `form:"cook_time" validate:"required,min=1"`
	Servings     int    `form:"servings" validate:"required,min=1"`
	CategoryID   uint   `form:"category_id" validate:"required"`
}

// RecipeDetailResponse bundles a recipe with its comments and the viewer's
// own rating for the detail view.
type RecipeDetailResponse struct {
	Recipe     *model.Recipe   `json:"recipe"`
	Comments   []model.Comment `json:"comments"`
	UserRating *model.Rating   `json:"user_rating,omitempty"`
}

// Home godoc
// @Summary List, search and filter recipes
// @Tags recipes
// @Produce json
// @Param search query string false "Substring match over title, description, ingredients"
// @Param category query int false "Category ID"
// @Param user_filter query string false "my_recipes to list only own recipes (requires auth)"
// @Param page query int false "Page number, clamped to the valid range"
// @Success 200 {object} service.RecipeListing
// @Failure 500 {object} errors.ErrorResponse
// @Router / [get]
func (h *RecipeHandler) Home(c echo.Context) error {
	viewer := currentViewer(c)

	opts := service.ListOptions{
		Search: c.QueryParam("search"),
		Page:   queryInt(c, "page", 1),
	}
	if categoryID := queryInt(c, "category", 0); categoryID > 0 {
		opts.CategoryID = uint(categoryID)
	}
	if c.QueryParam("user_filter") == "my_recipes" {
		if !viewer.Authenticated() {
			return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
				Error: "login required to filter by your recipes",
				Code:  "LOGIN_REQUIRED",
			})
		}
		opts.OnlyMine = true
	}

	listing, err := h.recipeService.List(c.Request().Context(), viewer, opts)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, listing)
}

// Detail godoc
// @Summary View a recipe with comments and the viewer's rating
// @Tags recipes
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 200 {object} RecipeDetailResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /recipe/{id} [get]
func (h *RecipeHandler) Detail(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid recipe id")
	}
	viewer := currentViewer(c)
	ctx := c.Request().Context()

	recipe, err := h.recipeService.Detail(ctx, viewer, uint(id))
	if err != nil {
		return httpError(err)
	}

	comments, err := h.commentService.ListByRecipe(ctx, recipe.ID)
	if err != nil {
		return httpError(err)
	}

	resp := &RecipeDetailResponse{Recipe: recipe, Comments: comments}
	if viewer.Authenticated() {
		rating, err := h.ratingService.UserRating(ctx, viewer.ID, recipe.ID)
		if err != nil {
			return httpError(err)
		}
		resp.UserRating = rating
	}

	return c.JSON(http.StatusOK, resp)
}

// Submit godoc
// @Summary Submit a recipe for moderation
// @Tags recipes
// @Accept mpfd
// @Produce json
// @Param title formData string true "Title"
// @Param description formData string true "Description"
// @Param ingredients formData string true "Ingredients, one per line"
// @Param instructions formData string true "Instructions"
// @Param prep_time formData int true "Preparation time in minutes"
// @Param cook_time formData int true "Cooking time in minutes"
// @Param servings formData int true "Servings"
// @Param category_id formData int true "Category ID"
// @Param image formData file false "Recipe image"
// @Success 201 {object} model.Recipe
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /submit [post]
func (h *RecipeHandler) Submit(c echo.Context) error {
	viewer := currentViewer(c)

	var req SubmitRecipeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input := service.SubmitRecipeInput{
		Title:        req.Title,
		Description:  req.Description,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
		PrepTime:     req.PrepTime,
		CookTime:     req.CookTime,
		Servings:     req.Servings,
		CategoryID:   req.CategoryID,
	}

	if url, err := h.uploadFormImage(c, "recipe_images"); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: err.Error(),
			Code:  "IMAGE_UPLOAD_FAILED",
		})
	} else {
		input.ImageURL = url
	}

	recipe, err := h.recipeService.Submit(c.Request().Context(), viewer.ID, input)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, recipe)
}

// MyRecipes godoc
// @Summary List own recipes with statistics
// @Tags recipes
// @Produce json
// @Param page query int false "Page number"
// @Success 200 {object} service.AuthorListing
// @Failure 401 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /my-recipes [get]
func (h *RecipeHandler) MyRecipes(c echo.Context) error {
	viewer := currentViewer(c)

	listing, err := h.recipeService.MyRecipes(c.Request().Context(), viewer.ID, queryInt(c, "page", 1))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, listing)
}

// UserProfile godoc
// @Summary Public profile with the user's recipes
// @Tags recipes
// @Produce json
// @Param username path string true "Username"
// @Param page query int false "Page number"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} errors.ErrorResponse
// @Router /user/{username} [get]
func (h *RecipeHandler) UserProfile(c echo.Context) error {
	viewer := currentViewer(c)

	user, listing, err := h.recipeService.UserRecipes(c.Request().Context(), viewer, c.Param("username"), queryInt(c, "page", 1))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"user":       user,
		"recipes":    listing.Recipes,
		"pagination": listing.Pagination,
		"stats":      listing.Stats,
	})
}

// uploadFormImage reads the optional "image" form file and stores it,
// returning the URL. Missing file or unconfigured storage yields "".
func (h *RecipeHandler) uploadFormImage(c echo.Context, folder string) (string, error) {
	if h.uploader == nil {
		return "", nil
	}
	fileHeader, err := c.FormFile("image")
	if err != nil {
		// no file attached
		return "", nil
	}
	file, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	return h.uploader.UploadImage(c.Request().Context(), data, folder, fileHeader.Filename)
}

// queryInt parses an integer query parameter, falling back to def.
func queryInt(c echo.Context, name string, def int) int {
	if v := c.QueryParam(name); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

// httpError maps a domain error onto an echo HTTP error.
func httpError(err error) *echo.HTTPError {
	httpErr := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}
