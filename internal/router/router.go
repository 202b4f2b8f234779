package router

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"recipebox/internal/auth"
	apperrors "recipebox/internal/errors"
	"recipebox/internal/handler"
	"recipebox/internal/service"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	jwtService *auth.JWTService,
	authHandler *handler.AuthHandler,
	recipeHandler *handler.RecipeHandler,
	commentHandler *handler.CommentHandler,
	ratingHandler *handler.RatingHandler,
	profileHandler *handler.ProfileHandler,
	categoryHandler *handler.CategoryHandler,
	adminHandler *handler.AdminHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Account lifecycle
	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login)
	e.POST("/logout", authHandler.Logout)
	e.POST("/auth/refresh", authHandler.Refresh)

	// Public browsing; identity is picked up when a token is present so
	// listings can include the viewer's own unapproved recipes.
	browse := e.Group("", OptionalAuth(jwtService))
	browse.GET("/", recipeHandler.Home)
	browse.GET("/recipe/:id", recipeHandler.Detail)
	browse.GET("/user/:username", recipeHandler.UserProfile)
	browse.GET("/categories", categoryHandler.List)

	// Secured routes (require JWT authentication)
	jwtMiddleware := echojwt.WithConfig(echojwt.Config{
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return jwtService.ValidateToken(token)
		},
	})

	secured := e.Group("", jwtMiddleware)
	secured.POST("/submit", recipeHandler.Submit)
	secured.GET("/my-recipes", recipeHandler.MyRecipes)
	secured.POST("/recipe/:id/comments", commentHandler.Create)
	secured.POST("/recipe/:id/rating", ratingHandler.Rate)
	secured.GET("/settings", profileHandler.Get)
	secured.PUT("/settings", profileHandler.Update)
	secured.POST("/settings/avatar", profileHandler.UploadAvatar)

	// Moderation routes (staff only)
	admin := e.Group("/admin", jwtMiddleware, RequireStaff)
	admin.POST("/recipes/status", adminHandler.Moderate)
}

// OptionalAuth resolves the viewer from a Bearer token when one is present.
// Invalid or missing tokens fall through as anonymous.
func OptionalAuth(jwtService *auth.JWTService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if token, ok := strings.CutPrefix(header, "Bearer "); ok {
				if claims, err := jwtService.ValidateToken(token); err == nil {
					c.Set(handler.ViewerContextKey, service.Viewer{
						ID:      claims.UserID,
						IsStaff: claims.IsStaff,
					})
				}
			}
			return next(c)
		}
	}
}

// RequireStaff rejects authenticated non-staff users.
func RequireStaff(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := c.Get("user").(*auth.Claims)
		if !ok || !claims.IsStaff {
			return echo.NewHTTPError(http.StatusForbidden, apperrors.ErrorResponse{
				Error: apperrors.ErrStaffOnly.Error(),
				Code:  "STAFF_ONLY",
			})
		}
		return next(c)
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
