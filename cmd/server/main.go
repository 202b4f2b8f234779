package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"recipebox/internal/auth"
	"recipebox/internal/cache"
	"recipebox/internal/config"
	"recipebox/internal/db"
	"recipebox/internal/handler"
	"recipebox/internal/media"
	"recipebox/internal/repository"
	"recipebox/internal/router"
	"recipebox/internal/service"
)

// @title RecipeBox API
// @version 1.0
// @description Recipe sharing service with moderated submissions, comments and ratings.
// @host localhost:8080
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := db.AutoMigrate(gormDB); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Media storage is optional; without it image fields stay empty
	var uploader media.Uploader
	if cfg.CloudinaryURL != "" {
		cloudinaryUploader, err := media.NewCloudinaryUploader(cfg.CloudinaryURL)
		if err != nil {
			log.Fatalf("cloudinary init: %v", err)
		}
		uploader = cloudinaryUploader
	} else {
		log.Println("CLOUDINARY_URL not set, image uploads disabled")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	profileRepo := repository.NewProfileRepository(gormDB)
	categoryRepo := repository.NewCategoryRepository(gormDB)
	recipeRepo := repository.NewRecipeRepository(gormDB)
	commentRepo := repository.NewCommentRepository(gormDB)
	ratingRepo := repository.NewRatingRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	recipeService := service.NewRecipeService(recipeRepo, categoryRepo, userRepo, cfg.PageSizeHome, cfg.PageSizeOwner)
	commentService := service.NewCommentService(commentRepo, recipeRepo)
	ratingService := service.NewRatingService(ratingRepo)
	profileService := service.NewProfileService(userRepo, profileRepo, uploader)
	categoryService := service.NewCategoryService(categoryRepo, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	recipeHandler := handler.NewRecipeHandler(recipeService, commentService, ratingService, uploader)
	commentHandler := handler.NewCommentHandler(commentService)
	ratingHandler := handler.NewRatingHandler(ratingService)
	profileHandler := handler.NewProfileHandler(profileService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	adminHandler := handler.NewAdminHandler(recipeService)

	// Register routes
	router.Register(
		e,
		jwtService,
		authHandler,
		recipeHandler,
		commentHandler,
		ratingHandler,
		profileHandler,
		categoryHandler,
		adminHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
