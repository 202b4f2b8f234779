package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	apperrors "recipebox/internal/errors"
	"recipebox/internal/model"
	"recipebox/internal/repository"
)

// Viewer identifies who is looking. The zero value is an anonymous viewer.
type Viewer struct {
	ID      uint
	IsStaff bool
}

// Authenticated reports whether the viewer is logged in.
func (v Viewer) Authenticated() bool {
	return v.ID != 0
}

// CanView reports whether the viewer may see the recipe. Approved recipes
// are public; anything else is visible to staff and to its author only.
func (v Viewer) CanView(recipe *model.Recipe) bool {
	if recipe.Status == model.RecipeStatusApproved {
		return true
	}
	return v.IsStaff || (v.Authenticated() && v.ID == recipe.AuthorID)
}

// SubmitRecipeInput carries the fields of a new recipe submission.
type SubmitRecipeInput struct {
	Title        string
	Description  string
	Ingredients  string
	Instructions string
	PrepTime     int
	CookTime     int
	Servings     int
	CategoryID   uint
	ImageURL     string
}

// ListOptions filters the home listing.
type ListOptions struct {
	Search     string
	CategoryID uint
	OnlyMine   bool
	Page       int
}

// RecipeListing is one page of recipes.
type RecipeListing struct {
	Recipes    []model.Recipe        `json:"recipes"`
	Pagination repository.Pagination `json:"pagination"`
}

// AuthorListing is one page of a single author's recipes with their stats.
type AuthorListing struct {
	Recipes    []model.Recipe          `json:"recipes"`
	Pagination repository.Pagination   `json:"pagination"`
	Stats      *repository.AuthorStats `json:"stats"`
}

// RecipeService handles submission, browsing and moderation of recipes.
type RecipeService interface {
	Submit(ctx context.Context, authorID uint, input SubmitRecipeInput) (*model.Recipe, error)
	Detail(ctx context.Context, viewer Viewer, id uint) (*model.Recipe, error)
	List(ctx context.Context, viewer Viewer, opts ListOptions) (*RecipeListing, error)
	MyRecipes(ctx context.Context, userID uint, page int) (*AuthorListing, error)
	UserRecipes(ctx context.Context, viewer Viewer, username string, page int) (*model.User, *AuthorListing, error)
	Moderate(ctx context.Context, viewer Viewer, ids []uint, status model.RecipeStatus) (int64, error)
}

type recipeService struct {
	recipeRepo   repository.RecipeRepository
	categoryRepo repository.CategoryRepository
	userRepo     repository.UserRepository

	pageSizeHome  int
	pageSizeOwner int
}

// NewRecipeService creates a new recipe service.
func NewRecipeService(
	recipeRepo repository.RecipeRepository,
	categoryRepo repository.CategoryRepository,
	userRepo repository.UserRepository,
	pageSizeHome, pageSizeOwner int,
) RecipeService {
	return &recipeService{
		recipeRepo:    recipeRepo,
		categoryRepo:  categoryRepo,
		userRepo:      userRepo,
		pageSizeHome:  pageSizeHome,
		pageSizeOwner: pageSizeOwner,
	}
}

// Submit creates a new recipe for moderation. The status is always pending
// regardless of submitted fields.
func (s *recipeService) Submit(ctx context.Context, authorID uint, input SubmitRecipeInput) (*model.Recipe, error) {
	var categoryID *uint
	if input.CategoryID != 0 {
		if _, err := s.categoryRepo.FindByID(ctx, input.CategoryID); err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, apperrors.ErrCategoryNotFound
			}
			return nil, fmt.Errorf("find category: %w", err)
		}
		categoryID = &input.CategoryID
	}

	recipe := &model.Recipe{
		Title:        input.Title,
		Description:  input.Description,
		Ingredients:  input.Ingredients,
		Instructions: input.Instructions,
		PrepTime:     input.PrepTime,
		CookTime:     input.CookTime,
		Servings:     input.Servings,
		ImageURL:     input.ImageURL,
		CategoryID:   categoryID,
		AuthorID:     authorID,
		Status:       model.RecipeStatusPending,
	}

	if err := s.recipeRepo.Create(ctx, recipe); err != nil {
		return nil, fmt.Errorf("create recipe: %w", err)
	}

	return recipe, nil
}

// Detail loads a recipe and applies the visibility policy.
func (s *recipeService) Detail(ctx context.Context, viewer Viewer, id uint) (*model.Recipe, error) {
	recipe, err := s.recipeRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrRecipeNotFound
		}
		return nil, fmt.Errorf("find recipe: %w", err)
	}

	if !viewer.CanView(recipe) {
		return nil, apperrors.ErrRecipeNotAvailable
	}

	return recipe, nil
}

// List serves the home listing: approved recipes, plus the viewer's own of
// any status, optionally narrowed by search, category, or the "my recipes"
// toggle.
func (s *recipeService) List(ctx context.Context, viewer Viewer, opts ListOptions) (*RecipeListing, error) {
	q := repository.ListQuery{
		Search:     opts.Search,
		CategoryID: opts.CategoryID,
		Page:       opts.Page,
		PageSize:   s.pageSizeHome,
	}

	if opts.OnlyMine && viewer.Authenticated() {
		q.AuthorID = viewer.ID
		q.IncludeAuthorID = viewer.ID
	} else if viewer.Authenticated() {
		q.IncludeAuthorID = viewer.ID
	}

	recipes, pagination, err := s.recipeRepo.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}

	return &RecipeListing{Recipes: recipes, Pagination: pagination}, nil
}

// MyRecipes lists the user's own recipes of any status with per-status
// counts and their mean rating.
func (s *recipeService) MyRecipes(ctx context.Context, userID uint, page int) (*AuthorListing, error) {
	recipes, pagination, err := s.recipeRepo.List(ctx, repository.ListQuery{
		AuthorID:        userID,
		IncludeAuthorID: userID,
		Page:            page,
		PageSize:        s.pageSizeOwner,
	})
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}

	stats, err := s.recipeRepo.StatsByAuthor(ctx, userID, false)
	if err != nil {
		return nil, fmt.Errorf("author stats: %w", err)
	}

	return &AuthorListing{Recipes: recipes, Pagination: pagination, Stats: stats}, nil
}

// UserRecipes serves a public profile: the user's approved recipes, or all
// of them when the profile is the viewer's own or the viewer is staff. The
// stats cover the same set the viewer can see, so strangers learn nothing
// about pending or rejected submissions.
func (s *recipeService) UserRecipes(ctx context.Context, viewer Viewer, username string, page int) (*model.User, *AuthorListing, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, apperrors.ErrUserNotFound
		}
		return nil, nil, fmt.Errorf("find user: %w", err)
	}

	ownerView := viewer.IsStaff || viewer.ID == user.ID

	q := repository.ListQuery{
		AuthorID: user.ID,
		Page:     page,
		PageSize: s.pageSizeOwner,
	}
	if ownerView {
		q.IncludeAuthorID = user.ID
	}

	recipes, pagination, err := s.recipeRepo.List(ctx, q)
	if err != nil {
		return nil, nil, fmt.Errorf("list recipes: %w", err)
	}

	stats, err := s.recipeRepo.StatsByAuthor(ctx, user.ID, !ownerView)
	if err != nil {
		return nil, nil, fmt.Errorf("author stats: %w", err)
	}

	return user, &AuthorListing{Recipes: recipes, Pagination: pagination, Stats: stats}, nil
}

// Moderate bulk-transitions recipes to approved or rejected and reports how
// many rows changed. Staff only.
func (s *recipeService) Moderate(ctx context.Context, viewer Viewer, ids []uint, status model.RecipeStatus) (int64, error) {
	if !viewer.IsStaff {
		return 0, apperrors.ErrStaffOnly
	}
	if status != model.RecipeStatusApproved && status != model.RecipeStatusRejected {
		return 0, apperrors.ErrInvalidStatus
	}
	if len(ids) == 0 {
		return 0, nil
	}

	count, err := s.recipeRepo.UpdateStatusBulk(ctx, ids, status)
	if err != nil {
		return 0, fmt.Errorf("update status: %w", err)
	}
	return count, nil
}
