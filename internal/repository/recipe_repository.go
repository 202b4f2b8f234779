package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"recipebox/internal/model"
)

// ListQuery filters and pages a recipe listing. Listings are always
// ordered newest first.
type ListQuery struct {
	// Visibility scope: approved recipes only, widened to any status for
	// recipes owned by IncludeAuthorID when non-zero, or to everything
	// when AllStatuses is set (staff).
	AllStatuses     bool
	IncludeAuthorID uint

	AuthorID   uint   // restrict to a single author (0 = any)
	Search     string // case-insensitive substring over title, description, ingredients
	CategoryID uint   // exact category (0 = any)

	Page     int
	PageSize int
}

// Pagination describes the page actually served. Out-of-range requests
// are clamped to the nearest valid page rather than erroring.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// ClampPage returns the requested page clamped into [1, totalPages].
func ClampPage(page int, total int64, pageSize int) (int, int) {
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	return page, totalPages
}

// AuthorStats aggregates a single author's recipes.
type AuthorStats struct {
	Total         int64   `json:"total"`
	Approved      int64   `json:"approved"`
	Pending       int64   `json:"pending"`
	Rejected      int64   `json:"rejected"`
	AverageRating float64 `json:"average_rating"` // mean of rated recipes' averages, 0 if none
}

// RecipeRepository defines recipe persistence operations.
type RecipeRepository interface {
	Create(ctx context.Context, recipe *model.Recipe) error
	Update(ctx context.Context, recipe *model.Recipe) error
	FindByID(ctx context.Context, id uint) (*model.Recipe, error)
	List(ctx context.Context, q ListQuery) ([]model.Recipe, Pagination, error)
	UpdateStatusBulk(ctx context.Context, ids []uint, status model.RecipeStatus) (int64, error)
	// StatsByAuthor aggregates an author's recipes; approvedOnly narrows
	// every figure to approved recipes for viewers who cannot see the rest.
	StatsByAuthor(ctx context.Context, authorID uint, approvedOnly bool) (*AuthorStats, error)
}

type recipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new recipe repository.
func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

// Create creates a new recipe.
func (r *recipeRepository) Create(ctx context.Context, recipe *model.Recipe) error {
	return r.db.WithContext(ctx).Create(recipe).Error
}

// Update updates an existing recipe.
func (r *recipeRepository) Update(ctx context.Context, recipe *model.Recipe) error {
	return r.db.WithContext(ctx).Save(recipe).Error
}

// FindByID finds a recipe by ID with its author and category loaded.
func (r *recipeRepository) FindByID(ctx context.Context, id uint) (*model.Recipe, error) {
	var recipe model.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Category").
		Where("id = ?", id).First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// List returns one page of recipes matching the query, newest first.
func (r *recipeRepository) List(ctx context.Context, q ListQuery) ([]model.Recipe, Pagination, error) {
	tx := r.db.WithContext(ctx).Model(&model.Recipe{})

	switch {
	case q.AllStatuses:
		// no status restriction
	case q.IncludeAuthorID != 0:
		tx = tx.Where("status = ? OR author_id = ?", model.RecipeStatusApproved, q.IncludeAuthorID)
	default:
		tx = tx.Where("status = ?", model.RecipeStatusApproved)
	}

	if q.AuthorID != 0 {
		tx = tx.Where("author_id = ?", q.AuthorID)
	}
	if q.CategoryID != 0 {
		tx = tx.Where("category_id = ?", q.CategoryID)
	}
	if q.Search != "" {
		needle := "%" + strings.ToLower(q.Search) + "%"
		tx = tx.Where(
			"LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(ingredients) LIKE ?",
			needle, needle, needle,
		)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, Pagination{}, err
	}

	page, totalPages := ClampPage(q.Page, total, q.PageSize)
	offset := (page - 1) * q.PageSize

	var recipes []model.Recipe
	if err := tx.
		Preload("Author").
		Preload("Category").
		Order("created_at DESC").
		Limit(q.PageSize).
		Offset(offset).
		Find(&recipes).Error; err != nil {
		return nil, Pagination{}, err
	}

	return recipes, Pagination{
		Page:       page,
		PageSize:   q.PageSize,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

// UpdateStatusBulk transitions every listed recipe to the given status and
// returns the number of rows touched.
func (r *recipeRepository) UpdateStatusBulk(ctx context.Context, ids []uint, status model.RecipeStatus) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.Recipe{}).
		Where("id IN ?", ids).
		Update("status", status)
	return result.RowsAffected, result.Error
}

// StatsByAuthor aggregates per-status counts and the mean rating of an
// author's rated recipes. With approvedOnly, unapproved recipes are left
// out of every figure, so total equals the approved count.
func (r *recipeRepository) StatsByAuthor(ctx context.Context, authorID uint, approvedOnly bool) (*AuthorStats, error) {
	stats := &AuthorStats{}

	countQ := r.db.WithContext(ctx).Model(&model.Recipe{}).Where("author_id = ?", authorID)
	avgQ := r.db.WithContext(ctx).Model(&model.Recipe{}).Where("author_id = ? AND average_rating > 0", authorID)
	if approvedOnly {
		countQ = countQ.Where("status = ?", model.RecipeStatusApproved)
		avgQ = avgQ.Where("status = ?", model.RecipeStatusApproved)
	}

	type statusCount struct {
		Status model.RecipeStatus
		N      int64
	}
	var counts []statusCount
	if err := countQ.
		Select("status, COUNT(*) as n").
		Group("status").
		Scan(&counts).Error; err != nil {
		return nil, err
	}
	for _, c := range counts {
		stats.Total += c.N
		switch c.Status {
		case model.RecipeStatusApproved:
			stats.Approved = c.N
		case model.RecipeStatusPending:
			stats.Pending = c.N
		case model.RecipeStatusRejected:
			stats.Rejected = c.N
		}
	}

	var avg struct {
		Average float64
	}
	if err := avgQ.
		Select("COALESCE(AVG(average_rating), 0) as average").
		Scan(&avg).Error; err != nil {
		return nil, err
	}
	stats.AverageRating = avg.Average

	return stats, nil
}
