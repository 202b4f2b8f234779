package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"recipebox/internal/model"
)

// RatingRepository defines rating persistence operations. The write path
// (find, create-or-save, recompute recipe average) runs inside
// WithTransaction so concurrent raters on the same recipe serialize; the
// recipe row lock scopes that serialization to one recipe.
type RatingRepository interface {
	Create(ctx context.Context, rating *model.Rating) error
	Update(ctx context.Context, rating *model.Rating) error
	FindByRecipeAndUser(ctx context.Context, recipeID, userID uint) (*model.Rating, error)
	FindRecipeForUpdate(ctx context.Context, recipeID uint) (*model.Recipe, error)
	AverageForRecipe(ctx context.Context, recipeID uint) (float64, error)
	CountForRecipe(ctx context.Context, recipeID uint) (int64, error)
	UpdateRecipeAverage(ctx context.Context, recipeID uint, average decimal.Decimal) error
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo RatingRepository) error) error
}

type ratingRepository struct {
	db *gorm.DB
}

// NewRatingRepository creates a new rating repository.
func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

// Create creates a new rating.
func (r *ratingRepository) Create(ctx context.Context, rating *model.Rating) error {
	return r.db.WithContext(ctx).Create(rating).Error
}

// Update updates an existing rating.
func (r *ratingRepository) Update(ctx context.Context, rating *model.Rating) error {
	return r.db.WithContext(ctx).Save(rating).Error
}

// FindByRecipeAndUser finds the single rating a user holds on a recipe.
func (r *ratingRepository) FindByRecipeAndUser(ctx context.Context, recipeID, userID uint) (*model.Rating, error) {
	var rating model.Rating
	if err := r.db.WithContext(ctx).
		Where("recipe_id = ? AND user_id = ?", recipeID, userID).
		First(&rating).Error; err != nil {
		return nil, err
	}
	return &rating, nil
}

// FindRecipeForUpdate finds a recipe by ID, holding a FOR UPDATE row lock
// until the surrounding transaction ends. SQLite has no FOR UPDATE; its
// database-level writer lock serializes the same writes, so the clause is
// skipped there.
func (r *ratingRepository) FindRecipeForUpdate(ctx context.Context, recipeID uint) (*model.Recipe, error) {
	tx := r.db.WithContext(ctx)
	if r.db.Dialector.Name() != "sqlite" {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var recipe model.Recipe
	if err := tx.Where("id = ?", recipeID).First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// AverageForRecipe computes the mean rating over all of a recipe's ratings,
// 0 when none exist.
func (r *ratingRepository) AverageForRecipe(ctx context.Context, recipeID uint) (float64, error) {
	var avg struct {
		Average float64
	}
	if err := r.db.WithContext(ctx).Model(&model.Rating{}).
		Select("COALESCE(AVG(rating), 0) as average").
		Where("recipe_id = ?", recipeID).
		Scan(&avg).Error; err != nil {
		return 0, err
	}
	return avg.Average, nil
}

// CountForRecipe counts a recipe's ratings.
func (r *ratingRepository) CountForRecipe(ctx context.Context, recipeID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Rating{}).
		Where("recipe_id = ?", recipeID).Count(&count).Error
	return count, err
}

// UpdateRecipeAverage persists a recipe's derived average rating.
func (r *ratingRepository) UpdateRecipeAverage(ctx context.Context, recipeID uint, average decimal.Decimal) error {
	return r.db.WithContext(ctx).Model(&model.Recipe{}).
		Where("id = ?", recipeID).
		Update("average_rating", average).Error
}

// WithTransaction executes a function within a database transaction.
func (r *ratingRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo RatingRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &ratingRepository{db: tx}
		return fn(ctx, txRepo)
	})
}
