package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "recipebox/internal/errors"
	"recipebox/internal/model"
	"recipebox/internal/repository"
)

// RatingService handles rating submission and the derived average.
type RatingService interface {
	// Rate records value as the user's rating for the recipe, replacing
	// any previous rating, and recomputes the recipe's average within
	// the same transaction.
	Rate(ctx context.Context, viewer Viewer, recipeID uint, value int) (*model.Rating, error)
	// UserRating returns the viewer's rating for a recipe, nil if unrated.
	UserRating(ctx context.Context, userID, recipeID uint) (*model.Rating, error)
}

type ratingService struct {
	ratingRepo repository.RatingRepository
}

// NewRatingService creates a new rating service.
func NewRatingService(ratingRepo repository.RatingRepository) RatingService {
	return &ratingService{ratingRepo: ratingRepo}
}

// Rate upserts the (recipe, user) rating and recomputes the recipe's
// average rating atomically. The recipe row is locked for the duration of
// the transaction so concurrent raters on the same recipe serialize;
// raters on different recipes do not block each other.
func (s *ratingService) Rate(ctx context.Context, viewer Viewer, recipeID uint, value int) (*model.Rating, error) {
	if value < 1 || value > 5 {
		return nil, apperrors.ErrInvalidRating
	}

	var rating *model.Rating
	err := s.ratingRepo.WithTransaction(ctx, func(ctx context.Context, txRepo repository.RatingRepository) error {
		recipe, err := txRepo.FindRecipeForUpdate(ctx, recipeID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.ErrRecipeNotFound
			}
			return fmt.Errorf("lock recipe: %w", err)
		}

		if !viewer.CanView(recipe) {
			return apperrors.ErrRecipeNotAvailable
		}

		existing, err := txRepo.FindByRecipeAndUser(ctx, recipeID, viewer.ID)
		if err != nil && err != gorm.ErrRecordNotFound {
			return fmt.Errorf("find rating: %w", err)
		}

		if existing != nil {
			existing.Value = value
			if err := txRepo.Update(ctx, existing); err != nil {
				return fmt.Errorf("update rating: %w", err)
			}
			rating = existing
		} else {
			rating = &model.Rating{
				RecipeID: recipeID,
				UserID:   viewer.ID,
				Value:    value,
			}
			if err := txRepo.Create(ctx, rating); err != nil {
				return fmt.Errorf("create rating: %w", err)
			}
		}

		avg, err := txRepo.AverageForRecipe(ctx, recipeID)
		if err != nil {
			return fmt.Errorf("average rating: %w", err)
		}

		rounded := decimal.NewFromFloat(avg).Round(2)
		if err := txRepo.UpdateRecipeAverage(ctx, recipeID, rounded); err != nil {
			return fmt.Errorf("persist average: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return rating, nil
}

// UserRating returns the user's rating for a recipe, or nil when the user
// has not rated it.
func (s *ratingService) UserRating(ctx context.Context, userID, recipeID uint) (*model.Rating, error) {
	rating, err := s.ratingRepo.FindByRecipeAndUser(ctx, recipeID, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("find rating: %w", err)
	}
	return rating, nil
}
