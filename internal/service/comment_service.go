package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	apperrors "recipebox/internal/errors"
	"recipebox/internal/model"
	"recipebox/internal/repository"
)

// CommentService handles comment submission and listing.
type CommentService interface {
	Add(ctx context.Context, viewer Viewer, recipeID uint, content string) (*model.Comment, error)
	ListByRecipe(ctx context.Context, recipeID uint) ([]model.Comment, error)
}

type commentService struct {
	commentRepo repository.CommentRepository
	recipeRepo  repository.RecipeRepository
}

// NewCommentService creates a new comment service.
func NewCommentService(commentRepo repository.CommentRepository, recipeRepo repository.RecipeRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		recipeRepo:  recipeRepo,
	}
}

// Add creates a new comment on a recipe the viewer can see. Comments always
// create a new row.
func (s *commentService) Add(ctx context.Context, viewer Viewer, recipeID uint, content string) (*model.Comment, error) {
	recipe, err := s.recipeRepo.FindByID(ctx, recipeID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrRecipeNotFound
		}
		return nil, fmt.Errorf("find recipe: %w", err)
	}

	if !viewer.CanView(recipe) {
		return nil, apperrors.ErrRecipeNotAvailable
	}

	comment := &model.Comment{
		RecipeID: recipeID,
		AuthorID: viewer.ID,
		Content:  content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	return comment, nil
}

// ListByRecipe lists a recipe's comments newest first.
func (s *commentService) ListByRecipe(ctx context.Context, recipeID uint) ([]model.Comment, error) {
	comments, err := s.commentRepo.ListByRecipe(ctx, recipeID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}
