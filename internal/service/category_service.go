package service

import (
	"context"
	"fmt"
	"time"

	"recipebox/internal/cache"
	"recipebox/internal/model"
	"recipebox/internal/repository"
)

const (
	categoryListCacheKey = "categories:list"
	categoryListCacheTTL = 10 * time.Minute
)

// CategoryService serves the category list for the home filter and the
// submission form.
type CategoryService interface {
	List(ctx context.Context) ([]model.Category, error)
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
	cache        *cache.Client
}

// NewCategoryService creates a new category service.
func NewCategoryService(categoryRepo repository.CategoryRepository, cache *cache.Client) CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		cache:        cache,
	}
}

// List returns all categories ordered by name, cached briefly since the
// set changes only when an operator seeds or edits it.
func (s *categoryService) List(ctx context.Context) ([]model.Category, error) {
	var cached []model.Category
	if hit, _ := s.cache.GetJSON(ctx, categoryListCacheKey, &cached); hit {
		return cached, nil
	}

	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	_ = s.cache.SetJSON(ctx, categoryListCacheKey, categories, categoryListCacheTTL)

	return categories, nil
}
