package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "recipebox/internal/errors"
	"recipebox/internal/model"
	"recipebox/internal/repository"
)

// MockRatingRepository is a mock implementation of RatingRepository. Its
// WithTransaction runs the callback against the mock itself.
type MockRatingRepository struct {
	mock.Mock
}

func (m *MockRatingRepository) Create(ctx context.Context, rating *model.Rating) error {
	args := m.Called(ctx, rating)
	return args.Error(0)
}

func (m *MockRatingRepository) Update(ctx context.Context, rating *model.Rating) error {
	args := m.Called(ctx, rating)
	return args.Error(0)
}

func (m *MockRatingRepository) FindByRecipeAndUser(ctx context.Context, recipeID, userID uint) (*model.Rating, error) {
	args := m.Called(ctx, recipeID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Rating), args.Error(1)
}

func (m *MockRatingRepository) FindRecipeForUpdate(ctx context.Context, recipeID uint) (*model.Recipe, error) {
	args := m.Called(ctx, recipeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}

func (m *MockRatingRepository) AverageForRecipe(ctx context.Context, recipeID uint) (float64, error) {
	args := m.Called(ctx, recipeID)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockRatingRepository) CountForRecipe(ctx context.Context, recipeID uint) (int64, error) {
	args := m.Called(ctx, recipeID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRatingRepository) UpdateRecipeAverage(ctx context.Context, recipeID uint, average decimal.Decimal) error {
	args := m.Called(ctx, recipeID, average)
	return args.Error(0)
}

func (m *MockRatingRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo repository.RatingRepository) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx, m)
}

func decimalEq(want string) interface{} {
	target := decimal.RequireFromString(want)
	return mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(target)
	})
}

func TestRatingService_Rate_CreatesAndRecomputes(t *testing.T) {
	mockRepo := new(MockRatingRepository)
	recipe := &model.Recipe{ID: 7, AuthorID: 2, Status: model.RecipeStatusApproved}

	mockRepo.On("WithTransaction", mock.Anything).Return(nil)
	mockRepo.On("FindRecipeForUpdate", mock.Anything, uint(7)).Return(recipe, nil)
	mockRepo.On("FindByRecipeAndUser", mock.Anything, uint(7), uint(1)).Return(nil, gorm.ErrRecordNotFound)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Rating")).Return(nil)
	// three ratings averaging 4.333... must persist as 4.33
	mockRepo.On("AverageForRecipe", mock.Anything, uint(7)).Return(13.0/3.0, nil)
	mockRepo.On("UpdateRecipeAverage", mock.Anything, uint(7), decimalEq("4.33")).Return(nil)

	svc := NewRatingService(mockRepo)
	rating, err := svc.Rate(context.Background(), Viewer{ID: 1}, 7, 5)

	assert.NoError(t, err)
	require.NotNil(t, rating)
	assert.Equal(t, uint(7), rating.RecipeID)
	assert.Equal(t, uint(1), rating.UserID)
	assert.Equal(t, 5, rating.Value)
	mockRepo.AssertExpectations(t)
}

func TestRatingService_Rate_UpdatesExistingRow(t *testing.T) {
	mockRepo := new(MockRatingRepository)
	recipe := &model.Recipe{ID: 7, AuthorID: 2, Status: model.RecipeStatusApproved}
	existing := &model.Rating{ID: 42, RecipeID: 7, UserID: 1, Value: 3}

	mockRepo.On("WithTransaction", mock.Anything).Return(nil)
	mockRepo.On("FindRecipeForUpdate", mock.Anything, uint(7)).Return(recipe, nil)
	mockRepo.On("FindByRecipeAndUser", mock.Anything, uint(7), uint(1)).Return(existing, nil)
	mockRepo.On("Update", mock.Anything, existing).Return(nil)
	mockRepo.On("AverageForRecipe", mock.Anything, uint(7)).Return(5.0, nil)
	mockRepo.On("UpdateRecipeAverage", mock.Anything, uint(7), decimalEq("5")).Return(nil)

	svc := NewRatingService(mockRepo)
	rating, err := svc.Rate(context.Background(), Viewer{ID: 1}, 7, 5)

	assert.NoError(t, err)
	require.NotNil(t, rating)
	assert.Equal(t, uint(42), rating.ID, "repeat submission must reuse the existing row")
	assert.Equal(t, 5, rating.Value)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	mockRepo.AssertExpectations(t)
}

func TestRatingService_Rate_Errors(t *testing.T) {
	tests := []struct {
		name          string
		viewer        Viewer
		value         int
		setupMock     func(*MockRatingRepository)
		expectedError error
	}{
		{
			name:          "value below range",
			viewer:        Viewer{ID: 1},
			value:         0,
			setupMock:     func(m *MockRatingRepository) {},
			expectedError: apperrors.ErrInvalidRating,
		},
		{
			name:          "value above range",
			viewer:        Viewer{ID: 1},
			value:         6,
			setupMock:     func(m *MockRatingRepository) {},
			expectedError: apperrors.ErrInvalidRating,
		},
		{
			name:   "recipe not found",
			viewer: Viewer{ID: 1},
			value:  4,
			setupMock: func(m *MockRatingRepository) {
				m.On("WithTransaction", mock.Anything).Return(nil)
				m.On("FindRecipeForUpdate", mock.Anything, uint(7)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrRecipeNotFound,
		},
		{
			name:   "pending recipe hidden from a stranger",
			viewer: Viewer{ID: 1},
			value:  4,
			setupMock: func(m *MockRatingRepository) {
				m.On("WithTransaction", mock.Anything).Return(nil)
				m.On("FindRecipeForUpdate", mock.Anything, uint(7)).
					Return(&model.Recipe{ID: 7, AuthorID: 99, Status: model.RecipeStatusPending}, nil)
			},
			expectedError: apperrors.ErrRecipeNotAvailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockRatingRepository)
			tt.setupMock(mockRepo)

			svc := NewRatingService(mockRepo)
			rating, err := svc.Rate(context.Background(), tt.viewer, 7, tt.value)

			assert.ErrorIs(t, err, tt.expectedError)
			assert.Nil(t, rating)
			mockRepo.AssertExpectations(t)
		})
	}
}

// The end-to-end shape of the invariant: after every write the stored
// average equals the rounded mean of the current rating rows.
func TestRatingService_Rate_AgainstDatabase(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Category{}, &model.Recipe{}, &model.Rating{}))

	author := &model.User{Username: "author", Email: "author@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(author).Error)
	alice := &model.User{Username: "alice", Email: "alice@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(alice).Error)
	bob := &model.User{Username: "bob", Email: "bob@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(bob).Error)

	recipe := &model.Recipe{
		Title: "Lava Cake", Description: "d", Ingredients: "i", Instructions: "s",
		PrepTime: 1, CookTime: 1, Servings: 1,
		AuthorID: author.ID, Status: model.RecipeStatusApproved,
	}
	require.NoError(t, db.Create(recipe).Error)

	svc := NewRatingService(repository.NewRatingRepository(db))
	ctx := context.Background()

	// Alice rates 3, then changes her mind to 5: one row, latest value only
	_, err = svc.Rate(ctx, Viewer{ID: alice.ID}, recipe.ID, 3)
	require.NoError(t, err)
	_, err = svc.Rate(ctx, Viewer{ID: alice.ID}, recipe.ID, 5)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&model.Rating{}).
		Where("recipe_id = ? AND user_id = ?", recipe.ID, alice.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var got model.Recipe
	require.NoError(t, db.First(&got, recipe.ID).Error)
	assert.True(t, got.AverageRating.Equal(decimal.RequireFromString("5")),
		"average %s should reflect only the latest value", got.AverageRating)

	// Bob adds a 4: average becomes 4.50
	_, err = svc.Rate(ctx, Viewer{ID: bob.ID}, recipe.ID, 4)
	require.NoError(t, err)

	require.NoError(t, db.First(&got, recipe.ID).Error)
	assert.True(t, got.AverageRating.Equal(decimal.RequireFromString("4.5")),
		"average %s should be the rounded mean of 5 and 4", got.AverageRating)
}

func TestRatingService_UserRating(t *testing.T) {
	mockRepo := new(MockRatingRepository)
	mockRepo.On("FindByRecipeAndUser", mock.Anything, uint(7), uint(1)).Return(nil, gorm.ErrRecordNotFound)

	svc := NewRatingService(mockRepo)
	rating, err := svc.UserRating(context.Background(), 1, 7)

	assert.NoError(t, err)
	assert.Nil(t, rating, "unrated recipe yields nil, not an error")
	mockRepo.AssertExpectations(t)
}
