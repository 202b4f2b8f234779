package repository

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"recipebox/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.UserProfile{},
		&model.Category{},
		&model.Recipe{},
		&model.Comment{},
		&model.Rating{},
	))
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string, staff bool) *model.User {
	t.Helper()
	user := &model.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		IsStaff:      staff,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createRecipe(t *testing.T, db *gorm.DB, author *model.User, title string, status model.RecipeStatus) *model.Recipe {
	t.Helper()
	recipe := &model.Recipe{
		Title:        title,
		Description:  "a dish",
		Ingredients:  "salt\npepper",
		Instructions: "mix",
		PrepTime:     10,
		CookTime:     20,
		Servings:     4,
		AuthorID:     author.ID,
		Status:       status,
	}
	require.NoError(t, db.Create(recipe).Error)
	return recipe
}

func TestRecipeRepository_List_VisibilityScopes(t *testing.T) {
	db := newTestDB(t)
	repo := NewRecipeRepository(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice", false)
	bob := createUser(t, db, "bob", false)
	createRecipe(t, db, alice, "Approved Soup", model.RecipeStatusApproved)
	createRecipe(t, db, alice, "Pending Pie", model.RecipeStatusPending)
	createRecipe(t, db, bob, "Rejected Roast", model.RecipeStatusRejected)

	// Anonymous scope: approved only
	recipes, page, err := repo.List(ctx, ListQuery{Page: 1, PageSize: 9})
	assert.NoError(t, err)
	assert.Len(t, recipes, 1)
	assert.Equal(t, "Approved Soup", recipes[0].Title)
	assert.Equal(t, int64(1), page.Total)

	// Authenticated scope: approved plus own recipes of any status
	recipes, _, err = repo.List(ctx, ListQuery{IncludeAuthorID: alice.ID, Page: 1, PageSize: 9})
	assert.NoError(t, err)
	assert.Len(t, recipes, 2)
	for _, r := range recipes {
		assert.NotEqual(t, "Rejected Roast", r.Title)
	}

	// Staff scope: everything
	recipes, _, err = repo.List(ctx, ListQuery{AllStatuses: true, Page: 1, PageSize: 9})
	assert.NoError(t, err)
	assert.Len(t, recipes, 3)
}

func TestRecipeRepository_List_Search(t *testing.T) {
	db := newTestDB(t)
	repo := NewRecipeRepository(db)
	ctx := context.Background()

	author := createUser(t, db, "carol", false)
	createRecipe(t, db, author, "Decadent Chocolate Lava Cake", model.RecipeStatusApproved)
	createRecipe(t, db, author, "Greek Salad", model.RecipeStatusApproved)

	// Case-insensitive substring over the title
	recipes, _, err := repo.List(ctx, ListQuery{Search: "choco", Page: 1, PageSize: 9})
	assert.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Decadent Chocolate Lava Cake", recipes[0].Title)

	// Ingredients are searched too
	recipes, _, err = repo.List(ctx, ListQuery{Search: "PEPPER", Page: 1, PageSize: 9})
	assert.NoError(t, err)
	assert.Len(t, recipes, 2)

	// No matches is an empty page, not an error
	recipes, page, err := repo.List(ctx, ListQuery{Search: "xyz123", Page: 1, PageSize: 9})
	assert.NoError(t, err)
	assert.Empty(t, recipes)
	assert.Equal(t, int64(0), page.Total)
	assert.Equal(t, 1, page.Page)
}

func TestRecipeRepository_List_CategoryFilter(t *testing.T) {
	db := newTestDB(t)
	repo := NewRecipeRepository(db)
	ctx := context.Background()

	author := createUser(t, db, "dave", false)
	category := &model.Category{Name: "Desserts", Description: "Sweet treats"}
	require.NoError(t, db.Create(category).Error)

	inCategory := createRecipe(t, db, author, "Tiramisu", model.RecipeStatusApproved)
	require.NoError(t, db.Model(inCategory).Update("category_id", category.ID).Error)
	createRecipe(t, db, author, "Beef Stew", model.RecipeStatusApproved)

	recipes, _, err := repo.List(ctx, ListQuery{CategoryID: category.ID, Page: 1, PageSize: 9})
	assert.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Tiramisu", recipes[0].Title)
}

func TestRecipeRepository_List_PageClamping(t *testing.T) {
	db := newTestDB(t)
	repo := NewRecipeRepository(db)
	ctx := context.Background()

	author := createUser(t, db, "erin", false)
	for i := 0; i < 11; i++ {
		createRecipe(t, db, author, "Recipe "+string(rune('A'+i)), model.RecipeStatusApproved)
	}

	// 11 recipes at page size 9 is 2 pages; page 999 clamps to page 2
	recipes, page, err := repo.List(ctx, ListQuery{Page: 999, PageSize: 9})
	assert.NoError(t, err)
	assert.Len(t, recipes, 2)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, int64(11), page.Total)

	// Page 0 and negatives clamp up to 1
	recipes, page, err = repo.List(ctx, ListQuery{Page: -5, PageSize: 9})
	assert.NoError(t, err)
	assert.Len(t, recipes, 9)
	assert.Equal(t, 1, page.Page)
}

func TestRecipeRepository_UpdateStatusBulk(t *testing.T) {
	db := newTestDB(t)
	repo := NewRecipeRepository(db)
	ctx := context.Background()

	author := createUser(t, db, "frank", false)
	first := createRecipe(t, db, author, "First", model.RecipeStatusPending)
	second := createRecipe(t, db, author, "Second", model.RecipeStatusPending)
	untouched := createRecipe(t, db, author, "Third", model.RecipeStatusPending)

	count, err := repo.UpdateStatusBulk(ctx, []uint{first.ID, second.ID}, model.RecipeStatusApproved)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), count)

	var got model.Recipe
	require.NoError(t, db.First(&got, untouched.ID).Error)
	assert.Equal(t, model.RecipeStatusPending, got.Status)

	var updated model.Recipe
	require.NoError(t, db.First(&updated, first.ID).Error)
	assert.Equal(t, model.RecipeStatusApproved, updated.Status)
}

func TestRecipeRepository_StatsByAuthor(t *testing.T) {
	db := newTestDB(t)
	repo := NewRecipeRepository(db)
	ctx := context.Background()

	author := createUser(t, db, "grace", false)
	createRecipe(t, db, author, "A", model.RecipeStatusApproved)
	createRecipe(t, db, author, "B", model.RecipeStatusApproved)
	createRecipe(t, db, author, "C", model.RecipeStatusPending)
	createRecipe(t, db, author, "D", model.RecipeStatusRejected)

	stats, err := repo.StatsByAuthor(ctx, author.ID, false)
	assert.NoError(t, err)
	assert.Equal(t, int64(4), stats.Total)
	assert.Equal(t, int64(2), stats.Approved)
	assert.Equal(t, int64(1), stats.Pending)
	assert.Equal(t, int64(1), stats.Rejected)
	assert.Zero(t, stats.AverageRating)

	visible, err := repo.StatsByAuthor(ctx, author.ID, true)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), visible.Total)
	assert.Equal(t, int64(2), visible.Approved)
	assert.Zero(t, visible.Pending)
	assert.Zero(t, visible.Rejected)
}

func TestClampPage(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		total      int64
		pageSize   int
		wantPage   int
		wantPages  int
	}{
		{"within range", 2, 20, 9, 2, 3},
		{"past the end", 999, 11, 9, 2, 2},
		{"zero page", 0, 11, 9, 1, 2},
		{"negative page", -1, 11, 9, 1, 2},
		{"empty result", 5, 0, 9, 1, 1},
		{"exact multiple", 2, 18, 9, 2, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, totalPages := ClampPage(tt.page, tt.total, tt.pageSize)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantPages, totalPages)
		})
	}
}
