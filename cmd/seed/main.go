package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"recipebox/internal/config"
	"recipebox/internal/db"
	"recipebox/internal/model"
	"recipebox/internal/repository"
)

type categorySeed struct {
	Name        string
	Description string
}

var defaultCategories = []categorySeed{
	{"Appetizers", "Starters and small bites"},
	{"Main Course", "Primary dishes and entrees"},
	{"Desserts", "Sweet treats and desserts"},
	{"Beverages", "Drinks and cocktails"},
	{"Breakfast", "Morning meals and brunch"},
	{"Lunch", "Midday meals"},
	{"Dinner", "Evening meals"},
	{"Snacks", "Quick bites and snacks"},
	{"Vegetarian", "Plant-based recipes"},
	{"Vegan", "Completely plant-based recipes"},
	{"Gluten-Free", "Recipes without gluten"},
	{"Healthy", "Nutritious and balanced meals"},
	{"Quick & Easy", "Fast recipes under 30 minutes"},
	{"Comfort Food", "Hearty and satisfying dishes"},
	{"International", "Recipes from around the world"},
}

type recipeSeed struct {
	Title        string
	Description  string
	Ingredients  string
	Instructions string
	PrepTime     int
	CookTime     int
	Servings     int
	Category     string
}

var adminRecipes = []recipeSeed{
	{
		Title:       "Classic Spaghetti Carbonara",
		Description: "A traditional Italian pasta dish with eggs, cheese, and pancetta. Simple yet elegant.",
		Ingredients: `400g spaghetti
200g pancetta or guanciale, diced
4 large eggs
100g Pecorino Romano cheese, grated
50g Parmesan cheese, grated
Black pepper, freshly ground
Salt for pasta water`,
		Instructions: `Bring a large pot of salted water to boil and cook spaghetti according to package directions.
While pasta cooks, heat a large skillet over medium heat and cook pancetta until crispy.
In a bowl, whisk together eggs, Pecorino Romano, Parmesan, and plenty of black pepper.
Reserve 1 cup pasta cooking water, then drain pasta.
Add hot pasta to the skillet with pancetta and toss.
Remove from heat and quickly stir in egg mixture, adding pasta water as needed.
Serve immediately with extra cheese and black pepper.`,
		PrepTime: 15,
		CookTime: 20,
		Servings: 4,
		Category: "Main Course",
	},
	{
		Title:       "Decadent Chocolate Lava Cake",
		Description: "Rich, molten chocolate cake with a gooey center. Perfect for special occasions.",
		Ingredients: `100g dark chocolate (70% cocoa)
100g unsalted butter
2 large eggs
2 large egg yolks
60g caster sugar
2 tbsp plain flour
Butter for ramekins
Cocoa powder for dusting
Vanilla ice cream for serving`,
		Instructions: `Preheat oven to 200°C. Butter 4 ramekins and dust with cocoa powder.
Melt chocolate and butter in a double boiler until smooth.
In a bowl, whisk eggs, egg yolks, and sugar until thick and pale.
Fold in melted chocolate mixture, then gently fold in flour.
Divide mixture between ramekins and place on a baking tray.
Bake for 12-14 minutes until edges are firm but centers still jiggle.
Let cool for 1 minute, then run a knife around edges and invert onto plates.
Serve immediately with vanilla ice cream.`,
		PrepTime: 20,
		CookTime: 14,
		Servings: 4,
		Category: "Desserts",
	},
	{
		Title:       "Perfect Fluffy Pancakes",
		Description: "Light, fluffy pancakes that are perfect for weekend breakfast or brunch.",
		Ingredients: `200g plain flour
2 tsp baking powder
1 tsp salt
2 tbsp caster sugar
2 large eggs
300ml whole milk
50g melted butter
1 tsp vanilla extract
Butter for cooking
Maple syrup for serving`,
		Instructions: `In a large bowl, whisk together flour, baking powder, salt, and sugar.
In another bowl, whisk eggs, then add milk, melted butter, and vanilla.
Pour wet ingredients into dry ingredients and stir until just combined (lumps are okay).
Let batter rest for 5 minutes while heating a non-stick pan over medium heat.
Brush pan with butter and pour 1/4 cup batter for each pancake.
Cook until bubbles form on surface and edges look set, about 2-3 minutes.
Flip and cook until golden brown, another 1-2 minutes.
Serve hot with butter and maple syrup.`,
		PrepTime: 10,
		CookTime: 15,
		Servings: 4,
		Category: "Breakfast",
	},
}

func main() {
	log.Println("Starting seed script...")

	_ = godotenv.Load()
	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := db.AutoMigrate(gormDB); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	categoryRepo := repository.NewCategoryRepository(gormDB)
	userRepo := repository.NewUserRepository(gormDB)
	recipeRepo := repository.NewRecipeRepository(gormDB)

	created, err := seedCategories(ctx, categoryRepo)
	if err != nil {
		log.Fatalf("Failed to seed categories: %v", err)
	}
	log.Printf("Categories created: %d", created)

	admin, err := seedAdminUser(ctx, userRepo)
	if err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	created, err = seedAdminRecipes(ctx, gormDB, categoryRepo, recipeRepo, admin)
	if err != nil {
		log.Fatalf("Failed to seed recipes: %v", err)
	}
	log.Printf("Recipes created: %d", created)

	log.Println("Seed completed successfully!")
}

// seedCategories creates the default categories, skipping existing ones.
func seedCategories(ctx context.Context, repo repository.CategoryRepository) (int, error) {
	created := 0
	for _, seed := range defaultCategories {
		_, err := repo.FindByName(ctx, seed.Name)
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return created, err
		}
		if err := repo.Create(ctx, &model.Category{Name: seed.Name, Description: seed.Description}); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

// seedAdminUser creates the demo staff account if it does not exist.
func seedAdminUser(ctx context.Context, repo repository.UserRepository) (*model.User, error) {
	existing, err := repo.FindByUsername(ctx, "admin")
	if err == nil {
		return existing, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
		log.Println("SEED_ADMIN_PASSWORD not set, using default password for admin user")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	admin := &model.User{
		Username:     "admin",
		Email:        "admin@recipebox.local",
		PasswordHash: string(hash),
		IsStaff:      true,
	}
	if err := repo.Create(ctx, admin); err != nil {
		return nil, err
	}
	log.Println("Created admin user")
	return admin, nil
}

// seedAdminRecipes creates the sample approved recipes, matching on title
// so re-runs are no-ops.
func seedAdminRecipes(
	ctx context.Context,
	gormDB *gorm.DB,
	categoryRepo repository.CategoryRepository,
	recipeRepo repository.RecipeRepository,
	admin *model.User,
) (int, error) {
	created := 0
	for _, seed := range adminRecipes {
		var count int64
		if err := gormDB.WithContext(ctx).Model(&model.Recipe{}).
			Where("title = ? AND author_id = ?", seed.Title, admin.ID).
			Count(&count).Error; err != nil {
			return created, err
		}
		if count > 0 {
			continue
		}

		category, err := categoryRepo.FindByName(ctx, seed.Category)
		if err != nil {
			return created, err
		}

		recipe := &model.Recipe{
			Title:        seed.Title,
			Description:  seed.Description,
			Ingredients:  seed.Ingredients,
			Instructions: seed.Instructions,
			PrepTime:     seed.PrepTime,
			CookTime:     seed.CookTime,
			Servings:     seed.Servings,
			CategoryID:   &category.ID,
			AuthorID:     admin.ID,
			Status:       model.RecipeStatusApproved,
		}
		if err := recipeRepo.Create(ctx, recipe); err != nil {
			return created, err
		}
		log.Printf("Created recipe: %s", recipe.Title)
		created++
	}
	return created, nil
}
