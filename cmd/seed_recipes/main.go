package main

import (
	"context"
	"errors"
	"flag"
	"log"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/pageza/recipe-api/backend/config"
	"github.com/pageza/recipe-api/backend/internal/database"
	"github.com/pageza/recipe-api/backend/internal/logging"
	"github.com/pageza/recipe-api/backend/internal/models"
	"github.com/pageza/recipe-api/backend/internal/service"
	"github.com/pageza/recipe-api/backend/internal/storage"
	"github.com/pageza/recipe-api/backend/internal/types"
)

type seedRecipe struct {
	Title       string
	Minutes     int
	Price       string
	Link        string
	Description string
	Tags        []string
	Ingredients []string
}

var demoRecipes = []seedRecipe{
	{
		Title:       "Thai Prawn Curry",
		Minutes:     30,
		Price:       "7.50",
		Description: "Fragrant red curry with prawns and coconut milk.",
		Tags:        []string{"Thai", "Dinner"},
		Ingredients: []string{"Prawns", "Coconut Milk", "Red Curry Paste", "Fish Sauce"},
	},
	{
		Title:       "Avocado Lime Cheesecake",
		Minutes:     60,
		Price:       "20.00",
		Description: "No-bake vegan cheesecake.",
		Tags:        []string{"Vegan", "Dessert"},
		Ingredients: []string{"Avocado", "Lime", "Cashews"},
	},
	{
		Title:       "Porridge",
		Minutes:     10,
		Price:       "1.25",
		Link:        "https://example.com/porridge",
		Tags:        []string{"Breakfast", "Vegan"},
		Ingredients: []string{"Oats", "Oat Milk"},
	},
	{
		Title:       "Chicken Cacciatore",
		Minutes:     75,
		Price:       "9.80",
		Description: "Hunter-style braised chicken.",
		Tags:        []string{"Italian", "Dinner"},
		Ingredients: []string{"Chicken", "Tomatoes", "Garlic", "Olives"},
	},
	{
		Title:       "Red Lentil Daal",
		Minutes:     40,
		Price:       "3.10",
		Tags:        []string{"Indian", "Vegan", "Dinner"},
		Ingredients: []string{"Red Lentils", "Garlic", "Turmeric"},
	},
}

func main() {
	email := flag.String("email", "demo@example.com", "owner of the seeded recipes")
	password := flag.String("password", "demopass123", "password used when the owner is created")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger := logging.MustNew(cfg.Environment, cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	db, err := database.New(cfg, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	ctx := context.Background()
	store, err := storage.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to create file store", zap.Error(err))
	}

	auth := service.NewAuthService(db, cfg.JWTSecret, cfg.TokenTTL, logger)
	recipes := service.NewRecipeService(db, service.NewImageService(store, logger), logger)

	owner, err := auth.CreateUser(ctx, *email, *password, "Demo User")
	var verr *types.ValidationError
	if errors.As(err, &verr) {
		// Already seeded once; reuse the account.
		var existing models.User
		if err := db.Where("email = ?", models.NormalizeEmail(*email)).First(&existing).Error; err != nil {
			logger.Fatal("failed to load demo user", zap.Error(err))
		}
		owner = &existing
	} else if err != nil {
		logger.Fatal("failed to create demo user", zap.Error(err))
	}

	created := 0
	for _, r := range demoRecipes {
		price := decimal.RequireFromString(r.Price)
		title, minutes, link, description := r.Title, r.Minutes, r.Link, r.Description
		tags := named(r.Tags)
		ingredients := named(r.Ingredients)

		_, err := recipes.CreateRecipe(ctx, owner.ID, &types.RecipeRequest{
			Title:       &title,
			TimeMinutes: &minutes,
			Price:       &price,
			Link:        &link,
			Description: &description,
			Tags:        &tags,
			Ingredients: &ingredients,
		})
		if err != nil {
			logger.Error("failed to create recipe", zap.String("title", r.Title), zap.Error(err))
			continue
		}
		created++
	}

	logger.Info("seeding complete",
		zap.String("owner", owner.Email),
		zap.Int("recipes", created),
	)
}

func named(names []string) []types.NamedRequest {
	out := make([]types.NamedRequest, 0, len(names))
	for _, n := range names {
		out = append(out, types.NamedRequest{Name: n})
	}
	return out
}
