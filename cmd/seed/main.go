// seed bootstraps a fresh database: one admin account plus the starter
// categories and a few products so the storefront is browsable right away.
//
// Usage: go run ./cmd/seed
// Admin credentials come from SEED_ADMIN_EMAIL / SEED_ADMIN_PASSWORD
// (defaults: admin@arudhrafashions.in / change-me-now).
package main

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/AnnapuraniA/Arudhra-Fashions/internal/domain/entity"
	"github.com/AnnapuraniA/Arudhra-Fashions/internal/infrastructure/postgres"
	"github.com/AnnapuraniA/Arudhra-Fashions/pkg/config"
	"github.com/AnnapuraniA/Arudhra-Fashions/pkg/logger"
	"github.com/AnnapuraniA/Arudhra-Fashions/pkg/slug"
)

type seedProduct struct {
	category string
	name     string
	price    string
	taxRate  string
	sizes    []string
	colors   []string
	stock    int
}

var seedCategories = []string{"Sarees", "Kurtis", "Lehengas", "Dress Materials"}

var seedProducts = []seedProduct{
	{"Sarees", "Kanchipuram Silk Saree", "4999", "0.05", nil, []string{"Maroon", "Gold"}, 12},
	{"Sarees", "Soft Cotton Saree", "1299", "0.05", nil, []string{"Teal", "Mustard"}, 30},
	{"Kurtis", "Anarkali Kurti", "899", "0.05", []string{"S", "M", "L", "XL"}, []string{"Navy", "Pink"}, 40},
	{"Kurtis", "Straight Cut Kurti", "649", "0.05", []string{"M", "L", "XL"}, []string{"White", "Green"}, 25},
	{"Lehengas", "Bridal Lehenga Set", "12999", "0.12", []string{"Free"}, []string{"Red"}, 5},
	{"Dress Materials", "Chudidhar Material Set", "799", "0.05", nil, []string{"Lavender", "Peach"}, 50},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)

	// Admin account, skipped when the email is already registered.
	email := envOr("SEED_ADMIN_EMAIL", "admin@arudhrafashions.in")
	if existing, _ := userRepo.FindByEmail(email); existing == nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(envOr("SEED_ADMIN_PASSWORD", "change-me-now")), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal().Err(err).Msg("hash admin password")
		}
		now := time.Now()
		admin := &entity.User{
			ID:           uuid.New().String(),
			Name:         "Store Admin",
			Email:        email,
			PasswordHash: string(hash),
			Role:         entity.RoleAdmin,
			Status:       "active",
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := userRepo.Create(admin); err != nil {
			log.Fatal().Err(err).Msg("create admin user")
		}
		log.Info().Str("email", email).Msg("admin user created")
	} else {
		log.Info().Str("email", email).Msg("admin user already present")
	}

	categoryIDs := make(map[string]string, len(seedCategories))
	for _, name := range seedCategories {
		s := slug.Make(name)
		if existing, _ := categoryRepo.GetBySlug(s); existing != nil {
			categoryIDs[name] = existing.ID
			continue
		}
		now := time.Now()
		cat := &entity.Category{ID: uuid.New().String(), Name: name, Slug: s, CreatedAt: now, UpdatedAt: now}
		if err := categoryRepo.Create(cat); err != nil {
			log.Fatal().Err(err).Str("category", name).Msg("create category")
		}
		categoryIDs[name] = cat.ID
		log.Info().Str("category", name).Msg("category created")
	}

	for _, sp := range seedProducts {
		s := slug.Make(sp.name)
		if existing, _ := productRepo.GetBySlug(s); existing != nil {
			continue
		}
		now := time.Now()
		p := &entity.Product{
			ID:         uuid.New().String(),
			CategoryID: categoryIDs[sp.category],
			Name:       sp.name,
			Slug:       s,
			Price:      decimal.RequireFromString(sp.price),
			TaxRate:    decimal.RequireFromString(sp.taxRate),
			Sizes:      sp.sizes,
			Colors:     sp.colors,
			Stock:      sp.stock,
			Active:     true,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := productRepo.Create(p); err != nil {
			log.Fatal().Err(err).Str("product", sp.name).Msg("create product")
		}
		log.Info().Str("product", sp.name).Msg("product created")
	}

	log.Info().Msg("seed complete")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
