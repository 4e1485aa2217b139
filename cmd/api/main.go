package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"

	_ "github.com/AnnapuraniA/Arudhra-Fashions/docs"
	appauth "github.com/AnnapuraniA/Arudhra-Fashions/internal/application/auth"
	"github.com/AnnapuraniA/Arudhra-Fashions/internal/application/billing"
	"github.com/AnnapuraniA/Arudhra-Fashions/internal/application/cart"
	"github.com/AnnapuraniA/Arudhra-Fashions/internal/application/catalog"
	"github.com/AnnapuraniA/Arudhra-Fashions/internal/application/checkout"
	"github.com/AnnapuraniA/Arudhra-Fashions/internal/application/orders"
	"github.com/AnnapuraniA/Arudhra-Fashions/internal/infrastructure/feed"
	"github.com/AnnapuraniA/Arudhra-Fashions/internal/infrastructure/mail"
	infrapdf "github.com/AnnapuraniA/Arudhra-Fashions/internal/infrastructure/pdf"
	"github.com/AnnapuraniA/Arudhra-Fashions/internal/infrastructure/postgres"
	"github.com/AnnapuraniA/Arudhra-Fashions/internal/infrastructure/storage"
	httpRouter "github.com/AnnapuraniA/Arudhra-Fashions/internal/interfaces/http"
	"github.com/AnnapuraniA/Arudhra-Fashions/pkg/config"
	"github.com/AnnapuraniA/Arudhra-Fashions/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	cartRepo := postgres.NewCartRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Outgoing mail. With no SMTP configured the reset flow logs its links
	// and order-confirmation mails are skipped.
	var authMailer appauth.Mailer
	var invoiceMailer billing.Mailer
	if cfg.SMTP.Enabled() {
		m := mail.New(cfg.SMTP, cfg.App.Name, log)
		authMailer, invoiceMailer = m, m
	} else {
		log.Warn().Msg("SMTP not configured, outgoing mail disabled")
		authMailer = mail.NewDisabled(log)
	}

	authUC := appauth.NewAuthUseCase(userRepo, authMailer, log, appauth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, cfg.Store.BaseURL)

	categoryUC := catalog.NewCategoryUseCase(categoryRepo)
	productUC := catalog.NewProductUseCase(productRepo, categoryRepo, log)
	feedUC := catalog.NewFeedUseCase(productRepo, categoryRepo, feed.NewBuilder(cfg.App.Name, cfg.Store.BaseURL))
	cartUC := cart.NewUseCase(cartRepo, productRepo)

	freeOver, err := decimal.NewFromString(cfg.Store.FreeShippingOver)
	if err != nil {
		log.Fatal().Err(err).Msg("parse STORE_FREE_SHIPPING_OVER")
	}
	flatRate, err := decimal.NewFromString(cfg.Store.ShippingFlat)
	if err != nil {
		log.Fatal().Err(err).Msg("parse STORE_SHIPPING_FLAT")
	}
	checkoutUC := checkout.NewUseCase(txRunner, checkout.Pricing{
		FreeShippingOver: freeOver,
		FlatRate:         flatRate,
	}, log)
	ordersUC := orders.NewUseCase(orderRepo, txRunner, log)

	// Invoice pipeline: theme-driven gofpdf layout writing into the local
	// artifact store, served statically under /invoices.
	store, err := storage.NewStore(cfg.Invoice.OutputDir)
	if err != nil {
		log.Fatal().Err(err).Msg("create invoice store")
	}
	renderer, err := infrapdf.NewInvoiceRenderer(infrapdf.DefaultTheme(), store, cfg.Invoice.LogoCandidates, log)
	if err != nil {
		log.Fatal().Err(err).Msg("build invoice renderer")
	}
	slips := infrapdf.NewPackingSlipGenerator(cfg.App.Name)
	invoiceUC := billing.NewInvoiceUseCase(orderRepo, userRepo, renderer, slips, invoiceMailer, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Arudhra Fashions API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Static("/invoices", store.Dir())

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		CategoryUC: categoryUC,
		ProductUC:  productUC,
		FeedUC:     feedUC,
		CartUC:     cartUC,
		CheckoutUC: checkoutUC,
		OrdersUC:   ordersUC,
		InvoiceUC:  invoiceUC,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
