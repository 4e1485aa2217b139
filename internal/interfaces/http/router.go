package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AnnapuraniA/Arudhra-Fashions/internal/application/auth"
	"github.com/AnnapuraniA/Arudhra-Fashions/internal/application/billing"
	"github.com/AnnapuraniA/Arudhra-Fashions/internal/application/cart"
	"github.com/AnnapuraniA/Arudhra-Fashions/internal/application/catalog"
	"github.com/AnnapuraniA/Arudhra-Fashions/internal/application/checkout"
	"github.com/AnnapuraniA/Arudhra-Fashions/internal/application/orders"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	CategoryUC *catalog.CategoryUseCase
	ProductUC  *catalog.ProductUseCase
	FeedUC     *catalog.FeedUseCase
	CartUC     *cart.UseCase
	CheckoutUC *checkout.UseCase
	OrdersUC   *orders.UseCase
	InvoiceUC  *billing.InvoiceUseCase
	JWTSecret  string
}

// Router registers the API routes: public storefront reads, authenticated
// cart/order routes and admin-gated management routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/forgot-password", authHandler.ForgotPassword)
	authGroup.Post("/reset-password", authHandler.ResetPassword)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	// Storefront catalog (public reads)
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	api.Get("/categories", categoryHandler.List)

	productHandler := NewProductHandler(deps.ProductUC)
	products := api.Group("/products")
	products.Get("/", productHandler.List)
	products.Get("/slug/:slug", productHandler.GetBySlug)
	products.Get("/:id", productHandler.GetByID)

	// Merchant feed (public)
	feedHandler := NewFeedHandler(deps.FeedUC)
	app.Get("/feed/products.xml", feedHandler.Products)

	// Signed-in routes (Bearer token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	cartHandler := NewCartHandler(deps.CartUC)
	cartGroup := protected.Group("/cart")
	cartGroup.Get("/", cartHandler.Get)
	cartGroup.Delete("/", cartHandler.Clear)
	cartGroup.Post("/items", cartHandler.AddItem)
	cartGroup.Put("/items/:id", cartHandler.UpdateItem)
	cartGroup.Delete("/items/:id", cartHandler.RemoveItem)

	orderHandler := NewOrderHandler(deps.CheckoutUC, deps.OrdersUC)
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC)
	orderGroup := protected.Group("/orders")
	orderGroup.Post("/", orderHandler.Checkout)
	orderGroup.Get("/", orderHandler.MyOrders)
	orderGroup.Get("/:id", orderHandler.Get)
	orderGroup.Post("/:id/cancel", orderHandler.Cancel)
	orderGroup.Post("/:id/invoice", invoiceHandler.Generate)

	// Admin routes (Bearer token + admin role)
	admin := api.Group("/admin", AuthMiddleware(deps.JWTSecret), RequireAdmin())

	admin.Post("/categories", categoryHandler.Create)
	admin.Put("/categories/:id", categoryHandler.Update)
	admin.Delete("/categories/:id", categoryHandler.Delete)

	admin.Get("/products", productHandler.List)
	admin.Post("/products", productHandler.Create)
	admin.Put("/products/:id", productHandler.Update)
	admin.Delete("/products/:id", productHandler.Delete)

	admin.Get("/orders", orderHandler.AdminList)
	admin.Patch("/orders/:id/status", orderHandler.UpdateStatus)
	admin.Get("/orders/:id/packing-slip", invoiceHandler.PackingSlip)
}
