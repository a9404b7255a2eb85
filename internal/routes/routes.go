package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/nabhon/smoif-shop/internal/config"
	"github.com/nabhon/smoif-shop/internal/handlers"
	"github.com/nabhon/smoif-shop/internal/middleware"
	"github.com/nabhon/smoif-shop/internal/services"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	mailer := services.NewMailerService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom)

	adminHandler := handlers.NewAdminHandler(db, cfg)
	productHandler := handlers.NewProductHandler(db)
	orderHandler := handlers.NewOrderHandler(db, cfg, mailer)
	paymentConfigHandler := handlers.NewPaymentConfigHandler(db)

	requireAdmin := middleware.AuthMiddleware(cfg)

	api := app.Group("/api")

	admin := api.Group("/admin")
	admin.Post("/login", adminHandler.Login)

	products := api.Group("/products")
	products.Get("/", productHandler.ListProducts)
	products.Get("/admin", requireAdmin, productHandler.ListProductsAdmin)
	products.Get("/:id", productHandler.GetProduct)
	products.Post("/", requireAdmin, productHandler.CreateProduct)
	products.Put("/:id", requireAdmin, productHandler.UpdateProduct)
	products.Delete("/:id", requireAdmin, productHandler.DeleteProduct)

	orders := api.Group("/orders")
	orders.Post("/", orderHandler.CreateOrder)
	orders.Post("/:id/pay", orderHandler.UploadSlip)
	orders.Get("/", requireAdmin, orderHandler.ListOrders)
	orders.Post("/:id/verify", requireAdmin, orderHandler.VerifyOrder)
	orders.Post("/:id/reject", requireAdmin, orderHandler.RejectOrder)

	paymentConfig := api.Group("/payment-config")
	paymentConfig.Get("/", paymentConfigHandler.GetPaymentConfig)
	paymentConfig.Put("/", requireAdmin, paymentConfigHandler.UpdatePaymentConfig)
}
