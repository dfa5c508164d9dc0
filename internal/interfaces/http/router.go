package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Siparis-api/internal/application/auth"
	"github.com/jhoicas/Siparis-api/internal/application/delivery"
	"github.com/jhoicas/Siparis-api/internal/application/inventory"
	"github.com/jhoicas/Siparis-api/internal/application/order"
	"github.com/jhoicas/Siparis-api/internal/application/report"
	"github.com/jhoicas/Siparis-api/internal/application/usecase"
	"github.com/jhoicas/Siparis-api/internal/domain/entity"
)

const sessionPath = "/api/auth/session"

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC      *usecase.ProductUseCase
	CustomerUC     *usecase.CustomerUseCase
	ExchangeRateUC *usecase.ExchangeRateUseCase
	Movements      *inventory.RegisterMovementUseCase
	OrderUC        *order.UseCase
	DeliveryUC     *delivery.UseCase
	ReportUC       *report.UseCase
	AuthUC         *auth.AuthUseCase
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	admin := RequireRole(entity.RoleAdmin)
	warehouse := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)
	sales := RequireRole(entity.RoleAdmin, entity.RoleVendedor)
	anyone := RequireRole()

	// Auth: login público, el resto protegido
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	protected := api.Group("/", AuthMiddleware(AuthConfig{
		Secret:       deps.JWTSecret,
		Sessions:     deps.AuthUC,
		PassivePaths: []string{sessionPath},
	}), anyone)

	authGroup := protected.Group("/auth")
	authGroup.Post("/register", admin, authHandler.Register)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Get("/session", authHandler.Session)
	authGroup.Get("/me", authHandler.Me)

	// Products
	inventoryHandler := NewInventoryHandler(deps.Movements)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.ReportUC)
	products.Get("/", productHandler.List)
	products.Get("/low-stock", productHandler.LowStock)
	products.Get("/:id", productHandler.GetByID)
	products.Get("/:id/ledger", inventoryHandler.Ledger)
	products.Post("/", warehouse, productHandler.Create)
	products.Put("/:id", warehouse, productHandler.Update)
	products.Delete("/:id", admin, productHandler.Delete)

	// Stock movements (ledger)
	movements := protected.Group("/stock-movements", warehouse)
	movements.Get("/", inventoryHandler.List)
	movements.Post("/", inventoryHandler.Create)
	movements.Post("/transfer", inventoryHandler.Transfer)
	movements.Get("/:id", inventoryHandler.GetByID)
	movements.Put("/:id", inventoryHandler.Update)

	// Customers
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC, deps.ReportUC)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Get("/:id/demand", sales, customerHandler.Demand)
	customers.Post("/", sales, customerHandler.Create)
	customers.Put("/:id", sales, customerHandler.Update)
	customers.Delete("/:id", admin, customerHandler.Delete)

	// Orders
	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC, deps.DeliveryUC, deps.ReportUC)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Get("/:id/delivery-lines", orderHandler.DeliveryLines)
	orders.Post("/", sales, orderHandler.Create)
	orders.Patch("/:id/status", orderHandler.UpdateStatus)
	orders.Delete("/:id", admin, orderHandler.Delete)

	// Deliveries and returns
	deliveries := protected.Group("/deliveries")
	deliveryHandler := NewDeliveryHandler(deps.DeliveryUC)
	deliveries.Get("/", deliveryHandler.List)
	deliveries.Get("/:id", deliveryHandler.GetByID)
	deliveries.Get("/:id/lines", deliveryHandler.Lines)
	deliveries.Get("/:id/pdf", deliveryHandler.PDF)
	deliveries.Post("/", warehouse, deliveryHandler.Create)
	deliveries.Delete("/:id", admin, deliveryHandler.Delete)

	// Reports
	reports := protected.Group("/reports", sales)
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/demand", reportHandler.Demand)
	reports.Get("/demand/xlsx", reportHandler.Export)

	// Exchange rates
	rates := protected.Group("/exchange-rates")
	rateHandler := NewExchangeRateHandler(deps.ExchangeRateUC)
	rates.Get("/", rateHandler.List)
	rates.Put("/:currency", admin, rateHandler.Upsert)
}
