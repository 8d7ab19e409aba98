// Package http define los handlers Fiber y el router de la API.
package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Pedidos-api/internal/application/auth"
	"github.com/jhoicas/Pedidos-api/internal/application/orders"
	"github.com/jhoicas/Pedidos-api/internal/application/stock"
	"github.com/jhoicas/Pedidos-api/internal/application/summary"
	"github.com/jhoicas/Pedidos-api/internal/application/usecase"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	CategoryUC  *usecase.CategoryUseCase
	UnitUC      *usecase.UnitUseCase
	ProductUC   *usecase.ProductUseCase
	InventoryUC *usecase.InventoryUseCase
	CustomerUC  *usecase.CustomerUseCase
	RateUC      *usecase.RateUseCase
	DriverUC    *usecase.DriverUseCase
	DeliveryUC  *usecase.DeliveryUseCase
	ManagesUC   *usecase.ManagesUseCase
	StockUC     *stock.UseCase
	TransferUC  *stock.TransferUseCase
	CreateOrder *orders.CreateOrderUseCase
	ManageOrder *orders.ManageOrderUseCase
	SummaryUC   *summary.UseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	staff := RequireRole(entity.RoleSuperAdmin, entity.RoleAdmin)

	// Catálogo: categorías
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Post("/", staff, categoryHandler.Create)
	categories.Put("/:id", staff, categoryHandler.Update)
	categories.Delete("/:id", staff, categoryHandler.Delete)

	// Catálogo: unidades de medida
	units := protected.Group("/units")
	unitHandler := NewUnitHandler(deps.UnitUC)
	units.Get("/", unitHandler.List)
	units.Post("/", staff, unitHandler.Create)
	units.Delete("/:id", staff, unitHandler.Delete)

	// Catálogo: productos
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", staff, productHandler.Create)
	products.Put("/:id", staff, productHandler.Update)
	products.Delete("/:id", staff, productHandler.Delete)

	// Bodegas
	inventories := protected.Group("/inventories")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	inventories.Get("/", inventoryHandler.List)
	inventories.Get("/:id", inventoryHandler.GetByID)
	inventories.Post("/", RequireRole(entity.RoleSuperAdmin), inventoryHandler.Create)
	inventories.Put("/:id", RequireRole(entity.RoleSuperAdmin), inventoryHandler.Update)
	inventories.Delete("/:id", RequireRole(entity.RoleSuperAdmin), inventoryHandler.Delete)

	// Clientes
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Post("/", staff, customerHandler.Create)
	customers.Put("/:id", staff, customerHandler.Update)
	customers.Delete("/:id", staff, customerHandler.Delete)

	// Tarifas producto-unidad
	rates := protected.Group("/rates")
	rateHandler := NewRateHandler(deps.RateUC)
	rates.Get("/", rateHandler.List)
	rates.Post("/", staff, rateHandler.Create)
	rates.Put("/:id", staff, rateHandler.Update)
	rates.Delete("/:id", staff, rateHandler.Delete)

	// Conductores y entregas
	drivers := protected.Group("/drivers")
	driverHandler := NewDriverHandler(deps.DriverUC)
	drivers.Get("/", driverHandler.List)
	drivers.Post("/", staff, driverHandler.Create)
	drivers.Delete("/:id", staff, driverHandler.Delete)

	deliveries := protected.Group("/deliveries")
	deliveryHandler := NewDeliveryHandler(deps.DeliveryUC)
	deliveries.Get("/", deliveryHandler.List)
	deliveries.Post("/", staff, deliveryHandler.Create)
	deliveries.Patch("/:id/status", deliveryHandler.UpdateStatus)
	deliveries.Delete("/:id", staff, deliveryHandler.Delete)

	// Asignación admin ↔ bodega (solo superadmin)
	manages := protected.Group("/manages", RequireRole(entity.RoleSuperAdmin))
	managesHandler := NewManagesHandler(deps.ManagesUC)
	manages.Post("/", managesHandler.Assign)
	manages.Delete("/", managesHandler.Unassign)
	manages.Get("/:userId", managesHandler.ManagedInventories)

	// Stock: agregación, disponibilidad, movimientos y traslados. Los checks de
	// rol y de scope corren dentro de los casos de uso.
	stockGroup := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.StockUC, deps.TransferUC)
	stockGroup.Get("/", stockHandler.Aggregate)
	stockGroup.Get("/availability", stockHandler.Availability)
	stockGroup.Get("/low", stockHandler.LowStock)
	stockGroup.Get("/movements", stockHandler.ListMovements)
	stockGroup.Post("/movements", stockHandler.RegisterMovement)
	stockGroup.Get("/transfers", stockHandler.ListTransfers)
	stockGroup.Post("/transfers", stockHandler.CreateTransfer)
	stockGroup.Patch("/transfers/:id/status", stockHandler.UpdateTransferStatus)

	// Pedidos
	ordersGroup := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.CreateOrder, deps.ManageOrder)
	ordersGroup.Post("/", orderHandler.Create)
	ordersGroup.Get("/", orderHandler.List)
	ordersGroup.Get("/:id", orderHandler.GetByID)
	ordersGroup.Put("/:id", orderHandler.Update)
	ordersGroup.Patch("/:id/status", orderHandler.UpdateStatus)
	ordersGroup.Delete("/:id", orderHandler.Delete)

	// Resumen por periodo
	summaryHandler := NewSummaryHandler(deps.SummaryUC)
	protected.Get("/summary", summaryHandler.Summarize)
}
