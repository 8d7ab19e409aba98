package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/Pedidos-api/internal/application/access"
	"github.com/jhoicas/Pedidos-api/internal/application/auth"
	"github.com/jhoicas/Pedidos-api/internal/application/orders"
	"github.com/jhoicas/Pedidos-api/internal/application/stock"
	"github.com/jhoicas/Pedidos-api/internal/application/summary"
	"github.com/jhoicas/Pedidos-api/internal/application/usecase"
	"github.com/jhoicas/Pedidos-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Pedidos-api/internal/interfaces/http"
	"github.com/jhoicas/Pedidos-api/pkg/config"
	"github.com/jhoicas/Pedidos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	unitRepo := postgres.NewUnitRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	inventoryRepo := postgres.NewInventoryRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	rateRepo := postgres.NewRateRepository(pool)
	driverRepo := postgres.NewDriverRepository(pool)
	deliveryRepo := postgres.NewDeliveryRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	transferRepo := postgres.NewStockTransferRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	resolver := access.NewResolver(userRepo)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	unitUC := usecase.NewUnitUseCase(unitRepo)
	productUC := usecase.NewProductUseCase(productRepo, categoryRepo)
	inventoryUC := usecase.NewInventoryUseCase(inventoryRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo)
	rateUC := usecase.NewRateUseCase(rateRepo, productRepo, unitRepo)
	driverUC := usecase.NewDriverUseCase(driverRepo)
	deliveryUC := usecase.NewDeliveryUseCase(deliveryRepo, orderRepo, driverRepo)
	managesUC := usecase.NewManagesUseCase(userRepo, inventoryRepo)

	stockUC := stock.NewUseCase(resolver, movementRepo, productRepo, inventoryRepo, unitRepo)
	transferUC := stock.NewTransferUseCase(stockUC, txRunner, transferRepo)
	createOrderUC := orders.NewCreateOrderUseCase(
		txRunner, resolver, movementRepo,
		customerRepo, productRepo, inventoryRepo, unitRepo, rateRepo,
	)
	manageOrderUC := orders.NewManageOrderUseCase(resolver, orderRepo, rateRepo)
	summaryUC := summary.NewUseCase(resolver, orderRepo, movementRepo, inventoryRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		CategoryUC:  categoryUC,
		UnitUC:      unitUC,
		ProductUC:   productUC,
		InventoryUC: inventoryUC,
		CustomerUC:  customerUC,
		RateUC:      rateUC,
		DriverUC:    driverUC,
		DeliveryUC:  deliveryUC,
		ManagesUC:   managesUC,
		StockUC:     stockUC,
		TransferUC:  transferUC,
		CreateOrder: createOrderUC,
		ManageOrder: manageOrderUC,
		SummaryUC:   summaryUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
