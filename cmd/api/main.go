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

	"github.com/farmalink/suministro-api/internal/application/catalog"
	"github.com/farmalink/suministro-api/internal/application/contracts"
	"github.com/farmalink/suministro-api/internal/application/orders"
	"github.com/farmalink/suministro-api/internal/application/replenishment"
	infrapdf "github.com/farmalink/suministro-api/internal/infrastructure/pdf"
	"github.com/farmalink/suministro-api/internal/infrastructure/postgres"
	httpRouter "github.com/farmalink/suministro-api/internal/interfaces/http"
	"github.com/farmalink/suministro-api/pkg/config"
	"github.com/farmalink/suministro-api/pkg/logger"
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

	orderRepo := postgres.NewOrderRepository(pool)
	shipmentRepo := postgres.NewShipmentRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	pharmacyRepo := postgres.NewPharmacyRepository(pool)
	contractRepo := postgres.NewContractRepository(pool)
	backorderRepo := postgres.NewBackorderRepository(pool)
	storageRepo := postgres.NewStorageRepository(pool)
	orderTx := postgres.NewTxRunner(pool)
	replenishTx := postgres.NewReplenishmentTxRunner(pool)

	shipOrderUC := orders.NewShipOrderUseCase(orderTx, productRepo)
	createOrderUC := orders.NewCreateOrderUseCase(orderTx, productRepo, contractRepo, pharmacyRepo)
	lifecycleUC := orders.NewLifecycleUseCase(orderTx, shipOrderUC)
	orderQueryUC := orders.NewQueryUseCase(orderRepo, shipmentRepo)

	// PDF: guía de despacho que acompaña cada envío
	slipGenerator := infrapdf.NewMarotoPackingSlipGenerator()
	packingSlipUC := orders.NewPackingSlipUseCase(orderRepo, shipmentRepo, productRepo, pharmacyRepo, slipGenerator)

	createBackorderUC := replenishment.NewCreateBackorderUseCase(replenishTx)
	receiveBackorderUC := replenishment.NewReceiveBackorderUseCase(replenishTx)
	replenishQueryUC := replenishment.NewQueryUseCase(backorderRepo, storageRepo, productRepo)

	contractUC := contracts.NewUseCase(contractRepo, pharmacyRepo)
	catalogUC := catalog.NewUseCase(productRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "FarmaLink Suministro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CreateOrder:      createOrderUC,
		OrderLifecycle:   lifecycleUC,
		OrderQueries:     orderQueryUC,
		PackingSlip:      packingSlipUC,
		CreateBackorder:  createBackorderUC,
		ReceiveBackorder: receiveBackorderUC,
		ReplenishQueries: replenishQueryUC,
		ContractUC:       contractUC,
		CatalogUC:        catalogUC,
		JWTSecret:        cfg.JWT.Secret,
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
