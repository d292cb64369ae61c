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
	"github.com/tu-usuario/kardex-api/internal/application/catalog"
	"github.com/tu-usuario/kardex-api/internal/application/ledger"
	"github.com/tu-usuario/kardex-api/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/kardex-api/internal/interfaces/http"
	"github.com/tu-usuario/kardex-api/pkg/config"
	"github.com/tu-usuario/kardex-api/pkg/logger"
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

	productRepo := postgres.NewProductRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	stockRepo := postgres.NewStockRecordRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	transferRepo := postgres.NewTransferRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	recorder := ledger.NewRecorder(txRunner, productRepo, warehouseRepo, log)
	validator := ledger.NewValidator(stockRepo)
	reversal := ledger.NewReversal(txRunner, recorder, warehouseRepo, cfg.Ledger.StrictCompensation, log)
	queries := ledger.NewQueries(stockRepo, movementRepo, reportRepo)
	transfers := ledger.NewTransferWorkflow(txRunner, recorder, transferRepo, warehouseRepo, log)
	catalogUC := catalog.NewUseCase(productRepo, warehouseRepo)

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
		Title:    "Kardex API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Recorder:  recorder,
		Validator: validator,
		Reversal:  reversal,
		Queries:   queries,
		Transfers: transfers,
		CatalogUC: catalogUC,
		JWTSecret: cfg.JWT.Secret,
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
