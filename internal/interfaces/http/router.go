package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/kardex-api/internal/application/catalog"
	"github.com/tu-usuario/kardex-api/internal/application/ledger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Recorder  *ledger.Recorder
	Validator *ledger.Validator
	Reversal  *ledger.Reversal
	Queries   *ledger.Queries
	Transfers *ledger.TransferWorkflow
	CatalogUC *catalog.UseCase
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Movimientos de inventario (protegido)
	ledgerHandler := NewLedgerHandler(deps.Recorder, deps.Validator, deps.Reversal, deps.Queries)
	movements := protected.Group("/movements")
	movements.Post("/", ledgerHandler.RecordMovement)
	movements.Get("/", ledgerHandler.ListMovements)

	// Stock (protegido)
	stock := protected.Group("/stock")
	stock.Get("/", ledgerHandler.GetStock)
	stock.Post("/validate", ledgerHandler.ValidateStock)

	// Reversa por documento (protegido)
	documents := protected.Group("/documents")
	documents.Post("/:docNumber/reverse", ledgerHandler.ReverseDocument)

	// Traslados entre bodegas (protegido)
	transfers := protected.Group("/transfers")
	transferHandler := NewTransferHandler(deps.Transfers)
	transfers.Post("/", transferHandler.Create)
	transfers.Get("/", transferHandler.List)
	transfers.Get("/:id", transferHandler.GetByID)
	transfers.Put("/:id/lines", transferHandler.EditLines)
	transfers.Post("/:id/send", transferHandler.Send)
	transfers.Post("/:id/receive", transferHandler.Receive)
	transfers.Post("/:id/cancel", transferHandler.Cancel)

	// Reportes (protegido)
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.Queries)
	reports.Get("/stock/below-minimum", reportHandler.BelowMinimum)
	reports.Get("/stock/above-maximum", reportHandler.AboveMaximum)
	reports.Get("/stock/expiring", reportHandler.Expiring)
	reports.Get("/stock/expired", reportHandler.Expired)
	reports.Get("/stock/most-moved", reportHandler.MostMoved)

	// Catálogo (protegido)
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	products := protected.Group("/products")
	products.Post("/", catalogHandler.CreateProduct)
	products.Get("/", catalogHandler.ListProducts)
	products.Get("/:id", catalogHandler.GetProduct)
	products.Put("/:id", catalogHandler.UpdateProduct)

	warehouses := protected.Group("/warehouses")
	warehouses.Post("/", catalogHandler.CreateWarehouse)
	warehouses.Get("/", catalogHandler.ListWarehouses)
	warehouses.Get("/:id", catalogHandler.GetWarehouse)
	warehouses.Put("/:id", catalogHandler.UpdateWarehouse)
	warehouses.Get("/:id/stock", ledgerHandler.ListWarehouseStock)
}
