package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/kardex-api/internal/application/dto"
	"github.com/tu-usuario/kardex-api/internal/application/ledger"
	"github.com/tu-usuario/kardex-api/internal/domain"
	"github.com/tu-usuario/kardex-api/internal/domain/entity"
	"github.com/tu-usuario/kardex-api/internal/domain/repository"
)

// LedgerHandler maneja las peticiones HTTP del motor de inventario:
// registro de movimientos, validación de disponibilidad, reversas y consultas.
type LedgerHandler struct {
	recorder  *ledger.Recorder
	validator *ledger.Validator
	reversal  *ledger.Reversal
	queries   *ledger.Queries
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(
	recorder *ledger.Recorder,
	validator *ledger.Validator,
	reversal *ledger.Reversal,
	queries *ledger.Queries,
) *LedgerHandler {
	return &LedgerHandler{recorder: recorder, validator: validator, reversal: reversal, queries: queries}
}

// RecordMovement godoc
// @Summary      Registrar movimiento de inventario
// @Description  Único punto de mutación de stock: actualiza el registro y
//	escribe la entrada de auditoría en la misma transacción.
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordMovementRequest  true  "product_id, warehouse_id, delta (con signo), type, observation"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *LedgerHandler) RecordMovement(c *fiber.Ctx) error {
	var in dto.RecordMovementRequest
	if err := parseAndValidate(c, &in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: err.Error()})
	}
	mov, err := h.recorder.Record(c.Context(), ledger.RecordInput{
		ProductID:      in.ProductID,
		WarehouseID:    in.WarehouseID,
		Lot:            in.Lot,
		Expiration:     in.Expiration,
		Delta:          in.Delta,
		Type:           entity.MovementType(in.Type),
		Observation:    in.Observation,
		DocumentNumber: in.DocumentNumber,
		ActorID:        GetUserID(c),
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewMovementResponse(mov))
}

// ListMovements godoc
// @Summary      Historial de movimientos
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  false  "Filtrar por bodega"
// @Param        product_id    query  string  false  "Filtrar por producto"
// @Param        type          query  string  false  "Filtrar por tipo de movimiento"
// @Param        from          query  string  false  "Fecha inicial (RFC3339)"
// @Param        to            query  string  false  "Fecha final (RFC3339)"
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/movements [get]
func (h *LedgerHandler) ListMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()

	filter := repository.MovementFilter{
		WarehouseID: c.Query("warehouse_id"),
		ProductID:   c.Query("product_id"),
		Type:        entity.MovementType(c.Query("type")),
		Limit:       page.Limit,
		Offset:      page.Offset,
	}
	if from := c.Query("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "from inválido (RFC3339)"})
		}
		filter.From = &t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "to inválido (RFC3339)"})
		}
		filter.To = &t
	}

	movements, err := h.queries.MovementHistory(c.Context(), filter)
	if err != nil {
		return domainError(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.NewMovementResponse(m))
	}
	return c.JSON(fiber.Map{"total": len(out), "movements": out})
}

// ValidateStock godoc
// @Summary      Validar disponibilidad de stock
// @Description  Pre-chequeo de UX: no reserva ni bloquea; el registrador
//	re-valida bajo lock al confirmar.
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ValidateStockRequest  true  "líneas producto/cantidad y bodega opcional"
// @Success      200   {object}  dto.ValidateStockResponse
// @Failure      422   {object}  dto.ValidateStockResponse
// @Router       /api/stock/validate [post]
func (h *LedgerHandler) ValidateStock(c *fiber.Ctx) error {
	var in dto.ValidateStockRequest
	if err := parseAndValidate(c, &in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: err.Error()})
	}
	requests := make([]ledger.ValidationRequest, 0, len(in.Requests))
	for _, r := range in.Requests {
		requests = append(requests, ledger.ValidationRequest{ProductID: r.ProductID, Quantity: r.Quantity})
	}
	result, err := h.validator.Validate(c.Context(), requests, in.WarehouseID)
	if err != nil {
		return domainError(c, err)
	}
	out := dto.ValidateStockResponse{
		Valid:   result.Valid,
		Errors:  result.Errors,
		Details: make([]dto.ValidateStockDetail, 0, len(result.Details)),
	}
	for _, d := range result.Details {
		out.Details = append(out.Details, dto.ValidateStockDetail{
			ProductID: d.ProductID,
			Requested: d.Requested,
			Available: d.Available,
		})
	}
	if !out.Valid {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"code":    "VALIDATION_FAILED",
			"message": domain.ErrValidationFailed.Error(),
			"valid":   false,
			"errors":  out.Errors,
			"details": out.Details,
		})
	}
	return c.JSON(out)
}

// GetStock godoc
// @Summary      Consultar stock actual
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        product_id    query  string  true   "Producto"
// @Param        warehouse_id  query  string  false  "Bodega; vacío = total entre bodegas"
// @Param        lot           query  string  false  "Lote"
// @Success      200  {object}  map[string]interface{}
// @Router       /api/stock [get]
func (h *LedgerHandler) GetStock(c *fiber.Ctx) error {
	productID := c.Query("product_id")
	warehouseID := c.Query("warehouse_id")
	lot := c.Query("lot")

	var qty int64
	var err error
	if lot != "" && warehouseID != "" {
		qty, err = h.queries.CurrentQuantity(c.Context(), productID, warehouseID, lot)
	} else {
		qty, err = h.queries.TotalQuantity(c.Context(), productID, warehouseID)
	}
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{
		"product_id":   productID,
		"warehouse_id": warehouseID,
		"lot":          lot,
		"quantity":     qty,
	})
}

// ListWarehouseStock godoc
// @Summary      Stock de una bodega
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID de la bodega"
// @Param        limit   query  int     false  "Máximo de filas"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {array}  entity.StockRecord
// @Router       /api/warehouses/{id}/stock [get]
func (h *LedgerHandler) ListWarehouseStock(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()

	records, err := h.queries.StockByWarehouse(c.Context(), c.Params("id"), page.Limit, page.Offset)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(records), "items": records})
}

// ReverseDocument godoc
// @Summary      Revertir movimientos de un documento
// @Description  Aplica los movimientos compensatorios de un documento
//	cancelado o reducido, acotados al neto ya movido.
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        docNumber  path  string  true  "Número de documento"
// @Param        body  body  dto.ReverseDocumentRequest  true  "líneas producto/cantidad a revertir"
// @Success      200   {array}  dto.MovementResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/documents/{docNumber}/reverse [post]
func (h *LedgerHandler) ReverseDocument(c *fiber.Ctx) error {
	docNumber := c.Params("docNumber")
	var in dto.ReverseDocumentRequest
	if err := parseAndValidate(c, &in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: err.Error()})
	}
	lines := make([]ledger.ReversalLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, ledger.ReversalLine{ProductID: l.ProductID, Quantity: l.Quantity})
	}
	movements, err := h.reversal.ReverseDocument(c.Context(), docNumber, lines)
	if err != nil {
		return domainError(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.NewMovementResponse(m))
	}
	return c.JSON(fiber.Map{"total": len(out), "movements": out})
}
