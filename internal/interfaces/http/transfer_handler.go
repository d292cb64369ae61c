package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/kardex-api/internal/application/dto"
	"github.com/tu-usuario/kardex-api/internal/application/ledger"
	"github.com/tu-usuario/kardex-api/internal/domain/entity"
)

// TransferHandler maneja las peticiones HTTP del workflow de traslados.
type TransferHandler struct {
	workflow *ledger.TransferWorkflow
}

// NewTransferHandler construye el handler.
func NewTransferHandler(workflow *ledger.TransferWorkflow) *TransferHandler {
	return &TransferHandler{workflow: workflow}
}

func toLineInputs(in []dto.TransferLineInput) []ledger.TransferLineInput {
	lines := make([]ledger.TransferLineInput, 0, len(in))
	for _, l := range in {
		lines = append(lines, ledger.TransferLineInput{
			ProductID:  l.ProductID,
			Quantity:   l.Quantity,
			Lot:        l.Lot,
			Expiration: l.Expiration,
		})
	}
	return lines
}

// Create godoc
// @Summary      Crear traslado en borrador
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransferRequest  true  "bodegas origen/destino y líneas"
// @Success      201   {object}  dto.TransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/transfers [post]
func (h *TransferHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransferRequest
	if err := parseAndValidate(c, &in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: err.Error()})
	}
	transfer, err := h.workflow.Create(c.Context(), ledger.CreateTransferInput{
		OriginWarehouseID:      in.OriginWarehouseID,
		DestinationWarehouseID: in.DestinationWarehouseID,
		Vehicle:                in.Vehicle,
		Driver:                 in.Driver,
		Lines:                  toLineInputs(in.Lines),
		ActorID:                GetUserID(c),
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewTransferResponse(transfer))
}

// Send godoc
// @Summary      Enviar traslado (salida en bodega origen)
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del traslado"
// @Success      200  {object}  dto.TransferResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id}/send [post]
func (h *TransferHandler) Send(c *fiber.Ctx) error {
	transfer, err := h.workflow.Send(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.NewTransferResponse(transfer))
}

// Receive godoc
// @Summary      Recibir traslado (entrada en bodega destino)
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del traslado"
// @Success      200  {object}  dto.TransferResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id}/receive [post]
func (h *TransferHandler) Receive(c *fiber.Ctx) error {
	transfer, err := h.workflow.Receive(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.NewTransferResponse(transfer))
}

// Cancel godoc
// @Summary      Cancelar traslado (compensa si ya fue enviado)
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del traslado"
// @Param        body  body  dto.CancelTransferRequest  true  "razón de cancelación"
// @Success      200   {object}  dto.TransferResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transfers/{id}/cancel [post]
func (h *TransferHandler) Cancel(c *fiber.Ctx) error {
	var in dto.CancelTransferRequest
	if err := parseAndValidate(c, &in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: err.Error()})
	}
	transfer, err := h.workflow.Cancel(c.Context(), c.Params("id"), in.Reason, GetUserID(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.NewTransferResponse(transfer))
}

// EditLines godoc
// @Summary      Reemplazar líneas (solo en borrador)
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del traslado"
// @Param        body  body  dto.EditTransferLinesRequest  true  "líneas nuevas"
// @Success      200   {object}  dto.TransferResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transfers/{id}/lines [put]
func (h *TransferHandler) EditLines(c *fiber.Ctx) error {
	var in dto.EditTransferLinesRequest
	if err := parseAndValidate(c, &in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: err.Error()})
	}
	transfer, err := h.workflow.EditLines(c.Context(), c.Params("id"), toLineInputs(in.Lines))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.NewTransferResponse(transfer))
}

// GetByID godoc
// @Summary      Consultar traslado
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del traslado"
// @Success      200  {object}  dto.TransferResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id} [get]
func (h *TransferHandler) GetByID(c *fiber.Ctx) error {
	transfer, err := h.workflow.Get(c.Context(), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.NewTransferResponse(transfer))
}

// List godoc
// @Summary      Listar traslados
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "borrador | enviado | recibido | cancelado"
// @Success      200  {array}  dto.TransferResponse
// @Router       /api/transfers [get]
func (h *TransferHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()

	transfers, err := h.workflow.List(c.Context(), entity.TransferStatus(c.Query("status")), page.Limit, page.Offset)
	if err != nil {
		return domainError(c, err)
	}
	out := make([]dto.TransferResponse, 0, len(transfers))
	for _, t := range transfers {
		out = append(out, dto.NewTransferResponse(t))
	}
	return c.JSON(fiber.Map{"total": len(out), "transfers": out})
}
