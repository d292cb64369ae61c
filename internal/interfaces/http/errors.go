package http

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/kardex-api/internal/application/dto"
	"github.com/tu-usuario/kardex-api/internal/domain"
)

// validate instancia compartida para validar DTOs de entrada.
var validate = validator.New()

// parseAndValidate parsea el body JSON y valida los tags del DTO.
func parseAndValidate(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return err
	}
	return validate.Struct(out)
}

// domainError mapea errores de dominio a respuestas HTTP. Los errores con
// detalle (stock insuficiente, estado inválido) exponen el detalle para que el
// caller pueda mostrar un mensaje accionable.
func domainError(c *fiber.Ctx, err error) error {
	var insufficientErr *domain.InsufficientStockError
	if errors.As(err, &insufficientErr) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"code":         "INSUFFICIENT_STOCK",
			"message":      insufficientErr.Error(),
			"product_id":   insufficientErr.ProductID,
			"warehouse_id": insufficientErr.WarehouseID,
			"requested":    insufficientErr.Requested,
			"available":    insufficientErr.Available,
		})
	}
	var stateErr *domain.InvalidStateError
	if errors.As(err, &stateErr) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"code":      "INVALID_STATE",
			"message":   stateErr.Error(),
			"current":   stateErr.Current,
			"attempted": stateErr.Attempted,
		})
	}
	switch {
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
	case errors.Is(err, domain.ErrInvalidState):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_STATE", Message: err.Error()})
	case errors.Is(err, domain.ErrConcurrencyConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONCURRENCY_CONFLICT", Message: "conflicto de concurrencia, reintente la operación completa"})
	case errors.Is(err, domain.ErrNoWarehouseAvailable):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NO_WAREHOUSE", Message: "bodega no disponible"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "recurso duplicado"})
	case errors.Is(err, domain.ErrUnknownMovementType):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "UNKNOWN_MOVEMENT_TYPE", Message: "tipo de movimiento desconocido"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
