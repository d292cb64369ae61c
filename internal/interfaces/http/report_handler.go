package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/kardex-api/internal/application/dto"
	"github.com/tu-usuario/kardex-api/internal/application/ledger"
)

// ReportHandler expone la superficie de consulta para reportería.
type ReportHandler struct {
	queries *ledger.Queries
}

// NewReportHandler construye el handler.
func NewReportHandler(queries *ledger.Queries) *ReportHandler {
	return &ReportHandler{queries: queries}
}

// BelowMinimum godoc
// @Summary      Productos con stock bajo mínimo
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  false  "Filtrar por bodega; vacío = stock global"
// @Success      200  {array}  repository.StockAlertItem
// @Router       /api/reports/stock/below-minimum [get]
func (h *ReportHandler) BelowMinimum(c *fiber.Ctx) error {
	items, err := h.queries.StockBelowMinimum(c.Context(), c.Query("warehouse_id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(items), "items": items})
}

// AboveMaximum godoc
// @Summary      Productos con stock sobre máximo
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  false  "Filtrar por bodega"
// @Success      200  {array}  repository.StockAlertItem
// @Router       /api/reports/stock/above-maximum [get]
func (h *ReportHandler) AboveMaximum(c *fiber.Ctx) error {
	items, err := h.queries.StockAboveMaximum(c.Context(), c.Query("warehouse_id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(items), "items": items})
}

// Expiring godoc
// @Summary      Lotes que vencen dentro de N días
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        days  query  int  false  "Horizonte en días (default 30)"
// @Success      200  {array}  repository.ExpiringItem
// @Router       /api/reports/stock/expiring [get]
func (h *ReportHandler) Expiring(c *fiber.Ctx) error {
	days := 30
	if v := c.Query("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "days debe ser un entero positivo"})
		}
		days = n
	}
	items, err := h.queries.ExpiringWithin(c.Context(), days)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(items), "items": items})
}

// Expired godoc
// @Summary      Lotes vencidos con existencia
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  repository.ExpiringItem
// @Router       /api/reports/stock/expired [get]
func (h *ReportHandler) Expired(c *fiber.Ctx) error {
	items, err := h.queries.Expired(c.Context())
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(items), "items": items})
}

// MostMoved godoc
// @Summary      Productos más movidos en un periodo
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from   query  string  true   "Fecha inicial (RFC3339)"
// @Param        to     query  string  true   "Fecha final (RFC3339)"
// @Param        limit  query  int     false  "Máximo de filas (default 10)"
// @Success      200  {array}  repository.MovedProductItem
// @Router       /api/reports/stock/most-moved [get]
func (h *ReportHandler) MostMoved(c *fiber.Ctx) error {
	from, err := time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "from inválido (RFC3339)"})
	}
	to, err := time.Parse(time.RFC3339, c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "to inválido (RFC3339)"})
	}
	limit, _ := strconv.Atoi(c.Query("limit"))

	items, err := h.queries.MostMovedProducts(c.Context(), from, to, limit)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(items), "items": items})
}
