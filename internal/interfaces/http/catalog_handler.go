package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/kardex-api/internal/application/catalog"
	"github.com/tu-usuario/kardex-api/internal/application/dto"
)

// CatalogHandler expone el CRUD de productos y bodegas.
type CatalogHandler struct {
	uc *catalog.UseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *catalog.UseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// CreateProduct godoc
// @Summary      Crear producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        request  body  dto.CreateProductRequest  true  "Producto"
// @Success      201  {object}  entity.Product
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *CatalogHandler) CreateProduct(c *fiber.Ctx) error {
	var req dto.CreateProductRequest
	if err := parseAndValidate(c, &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: err.Error()})
	}
	p, err := h.uc.CreateProduct(c.Context(), req.SKU, req.Name, req.MinStock, req.MaxStock)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

// UpdateProduct godoc
// @Summary      Actualizar producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id       path  string                    true  "ID del producto"
// @Param        request  body  dto.UpdateProductRequest  true  "Campos"
// @Success      200  {object}  entity.Product
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *CatalogHandler) UpdateProduct(c *fiber.Ctx) error {
	var req dto.UpdateProductRequest
	if err := parseAndValidate(c, &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: err.Error()})
	}
	p, err := h.uc.UpdateProduct(c.Context(), c.Params("id"), req.Name, req.MinStock, req.MaxStock, req.Active)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(p)
}

// GetProduct godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  entity.Product
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	p, err := h.uc.GetProduct(c.Context(), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(p)
}

// ListProducts godoc
// @Summary      Listar productos
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Máximo de filas"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {array}  entity.Product
// @Router       /api/products [get]
func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros de paginación inválidos"})
	}
	page.DefaultPage()
	items, err := h.uc.ListProducts(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(items), "items": items})
}

// CreateWarehouse godoc
// @Summary      Crear bodega
// @Tags         warehouses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        request  body  dto.CreateWarehouseRequest  true  "Bodega"
// @Success      201  {object}  entity.Warehouse
// @Router       /api/warehouses [post]
func (h *CatalogHandler) CreateWarehouse(c *fiber.Ctx) error {
	var req dto.CreateWarehouseRequest
	if err := parseAndValidate(c, &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: err.Error()})
	}
	w, err := h.uc.CreateWarehouse(c.Context(), req.Name, req.Address, req.RequiresTransport)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(w)
}

// UpdateWarehouse godoc
// @Summary      Actualizar bodega
// @Tags         warehouses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id       path  string                      true  "ID de la bodega"
// @Param        request  body  dto.UpdateWarehouseRequest  true  "Campos"
// @Success      200  {object}  entity.Warehouse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/warehouses/{id} [put]
func (h *CatalogHandler) UpdateWarehouse(c *fiber.Ctx) error {
	var req dto.UpdateWarehouseRequest
	if err := parseAndValidate(c, &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: err.Error()})
	}
	w, err := h.uc.UpdateWarehouse(c.Context(), c.Params("id"), req.Name, req.Address, req.Active, req.RequiresTransport)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(w)
}

// GetWarehouse godoc
// @Summary      Obtener bodega por ID
// @Tags         warehouses
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la bodega"
// @Success      200  {object}  entity.Warehouse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/warehouses/{id} [get]
func (h *CatalogHandler) GetWarehouse(c *fiber.Ctx) error {
	w, err := h.uc.GetWarehouse(c.Context(), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(w)
}

// ListWarehouses godoc
// @Summary      Listar bodegas
// @Tags         warehouses
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Máximo de filas"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {array}  entity.Warehouse
// @Router       /api/warehouses [get]
func (h *CatalogHandler) ListWarehouses(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros de paginación inválidos"})
	}
	page.DefaultPage()
	items, err := h.uc.ListWarehouses(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(items), "items": items})
}
