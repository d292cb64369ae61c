package dto

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	SKU      string `json:"sku" validate:"required"`
	Name     string `json:"name" validate:"required"`
	MinStock int64  `json:"min_stock" validate:"omitempty,min=0"`
	MaxStock int64  `json:"max_stock" validate:"omitempty,min=0"`
}

// UpdateProductRequest body para PUT /api/products/:id.
type UpdateProductRequest struct {
	Name     string `json:"name" validate:"required"`
	MinStock int64  `json:"min_stock" validate:"omitempty,min=0"`
	MaxStock int64  `json:"max_stock" validate:"omitempty,min=0"`
	Active   bool   `json:"active"`
}

// CreateWarehouseRequest body para POST /api/warehouses.
type CreateWarehouseRequest struct {
	Name              string `json:"name" validate:"required"`
	Address           string `json:"address,omitempty"`
	RequiresTransport bool   `json:"requires_transport"`
}

// UpdateWarehouseRequest body para PUT /api/warehouses/:id.
type UpdateWarehouseRequest struct {
	Name              string `json:"name" validate:"required"`
	Address           string `json:"address,omitempty"`
	Active            bool   `json:"active"`
	RequiresTransport bool   `json:"requires_transport"`
}
