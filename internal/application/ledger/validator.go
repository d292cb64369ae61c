package ledger

import (
	"context"
	"fmt"

	"github.com/tu-usuario/kardex-api/internal/domain/repository"
)

// ValidationRequest una línea a verificar: producto y cantidad solicitada.
type ValidationRequest struct {
	ProductID string
	Quantity  int64
}

// ValidationDetail resultado por línea para mostrar al usuario.
type ValidationDetail struct {
	ProductID string
	Requested int64
	Available int64
}

// ValidationResult resultado agregado de la validación de disponibilidad.
type ValidationResult struct {
	Valid   bool
	Errors  []string
	Details []ValidationDetail
}

// Validator responde "¿se pueden reservar N unidades del producto P?" antes
// de que una operación consumidora confirme. Es una lectura pura: no reserva
// ni bloquea, así que dos validaciones concurrentes pueden reportar disponible
// antes de que alguna confirme. La corrección descansa en el chequeo del
// registrador bajo lock al momento del commit; esto es solo pre-chequeo de UX.
type Validator struct {
	stockRepo repository.StockRecordRepository
}

// NewValidator construye el validador de disponibilidad.
func NewValidator(stockRepo repository.StockRecordRepository) *Validator {
	return &Validator{stockRepo: stockRepo}
}

// Validate compara cada cantidad solicitada contra el total disponible del
// producto en la bodega indicada (o en todas las bodegas si warehouseID es "").
func (v *Validator) Validate(ctx context.Context, requests []ValidationRequest, warehouseID string) (*ValidationResult, error) {
	result := &ValidationResult{
		Valid:   true,
		Details: make([]ValidationDetail, 0, len(requests)),
	}
	for _, req := range requests {
		available, err := v.stockRepo.TotalQuantity(ctx, req.ProductID, warehouseID)
		if err != nil {
			return nil, err
		}
		detail := ValidationDetail{
			ProductID: req.ProductID,
			Requested: req.Quantity,
			Available: available,
		}
		result.Details = append(result.Details, detail)
		if req.Quantity > available {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf(
				"producto %s: solicitado %d, disponible %d",
				req.ProductID, req.Quantity, available))
		}
	}
	return result, nil
}
