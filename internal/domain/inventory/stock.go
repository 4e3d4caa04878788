package inventory

import (
	"github.com/jhoicas/bar-stock-api/internal/domain"
	"github.com/jhoicas/bar-stock-api/internal/domain/entity"
)

// ApplyDelta calcula el stock resultante de aplicar un movimiento (servicio de dominio).
// NuevoStock = StockActual + Cantidad; nunca puede quedar por debajo de cero.
func ApplyDelta(current, quantity int) (int, error) {
	next := current + quantity
	if next < 0 {
		return current, domain.ErrNegativeStockRejected
	}
	return next, nil
}

// ValidateMovement comprueba el signo de la cantidad según el tipo de movimiento.
func ValidateMovement(movementType string, quantity int) error {
	switch movementType {
	case entity.MovementTypeAddStock:
		if quantity <= 0 {
			return domain.ErrInvalidInput
		}
	case entity.MovementTypeCorrection:
		if quantity == 0 {
			return domain.ErrInvalidInput
		}
	case entity.MovementTypeTheft, entity.MovementTypeSale:
		if quantity >= 0 {
			return domain.ErrInvalidInput
		}
	default:
		return domain.ErrInvalidInput
	}
	return nil
}

// Fold reconstruye el stock a partir de los movimientos.
func Fold(movements []*entity.InventoryMovement) int {
	stock := 0
	for _, m := range movements {
		stock += m.Quantity
	}
	return stock
}
