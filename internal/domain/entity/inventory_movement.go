package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementTypeSale       = "sale"       // venta (solo la crea el procesador de pedidos)
	MovementTypeAddStock   = "add_stock"  // reposición
	MovementTypeCorrection = "correction" // recuento manual o reversión
	MovementTypeTheft      = "theft"      // pérdida/robo, siempre con TheftRecord
)

// InventoryMovement cambio inmutable de stock; Σ Quantity por producto = stock actual.
type InventoryMovement struct {
	ID          string
	ProductID   string
	Type        string
	Quantity    int    // negativo en salidas
	OrderItemID string // vacío salvo en ventas
	AdminID     string // vacío salvo en correcciones/robos atribuidos
	Timestamp   time.Time
}

// ValidMovementType indica si el tipo es conocido.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypeSale, MovementTypeAddStock, MovementTypeCorrection, MovementTypeTheft:
		return true
	}
	return false
}
