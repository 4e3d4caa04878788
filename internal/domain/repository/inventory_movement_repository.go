package repository

import (
	"context"

	"github.com/jhoicas/bar-stock-api/internal/domain/entity"
)

// InventoryMovementRepository define el puerto de persistencia para movimientos de inventario.
// Los movimientos son inmutables; solo la reversión de un pedido borra los de venta.
type InventoryMovementRepository interface {
	Create(ctx context.Context, movement *entity.InventoryMovement) error
	// ListByProduct orden cronológico descendente (más reciente primero).
	ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.InventoryMovement, error)
	ListByOrderItems(ctx context.Context, orderItemIDs []string) ([]*entity.InventoryMovement, error)
	DeleteByOrderItems(ctx context.Context, orderItemIDs []string) error
	SumByProduct(ctx context.Context, productID string) (int, error)
}
