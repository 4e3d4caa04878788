package repository

import (
	"context"

	"github.com/jhoicas/bar-stock-api/internal/domain/entity"
)

// OrderFilter filtro de listado; UserID vacío = todos.
type OrderFilter struct {
	UserID string
}

// OrderRepository persistencia de pedidos y sus líneas. Los pedidos se devuelven con Items.
type OrderRepository interface {
	// Create inserta solo la cabecera; las líneas se insertan con CreateItem.
	Create(ctx context.Context, order *entity.Order) error
	CreateItem(ctx context.Context, item *entity.OrderItem) error
	MarkPaymentProcessed(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Order, error)
	// List orden cronológico ascendente.
	List(ctx context.Context, filter OrderFilter) ([]*entity.Order, error)
	// Delete borra la cabecera y sus líneas.
	Delete(ctx context.Context, id string) error
}
