package repository

import (
	"context"

	"github.com/jhoicas/bar-stock-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	// GetManyForUpdate bloquea los productos en orden ascendente de id (evita deadlocks entre pedidos).
	// Los ids inexistentes simplemente no aparecen en el resultado.
	GetManyForUpdate(ctx context.Context, ids []string) ([]*entity.Product, error)
	// Update modifica los campos descriptivos y precios; el stock solo cambia con UpdateStock.
	Update(ctx context.Context, product *entity.Product) error
	UpdateStock(ctx context.Context, id string, stock int) error
	SetActive(ctx context.Context, id string, active bool) error
	// List devuelve los productos con el flag active indicado, ordenados por nombre.
	List(ctx context.Context, active bool) ([]*entity.Product, error)
	// ListAll incluye inactivos (los informes los necesitan para el costo actual).
	ListAll(ctx context.Context) ([]*entity.Product, error)
}
