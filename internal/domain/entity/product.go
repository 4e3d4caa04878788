package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product artículo vendido en el bar.
// Stock es una caché de Σ movimientos: solo lo escribe el motor de inventario al aplicar un movimiento.
type Product struct {
	ID                    string
	Name                  string
	Image                 string
	PurchasePrice         decimal.Decimal
	SellingPriceMember    decimal.Decimal
	SellingPriceNonMember decimal.Decimal
	Stock                 int
	Active                bool // false = eliminado (soft delete), sigue referenciado por pedidos
	CreatedAt             time.Time
}

// PriceFor devuelve el precio unitario según la membresía del comprador.
func (p *Product) PriceFor(isMember bool) decimal.Decimal {
	if isMember {
		return p.SellingPriceMember
	}
	return p.SellingPriceNonMember
}
