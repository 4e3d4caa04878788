package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bar-stock-api/internal/domain/entity"
)

// CreateProductRequest entrada para crear un producto. InitialStock se registra como add_stock.
type CreateProductRequest struct {
	Name                  string          `json:"name" validate:"required,min=1,max=200"`
	Image                 string          `json:"image" validate:"omitempty,max=500"`
	PurchasePrice         decimal.Decimal `json:"purchase_price"`
	SellingPriceMember    decimal.Decimal `json:"selling_price_member"`
	SellingPriceNonMember decimal.Decimal `json:"selling_price_non_member"`
	InitialStock          int             `json:"initial_stock" validate:"min=0"`
}

// UpdateProductRequest edición de un producto. Stock/OriginalStock/MarkAsStolen disparan
// la corrección o el robo correspondiente.
type UpdateProductRequest struct {
	Name                  *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Image                 *string          `json:"image" validate:"omitempty,max=500"`
	PurchasePrice         *decimal.Decimal `json:"purchase_price"`
	SellingPriceMember    *decimal.Decimal `json:"selling_price_member"`
	SellingPriceNonMember *decimal.Decimal `json:"selling_price_non_member"`
	Stock                 *int             `json:"stock" validate:"omitempty,min=0"`
	OriginalStock         *int             `json:"original_stock" validate:"omitempty,min=0"`
	MarkAsStolen          bool             `json:"mark_as_stolen"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID                    string          `json:"id"`
	Name                  string          `json:"name"`
	Image                 string          `json:"image,omitempty"`
	PurchasePrice         decimal.Decimal `json:"purchase_price"`
	SellingPriceMember    decimal.Decimal `json:"selling_price_member"`
	SellingPriceNonMember decimal.Decimal `json:"selling_price_non_member"`
	Stock                 int             `json:"stock"`
	Active                bool            `json:"active"`
	CreatedAt             time.Time       `json:"created_at"`
}

// ProductFromEntity mapea la entidad a la respuesta.
func ProductFromEntity(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:                    p.ID,
		Name:                  p.Name,
		Image:                 p.Image,
		PurchasePrice:         p.PurchasePrice,
		SellingPriceMember:    p.SellingPriceMember,
		SellingPriceNonMember: p.SellingPriceNonMember,
		Stock:                 p.Stock,
		Active:                p.Active,
		CreatedAt:             p.CreatedAt,
	}
}

// ProductListResponse lista de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
}
