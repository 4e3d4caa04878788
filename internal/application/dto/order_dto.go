package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bar-stock-api/internal/domain/entity"
)

// OrderLineRequest línea pedida. No lleva precio: lo fija el servidor según la membresía.
type OrderLineRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

// PlaceOrderRequest entrada de un pedido. UserID solo lo puede indicar un admin (venta en nombre de otro).
type PlaceOrderRequest struct {
	UserID        string             `json:"user_id" validate:"omitempty,uuid"`
	PaymentMethod string             `json:"payment_method" validate:"required,oneof=balance cash"`
	Items         []OrderLineRequest `json:"items" validate:"required,min=1,dive"`
}

// OrderItemResponse línea del pedido.
type OrderItemResponse struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"product_id"`
	Quantity     int             `json:"quantity"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

// OrderResponse salida de un pedido.
type OrderResponse struct {
	ID               string              `json:"id"`
	UserID           string              `json:"user_id"`
	Total            decimal.Decimal     `json:"total"`
	PaymentMethod    string              `json:"payment_method"`
	PaymentProcessed bool                `json:"payment_processed"`
	Timestamp        time.Time           `json:"timestamp"`
	Items            []OrderItemResponse `json:"items"`
}

// OrderFromEntity mapea la entidad a la respuesta.
func OrderFromEntity(o *entity.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemResponse{
			ID:           it.ID,
			ProductID:    it.ProductID,
			Quantity:     it.Quantity,
			PricePerUnit: it.PricePerUnit,
			Subtotal:     it.Subtotal,
		})
	}
	return OrderResponse{
		ID:               o.ID,
		UserID:           o.UserID,
		Total:            o.Total,
		PaymentMethod:    o.PaymentMethod,
		PaymentProcessed: o.PaymentProcessed,
		Timestamp:        o.Timestamp,
		Items:            items,
	}
}

// OrderListResponse lista de pedidos.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
}
