package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago de un pedido.
const (
	PaymentMethodBalance = "balance"
	PaymentMethodCash    = "cash"
)

// Order cabecera de un pedido. PaymentProcessed pasa a true solo cuando el pago se confirma
// (en la misma transacción que descuenta el stock).
type Order struct {
	ID               string
	UserID           string
	Total            decimal.Decimal
	PaymentMethod    string
	PaymentProcessed bool
	Timestamp        time.Time
	Items            []*OrderItem
}

// OrderItem línea del pedido con el precio congelado al momento de la compra.
type OrderItem struct {
	ID                  string
	OrderID             string
	ProductID           string
	Quantity            int
	PricePerUnit        decimal.Decimal
	Subtotal            decimal.Decimal
	PurchasePriceAtSale decimal.Decimal // costo de compra al momento de la venta (solo informes)
}

// ValidPaymentMethod indica si el método de pago es conocido.
func ValidPaymentMethod(m string) bool {
	return m == PaymentMethodBalance || m == PaymentMethodCash
}
