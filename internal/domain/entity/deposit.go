package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de depósito. Adjustment corrige solo el saldo; no es dinero real y no toca el efectivo disponible.
const (
	DepositMethodCash       = "cash"
	DepositMethodMBWay      = "mbway"
	DepositMethodAdjustment = "adjustment"
)

// Deposit crédito (positivo) o débito (negativo) sobre el saldo de un usuario.
type Deposit struct {
	ID        string
	UserID    string
	Amount    decimal.Decimal
	Method    string
	Timestamp time.Time
}

// ValidDepositMethod indica si el método es conocido.
func ValidDepositMethod(m string) bool {
	switch m {
	case DepositMethodCash, DepositMethodMBWay, DepositMethodAdjustment:
		return true
	}
	return false
}

// MovesCash indica si el depósito representa dinero real que entra/sale del efectivo disponible.
func (d *Deposit) MovesCash() bool {
	return d.Method != DepositMethodAdjustment
}
