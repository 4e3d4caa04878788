package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Roles válidos para User.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User perfil de ledger de un socio o cliente del bar.
// Balance puede ser negativo (deuda); solo cambia vía depósitos/ajustes y pedidos pagados con saldo.
type User struct {
	ID        string
	Name      string
	Email     string
	Balance   decimal.Decimal // 2 decimales
	IsMember  bool            // define el precio (socio / no socio)
	Role      string          // admin, user
	CreatedAt time.Time
}

// ValidRole indica si el rol es conocido.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}
