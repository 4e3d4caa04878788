package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bar-stock-api/internal/domain/entity"
)

// CreateUserRequest alta del perfil de ledger de una identidad ya emitida por el proveedor.
// ID opcional: si viene, debe coincidir con el user_id del token de esa persona.
type CreateUserRequest struct {
	ID             string           `json:"id" validate:"omitempty,uuid"`
	Name           string           `json:"name" validate:"required,min=1,max=200"`
	Email          string           `json:"email" validate:"omitempty,email"`
	Role           string           `json:"role" validate:"omitempty,oneof=admin user"`
	IsMember       bool             `json:"is_member"`
	InitialBalance *decimal.Decimal `json:"initial_balance"`
}

// UpdateUserRequest edición de un usuario. Balance se registra como ajuste por la diferencia.
type UpdateUserRequest struct {
	Name     *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Email    *string          `json:"email" validate:"omitempty,email"`
	Role     *string          `json:"role" validate:"omitempty,oneof=admin user"`
	IsMember *bool            `json:"is_member"`
	Balance  *decimal.Decimal `json:"balance"`
}

// SetMembershipRequest cambia la membresía.
type SetMembershipRequest struct {
	IsMember bool `json:"is_member"`
}

// UserResponse salida de un usuario.
type UserResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email,omitempty"`
	Balance   decimal.Decimal `json:"balance"`
	IsMember  bool            `json:"is_member"`
	Role      string          `json:"role"`
	CreatedAt time.Time       `json:"created_at"`
}

// UserFromEntity mapea la entidad a la respuesta.
func UserFromEntity(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Balance:   u.Balance,
		IsMember:  u.IsMember,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// UserListResponse lista de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
}

// UserStatsDTO estadísticas de un usuario.
type UserStatsDTO struct {
	UserID         string          `json:"user_id"`
	Balance        decimal.Decimal `json:"balance"`
	TotalSpent     decimal.Decimal `json:"total_spent"`
	TotalDeposited decimal.Decimal `json:"total_deposited"`
	OrderCount     int             `json:"order_count"`
	DepositCount   int             `json:"deposit_count"`
}
