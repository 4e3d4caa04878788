package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bar-stock-api/internal/domain/entity"
)

// AddDepositRequest depósito (o débito con importe negativo) sobre el saldo de un usuario.
type AddDepositRequest struct {
	UserID string          `json:"user_id" validate:"required,uuid"`
	Amount decimal.Decimal `json:"amount"`
	Method string          `json:"method" validate:"required,oneof=cash mbway adjustment"`
}

// DepositResponse salida de un depósito.
type DepositResponse struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"`
	Timestamp time.Time       `json:"timestamp"`
}

// DepositFromEntity mapea la entidad a la respuesta.
func DepositFromEntity(d *entity.Deposit) DepositResponse {
	return DepositResponse{ID: d.ID, UserID: d.UserID, Amount: d.Amount, Method: d.Method, Timestamp: d.Timestamp}
}

// DepositListResponse lista de depósitos.
type DepositListResponse struct {
	Items []DepositResponse `json:"items"`
}

// SetCashRequest fija el efectivo disponible.
type SetCashRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Reason string          `json:"reason" validate:"required,min=1,max=500"`
}

// CashResponse efectivo disponible.
type CashResponse struct {
	Amount    decimal.Decimal `json:"amount"`
	Version   int64           `json:"version"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// CashLogResponse entrada de auditoría del efectivo.
type CashLogResponse struct {
	ID             string          `json:"id"`
	PreviousAmount decimal.Decimal `json:"previous_amount"`
	NewAmount      decimal.Decimal `json:"new_amount"`
	Difference     decimal.Decimal `json:"difference"`
	Reason         string          `json:"reason"`
	AdminID        string          `json:"admin_id,omitempty"`
	Timestamp      time.Time       `json:"timestamp"`
}

// CashLogFromEntity mapea la entidad a la respuesta.
func CashLogFromEntity(l *entity.AvailableCashLog) CashLogResponse {
	return CashLogResponse{
		ID:             l.ID,
		PreviousAmount: l.PreviousAmount,
		NewAmount:      l.NewAmount,
		Difference:     l.Difference,
		Reason:         l.Reason,
		AdminID:        l.AdminID,
		Timestamp:      l.Timestamp,
	}
}
