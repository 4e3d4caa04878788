package repository

import (
	"context"

	"github.com/jhoicas/bar-stock-api/internal/domain/entity"
)

// DepositRepository persistencia de depósitos (créditos/débitos de saldo).
type DepositRepository interface {
	Create(ctx context.Context, deposit *entity.Deposit) error
	GetByID(ctx context.Context, id string) (*entity.Deposit, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Deposit, error)
	// List orden cronológico ascendente; userID vacío = todos.
	List(ctx context.Context, userID string) ([]*entity.Deposit, error)
	Delete(ctx context.Context, id string) error
}
