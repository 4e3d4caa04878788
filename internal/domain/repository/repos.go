package repository

import "context"

// Repos agrupa todos los repositorios atados a una misma conexión o transacción.
type Repos struct {
	Users     UserRepository
	Products  ProductRepository
	Movements InventoryMovementRepository
	Orders    OrderRepository
	Deposits  DepositRepository
	Cash      CashRepository
	Thefts    TheftRecordRepository
}

// TxRunner ejecuta fn dentro de una transacción: commit si fn devuelve nil, rollback en otro caso.
// Nada de lo escrito por fn sobrevive a un error.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos Repos) error) error
}
