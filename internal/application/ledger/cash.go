// Package ledger gestiona saldos de usuarios y el efectivo disponible. Cada cambio de efectivo
// queda en AvailableCashLog dentro de la misma transacción.
package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/bar-stock-api/internal/domain"
	"github.com/jhoicas/bar-stock-api/internal/domain/entity"
	"github.com/jhoicas/bar-stock-api/internal/domain/ledger"
	"github.com/jhoicas/bar-stock-api/internal/domain/repository"
	"github.com/jhoicas/bar-stock-api/pkg/logger"
)

// ApplyCashDeltaInTx suma delta al efectivo disponible (bloqueando la fila) y registra el log.
// Rechaza con ErrCashWouldGoNegative si el resultado fuera negativo.
func ApplyCashDeltaInTx(ctx context.Context, repos repository.Repos, delta decimal.Decimal, reason, adminID string, now time.Time) (*entity.AvailableCashLog, error) {
	cash, err := repos.Cash.GetForUpdate(ctx)
	if err != nil {
		return nil, err
	}
	next := ledger.Add(cash.Amount, delta)
	if next.IsNegative() {
		return nil, domain.NewLedgerError(domain.ErrCashWouldGoNegative, "efectivo", cash.ID, next, cash.Amount)
	}
	return writeCash(ctx, repos, cash, next, reason, adminID, now)
}

func writeCash(ctx context.Context, repos repository.Repos, cash *entity.AvailableCash, next decimal.Decimal, reason, adminID string, now time.Time) (*entity.AvailableCashLog, error) {
	log := &entity.AvailableCashLog{
		ID:             uuid.New().String(),
		PreviousAmount: cash.Amount,
		NewAmount:      next,
		Difference:     ledger.Sub(next, cash.Amount),
		Reason:         reason,
		AdminID:        adminID,
		Timestamp:      now,
	}
	cash.Amount = next
	cash.UpdatedAt = now
	if err := repos.Cash.Update(ctx, cash); err != nil {
		return nil, err
	}
	if err := repos.Cash.CreateLog(ctx, log); err != nil {
		return nil, err
	}
	return log, nil
}

// CashUseCase consulta y fija el efectivo disponible.
type CashUseCase struct {
	txRunner repository.TxRunner
	repos    repository.Repos
	clock    domain.Clock
	log      *logger.Logger
}

// NewCashUseCase construye el caso de uso.
func NewCashUseCase(txRunner repository.TxRunner, repos repository.Repos, clock domain.Clock, log *logger.Logger) *CashUseCase {
	return &CashUseCase{txRunner: txRunner, repos: repos, clock: clock, log: log}
}

// Get devuelve el efectivo disponible.
func (uc *CashUseCase) Get(ctx context.Context) (*entity.AvailableCash, error) {
	return uc.repos.Cash.Get(ctx)
}

// SetAvailableCash sobrescribe el efectivo disponible dejando {anterior, nuevo, diferencia, motivo, admin} en el log.
func (uc *CashUseCase) SetAvailableCash(ctx context.Context, actor domain.Actor, newAmount decimal.Decimal, reason string) (*entity.AvailableCashLog, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	newAmount = ledger.Round(newAmount)
	if newAmount.IsNegative() || reason == "" {
		return nil, domain.ErrInvalidInput
	}

	var entry *entity.AvailableCashLog
	err := uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		cash, err := repos.Cash.GetForUpdate(ctx)
		if err != nil {
			return err
		}
		entry, err = writeCash(ctx, repos, cash, newAmount, reason, actor.UserID, uc.clock.Now())
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("previous", entry.PreviousAmount.StringFixed(2)).
		Str("new", entry.NewAmount.StringFixed(2)).
		Str("admin_id", actor.UserID).
		Str("reason", reason).
		Msg("efectivo disponible fijado")
	return entry, nil
}

// ListLogs auditoría del efectivo, más reciente primero.
func (uc *CashUseCase) ListLogs(ctx context.Context, actor domain.Actor, limit int) ([]*entity.AvailableCashLog, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return uc.repos.Cash.ListLogs(ctx, limit)
}
