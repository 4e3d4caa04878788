// Package reversal deshace pedidos, depósitos y robos como transacciones compensatorias:
// cada reversión revalida el estado actual antes de escribir.
package reversal

import (
	"context"
	"fmt"

	"github.com/jhoicas/bar-stock-api/internal/application/inventory"
	ledgeruc "github.com/jhoicas/bar-stock-api/internal/application/ledger"
	"github.com/jhoicas/bar-stock-api/internal/domain"
	"github.com/jhoicas/bar-stock-api/internal/domain/entity"
	"github.com/jhoicas/bar-stock-api/internal/domain/ledger"
	"github.com/jhoicas/bar-stock-api/internal/domain/repository"
	"github.com/jhoicas/bar-stock-api/pkg/logger"
)

// StockReverser operaciones del motor de inventario que necesita la reversión.
type StockReverser interface {
	ApplyInTx(ctx context.Context, repos repository.Repos, product *entity.Product, in inventory.MovementInput) (*entity.InventoryMovement, error)
	ReverseSalesInTx(ctx context.Context, repos repository.Repos, orderItemIDs []string) error
}

// UseCase motor de reversiones. Solo admins.
type UseCase struct {
	txRunner repository.TxRunner
	stock    StockReverser
	clock    domain.Clock
	log      *logger.Logger
}

// NewUseCase construye el motor de reversiones.
func NewUseCase(txRunner repository.TxRunner, stock StockReverser, clock domain.Clock, log *logger.Logger) *UseCase {
	return &UseCase{txRunner: txRunner, stock: stock, clock: clock, log: log}
}

// DeleteOrder revierte un pedido: devuelve el saldo (o retira el efectivo cobrado), devuelve
// las unidades al stock borrando sus movimientos de venta y elimina líneas y cabecera.
func (uc *UseCase) DeleteOrder(ctx context.Context, actor domain.Actor, orderID string) error {
	if !actor.IsAdmin() {
		return domain.ErrForbidden
	}
	var order *entity.Order
	err := uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		var err error
		order, err = repos.Orders.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrOrderNotFound
		}
		now := uc.clock.Now()

		// Orden de bloqueo igual que al crear el pedido: usuario, productos, caja.
		var user *entity.User
		refundBalance := order.PaymentProcessed && order.PaymentMethod == entity.PaymentMethodBalance
		if refundBalance {
			user, err = repos.Users.GetForUpdate(ctx, order.UserID)
			if err != nil {
				return err
			}
			if user == nil {
				return domain.ErrUserNotFound
			}
		}

		itemIDs := make([]string, len(order.Items))
		for i, it := range order.Items {
			itemIDs[i] = it.ID
		}
		if err := uc.stock.ReverseSalesInTx(ctx, repos, itemIDs); err != nil {
			return err
		}

		// Un pedido sin pago confirmado no movió saldo ni caja.
		if refundBalance {
			if err := repos.Users.UpdateBalance(ctx, user.ID, ledger.Add(user.Balance, order.Total)); err != nil {
				return err
			}
		}
		if order.PaymentProcessed && order.PaymentMethod == entity.PaymentMethodCash {
			reason := fmt.Sprintf("reversión pedido %s", order.ID)
			if _, err := ledgeruc.ApplyCashDeltaInTx(ctx, repos, order.Total.Neg(), reason, actor.UserID, now); err != nil {
				return err
			}
		}
		return repos.Orders.Delete(ctx, order.ID)
	})
	if err != nil {
		return err
	}
	uc.log.Info().
		Str("order_id", order.ID).
		Str("user_id", order.UserID).
		Str("total", order.Total.StringFixed(2)).
		Str("admin_id", actor.UserID).
		Msg("pedido revertido")
	return nil
}

// DeleteDeposit revierte un depósito si el saldo (y la caja, salvo ajustes) no quedan negativos.
// Si alguna comprobación falla no se modifica nada.
func (uc *UseCase) DeleteDeposit(ctx context.Context, actor domain.Actor, depositID string) error {
	if !actor.IsAdmin() {
		return domain.ErrForbidden
	}
	var dep *entity.Deposit
	err := uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		var err error
		dep, err = repos.Deposits.GetForUpdate(ctx, depositID)
		if err != nil {
			return err
		}
		if dep == nil {
			return domain.ErrDepositNotFound
		}
		user, err := repos.Users.GetForUpdate(ctx, dep.UserID)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.ErrUserNotFound
		}
		reversed := ledger.Sub(user.Balance, dep.Amount)
		if reversed.IsNegative() {
			return domain.NewLedgerError(domain.ErrBalanceWouldGoNegative, "usuario", user.ID, reversed, user.Balance)
		}
		if dep.MovesCash() {
			cash, err := repos.Cash.GetForUpdate(ctx)
			if err != nil {
				return err
			}
			if next := ledger.Sub(cash.Amount, dep.Amount); next.IsNegative() {
				return domain.NewLedgerError(domain.ErrCashWouldGoNegative, "efectivo", cash.ID, next, cash.Amount)
			}
		}

		if err := repos.Users.UpdateBalance(ctx, user.ID, reversed); err != nil {
			return err
		}
		if dep.MovesCash() {
			reason := fmt.Sprintf("reversión depósito %s (%s)", dep.ID, dep.Method)
			if _, err := ledgeruc.ApplyCashDeltaInTx(ctx, repos, dep.Amount.Neg(), reason, actor.UserID, uc.clock.Now()); err != nil {
				return err
			}
		}
		return repos.Deposits.Delete(ctx, dep.ID)
	})
	if err != nil {
		return err
	}
	uc.log.Info().
		Str("deposit_id", dep.ID).
		Str("user_id", dep.UserID).
		Str("amount", dep.Amount.StringFixed(2)).
		Str("admin_id", actor.UserID).
		Msg("depósito revertido")
	return nil
}

// DeleteTheftRecord devuelve las unidades robadas al stock con una corrección y borra el registro.
func (uc *UseCase) DeleteTheftRecord(ctx context.Context, actor domain.Actor, theftID string) error {
	if !actor.IsAdmin() {
		return domain.ErrForbidden
	}
	var rec *entity.TheftRecord
	err := uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		var err error
		rec, err = repos.Thefts.GetForUpdate(ctx, theftID)
		if err != nil {
			return err
		}
		if rec == nil {
			return domain.ErrTheftRecordNotFound
		}
		product, err := repos.Products.GetForUpdate(ctx, rec.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}
		if _, err := uc.stock.ApplyInTx(ctx, repos, product, inventory.MovementInput{
			ProductID: product.ID,
			Type:      entity.MovementTypeCorrection,
			Quantity:  rec.Quantity,
			AdminID:   actor.UserID,
		}); err != nil {
			return err
		}
		return repos.Thefts.Delete(ctx, rec.ID)
	})
	if err != nil {
		return err
	}
	uc.log.Info().
		Str("theft_id", rec.ID).
		Str("product_id", rec.ProductID).
		Int("quantity", rec.Quantity).
		Str("admin_id", actor.UserID).
		Msg("registro de robo revertido")
	return nil
}
