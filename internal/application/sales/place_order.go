// Package sales es el procesador de pedidos: valida, congela precios y cobra en una sola transacción.
package sales

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/bar-stock-api/internal/application/inventory"
	ledgeruc "github.com/jhoicas/bar-stock-api/internal/application/ledger"
	"github.com/jhoicas/bar-stock-api/internal/domain"
	"github.com/jhoicas/bar-stock-api/internal/domain/entity"
	"github.com/jhoicas/bar-stock-api/internal/domain/ledger"
	"github.com/jhoicas/bar-stock-api/internal/domain/repository"
	"github.com/jhoicas/bar-stock-api/pkg/logger"
)

// StockApplier aplica un movimiento dentro de una transacción abierta (lo implementa inventory.Engine).
type StockApplier interface {
	ApplyInTx(ctx context.Context, repos repository.Repos, product *entity.Product, in inventory.MovementInput) (*entity.InventoryMovement, error)
}

// OrderLine producto y cantidad pedidos. No hay campo de precio.
type OrderLine struct {
	ProductID string
	Quantity  int
}

// PlaceOrderInput entrada del pedido.
type PlaceOrderInput struct {
	UserID        string
	PaymentMethod string
	Lines         []OrderLine
}

// PlaceOrderUseCase crea pedidos y los cobra.
type PlaceOrderUseCase struct {
	txRunner repository.TxRunner
	repos    repository.Repos
	stock    StockApplier
	clock    domain.Clock
	log      *logger.Logger
}

// NewPlaceOrderUseCase construye el caso de uso.
func NewPlaceOrderUseCase(txRunner repository.TxRunner, repos repository.Repos, stock StockApplier, clock domain.Clock, log *logger.Logger) *PlaceOrderUseCase {
	return &PlaceOrderUseCase{txRunner: txRunner, repos: repos, stock: stock, clock: clock, log: log}
}

// PlaceOrder valida todas las líneas contra las filas bloqueadas, crea el pedido sin cobrar y,
// en la misma transacción, cobra: débito de saldo, pago confirmado, movimientos de venta y,
// si es en efectivo, entrada en caja. Cualquier fallo deja el store intacto.
func (uc *PlaceOrderUseCase) PlaceOrder(ctx context.Context, actor domain.Actor, in PlaceOrderInput) (*entity.Order, error) {
	if in.UserID == "" {
		in.UserID = actor.UserID
	}
	if !actor.CanActOn(in.UserID) {
		return nil, domain.ErrForbidden
	}
	if !entity.ValidPaymentMethod(in.PaymentMethod) {
		return nil, domain.ErrInvalidInput
	}
	lines, err := mergeLines(in.Lines)
	if err != nil {
		return nil, err
	}

	orderID := uuid.New().String()
	var order *entity.Order
	err = uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		var err error
		order, err = uc.placeInTx(ctx, repos, actor, orderID, in.UserID, in.PaymentMethod, lines)
		return err
	})
	if err != nil {
		if domain.IsDomainError(err) || errors.Is(err, context.Canceled) {
			uc.log.Warn().Err(err).Str("user_id", in.UserID).Msg("pedido rechazado")
			return nil, err
		}
		uc.log.Error().Err(err).Str("order_id", orderID).Msg("fallo al procesar el pago")
		return nil, domain.Wrap(domain.ErrPaymentProcessingFailure, "pedido", orderID, err)
	}

	uc.log.Info().
		Str("order_id", order.ID).
		Str("user_id", order.UserID).
		Str("total", order.Total.StringFixed(2)).
		Str("payment_method", order.PaymentMethod).
		Int("items", len(order.Items)).
		Msg("pedido registrado")
	return order, nil
}

func (uc *PlaceOrderUseCase) placeInTx(ctx context.Context, repos repository.Repos, actor domain.Actor, orderID, userID, method string, lines []OrderLine) (*entity.Order, error) {
	user, err := repos.Users.GetForUpdate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	ids := make([]string, len(lines))
	for i, l := range lines {
		ids[i] = l.ProductID
	}
	locked, err := repos.Products.GetManyForUpdate(ctx, ids)
	if err != nil {
		return nil, err
	}
	products := make(map[string]*entity.Product, len(locked))
	for _, p := range locked {
		products[p.ID] = p
	}

	now := uc.clock.Now()
	order := &entity.Order{
		ID:            orderID,
		UserID:        user.ID,
		PaymentMethod: method,
		Total:         decimal.Zero,
		Timestamp:     now,
	}
	for _, l := range lines {
		p, ok := products[l.ProductID]
		if !ok || !p.Active {
			return nil, domain.NewLedgerError(domain.ErrProductNotFound, "producto", l.ProductID, decimal.Zero, decimal.Zero)
		}
		if l.Quantity > p.Stock {
			return nil, domain.NewLedgerError(domain.ErrInsufficientStock, "producto", p.ID,
				decimal.NewFromInt(int64(l.Quantity)), decimal.NewFromInt(int64(p.Stock)))
		}
		price := p.PriceFor(user.IsMember)
		item := &entity.OrderItem{
			ID:                  uuid.New().String(),
			OrderID:             order.ID,
			ProductID:           p.ID,
			Quantity:            l.Quantity,
			PricePerUnit:        price,
			Subtotal:            ledger.LineTotal(price, l.Quantity),
			PurchasePriceAtSale: p.PurchasePrice,
		}
		order.Items = append(order.Items, item)
		order.Total = ledger.Add(order.Total, item.Subtotal)
	}

	var nextBalance decimal.Decimal
	if method == entity.PaymentMethodBalance {
		if user.Balance.LessThan(order.Total) {
			return nil, domain.NewLedgerError(domain.ErrInsufficientBalance, "usuario", user.ID, order.Total, user.Balance)
		}
		nextBalance = ledger.Sub(user.Balance, order.Total)
	}

	// Fase 1: pedido sin cobrar con sus líneas.
	if err := repos.Orders.Create(ctx, order); err != nil {
		return nil, err
	}
	for _, item := range order.Items {
		if err := repos.Orders.CreateItem(ctx, item); err != nil {
			return nil, err
		}
	}

	// Fase 2: cobro. El stock solo se descuenta aquí.
	if method == entity.PaymentMethodBalance {
		if err := repos.Users.UpdateBalance(ctx, user.ID, nextBalance); err != nil {
			return nil, err
		}
	}
	if err := repos.Orders.MarkPaymentProcessed(ctx, order.ID); err != nil {
		return nil, err
	}
	order.PaymentProcessed = true
	for _, item := range order.Items {
		_, err := uc.stock.ApplyInTx(ctx, repos, products[item.ProductID], inventory.MovementInput{
			ProductID:   item.ProductID,
			Type:        entity.MovementTypeSale,
			Quantity:    -item.Quantity,
			OrderItemID: item.ID,
		})
		if err != nil {
			return nil, err
		}
	}
	if method == entity.PaymentMethodCash {
		reason := fmt.Sprintf("pedido %s", order.ID)
		if _, err := ledgeruc.ApplyCashDeltaInTx(ctx, repos, order.Total, reason, actor.UserID, now); err != nil {
			return nil, err
		}
	}
	return order, nil
}

// mergeLines valida cantidades y suma las líneas repetidas del mismo producto (conserva el orden).
func mergeLines(lines []OrderLine) ([]OrderLine, error) {
	if len(lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	idx := make(map[string]int, len(lines))
	merged := make([]OrderLine, 0, len(lines))
	for _, l := range lines {
		if l.ProductID == "" || l.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		if i, ok := idx[l.ProductID]; ok {
			merged[i].Quantity += l.Quantity
			continue
		}
		idx[l.ProductID] = len(merged)
		merged = append(merged, l)
	}
	return merged, nil
}

// ListOrders pedidos en orden cronológico. Un usuario normal solo ve los suyos.
func (uc *PlaceOrderUseCase) ListOrders(ctx context.Context, actor domain.Actor, userID string) ([]*entity.Order, error) {
	if !actor.IsAdmin() {
		if userID != "" && userID != actor.UserID {
			return nil, domain.ErrForbidden
		}
		userID = actor.UserID
	}
	return uc.repos.Orders.List(ctx, repository.OrderFilter{UserID: userID})
}

// GetOrder obtiene un pedido propio (o cualquiera si es admin).
func (uc *PlaceOrderUseCase) GetOrder(ctx context.Context, actor domain.Actor, id string) (*entity.Order, error) {
	order, err := uc.repos.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}
	if !actor.CanActOn(order.UserID) {
		return nil, domain.ErrOrderNotFound
	}
	return order, nil
}
