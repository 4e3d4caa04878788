package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/bar-stock-api/internal/domain"
	"github.com/jhoicas/bar-stock-api/internal/domain/entity"
	"github.com/jhoicas/bar-stock-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo persistencia de pedidos (cabecera + líneas) sobre PostgreSQL.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const (
	orderColumns = `id, user_id, total, payment_method, payment_processed, ts`
	itemColumns  = `id, order_id, product_id, quantity, price_per_unit, subtotal, purchase_price_at_sale`
)

// Create inserta la cabecera del pedido.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	_, err := r.q.Exec(ctx, `INSERT INTO orders (`+orderColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		o.ID, o.UserID, o.Total, o.PaymentMethod, o.PaymentProcessed, o.Timestamp)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// CreateItem inserta una línea del pedido.
func (r *OrderRepo) CreateItem(ctx context.Context, it *entity.OrderItem) error {
	_, err := r.q.Exec(ctx, `INSERT INTO order_items (`+itemColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		it.ID, it.OrderID, it.ProductID, it.Quantity, it.PricePerUnit, it.Subtotal, it.PurchasePriceAtSale)
	if err != nil {
		return fmt.Errorf("insert order item: %w", err)
	}
	return nil
}

// MarkPaymentProcessed confirma el pago del pedido.
func (r *OrderRepo) MarkPaymentProcessed(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `UPDATE orders SET payment_processed = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark payment processed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (r *OrderRepo) get(ctx context.Context, id, suffix string) (*entity.Order, error) {
	var o entity.Order
	err := r.q.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`+suffix, id).
		Scan(&o.ID, &o.UserID, &o.Total, &o.PaymentMethod, &o.PaymentProcessed, &o.Timestamp)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	items, err := r.items(ctx, `WHERE order_id = $1`, id)
	if err != nil {
		return nil, err
	}
	o.Items = items[o.ID]
	return &o, nil
}

// GetByID obtiene el pedido con sus líneas.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	return r.get(ctx, id, "")
}

// GetForUpdate bloquea la cabecera (las líneas se borran en cascada con ella).
func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.get(ctx, id, " FOR UPDATE")
}

// List pedidos en orden cronológico, con líneas.
func (r *OrderRepo) List(ctx context.Context, filter repository.OrderFilter) ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders`
	itemsWhere := ``
	var args []any
	if filter.UserID != "" {
		query += ` WHERE user_id = $1`
		itemsWhere = `WHERE order_id IN (SELECT id FROM orders WHERE user_id = $1)`
		args = append(args, filter.UserID)
	}
	query += ` ORDER BY ts, seq`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	var list []*entity.Order
	for rows.Next() {
		var o entity.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Total, &o.PaymentMethod, &o.PaymentProcessed, &o.Timestamp); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, &o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	items, err := r.items(ctx, itemsWhere, args...)
	if err != nil {
		return nil, err
	}
	for _, o := range list {
		o.Items = items[o.ID]
	}
	return list, nil
}

func (r *OrderRepo) items(ctx context.Context, where string, args ...any) (map[string][]*entity.OrderItem, error) {
	rows, err := r.q.Query(ctx, `SELECT `+itemColumns+` FROM order_items `+where+` ORDER BY seq`, args...)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	byOrder := make(map[string][]*entity.OrderItem)
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.PricePerUnit,
			&it.Subtotal, &it.PurchasePriceAtSale); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		byOrder[it.OrderID] = append(byOrder[it.OrderID], &it)
	}
	return byOrder, rows.Err()
}

// Delete borra el pedido; order_items cae por ON DELETE CASCADE.
func (r *OrderRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}
