package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/bar-stock-api/internal/domain/entity"
	"github.com/jhoicas/bar-stock-api/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

// InventoryMovementRepo implementación del puerto InventoryMovementRepository sobre PostgreSQL.
type InventoryMovementRepo struct {
	q Querier
}

// NewInventoryMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

const movementColumns = `id, product_id, type, quantity, order_item_id, admin_id, ts`

func scanMovement(row pgx.Row) (*entity.InventoryMovement, error) {
	var m entity.InventoryMovement
	var orderItemID, adminID *string
	if err := row.Scan(&m.ID, &m.ProductID, &m.Type, &m.Quantity, &orderItemID, &adminID, &m.Timestamp); err != nil {
		return nil, err
	}
	m.OrderItemID, m.AdminID = deref(orderItemID), deref(adminID)
	return &m, nil
}

// Create inserta un movimiento (append-only).
func (r *InventoryMovementRepo) Create(ctx context.Context, m *entity.InventoryMovement) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO inventory_movements (`+movementColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		m.ID, m.ProductID, m.Type, m.Quantity, nullable(m.OrderItemID), nullable(m.AdminID), m.Timestamp)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

func (r *InventoryMovementRepo) list(ctx context.Context, query string, args ...any) ([]*entity.InventoryMovement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// ListByProduct historial del producto, más reciente primero. limit <= 0 = sin límite.
func (r *InventoryMovementRepo) ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM inventory_movements WHERE product_id = $1
		ORDER BY ts DESC, seq DESC OFFSET $2`
	args := []any{productID, offset}
	if limit > 0 {
		query += ` LIMIT $3`
		args = append(args, limit)
	}
	return r.list(ctx, query, args...)
}

// ListByOrderItems movimientos de venta asociados a las líneas dadas.
func (r *InventoryMovementRepo) ListByOrderItems(ctx context.Context, orderItemIDs []string) ([]*entity.InventoryMovement, error) {
	if len(orderItemIDs) == 0 {
		return nil, nil
	}
	return r.list(ctx, `SELECT `+movementColumns+` FROM inventory_movements
		WHERE order_item_id = ANY($1) ORDER BY ts, seq`, orderItemIDs)
}

// DeleteByOrderItems borra los movimientos de venta de un pedido revertido.
func (r *InventoryMovementRepo) DeleteByOrderItems(ctx context.Context, orderItemIDs []string) error {
	if len(orderItemIDs) == 0 {
		return nil
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM inventory_movements WHERE order_item_id = ANY($1)`, orderItemIDs); err != nil {
		return fmt.Errorf("delete movements: %w", err)
	}
	return nil
}

// SumByProduct Σ cantidades del producto (stock reconstruido).
func (r *InventoryMovementRepo) SumByProduct(ctx context.Context, productID string) (int, error) {
	var total int
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(quantity), 0)::int FROM inventory_movements WHERE product_id = $1`, productID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum movements: %w", err)
	}
	return total, nil
}
