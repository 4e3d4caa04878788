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

var _ repository.CashRepository = (*CashRepo)(nil)

// CashRepo fila única available_cash y su log sobre PostgreSQL.
type CashRepo struct {
	q Querier
}

// NewCashRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCashRepository(q Querier) *CashRepo {
	return &CashRepo{q: q}
}

func (r *CashRepo) get(ctx context.Context, suffix string) (*entity.AvailableCash, error) {
	var c entity.AvailableCash
	err := r.q.QueryRow(ctx, `SELECT id, amount, version, updated_at FROM available_cash WHERE id = $1`+suffix,
		entity.AvailableCashID).Scan(&c.ID, &c.Amount, &c.Version, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("available_cash sin inicializar: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get available cash: %w", err)
	}
	return &c, nil
}

// Get lee el efectivo disponible.
func (r *CashRepo) Get(ctx context.Context) (*entity.AvailableCash, error) {
	return r.get(ctx, "")
}

// GetForUpdate lee y bloquea la fila.
func (r *CashRepo) GetForUpdate(ctx context.Context) (*entity.AvailableCash, error) {
	return r.get(ctx, " FOR UPDATE")
}

// Update guarda el nuevo importe si la versión no cambió (control optimista).
func (r *CashRepo) Update(ctx context.Context, c *entity.AvailableCash) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE available_cash SET amount = $2, updated_at = $3, version = version + 1
		WHERE id = $1 AND version = $4`,
		entity.AvailableCashID, c.Amount, c.UpdatedAt, c.Version)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrCashWouldGoNegative
		}
		return fmt.Errorf("update available cash: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	c.Version++
	return nil
}

// CreateLog inserta la auditoría de un cambio.
func (r *CashRepo) CreateLog(ctx context.Context, l *entity.AvailableCashLog) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO available_cash_logs (id, previous_amount, new_amount, difference, reason, admin_id, ts)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		l.ID, l.PreviousAmount, l.NewAmount, l.Difference, l.Reason, nullable(l.AdminID), l.Timestamp)
	if err != nil {
		return fmt.Errorf("insert cash log: %w", err)
	}
	return nil
}

// ListLogs auditoría, más reciente primero.
func (r *CashRepo) ListLogs(ctx context.Context, limit int) ([]*entity.AvailableCashLog, error) {
	query := `SELECT id, previous_amount, new_amount, difference, reason, admin_id, ts
		FROM available_cash_logs ORDER BY ts DESC, seq DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list cash logs: %w", err)
	}
	defer rows.Close()
	var list []*entity.AvailableCashLog
	for rows.Next() {
		var l entity.AvailableCashLog
		var adminID *string
		if err := rows.Scan(&l.ID, &l.PreviousAmount, &l.NewAmount, &l.Difference, &l.Reason, &adminID, &l.Timestamp); err != nil {
			return nil, fmt.Errorf("scan cash log: %w", err)
		}
		l.AdminID = deref(adminID)
		list = append(list, &l)
	}
	return list, rows.Err()
}
