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

var _ repository.DepositRepository = (*DepositRepo)(nil)

// DepositRepo persistencia de depósitos sobre PostgreSQL.
type DepositRepo struct {
	q Querier
}

// NewDepositRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDepositRepository(q Querier) *DepositRepo {
	return &DepositRepo{q: q}
}

const depositColumns = `id, user_id, amount, method, ts`

func scanDeposit(row pgx.Row) (*entity.Deposit, error) {
	var d entity.Deposit
	if err := row.Scan(&d.ID, &d.UserID, &d.Amount, &d.Method, &d.Timestamp); err != nil {
		return nil, err
	}
	return &d, nil
}

// Create inserta el depósito.
func (r *DepositRepo) Create(ctx context.Context, d *entity.Deposit) error {
	_, err := r.q.Exec(ctx, `INSERT INTO deposits (`+depositColumns+`) VALUES ($1, $2, $3, $4, $5)`,
		d.ID, d.UserID, d.Amount, d.Method, d.Timestamp)
	if err != nil {
		return fmt.Errorf("insert deposit: %w", err)
	}
	return nil
}

func (r *DepositRepo) get(ctx context.Context, id, suffix string) (*entity.Deposit, error) {
	d, err := scanDeposit(r.q.QueryRow(ctx, `SELECT `+depositColumns+` FROM deposits WHERE id = $1`+suffix, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get deposit: %w", err)
	}
	return d, nil
}

// GetByID obtiene un depósito.
func (r *DepositRepo) GetByID(ctx context.Context, id string) (*entity.Deposit, error) {
	return r.get(ctx, id, "")
}

// GetForUpdate obtiene y bloquea el depósito.
func (r *DepositRepo) GetForUpdate(ctx context.Context, id string) (*entity.Deposit, error) {
	return r.get(ctx, id, " FOR UPDATE")
}

// List depósitos en orden cronológico; userID vacío = todos.
func (r *DepositRepo) List(ctx context.Context, userID string) ([]*entity.Deposit, error) {
	query := `SELECT ` + depositColumns + ` FROM deposits`
	var args []any
	if userID != "" {
		query += ` WHERE user_id = $1`
		args = append(args, userID)
	}
	rows, err := r.q.Query(ctx, query+` ORDER BY ts, seq`, args...)
	if err != nil {
		return nil, fmt.Errorf("list deposits: %w", err)
	}
	defer rows.Close()
	var list []*entity.Deposit
	for rows.Next() {
		d, err := scanDeposit(rows)
		if err != nil {
			return nil, fmt.Errorf("scan deposit: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// Delete borra el depósito.
func (r *DepositRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM deposits WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete deposit: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDepositNotFound
	}
	return nil
}
