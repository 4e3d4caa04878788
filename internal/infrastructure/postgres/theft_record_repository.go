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

var _ repository.TheftRecordRepository = (*TheftRecordRepo)(nil)

// TheftRecordRepo persistencia de registros de robo sobre PostgreSQL.
type TheftRecordRepo struct {
	q Querier
}

// NewTheftRecordRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTheftRecordRepository(q Querier) *TheftRecordRepo {
	return &TheftRecordRepo{q: q}
}

const theftColumns = `id, product_id, product_name, quantity, admin_id, ts`

func scanTheft(row pgx.Row) (*entity.TheftRecord, error) {
	var t entity.TheftRecord
	var adminID *string
	if err := row.Scan(&t.ID, &t.ProductID, &t.ProductName, &t.Quantity, &adminID, &t.Timestamp); err != nil {
		return nil, err
	}
	t.AdminID = deref(adminID)
	return &t, nil
}

// Create inserta el registro.
func (r *TheftRecordRepo) Create(ctx context.Context, t *entity.TheftRecord) error {
	_, err := r.q.Exec(ctx, `INSERT INTO theft_records (`+theftColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		t.ID, t.ProductID, t.ProductName, t.Quantity, nullable(t.AdminID), t.Timestamp)
	if err != nil {
		return fmt.Errorf("insert theft record: %w", err)
	}
	return nil
}

func (r *TheftRecordRepo) get(ctx context.Context, id, suffix string) (*entity.TheftRecord, error) {
	t, err := scanTheft(r.q.QueryRow(ctx, `SELECT `+theftColumns+` FROM theft_records WHERE id = $1`+suffix, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get theft record: %w", err)
	}
	return t, nil
}

// GetByID obtiene un registro.
func (r *TheftRecordRepo) GetByID(ctx context.Context, id string) (*entity.TheftRecord, error) {
	return r.get(ctx, id, "")
}

// GetForUpdate obtiene y bloquea un registro.
func (r *TheftRecordRepo) GetForUpdate(ctx context.Context, id string) (*entity.TheftRecord, error) {
	return r.get(ctx, id, " FOR UPDATE")
}

// List registros en orden cronológico.
func (r *TheftRecordRepo) List(ctx context.Context) ([]*entity.TheftRecord, error) {
	rows, err := r.q.Query(ctx, `SELECT `+theftColumns+` FROM theft_records ORDER BY ts, seq`)
	if err != nil {
		return nil, fmt.Errorf("list theft records: %w", err)
	}
	defer rows.Close()
	var list []*entity.TheftRecord
	for rows.Next() {
		t, err := scanTheft(rows)
		if err != nil {
			return nil, fmt.Errorf("scan theft record: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// Delete borra el registro.
func (r *TheftRecordRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM theft_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete theft record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTheftRecordNotFound
	}
	return nil
}
