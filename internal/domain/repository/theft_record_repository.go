package repository

import (
	"context"

	"github.com/jhoicas/bar-stock-api/internal/domain/entity"
)

// TheftRecordRepository persistencia de registros de robo.
type TheftRecordRepository interface {
	Create(ctx context.Context, record *entity.TheftRecord) error
	GetByID(ctx context.Context, id string) (*entity.TheftRecord, error)
	GetForUpdate(ctx context.Context, id string) (*entity.TheftRecord, error)
	// List orden cronológico ascendente.
	List(ctx context.Context) ([]*entity.TheftRecord, error)
	Delete(ctx context.Context, id string) error
}
