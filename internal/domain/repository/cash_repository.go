package repository

import (
	"context"

	"github.com/jhoicas/bar-stock-api/internal/domain/entity"
)

// CashRepository fila única de efectivo disponible y su auditoría.
type CashRepository interface {
	Get(ctx context.Context) (*entity.AvailableCash, error)
	GetForUpdate(ctx context.Context) (*entity.AvailableCash, error)
	// Update guarda Amount si Version coincide con la almacenada y la incrementa en cash.
	// Devuelve domain.ErrConflict si otra escritura se adelantó.
	Update(ctx context.Context, cash *entity.AvailableCash) error
	CreateLog(ctx context.Context, log *entity.AvailableCashLog) error
	// ListLogs orden cronológico descendente; limit <= 0 = sin límite.
	ListLogs(ctx context.Context, limit int) ([]*entity.AvailableCashLog, error)
}
