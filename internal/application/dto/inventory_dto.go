package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bar-stock-api/internal/domain/entity"
)

// RegisterMovementRequest movimiento manual de un admin (add_stock, correction, theft).
type RegisterMovementRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Type      string `json:"type" validate:"required,oneof=add_stock correction theft"`
	Quantity  int    `json:"quantity" validate:"required"`
}

// MovementResponse salida de un movimiento.
type MovementResponse struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	Type        string    `json:"type"`
	Quantity    int       `json:"quantity"`
	OrderItemID string    `json:"order_item_id,omitempty"`
	AdminID     string    `json:"admin_id,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// MovementFromEntity mapea la entidad a la respuesta.
func MovementFromEntity(m *entity.InventoryMovement) MovementResponse {
	return MovementResponse{
		ID:          m.ID,
		ProductID:   m.ProductID,
		Type:        m.Type,
		Quantity:    m.Quantity,
		OrderItemID: m.OrderItemID,
		AdminID:     m.AdminID,
		Timestamp:   m.Timestamp,
	}
}

// MovementListResponse historial paginado.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// ReconcileResponse resultado de verificar stock == Σ movimientos.
type ReconcileResponse struct {
	ProductID   string    `json:"product_id"`
	CachedStock int       `json:"cached_stock"`
	MovementSum int       `json:"movement_sum"`
	Consistent  bool      `json:"consistent"`
	CheckedAt   time.Time `json:"checked_at"`
}

// RestockItemDTO producto bajo el umbral con la reposición sugerida.
type RestockItemDTO struct {
	Priority       int             `json:"priority"` // 1 = más urgente
	ProductID      string          `json:"product_id"`
	ProductName    string          `json:"product_name"`
	CurrentStock   int             `json:"current_stock"`
	SuggestedQty   int             `json:"suggested_qty"`
	UnitCost       decimal.Decimal `json:"unit_cost"`
	EstimatedCost  decimal.Decimal `json:"estimated_cost"`
	CumulativeCost decimal.Decimal `json:"cumulative_cost"`
	Affordable     bool            `json:"affordable"` // el acumulado cabe en el efectivo disponible
}

// RestockListDTO lista de reposición.
type RestockListDTO struct {
	Threshold     int              `json:"threshold"`
	Target        int              `json:"target"`
	AvailableCash decimal.Decimal  `json:"available_cash"`
	TotalCost     decimal.Decimal  `json:"total_cost"`
	Items         []RestockItemDTO `json:"items"`
}

// TheftRecordResponse salida de un registro de robo.
type TheftRecordResponse struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	AdminID     string    `json:"admin_id,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// TheftRecordFromEntity mapea la entidad a la respuesta.
func TheftRecordFromEntity(t *entity.TheftRecord) TheftRecordResponse {
	return TheftRecordResponse{
		ID:          t.ID,
		ProductID:   t.ProductID,
		ProductName: t.ProductName,
		Quantity:    t.Quantity,
		AdminID:     t.AdminID,
		Timestamp:   t.Timestamp,
	}
}
