package analytics

import (
	"fmt"
	"sort"

	"github.com/jhoicas/bar-stock-api/internal/application/dto"
	"github.com/jhoicas/bar-stock-api/internal/domain/entity"
)

// Tipos de evento del feed de actividad.
const (
	ActivityOrder   = "order"
	ActivityDeposit = "deposit"
	ActivityCash    = "cash"
	ActivityTheft   = "theft"
)

// BuildActivity mezcla pedidos, depósitos, cambios de caja y robos, más reciente primero.
// limit <= 0 = sin límite.
func BuildActivity(orders []*entity.Order, deposits []*entity.Deposit, cashLogs []*entity.AvailableCashLog, thefts []*entity.TheftRecord, limit int) []dto.ActivityDTO {
	feed := make([]dto.ActivityDTO, 0, len(orders)+len(deposits)+len(cashLogs)+len(thefts))
	for _, o := range orders {
		feed = append(feed, dto.ActivityDTO{
			Kind: ActivityOrder, ID: o.ID, UserID: o.UserID, Amount: o.Total,
			Detail:    fmt.Sprintf("%d líneas, pago %s", len(o.Items), o.PaymentMethod),
			Timestamp: o.Timestamp,
		})
	}
	for _, d := range deposits {
		feed = append(feed, dto.ActivityDTO{
			Kind: ActivityDeposit, ID: d.ID, UserID: d.UserID, Amount: d.Amount,
			Detail: d.Method, Timestamp: d.Timestamp,
		})
	}
	for _, l := range cashLogs {
		feed = append(feed, dto.ActivityDTO{
			Kind: ActivityCash, ID: l.ID, UserID: l.AdminID, Amount: l.Difference,
			Detail: l.Reason, Timestamp: l.Timestamp,
		})
	}
	for _, t := range thefts {
		feed = append(feed, dto.ActivityDTO{
			Kind: ActivityTheft, ID: t.ID, UserID: t.AdminID,
			Detail:    fmt.Sprintf("%d × %s", t.Quantity, t.ProductName),
			Timestamp: t.Timestamp,
		})
	}
	sort.SliceStable(feed, func(i, j int) bool {
		return feed[i].Timestamp.After(feed[j].Timestamp)
	})
	if limit > 0 && len(feed) > limit {
		feed = feed[:limit]
	}
	return feed
}
