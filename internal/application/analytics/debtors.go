package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bar-stock-api/internal/application/dto"
	"github.com/jhoicas/bar-stock-api/internal/domain/entity"
	"github.com/jhoicas/bar-stock-api/internal/domain/ledger"
)

type balanceEvent struct {
	at     time.Time
	seq    int
	amount decimal.Decimal
}

// ComputeDebtors ranking de deudores: Current por saldo actual (< 0, más negativo primero) y
// AllTime por la deuda máxima alcanzada, reconstruida reproduciendo en orden cronológico
// depósitos y pedidos pagados con saldo.
func ComputeDebtors(users []*entity.User, orders []*entity.Order, deposits []*entity.Deposit) dto.DebtorsBoardDTO {
	events := make(map[string][]balanceEvent)
	seq := 0
	for _, d := range deposits {
		events[d.UserID] = append(events[d.UserID], balanceEvent{at: d.Timestamp, seq: seq, amount: d.Amount})
		seq++
	}
	for _, o := range orders {
		if o.PaymentMethod != entity.PaymentMethodBalance {
			continue
		}
		events[o.UserID] = append(events[o.UserID], balanceEvent{at: o.Timestamp, seq: seq, amount: o.Total.Neg()})
		seq++
	}

	board := dto.DebtorsBoardDTO{
		Current:  []dto.DebtorDTO{},
		AllTime:  []dto.DebtorDTO{},
		TotalDue: decimal.Zero,
	}
	for _, u := range users {
		evs := events[u.ID]
		sort.SliceStable(evs, func(i, j int) bool {
			if !evs[i].at.Equal(evs[j].at) {
				return evs[i].at.Before(evs[j].at)
			}
			return evs[i].seq < evs[j].seq
		})
		running, peak := decimal.Zero, decimal.Zero
		for _, e := range evs {
			running = ledger.Add(running, e.amount)
			if debt := running.Neg(); debt.GreaterThan(peak) {
				peak = debt
			}
		}
		if debt := u.Balance.Neg(); debt.GreaterThan(peak) {
			peak = debt
		}

		entry := dto.DebtorDTO{UserID: u.ID, Name: u.Name, Balance: u.Balance, PeakDebt: peak}
		if u.Balance.IsNegative() {
			board.Current = append(board.Current, entry)
			board.TotalDue = ledger.Add(board.TotalDue, u.Balance.Neg())
		}
		if peak.IsPositive() {
			board.AllTime = append(board.AllTime, entry)
		}
	}

	sort.SliceStable(board.Current, func(i, j int) bool {
		return board.Current[i].Balance.LessThan(board.Current[j].Balance)
	})
	sort.SliceStable(board.AllTime, func(i, j int) bool {
		return board.AllTime[i].PeakDebt.GreaterThan(board.AllTime[j].PeakDebt)
	})
	return board
}
