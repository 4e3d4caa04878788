// Package analytics es la capa de informes: funciones puras sobre colecciones ya cargadas
// más el caso de uso que las carga, cachea y exporta.
package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bar-stock-api/internal/application/dto"
	"github.com/jhoicas/bar-stock-api/internal/domain/entity"
	"github.com/jhoicas/bar-stock-api/internal/domain/ledger"
)

// SummaryInput colecciones sobre las que se calcula el resumen.
// Products debe incluir los inactivos: el costo actual de lo vendido se busca ahí.
type SummaryInput struct {
	Orders        []*entity.Order
	Products      []*entity.Product
	Deposits      []*entity.Deposit
	Users         []*entity.User
	AvailableCash decimal.Decimal
	Now           time.Time
}

// ComputeSummary calcula el resumen financiero redondeando a 2 decimales en cada suma.
//
//	totalRevenue    = Σ order.total (separado por método de pago)
//	totalStockValue = Σ purchasePrice × stock (activos)
//	expectedProfit  = Σ (precioSocio − purchasePrice) × stock (activos)
//	actualProfit    = totalRevenue − Σ purchasePrice actual × cantidad vendida
//	totalWealth     = totalDeposits + cashRevenue
func ComputeSummary(in SummaryInput) dto.FinancialSummaryDTO {
	out := dto.FinancialSummaryDTO{
		TotalRevenue:    decimal.Zero,
		BalanceRevenue:  decimal.Zero,
		CashRevenue:     decimal.Zero,
		TotalDeposits:   decimal.Zero,
		TotalStockValue: decimal.Zero,
		ExpectedProfit:  decimal.Zero,
		UserBalanceSum:  decimal.Zero,
		AvailableCash:   ledger.Round(in.AvailableCash),
		TotalOrders:     len(in.Orders),
		TotalUsers:      len(in.Users),
		GeneratedAt:     in.Now,
	}

	purchase := make(map[string]decimal.Decimal, len(in.Products))
	for _, p := range in.Products {
		purchase[p.ID] = p.PurchasePrice
		if !p.Active {
			continue
		}
		out.TotalProducts++
		out.TotalStockValue = ledger.Add(out.TotalStockValue, ledger.LineTotal(p.PurchasePrice, p.Stock))
		margin := p.SellingPriceMember.Sub(p.PurchasePrice)
		out.ExpectedProfit = ledger.Add(out.ExpectedProfit, ledger.LineTotal(margin, p.Stock))
	}

	costNow, costAtSale := decimal.Zero, decimal.Zero
	for _, o := range in.Orders {
		out.TotalRevenue = ledger.Add(out.TotalRevenue, o.Total)
		switch o.PaymentMethod {
		case entity.PaymentMethodBalance:
			out.BalanceRevenue = ledger.Add(out.BalanceRevenue, o.Total)
		case entity.PaymentMethodCash:
			out.CashRevenue = ledger.Add(out.CashRevenue, o.Total)
		}
		for _, it := range o.Items {
			current, ok := purchase[it.ProductID]
			if !ok {
				current = it.PurchasePriceAtSale
			}
			costNow = ledger.Add(costNow, ledger.LineTotal(current, it.Quantity))
			costAtSale = ledger.Add(costAtSale, ledger.LineTotal(it.PurchasePriceAtSale, it.Quantity))
		}
	}
	out.ActualProfit = ledger.Sub(out.TotalRevenue, costNow)
	out.ActualProfitAtSaleCost = ledger.Sub(out.TotalRevenue, costAtSale)

	for _, d := range in.Deposits {
		out.TotalDeposits = ledger.Add(out.TotalDeposits, d.Amount)
	}
	out.TotalWealth = ledger.Add(out.TotalDeposits, out.CashRevenue)

	for _, u := range in.Users {
		if u.IsMember {
			out.TotalMembers++
		}
		out.UserBalanceSum = ledger.Add(out.UserBalanceSum, u.Balance)
	}
	return out
}

// ComputeUserStats estadísticas de un usuario a partir de sus pedidos y depósitos.
func ComputeUserStats(user *entity.User, orders []*entity.Order, deposits []*entity.Deposit) dto.UserStatsDTO {
	stats := dto.UserStatsDTO{
		UserID:         user.ID,
		Balance:        user.Balance,
		TotalSpent:     decimal.Zero,
		TotalDeposited: decimal.Zero,
	}
	for _, o := range orders {
		if o.UserID != user.ID {
			continue
		}
		stats.OrderCount++
		stats.TotalSpent = ledger.Add(stats.TotalSpent, o.Total)
	}
	for _, d := range deposits {
		if d.UserID != user.ID {
			continue
		}
		stats.DepositCount++
		stats.TotalDeposited = ledger.Add(stats.TotalDeposited, d.Amount)
	}
	return stats
}
