package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// FinancialSummaryDTO resumen financiero del bar. Todos los importes a 2 decimales.
type FinancialSummaryDTO struct {
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	BalanceRevenue decimal.Decimal `json:"balance_revenue"`
	CashRevenue    decimal.Decimal `json:"cash_revenue"`
	TotalDeposits  decimal.Decimal `json:"total_deposits"`
	TotalWealth    decimal.Decimal `json:"total_wealth"`

	TotalStockValue decimal.Decimal `json:"total_stock_value"`
	ExpectedProfit  decimal.Decimal `json:"expected_profit"`
	ActualProfit    decimal.Decimal `json:"actual_profit"`
	// ActualProfitAtSaleCost usa el costo congelado en cada línea en vez del costo actual.
	ActualProfitAtSaleCost decimal.Decimal `json:"actual_profit_at_sale_cost"`

	TotalOrders    int             `json:"total_orders"`
	TotalUsers     int             `json:"total_users"`
	TotalMembers   int             `json:"total_members"`
	TotalProducts  int             `json:"total_products"`
	UserBalanceSum decimal.Decimal `json:"user_balance_sum"`
	AvailableCash  decimal.Decimal `json:"available_cash"`
	GeneratedAt    time.Time       `json:"generated_at"`
}

// DebtorDTO usuario con deuda actual o histórica.
type DebtorDTO struct {
	UserID   string          `json:"user_id"`
	Name     string          `json:"name"`
	Balance  decimal.Decimal `json:"balance"`
	PeakDebt decimal.Decimal `json:"peak_debt"` // deuda máxima alcanzada (positiva)
}

// DebtorsBoardDTO ranking de deudores.
type DebtorsBoardDTO struct {
	Current  []DebtorDTO     `json:"current"`  // saldo < 0, más negativo primero
	AllTime  []DebtorDTO     `json:"all_time"` // mayor deuda histórica primero
	TotalDue decimal.Decimal `json:"total_due"`
}

// ActivityDTO evento del feed de actividad.
type ActivityDTO struct {
	Kind      string          `json:"kind"` // order | deposit | cash | theft
	ID        string          `json:"id"`
	UserID    string          `json:"user_id,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
	Detail    string          `json:"detail"`
	Timestamp time.Time       `json:"timestamp"`
}
