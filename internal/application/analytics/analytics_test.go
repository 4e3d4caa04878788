package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bar-stock-api/internal/application/analytics"
	"github.com/jhoicas/bar-stock-api/internal/application/apptest"
	"github.com/jhoicas/bar-stock-api/internal/application/dto"
	"github.com/jhoicas/bar-stock-api/internal/application/sales"
	"github.com/jhoicas/bar-stock-api/internal/domain"
	"github.com/jhoicas/bar-stock-api/internal/domain/entity"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var t0 = time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)

func TestComputeSummary(t *testing.T) {
	products := []*entity.Product{
		{ID: "p1", PurchasePrice: dec("2.00"), SellingPriceMember: dec("3.00"), Stock: 4, Active: true},
		{ID: "p2", PurchasePrice: dec("1.00"), SellingPriceMember: dec("1.50"), Stock: 10, Active: false},
	}
	orders := []*entity.Order{
		{ID: "o1", UserID: "u1", PaymentMethod: entity.PaymentMethodBalance, Total: dec("6.00"), Items: []*entity.OrderItem{
			// El costo de compra subió de 1.80 a 2.00 después de la venta.
			{ProductID: "p1", Quantity: 2, PurchasePriceAtSale: dec("1.80")},
		}},
		{ID: "o2", UserID: "u2", PaymentMethod: entity.PaymentMethodCash, Total: dec("4.50"), Items: []*entity.OrderItem{
			{ProductID: "p2", Quantity: 3, PurchasePriceAtSale: dec("1.00")},
		}},
	}
	deposits := []*entity.Deposit{
		{UserID: "u1", Amount: dec("10.00"), Method: entity.DepositMethodCash},
		{UserID: "u2", Amount: dec("-1.00"), Method: entity.DepositMethodAdjustment},
	}
	users := []*entity.User{
		{ID: "u1", Balance: dec("4.00"), IsMember: true},
		{ID: "u2", Balance: dec("-1.00")},
	}

	s := analytics.ComputeSummary(analytics.SummaryInput{
		Orders: orders, Products: products, Deposits: deposits, Users: users,
		AvailableCash: dec("14.50"), Now: t0,
	})

	assert.True(t, s.TotalRevenue.Equal(dec("10.50")))
	assert.True(t, s.BalanceRevenue.Equal(dec("6.00")))
	assert.True(t, s.CashRevenue.Equal(dec("4.50")))
	assert.True(t, s.TotalStockValue.Equal(dec("8.00")), "solo activos")
	assert.True(t, s.ExpectedProfit.Equal(dec("4.00")))
	assert.True(t, s.ActualProfit.Equal(dec("3.50")), "10.50 - (2×2.00 + 3×1.00)")
	assert.True(t, s.ActualProfitAtSaleCost.Equal(dec("3.90")), "10.50 - (2×1.80 + 3×1.00)")
	assert.True(t, s.TotalDeposits.Equal(dec("9.00")))
	assert.True(t, s.TotalWealth.Equal(dec("13.50")))
	assert.True(t, s.UserBalanceSum.Equal(dec("3.00")))
	assert.True(t, s.AvailableCash.Equal(dec("14.50")))
	assert.Equal(t, 2, s.TotalOrders)
	assert.Equal(t, 2, s.TotalUsers)
	assert.Equal(t, 1, s.TotalMembers)
	assert.Equal(t, 1, s.TotalProducts)
	assert.Equal(t, t0, s.GeneratedAt)
}

func TestComputeDebtors_DeudaActualEHistorica(t *testing.T) {
	users := []*entity.User{
		{ID: "a", Name: "Ana", Balance: dec("5.00")},
		{ID: "b", Name: "Beto", Balance: dec("-3.00")},
		{ID: "c", Name: "Cris", Balance: dec("-7.00")},
		{ID: "d", Name: "Dani", Balance: dec("1.00")},
	}
	deposits := []*entity.Deposit{
		{UserID: "a", Amount: dec("-8.00"), Timestamp: t0},
		{UserID: "a", Amount: dec("13.00"), Timestamp: t0.Add(2 * time.Hour)},
		{UserID: "b", Amount: dec("-3.00"), Timestamp: t0},
		{UserID: "c", Amount: dec("-7.00"), Timestamp: t0},
		{UserID: "d", Amount: dec("1.00"), Timestamp: t0},
	}
	orders := []*entity.Order{
		{UserID: "a", PaymentMethod: entity.PaymentMethodBalance, Total: dec("2.00"), Timestamp: t0.Add(time.Hour)},
		{UserID: "d", PaymentMethod: entity.PaymentMethodCash, Total: dec("50.00"), Timestamp: t0.Add(time.Hour)},
	}

	board := analytics.ComputeDebtors(users, orders, deposits)

	require.Len(t, board.Current, 2)
	assert.Equal(t, "c", board.Current[0].UserID)
	assert.Equal(t, "b", board.Current[1].UserID)
	assert.True(t, board.TotalDue.Equal(dec("10.00")))

	require.Len(t, board.AllTime, 3)
	assert.Equal(t, "a", board.AllTime[0].UserID)
	assert.True(t, board.AllTime[0].PeakDebt.Equal(dec("10.00")), "-8 y luego -2 antes de saldar")
	assert.Equal(t, "c", board.AllTime[1].UserID)
	assert.Equal(t, "b", board.AllTime[2].UserID)
}

func TestBuildActivity_MasRecientePrimeroYLimite(t *testing.T) {
	orders := []*entity.Order{{ID: "o1", Total: dec("4"), Timestamp: t0.Add(3 * time.Minute)}}
	deposits := []*entity.Deposit{{ID: "d1", Amount: dec("10"), Timestamp: t0.Add(1 * time.Minute)}}
	logs := []*entity.AvailableCashLog{{ID: "l1", Difference: dec("4"), Reason: "pedido o1", Timestamp: t0.Add(4 * time.Minute)}}
	thefts := []*entity.TheftRecord{{ID: "t1", Quantity: 2, ProductName: "Vino", Timestamp: t0.Add(2 * time.Minute)}}

	feed := analytics.BuildActivity(orders, deposits, logs, thefts, 0)
	require.Len(t, feed, 4)
	kinds := []string{feed[0].Kind, feed[1].Kind, feed[2].Kind, feed[3].Kind}
	assert.Equal(t, []string{analytics.ActivityCash, analytics.ActivityOrder, analytics.ActivityTheft, analytics.ActivityDeposit}, kinds)
	assert.Equal(t, "2 × Vino", feed[2].Detail)

	assert.Len(t, analytics.BuildActivity(orders, deposits, logs, thefts, 2), 2)
}

type memCache struct {
	data map[string][]byte
	sets int
}

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.data[key] = value
	c.sets++
	return nil
}

type fakeRenderer struct{ got dto.FinancialSummaryDTO }

func (r *fakeRenderer) RenderSummary(s dto.FinancialSummaryDTO) ([]byte, error) {
	r.got = s
	return []byte("%PDF-fake"), nil
}

const memberID = "00000000-0000-0000-0000-0000000000b1"

func TestReportUseCase_SummaryCacheado(t *testing.T) {
	cache := &memCache{data: map[string][]byte{}}
	renderer := &fakeRenderer{}
	f := apptest.New(t, apptest.Options{Cache: cache, Renderer: renderer})
	f.SeedUser(t, memberID, "Ana", true, "10.00")
	beer := f.SeedProduct(t, "Cerveza", "2.50", "4.00", "5.00", 5)

	_, err := f.Reports.Summary(f.Ctx, apptest.As(memberID))
	require.ErrorIs(t, err, domain.ErrForbidden)

	first, err := f.Reports.Summary(f.Ctx, apptest.Admin)
	require.NoError(t, err)
	assert.True(t, first.TotalStockValue.Equal(dec("12.50")))
	assert.Equal(t, 1, cache.sets)

	// Dentro del TTL el informe sale de la caché aunque los datos cambien.
	_, err = f.Orders.PlaceOrder(f.Ctx, apptest.As(memberID), sales.PlaceOrderInput{
		PaymentMethod: entity.PaymentMethodBalance,
		Lines:         []sales.OrderLine{{ProductID: beer.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	second, err := f.Reports.Summary(f.Ctx, apptest.Admin)
	require.NoError(t, err)
	assert.Equal(t, 0, second.TotalOrders)
	assert.Equal(t, 1, cache.sets)

	pdf, err := f.Reports.SummaryPDF(f.Ctx, apptest.Admin)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-fake", string(pdf))
	assert.True(t, renderer.got.TotalStockValue.Equal(dec("12.50")))
}

func TestReportUseCase_UserStatsYDeudores(t *testing.T) {
	f := apptest.New(t)
	other := "00000000-0000-0000-0000-0000000000b2"
	f.SeedUser(t, memberID, "Ana", true, "10.00")
	f.SeedUser(t, other, "Luis", false, "-2.00")
	beer := f.SeedProduct(t, "Cerveza", "2.50", "4.00", "5.00", 5)
	_, err := f.Orders.PlaceOrder(f.Ctx, apptest.As(memberID), sales.PlaceOrderInput{
		PaymentMethod: entity.PaymentMethodBalance,
		Lines:         []sales.OrderLine{{ProductID: beer.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	stats, err := f.Reports.UserStats(f.Ctx, apptest.As(memberID), memberID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.OrderCount)
	assert.True(t, stats.TotalSpent.Equal(dec("8.00")))
	assert.True(t, stats.TotalDeposited.Equal(dec("10.00")))
	assert.True(t, stats.Balance.Equal(dec("2.00")))

	_, err = f.Reports.UserStats(f.Ctx, apptest.As(other), memberID)
	require.ErrorIs(t, err, domain.ErrForbidden)

	board, err := f.Reports.Debtors(f.Ctx)
	require.NoError(t, err)
	require.Len(t, board.Current, 1)
	assert.Equal(t, other, board.Current[0].UserID)

	feed, err := f.Reports.Activity(f.Ctx, apptest.Admin, 0)
	require.NoError(t, err)
	require.NotEmpty(t, feed)
	assert.Equal(t, analytics.ActivityOrder, feed[0].Kind)
}
