package postgres_test

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bar-stock-api/internal/application/dto"
	"github.com/jhoicas/bar-stock-api/internal/application/inventory"
	ledgeruc "github.com/jhoicas/bar-stock-api/internal/application/ledger"
	"github.com/jhoicas/bar-stock-api/internal/application/reversal"
	"github.com/jhoicas/bar-stock-api/internal/application/sales"
	"github.com/jhoicas/bar-stock-api/internal/application/usecase"
	"github.com/jhoicas/bar-stock-api/internal/domain"
	"github.com/jhoicas/bar-stock-api/internal/domain/entity"
	"github.com/jhoicas/bar-stock-api/internal/infrastructure/postgres"
	"github.com/jhoicas/bar-stock-api/pkg/config"
	"github.com/jhoicas/bar-stock-api/pkg/logger"
)

const (
	adminID  = "00000000-0000-0000-0000-0000000000ad"
	memberID = "00000000-0000-0000-0000-0000000000b1"
)

var admin = domain.Actor{UserID: adminID, Role: entity.RoleAdmin}

// openTestPool requiere BARSTOCK_TEST_DATABASE_URL apuntando a una base desechable.
func openTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("BARSTOCK_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("BARSTOCK_TEST_DATABASE_URL no definido")
	}
	_, err := postgres.Migrate(url)
	require.NoError(t, err)

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: url, MaxConns: 8, MinConns: 1, SlowQueryMS: 200}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, `TRUNCATE theft_records, available_cash_logs, deposits, inventory_movements, order_items, orders, products, users CASCADE`)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `UPDATE available_cash SET amount = 0, version = 0`)
	require.NoError(t, err)
	return pool
}

type graph struct {
	engine   *inventory.Engine
	balance  *ledgeruc.BalanceUseCase
	cash     *ledgeruc.CashUseCase
	orders   *sales.PlaceOrderUseCase
	reversal *reversal.UseCase
	products *usecase.ProductUseCase
	users    *usecase.UserUseCase
}

func newGraph(pool *pgxpool.Pool) *graph {
	tx := postgres.NewTxRunner(pool)
	repos := postgres.NewRepos(pool)
	clock := domain.SystemClock{}
	log := logger.Nop()
	engine := inventory.NewEngine(tx, repos, clock, log)
	balance := ledgeruc.NewBalanceUseCase(tx, repos, clock, log)
	return &graph{
		engine:   engine,
		balance:  balance,
		cash:     ledgeruc.NewCashUseCase(tx, repos, clock, log),
		orders:   sales.NewPlaceOrderUseCase(tx, repos, engine, clock, log),
		reversal: reversal.NewUseCase(tx, engine, clock, log),
		products: usecase.NewProductUseCase(tx, repos, engine, clock, log),
		users:    usecase.NewUserUseCase(tx, repos, balance, clock, log),
	}
}

func TestPostgres_PedidoYReversion(t *testing.T) {
	pool := openTestPool(t)
	g := newGraph(pool)
	ctx := context.Background()
	repos := postgres.NewRepos(pool)

	initial := decimal.RequireFromString("10.00")
	_, err := g.users.Create(ctx, admin, dto.CreateUserRequest{ID: memberID, Name: "Ana", IsMember: true, InitialBalance: &initial})
	require.NoError(t, err)
	beer, err := g.products.Create(ctx, admin, dto.CreateProductRequest{
		Name:                  "Cerveza",
		PurchasePrice:         decimal.RequireFromString("2.50"),
		SellingPriceMember:    decimal.RequireFromString("4.00"),
		SellingPriceNonMember: decimal.RequireFromString("5.00"),
		InitialStock:          5,
	})
	require.NoError(t, err)

	order, err := g.orders.PlaceOrder(ctx, domain.Actor{UserID: memberID, Role: entity.RoleUser}, sales.PlaceOrderInput{
		PaymentMethod: entity.PaymentMethodBalance,
		Lines:         []sales.OrderLine{{ProductID: beer.ID, Quantity: 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, "8.00", order.Total.StringFixed(2))

	u, err := repos.Users.GetByID(ctx, memberID)
	require.NoError(t, err)
	assert.Equal(t, "2.00", u.Balance.StringFixed(2))
	sum, err := repos.Movements.SumByProduct(ctx, beer.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, sum)

	require.NoError(t, g.reversal.DeleteOrder(ctx, admin, order.ID))
	u, err = repos.Users.GetByID(ctx, memberID)
	require.NoError(t, err)
	assert.Equal(t, "10.00", u.Balance.StringFixed(2))
	p, err := repos.Products.GetByID(ctx, beer.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, p.Stock)
}

func TestPostgres_RechazoNoDejaRastro(t *testing.T) {
	pool := openTestPool(t)
	g := newGraph(pool)
	ctx := context.Background()
	repos := postgres.NewRepos(pool)

	_, err := g.users.Create(ctx, admin, dto.CreateUserRequest{ID: memberID, Name: "Ana"})
	require.NoError(t, err)
	beer, err := g.products.Create(ctx, admin, dto.CreateProductRequest{
		Name: "Cerveza", PurchasePrice: decimal.RequireFromString("2"),
		SellingPriceMember: decimal.RequireFromString("3"), SellingPriceNonMember: decimal.RequireFromString("4"),
		InitialStock: 1,
	})
	require.NoError(t, err)

	_, err = g.orders.PlaceOrder(ctx, admin, sales.PlaceOrderInput{
		UserID:        memberID,
		PaymentMethod: entity.PaymentMethodBalance,
		Lines:         []sales.OrderLine{{ProductID: beer.ID, Quantity: 1}},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientBalance)

	orders, err := g.orders.ListOrders(ctx, admin, "")
	require.NoError(t, err)
	assert.Empty(t, orders)
	sum, err := repos.Movements.SumByProduct(ctx, beer.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, sum)
}

// Ventas concurrentes del último stock: exactamente una gana y el stock nunca baja de cero.
func TestPostgres_VentasConcurrentes(t *testing.T) {
	pool := openTestPool(t)
	g := newGraph(pool)
	ctx := context.Background()
	repos := postgres.NewRepos(pool)

	beer, err := g.products.Create(ctx, admin, dto.CreateProductRequest{
		Name: "Cerveza", PurchasePrice: decimal.RequireFromString("2"),
		SellingPriceMember: decimal.RequireFromString("3"), SellingPriceNonMember: decimal.RequireFromString("4"),
		InitialStock: 3,
	})
	require.NoError(t, err)
	ids := []string{
		"00000000-0000-0000-0000-0000000000c1",
		"00000000-0000-0000-0000-0000000000c2",
		"00000000-0000-0000-0000-0000000000c3",
		"00000000-0000-0000-0000-0000000000c4",
		"00000000-0000-0000-0000-0000000000c5",
	}
	for _, id := range ids {
		_, err := g.users.Create(ctx, admin, dto.CreateUserRequest{ID: id, Name: id})
		require.NoError(t, err)
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := g.orders.PlaceOrder(ctx, admin, sales.PlaceOrderInput{
				UserID:        id,
				PaymentMethod: entity.PaymentMethodCash,
				Lines:         []sales.OrderLine{{ProductID: beer.ID, Quantity: 2}},
			})
			if err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, domain.ErrInsufficientStock)
		}(id)
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
	p, err := repos.Products.GetByID(ctx, beer.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Stock)
	sum, err := repos.Movements.SumByProduct(ctx, beer.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, sum)
}
