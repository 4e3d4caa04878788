// Package apptest arma los casos de uso sobre el almacén en memoria para los tests de aplicación.
package apptest

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bar-stock-api/internal/application/analytics"
	"github.com/jhoicas/bar-stock-api/internal/application/dto"
	"github.com/jhoicas/bar-stock-api/internal/application/inventory"
	"github.com/jhoicas/bar-stock-api/internal/application/ledger"
	"github.com/jhoicas/bar-stock-api/internal/application/reversal"
	"github.com/jhoicas/bar-stock-api/internal/application/sales"
	"github.com/jhoicas/bar-stock-api/internal/application/usecase"
	"github.com/jhoicas/bar-stock-api/internal/domain"
	"github.com/jhoicas/bar-stock-api/internal/domain/entity"
	"github.com/jhoicas/bar-stock-api/internal/domain/repository"
	"github.com/jhoicas/bar-stock-api/internal/infrastructure/memory"
	"github.com/jhoicas/bar-stock-api/pkg/logger"
)

const AdminID = "00000000-0000-0000-0000-0000000000ad"

// Admin actor con rol admin.
var Admin = domain.Actor{UserID: AdminID, Role: entity.RoleAdmin}

// As actor con rol user.
func As(userID string) domain.Actor {
	return domain.Actor{UserID: userID, Role: entity.RoleUser}
}

// StepClock avanza un segundo en cada llamada para que el orden temporal sea determinista.
type StepClock struct {
	mu  sync.Mutex
	now time.Time
}

// Now devuelve el instante actual y avanza.
func (c *StepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

// Fixture grafo completo de casos de uso sobre un memory.Store vacío.
type Fixture struct {
	Ctx      context.Context
	Store    *memory.Store
	Repos    repository.Repos
	Clock    *StepClock
	Engine   *inventory.Engine
	Restock  *inventory.RestockUseCase
	Balance  *ledger.BalanceUseCase
	Cash     *ledger.CashUseCase
	Orders   *sales.PlaceOrderUseCase
	Reversal *reversal.UseCase
	Products *usecase.ProductUseCase
	Users    *usecase.UserUseCase
	Reports  *analytics.ReportUseCase
}

// Options parámetros opcionales del fixture.
type Options struct {
	Cache    analytics.ReportCache
	Renderer analytics.SummaryRenderer
}

// New construye el fixture.
func New(t testing.TB, opts ...Options) *Fixture {
	t.Helper()
	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}
	if o.Cache == nil {
		o.Cache = nopCache{}
	}
	store := memory.New()
	repos := store.Repos()
	clock := &StepClock{now: time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)}
	log := logger.Nop()

	engine := inventory.NewEngine(store, repos, clock, log)
	balance := ledger.NewBalanceUseCase(store, repos, clock, log)
	return &Fixture{
		Ctx:      context.Background(),
		Store:    store,
		Repos:    repos,
		Clock:    clock,
		Engine:   engine,
		Restock:  inventory.NewRestockUseCase(repos, 5, 20),
		Balance:  balance,
		Cash:     ledger.NewCashUseCase(store, repos, clock, log),
		Orders:   sales.NewPlaceOrderUseCase(store, repos, engine, clock, log),
		Reversal: reversal.NewUseCase(store, engine, clock, log),
		Products: usecase.NewProductUseCase(store, repos, engine, clock, log),
		Users:    usecase.NewUserUseCase(store, repos, balance, clock, log),
		Reports:  analytics.NewReportUseCase(repos, o.Cache, o.Renderer, time.Minute, clock, log),
	}
}

// SeedUser crea un usuario con saldo inicial (registrado como ajuste).
func (f *Fixture) SeedUser(t testing.TB, id, name string, member bool, balance string) *entity.User {
	t.Helper()
	in := dto.CreateUserRequest{ID: id, Name: name, IsMember: member}
	if balance != "" {
		b := decimal.RequireFromString(balance)
		in.InitialBalance = &b
	}
	_, err := f.Users.Create(f.Ctx, Admin, in)
	require.NoError(t, err)
	return f.User(t, id)
}

// SeedProduct crea un producto activo con stock inicial.
func (f *Fixture) SeedProduct(t testing.TB, name, purchase, member, nonMember string, stock int) *entity.Product {
	t.Helper()
	out, err := f.Products.Create(f.Ctx, Admin, dto.CreateProductRequest{
		Name:                  name,
		PurchasePrice:         decimal.RequireFromString(purchase),
		SellingPriceMember:    decimal.RequireFromString(member),
		SellingPriceNonMember: decimal.RequireFromString(nonMember),
		InitialStock:          stock,
	})
	require.NoError(t, err)
	return f.Product(t, out.ID)
}

// SetCash fija el efectivo disponible.
func (f *Fixture) SetCash(t testing.TB, amount string) {
	t.Helper()
	_, err := f.Cash.SetAvailableCash(f.Ctx, Admin, decimal.RequireFromString(amount), "recuento")
	require.NoError(t, err)
}

// User lee el usuario actual del almacén.
func (f *Fixture) User(t testing.TB, id string) *entity.User {
	t.Helper()
	u, err := f.Repos.Users.GetByID(f.Ctx, id)
	require.NoError(t, err)
	require.NotNil(t, u)
	return u
}

// Product lee el producto actual del almacén.
func (f *Fixture) Product(t testing.TB, id string) *entity.Product {
	t.Helper()
	p, err := f.Repos.Products.GetByID(f.Ctx, id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p
}

// CashAmount efectivo disponible actual.
func (f *Fixture) CashAmount(t testing.TB) decimal.Decimal {
	t.Helper()
	c, err := f.Repos.Cash.Get(f.Ctx)
	require.NoError(t, err)
	return c.Amount
}

// RequireStockConsistent comprueba stock == Σ movimientos y stock >= 0 en todos los productos.
func (f *Fixture) RequireStockConsistent(t testing.TB) {
	t.Helper()
	products, err := f.Repos.Products.ListAll(f.Ctx)
	require.NoError(t, err)
	for _, p := range products {
		sum, err := f.Repos.Movements.SumByProduct(f.Ctx, p.ID)
		require.NoError(t, err)
		require.Equal(t, sum, p.Stock, "producto %s", p.Name)
		require.GreaterOrEqual(t, p.Stock, 0, "producto %s", p.Name)
	}
}

// RequireBalancesConsistent comprueba saldo == Σ depósitos − Σ pedidos cobrados con saldo.
func (f *Fixture) RequireBalancesConsistent(t testing.TB) {
	t.Helper()
	users, err := f.Repos.Users.List(f.Ctx)
	require.NoError(t, err)
	for _, u := range users {
		expected := decimal.Zero
		deps, err := f.Repos.Deposits.List(f.Ctx, u.ID)
		require.NoError(t, err)
		for _, d := range deps {
			expected = expected.Add(d.Amount)
		}
		orders, err := f.Repos.Orders.List(f.Ctx, repository.OrderFilter{UserID: u.ID})
		require.NoError(t, err)
		for _, o := range orders {
			if o.PaymentMethod == entity.PaymentMethodBalance && o.PaymentProcessed {
				expected = expected.Sub(o.Total)
			}
		}
		require.True(t, expected.Equal(u.Balance), "usuario %s: esperado %s, actual %s", u.Name, expected, u.Balance)
	}
}

type nopCache struct{}

func (nopCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (nopCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
