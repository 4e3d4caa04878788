package reversal_test

import (
	"context"
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bar-stock-api/internal/application/apptest"
	"github.com/jhoicas/bar-stock-api/internal/application/reversal"
	"github.com/jhoicas/bar-stock-api/internal/application/sales"
	"github.com/jhoicas/bar-stock-api/internal/domain/entity"
	"github.com/jhoicas/bar-stock-api/internal/domain/repository"
	"github.com/jhoicas/bar-stock-api/pkg/logger"
)

// lockLog anota cada fila bloqueada dentro de la transacción.
type lockLog struct {
	mu    sync.Mutex
	locks []string
}

func (l *lockLog) add(kind string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.locks = append(l.locks, kind)
}

func (l *lockLog) reset() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := l.locks
	l.locks = nil
	return out
}

type lockingUsers struct {
	repository.UserRepository
	log *lockLog
}

func (r lockingUsers) GetForUpdate(ctx context.Context, id string) (*entity.User, error) {
	r.log.add("user")
	return r.UserRepository.GetForUpdate(ctx, id)
}

type lockingProducts struct {
	repository.ProductRepository
	log *lockLog
}

func (r lockingProducts) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	r.log.add("product")
	return r.ProductRepository.GetForUpdate(ctx, id)
}

func (r lockingProducts) GetManyForUpdate(ctx context.Context, ids []string) ([]*entity.Product, error) {
	r.log.add("product")
	return r.ProductRepository.GetManyForUpdate(ctx, ids)
}

type lockingCash struct {
	repository.CashRepository
	log *lockLog
}

func (r lockingCash) GetForUpdate(ctx context.Context) (*entity.AvailableCash, error) {
	r.log.add("cash")
	return r.CashRepository.GetForUpdate(ctx)
}

type lockingRunner struct {
	inner repository.TxRunner
	log   *lockLog
}

func (r lockingRunner) Run(ctx context.Context, fn func(repos repository.Repos) error) error {
	return r.inner.Run(ctx, func(repos repository.Repos) error {
		repos.Users = lockingUsers{repos.Users, r.log}
		repos.Products = lockingProducts{repos.Products, r.log}
		repos.Cash = lockingCash{repos.Cash, r.log}
		return fn(repos)
	})
}

// Crear y revertir un pedido deben bloquear usuario, productos y caja en el mismo orden;
// en Postgres un orden cruzado acaba en deadlock.
func TestDeleteOrder_MismoOrdenDeBloqueoQuePlaceOrder(t *testing.T) {
	for _, method := range []string{entity.PaymentMethodBalance, entity.PaymentMethodCash} {
		t.Run(method, func(t *testing.T) {
			f := apptest.New(t)
			f.SeedUser(t, memberID, "Ana", true, "10.00")
			beer := f.SeedProduct(t, "Cerveza", "2.50", "4.00", "5.00", 5)

			locks := &lockLog{}
			runner := lockingRunner{inner: f.Store, log: locks}
			orders := sales.NewPlaceOrderUseCase(runner, f.Repos, f.Engine, f.Clock, logger.Nop())
			rev := reversal.NewUseCase(runner, f.Engine, f.Clock, logger.Nop())

			order, err := orders.PlaceOrder(f.Ctx, apptest.As(memberID), sales.PlaceOrderInput{
				PaymentMethod: method,
				Lines:         []sales.OrderLine{{ProductID: beer.ID, Quantity: 2}},
			})
			require.NoError(t, err)
			placed := locks.reset()

			require.NoError(t, rev.DeleteOrder(f.Ctx, apptest.Admin, order.ID))
			reversed := locks.reset()

			assert.Equal(t, lockRank(t, placed), placed, "place: %v", placed)
			assert.Equal(t, lockRank(t, reversed), reversed, "delete: %v", reversed)
			assert.Contains(t, reversed, "product")
		})
	}
}

// lockRank devuelve los bloqueos ordenados usuario < producto < caja.
func lockRank(t *testing.T, locks []string) []string {
	t.Helper()
	rank := map[string]int{"user": 0, "product": 1, "cash": 2}
	out := slices.Clone(locks)
	slices.SortStableFunc(out, func(a, b string) int { return rank[a] - rank[b] })
	return out
}
