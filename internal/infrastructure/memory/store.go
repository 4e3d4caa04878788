// Package memory implementa los puertos de persistencia en memoria, con las mismas garantías
// transaccionales que PostgreSQL: modo desarrollo (STORE_DRIVER=memory) y tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bar-stock-api/internal/domain/entity"
	"github.com/jhoicas/bar-stock-api/internal/domain/repository"
)

var _ repository.TxRunner = (*Store)(nil)

// state datos del ledger. Las tablas append-only son slices en orden de inserción.
type state struct {
	users     map[string]entity.User
	products  map[string]entity.Product
	movements []entity.InventoryMovement
	orders    []entity.Order
	items     map[string][]entity.OrderItem // por order id
	deposits  []entity.Deposit
	cash      entity.AvailableCash
	cashLogs  []entity.AvailableCashLog
	thefts    []entity.TheftRecord
}

func newState() *state {
	return &state{
		users:    map[string]entity.User{},
		products: map[string]entity.Product{},
		items:    map[string][]entity.OrderItem{},
		cash:     entity.AvailableCash{ID: entity.AvailableCashID, Amount: decimal.Zero, UpdatedAt: time.Now().UTC()},
	}
}

func (s *state) clone() *state {
	c := &state{
		users:     make(map[string]entity.User, len(s.users)),
		products:  make(map[string]entity.Product, len(s.products)),
		movements: append([]entity.InventoryMovement(nil), s.movements...),
		orders:    append([]entity.Order(nil), s.orders...),
		items:     make(map[string][]entity.OrderItem, len(s.items)),
		deposits:  append([]entity.Deposit(nil), s.deposits...),
		cash:      s.cash,
		cashLogs:  append([]entity.AvailableCashLog(nil), s.cashLogs...),
		thefts:    append([]entity.TheftRecord(nil), s.thefts...),
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.items {
		c.items[k] = append([]entity.OrderItem(nil), v...)
	}
	return c
}

// accessor da acceso de lectura o escritura al estado: fuera de una transacción toma el lock
// del Store; dentro, el lock ya lo tiene Run y se trabaja sobre la copia.
type accessor interface {
	read(fn func(s *state) error) error
	write(fn func(s *state) error) error
}

// Store almacén en memoria. Serializa las transacciones con un único lock.
type Store struct {
	mu  sync.RWMutex
	cur *state
}

// New crea un store vacío (efectivo disponible = 0).
func New() *Store {
	return &Store{cur: newState()}
}

func (st *Store) read(fn func(s *state) error) error {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return fn(st.cur)
}

func (st *Store) write(fn func(s *state) error) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	return fn(st.cur)
}

// Repos repositorios fuera de transacción (cada llamada es atómica por sí sola).
func (st *Store) Repos() repository.Repos {
	return newRepos(st)
}

// Run ejecuta fn sobre una copia del estado y la publica solo si fn devuelve nil.
func (st *Store) Run(ctx context.Context, fn func(repos repository.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	st.mu.Lock()
	defer st.mu.Unlock()

	tx := &txState{s: st.cur.clone()}
	if err := fn(newRepos(tx)); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	st.cur = tx.s
	return nil
}

type txState struct {
	s *state
}

func (t *txState) read(fn func(s *state) error) error  { return fn(t.s) }
func (t *txState) write(fn func(s *state) error) error { return fn(t.s) }

func newRepos(a accessor) repository.Repos {
	return repository.Repos{
		Users:     &userRepo{a: a},
		Products:  &productRepo{a: a},
		Movements: &movementRepo{a: a},
		Orders:    &orderRepo{a: a},
		Deposits:  &depositRepo{a: a},
		Cash:      &cashRepo{a: a},
		Thefts:    &theftRepo{a: a},
	}
}
