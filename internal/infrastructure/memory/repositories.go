package memory

import (
	"context"
	"slices"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bar-stock-api/internal/domain"
	"github.com/jhoicas/bar-stock-api/internal/domain/entity"
	"github.com/jhoicas/bar-stock-api/internal/domain/repository"
)

var (
	_ repository.UserRepository              = (*userRepo)(nil)
	_ repository.ProductRepository           = (*productRepo)(nil)
	_ repository.InventoryMovementRepository = (*movementRepo)(nil)
	_ repository.OrderRepository             = (*orderRepo)(nil)
	_ repository.DepositRepository           = (*depositRepo)(nil)
	_ repository.CashRepository              = (*cashRepo)(nil)
	_ repository.TheftRecordRepository       = (*theftRepo)(nil)
)

// ── Users ────────────────────────────────────────────────────────────────────

type userRepo struct{ a accessor }

func (r *userRepo) Create(_ context.Context, user *entity.User) error {
	return r.a.write(func(s *state) error {
		if _, ok := s.users[user.ID]; ok {
			return domain.ErrConflict
		}
		for _, u := range s.users {
			if user.Email != "" && strings.EqualFold(u.Email, user.Email) {
				return domain.ErrConflict
			}
		}
		s.users[user.ID] = *user
		return nil
	})
}

func (r *userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	var out *entity.User
	err := r.a.read(func(s *state) error {
		if u, ok := s.users[id]; ok {
			out = &u
		}
		return nil
	})
	return out, err
}

func (r *userRepo) GetForUpdate(ctx context.Context, id string) (*entity.User, error) {
	return r.GetByID(ctx, id)
}

func (r *userRepo) List(_ context.Context) ([]*entity.User, error) {
	var out []*entity.User
	err := r.a.read(func(s *state) error {
		for _, u := range s.users {
			out = append(out, &u)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, err
}

func (r *userRepo) Update(_ context.Context, user *entity.User) error {
	return r.a.write(func(s *state) error {
		cur, ok := s.users[user.ID]
		if !ok {
			return domain.ErrUserNotFound
		}
		cur.Name, cur.Email, cur.Role, cur.IsMember = user.Name, user.Email, user.Role, user.IsMember
		s.users[user.ID] = cur
		return nil
	})
}

func (r *userRepo) UpdateBalance(_ context.Context, id string, balance decimal.Decimal) error {
	return r.a.write(func(s *state) error {
		cur, ok := s.users[id]
		if !ok {
			return domain.ErrUserNotFound
		}
		cur.Balance = balance
		s.users[id] = cur
		return nil
	})
}

// ── Products ─────────────────────────────────────────────────────────────────

type productRepo struct{ a accessor }

func (r *productRepo) Create(_ context.Context, product *entity.Product) error {
	return r.a.write(func(s *state) error {
		if _, ok := s.products[product.ID]; ok {
			return domain.ErrConflict
		}
		s.products[product.ID] = *product
		return nil
	})
}

func (r *productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.a.read(func(s *state) error {
		if p, ok := s.products[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

func (r *productRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *productRepo) GetManyForUpdate(_ context.Context, ids []string) ([]*entity.Product, error) {
	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)
	var out []*entity.Product
	err := r.a.read(func(s *state) error {
		for _, id := range sorted {
			if p, ok := s.products[id]; ok {
				out = append(out, &p)
			}
		}
		return nil
	})
	return out, err
}

func (r *productRepo) Update(_ context.Context, product *entity.Product) error {
	return r.a.write(func(s *state) error {
		cur, ok := s.products[product.ID]
		if !ok {
			return domain.ErrProductNotFound
		}
		stock, active, created := cur.Stock, cur.Active, cur.CreatedAt
		cur = *product
		cur.Stock, cur.Active, cur.CreatedAt = stock, active, created
		s.products[product.ID] = cur
		return nil
	})
}

func (r *productRepo) UpdateStock(_ context.Context, id string, stock int) error {
	return r.a.write(func(s *state) error {
		cur, ok := s.products[id]
		if !ok {
			return domain.ErrProductNotFound
		}
		cur.Stock = stock
		s.products[id] = cur
		return nil
	})
}

func (r *productRepo) SetActive(_ context.Context, id string, active bool) error {
	return r.a.write(func(s *state) error {
		cur, ok := s.products[id]
		if !ok {
			return domain.ErrProductNotFound
		}
		cur.Active = active
		s.products[id] = cur
		return nil
	})
}

func (r *productRepo) List(ctx context.Context, active bool) ([]*entity.Product, error) {
	all, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := all[:0]
	for _, p := range all {
		if p.Active == active {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *productRepo) ListAll(_ context.Context) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.a.read(func(s *state) error {
		for _, p := range s.products {
			out = append(out, &p)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, err
}

// ── Inventory movements ──────────────────────────────────────────────────────

type movementRepo struct{ a accessor }

func (r *movementRepo) Create(_ context.Context, m *entity.InventoryMovement) error {
	return r.a.write(func(s *state) error {
		s.movements = append(s.movements, *m)
		return nil
	})
}

func (r *movementRepo) ListByProduct(_ context.Context, productID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	err := r.a.read(func(s *state) error {
		for i := len(s.movements) - 1; i >= 0; i-- {
			if m := s.movements[i]; m.ProductID == productID {
				out = append(out, &m)
			}
		}
		return nil
	})
	return page(out, limit, offset), err
}

func (r *movementRepo) ListByOrderItems(_ context.Context, orderItemIDs []string) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	err := r.a.read(func(s *state) error {
		for _, m := range s.movements {
			if m.OrderItemID != "" && slices.Contains(orderItemIDs, m.OrderItemID) {
				out = append(out, &m)
			}
		}
		return nil
	})
	return out, err
}

func (r *movementRepo) DeleteByOrderItems(_ context.Context, orderItemIDs []string) error {
	return r.a.write(func(s *state) error {
		s.movements = slices.DeleteFunc(s.movements, func(m entity.InventoryMovement) bool {
			return m.OrderItemID != "" && slices.Contains(orderItemIDs, m.OrderItemID)
		})
		return nil
	})
}

func (r *movementRepo) SumByProduct(_ context.Context, productID string) (int, error) {
	total := 0
	err := r.a.read(func(s *state) error {
		for _, m := range s.movements {
			if m.ProductID == productID {
				total += m.Quantity
			}
		}
		return nil
	})
	return total, err
}

// ── Orders ───────────────────────────────────────────────────────────────────

type orderRepo struct{ a accessor }

func (r *orderRepo) Create(_ context.Context, order *entity.Order) error {
	return r.a.write(func(s *state) error {
		if indexOf(s.orders, func(o entity.Order) bool { return o.ID == order.ID }) >= 0 {
			return domain.ErrConflict
		}
		o := *order
		o.Items = nil
		s.orders = append(s.orders, o)
		return nil
	})
}

func (r *orderRepo) CreateItem(_ context.Context, item *entity.OrderItem) error {
	return r.a.write(func(s *state) error {
		if indexOf(s.orders, func(o entity.Order) bool { return o.ID == item.OrderID }) < 0 {
			return domain.ErrOrderNotFound
		}
		s.items[item.OrderID] = append(s.items[item.OrderID], *item)
		return nil
	})
}

func (r *orderRepo) MarkPaymentProcessed(_ context.Context, id string) error {
	return r.a.write(func(s *state) error {
		i := indexOf(s.orders, func(o entity.Order) bool { return o.ID == id })
		if i < 0 {
			return domain.ErrOrderNotFound
		}
		s.orders[i].PaymentProcessed = true
		return nil
	})
}

func (r *orderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	var out *entity.Order
	err := r.a.read(func(s *state) error {
		if i := indexOf(s.orders, func(o entity.Order) bool { return o.ID == id }); i >= 0 {
			out = withItems(s, s.orders[i])
		}
		return nil
	})
	return out, err
}

func (r *orderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.GetByID(ctx, id)
}

func (r *orderRepo) List(_ context.Context, filter repository.OrderFilter) ([]*entity.Order, error) {
	var out []*entity.Order
	err := r.a.read(func(s *state) error {
		for _, o := range s.orders {
			if filter.UserID == "" || o.UserID == filter.UserID {
				out = append(out, withItems(s, o))
			}
		}
		return nil
	})
	return out, err
}

func (r *orderRepo) Delete(_ context.Context, id string) error {
	return r.a.write(func(s *state) error {
		i := indexOf(s.orders, func(o entity.Order) bool { return o.ID == id })
		if i < 0 {
			return domain.ErrOrderNotFound
		}
		s.orders = slices.Delete(s.orders, i, i+1)
		delete(s.items, id)
		return nil
	})
}

func withItems(s *state, o entity.Order) *entity.Order {
	o.Items = nil
	for _, it := range s.items[o.ID] {
		o.Items = append(o.Items, &it)
	}
	return &o
}

// ── Deposits ─────────────────────────────────────────────────────────────────

type depositRepo struct{ a accessor }

func (r *depositRepo) Create(_ context.Context, d *entity.Deposit) error {
	return r.a.write(func(s *state) error {
		s.deposits = append(s.deposits, *d)
		return nil
	})
}

func (r *depositRepo) GetByID(_ context.Context, id string) (*entity.Deposit, error) {
	var out *entity.Deposit
	err := r.a.read(func(s *state) error {
		if i := indexOf(s.deposits, func(d entity.Deposit) bool { return d.ID == id }); i >= 0 {
			d := s.deposits[i]
			out = &d
		}
		return nil
	})
	return out, err
}

func (r *depositRepo) GetForUpdate(ctx context.Context, id string) (*entity.Deposit, error) {
	return r.GetByID(ctx, id)
}

func (r *depositRepo) List(_ context.Context, userID string) ([]*entity.Deposit, error) {
	var out []*entity.Deposit
	err := r.a.read(func(s *state) error {
		for _, d := range s.deposits {
			if userID == "" || d.UserID == userID {
				out = append(out, &d)
			}
		}
		return nil
	})
	return out, err
}

func (r *depositRepo) Delete(_ context.Context, id string) error {
	return r.a.write(func(s *state) error {
		i := indexOf(s.deposits, func(d entity.Deposit) bool { return d.ID == id })
		if i < 0 {
			return domain.ErrDepositNotFound
		}
		s.deposits = slices.Delete(s.deposits, i, i+1)
		return nil
	})
}

// ── Available cash ───────────────────────────────────────────────────────────

type cashRepo struct{ a accessor }

func (r *cashRepo) Get(_ context.Context) (*entity.AvailableCash, error) {
	var out entity.AvailableCash
	err := r.a.read(func(s *state) error {
		out = s.cash
		return nil
	})
	return &out, err
}

func (r *cashRepo) GetForUpdate(ctx context.Context) (*entity.AvailableCash, error) {
	return r.Get(ctx)
}

func (r *cashRepo) Update(_ context.Context, cash *entity.AvailableCash) error {
	return r.a.write(func(s *state) error {
		if s.cash.Version != cash.Version {
			return domain.ErrConflict
		}
		cash.Version++
		s.cash = *cash
		return nil
	})
}

func (r *cashRepo) CreateLog(_ context.Context, log *entity.AvailableCashLog) error {
	return r.a.write(func(s *state) error {
		s.cashLogs = append(s.cashLogs, *log)
		return nil
	})
}

func (r *cashRepo) ListLogs(_ context.Context, limit int) ([]*entity.AvailableCashLog, error) {
	var out []*entity.AvailableCashLog
	err := r.a.read(func(s *state) error {
		for i := len(s.cashLogs) - 1; i >= 0; i-- {
			l := s.cashLogs[i]
			out = append(out, &l)
		}
		return nil
	})
	return page(out, limit, 0), err
}

// ── Theft records ────────────────────────────────────────────────────────────

type theftRepo struct{ a accessor }

func (r *theftRepo) Create(_ context.Context, t *entity.TheftRecord) error {
	return r.a.write(func(s *state) error {
		s.thefts = append(s.thefts, *t)
		return nil
	})
}

func (r *theftRepo) GetByID(_ context.Context, id string) (*entity.TheftRecord, error) {
	var out *entity.TheftRecord
	err := r.a.read(func(s *state) error {
		if i := indexOf(s.thefts, func(t entity.TheftRecord) bool { return t.ID == id }); i >= 0 {
			t := s.thefts[i]
			out = &t
		}
		return nil
	})
	return out, err
}

func (r *theftRepo) GetForUpdate(ctx context.Context, id string) (*entity.TheftRecord, error) {
	return r.GetByID(ctx, id)
}

func (r *theftRepo) List(_ context.Context) ([]*entity.TheftRecord, error) {
	var out []*entity.TheftRecord
	err := r.a.read(func(s *state) error {
		for _, t := range s.thefts {
			out = append(out, &t)
		}
		return nil
	})
	return out, err
}

func (r *theftRepo) Delete(_ context.Context, id string) error {
	return r.a.write(func(s *state) error {
		i := indexOf(s.thefts, func(t entity.TheftRecord) bool { return t.ID == id })
		if i < 0 {
			return domain.ErrTheftRecordNotFound
		}
		s.thefts = slices.Delete(s.thefts, i, i+1)
		return nil
	})
}

func indexOf[T any](xs []T, match func(T) bool) int {
	return slices.IndexFunc(xs, match)
}

func page[T any](xs []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(xs) {
			return nil
		}
		xs = xs[offset:]
	}
	if limit > 0 && limit < len(xs) {
		xs = xs[:limit]
	}
	return xs
}
