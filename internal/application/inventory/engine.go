// Package inventory es el motor de inventario: toda variación de stock pasa por un movimiento
// y stock == Σ movimientos se mantiene en la misma transacción.
package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/bar-stock-api/internal/domain"
	"github.com/jhoicas/bar-stock-api/internal/domain/entity"
	invdomain "github.com/jhoicas/bar-stock-api/internal/domain/inventory"
	"github.com/jhoicas/bar-stock-api/internal/domain/ledger"
	"github.com/jhoicas/bar-stock-api/internal/domain/repository"
	"github.com/jhoicas/bar-stock-api/pkg/logger"
)

// Engine aplica movimientos de inventario de forma transaccional.
type Engine struct {
	txRunner repository.TxRunner
	repos    repository.Repos
	clock    domain.Clock
	log      *logger.Logger
}

// NewEngine construye el motor. repos son los repositorios fuera de transacción (lecturas).
func NewEngine(txRunner repository.TxRunner, repos repository.Repos, clock domain.Clock, log *logger.Logger) *Engine {
	return &Engine{txRunner: txRunner, repos: repos, clock: clock, log: log}
}

// MovementInput datos de un movimiento. Quantity lleva signo (negativo = salida).
type MovementInput struct {
	ProductID   string
	Type        string
	Quantity    int
	AdminID     string
	OrderItemID string
}

// ApplyInTx inserta el movimiento y recalcula product.Stock usando repos de la transacción del caller.
// product debe estar bloqueado (GetForUpdate) por el caller. Un robo crea además su TheftRecord.
func (e *Engine) ApplyInTx(ctx context.Context, repos repository.Repos, product *entity.Product, in MovementInput) (*entity.InventoryMovement, error) {
	if err := invdomain.ValidateMovement(in.Type, in.Quantity); err != nil {
		return nil, err
	}
	next, err := invdomain.ApplyDelta(product.Stock, in.Quantity)
	if err != nil {
		return nil, domain.NewLedgerError(err, "producto", product.ID,
			decimal.NewFromInt(int64(in.Quantity)), decimal.NewFromInt(int64(product.Stock)))
	}

	now := e.clock.Now()
	mov := &entity.InventoryMovement{
		ID:          uuid.New().String(),
		ProductID:   product.ID,
		Type:        in.Type,
		Quantity:    in.Quantity,
		OrderItemID: in.OrderItemID,
		AdminID:     in.AdminID,
		Timestamp:   now,
	}
	if err := repos.Movements.Create(ctx, mov); err != nil {
		return nil, err
	}
	if err := repos.Products.UpdateStock(ctx, product.ID, next); err != nil {
		return nil, err
	}
	product.Stock = next

	if in.Type == entity.MovementTypeTheft {
		record := &entity.TheftRecord{
			ID:          uuid.New().String(),
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    -in.Quantity,
			AdminID:     in.AdminID,
			Timestamp:   now,
		}
		if err := repos.Thefts.Create(ctx, record); err != nil {
			return nil, err
		}
	}
	return mov, nil
}

// RegisterMovement registra una reposición, corrección o robo iniciado por un admin.
// Las ventas solo las genera el procesador de pedidos.
func (e *Engine) RegisterMovement(ctx context.Context, actor domain.Actor, in MovementInput) (*entity.InventoryMovement, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if in.ProductID == "" || in.Type == entity.MovementTypeSale || in.OrderItemID != "" {
		return nil, domain.ErrInvalidInput
	}
	if err := invdomain.ValidateMovement(in.Type, in.Quantity); err != nil {
		return nil, err
	}
	in.AdminID = actor.UserID

	var mov *entity.InventoryMovement
	err := e.txRunner.Run(ctx, func(repos repository.Repos) error {
		product, err := repos.Products.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}
		mov, err = e.ApplyInTx(ctx, repos, product, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	e.log.Info().
		Str("product_id", mov.ProductID).
		Str("type", mov.Type).
		Int("quantity", mov.Quantity).
		Str("admin_id", mov.AdminID).
		Msg("movimiento de inventario registrado")
	return mov, nil
}

// EditProductInput edición de un producto por un admin. Los punteros nil no se modifican.
// OriginalStock es el stock que el admin vio al abrir el formulario; si es nil se usa el actual.
type EditProductInput struct {
	ProductID             string
	Name                  *string
	Image                 *string
	PurchasePrice         *decimal.Decimal
	SellingPriceMember    *decimal.Decimal
	SellingPriceNonMember *decimal.Decimal
	Stock                 *int
	OriginalStock         *int
	MarkAsStolen          bool
}

// EditProduct actualiza campos y, si cambió el stock, registra la corrección o el robo
// en la misma transacción. delta = Stock - OriginalStock se aplica sobre el stock actual.
func (e *Engine) EditProduct(ctx context.Context, actor domain.Actor, in EditProductInput) (*entity.Product, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if in.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Name != nil && *in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	for _, price := range []*decimal.Decimal{in.PurchasePrice, in.SellingPriceMember, in.SellingPriceNonMember} {
		if price != nil && price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
	}
	if (in.Stock != nil && *in.Stock < 0) || (in.OriginalStock != nil && *in.OriginalStock < 0) {
		return nil, domain.ErrInvalidInput
	}

	var (
		product *entity.Product
		mov     *entity.InventoryMovement
	)
	err := e.txRunner.Run(ctx, func(repos repository.Repos) error {
		var err error
		product, err = repos.Products.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}

		applyFields(product, in)
		if err := repos.Products.Update(ctx, product); err != nil {
			return err
		}

		if in.Stock == nil {
			return nil
		}
		original := product.Stock
		if in.OriginalStock != nil {
			original = *in.OriginalStock
		}
		delta := *in.Stock - original
		if delta == 0 {
			return nil
		}
		movType := entity.MovementTypeCorrection
		if delta < 0 && in.MarkAsStolen {
			movType = entity.MovementTypeTheft
		}
		mov, err = e.ApplyInTx(ctx, repos, product, MovementInput{
			ProductID: product.ID,
			Type:      movType,
			Quantity:  delta,
			AdminID:   actor.UserID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	ev := e.log.Info().Str("product_id", product.ID).Str("admin_id", actor.UserID)
	if mov != nil {
		ev = ev.Str("movement_type", mov.Type).Int("quantity", mov.Quantity)
	}
	ev.Msg("producto editado")
	return product, nil
}

func applyFields(p *entity.Product, in EditProductInput) {
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Image != nil {
		p.Image = *in.Image
	}
	if in.PurchasePrice != nil {
		p.PurchasePrice = ledger.Round(*in.PurchasePrice)
	}
	if in.SellingPriceMember != nil {
		p.SellingPriceMember = ledger.Round(*in.SellingPriceMember)
	}
	if in.SellingPriceNonMember != nil {
		p.SellingPriceNonMember = ledger.Round(*in.SellingPriceNonMember)
	}
}

// ReverseSalesInTx devuelve al stock las unidades de los movimientos de venta de las líneas dadas
// y borra esos movimientos. Los productos se bloquean en orden ascendente de id.
func (e *Engine) ReverseSalesInTx(ctx context.Context, repos repository.Repos, orderItemIDs []string) error {
	movs, err := repos.Movements.ListByOrderItems(ctx, orderItemIDs)
	if err != nil {
		return err
	}
	if len(movs) == 0 {
		return nil
	}
	restore := make(map[string]int)
	ids := make([]string, 0, len(movs))
	for _, m := range movs {
		if _, seen := restore[m.ProductID]; !seen {
			ids = append(ids, m.ProductID)
		}
		restore[m.ProductID] -= m.Quantity
	}
	products, err := repos.Products.GetManyForUpdate(ctx, ids)
	if err != nil {
		return err
	}
	if len(products) != len(ids) {
		return domain.ErrProductNotFound
	}
	for _, p := range products {
		next, err := invdomain.ApplyDelta(p.Stock, restore[p.ID])
		if err != nil {
			return err
		}
		if err := repos.Products.UpdateStock(ctx, p.ID, next); err != nil {
			return err
		}
	}
	return repos.Movements.DeleteByOrderItems(ctx, orderItemIDs)
}

// ReconcileResult compara el stock cacheado con la suma de movimientos.
type ReconcileResult struct {
	ProductID   string
	CachedStock int
	MovementSum int
	Consistent  bool
	CheckedAt   time.Time
}

// Reconcile verifica stock == Σ movimientos para un producto.
func (e *Engine) Reconcile(ctx context.Context, productID string) (*ReconcileResult, error) {
	var res *ReconcileResult
	err := e.txRunner.Run(ctx, func(repos repository.Repos) error {
		product, err := repos.Products.GetByID(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}
		sum, err := repos.Movements.SumByProduct(ctx, productID)
		if err != nil {
			return err
		}
		res = &ReconcileResult{
			ProductID:   productID,
			CachedStock: product.Stock,
			MovementSum: sum,
			Consistent:  sum == product.Stock,
			CheckedAt:   e.clock.Now(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !res.Consistent {
		e.log.Warn().Str("product_id", productID).
			Int("cached", res.CachedStock).Int("movements", res.MovementSum).
			Msg("stock inconsistente con movimientos")
	}
	return res, nil
}

// ListMovements historial de un producto, más reciente primero.
func (e *Engine) ListMovements(ctx context.Context, productID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	product, err := e.repos.Products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return e.repos.Movements.ListByProduct(ctx, productID, limit, offset)
}
