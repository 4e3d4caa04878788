package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/bar-stock-api/internal/application/dto"
	"github.com/jhoicas/bar-stock-api/internal/application/inventory"
	"github.com/jhoicas/bar-stock-api/internal/domain"
	"github.com/jhoicas/bar-stock-api/internal/domain/entity"
	"github.com/jhoicas/bar-stock-api/internal/domain/ledger"
	"github.com/jhoicas/bar-stock-api/internal/domain/repository"
	"github.com/jhoicas/bar-stock-api/pkg/logger"
)

// StockApplier aplica un movimiento dentro de una transacción abierta.
type StockApplier interface {
	ApplyInTx(ctx context.Context, repos repository.Repos, product *entity.Product, in inventory.MovementInput) (*entity.InventoryMovement, error)
}

// ProductUseCase catálogo de productos: alta, consulta, baja lógica y restauración.
// La edición con cambio de stock vive en inventory.Engine.EditProduct.
type ProductUseCase struct {
	txRunner repository.TxRunner
	repos    repository.Repos
	stock    StockApplier
	clock    domain.Clock
	log      *logger.Logger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(txRunner repository.TxRunner, repos repository.Repos, stock StockApplier, clock domain.Clock, log *logger.Logger) *ProductUseCase {
	return &ProductUseCase{txRunner: txRunner, repos: repos, stock: stock, clock: clock, log: log}
}

// Create da de alta un producto. El stock inicial entra como movimiento add_stock.
func (uc *ProductUseCase) Create(ctx context.Context, actor domain.Actor, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if in.Name == "" || in.InitialStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, price := range []decimal.Decimal{in.PurchasePrice, in.SellingPriceMember, in.SellingPriceNonMember} {
		if price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
	}

	product := &entity.Product{
		ID:                    uuid.New().String(),
		Name:                  in.Name,
		Image:                 in.Image,
		PurchasePrice:         ledger.Round(in.PurchasePrice),
		SellingPriceMember:    ledger.Round(in.SellingPriceMember),
		SellingPriceNonMember: ledger.Round(in.SellingPriceNonMember),
		Stock:                 0,
		Active:                true,
		CreatedAt:             uc.clock.Now(),
	}
	err := uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		if err := repos.Products.Create(ctx, product); err != nil {
			return err
		}
		if in.InitialStock == 0 {
			return nil
		}
		_, err := uc.stock.ApplyInTx(ctx, repos, product, inventory.MovementInput{
			ProductID: product.ID,
			Type:      entity.MovementTypeAddStock,
			Quantity:  in.InitialStock,
			AdminID:   actor.UserID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("product_id", product.ID).Str("name", product.Name).Int("stock", product.Stock).Msg("producto creado")
	resp := dto.ProductFromEntity(product)
	return &resp, nil
}

// GetByID obtiene un producto (activo o no).
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := uc.repos.Products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrProductNotFound
	}
	resp := dto.ProductFromEntity(p)
	return &resp, nil
}

// List productos activos; los inactivos solo para admin.
func (uc *ProductUseCase) List(ctx context.Context, actor domain.Actor, active bool) (*dto.ProductListResponse, error) {
	if !active && !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	list, err := uc.repos.Products.List(ctx, active)
	if err != nil {
		return nil, err
	}
	out := &dto.ProductListResponse{Items: make([]dto.ProductResponse, 0, len(list))}
	for _, p := range list {
		out.Items = append(out.Items, dto.ProductFromEntity(p))
	}
	return out, nil
}

// Delete baja lógica: el producto deja de venderse pero sigue referenciado por el historial.
func (uc *ProductUseCase) Delete(ctx context.Context, actor domain.Actor, id string) error {
	return uc.setActive(ctx, actor, id, false)
}

// Restore vuelve a activar un producto eliminado.
func (uc *ProductUseCase) Restore(ctx context.Context, actor domain.Actor, id string) error {
	return uc.setActive(ctx, actor, id, true)
}

func (uc *ProductUseCase) setActive(ctx context.Context, actor domain.Actor, id string, active bool) error {
	if !actor.IsAdmin() {
		return domain.ErrForbidden
	}
	err := uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		p, err := repos.Products.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrProductNotFound
		}
		return repos.Products.SetActive(ctx, id, active)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("product_id", id).Bool("active", active).Str("admin_id", actor.UserID).Msg("estado de producto cambiado")
	return nil
}
