package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bar-stock-api/internal/application/dto"
	"github.com/jhoicas/bar-stock-api/internal/domain/ledger"
	"github.com/jhoicas/bar-stock-api/internal/domain/repository"
)

// RestockUseCase genera la lista de reposición: productos activos con stock <= umbral,
// cantidad sugerida hasta el objetivo y si el costo acumulado cabe en el efectivo disponible.
type RestockUseCase struct {
	repos     repository.Repos
	threshold int
	target    int
}

// NewRestockUseCase construye el caso de uso. target < threshold se corrige a threshold.
func NewRestockUseCase(repos repository.Repos, threshold, target int) *RestockUseCase {
	if target < threshold {
		target = threshold
	}
	return &RestockUseCase{repos: repos, threshold: threshold, target: target}
}

// Generate devuelve la lista priorizada (1 = más urgente: menor stock).
func (uc *RestockUseCase) Generate(ctx context.Context) (*dto.RestockListDTO, error) {
	products, err := uc.repos.Products.List(ctx, true)
	if err != nil {
		return nil, err
	}
	cash, err := uc.repos.Cash.Get(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]dto.RestockItemDTO, 0)
	for _, p := range products {
		if p.Stock > uc.threshold {
			continue
		}
		qty := uc.target - p.Stock
		if qty <= 0 {
			continue
		}
		items = append(items, dto.RestockItemDTO{
			ProductID:     p.ID,
			ProductName:   p.Name,
			CurrentStock:  p.Stock,
			SuggestedQty:  qty,
			UnitCost:      p.PurchasePrice,
			EstimatedCost: ledger.LineTotal(p.PurchasePrice, qty),
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].CurrentStock != items[j].CurrentStock {
			return items[i].CurrentStock < items[j].CurrentStock
		}
		return items[i].ProductName < items[j].ProductName
	})

	cumulative := decimal.Zero
	for i := range items {
		cumulative = ledger.Add(cumulative, items[i].EstimatedCost)
		items[i].Priority = i + 1
		items[i].CumulativeCost = cumulative
		items[i].Affordable = cumulative.LessThanOrEqual(cash.Amount)
	}

	return &dto.RestockListDTO{
		Threshold:     uc.threshold,
		Target:        uc.target,
		AvailableCash: cash.Amount,
		TotalCost:     cumulative,
		Items:         items,
	}, nil
}
