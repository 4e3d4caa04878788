package reversal_test

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bar-stock-api/internal/application/apptest"
	"github.com/jhoicas/bar-stock-api/internal/application/inventory"
	"github.com/jhoicas/bar-stock-api/internal/application/sales"
	"github.com/jhoicas/bar-stock-api/internal/domain"
	"github.com/jhoicas/bar-stock-api/internal/domain/entity"
	"github.com/jhoicas/bar-stock-api/internal/domain/repository"
)

// Secuencias aleatorias de operaciones: tras cada paso el stock cuadra con los movimientos,
// los saldos con depósitos y pedidos, y ni stock ni efectivo son negativos.
func TestConservacion_SecuenciasAleatorias(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		t.Run(fmt.Sprintf("seed=%d", seed), func(t *testing.T) {
			runRandomLedger(t, rand.New(rand.NewPCG(seed, seed*7919)), 120)
		})
	}
}

func runRandomLedger(t *testing.T, rng *rand.Rand, steps int) {
	f := apptest.New(t)
	userIDs := []string{
		"00000000-0000-0000-0000-0000000000e1",
		"00000000-0000-0000-0000-0000000000e2",
		"00000000-0000-0000-0000-0000000000e3",
	}
	for i, id := range userIDs {
		f.SeedUser(t, id, fmt.Sprintf("u%d", i), i%2 == 0, "15.00")
	}
	productIDs := []string{
		f.SeedProduct(t, "Cerveza", "1.10", "1.50", "2.00", 8).ID,
		f.SeedProduct(t, "Vino", "2.35", "3.00", "3.75", 4).ID,
		f.SeedProduct(t, "Agua", "0.33", "0.70", "0.90", 12).ID,
	}
	f.SetCash(t, "20.00")

	pick := func(ids []string) string { return ids[rng.IntN(len(ids))] }
	money := func() decimal.Decimal { return decimal.New(int64(rng.IntN(2001)-1000), -2) }

	for step := 0; step < steps; step++ {
		var err error
		switch rng.IntN(8) {
		case 0, 1:
			method := entity.PaymentMethodBalance
			if rng.IntN(3) == 0 {
				method = entity.PaymentMethodCash
			}
			_, err = f.Orders.PlaceOrder(f.Ctx, apptest.As(pick(userIDs)), sales.PlaceOrderInput{
				PaymentMethod: method,
				Lines: []sales.OrderLine{
					{ProductID: pick(productIDs), Quantity: 1 + rng.IntN(3)},
					{ProductID: pick(productIDs), Quantity: 1 + rng.IntN(2)},
				},
			})
		case 2:
			methods := []string{entity.DepositMethodCash, entity.DepositMethodMBWay, entity.DepositMethodAdjustment}
			_, err = f.Balance.AddDeposit(f.Ctx, apptest.Admin, pick(userIDs), money(), methods[rng.IntN(len(methods))])
		case 3:
			movType := []string{entity.MovementTypeAddStock, entity.MovementTypeCorrection, entity.MovementTypeTheft}[rng.IntN(3)]
			qty := 1 + rng.IntN(4)
			if movType != entity.MovementTypeAddStock && rng.IntN(2) == 0 || movType == entity.MovementTypeTheft {
				qty = -qty
			}
			_, err = f.Engine.RegisterMovement(f.Ctx, apptest.Admin, inventory.MovementInput{
				ProductID: pick(productIDs), Type: movType, Quantity: qty,
			})
		case 4:
			stock := rng.IntN(10)
			_, err = f.Engine.EditProduct(f.Ctx, apptest.Admin, inventory.EditProductInput{
				ProductID: pick(productIDs), Stock: &stock, MarkAsStolen: rng.IntN(2) == 0,
			})
		case 5:
			orders, lerr := f.Repos.Orders.List(f.Ctx, repository.OrderFilter{})
			require.NoError(t, lerr)
			if len(orders) > 0 {
				err = f.Reversal.DeleteOrder(f.Ctx, apptest.Admin, orders[rng.IntN(len(orders))].ID)
			}
		case 6:
			deps, lerr := f.Repos.Deposits.List(f.Ctx, "")
			require.NoError(t, lerr)
			if len(deps) > 0 {
				err = f.Reversal.DeleteDeposit(f.Ctx, apptest.Admin, deps[rng.IntN(len(deps))].ID)
			}
		case 7:
			thefts, lerr := f.Repos.Thefts.List(f.Ctx)
			require.NoError(t, lerr)
			if len(thefts) > 0 {
				err = f.Reversal.DeleteTheftRecord(f.Ctx, apptest.Admin, thefts[rng.IntN(len(thefts))].ID)
			}
		}
		if err != nil {
			require.True(t, domain.IsDomainError(err), "paso %d: error no de dominio: %v", step, err)
		}

		f.RequireStockConsistent(t)
		f.RequireBalancesConsistent(t)
		require.False(t, f.CashAmount(t).IsNegative(), "paso %d: efectivo negativo", step)
	}
}
