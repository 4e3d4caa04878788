package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bar-stock-api/internal/application/apptest"
)

func TestRestock_PriorizaPorStockYMarcaLoAsequible(t *testing.T) {
	f := apptest.New(t)
	f.SeedProduct(t, "Agua", "0.50", "1.00", "1.20", 2)
	f.SeedProduct(t, "Vino", "3.00", "6.00", "7.00", 0)
	f.SeedProduct(t, "Cerveza", "1.00", "2.00", "2.50", 10)
	retired := f.SeedProduct(t, "Sidra", "1.00", "2.00", "2.50", 0)
	require.NoError(t, f.Products.Delete(f.Ctx, apptest.Admin, retired.ID))
	f.SetCash(t, "65.00")

	out, err := f.Restock.Generate(f.Ctx)
	require.NoError(t, err)
	require.Len(t, out.Items, 2)

	first, second := out.Items[0], out.Items[1]
	assert.Equal(t, "Vino", first.ProductName)
	assert.Equal(t, 1, first.Priority)
	assert.Equal(t, 20, first.SuggestedQty)
	assert.True(t, first.EstimatedCost.Equal(decimal.RequireFromString("60.00")))
	assert.True(t, first.Affordable)

	assert.Equal(t, "Agua", second.ProductName)
	assert.Equal(t, 18, second.SuggestedQty)
	assert.True(t, second.CumulativeCost.Equal(decimal.RequireFromString("69.00")))
	assert.False(t, second.Affordable)

	assert.True(t, out.TotalCost.Equal(decimal.RequireFromString("69.00")))
	assert.True(t, out.AvailableCash.Equal(decimal.RequireFromString("65.00")))
}
