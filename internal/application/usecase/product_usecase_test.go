package usecase_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bar-stock-api/internal/application/apptest"
	"github.com/jhoicas/bar-stock-api/internal/application/dto"
	"github.com/jhoicas/bar-stock-api/internal/domain"
	"github.com/jhoicas/bar-stock-api/internal/domain/entity"
)

const memberID = "00000000-0000-0000-0000-0000000000b1"

func TestProductUseCase_CreateConStockInicial(t *testing.T) {
	f := apptest.New(t)

	out, err := f.Products.Create(f.Ctx, apptest.Admin, dto.CreateProductRequest{
		Name:                  "Cerveza",
		PurchasePrice:         decimal.RequireFromString("1.255"),
		SellingPriceMember:    decimal.RequireFromString("2"),
		SellingPriceNonMember: decimal.RequireFromString("2.5"),
		InitialStock:          12,
	})
	require.NoError(t, err)
	assert.Equal(t, "1.26", out.PurchasePrice.StringFixed(2))

	p := f.Product(t, out.ID)
	assert.Equal(t, 12, p.Stock)
	movs, err := f.Repos.Movements.ListByProduct(f.Ctx, p.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeAddStock, movs[0].Type)
	assert.Equal(t, 12, movs[0].Quantity)
	assert.Equal(t, apptest.AdminID, movs[0].AdminID)
	f.RequireStockConsistent(t)
}

func TestProductUseCase_CreateSinStockNoRegistraMovimiento(t *testing.T) {
	f := apptest.New(t)
	p := f.SeedProduct(t, "Agua", "0.50", "1.00", "1.20", 0)

	movs, err := f.Repos.Movements.ListByProduct(f.Ctx, p.ID, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, movs)
}

func TestProductUseCase_CreateRechazos(t *testing.T) {
	f := apptest.New(t)
	valid := dto.CreateProductRequest{Name: "Vino", PurchasePrice: decimal.RequireFromString("3")}

	_, err := f.Products.Create(f.Ctx, apptest.As(memberID), valid)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	noName := valid
	noName.Name = ""
	_, err = f.Products.Create(f.Ctx, apptest.Admin, noName)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	negPrice := valid
	negPrice.SellingPriceMember = decimal.RequireFromString("-1")
	_, err = f.Products.Create(f.Ctx, apptest.Admin, negPrice)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	negStock := valid
	negStock.InitialStock = -1
	_, err = f.Products.Create(f.Ctx, apptest.Admin, negStock)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductUseCase_DeleteYRestore(t *testing.T) {
	f := apptest.New(t)
	p := f.SeedProduct(t, "Cerveza", "2.50", "4.00", "5.00", 5)

	require.ErrorIs(t, f.Products.Delete(f.Ctx, apptest.As(memberID), p.ID), domain.ErrForbidden)
	require.NoError(t, f.Products.Delete(f.Ctx, apptest.Admin, p.ID))
	assert.False(t, f.Product(t, p.ID).Active)
	assert.Equal(t, 5, f.Product(t, p.ID).Stock, "la baja lógica no toca el stock")

	active, err := f.Products.List(f.Ctx, apptest.As(memberID), true)
	require.NoError(t, err)
	assert.Empty(t, active.Items)

	_, err = f.Products.List(f.Ctx, apptest.As(memberID), false)
	require.ErrorIs(t, err, domain.ErrForbidden)
	inactive, err := f.Products.List(f.Ctx, apptest.Admin, false)
	require.NoError(t, err)
	require.Len(t, inactive.Items, 1)

	got, err := f.Products.GetByID(f.Ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)

	require.NoError(t, f.Products.Restore(f.Ctx, apptest.Admin, p.ID))
	assert.True(t, f.Product(t, p.ID).Active)

	require.ErrorIs(t, f.Products.Delete(f.Ctx, apptest.Admin, "no-existe"), domain.ErrNotFound)
	_, err = f.Products.GetByID(f.Ctx, "no-existe")
	require.ErrorIs(t, err, domain.ErrProductNotFound)
}
