package ledger_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bar-stock-api/internal/application/apptest"
	"github.com/jhoicas/bar-stock-api/internal/domain"
	"github.com/jhoicas/bar-stock-api/internal/domain/entity"
)

const userID = "00000000-0000-0000-0000-0000000000c1"

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestSetAvailableCash_RegistraLog(t *testing.T) {
	f := apptest.New(t)
	f.SetCash(t, "50.00")

	entry, err := f.Cash.SetAvailableCash(f.Ctx, apptest.Admin, dec("80.00"), "recuento de cierre")
	require.NoError(t, err)
	assert.True(t, entry.PreviousAmount.Equal(dec("50.00")))
	assert.True(t, entry.NewAmount.Equal(dec("80.00")))
	assert.True(t, entry.Difference.Equal(dec("30.00")))
	assert.Equal(t, "recuento de cierre", entry.Reason)
	assert.Equal(t, apptest.AdminID, entry.AdminID)

	cash, err := f.Cash.Get(f.Ctx)
	require.NoError(t, err)
	assert.True(t, cash.Amount.Equal(dec("80.00")))

	logs, err := f.Cash.ListLogs(f.Ctx, apptest.Admin, 10)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, entry.ID, logs[0].ID, "más reciente primero")
}

func TestSetAvailableCash_Rechazos(t *testing.T) {
	f := apptest.New(t)

	_, err := f.Cash.SetAvailableCash(f.Ctx, apptest.Admin, dec("-1"), "x")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.Cash.SetAvailableCash(f.Ctx, apptest.Admin, dec("10"), "")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.Cash.SetAvailableCash(f.Ctx, apptest.As(userID), dec("10"), "x")
	require.ErrorIs(t, err, domain.ErrForbidden)
	_, err = f.Cash.ListLogs(f.Ctx, apptest.As(userID), 10)
	require.ErrorIs(t, err, domain.ErrForbidden)

	assert.True(t, f.CashAmount(t).IsZero())
}

func TestAddDeposit_EfectivoSumaSaldoYCaja(t *testing.T) {
	f := apptest.New(t)
	f.SeedUser(t, userID, "Ana", true, "")

	dep, err := f.Balance.AddDeposit(f.Ctx, apptest.Admin, userID, dec("20.004"), entity.DepositMethodCash)
	require.NoError(t, err)
	assert.True(t, dep.Amount.Equal(dec("20.00")))
	assert.True(t, f.User(t, userID).Balance.Equal(dec("20.00")))
	assert.True(t, f.CashAmount(t).Equal(dec("20.00")))

	logs, err := f.Repos.Cash.ListLogs(f.Ctx, 1)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Contains(t, logs[0].Reason, dep.ID)
}

func TestAddDeposit_AjusteNoMueveCaja(t *testing.T) {
	f := apptest.New(t)
	f.SeedUser(t, userID, "Ana", true, "")

	_, err := f.Balance.AddDeposit(f.Ctx, apptest.Admin, userID, dec("5"), entity.DepositMethodAdjustment)
	require.NoError(t, err)
	assert.True(t, f.User(t, userID).Balance.Equal(dec("5")))
	assert.True(t, f.CashAmount(t).IsZero())
}

func TestAddDeposit_DebitoQueDejaSaldoNegativo(t *testing.T) {
	f := apptest.New(t)
	f.SeedUser(t, userID, "Ana", true, "3.00")
	f.SetCash(t, "100")

	_, err := f.Balance.AddDeposit(f.Ctx, apptest.Admin, userID, dec("-5.00"), entity.DepositMethodCash)
	require.ErrorIs(t, err, domain.ErrNegativeBalanceRejected)
	var le *domain.LedgerError
	require.True(t, errors.As(err, &le))
	assert.True(t, le.Attempted.Equal(dec("-2.00")))
	assert.True(t, le.Current.Equal(dec("3.00")))

	assert.True(t, f.User(t, userID).Balance.Equal(dec("3.00")))
	assert.True(t, f.CashAmount(t).Equal(dec("100")))
	deps, err := f.Repos.Deposits.List(f.Ctx, userID)
	require.NoError(t, err)
	assert.Len(t, deps, 1, "solo el ajuste inicial")
}

func TestAddDeposit_DebitoSinEfectivo(t *testing.T) {
	f := apptest.New(t)
	f.SeedUser(t, userID, "Ana", true, "10.00")

	_, err := f.Balance.AddDeposit(f.Ctx, apptest.Admin, userID, dec("-5.00"), entity.DepositMethodCash)
	require.ErrorIs(t, err, domain.ErrCashWouldGoNegative)
	assert.True(t, f.User(t, userID).Balance.Equal(dec("10.00")))
}

func TestAddDeposit_EntradaInvalida(t *testing.T) {
	f := apptest.New(t)
	f.SeedUser(t, userID, "Ana", true, "")

	_, err := f.Balance.AddDeposit(f.Ctx, apptest.Admin, userID, dec("0.001"), entity.DepositMethodCash)
	require.ErrorIs(t, err, domain.ErrInvalidInput, "redondea a cero")
	_, err = f.Balance.AddDeposit(f.Ctx, apptest.Admin, userID, dec("5"), "bizum")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.Balance.AddDeposit(f.Ctx, apptest.Admin, "00000000-0000-0000-0000-00000000ffff", dec("5"), entity.DepositMethodCash)
	require.ErrorIs(t, err, domain.ErrUserNotFound)
	_, err = f.Balance.AddDeposit(f.Ctx, apptest.As(userID), userID, dec("5"), entity.DepositMethodCash)
	require.ErrorIs(t, err, domain.ErrForbidden)
}

func TestListDeposits_UsuarioSoloVeLosSuyos(t *testing.T) {
	f := apptest.New(t)
	other := "00000000-0000-0000-0000-0000000000c2"
	f.SeedUser(t, userID, "Ana", true, "1")
	f.SeedUser(t, other, "Luis", false, "2")

	own, err := f.Balance.ListDeposits(f.Ctx, apptest.As(userID), "")
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, userID, own[0].UserID)

	_, err = f.Balance.ListDeposits(f.Ctx, apptest.As(userID), other)
	require.ErrorIs(t, err, domain.ErrForbidden)

	all, err := f.Balance.ListDeposits(f.Ctx, apptest.Admin, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
