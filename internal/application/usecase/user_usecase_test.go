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

func ptr[T any](v T) *T { return &v }

func TestUserUseCase_CreateConSaldoInicial(t *testing.T) {
	f := apptest.New(t)

	out, err := f.Users.Create(f.Ctx, apptest.Admin, dto.CreateUserRequest{
		ID: memberID, Name: "Ana", IsMember: true,
		InitialBalance: ptr(decimal.RequireFromString("12.345")),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, out.Role)
	assert.Equal(t, "12.35", out.Balance.StringFixed(2))

	deps, err := f.Repos.Deposits.List(f.Ctx, memberID)
	require.NoError(t, err)
	require.Len(t, deps, 1)
	assert.Equal(t, entity.DepositMethodAdjustment, deps[0].Method)
	f.RequireBalancesConsistent(t)
}

func TestUserUseCase_CreateRechazos(t *testing.T) {
	f := apptest.New(t)
	f.SeedUser(t, memberID, "Ana", true, "")

	_, err := f.Users.Create(f.Ctx, apptest.As(memberID), dto.CreateUserRequest{Name: "Luis"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.Users.Create(f.Ctx, apptest.Admin, dto.CreateUserRequest{ID: memberID, Name: "Otra"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = f.Users.Create(f.Ctx, apptest.Admin, dto.CreateUserRequest{Name: "Luis", Role: "camarero"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.Users.Create(f.Ctx, apptest.Admin, dto.CreateUserRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUserUseCase_UpdateSaldoComoAjuste(t *testing.T) {
	f := apptest.New(t)
	f.SeedUser(t, memberID, "Ana", true, "10.00")

	out, err := f.Users.Update(f.Ctx, apptest.Admin, memberID, dto.UpdateUserRequest{
		Name:    ptr("Ana María"),
		Balance: ptr(decimal.RequireFromString("-4.50")),
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana María", out.Name)
	assert.Equal(t, "-4.50", out.Balance.StringFixed(2))

	deps, err := f.Repos.Deposits.List(f.Ctx, memberID)
	require.NoError(t, err)
	require.Len(t, deps, 2)
	var sum decimal.Decimal
	for _, d := range deps {
		sum = sum.Add(d.Amount)
	}
	assert.Equal(t, "-4.50", sum.StringFixed(2))
	f.RequireBalancesConsistent(t)

	// Mismo saldo: no se registra nada.
	_, err = f.Users.Update(f.Ctx, apptest.Admin, memberID, dto.UpdateUserRequest{Balance: ptr(decimal.RequireFromString("-4.5"))})
	require.NoError(t, err)
	deps, err = f.Repos.Deposits.List(f.Ctx, memberID)
	require.NoError(t, err)
	assert.Len(t, deps, 2)
}

func TestUserUseCase_UpdateRechazos(t *testing.T) {
	f := apptest.New(t)
	f.SeedUser(t, memberID, "Ana", true, "")

	_, err := f.Users.Update(f.Ctx, apptest.As(memberID), memberID, dto.UpdateUserRequest{Name: ptr("X")})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.Users.Update(f.Ctx, apptest.Admin, memberID, dto.UpdateUserRequest{Name: ptr("")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.Users.Update(f.Ctx, apptest.Admin, memberID, dto.UpdateUserRequest{Role: ptr("root")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.Users.Update(f.Ctx, apptest.Admin, "no-existe", dto.UpdateUserRequest{Name: ptr("X")})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserUseCase_SetMembershipYConsultas(t *testing.T) {
	f := apptest.New(t)
	other := "00000000-0000-0000-0000-0000000000b2"
	f.SeedUser(t, memberID, "Ana", false, "")
	f.SeedUser(t, other, "Luis", false, "")

	out, err := f.Users.SetMembership(f.Ctx, apptest.Admin, memberID, true)
	require.NoError(t, err)
	assert.True(t, out.IsMember)
	assert.True(t, f.User(t, memberID).IsMember)

	me, err := f.Users.GetByID(f.Ctx, apptest.As(memberID), memberID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", me.Name)

	_, err = f.Users.GetByID(f.Ctx, apptest.As(other), memberID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.Users.List(f.Ctx, apptest.As(memberID))
	assert.ErrorIs(t, err, domain.ErrForbidden)
	all, err := f.Users.List(f.Ctx, apptest.Admin)
	require.NoError(t, err)
	assert.Len(t, all.Items, 2)
}
