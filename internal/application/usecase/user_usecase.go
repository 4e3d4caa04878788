package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/bar-stock-api/internal/application/dto"
	ledgeruc "github.com/jhoicas/bar-stock-api/internal/application/ledger"
	"github.com/jhoicas/bar-stock-api/internal/domain"
	"github.com/jhoicas/bar-stock-api/internal/domain/entity"
	"github.com/jhoicas/bar-stock-api/internal/domain/ledger"
	"github.com/jhoicas/bar-stock-api/internal/domain/repository"
	"github.com/jhoicas/bar-stock-api/pkg/logger"
)

// DepositBooker registra depósitos dentro de una transacción abierta (ledger.BalanceUseCase).
type DepositBooker interface {
	AddDepositInTx(ctx context.Context, repos repository.Repos, in ledgeruc.DepositInput) (*entity.Deposit, error)
}

// UserUseCase directorio de usuarios del ledger. Las credenciales las gestiona el proveedor de identidad.
type UserUseCase struct {
	txRunner repository.TxRunner
	repos    repository.Repos
	deposits DepositBooker
	clock    domain.Clock
	log      *logger.Logger
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(txRunner repository.TxRunner, repos repository.Repos, deposits DepositBooker, clock domain.Clock, log *logger.Logger) *UserUseCase {
	return &UserUseCase{txRunner: txRunner, repos: repos, deposits: deposits, clock: clock, log: log}
}

// Create da de alta el perfil con saldo 0; un saldo inicial se registra como ajuste.
func (uc *UserUseCase) Create(ctx context.Context, actor domain.Actor, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	role := in.Role
	if role == "" {
		role = entity.RoleUser
	}
	if !entity.ValidRole(role) {
		return nil, domain.ErrInvalidInput
	}
	id := in.ID
	if id == "" {
		id = uuid.New().String()
	}

	user := &entity.User{
		ID:        id,
		Name:      in.Name,
		Email:     in.Email,
		Balance:   decimal.Zero,
		IsMember:  in.IsMember,
		Role:      role,
		CreatedAt: uc.clock.Now(),
	}
	err := uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		if err := repos.Users.Create(ctx, user); err != nil {
			return err
		}
		if in.InitialBalance == nil || ledger.Round(*in.InitialBalance).IsZero() {
			return nil
		}
		dep, err := uc.deposits.AddDepositInTx(ctx, repos, ledgeruc.DepositInput{
			UserID:        user.ID,
			Amount:        *in.InitialBalance,
			Method:        entity.DepositMethodAdjustment,
			AdminID:       actor.UserID,
			AllowNegative: true,
		})
		if err != nil {
			return err
		}
		user.Balance = dep.Amount
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", user.ID).Str("role", user.Role).Bool("member", user.IsMember).Msg("usuario creado")
	resp := dto.UserFromEntity(user)
	return &resp, nil
}

// GetByID obtiene un usuario (él mismo o un admin).
func (uc *UserUseCase) GetByID(ctx context.Context, actor domain.Actor, id string) (*dto.UserResponse, error) {
	if !actor.CanActOn(id) {
		return nil, domain.ErrForbidden
	}
	u, err := uc.repos.Users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	resp := dto.UserFromEntity(u)
	return &resp, nil
}

// List todos los usuarios (admin).
func (uc *UserUseCase) List(ctx context.Context, actor domain.Actor) (*dto.UserListResponse, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	list, err := uc.repos.Users.List(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.UserListResponse{Items: make([]dto.UserResponse, 0, len(list))}
	for _, u := range list {
		out.Items = append(out.Items, dto.UserFromEntity(u))
	}
	return out, nil
}

// Update edita el perfil. Un cambio de saldo se registra como depósito de ajuste por la
// diferencia y, al ser un override de admin, puede dejar el saldo negativo.
func (uc *UserUseCase) Update(ctx context.Context, actor domain.Actor, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if in.Role != nil && !entity.ValidRole(*in.Role) {
		return nil, domain.ErrInvalidInput
	}
	if in.Name != nil && *in.Name == "" {
		return nil, domain.ErrInvalidInput
	}

	var user *entity.User
	err := uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		var err error
		user, err = repos.Users.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.ErrUserNotFound
		}
		if in.Name != nil {
			user.Name = *in.Name
		}
		if in.Email != nil {
			user.Email = *in.Email
		}
		if in.Role != nil {
			user.Role = *in.Role
		}
		if in.IsMember != nil {
			user.IsMember = *in.IsMember
		}
		if err := repos.Users.Update(ctx, user); err != nil {
			return err
		}

		if in.Balance == nil {
			return nil
		}
		diff := ledger.Sub(ledger.Round(*in.Balance), user.Balance)
		if diff.IsZero() {
			return nil
		}
		if _, err := uc.deposits.AddDepositInTx(ctx, repos, ledgeruc.DepositInput{
			UserID:        user.ID,
			Amount:        diff,
			Method:        entity.DepositMethodAdjustment,
			AdminID:       actor.UserID,
			AllowNegative: true,
		}); err != nil {
			return err
		}
		user.Balance = ledger.Add(user.Balance, diff)
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", user.ID).Str("admin_id", actor.UserID).Msg("usuario editado")
	resp := dto.UserFromEntity(user)
	return &resp, nil
}

// SetMembership cambia el precio aplicable al usuario en los próximos pedidos.
func (uc *UserUseCase) SetMembership(ctx context.Context, actor domain.Actor, id string, isMember bool) (*dto.UserResponse, error) {
	return uc.Update(ctx, actor, id, dto.UpdateUserRequest{IsMember: &isMember})
}
