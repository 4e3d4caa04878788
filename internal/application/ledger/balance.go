package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/bar-stock-api/internal/domain"
	"github.com/jhoicas/bar-stock-api/internal/domain/entity"
	"github.com/jhoicas/bar-stock-api/internal/domain/ledger"
	"github.com/jhoicas/bar-stock-api/internal/domain/repository"
	"github.com/jhoicas/bar-stock-api/pkg/logger"
)

// BalanceUseCase depósitos y débitos sobre el saldo de los usuarios.
type BalanceUseCase struct {
	txRunner repository.TxRunner
	repos    repository.Repos
	clock    domain.Clock
	log      *logger.Logger
}

// NewBalanceUseCase construye el caso de uso.
func NewBalanceUseCase(txRunner repository.TxRunner, repos repository.Repos, clock domain.Clock, log *logger.Logger) *BalanceUseCase {
	return &BalanceUseCase{txRunner: txRunner, repos: repos, clock: clock, log: log}
}

// DepositInput datos de un depósito. AllowNegative solo lo usa la edición de saldo de un admin
// (override explícito); AddDeposit nunca lo activa.
type DepositInput struct {
	UserID        string
	Amount        decimal.Decimal
	Method        string
	AdminID       string
	AllowNegative bool
}

// AddDeposit registra un depósito: saldo += amount y, salvo ajustes, efectivo += amount con log.
// Un débito que deje el saldo negativo se rechaza con ErrNegativeBalanceRejected.
func (uc *BalanceUseCase) AddDeposit(ctx context.Context, actor domain.Actor, userID string, amount decimal.Decimal, method string) (*entity.Deposit, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	var dep *entity.Deposit
	err := uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		var err error
		dep, err = uc.AddDepositInTx(ctx, repos, DepositInput{
			UserID:  userID,
			Amount:  amount,
			Method:  method,
			AdminID: actor.UserID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("deposit_id", dep.ID).
		Str("user_id", dep.UserID).
		Str("amount", dep.Amount.StringFixed(2)).
		Str("method", dep.Method).
		Msg("depósito registrado")
	return dep, nil
}

// AddDepositInTx valida y aplica el depósito con los repos de la transacción del caller.
// Toda la validación ocurre antes de la primera escritura.
func (uc *BalanceUseCase) AddDepositInTx(ctx context.Context, repos repository.Repos, in DepositInput) (*entity.Deposit, error) {
	amount := ledger.Round(in.Amount)
	if amount.IsZero() || !entity.ValidDepositMethod(in.Method) || in.UserID == "" {
		return nil, domain.ErrInvalidInput
	}

	user, err := repos.Users.GetForUpdate(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	nextBalance := ledger.Add(user.Balance, amount)
	if amount.IsNegative() && nextBalance.IsNegative() && !in.AllowNegative {
		return nil, domain.NewLedgerError(domain.ErrNegativeBalanceRejected, "usuario", user.ID, nextBalance, user.Balance)
	}

	dep := &entity.Deposit{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Amount:    amount,
		Method:    in.Method,
		Timestamp: uc.clock.Now(),
	}

	var cash *entity.AvailableCash
	if dep.MovesCash() {
		cash, err = repos.Cash.GetForUpdate(ctx)
		if err != nil {
			return nil, err
		}
		if ledger.Add(cash.Amount, amount).IsNegative() {
			return nil, domain.NewLedgerError(domain.ErrCashWouldGoNegative, "efectivo", cash.ID, ledger.Add(cash.Amount, amount), cash.Amount)
		}
	}

	if err := repos.Deposits.Create(ctx, dep); err != nil {
		return nil, err
	}
	if err := repos.Users.UpdateBalance(ctx, user.ID, nextBalance); err != nil {
		return nil, err
	}
	if cash != nil {
		reason := fmt.Sprintf("depósito %s (%s)", dep.ID, dep.Method)
		if _, err := writeCash(ctx, repos, cash, ledger.Add(cash.Amount, amount), reason, in.AdminID, dep.Timestamp); err != nil {
			return nil, err
		}
	}
	return dep, nil
}

// ListDeposits depósitos en orden cronológico. Un usuario normal solo ve los suyos.
func (uc *BalanceUseCase) ListDeposits(ctx context.Context, actor domain.Actor, userID string) ([]*entity.Deposit, error) {
	if !actor.IsAdmin() {
		if userID != "" && userID != actor.UserID {
			return nil, domain.ErrForbidden
		}
		userID = actor.UserID
	}
	return uc.repos.Deposits.List(ctx, userID)
}
