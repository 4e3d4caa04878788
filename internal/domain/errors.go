package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio del ledger (sin dependencias de infraestructura).
var (
	ErrNotFound                 = errors.New("recurso no encontrado")
	ErrInvalidInput             = errors.New("entrada inválida")
	ErrUnauthorized             = errors.New("no autorizado")
	ErrForbidden                = errors.New("acceso denegado")
	ErrConflict                 = errors.New("conflicto con el estado actual")
	ErrInsufficientStock        = errors.New("stock insuficiente")
	ErrInsufficientBalance      = errors.New("saldo insuficiente")
	ErrNegativeBalanceRejected  = errors.New("el saldo quedaría negativo")
	ErrNegativeStockRejected    = errors.New("el stock quedaría negativo")
	ErrCashWouldGoNegative      = errors.New("el efectivo disponible quedaría negativo")
	ErrPaymentProcessingFailure = errors.New("no se pudo procesar el pago")
)

// Variantes de NotFound por entidad; errors.Is(err, ErrNotFound) sigue funcionando.
var (
	ErrUserNotFound        = fmt.Errorf("usuario: %w", ErrNotFound)
	ErrProductNotFound     = fmt.Errorf("producto: %w", ErrNotFound)
	ErrOrderNotFound       = fmt.Errorf("pedido: %w", ErrNotFound)
	ErrDepositNotFound     = fmt.Errorf("depósito: %w", ErrNotFound)
	ErrTheftRecordNotFound = fmt.Errorf("registro de robo: %w", ErrNotFound)
)

// ErrBalanceWouldGoNegative se usa al revertir depósitos; es un caso de ErrNegativeBalanceRejected.
var ErrBalanceWouldGoNegative = fmt.Errorf("reversión rechazada: %w", ErrNegativeBalanceRejected)

// LedgerError añade contexto (entidad, valor intentado y valor actual) a un error de dominio
// para que el llamador pueda construir un mensaje para el usuario.
type LedgerError struct {
	Kind      error
	Entity    string
	EntityID  string
	Attempted decimal.Decimal
	Current   decimal.Decimal
	Cause     error
}

// NewLedgerError construye el error con los valores intentado/actual.
func NewLedgerError(kind error, entity, id string, attempted, current decimal.Decimal) *LedgerError {
	return &LedgerError{Kind: kind, Entity: entity, EntityID: id, Attempted: attempted, Current: current}
}

// Wrap envuelve una causa técnica bajo un tipo de error de dominio.
func Wrap(kind error, entity, id string, cause error) *LedgerError {
	return &LedgerError{Kind: kind, Entity: entity, EntityID: id, Cause: cause}
}

func (e *LedgerError) Error() string {
	msg := e.Kind.Error()
	if e.Entity != "" {
		msg += fmt.Sprintf(" (%s %s)", e.Entity, e.EntityID)
	}
	if !e.Attempted.IsZero() || !e.Current.IsZero() {
		msg += fmt.Sprintf(": intentado %s, actual %s", e.Attempted.StringFixed(2), e.Current.StringFixed(2))
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap expone el tipo y la causa a errors.Is / errors.As.
func (e *LedgerError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

// IsDomainError indica si err pertenece a la taxonomía del ledger (rechazo de negocio,
// no fallo de infraestructura).
func IsDomainError(err error) bool {
	for _, kind := range []error{
		ErrNotFound, ErrInvalidInput, ErrUnauthorized, ErrForbidden, ErrConflict,
		ErrInsufficientStock, ErrInsufficientBalance, ErrNegativeBalanceRejected,
		ErrNegativeStockRejected, ErrCashWouldGoNegative,
	} {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}
