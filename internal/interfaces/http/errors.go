package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bar-stock-api/internal/application/dto"
	"github.com/jhoicas/bar-stock-api/internal/domain"
)

type errorMapping struct {
	kind   error
	status int
	code   string
}

// El orden importa: las variantes más específicas van primero.
var errorMappings = []errorMapping{
	{domain.ErrBalanceWouldGoNegative, fiber.StatusUnprocessableEntity, "BALANCE_WOULD_GO_NEGATIVE"},
	{domain.ErrNegativeBalanceRejected, fiber.StatusUnprocessableEntity, "NEGATIVE_BALANCE_REJECTED"},
	{domain.ErrNegativeStockRejected, fiber.StatusUnprocessableEntity, "NEGATIVE_STOCK_REJECTED"},
	{domain.ErrCashWouldGoNegative, fiber.StatusUnprocessableEntity, "CASH_WOULD_GO_NEGATIVE"},
	{domain.ErrInsufficientStock, fiber.StatusUnprocessableEntity, "INSUFFICIENT_STOCK"},
	{domain.ErrInsufficientBalance, fiber.StatusUnprocessableEntity, "INSUFFICIENT_BALANCE"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrPaymentProcessingFailure, fiber.StatusInternalServerError, "PAYMENT_PROCESSING_FAILURE"},
}

// respondError traduce un error de dominio a status + código; el resto es 500 INTERNAL.
func respondError(c *fiber.Ctx, err error) error {
	var reqErr *requestError
	if errors.As(err, &reqErr) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: reqErr.code, Message: reqErr.message, Details: reqErr.details})
	}
	for _, m := range errorMappings {
		if errors.Is(err, m.kind) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: err.Error(), Details: ledgerDetails(err)})
		}
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func ledgerDetails(err error) map[string]any {
	var le *domain.LedgerError
	if !errors.As(err, &le) {
		return nil
	}
	details := map[string]any{}
	if le.Entity != "" {
		details["entity"] = le.Entity
		details["entity_id"] = le.EntityID
	}
	if !le.Attempted.IsZero() || !le.Current.IsZero() {
		details["attempted"] = le.Attempted.StringFixed(2)
		details["current"] = le.Current.StringFixed(2)
	}
	if len(details) == 0 {
		return nil
	}
	return details
}
