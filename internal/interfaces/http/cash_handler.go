package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bar-stock-api/internal/application/dto"
	"github.com/jhoicas/bar-stock-api/internal/application/ledger"
)

// CashHandler efectivo disponible y su auditoría.
type CashHandler struct {
	uc *ledger.CashUseCase
}

// NewCashHandler construye el handler.
func NewCashHandler(uc *ledger.CashUseCase) *CashHandler {
	return &CashHandler{uc: uc}
}

// Get godoc
// @Summary      Efectivo disponible
// @Tags         cash
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CashResponse
// @Router       /api/cash [get]
func (h *CashHandler) Get(c *fiber.Ctx) error {
	cash, err := h.uc.Get(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.CashResponse{Amount: cash.Amount, Version: cash.Version, UpdatedAt: cash.UpdatedAt})
}

// Set godoc
// @Summary      Fijar efectivo disponible (recuento de caja)
// @Tags         cash
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SetCashRequest  true  "Nuevo importe y motivo"
// @Success      200   {object}  dto.CashLogResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/cash [put]
func (h *CashHandler) Set(c *fiber.Ctx) error {
	var in dto.SetCashRequest
	if err := bindJSON(c, &in); err != nil {
		return respondError(c, err)
	}
	entry, err := h.uc.SetAvailableCash(c.UserContext(), actorFrom(c), in.Amount, in.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.CashLogFromEntity(entry))
}

// ListLogs godoc
// @Summary      Auditoría del efectivo (más reciente primero)
// @Tags         cash
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Límite"  default(50)
// @Success      200    {array}  dto.CashLogResponse
// @Router       /api/cash/logs [get]
func (h *CashHandler) ListLogs(c *fiber.Ctx) error {
	logs, err := h.uc.ListLogs(c.UserContext(), actorFrom(c), c.QueryInt("limit", 50))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.CashLogResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, dto.CashLogFromEntity(l))
	}
	return c.JSON(out)
}
