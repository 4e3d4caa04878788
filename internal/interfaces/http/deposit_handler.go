package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bar-stock-api/internal/application/dto"
	"github.com/jhoicas/bar-stock-api/internal/application/ledger"
	"github.com/jhoicas/bar-stock-api/internal/application/reversal"
)

// DepositHandler depósitos sobre el saldo de los usuarios.
type DepositHandler struct {
	balance  *ledger.BalanceUseCase
	reversal *reversal.UseCase
}

// NewDepositHandler construye el handler.
func NewDepositHandler(balance *ledger.BalanceUseCase, rev *reversal.UseCase) *DepositHandler {
	return &DepositHandler{balance: balance, reversal: rev}
}

// Create godoc
// @Summary      Registrar depósito (importe negativo = débito)
// @Tags         deposits
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddDepositRequest  true  "Depósito"
// @Success      201   {object}  dto.DepositResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/deposits [post]
func (h *DepositHandler) Create(c *fiber.Ctx) error {
	var in dto.AddDepositRequest
	if err := bindJSON(c, &in); err != nil {
		return respondError(c, err)
	}
	dep, err := h.balance.AddDeposit(c.UserContext(), actorFrom(c), in.UserID, in.Amount, in.Method)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.DepositFromEntity(dep))
}

// List godoc
// @Summary      Listar depósitos (propios; admin todos o ?user_id=)
// @Tags         deposits
// @Security     Bearer
// @Produce      json
// @Param        user_id  query  string  false  "Filtrar por usuario"
// @Success      200      {object}  dto.DepositListResponse
// @Router       /api/deposits [get]
func (h *DepositHandler) List(c *fiber.Ctx) error {
	list, err := h.balance.ListDeposits(c.UserContext(), actorFrom(c), c.Query("user_id"))
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.DepositResponse, 0, len(list))
	for _, d := range list {
		items = append(items, dto.DepositFromEntity(d))
	}
	return c.JSON(dto.DepositListResponse{Items: items})
}

// Delete godoc
// @Summary      Eliminar depósito revirtiendo saldo y efectivo
// @Tags         deposits
// @Security     Bearer
// @Param        id   path  string  true  "ID del depósito"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/deposits/{id} [delete]
func (h *DepositHandler) Delete(c *fiber.Ctx) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.reversal.DeleteDeposit(c.UserContext(), actorFrom(c), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
