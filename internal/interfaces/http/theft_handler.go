package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bar-stock-api/internal/application/analytics"
	"github.com/jhoicas/bar-stock-api/internal/application/dto"
	"github.com/jhoicas/bar-stock-api/internal/application/reversal"
)

// TheftHandler registros de robo.
type TheftHandler struct {
	reports  *analytics.ReportUseCase
	reversal *reversal.UseCase
}

// NewTheftHandler construye el handler.
func NewTheftHandler(reports *analytics.ReportUseCase, rev *reversal.UseCase) *TheftHandler {
	return &TheftHandler{reports: reports, reversal: rev}
}

// List godoc
// @Summary      Listar registros de robo (más reciente primero)
// @Tags         thefts
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.TheftRecordResponse
// @Router       /api/thefts [get]
func (h *TheftHandler) List(c *fiber.Ctx) error {
	list, err := h.reports.ListThefts(c.UserContext(), actorFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.TheftRecordResponse, 0, len(list))
	for _, t := range list {
		out = append(out, dto.TheftRecordFromEntity(t))
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar registro de robo devolviendo el stock
// @Tags         thefts
// @Security     Bearer
// @Param        id   path  string  true  "ID del registro"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/thefts/{id} [delete]
func (h *TheftHandler) Delete(c *fiber.Ctx) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.reversal.DeleteTheftRecord(c.UserContext(), actorFrom(c), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
