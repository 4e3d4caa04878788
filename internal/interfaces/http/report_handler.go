package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bar-stock-api/internal/application/analytics"
)

// ReportHandler informes financieros, deudores y actividad.
type ReportHandler struct {
	uc *analytics.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *analytics.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Summary godoc
// @Summary      Resumen financiero
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.FinancialSummaryDTO
// @Router       /api/reports/summary [get]
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.UserContext(), actorFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SummaryPDF godoc
// @Summary      Resumen financiero en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/reports/summary.pdf [get]
func (h *ReportHandler) SummaryPDF(c *fiber.Ctx) error {
	pdf, err := h.uc.SummaryPDF(c.UserContext(), actorFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="resumen.pdf"`)
	return c.Send(pdf)
}

// Debtors godoc
// @Summary      Ranking de deudores (actual e histórico)
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DebtorsBoardDTO
// @Router       /api/reports/debtors [get]
func (h *ReportHandler) Debtors(c *fiber.Ctx) error {
	out, err := h.uc.Debtors(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Activity godoc
// @Summary      Feed de actividad (más reciente primero)
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Límite"  default(100)
// @Success      200    {array}  dto.ActivityDTO
// @Router       /api/reports/activity [get]
func (h *ReportHandler) Activity(c *fiber.Ctx) error {
	out, err := h.uc.Activity(c.UserContext(), actorFrom(c), c.QueryInt("limit", 100))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
