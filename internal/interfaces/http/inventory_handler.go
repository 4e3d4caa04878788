package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bar-stock-api/internal/application/dto"
	"github.com/jhoicas/bar-stock-api/internal/application/inventory"
)

// InventoryHandler movimientos de stock, conciliación y lista de reposición (admin).
type InventoryHandler struct {
	engine  *inventory.Engine
	restock *inventory.RestockUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(engine *inventory.Engine, restock *inventory.RestockUseCase) *InventoryHandler {
	return &InventoryHandler{engine: engine, restock: restock}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de inventario
// @Description  add_stock (cantidad > 0), correction (≠ 0) o theft (< 0, crea registro de robo).
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "Movimiento"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := bindJSON(c, &in); err != nil {
		return respondError(c, err)
	}
	actor := actorFrom(c)
	mov, err := h.engine.RegisterMovement(c.UserContext(), actor, inventory.MovementInput{
		ProductID: in.ProductID,
		Type:      in.Type,
		Quantity:  in.Quantity,
		AdminID:   actor.UserID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MovementFromEntity(mov))
}

// ListMovements godoc
// @Summary      Historial de movimientos de un producto (más reciente primero)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del producto"
// @Param        limit   query  int     false  "Límite"  default(50)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.MovementListResponse
// @Router       /api/products/{id}/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	page := dto.NewPage(c.QueryInt("limit"), c.QueryInt("offset"))
	list, err := h.engine.ListMovements(c.UserContext(), id, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, dto.MovementFromEntity(m))
	}
	return c.JSON(dto.MovementListResponse{Items: items, Page: page.Response(len(items))})
}

// Reconcile godoc
// @Summary      Verificar stock == Σ movimientos
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ReconcileResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/reconcile [get]
func (h *InventoryHandler) Reconcile(c *fiber.Ctx) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	r, err := h.engine.Reconcile(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ReconcileResponse{
		ProductID:   r.ProductID,
		CachedStock: r.CachedStock,
		MovementSum: r.MovementSum,
		Consistent:  r.Consistent,
		CheckedAt:   r.CheckedAt,
	})
}

// Restock godoc
// @Summary      Lista de reposición priorizada
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.RestockListDTO
// @Router       /api/inventory/restock [get]
func (h *InventoryHandler) Restock(c *fiber.Ctx) error {
	out, err := h.restock.Generate(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
