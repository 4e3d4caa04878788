package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bar-stock-api/internal/application/dto"
	"github.com/jhoicas/bar-stock-api/internal/application/reversal"
	"github.com/jhoicas/bar-stock-api/internal/application/sales"
)

// OrderHandler pedidos: alta y cobro, consulta y reversión.
type OrderHandler struct {
	place    *sales.PlaceOrderUseCase
	reversal *reversal.UseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(place *sales.PlaceOrderUseCase, rev *reversal.UseCase) *OrderHandler {
	return &OrderHandler{place: place, reversal: rev}
}

// Place godoc
// @Summary      Crear y cobrar un pedido
// @Description  El precio lo fija el servidor según la membresía. Un admin puede indicar user_id.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PlaceOrderRequest  true  "Pedido"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Place(c *fiber.Ctx) error {
	var in dto.PlaceOrderRequest
	if err := bindJSON(c, &in); err != nil {
		return respondError(c, err)
	}
	lines := make([]sales.OrderLine, 0, len(in.Items))
	for _, it := range in.Items {
		lines = append(lines, sales.OrderLine{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	order, err := h.place.PlaceOrder(c.UserContext(), actorFrom(c), sales.PlaceOrderInput{
		UserID:        in.UserID,
		PaymentMethod: in.PaymentMethod,
		Lines:         lines,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OrderFromEntity(order))
}

// List godoc
// @Summary      Listar pedidos (propios; admin todos o ?user_id=)
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        user_id  query  string  false  "Filtrar por usuario"
// @Success      200      {object}  dto.OrderListResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	list, err := h.place.ListOrders(c.UserContext(), actorFrom(c), c.Query("user_id"))
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, dto.OrderFromEntity(o))
	}
	return c.JSON(dto.OrderListResponse{Items: items})
}

// GetByID godoc
// @Summary      Obtener pedido
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	order, err := h.place.GetOrder(c.UserContext(), actorFrom(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OrderFromEntity(order))
}

// Delete godoc
// @Summary      Eliminar pedido revirtiendo saldo, efectivo y stock
// @Tags         orders
// @Security     Bearer
// @Param        id   path  string  true  "ID del pedido"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [delete]
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.reversal.DeleteOrder(c.UserContext(), actorFrom(c), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
