package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/application/orders"
	"github.com/jhoicas/Pedidos-api/pkg/validate"
)

// OrderHandler expone la creación y gestión de pedidos.
type OrderHandler struct {
	create *orders.CreateOrderUseCase
	manage *orders.ManageOrderUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(create *orders.CreateOrderUseCase, manage *orders.ManageOrderUseCase) *OrderHandler {
	return &OrderHandler{create: create, manage: manage}
}

// Create POST /api/orders — transacción de despacho: pedido + movimiento "out".
// Un rechazo por stock insuficiente responde 409 con el desglose en stockDetails.
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if err := validate.Struct(in); err != nil {
		return badRequest(c, err.Error())
	}
	out, err := h.create.CreateOrder(c.Context(), GetUserID(c), GetRole(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK("Pedido creado", out))
}

// List GET /api/orders — pedidos dentro del scope del usuario.
func (h *OrderHandler) List(c *fiber.Ctx) error {
	in := dto.OrderListRequest{
		PageRequest: pageFromQuery(c),
		CustomerID:  c.Query("customer_id"),
		Status:      c.Query("status"),
	}
	if err := validate.Struct(in); err != nil {
		return badRequest(c, err.Error())
	}
	out, err := h.manage.List(c.Context(), GetUserID(c), GetRole(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("Pedidos", out))
}

// GetByID GET /api/orders/:id.
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.manage.Get(c.Context(), GetUserID(c), GetRole(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("Pedido", out))
}

// Update PUT /api/orders/:id.
func (h *OrderHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if err := validate.Struct(in); err != nil {
		return badRequest(c, err.Error())
	}
	out, err := h.manage.Update(c.Context(), GetUserID(c), GetRole(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("Pedido actualizado", out))
}

// UpdateStatus PATCH /api/orders/:id/status — transición libre entre estados.
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateOrderStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if err := validate.Struct(in); err != nil {
		return badRequest(c, err.Error())
	}
	out, err := h.manage.UpdateStatus(c.Context(), GetUserID(c), GetRole(c), c.Params("id"), in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("Estado de pedido actualizado", out))
}

// Delete DELETE /api/orders/:id — solo superadmin; no repone stock.
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	if err := h.manage.Delete(c.Context(), GetUserID(c), GetRole(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("Pedido eliminado", nil))
}
