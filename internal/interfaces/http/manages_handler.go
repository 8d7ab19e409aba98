package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/application/usecase"
	"github.com/jhoicas/Pedidos-api/pkg/validate"
)

// ManagesHandler administra la relación admin ↔ bodega (solo superadmin).
type ManagesHandler struct {
	uc *usecase.ManagesUseCase
}

// NewManagesHandler construye el handler.
func NewManagesHandler(uc *usecase.ManagesUseCase) *ManagesHandler {
	return &ManagesHandler{uc: uc}
}

func (h *ManagesHandler) Assign(c *fiber.Ctx) error {
	var in dto.AssignInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if err := validate.Struct(in); err != nil {
		return badRequest(c, err.Error())
	}
	if err := h.uc.Assign(in); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK("Bodega asignada", nil))
}

func (h *ManagesHandler) Unassign(c *fiber.Ctx) error {
	var in dto.AssignInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if err := validate.Struct(in); err != nil {
		return badRequest(c, err.Error())
	}
	if err := h.uc.Unassign(in); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("Asignación retirada", nil))
}

func (h *ManagesHandler) ManagedInventories(c *fiber.Ctx) error {
	ids, err := h.uc.ManagedInventories(c.Params("userId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("Bodegas asignadas", ids))
}
