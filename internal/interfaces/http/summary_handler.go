package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/application/summary"
)

// SummaryHandler expone el resumen por periodo.
type SummaryHandler struct {
	uc *summary.UseCase
}

// NewSummaryHandler construye el handler.
func NewSummaryHandler(uc *summary.UseCase) *SummaryHandler {
	return &SummaryHandler{uc: uc}
}

// Summarize GET /api/summary?period=&inventory_id= — ventas del periodo más
// foto de stock por bodega, dentro del scope del usuario.
func (h *SummaryHandler) Summarize(c *fiber.Ctx) error {
	period := c.Query("period", summary.PeriodDaily)
	inventoryID := c.Query("inventory_id")
	out, err := h.uc.Summarize(c.Context(), GetUserID(c), GetRole(c), period, inventoryID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("Resumen", out))
}
