package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/application/stock"
	"github.com/jhoicas/Pedidos-api/pkg/validate"
	"github.com/shopspring/decimal"
)

// StockHandler expone el libro de stock: agregación, disponibilidad, stock
// bajo, movimientos y traslados.
type StockHandler struct {
	uc        *stock.UseCase
	transfers *stock.TransferUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *stock.UseCase, transfers *stock.TransferUseCase) *StockHandler {
	return &StockHandler{uc: uc, transfers: transfers}
}

// Aggregate GET /api/stock — agregación por (producto, bodega, unidad) dentro
// del scope del usuario, con filtros opcionales product_id e inventory_id.
func (h *StockHandler) Aggregate(c *fiber.Ctx) error {
	q := dto.StockQueryRequest{
		ProductID:   c.Query("product_id"),
		InventoryID: c.Query("inventory_id"),
	}
	if err := validate.Struct(q); err != nil {
		return badRequest(c, err.Error())
	}
	out, err := h.uc.Aggregate(c.Context(), GetUserID(c), GetRole(c), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("Stock agregado", out))
}

// Availability GET /api/stock/availability — disponibilidad de una clave concreta.
func (h *StockHandler) Availability(c *fiber.Ctx) error {
	productID := c.Query("product_id")
	inventoryID := c.Query("inventory_id")
	unitID := c.Query("unit_id")
	if productID == "" || inventoryID == "" || unitID == "" {
		return badRequest(c, "product_id, inventory_id y unit_id son requeridos")
	}
	out, err := h.uc.Availability(c.Context(), GetUserID(c), GetRole(c), productID, inventoryID, unitID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("Disponibilidad", out))
}

// LowStock GET /api/stock/low?threshold= — claves con disponible estrictamente
// menor al umbral.
func (h *StockHandler) LowStock(c *fiber.Ctx) error {
	raw := c.Query("threshold", "10")
	threshold, err := decimal.NewFromString(raw)
	if err != nil {
		return badRequest(c, "threshold inválido")
	}
	out, err := h.uc.LowStock(c.Context(), GetUserID(c), GetRole(c), threshold)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("Stock bajo", out))
}

// RegisterMovement POST /api/stock/movements — añade una entrada al libro.
func (h *StockHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if err := validate.Struct(in); err != nil {
		return badRequest(c, err.Error())
	}
	out, err := h.uc.RegisterMovement(c.Context(), GetUserID(c), GetRole(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK("Movimiento registrado", out))
}

// ListMovements GET /api/stock/movements?inventory_id=&from=&to= — historial
// de una bodega (fechas RFC 3339 opcionales).
func (h *StockHandler) ListMovements(c *fiber.Ctx) error {
	inventoryID := c.Query("inventory_id")
	if inventoryID == "" {
		return badRequest(c, "inventory_id es requerido")
	}
	var from, to *time.Time
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return badRequest(c, "from inválido (RFC 3339)")
		}
		from = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return badRequest(c, "to inválido (RFC 3339)")
		}
		to = &t
	}
	out, err := h.uc.ListMovements(c.Context(), GetUserID(c), GetRole(c), inventoryID, from, to, pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("Movimientos", out))
}

// CreateTransfer POST /api/stock/transfers — traslado entre bodegas.
func (h *StockHandler) CreateTransfer(c *fiber.Ctx) error {
	var in dto.CreateTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if err := validate.Struct(in); err != nil {
		return badRequest(c, err.Error())
	}
	out, err := h.transfers.CreateTransfer(c.Context(), GetUserID(c), GetRole(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK("Traslado creado", out))
}

// ListTransfers GET /api/stock/transfers — traslados visibles en el scope.
func (h *StockHandler) ListTransfers(c *fiber.Ctx) error {
	out, err := h.transfers.ListTransfers(c.Context(), GetUserID(c), GetRole(c), pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("Traslados", out))
}

// UpdateTransferStatus PATCH /api/stock/transfers/:id/status.
func (h *StockHandler) UpdateTransferStatus(c *fiber.Ctx) error {
	var in dto.UpdateTransferStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if err := validate.Struct(in); err != nil {
		return badRequest(c, err.Error())
	}
	out, err := h.transfers.UpdateTransferStatus(c.Context(), GetUserID(c), GetRole(c), c.Params("id"), in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("Estado de traslado actualizado", out))
}
