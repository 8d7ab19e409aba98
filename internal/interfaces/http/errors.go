package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/domain"
)

// respondError traduce errores de dominio al sobre estándar y su status HTTP.
// El orden importa: StockShortageError antes que los sentinelas genéricos para
// no perder el detalle del faltante.
func respondError(c *fiber.Ctx, err error) error {
	var shortage *domain.StockShortageError
	if errors.As(err, &shortage) {
		resp := dto.Fail("Stock insuficiente", shortage.Error())
		resp.StockDetails = &dto.StockDetails{
			Available: shortage.Available,
			Requested: shortage.Requested,
			Shortfall: shortage.Shortfall,
			Unit:      shortage.Unit,
		}
		return c.Status(fiber.StatusConflict).JSON(resp)
	}

	var notFound *domain.EntityNotFoundError
	if errors.As(err, &notFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.Fail(notFound.Error(), notFound.Error()))
	}

	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidTransfer):
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Solicitud inválida", err.Error()))
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Credenciales inválidas", err.Error()))
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.Fail("Acceso denegado", err.Error()))
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.Fail("Recurso no encontrado", err.Error()))
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.Fail("Stock insuficiente", err.Error()))
	case errors.Is(err, domain.ErrEmailAlreadyExists),
		errors.Is(err, domain.ErrDuplicate),
		errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.Fail("Conflicto", err.Error()))
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Error interno", err.Error()))
}

// badRequest respuesta 400 con mensaje directo (cuerpo o query malformados).
func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(message, ""))
}
