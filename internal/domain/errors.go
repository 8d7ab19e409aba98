package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrInvalidTransfer    = errors.New("bodega origen y destino no pueden ser la misma")
)

// EntityNotFoundError indica qué entidad referenciada no existe (cliente, producto, bodega, unidad, tarifa...).
// errors.Is(err, ErrNotFound) sigue funcionando para el mapeo HTTP genérico.
type EntityNotFoundError struct {
	Entity string // "customer", "product", "inventory", "unit", "rate", "order", "stock"
}

func (e *EntityNotFoundError) Error() string {
	return fmt.Sprintf("%s: %s", e.Entity, ErrNotFound.Error())
}

// Is permite errors.Is(err, domain.ErrNotFound).
func (e *EntityNotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewEntityNotFound construye un EntityNotFoundError.
func NewEntityNotFound(entity string) error {
	return &EntityNotFoundError{Entity: entity}
}

// StockShortageError detalla un rechazo por stock insuficiente: cuánto hay,
// cuánto se pidió y el faltante, con el nombre de la unidad para el mensaje.
type StockShortageError struct {
	Available decimal.Decimal
	Requested decimal.Decimal
	Shortfall decimal.Decimal
	Unit      string
}

func (e *StockShortageError) Error() string {
	return fmt.Sprintf("stock insuficiente: disponible %s, solicitado %s, faltan %s %s",
		e.Available.String(), e.Requested.String(), e.Shortfall.String(), e.Unit)
}

// Is permite errors.Is(err, domain.ErrInsufficientStock).
func (e *StockShortageError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// NewStockShortage construye el error con el faltante ya calculado.
func NewStockShortage(available, requested decimal.Decimal, unit string) error {
	return &StockShortageError{
		Available: available,
		Requested: requested,
		Shortfall: requested.Sub(available),
		Unit:      unit,
	}
}
