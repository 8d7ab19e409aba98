package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Dirección de un movimiento de stock. La cantidad siempre es positiva;
// la dirección lleva el signo.
const (
	DirectionIn  = "in"
	DirectionOut = "out"
)

// Método (origen) del movimiento.
const (
	MethodPurchase   = "purchase"
	MethodOrder      = "order"
	MethodTransfer   = "transfer"
	MethodAdjustment = "adjustment"
)

// StockMovement es una entrada del libro de stock: registro inmutable y con signo
// contra la clave (producto, bodega, unidad). El stock disponible se deriva sumando
// movimientos; no existe contador mutable ni ruta de update/delete. Corregir stock
// es insertar un movimiento compensatorio.
type StockMovement struct {
	ID          string
	ProductID   string
	InventoryID string
	UnitID      string
	Quantity    decimal.Decimal // siempre > 0
	Direction   string          // in | out
	Method      string          // purchase | order | transfer | adjustment
	CreatedAt   time.Time
}

// ValidDirection indica si s es una dirección reconocida.
func ValidDirection(s string) bool {
	return s == DirectionIn || s == DirectionOut
}

// ValidMethod indica si s es un método reconocido.
func ValidMethod(s string) bool {
	switch s {
	case MethodPurchase, MethodOrder, MethodTransfer, MethodAdjustment:
		return true
	}
	return false
}
