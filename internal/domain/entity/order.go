package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un pedido. El cambio de estado es libre (cualquier estado puede
// pasar a cualquier otro); no hay máquina de estados forward-only.
const (
	OrderPending   = "pending"
	OrderConfirmed = "confirmed"
	OrderShipped   = "shipped"
	OrderDelivered = "delivered"
	OrderCancelled = "cancelled"
)

// Métodos de pago.
const (
	PaymentCash   = "cash"
	PaymentCheque = "cheque"
	PaymentCard   = "card"
	PaymentNone   = "no"
)

// Order representa un pedido. Se crea únicamente a través de la transacción de
// despacho (pedido + movimiento "out" compensatorio, todo o nada).
// TotalAmount = tarifa(producto, unidad) × cantidad, redondeado a 2 decimales.
type Order struct {
	ID            string
	CustomerID    string
	ProductID     string
	InventoryID   string
	UnitID        string
	VerifiedBy    string // usuario admin/superadmin que registró el pedido
	Quantity      decimal.Decimal
	Status        string
	PaymentMethod string
	OrderDate     time.Time
	TotalAmount   decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ValidOrderStatus indica si s es un estado de pedido reconocido.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// ValidPaymentMethod indica si s es un método de pago reconocido.
func ValidPaymentMethod(s string) bool {
	switch s {
	case PaymentCash, PaymentCheque, PaymentCard, PaymentNone:
		return true
	}
	return false
}
