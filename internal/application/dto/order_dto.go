package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest entrada para crear un pedido. Status, PaymentMethod y
// OrderDate son opcionales (pending / no / ahora por defecto).
type CreateOrderRequest struct {
	CustomerID    string          `json:"customer_id" validate:"required,uuid4"`
	ProductID     string          `json:"product_id" validate:"required,uuid4"`
	InventoryID   string          `json:"inventory_id" validate:"required,uuid4"`
	UnitID        string          `json:"unit_id" validate:"required,uuid4"`
	Quantity      decimal.Decimal `json:"quantity" validate:"required"`
	Status        string          `json:"status" validate:"omitempty"`
	PaymentMethod string          `json:"payment_method" validate:"omitempty"`
	OrderDate     *time.Time      `json:"order_date"`
}

// UpdateOrderRequest campos modificables de un pedido. Cambiar de bodega exige
// acceso a la bodega actual Y a la nueva.
type UpdateOrderRequest struct {
	CustomerID    *string          `json:"customer_id" validate:"omitempty,uuid4"`
	InventoryID   *string          `json:"inventory_id" validate:"omitempty,uuid4"`
	Status        *string          `json:"status"`
	PaymentMethod *string          `json:"payment_method"`
	OrderDate     *time.Time       `json:"order_date"`
	Quantity      *decimal.Decimal `json:"quantity"`
}

// UpdateOrderStatusRequest cambio de estado de un pedido.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// OrderResponse pedido persistido.
type OrderResponse struct {
	ID            string          `json:"id"`
	CustomerID    string          `json:"customer_id"`
	ProductID     string          `json:"product_id"`
	InventoryID   string          `json:"inventory_id"`
	UnitID        string          `json:"unit_id"`
	VerifiedBy    string          `json:"verified_by"`
	Quantity      decimal.Decimal `json:"quantity"`
	Status        string          `json:"status"`
	PaymentMethod string          `json:"payment_method"`
	OrderDate     time.Time       `json:"order_date"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// OrderCalculation desglose del cálculo del total (contrato de respuesta, no
// detalle interno: el caller debe poder explicar el precio).
type OrderCalculation struct {
	Rate        decimal.Decimal `json:"rate"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Formula     string          `json:"formula"` // ej. "10.00 × 30 = 300.00"
}

// OrderStockUpdate desglose del efecto sobre el stock.
type OrderStockUpdate struct {
	PreviousAvailable decimal.Decimal `json:"previous_available"`
	CurrentAvailable  decimal.Decimal `json:"current_available"`
	QuantityUsed      decimal.Decimal `json:"quantity_used"`
}

// OrderCreatedResponse pedido creado más ambos desgloses.
type OrderCreatedResponse struct {
	Order       OrderResponse    `json:"order"`
	Calculation OrderCalculation `json:"calculation"`
	StockUpdate OrderStockUpdate `json:"stock_update"`
}

// OrderListRequest filtros de listado de pedidos.
type OrderListRequest struct {
	PageRequest
	CustomerID string `query:"customer_id" validate:"omitempty,uuid4"`
	Status     string `query:"status"`
}
