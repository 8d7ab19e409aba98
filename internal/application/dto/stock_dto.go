package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest entrada para registrar un movimiento de stock.
type RegisterMovementRequest struct {
	ProductID   string          `json:"product_id" validate:"required,uuid4"`
	InventoryID string          `json:"inventory_id" validate:"required,uuid4"`
	UnitID      string          `json:"unit_id" validate:"required,uuid4"`
	Quantity    decimal.Decimal `json:"quantity" validate:"required"`
	Direction   string          `json:"direction" validate:"required"`
	Method      string          `json:"method" validate:"required"`
}

// MovementResponse movimiento del libro de stock.
type MovementResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	InventoryID string          `json:"inventory_id"`
	UnitID      string          `json:"unit_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	Direction   string          `json:"direction"`
	Method      string          `json:"method"`
	CreatedAt   time.Time       `json:"created_at"`
}

// StockQueryRequest filtros opcionales para la agregación de stock.
type StockQueryRequest struct {
	ProductID   string `query:"product_id" validate:"omitempty,uuid4"`
	InventoryID string `query:"inventory_id" validate:"omitempty,uuid4"`
}

// AggregatedStockDTO fila agregada por (producto, bodega, unidad).
type AggregatedStockDTO struct {
	ProductID         string          `json:"product_id"`
	ProductName       string          `json:"product_name"`
	InventoryID       string          `json:"inventory_id"`
	InventoryName     string          `json:"inventory_name"`
	UnitID            string          `json:"unit_id"`
	UnitName          string          `json:"unit_name"`
	TotalIncoming     decimal.Decimal `json:"total_incoming"`
	TotalOutgoing     decimal.Decimal `json:"total_outgoing"`
	AvailableQuantity decimal.Decimal `json:"available_quantity"`
}

// AvailabilityDTO disponibilidad de una clave concreta. Available viene
// recortado a mínimo 0; RecordCount distingue "nunca abastecido" (0) de
// "abastecido y consumido" (>0 con Available 0).
type AvailabilityDTO struct {
	ProductID   string          `json:"product_id"`
	InventoryID string          `json:"inventory_id"`
	UnitID      string          `json:"unit_id"`
	Unit        string          `json:"unit"`
	Available   decimal.Decimal `json:"available"`
	TotalIn     decimal.Decimal `json:"total_in"`
	TotalOut    decimal.Decimal `json:"total_out"`
	RecordCount int64           `json:"record_count"`
}

// CreateTransferRequest entrada para trasladar stock entre bodegas.
type CreateTransferRequest struct {
	ProductID         string          `json:"product_id" validate:"required,uuid4"`
	UnitID            string          `json:"unit_id" validate:"required,uuid4"`
	SourceInventoryID string          `json:"source_inventory_id" validate:"required,uuid4"`
	TargetInventoryID string          `json:"target_inventory_id" validate:"required,uuid4"`
	Quantity          decimal.Decimal `json:"quantity" validate:"required"`
}

// UpdateTransferStatusRequest cambia el estado de un traslado.
type UpdateTransferStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// TransferResponse traslado entre bodegas.
type TransferResponse struct {
	ID                string          `json:"id"`
	MovementID        string          `json:"movement_id"`
	ProductID         string          `json:"product_id"`
	UnitID            string          `json:"unit_id"`
	SourceInventoryID string          `json:"source_inventory_id"`
	TargetInventoryID string          `json:"target_inventory_id"`
	Quantity          decimal.Decimal `json:"quantity"`
	Status            string          `json:"status"`
	TransferredBy     string          `json:"transferred_by"`
	ReceivedBy        *string         `json:"received_by,omitempty"`
	CompletedAt       *time.Time      `json:"completed_at,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
}
