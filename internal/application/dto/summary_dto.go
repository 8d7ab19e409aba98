package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SummaryRequest parámetros del resumen por periodo.
type SummaryRequest struct {
	Period      string `query:"period" validate:"required"`
	InventoryID string `query:"inventory_id" validate:"omitempty,uuid4"`
}

// DateRange rango [Start, End] del periodo resuelto.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// ProductSalesDTO ventas de un producto+unidad dentro del periodo (cancelados excluidos).
type ProductSalesDTO struct {
	ProductID     string          `json:"product_id"`
	ProductName   string          `json:"product_name"`
	UnitID        string          `json:"unit_id"`
	UnitName      string          `json:"unit_name"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	OrderCount    int64           `json:"order_count"`
}

// StockSnapshotDTO foto actual (sin filtro de fechas) del stock de un producto+unidad.
type StockSnapshotDTO struct {
	ProductID         string          `json:"product_id"`
	ProductName       string          `json:"product_name"`
	UnitID            string          `json:"unit_id"`
	UnitName          string          `json:"unit_name"`
	AvailableQuantity decimal.Decimal `json:"available_quantity"`
}

// InventorySummaryDTO resumen de una bodega: ventas del periodo + stock actual.
type InventorySummaryDTO struct {
	InventoryID   string             `json:"inventory_id"`
	InventoryName string             `json:"inventory_name"`
	Sales         []ProductSalesDTO  `json:"sales"`
	TotalRevenue  decimal.Decimal    `json:"total_revenue"`
	TotalOrders   int64              `json:"total_orders"`
	Stock         []StockSnapshotDTO `json:"stock"`
}

// SummaryResponse resumen completo del periodo.
type SummaryResponse struct {
	Period      string                `json:"period"`
	Range       DateRange             `json:"range"`
	Inventories []InventorySummaryDTO `json:"inventories"`
}
