package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// StockFilter acota las agregaciones del libro de stock.
// InventoryIDs nil = sin restricción de scope; el scope vacío se corta en el
// caso de uso ANTES de llegar aquí (nunca se consulta con lista vacía).
type StockFilter struct {
	ProductID    string
	InventoryID  string
	InventoryIDs []string
}

// AggregatedStockRow es el resultado derivado por clave (producto, bodega, unidad).
// Available = TotalIn - TotalOut, sin clamp: puede ser negativo a este nivel.
type AggregatedStockRow struct {
	ProductID     string
	InventoryID   string
	UnitID        string
	ProductName   string
	InventoryName string
	UnitName      string
	TotalIn       decimal.Decimal
	TotalOut      decimal.Decimal
	Available     decimal.Decimal
}

// Availability son las sumas crudas de una sola clave, más cuántas filas del
// libro existen. RecordCount == 0 distingue "nunca se abasteció" de
// "se abasteció y se consumió todo".
type Availability struct {
	TotalIn     decimal.Decimal
	TotalOut    decimal.Decimal
	RecordCount int64
	UnitName    string
}

// StockMovementRepository define el puerto de persistencia del libro de stock.
// El libro es append-only: no existe Update ni Delete. La expresión SQL concreta
// de las sumas condicionales es un detalle del adaptador.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	ListByInventory(inventoryID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)

	Aggregate(ctx context.Context, filter StockFilter) ([]AggregatedStockRow, error)
	Availability(ctx context.Context, productID, inventoryID, unitID string) (*Availability, error)
	LowStock(ctx context.Context, threshold decimal.Decimal, inventoryIDs []string) ([]AggregatedStockRow, error)
}
