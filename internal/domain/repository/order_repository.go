package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// OrderFilter acota los listados de pedidos. InventoryIDs nil = sin restricción.
type OrderFilter struct {
	InventoryIDs []string
	CustomerID   string
	Status       string
	Limit        int
	Offset       int
}

// ProductSales agrupa ventas por producto y unidad dentro de un rango de fechas
// (pedidos cancelados excluidos).
type ProductSales struct {
	ProductID     string
	ProductName   string
	UnitID        string
	UnitName      string
	TotalQuantity decimal.Decimal
	TotalRevenue  decimal.Decimal
	OrderCount    int64
}

// OrderRepository define el puerto de persistencia para pedidos.
type OrderRepository interface {
	Create(order *entity.Order) error
	GetByID(id string) (*entity.Order, error)
	List(filter OrderFilter) ([]*entity.Order, error)
	Update(order *entity.Order) error
	UpdateStatus(id, status string) error
	Delete(id string) error

	// SalesByProduct suma cantidad, ingresos y número de pedidos no cancelados
	// de una bodega, agrupado por producto+unidad, dentro del rango dado.
	SalesByProduct(ctx context.Context, inventoryID string, from, to time.Time) ([]ProductSales, error)
}
