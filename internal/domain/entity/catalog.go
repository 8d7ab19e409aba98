package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category agrupa productos.
type Category struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Unit es la unidad de medida de un producto (ej. kg, bori). Cada unidad lleva
// su propio libro de stock; no hay conversión entre unidades.
type Unit struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Product representa un producto del catálogo.
type Product struct {
	ID          string
	CategoryID  string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Inventory representa una bodega física donde se almacena stock.
type Inventory struct {
	ID        string
	Name      string
	Location  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProductUnitRate es la tarifa por unidad de un producto para una unidad de medida
// concreta; única por (producto, unidad). Debe existir antes de poder crear un
// pedido de esa combinación.
type ProductUnitRate struct {
	ID        string
	ProductID string
	UnitID    string
	Rate      decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}
