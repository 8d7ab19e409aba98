package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ── Categorías ────────────────────────────────────────────────────────────────

type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=120"`
	Description string `json:"description" validate:"max=500"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=2,max=120"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ── Unidades ──────────────────────────────────────────────────────────────────

type CreateUnitRequest struct {
	Name string `json:"name" validate:"required,min=1,max=60"`
}

type UnitResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// ── Productos ─────────────────────────────────────────────────────────────────

type CreateProductRequest struct {
	CategoryID  string `json:"category_id" validate:"required,uuid4"`
	Name        string `json:"name" validate:"required,min=2,max=200"`
	Description string `json:"description" validate:"max=1000"`
}

type UpdateProductRequest struct {
	CategoryID  *string `json:"category_id" validate:"omitempty,uuid4"`
	Name        *string `json:"name" validate:"omitempty,min=2,max=200"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
}

type ProductResponse struct {
	ID          string    `json:"id"`
	CategoryID  string    `json:"category_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ── Bodegas ───────────────────────────────────────────────────────────────────

type CreateInventoryRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=200"`
	Location string `json:"location" validate:"max=300"`
}

type UpdateInventoryRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=2,max=200"`
	Location *string `json:"location" validate:"omitempty,max=300"`
}

type InventoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ── Clientes ──────────────────────────────────────────────────────────────────

type CreateCustomerRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=200"`
	Phone   string `json:"phone" validate:"max=30"`
	Email   string `json:"email" validate:"omitempty,email"`
	Address string `json:"address" validate:"max=300"`
}

type UpdateCustomerRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=2,max=200"`
	Phone   *string `json:"phone" validate:"omitempty,max=30"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Address *string `json:"address" validate:"omitempty,max=300"`
}

type CustomerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ── Tarifas producto-unidad ───────────────────────────────────────────────────

type CreateRateRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid4"`
	UnitID    string          `json:"unit_id" validate:"required,uuid4"`
	Rate      decimal.Decimal `json:"rate" validate:"required"`
}

type UpdateRateRequest struct {
	Rate decimal.Decimal `json:"rate" validate:"required"`
}

type RateResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	UnitID    string          `json:"unit_id"`
	Rate      decimal.Decimal `json:"rate"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ── Conductores y entregas ────────────────────────────────────────────────────

type CreateDriverRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=200"`
	Phone   string `json:"phone" validate:"max=30"`
	License string `json:"license" validate:"max=60"`
}

type DriverResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	License   string    `json:"license"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateDeliveryRequest struct {
	OrderID  string `json:"order_id" validate:"required,uuid4"`
	DriverID string `json:"driver_id" validate:"required,uuid4"`
	Notes    string `json:"notes" validate:"max=500"`
}

type UpdateDeliveryStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type DeliveryResponse struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"order_id"`
	DriverID  string    `json:"driver_id"`
	Status    string    `json:"status"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ── Manages (admin ↔ bodega) ──────────────────────────────────────────────────

type AssignInventoryRequest struct {
	UserID      string `json:"user_id" validate:"required,uuid4"`
	InventoryID string `json:"inventory_id" validate:"required,uuid4"`
}
