package repository

import "github.com/jhoicas/Pedidos-api/internal/domain/entity"

// CategoryRepository define el puerto de persistencia para categorías.
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	List(limit, offset int) ([]*entity.Category, error)
	Update(category *entity.Category) error
	Delete(id string) error
}

// UnitRepository define el puerto de persistencia para unidades de medida.
type UnitRepository interface {
	Create(unit *entity.Unit) error
	GetByID(id string) (*entity.Unit, error)
	List(limit, offset int) ([]*entity.Unit, error)
	Update(unit *entity.Unit) error
	Delete(id string) error
}

// ProductRepository define el puerto de persistencia para productos.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	List(limit, offset int) ([]*entity.Product, error)
	Update(product *entity.Product) error
	Delete(id string) error
}

// InventoryRepository define el puerto de persistencia para bodegas.
type InventoryRepository interface {
	Create(inventory *entity.Inventory) error
	GetByID(id string) (*entity.Inventory, error)
	List(limit, offset int) ([]*entity.Inventory, error)
	ListAll() ([]*entity.Inventory, error)
	Update(inventory *entity.Inventory) error
	Delete(id string) error
}

// CustomerRepository define el puerto de persistencia para clientes.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	List(limit, offset int) ([]*entity.Customer, error)
	Update(customer *entity.Customer) error
	Delete(id string) error
}

// RateRepository define el puerto de persistencia para tarifas producto-unidad.
// La combinación (producto, unidad) es única; duplicado -> ErrDuplicate.
type RateRepository interface {
	Create(rate *entity.ProductUnitRate) error
	GetByID(id string) (*entity.ProductUnitRate, error)
	GetByProductAndUnit(productID, unitID string) (*entity.ProductUnitRate, error)
	List(limit, offset int) ([]*entity.ProductUnitRate, error)
	Update(rate *entity.ProductUnitRate) error
	Delete(id string) error
}

// DriverRepository define el puerto de persistencia para conductores.
type DriverRepository interface {
	Create(driver *entity.Driver) error
	GetByID(id string) (*entity.Driver, error)
	List(limit, offset int) ([]*entity.Driver, error)
	Update(driver *entity.Driver) error
	Delete(id string) error
}

// DeliveryRepository define el puerto de persistencia para entregas.
type DeliveryRepository interface {
	Create(delivery *entity.Delivery) error
	GetByID(id string) (*entity.Delivery, error)
	List(limit, offset int) ([]*entity.Delivery, error)
	UpdateStatus(id, status string) error
	Delete(id string) error
}
