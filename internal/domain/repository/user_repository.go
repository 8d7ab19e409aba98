package repository

import "github.com/jhoicas/Pedidos-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para usuarios y la relación
// Manages (asignación admin ↔ bodegas), base del resolutor de scope.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	List(limit, offset int) ([]*entity.User, error)
	Update(user *entity.User) error
	Delete(id string) error

	// ManagedInventoryIDs devuelve las bodegas asignadas al usuario (puede ser vacío).
	ManagedInventoryIDs(userID string) ([]string, error)
	// AssignInventory asigna una bodega a un admin; par duplicado -> ErrDuplicate.
	AssignInventory(userID, inventoryID string) error
	UnassignInventory(userID, inventoryID string) error
}
