// Package access resuelve el alcance de bodegas de un usuario según su rol.
// Es el único punto del sistema que interpreta la relación Manages; todos los
// listados y escrituras de stock/pedidos pasan por aquí.
package access

import (
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

// Scope es el conjunto de bodegas sobre las que un usuario puede operar:
// sin restricción (superadmin), un conjunto explícito (admin) o vacío (el resto).
type Scope struct {
	Unrestricted bool
	InventoryIDs []string
}

// Empty indica que el usuario no tiene acceso a ninguna bodega. Para lecturas
// esto significa "cero resultados", no un error 403.
func (s Scope) Empty() bool {
	return !s.Unrestricted && len(s.InventoryIDs) == 0
}

// Allows indica si el scope cubre la bodega dada.
func (s Scope) Allows(inventoryID string) bool {
	if s.Unrestricted {
		return true
	}
	for _, id := range s.InventoryIDs {
		if id == inventoryID {
			return true
		}
	}
	return false
}

// Resolver calcula el Scope a partir del rol y la relación Manages.
// Función total: un rol desconocido degrada a scope vacío, nunca a error.
type Resolver struct {
	users repository.UserRepository
}

// NewResolver construye el resolutor.
func NewResolver(users repository.UserRepository) *Resolver {
	return &Resolver{users: users}
}

// Resolve devuelve el scope del usuario: superadmin sin restricción; admin el
// conjunto de bodegas que administra (posiblemente vacío); cualquier otro rol, vacío.
func (r *Resolver) Resolve(userID, role string) (Scope, error) {
	switch role {
	case entity.RoleSuperAdmin:
		return Scope{Unrestricted: true}, nil
	case entity.RoleAdmin:
		ids, err := r.users.ManagedInventoryIDs(userID)
		if err != nil {
			return Scope{}, err
		}
		return Scope{InventoryIDs: ids}, nil
	default:
		return Scope{}, nil
	}
}

// CheckAccess indica si el usuario puede operar sobre una bodega concreta.
func (r *Resolver) CheckAccess(userID, role, inventoryID string) (bool, error) {
	scope, err := r.Resolve(userID, role)
	if err != nil {
		return false, err
	}
	return scope.Allows(inventoryID), nil
}
