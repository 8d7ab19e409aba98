package usecase

import (
	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

// ManagesUseCase administra la relación admin ↔ bodega, la base del scope de
// acceso. Solo admins pueden recibir bodegas; el par duplicado es Conflict.
type ManagesUseCase struct {
	users       repository.UserRepository
	inventories repository.InventoryRepository
}

// NewManagesUseCase construye el caso de uso.
func NewManagesUseCase(users repository.UserRepository, inventories repository.InventoryRepository) *ManagesUseCase {
	return &ManagesUseCase{users: users, inventories: inventories}
}

// Assign asigna una bodega a un usuario admin.
func (uc *ManagesUseCase) Assign(in dto.AssignInventoryRequest) error {
	user, err := uc.users.GetByID(in.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if user.Role != entity.RoleAdmin {
		return domain.ErrInvalidInput
	}
	inv, err := uc.inventories.GetByID(in.InventoryID)
	if err != nil {
		return err
	}
	if inv == nil {
		return domain.NewEntityNotFound("inventory")
	}
	return uc.users.AssignInventory(in.UserID, in.InventoryID)
}

// Unassign retira una bodega de un usuario.
func (uc *ManagesUseCase) Unassign(in dto.AssignInventoryRequest) error {
	return uc.users.UnassignInventory(in.UserID, in.InventoryID)
}

// ManagedInventories lista las bodegas asignadas a un usuario.
func (uc *ManagesUseCase) ManagedInventories(userID string) ([]string, error) {
	return uc.users.ManagedInventoryIDs(userID)
}
