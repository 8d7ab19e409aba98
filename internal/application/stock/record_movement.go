package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

// RegisterMovement añade una entrada al libro de stock. El libro es append-only:
// no hay ruta de update ni delete; corregir es insertar un movimiento compensatorio.
func (uc *UseCase) RegisterMovement(ctx context.Context, userID, role string, in dto.RegisterMovementRequest) (*dto.MovementResponse, error) {
	if role != entity.RoleAdmin && role != entity.RoleSuperAdmin {
		return nil, domain.ErrForbidden
	}
	if !entity.ValidDirection(in.Direction) || !entity.ValidMethod(in.Method) {
		return nil, domain.ErrInvalidInput
	}
	if !in.Quantity.IsPositive() {
		return nil, domain.ErrInvalidInput
	}

	product, err := uc.products.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NewEntityNotFound("product")
	}
	inventory, err := uc.inventories.GetByID(in.InventoryID)
	if err != nil {
		return nil, err
	}
	if inventory == nil {
		return nil, domain.NewEntityNotFound("inventory")
	}
	unit, err := uc.units.GetByID(in.UnitID)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, domain.NewEntityNotFound("unit")
	}

	ok, err := uc.resolver.CheckAccess(userID, role, in.InventoryID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("no administras esta bodega: %w", domain.ErrForbidden)
	}

	mov := &entity.StockMovement{
		ProductID:   in.ProductID,
		InventoryID: in.InventoryID,
		UnitID:      in.UnitID,
		Quantity:    in.Quantity,
		Direction:   in.Direction,
		Method:      in.Method,
		CreatedAt:   time.Now(),
	}
	if err := uc.movements.Create(mov); err != nil {
		return nil, err
	}
	return &dto.MovementResponse{
		ID:          mov.ID,
		ProductID:   mov.ProductID,
		InventoryID: mov.InventoryID,
		UnitID:      mov.UnitID,
		Quantity:    mov.Quantity,
		Direction:   mov.Direction,
		Method:      mov.Method,
		CreatedAt:   mov.CreatedAt,
	}, nil
}
