package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Pedidos-api/internal/application/access"
	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

// ManageOrderUseCase listados y mutaciones de pedidos existentes. Ninguna de
// estas operaciones toca el libro de stock: cancelar o borrar un pedido no
// repone disponibilidad (la corrección es un movimiento "adjustment" manual).
type ManageOrderUseCase struct {
	resolver *access.Resolver
	orders   repository.OrderRepository
	rates    repository.RateRepository
}

// NewManageOrderUseCase construye el caso de uso.
func NewManageOrderUseCase(resolver *access.Resolver, orders repository.OrderRepository, rates repository.RateRepository) *ManageOrderUseCase {
	return &ManageOrderUseCase{resolver: resolver, orders: orders, rates: rates}
}

// List devuelve los pedidos dentro del scope del usuario. Un admin sin bodegas
// asignadas recibe éxito con lista vacía, no un 403.
func (uc *ManageOrderUseCase) List(ctx context.Context, userID, role string, in dto.OrderListRequest) ([]dto.OrderResponse, error) {
	scope, err := uc.resolver.Resolve(userID, role)
	if err != nil {
		return nil, err
	}
	if scope.Empty() {
		return []dto.OrderResponse{}, nil
	}
	filter := repository.OrderFilter{
		CustomerID: in.CustomerID,
		Status:     in.Status,
		Limit:      in.Limit,
		Offset:     in.Offset,
	}
	if !scope.Unrestricted {
		filter.InventoryIDs = scope.InventoryIDs
	}
	list, err := uc.orders.List(filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, toOrderResponse(o))
	}
	return out, nil
}

// Get obtiene un pedido, verificando acceso a su bodega.
func (uc *ManageOrderUseCase) Get(ctx context.Context, userID, role, orderID string) (*dto.OrderResponse, error) {
	order, err := uc.getAccessible(userID, role, orderID)
	if err != nil {
		return nil, err
	}
	resp := toOrderResponse(order)
	return &resp, nil
}

// Update modifica un pedido. Se re-verifica acceso contra la bodega ACTUAL del
// pedido y, si el cambio mueve el pedido de bodega, también contra la nueva.
func (uc *ManageOrderUseCase) Update(ctx context.Context, userID, role, orderID string, in dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	order, err := uc.getAccessible(userID, role, orderID)
	if err != nil {
		return nil, err
	}
	if in.InventoryID != nil && *in.InventoryID != order.InventoryID {
		ok, err := uc.resolver.CheckAccess(userID, role, *in.InventoryID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("no administras esta bodega: %w", domain.ErrForbidden)
		}
		order.InventoryID = *in.InventoryID
	}
	if in.Status != nil {
		if !entity.ValidOrderStatus(*in.Status) {
			return nil, domain.ErrInvalidInput
		}
		order.Status = *in.Status
	}
	if in.PaymentMethod != nil {
		if !entity.ValidPaymentMethod(*in.PaymentMethod) {
			return nil, domain.ErrInvalidInput
		}
		order.PaymentMethod = *in.PaymentMethod
	}
	if in.CustomerID != nil {
		order.CustomerID = *in.CustomerID
	}
	if in.OrderDate != nil {
		order.OrderDate = *in.OrderDate
	}
	if in.Quantity != nil {
		if !in.Quantity.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
		order.Quantity = *in.Quantity
		// totalAmount siempre es tarifa × cantidad; cambiar la cantidad
		// obliga a re-derivarlo.
		rate, err := uc.rates.GetByProductAndUnit(order.ProductID, order.UnitID)
		if err != nil {
			return nil, err
		}
		if rate == nil {
			return nil, domain.NewEntityNotFound("rate")
		}
		order.TotalAmount = rate.Rate.Mul(order.Quantity).Round(2)
	}
	order.UpdatedAt = time.Now()
	if err := uc.orders.Update(order); err != nil {
		return nil, err
	}
	resp := toOrderResponse(order)
	return &resp, nil
}

// UpdateStatus cambia el estado del pedido. Cualquier estado puede pasar a
// cualquier otro; no hay estados terminales.
func (uc *ManageOrderUseCase) UpdateStatus(ctx context.Context, userID, role, orderID, status string) (*dto.OrderResponse, error) {
	if !entity.ValidOrderStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	order, err := uc.getAccessible(userID, role, orderID)
	if err != nil {
		return nil, err
	}
	if err := uc.orders.UpdateStatus(orderID, status); err != nil {
		return nil, err
	}
	order.Status = status
	order.UpdatedAt = time.Now()
	resp := toOrderResponse(order)
	return &resp, nil
}

// Delete elimina un pedido; solo superadmin. No revierte el movimiento "out".
func (uc *ManageOrderUseCase) Delete(ctx context.Context, userID, role, orderID string) error {
	if role != entity.RoleSuperAdmin {
		return domain.ErrForbidden
	}
	order, err := uc.orders.GetByID(orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.NewEntityNotFound("order")
	}
	return uc.orders.Delete(orderID)
}

// getAccessible carga el pedido y verifica acceso del usuario a su bodega actual.
func (uc *ManageOrderUseCase) getAccessible(userID, role, orderID string) (*entity.Order, error) {
	if role != entity.RoleAdmin && role != entity.RoleSuperAdmin {
		return nil, domain.ErrForbidden
	}
	order, err := uc.orders.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.NewEntityNotFound("order")
	}
	ok, err := uc.resolver.CheckAccess(userID, role, order.InventoryID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("no administras esta bodega: %w", domain.ErrForbidden)
	}
	return order, nil
}
