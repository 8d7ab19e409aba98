// Package orders implementa la transacción de despacho: validar un pedido
// contra la disponibilidad derivada del libro y persistir atómicamente el
// pedido junto con su movimiento "out" compensatorio.
package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Pedidos-api/internal/application/access"
	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/application/stock"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

// CreateOrderUseCase crea pedidos. Las validaciones corren en orden fijo antes
// de abrir la transacción (la primera que falla gana, sin efectos parciales);
// dentro de la transacción se toma el lock de la clave y se re-deriva la
// disponibilidad antes de escribir.
type CreateOrderUseCase struct {
	txRunner    TxRunner
	resolver    *access.Resolver
	movements   repository.StockMovementRepository
	customers   repository.CustomerRepository
	products    repository.ProductRepository
	inventories repository.InventoryRepository
	units       repository.UnitRepository
	rates       repository.RateRepository
}

// NewCreateOrderUseCase construye el caso de uso.
func NewCreateOrderUseCase(
	txRunner TxRunner,
	resolver *access.Resolver,
	movements repository.StockMovementRepository,
	customers repository.CustomerRepository,
	products repository.ProductRepository,
	inventories repository.InventoryRepository,
	units repository.UnitRepository,
	rates repository.RateRepository,
) *CreateOrderUseCase {
	return &CreateOrderUseCase{
		txRunner:    txRunner,
		resolver:    resolver,
		movements:   movements,
		customers:   customers,
		products:    products,
		inventories: inventories,
		units:       units,
		rates:       rates,
	}
}

// CreateOrder valida y persiste un pedido más su movimiento "out", todo o nada.
// El pedido nunca existe sin el movimiento ni el movimiento sin el pedido.
func (uc *CreateOrderUseCase) CreateOrder(ctx context.Context, userID, role string, in dto.CreateOrderRequest) (*dto.OrderCreatedResponse, error) {
	// 1. Rol
	if role != entity.RoleAdmin && role != entity.RoleSuperAdmin {
		return nil, domain.ErrForbidden
	}
	// 2. Acceso a la bodega
	ok, err := uc.resolver.CheckAccess(userID, role, in.InventoryID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("no administras esta bodega: %w", domain.ErrForbidden)
	}
	// 3. Campos obligatorios y cantidad positiva
	if in.CustomerID == "" || in.ProductID == "" || in.InventoryID == "" || in.UnitID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !in.Quantity.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	// 4. y 5. Enums opcionales
	status := in.Status
	if status == "" {
		status = entity.OrderPending
	} else if !entity.ValidOrderStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	payment := in.PaymentMethod
	if payment == "" {
		payment = entity.PaymentNone
	} else if !entity.ValidPaymentMethod(payment) {
		return nil, domain.ErrInvalidInput
	}
	// 6. Existencia de las entidades referenciadas
	customer, err := uc.customers.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.NewEntityNotFound("customer")
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
	// 7. Tarifa de precio para (producto, unidad)
	rate, err := uc.rates.GetByProductAndUnit(in.ProductID, in.UnitID)
	if err != nil {
		return nil, err
	}
	if rate == nil {
		return nil, domain.NewEntityNotFound("rate")
	}
	// 8. y 9. Disponibilidad (chequeo rápido fuera de la tx para un error preciso)
	av, err := uc.movements.Availability(ctx, in.ProductID, in.InventoryID, in.UnitID)
	if err != nil {
		return nil, err
	}
	if av.RecordCount == 0 {
		return nil, domain.NewEntityNotFound("stock")
	}
	previousAvailable := stock.ClampAvailable(av.TotalIn.Sub(av.TotalOut))
	if previousAvailable.LessThan(in.Quantity) {
		return nil, domain.NewStockShortage(previousAvailable, in.Quantity, unit.Name)
	}

	now := time.Now()
	orderDate := now
	if in.OrderDate != nil {
		orderDate = *in.OrderDate
	}
	totalAmount := rate.Rate.Mul(in.Quantity).Round(2)

	order := &entity.Order{
		CustomerID:    in.CustomerID,
		ProductID:     in.ProductID,
		InventoryID:   in.InventoryID,
		UnitID:        in.UnitID,
		VerifiedBy:    userID,
		Quantity:      in.Quantity,
		Status:        status,
		PaymentMethod: payment,
		OrderDate:     orderDate,
		TotalAmount:   totalAmount,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = uc.txRunner.Run(ctx, func(
		orderRepo repository.OrderRepository,
		movRepo repository.StockMovementRepository,
		locker KeyLocker,
	) error {
		// Serializa los pedidos que compiten por esta clave dentro de la tx.
		if err := locker.LockStockKey(ctx, in.ProductID, in.InventoryID, in.UnitID); err != nil {
			return err
		}
		// Re-derivar bajo el lock: otro pedido pudo consumir stock entre el
		// chequeo rápido y aquí.
		locked, err := movRepo.Availability(ctx, in.ProductID, in.InventoryID, in.UnitID)
		if err != nil {
			return err
		}
		lockedAvailable := stock.ClampAvailable(locked.TotalIn.Sub(locked.TotalOut))
		if lockedAvailable.LessThan(in.Quantity) {
			return domain.NewStockShortage(lockedAvailable, in.Quantity, unit.Name)
		}
		previousAvailable = lockedAvailable

		if err := orderRepo.Create(order); err != nil {
			return err
		}
		mov := &entity.StockMovement{
			ProductID:   in.ProductID,
			InventoryID: in.InventoryID,
			UnitID:      in.UnitID,
			Quantity:    in.Quantity,
			Direction:   entity.DirectionOut,
			Method:      entity.MethodOrder,
			CreatedAt:   now,
		}
		return movRepo.Create(mov)
	})
	if err != nil {
		return nil, err
	}

	return &dto.OrderCreatedResponse{
		Order: toOrderResponse(order),
		Calculation: dto.OrderCalculation{
			Rate:        rate.Rate,
			Quantity:    in.Quantity,
			Unit:        unit.Name,
			TotalAmount: totalAmount,
			Formula:     fmt.Sprintf("%s × %s = %s", rate.Rate.String(), in.Quantity.String(), totalAmount.String()),
		},
		StockUpdate: dto.OrderStockUpdate{
			PreviousAvailable: previousAvailable,
			CurrentAvailable:  previousAvailable.Sub(in.Quantity),
			QuantityUsed:      in.Quantity,
		},
	}, nil
}

func toOrderResponse(o *entity.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:            o.ID,
		CustomerID:    o.CustomerID,
		ProductID:     o.ProductID,
		InventoryID:   o.InventoryID,
		UnitID:        o.UnitID,
		VerifiedBy:    o.VerifiedBy,
		Quantity:      o.Quantity,
		Status:        o.Status,
		PaymentMethod: o.PaymentMethod,
		OrderDate:     o.OrderDate,
		TotalAmount:   o.TotalAmount,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}
