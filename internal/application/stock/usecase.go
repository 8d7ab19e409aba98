// Package stock implementa el libro de stock (movimientos append-only) y el
// motor de agregación que deriva disponibilidad por (producto, bodega, unidad).
package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Pedidos-api/internal/application/access"
	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// UseCase motor de agregación de stock. El stock disponible nunca se almacena:
// se recalcula en cada consulta sumando el libro, así siempre es consistente
// con los movimientos al momento de la lectura.
type UseCase struct {
	resolver    *access.Resolver
	movements   repository.StockMovementRepository
	products    repository.ProductRepository
	inventories repository.InventoryRepository
	units       repository.UnitRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	resolver *access.Resolver,
	movements repository.StockMovementRepository,
	products repository.ProductRepository,
	inventories repository.InventoryRepository,
	units repository.UnitRepository,
) *UseCase {
	return &UseCase{
		resolver:    resolver,
		movements:   movements,
		products:    products,
		inventories: inventories,
		units:       units,
	}
}

// Aggregate agrupa el libro por (producto, bodega, unidad) dentro del scope del
// usuario. La intersección con el scope ocurre ANTES de consultar: un scope
// vacío devuelve lista vacía sin tocar la BD, y un filtro explícito por una
// bodega fuera del scope se rechaza con Forbidden en vez de filtrar datos ajenos.
func (uc *UseCase) Aggregate(ctx context.Context, userID, role string, q dto.StockQueryRequest) ([]dto.AggregatedStockDTO, error) {
	scope, err := uc.resolver.Resolve(userID, role)
	if err != nil {
		return nil, err
	}
	if scope.Empty() {
		return []dto.AggregatedStockDTO{}, nil
	}
	if q.InventoryID != "" && !scope.Allows(q.InventoryID) {
		return nil, fmt.Errorf("no administras esta bodega: %w", domain.ErrForbidden)
	}

	filter := repository.StockFilter{
		ProductID:   q.ProductID,
		InventoryID: q.InventoryID,
	}
	if !scope.Unrestricted {
		filter.InventoryIDs = scope.InventoryIDs
	}
	rows, err := uc.movements.Aggregate(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AggregatedStockDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, toAggregatedDTO(r))
	}
	return out, nil
}

// Availability deriva la disponibilidad de una clave concreta, recortada a
// mínimo 0. RecordCount == 0 significa "nunca abastecido", condición distinta
// de "disponible 0 con registros".
func (uc *UseCase) Availability(ctx context.Context, userID, role, productID, inventoryID, unitID string) (*dto.AvailabilityDTO, error) {
	ok, err := uc.resolver.CheckAccess(userID, role, inventoryID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("no administras esta bodega: %w", domain.ErrForbidden)
	}
	av, err := uc.movements.Availability(ctx, productID, inventoryID, unitID)
	if err != nil {
		return nil, err
	}
	return &dto.AvailabilityDTO{
		ProductID:   productID,
		InventoryID: inventoryID,
		UnitID:      unitID,
		Unit:        av.UnitName,
		Available:   ClampAvailable(av.TotalIn.Sub(av.TotalOut)),
		TotalIn:     av.TotalIn,
		TotalOut:    av.TotalOut,
		RecordCount: av.RecordCount,
	}, nil
}

// LowStock devuelve las filas agregadas con disponible estrictamente menor al
// umbral, ascendente por disponible y luego por nombre de unidad (orden estable).
func (uc *UseCase) LowStock(ctx context.Context, userID, role string, threshold decimal.Decimal) ([]dto.AggregatedStockDTO, error) {
	scope, err := uc.resolver.Resolve(userID, role)
	if err != nil {
		return nil, err
	}
	if scope.Empty() {
		return []dto.AggregatedStockDTO{}, nil
	}
	var ids []string
	if !scope.Unrestricted {
		ids = scope.InventoryIDs
	}
	rows, err := uc.movements.LowStock(ctx, threshold, ids)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AggregatedStockDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, toAggregatedDTO(r))
	}
	return out, nil
}

// ListMovements lista el libro de una bodega en orden cronológico inverso,
// con rango de fechas opcional. Requiere acceso a la bodega.
func (uc *UseCase) ListMovements(ctx context.Context, userID, role, inventoryID string, from, to *time.Time, page dto.PageRequest) ([]dto.MovementResponse, error) {
	ok, err := uc.resolver.CheckAccess(userID, role, inventoryID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("no administras esta bodega: %w", domain.ErrForbidden)
	}
	list, err := uc.movements.ListByInventory(inventoryID, from, to, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.MovementResponse{
			ID:          m.ID,
			ProductID:   m.ProductID,
			InventoryID: m.InventoryID,
			UnitID:      m.UnitID,
			Quantity:    m.Quantity,
			Direction:   m.Direction,
			Method:      m.Method,
			CreatedAt:   m.CreatedAt,
		})
	}
	return out, nil
}

// ClampAvailable recorta la disponibilidad cruda a mínimo 0 para las rutas que
// validan pedidos. La agregación cruda sí puede ser negativa.
func ClampAvailable(raw decimal.Decimal) decimal.Decimal {
	if raw.IsNegative() {
		return decimal.Zero
	}
	return raw
}

func toAggregatedDTO(r repository.AggregatedStockRow) dto.AggregatedStockDTO {
	return dto.AggregatedStockDTO{
		ProductID:         r.ProductID,
		ProductName:       r.ProductName,
		InventoryID:       r.InventoryID,
		InventoryName:     r.InventoryName,
		UnitID:            r.UnitID,
		UnitName:          r.UnitName,
		TotalIncoming:     r.TotalIn,
		TotalOutgoing:     r.TotalOut,
		AvailableQuantity: r.Available,
	}
}
