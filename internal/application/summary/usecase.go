// Package summary genera el resumen por periodo: ventas por bodega dentro de la
// ventana de fechas más la foto actual de stock, todo dentro del scope del usuario.
package summary

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Pedidos-api/internal/application/access"
	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// Periodos soportados.
const (
	PeriodDaily   = "daily"
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
	PeriodYearly  = "yearly"
	PeriodAll     = "all"
)

// UseCase reportero de resúmenes.
type UseCase struct {
	resolver    *access.Resolver
	orders      repository.OrderRepository
	movements   repository.StockMovementRepository
	inventories repository.InventoryRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	resolver *access.Resolver,
	orders repository.OrderRepository,
	movements repository.StockMovementRepository,
	inventories repository.InventoryRepository,
) *UseCase {
	return &UseCase{resolver: resolver, orders: orders, movements: movements, inventories: inventories}
}

// Summarize calcula el resumen del periodo para las bodegas accesibles.
// Un scope vacío devuelve éxito con lista vacía de bodegas, nunca error.
func (uc *UseCase) Summarize(ctx context.Context, userID, role, period, explicitInventoryID string) (*dto.SummaryResponse, error) {
	start, end, err := PeriodRange(period, time.Now())
	if err != nil {
		return nil, err
	}
	scope, err := uc.resolver.Resolve(userID, role)
	if err != nil {
		return nil, err
	}

	var targets []*entity.Inventory
	switch {
	case explicitInventoryID != "":
		if !scope.Allows(explicitInventoryID) {
			return nil, fmt.Errorf("no administras esta bodega: %w", domain.ErrForbidden)
		}
		inv, err := uc.inventories.GetByID(explicitInventoryID)
		if err != nil {
			return nil, err
		}
		if inv == nil {
			return nil, domain.NewEntityNotFound("inventory")
		}
		targets = []*entity.Inventory{inv}
	case scope.Empty():
		targets = nil
	case scope.Unrestricted:
		targets, err = uc.inventories.ListAll()
		if err != nil {
			return nil, err
		}
	default:
		for _, id := range scope.InventoryIDs {
			inv, err := uc.inventories.GetByID(id)
			if err != nil {
				return nil, err
			}
			if inv != nil {
				targets = append(targets, inv)
			}
		}
	}

	result := &dto.SummaryResponse{
		Period:      period,
		Range:       dto.DateRange{Start: start, End: end},
		Inventories: make([]dto.InventorySummaryDTO, 0, len(targets)),
	}
	for _, inv := range targets {
		summary, err := uc.summarizeInventory(ctx, inv, start, end)
		if err != nil {
			return nil, err
		}
		result.Inventories = append(result.Inventories, *summary)
	}
	return result, nil
}

// summarizeInventory lanza en paralelo la consulta de ventas del periodo y la
// foto de stock actual (sin filtro de fechas) de una bodega.
func (uc *UseCase) summarizeInventory(ctx context.Context, inv *entity.Inventory, start, end time.Time) (*dto.InventorySummaryDTO, error) {
	type salesResult struct {
		rows []repository.ProductSales
		err  error
	}
	type snapshotResult struct {
		rows []repository.AggregatedStockRow
		err  error
	}
	salesCh := make(chan salesResult, 1)
	snapCh := make(chan snapshotResult, 1)

	go func() {
		rows, err := uc.orders.SalesByProduct(ctx, inv.ID, start, end)
		salesCh <- salesResult{rows, err}
	}()
	go func() {
		rows, err := uc.movements.Aggregate(ctx, repository.StockFilter{InventoryID: inv.ID})
		snapCh <- snapshotResult{rows, err}
	}()

	sales := <-salesCh
	snap := <-snapCh
	if sales.err != nil {
		return nil, fmt.Errorf("resumen: ventas de %s: %w", inv.Name, sales.err)
	}
	if snap.err != nil {
		return nil, fmt.Errorf("resumen: stock de %s: %w", inv.Name, snap.err)
	}

	out := &dto.InventorySummaryDTO{
		InventoryID:   inv.ID,
		InventoryName: inv.Name,
		Sales:         make([]dto.ProductSalesDTO, 0, len(sales.rows)),
		Stock:         make([]dto.StockSnapshotDTO, 0, len(snap.rows)),
		TotalRevenue:  decimal.Zero,
	}
	// El total es la suma de las filas YA redondeadas: lo reportado siempre
	// cuadra con la suma de lo reportado.
	for _, s := range sales.rows {
		rounded := s.TotalRevenue.Round(2)
		out.Sales = append(out.Sales, dto.ProductSalesDTO{
			ProductID:     s.ProductID,
			ProductName:   s.ProductName,
			UnitID:        s.UnitID,
			UnitName:      s.UnitName,
			TotalQuantity: s.TotalQuantity,
			TotalRevenue:  rounded,
			OrderCount:    s.OrderCount,
		})
		out.TotalRevenue = out.TotalRevenue.Add(rounded)
		out.TotalOrders += s.OrderCount
	}
	out.TotalRevenue = out.TotalRevenue.Round(2)
	for _, r := range snap.rows {
		out.Stock = append(out.Stock, dto.StockSnapshotDTO{
			ProductID:         r.ProductID,
			ProductName:       r.ProductName,
			UnitID:            r.UnitID,
			UnitName:          r.UnitName,
			AvailableQuantity: r.Available,
		})
	}
	return out, nil
}

// PeriodRange deriva la ventana [start, end] del periodo. Todas terminan hoy a
// las 23:59:59.999... locales, salvo que "all" empieza en epoch.
func PeriodRange(period string, now time.Time) (time.Time, time.Time, error) {
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.Add(24*time.Hour - time.Nanosecond)

	switch period {
	case PeriodDaily:
		return todayStart, todayEnd, nil
	case PeriodWeekly:
		return todayStart.AddDate(0, 0, -6), todayEnd, nil // ventana de 7 días inclusive
	case PeriodMonthly:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), todayEnd, nil
	case PeriodYearly:
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location()), todayEnd, nil
	case PeriodAll:
		return time.Unix(0, 0), todayEnd, nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("periodo %q: %w", period, domain.ErrInvalidInput)
	}
}
