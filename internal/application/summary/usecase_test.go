package summary

import (
	"context"
	"testing"
	"time"

	"github.com/jhoicas/Pedidos-api/internal/application/access"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// ── Fakes ────────────────────────────────────────────────────────────────────

type fakeUsers struct {
	repository.UserRepository
	managed map[string][]string
}

func (f *fakeUsers) ManagedInventoryIDs(userID string) ([]string, error) {
	return f.managed[userID], nil
}

type fakeOrders struct {
	repository.OrderRepository
	sales    map[string][]repository.ProductSales // por bodega
	lastFrom time.Time
	lastTo   time.Time
}

func (f *fakeOrders) SalesByProduct(ctx context.Context, inventoryID string, from, to time.Time) ([]repository.ProductSales, error) {
	f.lastFrom, f.lastTo = from, to
	return f.sales[inventoryID], nil
}

type fakeMovements struct {
	repository.StockMovementRepository
	stock map[string][]repository.AggregatedStockRow // por bodega
}

func (f *fakeMovements) Aggregate(ctx context.Context, filter repository.StockFilter) ([]repository.AggregatedStockRow, error) {
	return f.stock[filter.InventoryID], nil
}

type fakeInventories struct {
	repository.InventoryRepository
	items map[string]*entity.Inventory
}

func (f *fakeInventories) GetByID(id string) (*entity.Inventory, error) { return f.items[id], nil }

func (f *fakeInventories) ListAll() ([]*entity.Inventory, error) {
	out := make([]*entity.Inventory, 0, len(f.items))
	for _, inv := range f.items {
		out = append(out, inv)
	}
	return out, nil
}

func newSummaryUseCase(orders *fakeOrders, movements *fakeMovements) *UseCase {
	resolver := access.NewResolver(&fakeUsers{managed: map[string][]string{
		"admin-1": {"inv-1"},
		"admin-2": {},
	}})
	inventories := &fakeInventories{items: map[string]*entity.Inventory{
		"inv-1": {ID: "inv-1", Name: "Central"},
		"inv-2": {ID: "inv-2", Name: "Norte"},
	}}
	return NewUseCase(resolver, orders, movements, inventories)
}

// ── PeriodRange ──────────────────────────────────────────────────────────────

func TestPeriodRangeVentanas(t *testing.T) {
	now := time.Date(2025, 6, 18, 14, 30, 0, 0, time.UTC) // miércoles
	dayStart := time.Date(2025, 6, 18, 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24*time.Hour - time.Nanosecond)

	cases := []struct {
		period string
		start  time.Time
	}{
		{PeriodDaily, dayStart},
		{PeriodWeekly, time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC)},
		{PeriodMonthly, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)},
		{PeriodYearly, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		{PeriodAll, time.Unix(0, 0)},
	}
	for _, tc := range cases {
		start, end, err := PeriodRange(tc.period, now)
		require.NoError(t, err, tc.period)
		assert.True(t, start.Equal(tc.start), "%s: start %s", tc.period, start)
		assert.True(t, end.Equal(dayEnd), "%s: end %s", tc.period, end)
	}
}

func TestPeriodRangeDesconocido(t *testing.T) {
	_, _, err := PeriodRange("quincenal", time.Now())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ── Summarize ────────────────────────────────────────────────────────────────

func TestSummarizeRedondeaPorFilaYCuadraElTotal(t *testing.T) {
	orders := &fakeOrders{sales: map[string][]repository.ProductSales{
		"inv-1": {
			{ProductID: "p1", ProductName: "Arroz", UnitID: "u1", UnitName: "kg",
				TotalQuantity: dec("10"), TotalRevenue: dec("150.755"), OrderCount: 3},
			{ProductID: "p2", ProductName: "Azúcar", UnitID: "u1", UnitName: "kg",
				TotalQuantity: dec("4"), TotalRevenue: dec("99.994"), OrderCount: 2},
		},
	}}
	movements := &fakeMovements{stock: map[string][]repository.AggregatedStockRow{
		"inv-1": {
			{ProductID: "p1", InventoryID: "inv-1", UnitID: "u1",
				ProductName: "Arroz", InventoryName: "Central", UnitName: "kg",
				TotalIn: dec("100"), TotalOut: dec("40"), Available: dec("60")},
		},
	}}
	uc := newSummaryUseCase(orders, movements)

	out, err := uc.Summarize(context.Background(), "admin-1", entity.RoleAdmin, PeriodDaily, "")
	require.NoError(t, err)
	require.Len(t, out.Inventories, 1)

	inv := out.Inventories[0]
	assert.Equal(t, "inv-1", inv.InventoryID)
	assert.Equal(t, "Central", inv.InventoryName)
	require.Len(t, inv.Sales, 2)
	// Cada fila se redondea primero; el total suma las filas redondeadas.
	assert.True(t, inv.Sales[0].TotalRevenue.Equal(dec("150.76")), inv.Sales[0].TotalRevenue.String())
	assert.True(t, inv.Sales[1].TotalRevenue.Equal(dec("99.99")))
	assert.True(t, inv.TotalRevenue.Equal(dec("250.75")), inv.TotalRevenue.String())
	assert.Equal(t, int64(5), inv.TotalOrders)

	require.Len(t, inv.Stock, 1)
	assert.True(t, inv.Stock[0].AvailableQuantity.Equal(dec("60")))
}

func TestSummarizeScopeVacioDevuelveExitoVacio(t *testing.T) {
	uc := newSummaryUseCase(&fakeOrders{}, &fakeMovements{})
	out, err := uc.Summarize(context.Background(), "admin-2", entity.RoleAdmin, PeriodMonthly, "")
	require.NoError(t, err)
	assert.NotNil(t, out.Inventories)
	assert.Empty(t, out.Inventories)
	assert.Equal(t, PeriodMonthly, out.Period)
}

func TestSummarizeBodegaExplicitaFueraDeScope(t *testing.T) {
	uc := newSummaryUseCase(&fakeOrders{}, &fakeMovements{})
	_, err := uc.Summarize(context.Background(), "admin-1", entity.RoleAdmin, PeriodDaily, "inv-2")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestSummarizeBodegaExplicitaInexistente(t *testing.T) {
	uc := newSummaryUseCase(&fakeOrders{}, &fakeMovements{})
	_, err := uc.Summarize(context.Background(), "root-1", entity.RoleSuperAdmin, PeriodDaily, "inv-fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSummarizeSuperadminCubreTodasLasBodegas(t *testing.T) {
	orders := &fakeOrders{sales: map[string][]repository.ProductSales{}}
	movements := &fakeMovements{stock: map[string][]repository.AggregatedStockRow{}}
	uc := newSummaryUseCase(orders, movements)

	out, err := uc.Summarize(context.Background(), "root-1", entity.RoleSuperAdmin, PeriodAll, "")
	require.NoError(t, err)
	assert.Len(t, out.Inventories, 2)
}

func TestSummarizePasaLaVentanaAlRepositorio(t *testing.T) {
	orders := &fakeOrders{sales: map[string][]repository.ProductSales{}}
	uc := newSummaryUseCase(orders, &fakeMovements{})

	_, err := uc.Summarize(context.Background(), "admin-1", entity.RoleAdmin, PeriodWeekly, "")
	require.NoError(t, err)
	wantStart, wantEnd, _ := PeriodRange(PeriodWeekly, time.Now())
	assert.WithinDuration(t, wantStart, orders.lastFrom, time.Minute)
	assert.WithinDuration(t, wantEnd, orders.lastTo, time.Minute)
}
