package stock

import (
	"context"
	"testing"
	"time"

	"github.com/jhoicas/Pedidos-api/internal/application/access"
	"github.com/jhoicas/Pedidos-api/internal/application/dto"
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

// ── Fakes compartidos del paquete ────────────────────────────────────────────

type fakeUsers struct {
	repository.UserRepository
	managed map[string][]string
}

func (f *fakeUsers) ManagedInventoryIDs(userID string) ([]string, error) {
	return f.managed[userID], nil
}

type fakeMovements struct {
	created      []*entity.StockMovement
	createErr    error
	aggregated   []repository.AggregatedStockRow
	lastFilter   repository.StockFilter
	availability map[string]*repository.Availability
	lowRows      []repository.AggregatedStockRow
	lastThresh   decimal.Decimal
	listed       []*entity.StockMovement
}

func availKey(productID, inventoryID, unitID string) string {
	return productID + "|" + inventoryID + "|" + unitID
}

func (f *fakeMovements) Create(m *entity.StockMovement) error {
	if f.createErr != nil {
		return f.createErr
	}
	if m.ID == "" {
		m.ID = "mov-" + time.Now().Format("150405.000000000")
	}
	f.created = append(f.created, m)
	return nil
}

func (f *fakeMovements) GetByID(id string) (*entity.StockMovement, error) {
	for _, m := range f.created {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}

func (f *fakeMovements) ListByInventory(inventoryID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	return f.listed, nil
}

func (f *fakeMovements) Aggregate(ctx context.Context, filter repository.StockFilter) ([]repository.AggregatedStockRow, error) {
	f.lastFilter = filter
	return f.aggregated, nil
}

func (f *fakeMovements) Availability(ctx context.Context, productID, inventoryID, unitID string) (*repository.Availability, error) {
	if av, ok := f.availability[availKey(productID, inventoryID, unitID)]; ok {
		cp := *av
		return &cp, nil
	}
	return &repository.Availability{TotalIn: decimal.Zero, TotalOut: decimal.Zero}, nil
}

func (f *fakeMovements) LowStock(ctx context.Context, threshold decimal.Decimal, inventoryIDs []string) ([]repository.AggregatedStockRow, error) {
	f.lastThresh = threshold
	return f.lowRows, nil
}

type fakeProducts struct {
	repository.ProductRepository
	items map[string]*entity.Product
}

func (f *fakeProducts) GetByID(id string) (*entity.Product, error) { return f.items[id], nil }

type fakeInventories struct {
	repository.InventoryRepository
	items map[string]*entity.Inventory
}

func (f *fakeInventories) GetByID(id string) (*entity.Inventory, error) { return f.items[id], nil }

type fakeUnits struct {
	repository.UnitRepository
	items map[string]*entity.Unit
}

func (f *fakeUnits) GetByID(id string) (*entity.Unit, error) { return f.items[id], nil }

// newTestUseCase arma un UseCase con un admin "admin-1" que administra inv-1 e
// inv-2, y el catálogo mínimo product-1 / inv-1 / inv-2 / unit-kg.
func newTestUseCase(movements *fakeMovements) *UseCase {
	resolver := access.NewResolver(&fakeUsers{managed: map[string][]string{
		"admin-1": {"inv-1", "inv-2"},
	}})
	return NewUseCase(
		resolver,
		movements,
		&fakeProducts{items: map[string]*entity.Product{"product-1": {ID: "product-1", Name: "Arroz"}}},
		&fakeInventories{items: map[string]*entity.Inventory{
			"inv-1": {ID: "inv-1", Name: "Central"},
			"inv-2": {ID: "inv-2", Name: "Norte"},
		}},
		&fakeUnits{items: map[string]*entity.Unit{"unit-kg": {ID: "unit-kg", Name: "kg"}}},
	)
}

// ── Agregación ────────────────────────────────────────────────────────────────

func TestAggregateScopeVacioDevuelveListaVacia(t *testing.T) {
	movements := &fakeMovements{aggregated: []repository.AggregatedStockRow{{ProductID: "x"}}}
	uc := newTestUseCase(movements)

	out, err := uc.Aggregate(context.Background(), "cliente-1", entity.RoleCustomer, dto.StockQueryRequest{})
	require.NoError(t, err)
	assert.Empty(t, out)
	// Nunca llegó a consultar: el filtro sigue con su valor cero.
	assert.Nil(t, movements.lastFilter.InventoryIDs)
}

func TestAggregateFiltroFueraDeScopeEsForbidden(t *testing.T) {
	uc := newTestUseCase(&fakeMovements{})
	_, err := uc.Aggregate(context.Background(), "admin-1", entity.RoleAdmin,
		dto.StockQueryRequest{InventoryID: "inv-ajena"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestAggregateAdminRecortaAlScope(t *testing.T) {
	movements := &fakeMovements{}
	uc := newTestUseCase(movements)

	_, err := uc.Aggregate(context.Background(), "admin-1", entity.RoleAdmin, dto.StockQueryRequest{})
	require.NoError(t, err)
	assert.Equal(t, []string{"inv-1", "inv-2"}, movements.lastFilter.InventoryIDs)
}

func TestAggregateSuperAdminSinRecorte(t *testing.T) {
	movements := &fakeMovements{}
	uc := newTestUseCase(movements)

	_, err := uc.Aggregate(context.Background(), "root", entity.RoleSuperAdmin, dto.StockQueryRequest{})
	require.NoError(t, err)
	assert.Nil(t, movements.lastFilter.InventoryIDs)
}

func TestAggregateDisponibleCrudoPuedeSerNegativo(t *testing.T) {
	movements := &fakeMovements{aggregated: []repository.AggregatedStockRow{{
		ProductID: "product-1", InventoryID: "inv-1", UnitID: "unit-kg",
		TotalIn: dec("10"), TotalOut: dec("25"), Available: dec("-15"),
	}}}
	uc := newTestUseCase(movements)

	out, err := uc.Aggregate(context.Background(), "root", entity.RoleSuperAdmin, dto.StockQueryRequest{})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.True(t, out[0].AvailableQuantity.Equal(dec("-15")))
}

// ── Disponibilidad ────────────────────────────────────────────────────────────

func TestAvailabilityRecortaANivelCero(t *testing.T) {
	movements := &fakeMovements{availability: map[string]*repository.Availability{
		availKey("product-1", "inv-1", "unit-kg"): {
			TotalIn: dec("10"), TotalOut: dec("25"), RecordCount: 4, UnitName: "kg",
		},
	}}
	uc := newTestUseCase(movements)

	out, err := uc.Availability(context.Background(), "admin-1", entity.RoleAdmin, "product-1", "inv-1", "unit-kg")
	require.NoError(t, err)
	assert.True(t, out.Available.IsZero())
	assert.True(t, out.TotalIn.Equal(dec("10")))
	assert.True(t, out.TotalOut.Equal(dec("25")))
	assert.Equal(t, int64(4), out.RecordCount)
}

func TestAvailabilityDistingueNuncaAbastecido(t *testing.T) {
	// Clave sin filas: RecordCount 0 y disponible 0 — no es lo mismo que
	// "abastecido y consumido todo" (RecordCount > 0, disponible 0).
	movements := &fakeMovements{availability: map[string]*repository.Availability{
		availKey("product-1", "inv-2", "unit-kg"): {
			TotalIn: dec("100"), TotalOut: dec("100"), RecordCount: 7, UnitName: "kg",
		},
	}}
	uc := newTestUseCase(movements)

	nunca, err := uc.Availability(context.Background(), "admin-1", entity.RoleAdmin, "product-1", "inv-1", "unit-kg")
	require.NoError(t, err)
	assert.Equal(t, int64(0), nunca.RecordCount)
	assert.True(t, nunca.Available.IsZero())

	agotado, err := uc.Availability(context.Background(), "admin-1", entity.RoleAdmin, "product-1", "inv-2", "unit-kg")
	require.NoError(t, err)
	assert.Equal(t, int64(7), agotado.RecordCount)
	assert.True(t, agotado.Available.IsZero())
}

func TestAvailabilityFueraDeScopeEsForbidden(t *testing.T) {
	uc := newTestUseCase(&fakeMovements{})
	_, err := uc.Availability(context.Background(), "admin-1", entity.RoleAdmin, "product-1", "inv-ajena", "unit-kg")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ── Stock bajo ────────────────────────────────────────────────────────────────

func TestLowStockPasaElUmbralYRespetaScope(t *testing.T) {
	movements := &fakeMovements{lowRows: []repository.AggregatedStockRow{
		{ProductID: "product-1", InventoryID: "inv-1", UnitID: "unit-kg", Available: dec("3"), UnitName: "kg"},
	}}
	uc := newTestUseCase(movements)

	out, err := uc.LowStock(context.Background(), "admin-1", entity.RoleAdmin, dec("10"))
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.True(t, movements.lastThresh.Equal(dec("10")))
}

func TestLowStockScopeVacioDevuelveListaVacia(t *testing.T) {
	movements := &fakeMovements{lowRows: []repository.AggregatedStockRow{{ProductID: "x"}}}
	uc := newTestUseCase(movements)

	out, err := uc.LowStock(context.Background(), "driver-1", entity.RoleDriver, dec("10"))
	require.NoError(t, err)
	assert.Empty(t, out)
}

// ── Registro de movimientos ───────────────────────────────────────────────────

func TestRegisterMovementValidaRolYEnums(t *testing.T) {
	uc := newTestUseCase(&fakeMovements{})
	valid := dto.RegisterMovementRequest{
		ProductID: "product-1", InventoryID: "inv-1", UnitID: "unit-kg",
		Quantity: dec("5"), Direction: entity.DirectionIn, Method: entity.MethodPurchase,
	}

	_, err := uc.RegisterMovement(context.Background(), "cliente-1", entity.RoleCustomer, valid)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	bad := valid
	bad.Direction = "sideways"
	_, err = uc.RegisterMovement(context.Background(), "admin-1", entity.RoleAdmin, bad)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	bad = valid
	bad.Method = "teleport"
	_, err = uc.RegisterMovement(context.Background(), "admin-1", entity.RoleAdmin, bad)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	bad = valid
	bad.Quantity = dec("0")
	_, err = uc.RegisterMovement(context.Background(), "admin-1", entity.RoleAdmin, bad)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	bad = valid
	bad.Quantity = dec("-2")
	_, err = uc.RegisterMovement(context.Background(), "admin-1", entity.RoleAdmin, bad)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterMovementEntidadInexistente(t *testing.T) {
	uc := newTestUseCase(&fakeMovements{})
	in := dto.RegisterMovementRequest{
		ProductID: "fantasma", InventoryID: "inv-1", UnitID: "unit-kg",
		Quantity: dec("5"), Direction: entity.DirectionIn, Method: entity.MethodPurchase,
	}
	_, err := uc.RegisterMovement(context.Background(), "admin-1", entity.RoleAdmin, in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegisterMovementBodegaFueraDeScope(t *testing.T) {
	// inv-3 existe en el catálogo pero admin-1 no la administra.
	movements := &fakeMovements{}
	resolver := access.NewResolver(&fakeUsers{managed: map[string][]string{"admin-1": {"inv-1"}}})
	uc := NewUseCase(
		resolver,
		movements,
		&fakeProducts{items: map[string]*entity.Product{"product-1": {ID: "product-1"}}},
		&fakeInventories{items: map[string]*entity.Inventory{
			"inv-1": {ID: "inv-1"},
			"inv-3": {ID: "inv-3"},
		}},
		&fakeUnits{items: map[string]*entity.Unit{"unit-kg": {ID: "unit-kg", Name: "kg"}}},
	)
	in := dto.RegisterMovementRequest{
		ProductID: "product-1", InventoryID: "inv-3", UnitID: "unit-kg",
		Quantity: dec("5"), Direction: entity.DirectionOut, Method: entity.MethodAdjustment,
	}
	_, err := uc.RegisterMovement(context.Background(), "admin-1", entity.RoleAdmin, in)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Empty(t, movements.created)
}

func TestRegisterMovementPersisteYDevuelveElMovimiento(t *testing.T) {
	movements := &fakeMovements{}
	uc := newTestUseCase(movements)
	in := dto.RegisterMovementRequest{
		ProductID: "product-1", InventoryID: "inv-1", UnitID: "unit-kg",
		Quantity: dec("12.5"), Direction: entity.DirectionIn, Method: entity.MethodPurchase,
	}
	out, err := uc.RegisterMovement(context.Background(), "admin-1", entity.RoleAdmin, in)
	require.NoError(t, err)
	require.Len(t, movements.created, 1)
	assert.NotEmpty(t, out.ID)
	assert.True(t, out.Quantity.Equal(dec("12.5")))
	assert.Equal(t, entity.DirectionIn, out.Direction)
}

// ── Clamp ────────────────────────────────────────────────────────────────────

func TestClampAvailable(t *testing.T) {
	assert.True(t, ClampAvailable(dec("-3")).IsZero())
	assert.True(t, ClampAvailable(dec("0")).IsZero())
	assert.True(t, ClampAvailable(dec("7.25")).Equal(dec("7.25")))
}
