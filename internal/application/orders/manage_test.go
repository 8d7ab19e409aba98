package orders

import (
	"context"
	"testing"

	"github.com/jhoicas/Pedidos-api/internal/application/access"
	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrderStore struct {
	repository.OrderRepository
	byID       map[string]*entity.Order
	listed     []*entity.Order
	listCalled bool
	lastFilter repository.OrderFilter
	updated    *entity.Order
	statusID   string
	statusVal  string
	deleted    []string
}

func (f *fakeOrderStore) GetByID(id string) (*entity.Order, error) { return f.byID[id], nil }

func (f *fakeOrderStore) List(filter repository.OrderFilter) ([]*entity.Order, error) {
	f.listCalled = true
	f.lastFilter = filter
	return f.listed, nil
}

func (f *fakeOrderStore) Update(o *entity.Order) error {
	f.updated = o
	return nil
}

func (f *fakeOrderStore) UpdateStatus(id, status string) error {
	f.statusID, f.statusVal = id, status
	return nil
}

func (f *fakeOrderStore) Delete(id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

// newManageFixture: admin-1 administra inv-1, admin-2 no administra ninguna;
// tarifa product-1/unit-bori = 10.00.
func newManageFixture(store *fakeOrderStore) *ManageOrderUseCase {
	resolver := access.NewResolver(&fakeUsers{managed: map[string][]string{
		"admin-1": {"inv-1"},
		"admin-2": {},
	}})
	rates := &fakeRates{items: map[string]*entity.ProductUnitRate{
		"product-1|unit-bori": {ID: "rate-1", ProductID: "product-1", UnitID: "unit-bori", Rate: dec("10.00")},
	}}
	return NewManageOrderUseCase(resolver, store, rates)
}

func storedOrder() *entity.Order {
	return &entity.Order{
		ID:          "order-1",
		CustomerID:  "cust-1",
		ProductID:   "product-1",
		InventoryID: "inv-1",
		UnitID:      "unit-bori",
		Quantity:    dec("30"),
		Status:      entity.OrderPending,
		TotalAmount: dec("300.00"),
	}
}

// ── List ─────────────────────────────────────────────────────────────────────

func TestManageListScopeVacioDevuelveExitoVacio(t *testing.T) {
	store := &fakeOrderStore{}
	uc := newManageFixture(store)

	out, err := uc.List(context.Background(), "admin-2", entity.RoleAdmin, dto.OrderListRequest{})
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
	assert.False(t, store.listCalled, "sin scope no se consulta el repositorio")
}

func TestManageListFiltraPorScope(t *testing.T) {
	store := &fakeOrderStore{listed: []*entity.Order{storedOrder()}}
	uc := newManageFixture(store)

	out, err := uc.List(context.Background(), "admin-1", entity.RoleAdmin, dto.OrderListRequest{})
	require.NoError(t, err)
	assert.Len(t, out, 1)
	assert.Equal(t, []string{"inv-1"}, store.lastFilter.InventoryIDs)

	_, err = uc.List(context.Background(), "root-1", entity.RoleSuperAdmin, dto.OrderListRequest{})
	require.NoError(t, err)
	assert.Nil(t, store.lastFilter.InventoryIDs, "superadmin consulta sin filtro de bodegas")
}

// ── Get ──────────────────────────────────────────────────────────────────────

func TestManageGetVerificaRolYScope(t *testing.T) {
	ajeno := storedOrder()
	ajeno.InventoryID = "inv-2"
	store := &fakeOrderStore{byID: map[string]*entity.Order{"order-1": ajeno}}
	uc := newManageFixture(store)

	_, err := uc.Get(context.Background(), "chofer-1", entity.RoleDriver, "order-1")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.Get(context.Background(), "admin-1", entity.RoleAdmin, "order-1")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.Get(context.Background(), "admin-1", entity.RoleAdmin, "order-fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ── Update ───────────────────────────────────────────────────────────────────

func TestManageUpdateCantidadRecalculaElTotal(t *testing.T) {
	store := &fakeOrderStore{byID: map[string]*entity.Order{"order-1": storedOrder()}}
	uc := newManageFixture(store)

	nueva := dec("50")
	out, err := uc.Update(context.Background(), "admin-1", entity.RoleAdmin, "order-1", dto.UpdateOrderRequest{Quantity: &nueva})
	require.NoError(t, err)

	// 10.00 × 50 = 500.00: el total siempre es tarifa × cantidad.
	assert.True(t, out.TotalAmount.Equal(dec("500.00")), out.TotalAmount.String())
	require.NotNil(t, store.updated)
	assert.True(t, store.updated.TotalAmount.Equal(dec("500.00")))
	assert.True(t, store.updated.Quantity.Equal(nueva))
}

func TestManageUpdateCantidadInvalida(t *testing.T) {
	store := &fakeOrderStore{byID: map[string]*entity.Order{"order-1": storedOrder()}}
	uc := newManageFixture(store)

	cero := dec("0")
	_, err := uc.Update(context.Background(), "admin-1", entity.RoleAdmin, "order-1", dto.UpdateOrderRequest{Quantity: &cero})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, store.updated)
}

func TestManageUpdateSinTarifaParaLaNuevaCantidad(t *testing.T) {
	huerfano := storedOrder()
	huerfano.UnitID = "unit-kg" // sin tarifa registrada
	store := &fakeOrderStore{byID: map[string]*entity.Order{"order-1": huerfano}}
	uc := newManageFixture(store)

	nueva := dec("50")
	_, err := uc.Update(context.Background(), "admin-1", entity.RoleAdmin, "order-1", dto.UpdateOrderRequest{Quantity: &nueva})
	var nf *domain.EntityNotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "rate", nf.Entity)
	assert.Nil(t, store.updated)
}

func TestManageUpdateSinCantidadConservaElTotal(t *testing.T) {
	store := &fakeOrderStore{byID: map[string]*entity.Order{"order-1": storedOrder()}}
	uc := newManageFixture(store)

	pagado := entity.PaymentCash
	out, err := uc.Update(context.Background(), "admin-1", entity.RoleAdmin, "order-1", dto.UpdateOrderRequest{PaymentMethod: &pagado})
	require.NoError(t, err)
	assert.True(t, out.TotalAmount.Equal(dec("300.00")))
	assert.Equal(t, entity.PaymentCash, out.PaymentMethod)
}

func TestManageUpdateCambioDeBodegaReverificaAcceso(t *testing.T) {
	store := &fakeOrderStore{byID: map[string]*entity.Order{"order-1": storedOrder()}}
	uc := newManageFixture(store)

	// El admin administra la bodega actual pero no la destino.
	destino := "inv-2"
	_, err := uc.Update(context.Background(), "admin-1", entity.RoleAdmin, "order-1", dto.UpdateOrderRequest{InventoryID: &destino})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Nil(t, store.updated)

	// El superadmin puede moverlo a cualquier bodega.
	store.byID["order-1"] = storedOrder()
	out, err := uc.Update(context.Background(), "root-1", entity.RoleSuperAdmin, "order-1", dto.UpdateOrderRequest{InventoryID: &destino})
	require.NoError(t, err)
	assert.Equal(t, "inv-2", out.InventoryID)
}

// ── UpdateStatus / Delete ────────────────────────────────────────────────────

func TestManageUpdateStatus(t *testing.T) {
	store := &fakeOrderStore{byID: map[string]*entity.Order{"order-1": storedOrder()}}
	uc := newManageFixture(store)

	_, err := uc.UpdateStatus(context.Background(), "admin-1", entity.RoleAdmin, "order-1", "extraviado")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err := uc.UpdateStatus(context.Background(), "admin-1", entity.RoleAdmin, "order-1", entity.OrderCancelled)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderCancelled, out.Status)
	assert.Equal(t, "order-1", store.statusID)
	assert.Equal(t, entity.OrderCancelled, store.statusVal)
}

func TestManageDeleteSoloSuperadmin(t *testing.T) {
	store := &fakeOrderStore{byID: map[string]*entity.Order{"order-1": storedOrder()}}
	uc := newManageFixture(store)

	err := uc.Delete(context.Background(), "admin-1", entity.RoleAdmin, "order-1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Empty(t, store.deleted)

	err = uc.Delete(context.Background(), "root-1", entity.RoleSuperAdmin, "order-fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = uc.Delete(context.Background(), "root-1", entity.RoleSuperAdmin, "order-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"order-1"}, store.deleted)
}
