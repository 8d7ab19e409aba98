package stock

import (
	"context"
	"testing"
	"time"

	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTransfers struct {
	created    []*entity.StockTransfer
	byID       map[string]*entity.StockTransfer
	lastStatus string
	lastRecv   *string
	lastDone   *time.Time
}

func (f *fakeTransfers) Create(t *entity.StockTransfer) error {
	if t.ID == "" {
		t.ID = "tr-1"
	}
	f.created = append(f.created, t)
	return nil
}

func (f *fakeTransfers) GetByID(id string) (*entity.StockTransfer, error) {
	return f.byID[id], nil
}

func (f *fakeTransfers) List(inventoryIDs []string, limit, offset int) ([]*entity.StockTransfer, error) {
	return f.created, nil
}

func (f *fakeTransfers) UpdateStatus(id, status string, receivedBy *string, completedAt *time.Time) error {
	f.lastStatus = status
	f.lastRecv = receivedBy
	f.lastDone = completedAt
	return nil
}

// fakeTransferTx ejecuta el cierre contra los mismos fakes, sin transacción real.
type fakeTransferTx struct {
	movements *fakeMovements
	transfers *fakeTransfers
}

func (f *fakeTransferTx) RunTransfer(ctx context.Context, fn func(repository.StockMovementRepository, repository.StockTransferRepository) error) error {
	return fn(f.movements, f.transfers)
}

func newTransferUC(movements *fakeMovements, transfers *fakeTransfers) *TransferUseCase {
	return NewTransferUseCase(newTestUseCase(movements), &fakeTransferTx{movements, transfers}, transfers)
}

func TestCreateTransferRechazaMismaBodega(t *testing.T) {
	uc := newTransferUC(&fakeMovements{}, &fakeTransfers{})
	_, err := uc.CreateTransfer(context.Background(), "admin-1", entity.RoleAdmin, dto.CreateTransferRequest{
		ProductID: "product-1", UnitID: "unit-kg",
		SourceInventoryID: "inv-1", TargetInventoryID: "inv-1",
		Quantity: dec("5"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTransfer)
}

func TestCreateTransferExigeAccesoAAmbasBodegas(t *testing.T) {
	movements := &fakeMovements{availability: map[string]*repository.Availability{
		availKey("product-1", "inv-1", "unit-kg"): {TotalIn: dec("50"), RecordCount: 1, UnitName: "kg"},
	}}
	uc := newTransferUC(movements, &fakeTransfers{})
	// admin-1 administra inv-1 e inv-2; inv-ajena no existe en su scope.
	_, err := uc.CreateTransfer(context.Background(), "admin-1", entity.RoleAdmin, dto.CreateTransferRequest{
		ProductID: "product-1", UnitID: "unit-kg",
		SourceInventoryID: "inv-1", TargetInventoryID: "inv-ajena",
		Quantity: dec("5"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound) // inv-ajena ni siquiera existe
}

func TestCreateTransferSinStockPrevio(t *testing.T) {
	uc := newTransferUC(&fakeMovements{}, &fakeTransfers{})
	_, err := uc.CreateTransfer(context.Background(), "admin-1", entity.RoleAdmin, dto.CreateTransferRequest{
		ProductID: "product-1", UnitID: "unit-kg",
		SourceInventoryID: "inv-1", TargetInventoryID: "inv-2",
		Quantity: dec("5"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateTransferConStockInsuficiente(t *testing.T) {
	movements := &fakeMovements{availability: map[string]*repository.Availability{
		availKey("product-1", "inv-1", "unit-kg"): {TotalIn: dec("3"), RecordCount: 2, UnitName: "kg"},
	}}
	uc := newTransferUC(movements, &fakeTransfers{})
	_, err := uc.CreateTransfer(context.Background(), "admin-1", entity.RoleAdmin, dto.CreateTransferRequest{
		ProductID: "product-1", UnitID: "unit-kg",
		SourceInventoryID: "inv-1", TargetInventoryID: "inv-2",
		Quantity: dec("5"),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestCreateTransferRegistraAmbosMovimientos(t *testing.T) {
	movements := &fakeMovements{availability: map[string]*repository.Availability{
		availKey("product-1", "inv-1", "unit-kg"): {TotalIn: dec("50"), RecordCount: 3, UnitName: "kg"},
	}}
	transfers := &fakeTransfers{}
	uc := newTransferUC(movements, transfers)

	out, err := uc.CreateTransfer(context.Background(), "admin-1", entity.RoleAdmin, dto.CreateTransferRequest{
		ProductID: "product-1", UnitID: "unit-kg",
		SourceInventoryID: "inv-1", TargetInventoryID: "inv-2",
		Quantity: dec("20"),
	})
	require.NoError(t, err)

	// El libro conserva la cantidad: out en origen + in en destino, ya creados.
	require.Len(t, movements.created, 2)
	salida, entrada := movements.created[0], movements.created[1]
	assert.Equal(t, entity.DirectionOut, salida.Direction)
	assert.Equal(t, "inv-1", salida.InventoryID)
	assert.Equal(t, entity.DirectionIn, entrada.Direction)
	assert.Equal(t, "inv-2", entrada.InventoryID)
	assert.Equal(t, entity.MethodTransfer, salida.Method)
	assert.Equal(t, entity.MethodTransfer, entrada.Method)
	assert.True(t, salida.Quantity.Equal(entrada.Quantity))

	require.Len(t, transfers.created, 1)
	assert.Equal(t, salida.ID, out.MovementID)
	assert.Equal(t, entity.TransferPending, out.Status)
	assert.Nil(t, out.CompletedAt)
}

func TestUpdateTransferStatusCompletadoFijaRecepcion(t *testing.T) {
	transfers := &fakeTransfers{byID: map[string]*entity.StockTransfer{
		"tr-1": {ID: "tr-1", SourceInventoryID: "inv-1", TargetInventoryID: "inv-2", Status: entity.TransferInTransit},
	}}
	uc := newTransferUC(&fakeMovements{}, transfers)

	out, err := uc.UpdateTransferStatus(context.Background(), "admin-1", entity.RoleAdmin, "tr-1", entity.TransferCompleted)
	require.NoError(t, err)
	assert.Equal(t, entity.TransferCompleted, out.Status)
	require.NotNil(t, out.ReceivedBy)
	assert.Equal(t, "admin-1", *out.ReceivedBy)
	assert.NotNil(t, out.CompletedAt)
	assert.NotNil(t, transfers.lastDone)
}

func TestUpdateTransferStatusTerminalEsConflicto(t *testing.T) {
	transfers := &fakeTransfers{byID: map[string]*entity.StockTransfer{
		"tr-done": {ID: "tr-done", SourceInventoryID: "inv-1", TargetInventoryID: "inv-2", Status: entity.TransferCompleted},
		"tr-cxl":  {ID: "tr-cxl", SourceInventoryID: "inv-1", TargetInventoryID: "inv-2", Status: entity.TransferCancelled},
	}}
	uc := newTransferUC(&fakeMovements{}, transfers)

	_, err := uc.UpdateTransferStatus(context.Background(), "admin-1", entity.RoleAdmin, "tr-done", entity.TransferInTransit)
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = uc.UpdateTransferStatus(context.Background(), "admin-1", entity.RoleAdmin, "tr-cxl", entity.TransferPending)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUpdateTransferStatusEstadoInvalido(t *testing.T) {
	uc := newTransferUC(&fakeMovements{}, &fakeTransfers{})
	_, err := uc.UpdateTransferStatus(context.Background(), "admin-1", entity.RoleAdmin, "tr-1", "volando")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
