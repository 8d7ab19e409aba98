package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

// TransferUseCase traslados de stock entre bodegas. Al crear el traslado se
// registran de una vez el movimiento "out" en origen y el "in" en destino
// (misma transacción), de modo que el libro conserva la cantidad total desde el
// primer momento; el estado del traslado solo sigue la logística.
type TransferUseCase struct {
	base      *UseCase
	txRunner  TransferTxRunner
	transfers repository.StockTransferRepository
}

// NewTransferUseCase construye el caso de uso.
func NewTransferUseCase(base *UseCase, txRunner TransferTxRunner, transfers repository.StockTransferRepository) *TransferUseCase {
	return &TransferUseCase{base: base, txRunner: txRunner, transfers: transfers}
}

// CreateTransfer valida y persiste un traslado. Origen y destino no pueden ser
// la misma bodega; se comprueba aquí y de nuevo con un CHECK en la tabla.
func (uc *TransferUseCase) CreateTransfer(ctx context.Context, userID, role string, in dto.CreateTransferRequest) (*dto.TransferResponse, error) {
	if role != entity.RoleAdmin && role != entity.RoleSuperAdmin {
		return nil, domain.ErrForbidden
	}
	if in.SourceInventoryID == in.TargetInventoryID {
		return nil, domain.ErrInvalidTransfer
	}
	if !in.Quantity.IsPositive() {
		return nil, domain.ErrInvalidInput
	}

	product, err := uc.base.products.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NewEntityNotFound("product")
	}
	unit, err := uc.base.units.GetByID(in.UnitID)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, domain.NewEntityNotFound("unit")
	}
	for _, invID := range []string{in.SourceInventoryID, in.TargetInventoryID} {
		inv, err := uc.base.inventories.GetByID(invID)
		if err != nil {
			return nil, err
		}
		if inv == nil {
			return nil, domain.NewEntityNotFound("inventory")
		}
		ok, err := uc.base.resolver.CheckAccess(userID, role, invID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("no administras esta bodega: %w", domain.ErrForbidden)
		}
	}

	av, err := uc.base.movements.Availability(ctx, in.ProductID, in.SourceInventoryID, in.UnitID)
	if err != nil {
		return nil, err
	}
	if av.RecordCount == 0 {
		return nil, domain.NewEntityNotFound("stock")
	}
	available := ClampAvailable(av.TotalIn.Sub(av.TotalOut))
	if available.LessThan(in.Quantity) {
		return nil, domain.NewStockShortage(available, in.Quantity, unit.Name)
	}

	now := time.Now()
	transfer := &entity.StockTransfer{
		ProductID:         in.ProductID,
		UnitID:            in.UnitID,
		SourceInventoryID: in.SourceInventoryID,
		TargetInventoryID: in.TargetInventoryID,
		Quantity:          in.Quantity,
		Status:            entity.TransferPending,
		TransferredBy:     userID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	err = uc.txRunner.RunTransfer(ctx, func(
		movRepo repository.StockMovementRepository,
		transferRepo repository.StockTransferRepository,
	) error {
		outMov := &entity.StockMovement{
			ProductID:   in.ProductID,
			InventoryID: in.SourceInventoryID,
			UnitID:      in.UnitID,
			Quantity:    in.Quantity,
			Direction:   entity.DirectionOut,
			Method:      entity.MethodTransfer,
			CreatedAt:   now,
		}
		if err := movRepo.Create(outMov); err != nil {
			return err
		}
		inMov := &entity.StockMovement{
			ProductID:   in.ProductID,
			InventoryID: in.TargetInventoryID,
			UnitID:      in.UnitID,
			Quantity:    in.Quantity,
			Direction:   entity.DirectionIn,
			Method:      entity.MethodTransfer,
			CreatedAt:   now,
		}
		if err := movRepo.Create(inMov); err != nil {
			return err
		}
		transfer.MovementID = outMov.ID
		return transferRepo.Create(transfer)
	})
	if err != nil {
		return nil, err
	}
	return toTransferResponse(transfer), nil
}

// UpdateTransferStatus cambia el estado del traslado. CompletedAt se fija una
// sola vez, en la transición a completed; un traslado ya completado o cancelado
// no admite más cambios.
func (uc *TransferUseCase) UpdateTransferStatus(ctx context.Context, userID, role, transferID, status string) (*dto.TransferResponse, error) {
	if role != entity.RoleAdmin && role != entity.RoleSuperAdmin {
		return nil, domain.ErrForbidden
	}
	if !entity.ValidTransferStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	transfer, err := uc.transfers.GetByID(transferID)
	if err != nil {
		return nil, err
	}
	if transfer == nil {
		return nil, domain.NewEntityNotFound("transfer")
	}
	okSource, err := uc.base.resolver.CheckAccess(userID, role, transfer.SourceInventoryID)
	if err != nil {
		return nil, err
	}
	okTarget, err := uc.base.resolver.CheckAccess(userID, role, transfer.TargetInventoryID)
	if err != nil {
		return nil, err
	}
	if !okSource && !okTarget {
		return nil, fmt.Errorf("no administras esta bodega: %w", domain.ErrForbidden)
	}
	if transfer.Status == entity.TransferCompleted || transfer.Status == entity.TransferCancelled {
		return nil, domain.ErrConflict
	}

	var receivedBy *string
	var completedAt *time.Time
	if status == entity.TransferCompleted {
		now := time.Now()
		receivedBy = &userID
		completedAt = &now
	}
	if err := uc.transfers.UpdateStatus(transferID, status, receivedBy, completedAt); err != nil {
		return nil, err
	}
	transfer.Status = status
	transfer.ReceivedBy = receivedBy
	transfer.CompletedAt = completedAt
	return toTransferResponse(transfer), nil
}

// ListTransfers lista traslados visibles dentro del scope del usuario.
func (uc *TransferUseCase) ListTransfers(ctx context.Context, userID, role string, page dto.PageRequest) ([]dto.TransferResponse, error) {
	scope, err := uc.base.resolver.Resolve(userID, role)
	if err != nil {
		return nil, err
	}
	if scope.Empty() {
		return []dto.TransferResponse{}, nil
	}
	var ids []string
	if !scope.Unrestricted {
		ids = scope.InventoryIDs
	}
	list, err := uc.transfers.List(ids, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TransferResponse, 0, len(list))
	for _, t := range list {
		out = append(out, *toTransferResponse(t))
	}
	return out, nil
}

func toTransferResponse(t *entity.StockTransfer) *dto.TransferResponse {
	return &dto.TransferResponse{
		ID:                t.ID,
		MovementID:        t.MovementID,
		ProductID:         t.ProductID,
		UnitID:            t.UnitID,
		SourceInventoryID: t.SourceInventoryID,
		TargetInventoryID: t.TargetInventoryID,
		Quantity:          t.Quantity,
		Status:            t.Status,
		TransferredBy:     t.TransferredBy,
		ReceivedBy:        t.ReceivedBy,
		CompletedAt:       t.CompletedAt,
		CreatedAt:         t.CreatedAt,
	}
}
