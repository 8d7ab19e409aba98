package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

var _ repository.StockTransferRepository = (*StockTransferRepo)(nil)

// StockTransferRepo adaptador de traslados entre bodegas sobre PostgreSQL.
type StockTransferRepo struct {
	q Querier
}

func NewStockTransferRepository(q Querier) *StockTransferRepo {
	return &StockTransferRepo{q: q}
}

const transferColumns = `id, movement_id, product_id, unit_id, source_inventory_id,
	target_inventory_id, quantity, status, transferred_by, received_by, completed_at,
	created_at, updated_at`

func scanTransfer(row pgx.Row) (*entity.StockTransfer, error) {
	var t entity.StockTransfer
	err := row.Scan(&t.ID, &t.MovementID, &t.ProductID, &t.UnitID,
		&t.SourceInventoryID, &t.TargetInventoryID, &t.Quantity, &t.Status,
		&t.TransferredBy, &t.ReceivedBy, &t.CompletedAt, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create persiste un traslado. El CHECK source <> target de la tabla respalda
// la validación del caso de uso.
func (r *StockTransferRepo) Create(transfer *entity.StockTransfer) error {
	if transfer.ID == "" {
		transfer.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_transfers (id, movement_id, product_id, unit_id,
			source_inventory_id, target_inventory_id, quantity, status,
			transferred_by, received_by, completed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		transfer.ID, transfer.MovementID, transfer.ProductID, transfer.UnitID,
		transfer.SourceInventoryID, transfer.TargetInventoryID, transfer.Quantity,
		transfer.Status, transfer.TransferredBy, transfer.ReceivedBy,
		transfer.CompletedAt, transfer.CreatedAt, transfer.UpdatedAt,
	)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrInvalidTransfer
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("create transfer: %w", err)
	}
	return nil
}

// GetByID obtiene un traslado por ID. Devuelve (nil, nil) si no existe.
func (r *StockTransferRepo) GetByID(id string) (*entity.StockTransfer, error) {
	query := `SELECT ` + transferColumns + ` FROM stock_transfers WHERE id = $1`
	t, err := scanTransfer(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer: %w", err)
	}
	return t, nil
}

// List devuelve traslados donde origen o destino cae dentro de las bodegas dadas.
// inventoryIDs nil = sin restricción.
func (r *StockTransferRepo) List(inventoryIDs []string, limit, offset int) ([]*entity.StockTransfer, error) {
	query := `SELECT ` + transferColumns + ` FROM stock_transfers WHERE 1=1`
	var args []any
	pos := 1
	if inventoryIDs != nil {
		query += fmt.Sprintf(" AND (source_inventory_id = ANY($%d) OR target_inventory_id = ANY($%d))", pos, pos)
		args = append(args, inventoryIDs)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockTransfer
	for rows.Next() {
		t, err := scanTransfer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// UpdateStatus cambia el estado del traslado. receivedBy y completedAt solo
// llegan no nulos en la transición a completed; COALESCE impide pisar un
// completed_at ya fijado.
func (r *StockTransferRepo) UpdateStatus(id, status string, receivedBy *string, completedAt *time.Time) error {
	query := `
		UPDATE stock_transfers
		SET status = $2,
		    received_by = COALESCE($3, received_by),
		    completed_at = COALESCE(completed_at, $4),
		    updated_at = $5
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, status, receivedBy, completedAt, time.Now())
	if err != nil {
		return fmt.Errorf("update transfer status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
