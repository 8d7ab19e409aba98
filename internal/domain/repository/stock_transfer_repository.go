package repository

import (
	"time"

	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

// StockTransferRepository define el puerto de persistencia para traslados entre bodegas.
type StockTransferRepository interface {
	Create(transfer *entity.StockTransfer) error
	GetByID(id string) (*entity.StockTransfer, error)
	List(inventoryIDs []string, limit, offset int) ([]*entity.StockTransfer, error)
	// UpdateStatus cambia el estado; completedAt solo se pasa en la transición a completed.
	UpdateStatus(id, status string, receivedBy *string, completedAt *time.Time) error
}
