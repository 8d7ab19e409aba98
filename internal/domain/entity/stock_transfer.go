package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de un traslado entre bodegas.
const (
	TransferPending   = "pending"
	TransferInTransit = "in_transit"
	TransferCompleted = "completed"
	TransferCancelled = "cancelled"
)

// StockTransfer referencia el movimiento de salida que originó el traslado.
// Invariante: SourceInventoryID != TargetInventoryID (validado en el caso de uso
// y reforzado con CHECK en la tabla). CompletedAt se fija exactamente una vez,
// al pasar a completed.
type StockTransfer struct {
	ID                string
	MovementID        string // movimiento "out" en la bodega origen
	ProductID         string
	UnitID            string
	SourceInventoryID string
	TargetInventoryID string
	Quantity          decimal.Decimal
	Status            string
	TransferredBy     string
	ReceivedBy        *string
	CompletedAt       *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ValidTransferStatus indica si s es un estado de traslado reconocido.
func ValidTransferStatus(s string) bool {
	switch s {
	case TransferPending, TransferInTransit, TransferCompleted, TransferCancelled:
		return true
	}
	return false
}
