package orders

import (
	"context"

	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

// KeyLocker serializa las transacciones que compiten por la misma clave
// (producto, bodega, unidad). El libro no tiene una fila única que bloquear con
// SELECT FOR UPDATE, así que el adaptador usa un advisory lock transaccional:
// dos pedidos concurrentes sobre la misma clave no pueden pasar ambos la
// verificación de disponibilidad contra stock que solo alcanza para uno.
type KeyLocker interface {
	LockStockKey(ctx context.Context, productID, inventoryID, unitID string) error
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios y locker atados a esa tx. El pedido y su movimiento "out"
// compensatorio se confirman juntos o se revierten juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		movRepo repository.StockMovementRepository,
		locker KeyLocker,
	) error) error
}
