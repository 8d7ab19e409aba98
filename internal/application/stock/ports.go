package stock

import (
	"context"

	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

// TransferTxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Un traslado escribe dos movimientos y la fila
// del traslado; o se persisten los tres o ninguno.
type TransferTxRunner interface {
	RunTransfer(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		transferRepo repository.StockTransferRepository,
	) error) error
}
