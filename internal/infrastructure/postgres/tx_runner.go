package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Pedidos-api/internal/application/orders"
	"github.com/jhoicas/Pedidos-api/internal/application/stock"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

// Ensure TxRunner implements orders.TxRunner and stock.TransferTxRunner.
var _ orders.TxRunner = (*TxRunner)(nil)
var _ stock.TransferTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción para la creación de pedidos, ejecuta fn con repos
// y locker atados a la tx y hace Commit o Rollback. El pedido y su movimiento
// "out" se confirman juntos o se revierten juntos.
func (r *TxRunner) Run(ctx context.Context, fn func(
	orderRepo repository.OrderRepository,
	movRepo repository.StockMovementRepository,
	locker orders.KeyLocker,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewOrderRepository(tx), NewStockMovementRepository(tx), &txKeyLocker{q: tx}); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunTransfer inicia una transacción para traslados: dos movimientos más la
// fila del traslado, todo o nada.
func (r *TxRunner) RunTransfer(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	transferRepo repository.StockTransferRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewStockMovementRepository(tx), NewStockTransferRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// txKeyLocker toma un advisory lock transaccional sobre la clave
// (producto, bodega, unidad). El libro no tiene una fila única que bloquear
// con SELECT FOR UPDATE; el advisory lock serializa los pedidos concurrentes
// sobre la misma clave y se libera solo con el Commit/Rollback de la tx.
type txKeyLocker struct {
	q Querier
}

func (l *txKeyLocker) LockStockKey(ctx context.Context, productID, inventoryID, unitID string) error {
	key := productID + "|" + inventoryID + "|" + unitID
	if _, err := l.q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, key); err != nil {
		return fmt.Errorf("lock stock key: %w", err)
	}
	return nil
}
