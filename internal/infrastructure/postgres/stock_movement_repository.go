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
	"github.com/shopspring/decimal"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo adaptador del libro de stock sobre PostgreSQL (usable con
// pool o tx). El libro es append-only: este adaptador no expone UPDATE ni DELETE.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento del libro.
func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (id, product_id, inventory_id, unit_id, quantity, direction, method, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.ProductID, movement.InventoryID, movement.UnitID,
		movement.Quantity, movement.Direction, movement.Method, movement.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *StockMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	query := `
		SELECT id, product_id, inventory_id, unit_id, quantity, direction, method, created_at
		FROM stock_movements WHERE id = $1`
	var m entity.StockMovement
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.ProductID, &m.InventoryID, &m.UnitID, &m.Quantity, &m.Direction, &m.Method, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock movement: %w", err)
	}
	return &m, nil
}

// ListByInventory lista movimientos de una bodega en un rango de fechas.
func (r *StockMovementRepo) ListByInventory(inventoryID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, product_id, inventory_id, unit_id, quantity, direction, method, created_at
		FROM stock_movements WHERE inventory_id = $1`
	args := []any{inventoryID}
	pos := 2
	if from != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.ProductID, &m.InventoryID, &m.UnitID,
			&m.Quantity, &m.Direction, &m.Method, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// Aggregate agrupa el libro por (producto, bodega, unidad) con sumas
// condicionales por dirección. Disponible = entradas - salidas, sin clamp.
// El orden por nombres mantiene el resultado estable entre llamadas.
func (r *StockMovementRepo) Aggregate(ctx context.Context, filter repository.StockFilter) ([]repository.AggregatedStockRow, error) {
	query := `
	SELECT
	    sm.product_id,
	    sm.inventory_id,
	    sm.unit_id,
	    p.name AS product_name,
	    i.name AS inventory_name,
	    u.name AS unit_name,
	    COALESCE(SUM(CASE WHEN sm.direction = 'in'  THEN sm.quantity ELSE 0 END), 0) AS total_in,
	    COALESCE(SUM(CASE WHEN sm.direction = 'out' THEN sm.quantity ELSE 0 END), 0) AS total_out
	FROM stock_movements sm
	JOIN products    p ON p.id = sm.product_id
	JOIN inventories i ON i.id = sm.inventory_id
	JOIN units       u ON u.id = sm.unit_id
	WHERE 1=1`
	var args []any
	pos := 1
	if filter.ProductID != "" {
		query += fmt.Sprintf(" AND sm.product_id = $%d", pos)
		args = append(args, filter.ProductID)
		pos++
	}
	if filter.InventoryID != "" {
		query += fmt.Sprintf(" AND sm.inventory_id = $%d", pos)
		args = append(args, filter.InventoryID)
		pos++
	}
	if filter.InventoryIDs != nil {
		query += fmt.Sprintf(" AND sm.inventory_id = ANY($%d)", pos)
		args = append(args, filter.InventoryIDs)
		pos++
	}
	query += `
	GROUP BY sm.product_id, sm.inventory_id, sm.unit_id, p.name, i.name, u.name
	ORDER BY p.name, i.name, u.name`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("aggregate stock: %w", err)
	}
	defer rows.Close()

	var result []repository.AggregatedStockRow
	for rows.Next() {
		var row repository.AggregatedStockRow
		if err := rows.Scan(&row.ProductID, &row.InventoryID, &row.UnitID,
			&row.ProductName, &row.InventoryName, &row.UnitName,
			&row.TotalIn, &row.TotalOut); err != nil {
			return nil, fmt.Errorf("scan aggregate: %w", err)
		}
		row.Available = row.TotalIn.Sub(row.TotalOut)
		result = append(result, row)
	}
	return result, rows.Err()
}

// Availability devuelve las sumas crudas y el número de filas de una sola clave.
// COUNT distingue "nunca abastecido" (0) de "abastecido y consumido todo".
func (r *StockMovementRepo) Availability(ctx context.Context, productID, inventoryID, unitID string) (*repository.Availability, error) {
	query := `
	SELECT
	    COALESCE(SUM(CASE WHEN direction = 'in'  THEN quantity ELSE 0 END), 0) AS total_in,
	    COALESCE(SUM(CASE WHEN direction = 'out' THEN quantity ELSE 0 END), 0) AS total_out,
	    COUNT(*)                                                              AS record_count,
	    (SELECT name FROM units WHERE id = $3)                                AS unit_name
	FROM stock_movements
	WHERE product_id = $1 AND inventory_id = $2 AND unit_id = $3`

	var av repository.Availability
	var unitName *string
	err := r.q.QueryRow(ctx, query, productID, inventoryID, unitID).Scan(
		&av.TotalIn, &av.TotalOut, &av.RecordCount, &unitName,
	)
	if err != nil {
		return nil, fmt.Errorf("stock availability: %w", err)
	}
	if unitName != nil {
		av.UnitName = *unitName
	}
	return &av, nil
}

// LowStock devuelve las claves con disponible estrictamente menor al umbral,
// ascendente por disponible y luego por nombre de unidad.
func (r *StockMovementRepo) LowStock(ctx context.Context, threshold decimal.Decimal, inventoryIDs []string) ([]repository.AggregatedStockRow, error) {
	query := `
	SELECT
	    sm.product_id,
	    sm.inventory_id,
	    sm.unit_id,
	    p.name AS product_name,
	    i.name AS inventory_name,
	    u.name AS unit_name,
	    COALESCE(SUM(CASE WHEN sm.direction = 'in'  THEN sm.quantity ELSE 0 END), 0) AS total_in,
	    COALESCE(SUM(CASE WHEN sm.direction = 'out' THEN sm.quantity ELSE 0 END), 0) AS total_out
	FROM stock_movements sm
	JOIN products    p ON p.id = sm.product_id
	JOIN inventories i ON i.id = sm.inventory_id
	JOIN units       u ON u.id = sm.unit_id
	WHERE 1=1`
	args := []any{}
	pos := 1
	if inventoryIDs != nil {
		query += fmt.Sprintf(" AND sm.inventory_id = ANY($%d)", pos)
		args = append(args, inventoryIDs)
		pos++
	}
	query += fmt.Sprintf(`
	GROUP BY sm.product_id, sm.inventory_id, sm.unit_id, p.name, i.name, u.name
	HAVING COALESCE(SUM(CASE WHEN sm.direction = 'in' THEN sm.quantity ELSE 0 END), 0)
	     - COALESCE(SUM(CASE WHEN sm.direction = 'out' THEN sm.quantity ELSE 0 END), 0) < $%d
	ORDER BY COALESCE(SUM(CASE WHEN sm.direction = 'in' THEN sm.quantity ELSE 0 END), 0)
	       - COALESCE(SUM(CASE WHEN sm.direction = 'out' THEN sm.quantity ELSE 0 END), 0) ASC,
	         u.name ASC`, pos)
	args = append(args, threshold)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("low stock: %w", err)
	}
	defer rows.Close()

	var result []repository.AggregatedStockRow
	for rows.Next() {
		var row repository.AggregatedStockRow
		if err := rows.Scan(&row.ProductID, &row.InventoryID, &row.UnitID,
			&row.ProductName, &row.InventoryName, &row.UnitName,
			&row.TotalIn, &row.TotalOut); err != nil {
			return nil, fmt.Errorf("scan low stock: %w", err)
		}
		row.Available = row.TotalIn.Sub(row.TotalOut)
		result = append(result, row)
	}
	return result, rows.Err()
}
