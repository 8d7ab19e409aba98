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

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo adaptador de pedidos sobre PostgreSQL (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, customer_id, product_id, inventory_id, unit_id, verified_by,
	quantity, status, payment_method, order_date, total_amount, created_at, updated_at`

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	err := row.Scan(&o.ID, &o.CustomerID, &o.ProductID, &o.InventoryID, &o.UnitID,
		&o.VerifiedBy, &o.Quantity, &o.Status, &o.PaymentMethod, &o.OrderDate,
		&o.TotalAmount, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Create persiste un pedido nuevo.
func (r *OrderRepo) Create(order *entity.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	query := `
		INSERT INTO orders (id, customer_id, product_id, inventory_id, unit_id, verified_by,
			quantity, status, payment_method, order_date, total_amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.CustomerID, order.ProductID, order.InventoryID, order.UnitID,
		order.VerifiedBy, order.Quantity, order.Status, order.PaymentMethod,
		order.OrderDate, order.TotalAmount, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

// GetByID obtiene un pedido por ID. Devuelve (nil, nil) si no existe.
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	o, err := scanOrder(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

// List devuelve pedidos filtrados, más recientes primero.
func (r *OrderRepo) List(filter repository.OrderFilter) ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE 1=1`
	var args []any
	pos := 1
	if filter.InventoryIDs != nil {
		query += fmt.Sprintf(" AND inventory_id = ANY($%d)", pos)
		args = append(args, filter.InventoryIDs)
		pos++
	}
	if filter.CustomerID != "" {
		query += fmt.Sprintf(" AND customer_id = $%d", pos)
		args = append(args, filter.CustomerID)
		pos++
	}
	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", pos)
		args = append(args, filter.Status)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY order_date DESC, created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// Update reescribe los campos mutables del pedido.
func (r *OrderRepo) Update(order *entity.Order) error {
	query := `
		UPDATE orders
		SET customer_id = $2, product_id = $3, inventory_id = $4, unit_id = $5,
		    quantity = $6, status = $7, payment_method = $8, order_date = $9,
		    total_amount = $10, updated_at = $11
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		order.ID, order.CustomerID, order.ProductID, order.InventoryID, order.UnitID,
		order.Quantity, order.Status, order.PaymentMethod, order.OrderDate,
		order.TotalAmount, time.Now(),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStatus cambia solo el estado del pedido.
func (r *OrderRepo) UpdateStatus(id, status string) error {
	query := `UPDATE orders SET status = $2, updated_at = $3 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, status, time.Now())
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el pedido. No revierte el movimiento de stock asociado.
func (r *OrderRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SalesByProduct agrupa ventas de una bodega por producto+unidad dentro del
// rango, excluyendo pedidos cancelados.
func (r *OrderRepo) SalesByProduct(ctx context.Context, inventoryID string, from, to time.Time) ([]repository.ProductSales, error) {
	query := `
	SELECT
	    o.product_id,
	    p.name AS product_name,
	    o.unit_id,
	    u.name AS unit_name,
	    COALESCE(SUM(o.quantity), 0)     AS total_quantity,
	    COALESCE(SUM(o.total_amount), 0) AS total_revenue,
	    COUNT(*)                         AS order_count
	FROM orders o
	JOIN products p ON p.id = o.product_id
	JOIN units    u ON u.id = o.unit_id
	WHERE o.inventory_id = $1
	  AND o.status <> 'cancelled'
	  AND o.order_date >= $2
	  AND o.order_date <= $3
	GROUP BY o.product_id, p.name, o.unit_id, u.name
	ORDER BY total_revenue DESC, p.name ASC`

	rows, err := r.q.Query(ctx, query, inventoryID, from, to)
	if err != nil {
		return nil, fmt.Errorf("sales by product: %w", err)
	}
	defer rows.Close()
	var result []repository.ProductSales
	for rows.Next() {
		var s repository.ProductSales
		if err := rows.Scan(&s.ProductID, &s.ProductName, &s.UnitID, &s.UnitName,
			&s.TotalQuantity, &s.TotalRevenue, &s.OrderCount); err != nil {
			return nil, fmt.Errorf("scan product sales: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}
