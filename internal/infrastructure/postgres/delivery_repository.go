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

var (
	_ repository.DriverRepository   = (*DriverRepo)(nil)
	_ repository.DeliveryRepository = (*DeliveryRepo)(nil)
)

// DriverRepo adaptador de conductores sobre PostgreSQL.
type DriverRepo struct {
	q Querier
}

func NewDriverRepository(q Querier) *DriverRepo {
	return &DriverRepo{q: q}
}

func (r *DriverRepo) Create(driver *entity.Driver) error {
	if driver.ID == "" {
		driver.ID = uuid.New().String()
	}
	query := `
		INSERT INTO drivers (id, name, phone, license, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		driver.ID, driver.Name, driver.Phone, driver.License, driver.CreatedAt, driver.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create driver: %w", err)
	}
	return nil
}

func (r *DriverRepo) GetByID(id string) (*entity.Driver, error) {
	var d entity.Driver
	err := r.q.QueryRow(context.Background(),
		`SELECT id, name, phone, license, created_at, updated_at FROM drivers WHERE id = $1`, id,
	).Scan(&d.ID, &d.Name, &d.Phone, &d.License, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get driver: %w", err)
	}
	return &d, nil
}

func (r *DriverRepo) List(limit, offset int) ([]*entity.Driver, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, name, phone, license, created_at, updated_at
		 FROM drivers ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list drivers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Driver
	for rows.Next() {
		var d entity.Driver
		if err := rows.Scan(&d.ID, &d.Name, &d.Phone, &d.License, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan driver: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

func (r *DriverRepo) Update(driver *entity.Driver) error {
	query := `
		UPDATE drivers SET name = $2, phone = $3, license = $4, updated_at = $5 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		driver.ID, driver.Name, driver.Phone, driver.License, time.Now())
	if err != nil {
		return fmt.Errorf("update driver: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *DriverRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM drivers WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete driver: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeliveryRepo adaptador de entregas sobre PostgreSQL.
type DeliveryRepo struct {
	q Querier
}

func NewDeliveryRepository(q Querier) *DeliveryRepo {
	return &DeliveryRepo{q: q}
}

func (r *DeliveryRepo) Create(delivery *entity.Delivery) error {
	if delivery.ID == "" {
		delivery.ID = uuid.New().String()
	}
	query := `
		INSERT INTO deliveries (id, order_id, driver_id, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		delivery.ID, delivery.OrderID, delivery.DriverID, delivery.Status, delivery.Notes,
		delivery.CreatedAt, delivery.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("create delivery: %w", err)
	}
	return nil
}

func (r *DeliveryRepo) GetByID(id string) (*entity.Delivery, error) {
	var d entity.Delivery
	err := r.q.QueryRow(context.Background(),
		`SELECT id, order_id, driver_id, status, notes, created_at, updated_at
		 FROM deliveries WHERE id = $1`, id,
	).Scan(&d.ID, &d.OrderID, &d.DriverID, &d.Status, &d.Notes, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get delivery: %w", err)
	}
	return &d, nil
}

func (r *DeliveryRepo) List(limit, offset int) ([]*entity.Delivery, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, order_id, driver_id, status, notes, created_at, updated_at
		 FROM deliveries ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}
	defer rows.Close()
	var list []*entity.Delivery
	for rows.Next() {
		var d entity.Delivery
		if err := rows.Scan(&d.ID, &d.OrderID, &d.DriverID, &d.Status, &d.Notes,
			&d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan delivery: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

func (r *DeliveryRepo) UpdateStatus(id, status string) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE deliveries SET status = $2, updated_at = $3 WHERE id = $1`,
		id, status, time.Now())
	if err != nil {
		return fmt.Errorf("update delivery status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *DeliveryRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM deliveries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete delivery: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
