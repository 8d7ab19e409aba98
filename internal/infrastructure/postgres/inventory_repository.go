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

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo adaptador de bodegas sobre PostgreSQL.
type InventoryRepo struct {
	q Querier
}

func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

func (r *InventoryRepo) Create(inventory *entity.Inventory) error {
	if inventory.ID == "" {
		inventory.ID = uuid.New().String()
	}
	query := `
		INSERT INTO inventories (id, name, location, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		inventory.ID, inventory.Name, inventory.Location, inventory.CreatedAt, inventory.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create inventory: %w", err)
	}
	return nil
}

func (r *InventoryRepo) GetByID(id string) (*entity.Inventory, error) {
	var i entity.Inventory
	err := r.q.QueryRow(context.Background(),
		`SELECT id, name, location, created_at, updated_at FROM inventories WHERE id = $1`, id,
	).Scan(&i.ID, &i.Name, &i.Location, &i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	return &i, nil
}

func (r *InventoryRepo) List(limit, offset int) ([]*entity.Inventory, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, name, location, created_at, updated_at
		 FROM inventories ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list inventories: %w", err)
	}
	defer rows.Close()
	return r.collect(rows)
}

// ListAll devuelve todas las bodegas sin paginar; lo usa el reporte de resumen
// cuando el scope es irrestricto.
func (r *InventoryRepo) ListAll() ([]*entity.Inventory, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, name, location, created_at, updated_at FROM inventories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list all inventories: %w", err)
	}
	defer rows.Close()
	return r.collect(rows)
}

func (r *InventoryRepo) collect(rows pgx.Rows) ([]*entity.Inventory, error) {
	var list []*entity.Inventory
	for rows.Next() {
		var i entity.Inventory
		if err := rows.Scan(&i.ID, &i.Name, &i.Location, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		list = append(list, &i)
	}
	return list, rows.Err()
}

func (r *InventoryRepo) Update(inventory *entity.Inventory) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE inventories SET name = $2, location = $3, updated_at = $4 WHERE id = $1`,
		inventory.ID, inventory.Name, inventory.Location, time.Now())
	if err != nil {
		return fmt.Errorf("update inventory: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *InventoryRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM inventories WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete inventory: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
