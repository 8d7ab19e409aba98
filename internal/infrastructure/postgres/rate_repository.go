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

var _ repository.RateRepository = (*RateRepo)(nil)

// RateRepo adaptador de tarifas producto-unidad sobre PostgreSQL. La tabla
// lleva UNIQUE (product_id, unit_id).
type RateRepo struct {
	q Querier
}

func NewRateRepository(q Querier) *RateRepo {
	return &RateRepo{q: q}
}

const rateColumns = `id, product_id, unit_id, rate, created_at, updated_at`

func scanRate(row pgx.Row) (*entity.ProductUnitRate, error) {
	var t entity.ProductUnitRate
	err := row.Scan(&t.ID, &t.ProductID, &t.UnitID, &t.Rate, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *RateRepo) Create(rate *entity.ProductUnitRate) error {
	if rate.ID == "" {
		rate.ID = uuid.New().String()
	}
	query := `
		INSERT INTO product_unit_rates (id, product_id, unit_id, rate, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		rate.ID, rate.ProductID, rate.UnitID, rate.Rate, rate.CreatedAt, rate.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("create rate: %w", err)
	}
	return nil
}

func (r *RateRepo) GetByID(id string) (*entity.ProductUnitRate, error) {
	t, err := scanRate(r.q.QueryRow(context.Background(),
		`SELECT `+rateColumns+` FROM product_unit_rates WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get rate: %w", err)
	}
	return t, nil
}

// GetByProductAndUnit busca la tarifa de la combinación; (nil, nil) si no hay.
func (r *RateRepo) GetByProductAndUnit(productID, unitID string) (*entity.ProductUnitRate, error) {
	t, err := scanRate(r.q.QueryRow(context.Background(),
		`SELECT `+rateColumns+` FROM product_unit_rates WHERE product_id = $1 AND unit_id = $2`,
		productID, unitID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get rate by product and unit: %w", err)
	}
	return t, nil
}

func (r *RateRepo) List(limit, offset int) ([]*entity.ProductUnitRate, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+rateColumns+` FROM product_unit_rates ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list rates: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductUnitRate
	for rows.Next() {
		t, err := scanRate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan rate: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func (r *RateRepo) Update(rate *entity.ProductUnitRate) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE product_unit_rates SET rate = $2, updated_at = $3 WHERE id = $1`,
		rate.ID, rate.Rate, time.Now())
	if err != nil {
		return fmt.Errorf("update rate: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *RateRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM product_unit_rates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete rate: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
