package usecase

import (
	"time"

	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

// RateUseCase tarifas producto-unidad: el precio base del cálculo de pedidos.
// La combinación (producto, unidad) es única.
type RateUseCase struct {
	repo     repository.RateRepository
	products repository.ProductRepository
	units    repository.UnitRepository
}

// NewRateUseCase construye el caso de uso.
func NewRateUseCase(repo repository.RateRepository, products repository.ProductRepository, units repository.UnitRepository) *RateUseCase {
	return &RateUseCase{repo: repo, products: products, units: units}
}

func (uc *RateUseCase) Create(in dto.CreateRateRequest) (*dto.RateResponse, error) {
	if !in.Rate.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	p, err := uc.products.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NewEntityNotFound("product")
	}
	u, err := uc.units.GetByID(in.UnitID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.NewEntityNotFound("unit")
	}
	existing, err := uc.repo.GetByProductAndUnit(in.ProductID, in.UnitID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	rate := &entity.ProductUnitRate{
		ProductID: in.ProductID,
		UnitID:    in.UnitID,
		Rate:      in.Rate,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(rate); err != nil {
		return nil, err
	}
	return toRateResponse(rate), nil
}

func (uc *RateUseCase) List(limit, offset int) ([]dto.RateResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RateResponse, 0, len(list))
	for _, r := range list {
		out = append(out, *toRateResponse(r))
	}
	return out, nil
}

func (uc *RateUseCase) Update(id string, in dto.UpdateRateRequest) (*dto.RateResponse, error) {
	if !in.Rate.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	rate, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rate == nil {
		return nil, domain.NewEntityNotFound("rate")
	}
	rate.Rate = in.Rate
	rate.UpdatedAt = time.Now()
	if err := uc.repo.Update(rate); err != nil {
		return nil, err
	}
	return toRateResponse(rate), nil
}

func (uc *RateUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func toRateResponse(r *entity.ProductUnitRate) *dto.RateResponse {
	return &dto.RateResponse{
		ID:        r.ID,
		ProductID: r.ProductID,
		UnitID:    r.UnitID,
		Rate:      r.Rate,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
