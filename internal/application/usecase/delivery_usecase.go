package usecase

import (
	"time"

	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

// DriverUseCase CRUD de conductores.
type DriverUseCase struct {
	repo repository.DriverRepository
}

// NewDriverUseCase construye el caso de uso.
func NewDriverUseCase(repo repository.DriverRepository) *DriverUseCase {
	return &DriverUseCase{repo: repo}
}

func (uc *DriverUseCase) Create(in dto.CreateDriverRequest) (*dto.DriverResponse, error) {
	now := time.Now()
	d := &entity.Driver{Name: in.Name, Phone: in.Phone, License: in.License, CreatedAt: now, UpdatedAt: now}
	if err := uc.repo.Create(d); err != nil {
		return nil, err
	}
	return toDriverResponse(d), nil
}

func (uc *DriverUseCase) List(limit, offset int) ([]dto.DriverResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DriverResponse, 0, len(list))
	for _, d := range list {
		out = append(out, *toDriverResponse(d))
	}
	return out, nil
}

func (uc *DriverUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func toDriverResponse(d *entity.Driver) *dto.DriverResponse {
	return &dto.DriverResponse{ID: d.ID, Name: d.Name, Phone: d.Phone, License: d.License, CreatedAt: d.CreatedAt}
}

// DeliveryUseCase asignación de pedidos a conductores.
type DeliveryUseCase struct {
	repo    repository.DeliveryRepository
	orders  repository.OrderRepository
	drivers repository.DriverRepository
}

// NewDeliveryUseCase construye el caso de uso.
func NewDeliveryUseCase(repo repository.DeliveryRepository, orders repository.OrderRepository, drivers repository.DriverRepository) *DeliveryUseCase {
	return &DeliveryUseCase{repo: repo, orders: orders, drivers: drivers}
}

func (uc *DeliveryUseCase) Create(in dto.CreateDeliveryRequest) (*dto.DeliveryResponse, error) {
	order, err := uc.orders.GetByID(in.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.NewEntityNotFound("order")
	}
	driver, err := uc.drivers.GetByID(in.DriverID)
	if err != nil {
		return nil, err
	}
	if driver == nil {
		return nil, domain.NewEntityNotFound("driver")
	}
	now := time.Now()
	d := &entity.Delivery{
		OrderID:   in.OrderID,
		DriverID:  in.DriverID,
		Status:    entity.DeliveryAssigned,
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(d); err != nil {
		return nil, err
	}
	return toDeliveryResponse(d), nil
}

func (uc *DeliveryUseCase) List(limit, offset int) ([]dto.DeliveryResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DeliveryResponse, 0, len(list))
	for _, d := range list {
		out = append(out, *toDeliveryResponse(d))
	}
	return out, nil
}

func (uc *DeliveryUseCase) UpdateStatus(id, status string) (*dto.DeliveryResponse, error) {
	if !entity.ValidDeliveryStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	d, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.NewEntityNotFound("delivery")
	}
	if err := uc.repo.UpdateStatus(id, status); err != nil {
		return nil, err
	}
	d.Status = status
	d.UpdatedAt = time.Now()
	return toDeliveryResponse(d), nil
}

func (uc *DeliveryUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func toDeliveryResponse(d *entity.Delivery) *dto.DeliveryResponse {
	return &dto.DeliveryResponse{
		ID:        d.ID,
		OrderID:   d.OrderID,
		DriverID:  d.DriverID,
		Status:    d.Status,
		Notes:     d.Notes,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}
