// Package usecase contiene los casos de uso CRUD planos del catálogo:
// categorías, unidades, productos, bodegas, clientes, tarifas, conductores y
// entregas. Ninguno toca el libro de stock.
package usecase

import (
	"time"

	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

// CategoryUseCase CRUD de categorías.
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

func (uc *CategoryUseCase) Create(in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	now := time.Now()
	c := &entity.Category{Name: in.Name, Description: in.Description, CreatedAt: now, UpdatedAt: now}
	if err := uc.repo.Create(c); err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

func (uc *CategoryUseCase) GetByID(id string) (*dto.CategoryResponse, error) {
	c, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.NewEntityNotFound("category")
	}
	return toCategoryResponse(c), nil
}

func (uc *CategoryUseCase) List(limit, offset int) ([]dto.CategoryResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCategoryResponse(c))
	}
	return out, nil
}

func (uc *CategoryUseCase) Update(id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	c, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.NewEntityNotFound("category")
	}
	if in.Name != nil {
		c.Name = *in.Name
	}
	if in.Description != nil {
		c.Description = *in.Description
	}
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(c); err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

func (uc *CategoryUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// UnitUseCase CRUD de unidades de medida. Cada unidad es un libro independiente;
// borrar una unidad con movimientos falla por FK.
type UnitUseCase struct {
	repo repository.UnitRepository
}

// NewUnitUseCase construye el caso de uso.
func NewUnitUseCase(repo repository.UnitRepository) *UnitUseCase {
	return &UnitUseCase{repo: repo}
}

func (uc *UnitUseCase) Create(in dto.CreateUnitRequest) (*dto.UnitResponse, error) {
	now := time.Now()
	u := &entity.Unit{Name: in.Name, CreatedAt: now, UpdatedAt: now}
	if err := uc.repo.Create(u); err != nil {
		return nil, err
	}
	return &dto.UnitResponse{ID: u.ID, Name: u.Name, CreatedAt: u.CreatedAt}, nil
}

func (uc *UnitUseCase) List(limit, offset int) ([]dto.UnitResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UnitResponse, 0, len(list))
	for _, u := range list {
		out = append(out, dto.UnitResponse{ID: u.ID, Name: u.Name, CreatedAt: u.CreatedAt})
	}
	return out, nil
}

func (uc *UnitUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

// ProductUseCase CRUD de productos.
type ProductUseCase struct {
	repo       repository.ProductRepository
	categories repository.CategoryRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, categories repository.CategoryRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, categories: categories}
}

func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	cat, err := uc.categories.GetByID(in.CategoryID)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, domain.NewEntityNotFound("category")
	}
	now := time.Now()
	p := &entity.Product{CategoryID: in.CategoryID, Name: in.Name, Description: in.Description, CreatedAt: now, UpdatedAt: now}
	if err := uc.repo.Create(p); err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NewEntityNotFound("product")
	}
	return toProductResponse(p), nil
}

func (uc *ProductUseCase) List(limit, offset int) ([]dto.ProductResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toProductResponse(p))
	}
	return out, nil
}

func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NewEntityNotFound("product")
	}
	if in.CategoryID != nil {
		cat, err := uc.categories.GetByID(*in.CategoryID)
		if err != nil {
			return nil, err
		}
		if cat == nil {
			return nil, domain.NewEntityNotFound("category")
		}
		p.CategoryID = *in.CategoryID
	}
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(p); err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

func (uc *ProductUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		CategoryID:  p.CategoryID,
		Name:        p.Name,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// InventoryUseCase CRUD de bodegas.
type InventoryUseCase struct {
	repo repository.InventoryRepository
}

// NewInventoryUseCase construye el caso de uso.
func NewInventoryUseCase(repo repository.InventoryRepository) *InventoryUseCase {
	return &InventoryUseCase{repo: repo}
}

func (uc *InventoryUseCase) Create(in dto.CreateInventoryRequest) (*dto.InventoryResponse, error) {
	now := time.Now()
	inv := &entity.Inventory{Name: in.Name, Location: in.Location, CreatedAt: now, UpdatedAt: now}
	if err := uc.repo.Create(inv); err != nil {
		return nil, err
	}
	return toInventoryResponse(inv), nil
}

func (uc *InventoryUseCase) GetByID(id string) (*dto.InventoryResponse, error) {
	inv, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.NewEntityNotFound("inventory")
	}
	return toInventoryResponse(inv), nil
}

func (uc *InventoryUseCase) List(limit, offset int) ([]dto.InventoryResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InventoryResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, *toInventoryResponse(inv))
	}
	return out, nil
}

func (uc *InventoryUseCase) Update(id string, in dto.UpdateInventoryRequest) (*dto.InventoryResponse, error) {
	inv, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.NewEntityNotFound("inventory")
	}
	if in.Name != nil {
		inv.Name = *in.Name
	}
	if in.Location != nil {
		inv.Location = *in.Location
	}
	inv.UpdatedAt = time.Now()
	if err := uc.repo.Update(inv); err != nil {
		return nil, err
	}
	return toInventoryResponse(inv), nil
}

func (uc *InventoryUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func toInventoryResponse(inv *entity.Inventory) *dto.InventoryResponse {
	return &dto.InventoryResponse{
		ID:        inv.ID,
		Name:      inv.Name,
		Location:  inv.Location,
		CreatedAt: inv.CreatedAt,
		UpdatedAt: inv.UpdatedAt,
	}
}
