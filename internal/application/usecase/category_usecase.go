package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/Inventario-ai/internal/application/dto"
	"github.com/jhoicas/Inventario-ai/internal/application/inventory"
	"github.com/jhoicas/Inventario-ai/internal/application/validation"
	"github.com/jhoicas/Inventario-ai/internal/domain"
	"github.com/jhoicas/Inventario-ai/internal/domain/entity"
	"github.com/jhoicas/Inventario-ai/internal/domain/repository"
)

// CategoryUseCase casos de uso para categorías.
type CategoryUseCase struct {
	categories repository.CategoryRepository
	tx         inventory.TxRunner
}

// listInvalidator lo cumplen los repositorios que cachean el listado (cache.CategoryCache).
type listInvalidator interface {
	Invalidate(ctx context.Context)
}

// NewCategoryUseCase construye el caso de uso. tx se usa para el borrado.
func NewCategoryUseCase(categories repository.CategoryRepository, tx inventory.TxRunner) *CategoryUseCase {
	return &CategoryUseCase{categories: categories, tx: tx}
}

// List categorías ordenadas por nombre.
func (uc *CategoryUseCase) List(ctx context.Context, actor *entity.Profile) ([]dto.CategoryResponse, error) {
	if err := entity.Authorize(actor, entity.ReadRoles...); err != nil {
		return nil, err
	}
	list, err := uc.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCategoryResponse(c))
	}
	return out, nil
}

// Create nombre recortado; domain.ErrDuplicate si ya existe.
func (uc *CategoryUseCase) Create(ctx context.Context, actor *entity.Profile, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	if err := entity.Authorize(actor, entity.CategoryAdminRoles...); err != nil {
		return nil, err
	}
	if err := validation.Struct(&in); err != nil {
		return nil, err
	}
	c := &entity.Category{Name: in.Name, Description: deref(in.Description), CreatedBy: actor.ID}
	if err := uc.categories.Create(ctx, c); err != nil {
		return nil, err
	}
	res := toCategoryResponse(c)
	return &res, nil
}

// Update parche parcial de nombre y descripción.
func (uc *CategoryUseCase) Update(ctx context.Context, actor *entity.Profile, id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	if err := entity.Authorize(actor, entity.CategoryAdminRoles...); err != nil {
		return nil, err
	}
	if err := validation.Struct(&in); err != nil {
		return nil, err
	}
	if err := checkID(id); err != nil {
		return nil, err
	}
	c, err := uc.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		c.Name = *in.Name
	}
	if in.Description != nil {
		c.Description = *in.Description
	}
	if err := uc.categories.Update(ctx, c); err != nil {
		return nil, err
	}
	res := toCategoryResponse(c)
	return &res, nil
}

// Delete falla con domain.ErrConflict si algún ítem referencia la categoría.
// Conteo y borrado corren en la misma transacción; tras el commit se descarta el listado cacheado.
func (uc *CategoryUseCase) Delete(ctx context.Context, actor *entity.Profile, id string) error {
	if err := entity.Authorize(actor, entity.CategoryAdminRoles...); err != nil {
		return err
	}
	if err := checkID(id); err != nil {
		return err
	}
	err := uc.tx.Run(ctx, func(items repository.ItemRepository, categories repository.CategoryRepository) error {
		n, err := items.CountByCategory(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("%w: la categoría tiene ítems asociados y no se puede eliminar", domain.ErrConflict)
		}
		return categories.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	if c, ok := uc.categories.(listInvalidator); ok {
		c.Invalidate(ctx)
	}
	return nil
}

func toCategoryResponse(c *entity.Category) dto.CategoryResponse {
	return dto.CategoryResponse{ID: c.ID, Name: c.Name, Description: optional(c.Description)}
}
